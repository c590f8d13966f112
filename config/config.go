// Package config loads component configuration from the environment using
// struct tags: `env` names the variable, `default` supplies a fallback, and
// `required:"true"` makes a missing value an error.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load populates a config struct from the environment. A .env file, if
// present, is loaded first (missing files are ignored).
func Load[T any](envFile ...string) (T, error) {
	if len(envFile) > 0 {
		_ = godotenv.Load(envFile[0])
	} else {
		_ = godotenv.Load()
	}

	var config T
	v := reflect.ValueOf(&config).Elem()
	t := reflect.TypeOf(config)

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		spec := t.Field(i)

		envTag := spec.Tag.Get("env")
		if envTag == "" {
			continue
		}

		value := os.Getenv(envTag)
		if value == "" {
			value = spec.Tag.Get("default")
		}
		if value == "" {
			if spec.Tag.Get("required") == "true" {
				return config, fmt.Errorf("config: %s is required", envTag)
			}
			continue
		}

		if err := setField(field, value); err != nil {
			return config, fmt.Errorf("config: %s: %w", envTag, err)
		}
	}

	return config, nil
}

// MustLoad is Load for composition roots where a bad config is fatal.
func MustLoad[T any](envFile ...string) T {
	config, err := Load[T](envFile...)
	if err != nil {
		panic(err)
	}
	return config
}

func setField(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	// time.Duration is an int64 underneath; check it before the int kinds.
	if field.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice element type %s", field.Type().Elem())
		}
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		field.Set(reflect.ValueOf(out))
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}

	return nil
}
