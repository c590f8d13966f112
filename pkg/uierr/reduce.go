// Package uierr normalizes the failure payloads remote operations hand back
// to the UI layer into ordered lists of human-readable messages.
//
// A payload may be a page-level error container, a per-field validation
// container, a list of errors, a bare message object, a plain string, a Go
// error, or something unrecognizable. Reduce is total over all of them: it
// never panics, and anything it cannot classify degrades to a fixed fallback
// string instead of failing while a primary failure is being reported.
package uierr

import (
	"reflect"
	"sort"
)

// Fallback is emitted when a non-nil payload matches no recognized shape.
const Fallback = "Unknown error"

// Object keys recognized on decoded-JSON payloads.
const (
	KeyPageErrors  = "pageErrors"
	KeyFieldErrors = "fieldErrors"
	KeyBody        = "body"
	KeyMessage     = "message"
)

// Reduce flattens a failure payload into display strings.
//
// Shape precedence, first match wins: page errors, field errors, list,
// body.message, message, plain string, fallback. A nil input yields an empty
// result; any other input yields at least one string. Blank messages are
// dropped. An element that matches no shape reduces to the fallback string
// wherever it sits, so a list keeps one entry per unrecognizable element.
// Field identifiers are visited in lexicographic order so output is
// deterministic across runs (Go randomizes map iteration).
func Reduce(input any) []string {
	if isNil(input) {
		return nil
	}
	msgs := reduce(input)
	if len(msgs) == 0 {
		return []string{Fallback}
	}
	return msgs
}

// reduce performs the recursive flattening. Unlike Reduce it may return an
// empty slice when a recognized shape carries only blank messages; an input
// matching no shape at all reduces to the fallback string at any depth.
func reduce(input any) []string {
	if isNil(input) {
		return nil
	}

	switch v := input.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}

	case map[string]any:
		return reduceMap(v)

	case []any:
		return reduceList(v)

	case error:
		if msg := v.Error(); msg != "" {
			return []string{msg}
		}
		return nil
	}

	return reduceReflect(input)
}

func reduceMap(obj map[string]any) []string {
	msgs, matched := reduceObject(obj)
	if !matched {
		return []string{Fallback}
	}
	return msgs
}

// reduceObject applies the object rules in precedence order and reports
// whether any rule matched. An object that satisfies more than one shape
// resolves via the earliest applicable rule; a matched shape whose messages
// are all blank yields zero strings rather than the fallback.
func reduceObject(obj map[string]any) ([]string, bool) {
	if page, ok := asSequence(obj[KeyPageErrors]); ok && len(page) > 0 {
		return messageList(page), true
	}

	if fields, ok := asStringKeyedMap(obj[KeyFieldErrors]); ok && len(fields) > 0 {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)

		var out []string
		for _, name := range names {
			if seq, ok := asSequence(fields[name]); ok {
				out = append(out, messageList(seq)...)
			}
		}
		return out, true
	}

	if body, ok := asStringKeyedMap(obj[KeyBody]); ok {
		if msg, ok := body[KeyMessage].(string); ok {
			if msg == "" {
				return nil, true
			}
			return []string{msg}, true
		}
	}

	if msg, ok := obj[KeyMessage].(string); ok {
		if msg == "" {
			return nil, true
		}
		return []string{msg}, true
	}

	return nil, false
}

// reduceList reduces every element and concatenates in sequence order.
// Nested lists flatten all the way down to strings.
func reduceList(list []any) []string {
	var out []string
	for _, elem := range list {
		out = append(out, reduce(elem)...)
	}
	return out
}

// messageList extracts the non-blank message of each {message: string}
// element, preserving element order.
func messageList(seq []any) []string {
	out := make([]string, 0, len(seq))
	for _, elem := range seq {
		entry, ok := asStringKeyedMap(elem)
		if !ok {
			continue
		}
		if msg, ok := entry[KeyMessage].(string); ok && msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

// reduceReflect handles payloads that are shaped right but typed differently
// than decoded JSON ([]string, map[string][]any, pointers, and so on).
// Anything it cannot place in a recognized shape reduces to the fallback.
func reduceReflect(input any) []string {
	rv := reflect.ValueOf(input)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return reduce(rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		var out []string
		for i := 0; i < rv.Len(); i++ {
			out = append(out, reduce(rv.Index(i).Interface())...)
		}
		return out

	case reflect.Map:
		if obj, ok := asStringKeyedMap(input); ok {
			return reduceMap(obj)
		}

	case reflect.String:
		if s := rv.String(); s != "" {
			return []string{s}
		}
		return nil
	}

	return []string{Fallback}
}

// asSequence coerces any slice or array value to []any.
func asSequence(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if seq, ok := v.([]any); ok {
		return seq, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asStringKeyedMap coerces any map with string keys to map[string]any.
func asStringKeyedMap(v any) (map[string]any, bool) {
	if v == nil {
		return nil, false
	}
	if m, ok := v.(map[string]any); ok {
		return m, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// isNil reports whether v is nil, including typed nils hiding behind a
// non-nil interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
