// Package redisserver is the redis external. It doubles as the toast bus:
// publishers push JSON toasts onto a channel and the toast module subscribes
// for fan-out.
package redisserver

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dfdavila2/workingWithDataInLWC/config"
	"github.com/dfdavila2/workingWithDataInLWC/core"
)

type Config struct {
	Addr         string `env:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `env:"REDIS_PASSWORD" default:""`
	DB           int    `env:"REDIS_DB" default:"0"`
	PoolSize     int    `env:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int    `env:"REDIS_MIN_IDLE_CONNS" default:"5"`
}

type Redis struct {
	client *redis.Client
	logger core.Logger
	cfg    Config
}

func New() *Redis {
	return &Redis{}
}

func (r *Redis) Setup(ctx core.AppContext) error {
	cfg, err := config.Load[Config]()
	if err != nil {
		return err
	}
	r.cfg = cfg
	r.logger = ctx.Logger().WithComponent("redis")
	return nil
}

func (r *Redis) Start(ctx context.Context) error {
	r.client = redis.NewClient(&redis.Options{
		Addr:         r.cfg.Addr,
		Password:     r.cfg.Password,
		DB:           r.cfg.DB,
		PoolSize:     r.cfg.PoolSize,
		MinIdleConns: r.cfg.MinIdleConns,
	})

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	r.logger.Info("redis connected", core.Field{Key: "addr", Value: r.cfg.Addr})
	return nil
}

func (r *Redis) Stop(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	r.logger.Info("redis closed")
	return nil
}

func (r *Redis) Health(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.client.Ping(healthCtx).Err()
}

// Publish pushes a payload onto a pub/sub channel.
func (r *Redis) Publish(ctx context.Context, channel string, payload []byte) error {
	return r.client.Publish(ctx, channel, payload).Err()
}

// Subscribe opens a pub/sub subscription on the given channel.
func (r *Redis) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	return r.client.Subscribe(ctx, channel)
}

// Client exposes the raw client for modules with needs beyond pub/sub.
func (r *Redis) Client() *redis.Client {
	return r.client
}
