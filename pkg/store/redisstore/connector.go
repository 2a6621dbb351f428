package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-urlpicker/internal/logger"
)

// ConnectOptions defines the client settings and the retry policy used while
// waiting for Redis to come up.
type ConnectOptions struct {
	Addr           string
	Username       string
	Password       string
	DB             int
	DialTimeout    time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	ConnectTimeout time.Duration // total time allowed for ping attempts
	RetryInterval  time.Duration // initial wait, doubled per attempt
	MaxWait        time.Duration // cap for the wait between attempts
	PingTimeout    time.Duration
}

func (o ConnectOptions) withDefaults() ConnectOptions {
	if o.DialTimeout <= 0 {
		o.DialTimeout = 5 * time.Second
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = 3 * time.Second
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 3 * time.Second
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = 30 * time.Second
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = 500 * time.Millisecond
	}
	if o.MaxWait <= 0 {
		o.MaxWait = 5 * time.Second
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = 2 * time.Second
	}
	return o
}

// Connect creates a client and pings it until it answers or ConnectTimeout
// elapses, backing off exponentially between attempts.
func Connect(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	opts = opts.withDefaults()
	if log == nil {
		log = logger.NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.Username,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	})

	log.Info("connecting to redis",
		logger.String("addr", opts.Addr),
		logger.Duration("timeout", opts.ConnectTimeout))

	deadline := time.Now().Add(opts.ConnectTimeout)
	wait := opts.RetryInterval
	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			log.Info("connected to redis",
				logger.String("addr", opts.Addr),
				logger.Int("attempts", attempt))
			return client, nil
		}

		if time.Now().Add(wait).After(deadline) {
			_ = client.Close()
			log.Error("redis unavailable",
				logger.String("addr", opts.Addr),
				logger.Int("attempts", attempt),
				logger.Error(err))
			return nil, fmt.Errorf("redisstore: connect %s after %d attempts: %w", opts.Addr, attempt, err)
		}

		log.Warn("redis connection failed, retrying",
			logger.String("addr", opts.Addr),
			logger.Int("attempt", attempt),
			logger.Duration("next_retry_in", wait),
			logger.Error(err))

		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
		if wait > opts.MaxWait {
			wait = opts.MaxWait
		}
	}
}
