package app

import (
	"context"
	"fmt"

	"github.com/goliatone/go-urlpicker/internal/config"
	"github.com/goliatone/go-urlpicker/internal/logger"
	"github.com/goliatone/go-urlpicker/pkg/store"
	"github.com/goliatone/go-urlpicker/pkg/store/redisstore"
)

// Backend bundles the configured field store with its lifecycle hooks.
type Backend struct {
	Store store.Lister
	// Ping checks the store is reachable; nil for in-process stores.
	Ping  func(ctx context.Context) error
	Close func() error
}

// OpenBackend connects the store selected by cfg.Store.Driver. The redis
// driver waits for the server to answer, backing off between attempts.
func OpenBackend(ctx context.Context, cfg *config.Config, log logger.Logger) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.DriverRedis:
		r := cfg.Store.Redis
		client, err := redisstore.Connect(ctx, redisstore.ConnectOptions{
			Addr:           r.Addr,
			Username:       r.Username,
			Password:       r.Password,
			DB:             r.DB,
			DialTimeout:    r.DialTimeout,
			ReadTimeout:    r.ReadTimeout,
			WriteTimeout:   r.WriteTimeout,
			ConnectTimeout: r.ConnectTimeout,
			RetryInterval:  r.RetryInterval,
			MaxWait:        r.MaxWait,
			PingTimeout:    r.PingTimeout,
		}, log)
		if err != nil {
			return nil, err
		}
		st, err := redisstore.New(client, redisstore.WithPrefix(r.Prefix), redisstore.WithTTL(r.TTL))
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return &Backend{
			Store: st,
			Ping:  func(ctx context.Context) error { return client.Ping(ctx).Err() },
			Close: client.Close,
		}, nil
	case config.DriverMemory, "":
		log.Info("using in-memory field store")
		return &Backend{
			Store: store.NewMemory(nil),
			Close: func() error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("app: unknown store driver %q", cfg.Store.Driver)
	}
}
