package db

import (
	"context"
	"fmt"
	"net/url"

	"food-details/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is shared by the session store, the reference backend and migrations.
var Pool *pgxpool.Pool

// ConnString builds a postgres URL; user and password are escaped.
func ConnString(cfg config.DBConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   "/" + cfg.Database,
	}
	return u.String()
}

// Init opens the pool and pings it so a bad DSN fails at startup, not on the
// first screen.
func Init(ctx context.Context, cfg config.DBConfig) error {
	pool, err := pgxpool.New(ctx, ConnString(cfg))
	if err != nil {
		return fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping: %w", err)
	}
	Pool = pool
	return nil
}

func Close() {
	if Pool != nil {
		Pool.Close()
	}
}
