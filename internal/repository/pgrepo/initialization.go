package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	_ "github.com/golang-migrate/migrate/v4/source/file"       //nolint:revive
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type PoolOptions struct {
	MaxConns        int32
	MaxConnIdleTime time.Duration
}

const (
	maxConnectAttempts = 30
	connectRetryDelay  = 3 * time.Second
)

// Connect открывает пул соединений, повторяя попытки, пока база недоступна, и накатывает миграции
// из migrationsDir. Пустой migrationsDir отключает миграции.
func Connect(
	ctx context.Context,
	migrationsDir, dsn string,
	opts PoolOptions,
	l *logrus.Entry,
) (*pgxpool.Pool, error) {
	var (
		pool    *pgxpool.Pool
		lastErr error
	)
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		pool, lastErr = newPostgresConnection(ctx, dsn, opts)
		if lastErr == nil {
			break
		}
		l.WithError(lastErr).
			WithField("CurrentAttempt", fmt.Sprintf("#%d / %d", attempt, maxConnectAttempts)).
			Warnf("init postgres connection error, retrying in %.f seconds", connectRetryDelay.Seconds())

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("init postgres connection: %w", ctx.Err())
		case <-time.After(connectRetryDelay):
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("init postgres connection after %d attempts: %w", maxConnectAttempts, lastErr)
	}

	if migrationsDir != "" {
		if err := postgresMigrate(migrationsDir, dsn); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return pool, nil
}

func newPostgresConnection(ctx context.Context, dsn string, opts PoolOptions) (*pgxpool.Pool, error) {
	poolConfig, confErr := pgxpool.ParseConfig(dsn)
	if confErr != nil {
		return nil, fmt.Errorf("parse postgres config: %w", confErr)
	}
	if opts.MaxConns > 0 {
		poolConfig.MaxConns = opts.MaxConns
	}
	if opts.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = opts.MaxConnIdleTime
	}

	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, fmt.Errorf("failed to create pool: %w", poolErr)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", pingErr)
	}

	return pool, nil
}

func postgresMigrate(dir string, dsn string) error {
	m, mErr := migrate.New("file://"+dir, dsn)
	if mErr != nil {
		return fmt.Errorf("failed to create migrate instance: %w", mErr)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
