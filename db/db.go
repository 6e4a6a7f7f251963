package db

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"dealdesk/config"
)

// InitDB opens the pgx-backed connection pool and verifies it with a ping
func InitDB(ctx context.Context, cfg config.Postgres) (*sqlx.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	zap.S().Infof("✓ Database connection established successfully")
	return conn, nil
}

// CloseDB closes the pool, tolerating a nil handle
func CloseDB(conn *sqlx.DB) error {
	if conn != nil {
		return conn.Close()
	}
	return nil
}
