package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"dealdesk/logger"
)

// ErrNotFound is returned when a lookup by id matches no row
var ErrNotFound = errors.New("not found")

// base carries what every repository needs
type base struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

func newBase(db *sqlx.DB, log *zap.SugaredLogger) base {
	return base{db: db, log: logger.OrGlobal(log)}
}

// withTx runs fn in a transaction, rolling back on error or panic
func (b base) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// notFound maps sql.ErrNoRows onto ErrNotFound and wraps anything else
func notFound(err error, what string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("failed to fetch %s: %w", what, err)
}
