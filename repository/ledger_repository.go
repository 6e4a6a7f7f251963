package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"dealdesk/models"
)

// LedgerRepository records movements on customers' running accounts
type LedgerRepository struct {
	base
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *sqlx.DB, log *zap.SugaredLogger) *LedgerRepository {
	return &LedgerRepository{base: newBase(db, log)}
}

var _ LedgerRepositoryInterface = (*LedgerRepository)(nil)

// Record inserts a ledger entry for a deal and adjusts the customer's balance.
// Both writes happen in one transaction; a second entry for the same deal is skipped.
func (r *LedgerRepository) Record(ctx context.Context, dealID, customerID int64, amount float64, label string) (*models.LedgerEntry, error) {
	r.log.Infof("💰 RecordLedger: deal=%d customer=%d amount=%.2f label=%q", dealID, customerID, amount, label)

	var entry models.LedgerEntry
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM customer_ledger WHERE deal_id = $1 AND customer_id = $2)`,
			dealID, customerID); err != nil {
			return fmt.Errorf("failed to check ledger entry: %w", err)
		}
		if exists {
			return errLedgerDuplicate
		}

		query := `
			INSERT INTO customer_ledger (customer_id, deal_id, amount, label)
			VALUES ($1, $2, $3, $4)
			RETURNING id, customer_id, deal_id, amount, label, created_at
		`
		if err := tx.GetContext(ctx, &entry, query, customerID, dealID, amount, label); err != nil {
			return fmt.Errorf("failed to insert ledger entry: %w", err)
		}

		res, err := tx.ExecContext(ctx, `UPDATE customers SET balance = balance + $1 WHERE id = $2`, amount, customerID)
		if err != nil {
			return fmt.Errorf("failed to update customer balance: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("customer %d: %w", customerID, ErrNotFound)
		}
		return nil
	})

	if errors.Is(err, errLedgerDuplicate) {
		r.log.Warnf("⚠️ RecordLedger: entry for deal=%d customer=%d already exists, skipping", dealID, customerID)
		return nil, nil
	}
	if err != nil {
		r.log.Errorf("❌ RecordLedger: %v", err)
		return nil, err
	}

	r.log.Infof("✅ RecordLedger: Successfully recorded entry id=%d", entry.ID)
	return &entry, nil
}

var errLedgerDuplicate = errors.New("ledger entry already recorded")
