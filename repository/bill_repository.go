package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"dealdesk/models"
)

// BillRepository reads stored billing documents
type BillRepository struct {
	base
}

func NewBillRepository(db *sqlx.DB, log *zap.SugaredLogger) *BillRepository {
	return &BillRepository{base: newBase(db, log)}
}

var _ BillRepositoryInterface = (*BillRepository)(nil)

// GetByID retrieves a bill with its line items
func (r *BillRepository) GetByID(ctx context.Context, id int64) (*models.Bill, error) {
	var b models.Bill
	query := `
		SELECT id, bill_type, number, issued_at, customer_name,
			COALESCE(customer_tax_id, '') AS customer_tax_id, items, COALESCE(notes, '') AS notes
		FROM bills WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		return nil, notFound(err, "bill", id)
	}
	return &b, nil
}
