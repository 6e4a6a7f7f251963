package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"dealdesk/models"
)

// DealRepository handles database operations for deals
type DealRepository struct {
	base
}

// NewDealRepository creates a new DealRepository
func NewDealRepository(db *sqlx.DB, log *zap.SugaredLogger) *DealRepository {
	return &DealRepository{base: newBase(db, log)}
}

// Ensure DealRepository implements DealRepositoryInterface
var _ DealRepositoryInterface = (*DealRepository)(nil)

const dealColumns = `id, deal_type, status, customer_id, selling_price, amount, loss_amount, car_id,
	car_taken_from_client, seller_id, buyer_id, company_name, commission_date, title,
	COALESCE(notes, '') AS notes, attachments, created_at`

// Create inserts a deal and fills its generated id and created_at
func (r *DealRepository) Create(ctx context.Context, d *models.DealRecord) error {
	r.log.Infof("📦 CreateDeal: type=%s title=%q amount=%.2f", d.DealType, d.Title, d.Amount)

	query := `
		INSERT INTO deals (deal_type, status, customer_id, selling_price, amount, loss_amount, car_id,
			car_taken_from_client, seller_id, buyer_id, company_name, commission_date, title, notes, attachments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		d.DealType,
		d.Status,
		d.CustomerID,
		d.SellingPrice,
		d.Amount,
		d.LossAmount,
		d.CarID,
		d.CarTakenFromClient,
		d.SellerID,
		d.BuyerID,
		d.CompanyName,
		d.CommissionDate,
		d.Title,
		d.Notes,
		d.Attachments,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		r.log.Errorf("❌ CreateDeal: Error inserting deal: %v", err)
		return fmt.Errorf("failed to insert deal: %w", err)
	}

	r.log.Infof("✅ CreateDeal: Successfully created deal id=%d", d.ID)
	return nil
}

// GetByID retrieves a deal by ID
func (r *DealRepository) GetByID(ctx context.Context, id int64) (*models.DealRecord, error) {
	var d models.DealRecord
	if err := r.db.GetContext(ctx, &d, `SELECT `+dealColumns+` FROM deals WHERE id = $1`, id); err != nil {
		return nil, notFound(err, "deal", id)
	}
	return &d, nil
}

// UpdateAttachments replaces the attachments array of a deal
func (r *DealRepository) UpdateAttachments(ctx context.Context, id int64, attachments models.Attachments) error {
	res, err := r.db.ExecContext(ctx, `UPDATE deals SET attachments = $1 WHERE id = $2`, attachments, id)
	if err != nil {
		return fmt.Errorf("failed to update deal attachments: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("deal %d: %w", id, ErrNotFound)
	}
	r.log.Infof("✅ UpdateAttachments: deal id=%d attachments=%d", id, len(attachments))
	return nil
}
