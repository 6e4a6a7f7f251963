package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"dealdesk/models"
)

// VehicleRepository handles database operations for inventory vehicles
type VehicleRepository struct {
	base
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(db *sqlx.DB, log *zap.SugaredLogger) *VehicleRepository {
	return &VehicleRepository{base: newBase(db, log)}
}

// Ensure VehicleRepository implements VehicleRepositoryInterface
var _ VehicleRepositoryInterface = (*VehicleRepository)(nil)

const vehicleColumns = `id, manufacturer, name, year, status, buy_price, sale_price, created_at`

// GetByID retrieves a vehicle by ID
func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	var v models.Vehicle
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	if err := r.db.GetContext(ctx, &v, query, id); err != nil {
		return nil, notFound(err, "vehicle", id)
	}
	return &v, nil
}

// Create inserts v and fills its generated id and created_at
func (r *VehicleRepository) Create(ctx context.Context, v *models.Vehicle) error {
	r.log.Infof("📦 CreateVehicle: %s status=%s", v.DisplayName(), v.Status)

	query := `
		INSERT INTO vehicles (manufacturer, name, year, status, buy_price, sale_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		v.Manufacturer, v.Name, v.Year, v.Status, v.BuyPrice, v.SalePrice,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		r.log.Errorf("❌ CreateVehicle: Error inserting vehicle: %v", err)
		return fmt.Errorf("failed to insert vehicle: %w", err)
	}

	r.log.Infof("✅ CreateVehicle: Successfully created vehicle id=%d", v.ID)
	return nil
}

// UpdateSalePrice overwrites the asking price of a vehicle
func (r *VehicleRepository) UpdateSalePrice(ctx context.Context, id int64, price float64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vehicles SET sale_price = $1 WHERE id = $2`, price, id)
	if err != nil {
		return fmt.Errorf("failed to update vehicle sale price: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("vehicle %d: %w", id, ErrNotFound)
	}
	r.log.Infof("💰 UpdateSalePrice: vehicle id=%d sale_price=%.2f", id, price)
	return nil
}

// CustomerRepository reads dealership customers
type CustomerRepository struct {
	base
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *sqlx.DB, log *zap.SugaredLogger) *CustomerRepository {
	return &CustomerRepository{base: newBase(db, log)}
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)

// GetByID retrieves a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.GetContext(ctx, &c, `SELECT id, name, COALESCE(phone, '') AS phone, balance FROM customers WHERE id = $1`, id); err != nil {
		return nil, notFound(err, "customer", id)
	}
	return &c, nil
}
