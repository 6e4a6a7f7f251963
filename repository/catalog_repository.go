package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"dealdesk/models"
)

// CatalogRepository reads destinations and the service offerings of every category
type CatalogRepository struct {
	base
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *sqlx.DB, log *zap.SugaredLogger) *CatalogRepository {
	return &CatalogRepository{base: newBase(db, log)}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// offeringQueries selects the columns each category table carries.
// Category names double as table names, so only these are ever interpolated.
var offeringQueries = map[models.ServiceCategory]string{
	models.CategoryParamedics:      `SELECT id, name, hourly_rate, daily_rate FROM paramedics`,
	models.CategoryGuides:          `SELECT id, name, hourly_rate, daily_rate FROM guides`,
	models.CategorySecurity:        `SELECT id, name, hourly_rate, daily_rate FROM security_companies`,
	models.CategoryEntertainment:   `SELECT id, name, price FROM external_entertainment_companies`,
	models.CategoryTravelCompanies: `SELECT id, name, pricing_data FROM travel_companies`,
}

// GetOffering retrieves one offering of category by ID
func (r *CatalogRepository) GetOffering(ctx context.Context, category models.ServiceCategory, id int64) (*models.ServiceOffering, error) {
	q, ok := offeringQueries[category]
	if !ok {
		return nil, fmt.Errorf("unknown service category %q", category)
	}
	var o models.ServiceOffering
	if err := r.db.GetContext(ctx, &o, q+` WHERE id = $1`, id); err != nil {
		return nil, notFound(err, string(category), id)
	}
	return &o, nil
}

// ListOfferings retrieves every offering of category ordered by name
func (r *CatalogRepository) ListOfferings(ctx context.Context, category models.ServiceCategory) ([]models.ServiceOffering, error) {
	q, ok := offeringQueries[category]
	if !ok {
		return nil, fmt.Errorf("unknown service category %q", category)
	}
	offerings := []models.ServiceOffering{}
	if err := r.db.SelectContext(ctx, &offerings, q+` ORDER BY name`); err != nil {
		r.log.Errorf("❌ ListOfferings: Error fetching %s: %v", category, err)
		return nil, fmt.Errorf("failed to fetch %s: %w", category, err)
	}
	r.log.Debugf("✅ ListOfferings: %d %s", len(offerings), category)
	return offerings, nil
}

type destinationRow struct {
	ID           int64           `db:"id"`
	Name         string          `db:"name"`
	StudentPrice sql.NullFloat64 `db:"student_price"`
	CrewPrice    sql.NullFloat64 `db:"crew_price"`
	Requirements pq.StringArray  `db:"requirements"`
}

func (row destinationRow) toModel() models.Destination {
	d := models.Destination{
		ID:           row.ID,
		Name:         row.Name,
		Requirements: make([]models.ServiceCategory, 0, len(row.Requirements)),
	}
	if row.StudentPrice.Valid {
		v := row.StudentPrice.Float64
		d.Pricing.Student = &v
	}
	if row.CrewPrice.Valid {
		v := row.CrewPrice.Float64
		d.Pricing.Crew = &v
	}
	for _, req := range row.Requirements {
		c := models.ServiceCategory(req)
		if !c.Valid() {
			zap.S().Warnf("⚠️ destination %d declares unknown requirement %q, ignoring", row.ID, req)
			continue
		}
		d.Requirements = append(d.Requirements, c)
	}
	return d
}

const destinationColumns = `id, name, student_price, crew_price, COALESCE(requirements, '{}') AS requirements`

// GetDestination retrieves a destination with its pricing and requirements
func (r *CatalogRepository) GetDestination(ctx context.Context, id int64) (*models.Destination, error) {
	var row destinationRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+destinationColumns+` FROM destinations WHERE id = $1`, id); err != nil {
		return nil, notFound(err, "destination", id)
	}
	d := row.toModel()
	return &d, nil
}

// ListDestinations retrieves every destination ordered by name
func (r *CatalogRepository) ListDestinations(ctx context.Context) ([]models.Destination, error) {
	var rows []destinationRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+destinationColumns+` FROM destinations ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to fetch destinations: %w", err)
	}
	out := make([]models.Destination, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}
