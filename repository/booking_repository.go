package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"dealdesk/models"
)

// BookingRepository handles database operations for bookings and their service lines
type BookingRepository struct {
	base
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sqlx.DB, log *zap.SugaredLogger) *BookingRepository {
	return &BookingRepository{base: newBase(db, log)}
}

var _ BookingRepositoryInterface = (*BookingRepository)(nil)

// CreateWithServices inserts the booking and one row per service line atomically.
// A failing line rolls the booking back.
func (r *BookingRepository) CreateWithServices(ctx context.Context, b *models.Booking, lines []models.BookingServiceLine) error {
	r.log.Infof("📦 CreateBooking: ref=%s type=%s lines=%d total=%.2f", b.Reference, b.BookingType, len(lines), b.TotalPrice)

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO bookings (reference, booking_type, destination_id, trip_date, number_of_students,
				number_of_crew, school_id, user_id, total_price, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at
		`
		err := tx.QueryRowxContext(ctx, query,
			b.Reference,
			b.BookingType,
			b.DestinationID,
			b.TripDate,
			b.NumberOfStudents,
			b.NumberOfCrew,
			b.SchoolID,
			b.UserID,
			b.TotalPrice,
			b.Status,
		).Scan(&b.ID, &b.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		lineQuery := `
			INSERT INTO booking_services (booking_id, service_type, service_id, name, quantity, rate_type, cost, hours, days)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`
		for i := range lines {
			l := &lines[i]
			l.BookingID = b.ID
			if err := tx.QueryRowxContext(ctx, lineQuery,
				l.BookingID, l.ServiceType, l.ServiceID, l.Name, l.Quantity, l.RateType, l.Cost, l.Hours, l.Days,
			).Scan(&l.ID); err != nil {
				return fmt.Errorf("failed to insert %s service line %d: %w", l.ServiceType, l.ServiceID, err)
			}
		}
		return nil
	})
	if err != nil {
		r.log.Errorf("❌ CreateBooking: %v", err)
		return err
	}

	r.log.Infof("✅ CreateBooking: Successfully created booking id=%d ref=%s", b.ID, b.Reference)
	return nil
}

// GetByReference retrieves a booking by its generated reference
func (r *BookingRepository) GetByReference(ctx context.Context, ref string) (*models.Booking, error) {
	var b models.Booking
	query := `
		SELECT id, reference, booking_type, destination_id, trip_date, number_of_students, number_of_crew,
			school_id, user_id, total_price, status, created_at
		FROM bookings WHERE reference = $1
	`
	if err := r.db.GetContext(ctx, &b, query, ref); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %s: %w", ref, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &b, nil
}
