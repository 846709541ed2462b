package repository

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	models "github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal"
)

type DBConn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

type BookingRepository struct {
	db DBConn
}

func NewBookingRepository(db DBConn) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = "id, user_id, car_id, start_date, end_date, status, total_price_cents, created_at"

// CreateBooking inserts a booking after re-checking the car's availability and
// the absence of date conflicts inside one transaction. The car row is locked
// first so concurrent writes for the same car serialise on it.
func (r *BookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	available, err := lockCarTx(ctx, tx, booking.CarID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, models.ErrCarUnavailable
	}

	existing, err := activeBookingsForCarTx(ctx, tx, booking.CarID)
	if err != nil {
		return nil, err
	}
	if models.HasConflict(existing, booking.StartDate, booking.EndDate, uuid.Nil) {
		return nil, models.ErrDateConflict
	}

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.Status = models.StatusConfirmed
	booking.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO bookings (id, user_id, car_id, start_date, end_date, status, total_price_cents, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err = tx.Exec(ctx, query,
		booking.ID, booking.UserID, booking.CarID,
		booking.StartDate, booking.EndDate, booking.Status,
		booking.TotalPriceCents, booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateBookingRange replaces a booking's dates and price under the same car
// lock used by CreateBooking, skipping the booking itself in the conflict scan.
func (r *BookingRepository) UpdateBookingRange(ctx context.Context, id uuid.UUID, start, end time.Time, priceCents int64) (*models.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var carID uuid.UUID
	err = tx.QueryRow(ctx, "SELECT car_id FROM bookings WHERE id = $1", id).Scan(&carID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrBookingNotFound
		}
		return nil, err
	}

	if _, err = lockCarTx(ctx, tx, carID); err != nil {
		return nil, err
	}

	existing, err := activeBookingsForCarTx(ctx, tx, carID)
	if err != nil {
		return nil, err
	}
	if models.HasConflict(existing, start, end, id) {
		return nil, models.ErrDateConflict
	}

	query := `
        UPDATE bookings SET start_date = $2, end_date = $3, total_price_cents = $4
        WHERE id = $1
        RETURNING ` + bookingColumns
	booking, err := scanBooking(tx.QueryRow(ctx, query, id, start, end, priceCents))
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	query := `
        UPDATE bookings SET status = $2
        WHERE id = $1
        RETURNING ` + bookingColumns
	booking, err := scanBooking(r.db.QueryRow(ctx, query, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrBookingNotFound
	}
	return booking, err
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	query := "SELECT " + bookingColumns + " FROM bookings WHERE id = $1"
	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrBookingNotFound
	}
	return booking, err
}

func (r *BookingRepository) GetBookingsByUser(ctx context.Context, userID uuid.UUID, afterCursor string, limit int) ([]models.Booking, string, error) {
	query := "SELECT " + bookingColumns + " FROM bookings WHERE user_id = $1"
	args := []interface{}{userID}

	if afterCursor != "" {
		afterTime, afterUUID, err := decodeCursor(afterCursor)
		if err != nil {
			return nil, "", err
		}
		query += " AND (created_at, id) > ($2, $3)"
		args = append(args, afterTime, afterUUID)
	}

	query += " ORDER BY created_at, id"
	query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		err := rows.Scan(
			&b.ID, &b.UserID, &b.CarID,
			&b.StartDate, &b.EndDate, &b.Status,
			&b.TotalPriceCents, &b.CreatedAt,
		)
		if err != nil {
			return nil, "", err
		}
		bookings = append(bookings, b)
	}
	if err = rows.Err(); err != nil {
		return nil, "", err
	}

	var nextCursor string
	if len(bookings) == limit {
		last := bookings[len(bookings)-1]
		nextCursor = encodeCursor(last.CreatedAt, last.ID)
	}

	return bookings, nextCursor, nil
}

// lockCarTx takes a row lock on the car for the rest of the transaction and
// returns its availability flag.
func lockCarTx(ctx context.Context, tx pgx.Tx, carID uuid.UUID) (bool, error) {
	var available bool
	err := tx.QueryRow(ctx, "SELECT available FROM cars WHERE id = $1 FOR UPDATE", carID).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, models.ErrCarNotFound
	}
	return available, err
}

// activeBookingsForCarTx returns the car's bookings whose stored status still
// holds the car for its dates.
func activeBookingsForCarTx(ctx context.Context, tx pgx.Tx, carID uuid.UUID) ([]models.Booking, error) {
	query := "SELECT " + bookingColumns + `
        FROM bookings
        WHERE car_id = $1 AND status IN ($2, $3)
    `
	rows, err := tx.Query(ctx, query, carID, models.StatusPending, models.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		err := rows.Scan(
			&b.ID, &b.UserID, &b.CarID,
			&b.StartDate, &b.EndDate, &b.Status,
			&b.TotalPriceCents, &b.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.UserID, &b.CarID,
		&b.StartDate, &b.EndDate, &b.Status,
		&b.TotalPriceCents, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func encodeCursor(t time.Time, id uuid.UUID) string {
	cursor := fmt.Sprintf("%s,%s", t.Format(time.RFC3339Nano), id.String())
	return base64.StdEncoding.EncodeToString([]byte(cursor))
}

func decodeCursor(encoded string) (time.Time, uuid.UUID, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return time.Time{}, uuid.Nil, err
	}
	parts := strings.Split(string(decodedBytes), ",")
	if len(parts) != 2 {
		return time.Time{}, uuid.Nil, fmt.Errorf("invalid cursor format")
	}
	t, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, uuid.Nil, err
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return time.Time{}, uuid.Nil, err
	}
	return t, id, nil
}
