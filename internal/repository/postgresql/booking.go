package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/domain/booking"
	"github.com/cmlabs-hris/booking-payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type bookingRepositoryImpl struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) booking.BookingRepository {
	return &bookingRepositoryImpl{db: db}
}

const bookingColumns = `
	id, status, amount, appointment_date, appointment_time,
	customer_name, email, phone, service_type, address, notes,
	assigned_workers_pay, assigned_worker_ids,
	version, created_at`

// splitRow is one element of the assigned_workers_pay JSONB array.
type splitRow struct {
	WorkerID        string  `json:"workerId"`
	SplitPercentage float64 `json:"splitPercentage"`
}

func scanBooking(row pgx.Row) (booking.Booking, error) {
	var (
		b        booking.Booking
		status   string
		amount   decimal.NullDecimal
		rawDate  *string
		rawSplit []byte
	)
	err := row.Scan(
		&b.ID, &status, &amount, &rawDate, &b.AppointmentTime,
		&b.CustomerName, &b.Email, &b.Phone, &b.ServiceType, &b.Address, &b.Notes,
		&rawSplit, &b.AssignedWorkerIDs,
		&b.Version, &b.CreatedAt,
	)
	if err != nil {
		return booking.Booking{}, err
	}

	b.Status = booking.ParseStatus(status)
	if amount.Valid {
		b.Amount = amount.Decimal
	}
	b.AppointmentDate = booking.CanonicalDate(b.ID, rawDate)

	splits, err := decodeSplits(rawSplit)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("invalid assigned_workers_pay on booking %s: %w", b.ID, err)
	}
	b.AssignedWorkersPay = splits
	return b, nil
}

// decodeSplits keeps SQL NULL as nil and an empty array as an empty list.
func decodeSplits(raw []byte) ([]booking.PaySplit, error) {
	if raw == nil {
		return nil, nil
	}
	var rows []splitRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		// JSON null
		return nil, nil
	}
	splits := make([]booking.PaySplit, 0, len(rows))
	for _, r := range rows {
		splits = append(splits, booking.PaySplit{WorkerID: r.WorkerID, SplitPercentage: int(r.SplitPercentage)})
	}
	return splits, nil
}

func encodeSplits(splits []booking.PaySplit) ([]byte, error) {
	if splits == nil {
		return nil, nil
	}
	rows := make([]splitRow, 0, len(splits))
	for _, s := range splits {
		rows = append(rows, splitRow{WorkerID: s.WorkerID, SplitPercentage: float64(s.SplitPercentage)})
	}
	return json.Marshal(rows)
}

func (r *bookingRepositoryImpl) List(ctx context.Context) ([]booking.Booking, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + bookingColumns + `
		FROM appointments
		ORDER BY appointment_date DESC NULLS LAST, id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]booking.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepositoryImpl) GetByID(ctx context.Context, id string) (booking.Booking, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT` + bookingColumns + `
		FROM appointments
		WHERE id = $1`

	b, err := scanBooking(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.Booking{}, booking.ErrBookingNotFound
		}
		return booking.Booking{}, fmt.Errorf("failed to get booking %s: %w", id, err)
	}
	return b, nil
}

func (r *bookingRepositoryImpl) Create(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	q := GetQuerier(ctx, r.db)

	if b.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return booking.Booking{}, fmt.Errorf("failed to generate booking id: %w", err)
		}
		b.ID = id.String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	b.Version = 0

	splits, err := encodeSplits(b.AssignedWorkersPay)
	if err != nil {
		return booking.Booking{}, err
	}

	var date *string
	if b.AppointmentDate != "" {
		date = &b.AppointmentDate
	}

	query := `
		INSERT INTO appointments (
			id, status, amount, appointment_date, appointment_time,
			customer_name, email, phone, service_type, address, notes,
			assigned_workers_pay, assigned_worker_ids,
			version, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 0, $14)
	`
	_, err = q.Exec(ctx, query,
		b.ID, string(b.Status), b.Amount, date, b.AppointmentTime,
		b.CustomerName, b.Email, b.Phone, b.ServiceType, b.Address, b.Notes,
		splits, b.AssignedWorkerIDs,
		b.CreatedAt,
	)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}
	return b, nil
}

func (r *bookingRepositoryImpl) Save(ctx context.Context, id string, patch booking.Patch, expectedVersion *int64) (booking.Booking, error) {
	sets, args, err := patchAssignments(patch)
	if err != nil {
		return booking.Booking{}, err
	}

	var saved booking.Booking
	err = WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := WithTx(ctx, tx)
		q := GetQuerier(txCtx, r.db)

		var current int64
		err := q.QueryRow(txCtx, `SELECT version FROM appointments WHERE id = $1 FOR UPDATE`, id).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return booking.ErrBookingNotFound
			}
			return err
		}
		if expectedVersion != nil && *expectedVersion != current {
			return booking.ErrVersionConflict
		}

		args = append(args, id)
		query := fmt.Sprintf(`
			UPDATE appointments
			SET %s
			WHERE id = $%d
			RETURNING`+bookingColumns, strings.Join(sets, ", "), len(args))

		saved, err = scanBooking(q.QueryRow(txCtx, query, args...))
		return err
	})
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) || errors.Is(err, booking.ErrVersionConflict) {
			return booking.Booking{}, err
		}
		return booking.Booking{}, fmt.Errorf("failed to save booking %s: %w", id, err)
	}
	return saved, nil
}

// patchAssignments builds the SET list for a patch; the version bump is
// always included.
func patchAssignments(patch booking.Patch) ([]string, []any, error) {
	sets := []string{"version = version + 1"}
	var args []any
	argIdx := 1

	if patch.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, string(*patch.Status))
		argIdx++
	}
	if patch.AssignedWorkerIDs != nil {
		sets = append(sets, fmt.Sprintf("assigned_worker_ids = $%d", argIdx))
		args = append(args, append([]string{}, (*patch.AssignedWorkerIDs)...))
		argIdx++
	}
	if patch.AssignedWorkersPay != nil {
		splits, err := encodeSplits(append([]booking.PaySplit{}, (*patch.AssignedWorkersPay)...))
		if err != nil {
			return nil, nil, err
		}
		sets = append(sets, fmt.Sprintf("assigned_workers_pay = $%d", argIdx))
		args = append(args, splits)
	}
	return sets, args, nil
}
