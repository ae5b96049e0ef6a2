package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nekkositon/booking-api/internal/model"
)

const bookingColumns = `id, user_id, service_id, booking_date, message, status, payment_proof_url, created_at`

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	query := `
		INSERT INTO bookings (user_id, service_id, booking_date, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + bookingColumns
	booking.CreatedAt = time.Now()

	var stored model.Booking
	err := r.db.GetContext(ctx, &stored, query,
		booking.UserID,
		booking.ServiceID,
		booking.BookingDate,
		booking.Message,
		booking.Status,
		booking.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &stored, nil
}

func (r *bookingRepository) Get(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter *model.BookingFilter) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filter != nil && filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", argCount)
		args = append(args, filter.UserID)
		argCount++
	}
	if filter != nil && filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filter.Status)
		argCount++
	}

	query += " ORDER BY created_at ASC"

	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) ListDetailed(ctx context.Context) ([]*model.BookingDetail, error) {
	query := `
		SELECT b.id, b.user_id, b.service_id, b.booking_date, b.message,
			   b.status, b.payment_proof_url, b.created_at,
			   u.full_name AS client_name, u.email AS client_email,
			   u.phone_number AS client_phone,
			   s.name AS service_name, s.price AS service_price
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN services s ON s.id = b.service_id
		ORDER BY b.created_at ASC
	`
	var details []*model.BookingDetail
	if err := r.db.SelectContext(ctx, &details, query); err != nil {
		return nil, fmt.Errorf("failed to list booking details: %w", err)
	}
	return details, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1
		WHERE id = $2
		RETURNING ` + bookingColumns

	var stored model.Booking
	err := r.db.GetContext(ctx, &stored, query, status, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return &stored, nil
}

func (r *bookingRepository) UpdateStatusAndProof(ctx context.Context, id int64, status model.BookingStatus, proofURL string) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, payment_proof_url = $2
		WHERE id = $3
		RETURNING ` + bookingColumns

	var stored model.Booking
	err := r.db.GetContext(ctx, &stored, query, status, proofURL, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update booking payment proof: %w", err)
	}
	return &stored, nil
}
