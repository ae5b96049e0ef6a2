package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nekkositon/booking-api/internal/model"
)

func (r *adminRequestRepository) Create(ctx context.Context, req *model.AdminRequest) error {
	query := `
		INSERT INTO admin_requests (id, user_id, email, full_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	req.ID = uuid.New().String()
	req.Status = model.AdminRequestStatusPending
	req.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.UserID,
		req.Email,
		req.FullName,
		req.Status,
		req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create admin request: %w", err)
	}
	return nil
}

func (r *adminRequestRepository) ListPending(ctx context.Context) ([]*model.AdminRequest, error) {
	query := `
		SELECT id, user_id, email, full_name, status, created_at
		FROM admin_requests
		WHERE status = 'pending'
		ORDER BY created_at ASC
	`
	var requests []*model.AdminRequest
	if err := r.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, fmt.Errorf("failed to list pending admin requests: %w", err)
	}
	return requests, nil
}

func (r *adminRequestRepository) Decide(ctx context.Context, id string, decision model.AdminRequestStatus) (*model.AdminRequest, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The status guard makes the decision idempotent-terminal: a request
	// that was already decided matches zero rows and nothing changes.
	query := `
		UPDATE admin_requests
		SET status = $1
		WHERE id = $2 AND status = 'pending'
		RETURNING id, user_id, email, full_name, status, created_at
	`
	var req model.AdminRequest
	err = tx.GetContext(ctx, &req, query, decision, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrRequestAlreadyFinal
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decide admin request: %w", err)
	}

	if decision == model.AdminRequestStatusApproved {
		promote := `UPDATE users SET role = 'admin', updated_at = $1 WHERE id = $2`
		if _, err := tx.ExecContext(ctx, promote, time.Now(), req.UserID); err != nil {
			return nil, fmt.Errorf("failed to promote user: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit admin request decision: %w", err)
	}
	return &req, nil
}
