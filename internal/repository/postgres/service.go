package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nekkositon/booking-api/internal/model"
)

func (r *serviceRepository) Get(ctx context.Context, id int64) (*model.Service, error) {
	query := `
		SELECT id, name, description, price, is_custom
		FROM services
		WHERE id = $1
	`
	var svc model.Service
	err := r.db.GetContext(ctx, &svc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

func (r *serviceRepository) List(ctx context.Context, bookableOnly bool) ([]*model.Service, error) {
	query := `
		SELECT id, name, description, price, is_custom
		FROM services
	`
	if bookableOnly {
		query += ` WHERE is_custom = false`
	}
	query += ` ORDER BY id ASC`

	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
