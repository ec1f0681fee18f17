package repository

import (
	"context"
	"fmt"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PermissionRepository interface {
	Create(ctx context.Context, req *entity.PermissionRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PermissionRequest, error)
	FindPending(ctx context.Context) ([]*entity.PermissionRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RequestStatus) error
}

type permissionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPermissionRepository(db database.PgxIface, log *zap.Logger) PermissionRepository {
	return &permissionRepository{
		db:  db,
		log: log.With(zap.String("repository", "permission")),
	}
}

func (r *permissionRepository) Create(ctx context.Context, req *entity.PermissionRequest) error {
	query := `
		INSERT INTO permission_requests (id, user_id, user_name, old_email, new_email,
		                                new_password, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		req.ID,
		req.UserID,
		req.UserName,
		req.OldEmail,
		req.NewEmail,
		req.NewPasswordHash,
		req.Description,
		req.Status,
		req.CreatedAt,
		req.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create permission request",
			zap.Error(err),
			zap.String("user_id", req.UserID.String()),
		)
		return fmt.Errorf("failed to create permission request: %w", err)
	}

	return nil
}

func (r *permissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PermissionRequest, error) {
	query := `
		SELECT id, user_id, user_name, old_email, new_email, new_password,
		       description, status, created_at, updated_at
		FROM permission_requests
		WHERE id = $1
	`

	var req entity.PermissionRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.UserID,
		&req.UserName,
		&req.OldEmail,
		&req.NewEmail,
		&req.NewPasswordHash,
		&req.Description,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find permission request",
			zap.Error(err),
			zap.String("request_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find permission request: %w", err)
	}

	return &req, nil
}

func (r *permissionRepository) FindPending(ctx context.Context) ([]*entity.PermissionRequest, error) {
	query := `
		SELECT id, user_id, user_name, old_email, new_email, new_password,
		       description, status, created_at, updated_at
		FROM permission_requests
		WHERE status = 'pending'
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find pending requests", zap.Error(err))
		return nil, fmt.Errorf("failed to find pending requests: %w", err)
	}
	defer rows.Close()

	var requests []*entity.PermissionRequest
	for rows.Next() {
		var req entity.PermissionRequest
		err := rows.Scan(
			&req.ID,
			&req.UserID,
			&req.UserName,
			&req.OldEmail,
			&req.NewEmail,
			&req.NewPasswordHash,
			&req.Description,
			&req.Status,
			&req.CreatedAt,
			&req.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan permission request", zap.Error(err))
			return nil, fmt.Errorf("failed to scan permission request: %w", err)
		}
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate permission requests: %w", err)
	}

	return requests, nil
}

func (r *permissionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RequestStatus) error {
	query := `
		UPDATE permission_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update request status",
			zap.Error(err),
			zap.String("request_id", id.String()),
		)
		return fmt.Errorf("failed to update request status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("permission request %s not found", id.String())
	}

	return nil
}
