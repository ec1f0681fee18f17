package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService interface {
	// CreateRequest lets a user file a credential change for admin review.
	// The current credentials are verified before the request is stored.
	CreateRequest(ctx context.Context, userID uuid.UUID, req *request.PermissionRequestCreate) (*response.PermissionRequestResponse, error)
	ListPending(ctx context.Context) ([]response.PermissionRequestResponse, error)
	Approve(ctx context.Context, requestID uuid.UUID) error
	Reject(ctx context.Context, requestID uuid.UUID) error
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) CreateRequest(ctx context.Context, userID uuid.UUID, req *request.PermissionRequestCreate) (*response.PermissionRequestResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Permission request validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. The requester must prove their current credentials
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || user.Email != req.OldEmail || !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		s.log.Warn("Permission request with invalid current credentials",
			zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("%w: invalid current email or password", ErrValidation)
	}

	// 3. Store the new password hashed, never plaintext
	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash new password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password: %w", err)
	}

	now := time.Now()
	permReq := &entity.PermissionRequest{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          user.ID,
		UserName:        user.Name,
		OldEmail:        req.OldEmail,
		NewEmail:        req.NewEmail,
		NewPasswordHash: newHash,
		Description:     req.Description,
		Status:          entity.RequestStatusPending,
	}

	if err := s.repo.Permission.Create(ctx, permReq); err != nil {
		s.log.Error("Failed to create permission request", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	s.log.Info("Permission request created",
		zap.String("request_id", permReq.ID.String()),
		zap.String("user_id", userID.String()))

	resp := response.PermissionRequestToResponse(permReq)
	return &resp, nil
}

func (s *adminService) ListPending(ctx context.Context) ([]response.PermissionRequestResponse, error) {
	requests, err := s.repo.Permission.FindPending(ctx)
	if err != nil {
		s.log.Error("Failed to list pending requests", zap.Error(err))
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	return response.PermissionRequestsToResponse(requests), nil
}

func (s *adminService) Approve(ctx context.Context, requestID uuid.UUID) error {
	// 1. Find request
	permReq, err := s.repo.Permission.FindByID(ctx, requestID)
	if err != nil {
		s.log.Error("Failed to find permission request", zap.Error(err), zap.String("request_id", requestID.String()))
		return fmt.Errorf("failed to find request: %w", err)
	}
	if permReq == nil {
		return fmt.Errorf("permission request %w", ErrNotFound)
	}
	if permReq.Status != entity.RequestStatusPending {
		return fmt.Errorf("%w: request already %s", ErrConflict, permReq.Status)
	}

	// 2. Apply the credential change to the user
	user, err := s.repo.User.FindByID(ctx, permReq.UserID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", permReq.UserID.String()))
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %w", ErrNotFound)
	}

	user.Email = permReq.NewEmail
	user.PasswordHash = permReq.NewPasswordHash
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to apply credential change", zap.Error(err), zap.String("user_id", user.ID.String()))
		return fmt.Errorf("failed to apply change: %w", err)
	}

	// 3. Old sessions carry stale identity after a credential change
	if err := s.repo.Session.RevokeAllUserSessions(ctx, user.ID); err != nil {
		s.log.Warn("Failed to revoke user sessions after credential change",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	// 4. Mark approved
	if err := s.repo.Permission.UpdateStatus(ctx, requestID, entity.RequestStatusApproved); err != nil {
		s.log.Error("Failed to mark request approved", zap.Error(err), zap.String("request_id", requestID.String()))
		return fmt.Errorf("failed to update request: %w", err)
	}

	s.log.Info("Permission request approved",
		zap.String("request_id", requestID.String()),
		zap.String("user_id", user.ID.String()))

	return nil
}

func (s *adminService) Reject(ctx context.Context, requestID uuid.UUID) error {
	permReq, err := s.repo.Permission.FindByID(ctx, requestID)
	if err != nil {
		s.log.Error("Failed to find permission request", zap.Error(err), zap.String("request_id", requestID.String()))
		return fmt.Errorf("failed to find request: %w", err)
	}
	if permReq == nil {
		return fmt.Errorf("permission request %w", ErrNotFound)
	}
	if permReq.Status != entity.RequestStatusPending {
		return fmt.Errorf("%w: request already %s", ErrConflict, permReq.Status)
	}

	if err := s.repo.Permission.UpdateStatus(ctx, requestID, entity.RequestStatusRejected); err != nil {
		s.log.Error("Failed to mark request rejected", zap.Error(err), zap.String("request_id", requestID.String()))
		return fmt.Errorf("failed to update request: %w", err)
	}

	s.log.Info("Permission request rejected", zap.String("request_id", requestID.String()))

	return nil
}
