package entity

import "github.com/google/uuid"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// PermissionRequest is a credential change that needs admin approval.
type PermissionRequest struct {
	BaseNoDelete
	UserID          uuid.UUID     `db:"user_id"`
	UserName        string        `db:"user_name"`
	OldEmail        string        `db:"old_email"`
	NewEmail        string        `db:"new_email"`
	NewPasswordHash string        `db:"new_password"`
	Description     string        `db:"description"`
	Status          RequestStatus `db:"status"`
}
