package response

import (
	"time"

	"storefront/internal/data/entity"
)

type AuthResponse struct {
	UserID    string          `json:"user_id"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      entity.UserRole `json:"role"`
}

type UserResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       *string         `json:"phone,omitempty"`
	DOB         *string         `json:"dob,omitempty"`
	Gender      *string         `json:"gender,omitempty"`
	Role        entity.UserRole `json:"role"`
	NameChanged bool            `json:"name_changed"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:          user.ID.String(),
		Name:        user.Name,
		Email:       user.Email,
		Phone:       user.Phone,
		Gender:      user.Gender,
		Role:        user.Role,
		NameChanged: user.NameChanged,
		CreatedAt:   user.CreatedAt,
	}

	if user.DOB != nil {
		dob := user.DOB.Format("2006-01-02")
		resp.DOB = &dob
	}

	return resp
}

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	resp := AuthResponse{
		UserID: user.ID.String(),
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}
