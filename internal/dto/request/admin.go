package request

type PermissionRequestCreate struct {
	OldEmail    string `json:"old_email" validate:"required,email"`
	OldPassword string `json:"old_password" validate:"required"`
	NewEmail    string `json:"new_email" validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
	Description string `json:"description" validate:"required,max=500"`
}
