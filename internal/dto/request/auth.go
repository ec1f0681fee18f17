package request

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role" validate:"omitempty,oneof=buyer seller"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	DOB      *string `json:"dob,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender   *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
