package request

type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	DOB    *string `json:"dob,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
}
