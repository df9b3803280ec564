package dto

type RegisterRequest struct {
	RollNo     string `json:"roll_no" validate:"required,alphanum,min=4,max=20"`
	Password   string `json:"password" validate:"required,min=6"`
	Name       string `json:"name" validate:"required"`
	Department string `json:"department" validate:"required"`
	Batch      string `json:"batch" validate:"required"`

	ParentPhoneNumber *string `json:"parent_phone_number,omitempty" validate:"omitempty,len=10,numeric"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type AuthClaims struct {
	Subject string  `json:"sub"`
	Name    string  `json:"name"`
	Role    string  `json:"role"`
	Iat     float64 `json:"iat"`
	Expiry  float64 `json:"exp"`
}

type UpdateParentPhoneRequest struct {
	ParentPhoneNumber string `json:"parent_phone_number" validate:"required,len=10,numeric"`
}
