package dto

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Rol      int    `json:"rol" validate:"required"`
}

// RegisterRequest payload for POST /register.
type RegisterRequest struct {
	Cedula     string `json:"cedula" validate:"required"`
	Username   string `json:"username" validate:"required"`
	FullName   string `json:"nombre" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Rol        int    `json:"rol" validate:"required"`
	MFAEnabled bool   `json:"mfaEnabled"`
}

// MFAVerifyRequest payload for POST /api/mfa/verify.
type MFAVerifyRequest struct {
	Cedula string `json:"cedula" validate:"required"`
	Code   string `json:"code" validate:"required,len=6"`
}
