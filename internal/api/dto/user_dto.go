package dto

// UserResponse is the identity record exposed over HTTP. The password hash
// never leaves the service.
type UserResponse struct {
	Cedula     string `json:"cedula"`
	Username   string `json:"username"`
	FullName   string `json:"nombre"`
	Email      string `json:"email,omitempty"`
	Rol        int    `json:"rol"`
	MFAEnabled bool   `json:"mfaEnabled"`
}
