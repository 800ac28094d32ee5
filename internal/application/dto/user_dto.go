package dto

import "time"

// RegisterRequest registro de usuario. El rol no se acepta del cliente: lo
// asigna el sistema (primer usuario manager, siguientes operator).
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido tras un login exitoso.
type LoginResponse struct {
	Token    string `json:"access_token"`
	UserRole string `json:"user_role"`
}

// UserResponse representación de un usuario en respuestas HTTP.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
