package dto

import "github.com/jhoicas/backoffice-umkm/internal/domain/entity"

// LoginRequest entrada de POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse salida de login. Algunos backends devuelven access_token en lugar de token.
type LoginResponse struct {
	Token       string      `json:"token"`
	AccessToken string      `json:"access_token,omitempty"`
	User        entity.User `json:"user"`
}

// RegisterResponse salida de POST /register (usuario sin password).
type RegisterResponse struct {
	Message string      `json:"message"`
	User    entity.User `json:"user"`
}
