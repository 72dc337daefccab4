package handler

import "github.com/numerisys/document-system/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authResponse is returned by both register and login: the account plus a
// fresh bearer token.
type authResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type successResponse struct {
	Success bool `json:"success"`
}
