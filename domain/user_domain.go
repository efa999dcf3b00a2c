package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "login successful"
	MessageSuccessGetMe    = "user profile retrieved successfully"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetMe    = "failed to retrieve user profile"

	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrCredentialsInvalid     = errors.New("invalid email or password")
	ErrUserNotFound           = errors.New("user not found")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Type     string `json:"type" validate:"required,oneof=individual business ngo"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	User struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Type      string    `json:"type"`
		CreatedAt time.Time `json:"created_at"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
)
