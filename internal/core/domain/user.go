package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "REGULAR_USER"
	RoleAdmin = "ADMIN"
)

var ErrEmailExists = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")

// Token parse failures. The auth gate treats both as unauthenticated; the
// split exists so expiry can be logged apart from tampering.
var ErrTokenExpired = errors.New("token expired")
var ErrTokenMalformed = errors.New("token malformed or signature invalid")

// User models a storefront account. PasswordHash is never serialised and
// never holds plaintext once the record has passed through the auth service.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
