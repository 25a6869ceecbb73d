package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account in the approval workflow: registered users stay
// unapproved until an administrator approves or rejects them.
type User struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	MobileNumber string    `json:"mobile_number" bson:"mobile_number"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	Approved     bool      `json:"approved" bson:"approved"`
	Rejected     bool      `json:"rejected" bson:"rejected"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// RegistrationRequest is the self-service signup payload.
type RegistrationRequest struct {
	Name            string `json:"name" validate:"omitempty,max=100"`
	Email           string `json:"email" validate:"required,email"`
	MobileNumber    string `json:"mobile_number" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed session token plus the display context
// the dashboard needs.
type LoginResponse struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token"`
}

// UserStatus is the caller-visible view of their own account.
type UserStatus struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	Approved     bool   `json:"approved"`
	Rejected     bool   `json:"rejected"`
}
