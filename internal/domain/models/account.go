package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Role determines what an administrator account may do. Only the main admin
// can approve accounts, reassign roles, or delete other accounts.
type Role string

const (
	RoleMainAdmin Role = "main_admin"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleMainAdmin || r == RoleAdmin
}

// Account is an administrator of the system. Non-main-admin accounts cannot
// log in until a main admin sets Approved.
type Account struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	Approved     bool      `json:"approved" db:"approved"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 150)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
	)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type AssignRoleRequest struct {
	Role Role `json:"role"`
}

func (r AssignRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.Required, validation.In(RoleMainAdmin, RoleAdmin)),
	)
}

type ApproveRequest struct {
	Approved bool `json:"approved"`
}
