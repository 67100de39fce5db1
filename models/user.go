package models

import (
	"fmt"
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleManager  UserRole = "manager"
	RoleRider    UserRole = "rider"
)

// Roles lists every role in declaration order.
var Roles = []UserRole{RoleCustomer, RoleManager, RoleRider}

// ParseUserRole accepts the lower-case role name.
func ParseUserRole(s string) (UserRole, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q: must be customer, manager or rider", s)
}

type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    *string   `json:"first_name,omitempty"`
	LastName     *string   `json:"last_name,omitempty"`
	BirthDate    time.Time `json:"birth_date"`
	Role         UserRole  `json:"role"`
}

type SignUpInput struct {
	Username  string    `json:"username" validate:"required,min=3,max=64,alphanum"`
	Password  string    `json:"password" validate:"required,min=6,max=72"`
	FirstName *string   `json:"first_name" validate:"omitempty,max=64"`
	LastName  *string   `json:"last_name" validate:"omitempty,max=64"`
	BirthDate time.Time `json:"birth_date" validate:"required"`
}
