package models

import "time"

// Role is the portal a user belongs to.
type Role string

const (
	AdminRole    Role = "admin"
	CustomerRole Role = "customer"
	SupplierRole Role = "supplier"
)

// Account represents an authenticated portal user.
type Account struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	PasswordHash        string    `json:"-"`
	Role                Role      `json:"role"`
	CompanyName         string    `json:"companyName,omitempty"`
	ProfileComplete     bool      `json:"profileComplete"`
	EmailRepliesEnabled bool      `json:"emailRepliesEnabled"`
	CreatedAt           time.Time `json:"createdAt"`
}
