package models

import "time"

const (
	RoleUser     = "user"
	RoleProvider = "provider"
)

type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Password  []byte
	Role      string
	CreatedAt time.Time
}

// ProviderProfile is created alongside a user signing up as a provider.
// Approval starts pending; an admin flips it, never the provider.
type ProviderProfile struct {
	UserID           string
	ServiceTypes     []string
	CoverageRadiusKm float64
}
