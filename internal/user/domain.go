// Package user mirrors the remote user resource and its role assignments.
package user

import "time"

// User is a console user account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CompanyID string    `json:"company_id,omitempty"`
	Status    string    `json:"status,omitempty"`
	AvatarURL string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EntityID implements collection.Entity.
func (u User) EntityID() string { return u.ID }

// Role is a grantable role.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Granted is set when roles are listed for a specific user.
	Granted bool `json:"granted,omitempty"`
}

// SignUp is the self-registration request.
type SignUp struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Company  string `json:"company"`
}
