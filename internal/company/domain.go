// Package company mirrors the remote company resource: the paged company
// collection plus its satellite records (addresses, approvals) and the
// company-related parameter catalogs.
package company

import "time"

// Company is a customer company on the platform.
type Company struct {
	ID        string    `json:"id"`
	CardName  string    `json:"card_name"`
	CardCode  string    `json:"card_code,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Type      string    `json:"type,omitempty"`
	Country   string    `json:"country,omitempty"`
	Status    string    `json:"status,omitempty"`
	AvatarURL string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EntityID implements collection.Entity.
func (c Company) EntityID() string { return c.ID }

// Address is a company address record.
type Address struct {
	ID        string `json:"id,omitempty"`
	CompanyID string `json:"company_id"`
	Title     string `json:"title,omitempty"`
	Street    string `json:"street,omitempty"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
	ZipCode   string `json:"zip_code,omitempty"`
}

// Approval is one step of a company's approval history.
type Approval struct {
	ID        string    `json:"id,omitempty"`
	CompanyID string    `json:"company_id"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
