// Package proposal mirrors the remote proposal resource and the negotiable
// offers attached to each proposal.
package proposal

import "time"

// Proposal is a commercial proposal published by a company.
type Proposal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CompanyID   string    `json:"company_id"`
	Status      string    `json:"status,omitempty"`
	OfferCount  int       `json:"offer_count,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// EntityID implements collection.Entity.
func (p Proposal) EntityID() string { return p.ID }

// Deal statuses an offer moves through while being negotiated.
const (
	DealStatusPending  = "PENDING"
	DealStatusAccepted = "ACCEPTED"
	DealStatusRejected = "REJECTED"
)

// Offer is one negotiable offer on a proposal.
type Offer struct {
	ID          string    `json:"id,omitempty"`
	ProposalID  string    `json:"proposal_id"`
	CompanyID   string    `json:"company_id"`
	CompanyName string    `json:"company_name,omitempty"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	PaymentType string    `json:"payment_type"`
	DealStatus  string    `json:"deal_status"`
	OfferDate   time.Time `json:"offer_date"`
}
