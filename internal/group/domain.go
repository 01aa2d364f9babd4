// Package group mirrors the remote user group resource.
package group

import "time"

// Group is a named set of console users sharing the same access profile.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// EntityID implements collection.Entity.
func (g Group) EntityID() string { return g.ID }
