// Package store persists the client session across process restarts.
package store

import (
	"context"

	"commerce-admin-console/client/internal/session/domain"
)

// Store is the session persistence port. Load returns (nil, nil) when no
// session is stored. Clear is a full local wipe: token and identity go
// together, never one without the other.
type Store interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Clear(ctx context.Context) error
}
