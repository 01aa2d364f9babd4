package group

import (
	"context"

	"go.uber.org/zap"

	"commerce-admin-console/client/internal/api"
	"commerce-admin-console/client/internal/collection"
)

// Service owns the cached group collection.
type Service struct {
	store  *collection.Store[Group]
	client *api.Client
	log    *zap.Logger
}

// NewService returns a group Service over the given API client.
func NewService(client *api.Client, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:  collection.NewStore[Group](&fetcher{client: client}, log),
		client: client,
		log:    log,
	}
}

// Subscribe streams collection state; see collection.Store.Subscribe.
func (s *Service) Subscribe() (<-chan collection.State[Group], func()) {
	return s.store.Subscribe()
}

// Snapshot returns the current collection state.
func (s *Service) Snapshot() collection.State[Group] { return s.store.Snapshot() }

// List fetches one page of groups into the mirror.
func (s *Service) List(ctx context.Context, q collection.Query) (collection.State[Group], error) {
	return s.store.List(ctx, q)
}

// Search filters groups server-side by name.
func (s *Service) Search(ctx context.Context, query string) ([]Group, error) {
	return s.store.Search(ctx, query)
}

// GetByID looks a group up in the local mirror and selects it.
func (s *Service) GetByID(id string) (Group, error) { return s.store.GetByID(id) }

// Create adds a group and prepends the server's record.
func (s *Service) Create(ctx context.Context, draft Group) (Group, error) {
	return s.store.Create(ctx, draft)
}

// Update rewrites a group with the server's returned representation.
func (s *Service) Update(ctx context.Context, id string, patch Group) (Group, error) {
	return s.store.Update(ctx, id, patch)
}

// Delete removes a group.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Reset drops the mirror.
func (s *Service) Reset() { s.store.Reset() }
