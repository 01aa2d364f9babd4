package user

import (
	"context"

	"go.uber.org/zap"

	"commerce-admin-console/client/internal/api"
	"commerce-admin-console/client/internal/collection"
)

// Service owns the cached user collection plus role administration.
type Service struct {
	store  *collection.Store[User]
	client *api.Client
	log    *zap.Logger
}

// NewService returns a user Service over the given API client.
func NewService(client *api.Client, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:  collection.NewStore[User](&fetcher{client: client}, log),
		client: client,
		log:    log,
	}
}

// Subscribe streams collection state; see collection.Store.Subscribe.
func (s *Service) Subscribe() (<-chan collection.State[User], func()) {
	return s.store.Subscribe()
}

// Snapshot returns the current collection state.
func (s *Service) Snapshot() collection.State[User] { return s.store.Snapshot() }

// List fetches the user listing into the mirror.
func (s *Service) List(ctx context.Context, q collection.Query) (collection.State[User], error) {
	return s.store.List(ctx, q)
}

// Search filters users server-side.
func (s *Service) Search(ctx context.Context, query string) ([]User, error) {
	return s.store.Search(ctx, query)
}

// GetByID looks a user up in the local mirror and selects it.
func (s *Service) GetByID(id string) (User, error) { return s.store.GetByID(id) }

// Create registers a user and prepends the server's record.
func (s *Service) Create(ctx context.Context, draft User) (User, error) {
	return s.store.Create(ctx, draft)
}

// Update rewrites a user with the server's returned representation.
func (s *Service) Update(ctx context.Context, id string, patch User) (User, error) {
	return s.store.Update(ctx, id, patch)
}

// Delete removes a user.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Reset drops the mirror.
func (s *Service) Reset() { s.store.Reset() }

type rolesEnvelope struct {
	Body []Role `json:"body"`
}

// Roles returns all grantable roles, or the roles of one user when userID is
// non-empty.
func (s *Service) Roles(ctx context.Context, userID string) ([]Role, error) {
	path := "/roles"
	if userID != "" {
		path += "/" + userID
	}
	var resp rolesEnvelope
	if err := s.client.Get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// SaveRole grants a role to a user.
func (s *Service) SaveRole(ctx context.Context, userID, roleID string) error {
	body := map[string]string{"user_id": userID, "role_id": roleID}
	return s.client.Post(ctx, "/roles/save", body, nil)
}

// DeleteRole revokes a role from a user.
func (s *Service) DeleteRole(ctx context.Context, userID, roleID string) error {
	return s.client.Delete(ctx, "/roles/delete/"+userID+"/"+roleID, nil)
}

type meEnvelope struct {
	User User `json:"user"`
}

// Me returns the signed-in user's account record.
func (s *Service) Me(ctx context.Context) (User, error) {
	var resp meEnvelope
	if err := s.client.Post(ctx, "/user/me", map[string]string{}, &resp); err != nil {
		return User{}, err
	}
	return resp.User, nil
}

// Register self-registers a new account via the public sign-up endpoint.
// Unlike Create, the result is not cached: the caller is not signed in yet.
func (s *Service) Register(ctx context.Context, signup SignUp) (User, error) {
	var resp dataEnvelope
	if err := s.client.Post(ctx, "/api/auth/signup", signup, &resp); err != nil {
		return User{}, err
	}
	return resp.Data, nil
}
