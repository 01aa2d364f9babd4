package proposal

import (
	"context"

	"go.uber.org/zap"

	"commerce-admin-console/client/internal/api"
	"commerce-admin-console/client/internal/collection"
	"commerce-admin-console/client/internal/parameter"
)

// Service owns the cached proposal collection and the offer negotiation
// endpoints.
type Service struct {
	store  *collection.Store[Proposal]
	client *api.Client
	params *parameter.Service
	log    *zap.Logger
}

// NewService returns a proposal Service over the given API client.
func NewService(client *api.Client, params *parameter.Service, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:  collection.NewStore[Proposal](&fetcher{client: client}, log),
		client: client,
		params: params,
		log:    log,
	}
}

// Subscribe streams collection state; see collection.Store.Subscribe.
func (s *Service) Subscribe() (<-chan collection.State[Proposal], func()) {
	return s.store.Subscribe()
}

// Snapshot returns the current collection state.
func (s *Service) Snapshot() collection.State[Proposal] { return s.store.Snapshot() }

// List fetches one page of proposals into the mirror.
func (s *Service) List(ctx context.Context, q collection.Query) (collection.State[Proposal], error) {
	return s.store.List(ctx, q)
}

// Search filters proposals server-side by title.
func (s *Service) Search(ctx context.Context, query string) ([]Proposal, error) {
	return s.store.Search(ctx, query)
}

// GetByID looks a proposal up in the local mirror and selects it.
func (s *Service) GetByID(id string) (Proposal, error) { return s.store.GetByID(id) }

// Create publishes a proposal and prepends the server's record.
func (s *Service) Create(ctx context.Context, draft Proposal) (Proposal, error) {
	return s.store.Create(ctx, draft)
}

// Update rewrites a proposal with the server's returned representation.
func (s *Service) Update(ctx context.Context, id string, patch Proposal) (Proposal, error) {
	return s.store.Update(ctx, id, patch)
}

// Delete withdraws a proposal.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Reset drops the mirror.
func (s *Service) Reset() { s.store.Reset() }

type offersEnvelope struct {
	Body []Offer `json:"body"`
}

// Offers returns the offers made on one proposal.
func (s *Service) Offers(ctx context.Context, proposalID string) ([]Offer, error) {
	var resp offersEnvelope
	if err := s.client.Get(ctx, "/offer/proposal/"+proposalID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// CreateOffer places an offer on a proposal.
func (s *Service) CreateOffer(ctx context.Context, offer Offer) (Offer, error) {
	var created Offer
	if err := s.client.Post(ctx, "/offer/", offer, &created); err != nil {
		return Offer{}, err
	}
	return created, nil
}

// UpdateOffer rewrites an offer; used by the negotiation flow to move its
// deal status. The server's representation wins, as everywhere.
func (s *Service) UpdateOffer(ctx context.Context, offer Offer) (Offer, error) {
	var updated Offer
	if err := s.client.Put(ctx, "/offer/"+offer.ID, offer, &updated); err != nil {
		return Offer{}, err
	}
	return updated, nil
}

// AcceptOffer marks the offer accepted.
func (s *Service) AcceptOffer(ctx context.Context, offer Offer) (Offer, error) {
	offer.DealStatus = DealStatusAccepted
	return s.UpdateOffer(ctx, offer)
}

// RejectOffer marks the offer rejected.
func (s *Service) RejectOffer(ctx context.Context, offer Offer) (Offer, error) {
	offer.DealStatus = DealStatusRejected
	return s.UpdateOffer(ctx, offer)
}

// PaymentTypes returns the PAYMENT_TYPES catalog.
func (s *Service) PaymentTypes(ctx context.Context) ([]parameter.Parameter, error) {
	return s.params.Category(ctx, parameter.CategoryPaymentTypes)
}

// Currencies returns the CURRENCIES catalog.
func (s *Service) Currencies(ctx context.Context) ([]parameter.Parameter, error) {
	return s.params.Category(ctx, parameter.CategoryCurrencies)
}
