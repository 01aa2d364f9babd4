package company

import (
	"context"

	"go.uber.org/zap"

	"commerce-admin-console/client/internal/api"
	"commerce-admin-console/client/internal/collection"
	"commerce-admin-console/client/internal/parameter"
)

// Service owns the cached company collection and the company's satellite
// endpoints. All collection reads and writes go through the embedded store,
// so every subscriber sees the same reconciled mirror.
type Service struct {
	store  *collection.Store[Company]
	client *api.Client
	params *parameter.Service
	log    *zap.Logger
}

// NewService returns a company Service over the given API client.
func NewService(client *api.Client, params *parameter.Service, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:  collection.NewStore[Company](&fetcher{client: client}, log),
		client: client,
		params: params,
		log:    log,
	}
}

// Subscribe streams collection state; see collection.Store.Subscribe.
func (s *Service) Subscribe() (<-chan collection.State[Company], func()) {
	return s.store.Subscribe()
}

// Snapshot returns the current collection state.
func (s *Service) Snapshot() collection.State[Company] { return s.store.Snapshot() }

// List fetches one page of companies into the mirror.
func (s *Service) List(ctx context.Context, q collection.Query) (collection.State[Company], error) {
	return s.store.List(ctx, q)
}

// Search filters companies server-side by name, code, or email.
func (s *Service) Search(ctx context.Context, query string) ([]Company, error) {
	return s.store.Search(ctx, query)
}

// GetByID looks a company up in the local mirror and selects it.
// Call List first; this never fetches.
func (s *Service) GetByID(id string) (Company, error) { return s.store.GetByID(id) }

// Create registers a new company and prepends the server's record.
func (s *Service) Create(ctx context.Context, draft Company) (Company, error) {
	return s.store.Create(ctx, draft)
}

// Update rewrites a company with the server's returned representation.
func (s *Service) Update(ctx context.Context, id string, patch Company) (Company, error) {
	return s.store.Update(ctx, id, patch)
}

// Delete soft-deletes a company and drops it from the mirror.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Reset drops the mirror; UI hygiene on navigation away.
func (s *Service) Reset() { s.store.Reset() }

type addressEnvelope struct {
	Body []Address `json:"body"`
}

// Addresses returns the company's address records.
func (s *Service) Addresses(ctx context.Context, companyID string) ([]Address, error) {
	var resp addressEnvelope
	if err := s.client.Get(ctx, "/address/company/"+companyID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// SaveAddress creates the address when it has no id yet, otherwise updates it.
func (s *Service) SaveAddress(ctx context.Context, addr Address) (Address, error) {
	var saved Address
	if addr.ID == "" {
		if err := s.client.Post(ctx, "/address/", addr, &saved); err != nil {
			return Address{}, err
		}
		return saved, nil
	}
	if err := s.client.Put(ctx, "/address/"+addr.ID, addr, &saved); err != nil {
		return Address{}, err
	}
	return saved, nil
}

// DeleteAddress soft-deletes an address record.
func (s *Service) DeleteAddress(ctx context.Context, id string) error {
	return s.client.Put(ctx, "/address/delete/"+id, map[string]string{"id": id}, nil)
}

// Approvals returns the company's approval history.
func (s *Service) Approvals(ctx context.Context, companyID string) ([]Approval, error) {
	var approvals []Approval
	if err := s.client.Get(ctx, "/company-approval/approvals/"+companyID, nil, &approvals); err != nil {
		return nil, err
	}
	return approvals, nil
}

// CreateApproval appends an approval step to a company's history.
func (s *Service) CreateApproval(ctx context.Context, approval Approval) (Approval, error) {
	var created Approval
	if err := s.client.Post(ctx, "/company-approval", approval, &created); err != nil {
		return Approval{}, err
	}
	return created, nil
}

// ValidateName asks the server whether a company name is available.
// A taken name comes back as a conflict error (legacy status 602).
func (s *Service) ValidateName(ctx context.Context, name string) error {
	return s.client.Get(ctx, "/company/name-validate/"+name, nil, nil)
}

// Countries returns the COUNTRIES catalog.
func (s *Service) Countries(ctx context.Context) ([]parameter.Parameter, error) {
	return s.params.Category(ctx, parameter.CategoryCountries)
}

// Types returns the COMPANY_TYPE catalog.
func (s *Service) Types(ctx context.Context) ([]parameter.Parameter, error) {
	return s.params.Category(ctx, parameter.CategoryCompanyTypes)
}

// Docs returns the COMPANY_DOCS catalog.
func (s *Service) Docs(ctx context.Context) ([]parameter.Parameter, error) {
	return s.params.Category(ctx, parameter.CategoryCompanyDocs)
}

// ApprovalStatuses returns the COMPANY_APPROVAL_STATUS catalog.
func (s *Service) ApprovalStatuses(ctx context.Context) ([]parameter.Parameter, error) {
	return s.params.Category(ctx, parameter.CategoryApprovalStatuses)
}
