// Package parameter reads the platform's parameter catalogs (countries,
// company types, currencies, ...). Catalogs are static per deployment, so
// each category is fetched once and memoized for the process lifetime.
package parameter

import (
	"context"
	"sync"

	"commerce-admin-console/client/internal/api"
)

// Catalog categories used across the console.
const (
	CategoryCountries        = "COUNTRIES"
	CategoryCompanyTypes     = "COMPANY_TYPE"
	CategoryCompanyDocs      = "COMPANY_DOCS"
	CategoryApprovalStatuses = "COMPANY_APPROVAL_STATUS"
	CategoryPaymentTypes     = "PAYMENT_TYPES"
	CategoryCurrencies       = "CURRENCIES"
)

// Parameter is one catalog entry.
type Parameter struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

type envelope struct {
	Body []Parameter `json:"body"`
}

// Service fetches and memoizes parameter catalogs.
type Service struct {
	client *api.Client

	mu    sync.Mutex
	cache map[string][]Parameter
}

// NewService returns a Service over the given API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client, cache: make(map[string][]Parameter)}
}

// Category returns the entries of one catalog, fetching it on first use.
// Failures are not cached; the next call retries.
func (s *Service) Category(ctx context.Context, category string) ([]Parameter, error) {
	s.mu.Lock()
	if cached, ok := s.cache[category]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	var resp envelope
	if err := s.client.Get(ctx, "/parameter/category/"+category, nil, &resp); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[category] = resp.Body
	s.mu.Unlock()
	return resp.Body, nil
}
