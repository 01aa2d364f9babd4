package company

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"commerce-admin-console/client/internal/api"
	"commerce-admin-console/client/internal/collection"
)

// ErrDeleteRejected is returned when the server answers a delete with
// success=false (e.g. the company still has open proposals).
var ErrDeleteRejected = errors.New("company delete rejected by server")

// fetcher adapts the company REST endpoints to the collection contract,
// absorbing each endpoint's envelope quirks.
type fetcher struct {
	client *api.Client
}

// listEnvelope wraps paged company listings.
type listEnvelope struct {
	Body       []Company `json:"body"`
	TotalSize  int       `json:"totalSize"`
	TotalPages int       `json:"totalPage"`
}

// bodyEnvelope wraps single-company write responses.
type bodyEnvelope struct {
	Body Company `json:"body"`
}

// findEnvelope wraps the search endpoint, which uses "data" instead of "body".
type findEnvelope struct {
	Data []Company `json:"data"`
}

type deleteResult struct {
	Success bool `json:"success"`
}

func (f *fetcher) List(ctx context.Context, q collection.Query) (collection.Page[Company], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("size", strconv.Itoa(q.Size))
	query.Set("sortBy", q.SortField)
	query.Set("sortType", q.SortDir)
	query.Set("filter", q.Filter)

	var resp listEnvelope
	if err := f.client.Get(ctx, "/company", query, &resp); err != nil {
		return collection.Page[Company]{}, err
	}
	return collection.Page[Company]{
		Items:      resp.Body,
		TotalSize:  resp.TotalSize,
		TotalPages: resp.TotalPages,
	}, nil
}

// Search runs the server-side full-text filter over name, code, and email.
func (f *fetcher) Search(ctx context.Context, query string) ([]Company, error) {
	body := map[string]any{
		"queryParams": map[string]any{
			"filter": map[string]string{
				"card_name": query,
				"card_code": query,
				"email":     query,
			},
			"pageNumber": 9999,
			"pageSize":   20,
			"sortField":  "",
			"sortOrder":  "",
		},
	}
	var resp findEnvelope
	if err := f.client.Post(ctx, "/company/find", body, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (f *fetcher) Create(ctx context.Context, draft Company) (Company, error) {
	var resp bodyEnvelope
	if err := f.client.Post(ctx, "/company/", draft, &resp); err != nil {
		return Company{}, err
	}
	return resp.Body, nil
}

func (f *fetcher) Update(ctx context.Context, id string, patch Company) (Company, error) {
	var resp bodyEnvelope
	if err := f.client.Put(ctx, "/company/"+id, patch, &resp); err != nil {
		return Company{}, err
	}
	return resp.Body, nil
}

// Delete is a soft delete; the server reports refusal in-band via
// success=false rather than an error status.
func (f *fetcher) Delete(ctx context.Context, id string) error {
	var resp deleteResult
	body := map[string]string{"company_id": id}
	if err := f.client.Put(ctx, "/company/delete/"+id, body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return ErrDeleteRejected
	}
	return nil
}
