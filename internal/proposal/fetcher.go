package proposal

import (
	"context"
	"net/url"
	"strconv"

	"commerce-admin-console/client/internal/api"
	"commerce-admin-console/client/internal/collection"
)

type fetcher struct {
	client *api.Client
}

type listEnvelope struct {
	Body       []Proposal `json:"body"`
	TotalSize  int        `json:"totalSize"`
	TotalPages int        `json:"totalPage"`
}

type bodyEnvelope struct {
	Body Proposal `json:"body"`
}

type findEnvelope struct {
	Data []Proposal `json:"data"`
}

func (f *fetcher) List(ctx context.Context, q collection.Query) (collection.Page[Proposal], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("size", strconv.Itoa(q.Size))
	query.Set("sortBy", q.SortField)
	query.Set("sortType", q.SortDir)
	query.Set("filter", q.Filter)

	var resp listEnvelope
	if err := f.client.Get(ctx, "/proposal", query, &resp); err != nil {
		return collection.Page[Proposal]{}, err
	}
	return collection.Page[Proposal]{
		Items:      resp.Body,
		TotalSize:  resp.TotalSize,
		TotalPages: resp.TotalPages,
	}, nil
}

func (f *fetcher) Search(ctx context.Context, query string) ([]Proposal, error) {
	body := map[string]any{
		"queryParams": map[string]any{
			"filter":     map[string]string{"title": query},
			"pageNumber": 9999,
			"pageSize":   20,
		},
	}
	var resp findEnvelope
	if err := f.client.Post(ctx, "/proposal/find", body, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (f *fetcher) Create(ctx context.Context, draft Proposal) (Proposal, error) {
	var resp bodyEnvelope
	if err := f.client.Post(ctx, "/proposal/", draft, &resp); err != nil {
		return Proposal{}, err
	}
	return resp.Body, nil
}

func (f *fetcher) Update(ctx context.Context, id string, patch Proposal) (Proposal, error) {
	var resp bodyEnvelope
	if err := f.client.Put(ctx, "/proposal/"+id, patch, &resp); err != nil {
		return Proposal{}, err
	}
	return resp.Body, nil
}

func (f *fetcher) Delete(ctx context.Context, id string) error {
	return f.client.Put(ctx, "/proposal/delete/"+id, map[string]string{"id": id}, nil)
}
