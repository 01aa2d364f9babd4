package group

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
	Body       []Group `json:"body"`
	TotalSize  int     `json:"totalSize"`
	TotalPages int     `json:"totalPage"`
}

type bodyEnvelope struct {
	Body Group `json:"body"`
}

type findEnvelope struct {
	Data []Group `json:"data"`
}

func (f *fetcher) List(ctx context.Context, q collection.Query) (collection.Page[Group], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("size", strconv.Itoa(q.Size))
	query.Set("sortBy", q.SortField)
	query.Set("sortType", q.SortDir)
	query.Set("filter", q.Filter)

	var resp listEnvelope
	if err := f.client.Get(ctx, "/group", query, &resp); err != nil {
		return collection.Page[Group]{}, err
	}
	return collection.Page[Group]{
		Items:      resp.Body,
		TotalSize:  resp.TotalSize,
		TotalPages: resp.TotalPages,
	}, nil
}

func (f *fetcher) Search(ctx context.Context, query string) ([]Group, error) {
	body := map[string]any{
		"queryParams": map[string]any{
			"filter":     map[string]string{"name": query},
			"pageNumber": 9999,
			"pageSize":   20,
		},
	}
	var resp findEnvelope
	if err := f.client.Post(ctx, "/group/find", body, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (f *fetcher) Create(ctx context.Context, draft Group) (Group, error) {
	var resp bodyEnvelope
	if err := f.client.Post(ctx, "/group/", draft, &resp); err != nil {
		return Group{}, err
	}
	return resp.Body, nil
}

func (f *fetcher) Update(ctx context.Context, id string, patch Group) (Group, error) {
	var resp bodyEnvelope
	if err := f.client.Put(ctx, "/group/"+id, patch, &resp); err != nil {
		return Group{}, err
	}
	return resp.Body, nil
}

func (f *fetcher) Delete(ctx context.Context, id string) error {
	return f.client.Put(ctx, "/group/delete/"+id, map[string]string{"id": id}, nil)
}
