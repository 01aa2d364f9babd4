package user

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

// listEnvelope wraps user listings. The endpoint reports no paging totals,
// so totals are derived from the page itself.
type listEnvelope struct {
	Body []User `json:"body"`
}

// dataEnvelope wraps single-user write responses.
type dataEnvelope struct {
	Data User `json:"data"`
}

func (f *fetcher) List(ctx context.Context, q collection.Query) (collection.Page[User], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("size", strconv.Itoa(q.Size))
	if q.SortField != "" {
		query.Set("sortBy", q.SortField)
		query.Set("sortType", q.SortDir)
	}
	if q.Filter != "" {
		query.Set("filter", q.Filter)
	}
	var resp listEnvelope
	if err := f.client.Get(ctx, "/api/user", query, &resp); err != nil {
		return collection.Page[User]{}, err
	}
	return collection.Page[User]{
		Items:      resp.Body,
		TotalSize:  len(resp.Body),
		TotalPages: 1,
	}, nil
}

func (f *fetcher) Search(ctx context.Context, query string) ([]User, error) {
	q := url.Values{}
	q.Set("filter", query)
	var resp listEnvelope
	if err := f.client.Get(ctx, "/api/user", q, &resp); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (f *fetcher) Create(ctx context.Context, draft User) (User, error) {
	var resp dataEnvelope
	if err := f.client.Post(ctx, "/api/user/", draft, &resp); err != nil {
		return User{}, err
	}
	return resp.Data, nil
}

func (f *fetcher) Update(ctx context.Context, id string, patch User) (User, error) {
	var resp dataEnvelope
	body := map[string]any{"id": id, "user": patch}
	if err := f.client.Put(ctx, "/api/user/"+id, body, &resp); err != nil {
		return User{}, err
	}
	return resp.Data, nil
}

func (f *fetcher) Delete(ctx context.Context, id string) error {
	return f.client.Delete(ctx, "/api/user/delete/"+id, nil)
}
