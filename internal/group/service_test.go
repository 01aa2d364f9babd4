package group

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"commerce-admin-console/client/internal/api"
	"commerce-admin-console/client/internal/collection"
)

func newTestService(t *testing.T, mux *http.ServeMux) *Service {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewService(api.New(srv.URL, 5*time.Second, nil, nil), nil)
}

func TestList_ParsesEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/group", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("sortBy") != "name" || q.Get("sortType") != "desc" {
			t.Errorf("query = %v", q)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"body":      []map[string]string{{"id": "g1", "name": "Buyers"}},
			"totalSize": 1,
			"totalPage": 1,
		})
	})
	s := newTestService(t, mux)

	state, err := s.List(context.Background(), collection.Query{
		Size: 5, SortField: "name", SortDir: "desc",
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(state.Items) != 1 || state.Items[0].Name != "Buyers" {
		t.Errorf("Items = %+v", state.Items)
	}
}

func TestDelete_RemovesFromMirror(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/group", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"body":      []map[string]string{{"id": "g1"}, {"id": "g2"}},
			"totalSize": 2,
			"totalPage": 1,
		})
	})
	mux.HandleFunc("/group/delete/g1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s", r.Method)
		}
		w.Write([]byte(`{}`))
	})
	s := newTestService(t, mux)

	if _, err := s.List(context.Background(), collection.Query{Size: 5}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if err := s.Delete(context.Background(), "g1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	items := s.Snapshot().Items
	if len(items) != 1 || items[0].ID != "g2" {
		t.Errorf("Items = %+v", items)
	}
}

func TestDelete_BeforeLoadIsRejected(t *testing.T) {
	s := newTestService(t, http.NewServeMux())

	if err := s.Delete(context.Background(), "g1"); !errors.Is(err, collection.ErrNotLoaded) {
		t.Fatalf("Delete: got %v, want ErrNotLoaded", err)
	}
}
