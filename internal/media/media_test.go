package media

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"commerce-admin-console/client/internal/api"
)

func newTestService(t *testing.T, mux *http.ServeMux) *Service {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewService(api.New(srv.URL, 5*time.Second, nil, nil), nil)
}

func TestUploadAvatar_SendsFilePart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/avatar/", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		if header.Filename != "me.png" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "png-bytes" {
			t.Errorf("file body = %q", data)
		}
		json.NewEncoder(w).Encode(Media{ID: "m1", URL: "/avatars/m1.png"})
	})
	s := newTestService(t, mux)

	got, err := s.UploadAvatar(context.Background(), "me.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("UploadAvatar: %v", err)
	}
	if got.ID != "m1" || got.URL != "/avatars/m1.png" {
		t.Errorf("media = %+v", got)
	}
}

func TestUploadMedia_SendsMetadataFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/media/upload", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		if r.FormValue("company_id") != "c1" || r.FormValue("type") != "DOCUMENT" {
			t.Errorf("fields = %v", r.MultipartForm.Value)
		}
		if r.FormValue("title") != "Trade licence" {
			t.Errorf("title = %q", r.FormValue("title"))
		}
		json.NewEncoder(w).Encode(Media{ID: "m2", CompanyID: "c1"})
	})
	s := newTestService(t, mux)

	got, err := s.UploadMedia(context.Background(), "licence.pdf", strings.NewReader("pdf"), Upload{
		Title:     "Trade licence",
		Type:      "DOCUMENT",
		CompanyID: "c1",
	})
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}
	if got.ID != "m2" {
		t.Errorf("media = %+v", got)
	}
}

func TestDelete_UsesDeleteRoute(t *testing.T) {
	var hit bool
	mux := http.NewServeMux()
	mux.HandleFunc("/media/delete/m2", func(w http.ResponseWriter, r *http.Request) {
		hit = r.Method == http.MethodPut
		w.Write([]byte(`{}`))
	})
	s := newTestService(t, mux)

	if err := s.Delete(context.Background(), "m2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !hit {
		t.Error("delete route not hit with PUT")
	}
}
