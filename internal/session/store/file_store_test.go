package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"commerce-admin-console/client/internal/session/domain"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	sess, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess != nil {
		t.Fatal("Load before Save should return nil")
	}

	want := &domain.Session{
		AccessToken: "T1",
		User:        &domain.Identity{UserID: "u1", CompanyID: "c1"},
	}
	if err := fs.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil || got.AccessToken != "T1" || got.User.UserID != "u1" {
		t.Errorf("Load = %+v, want %+v", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 0600", perm)
	}
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	// Clearing a missing file is fine.
	if err := fs.Clear(ctx); err != nil {
		t.Fatalf("Clear on missing file: %v", err)
	}

	if err := fs.Save(ctx, &domain.Session{AccessToken: "T1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := fs.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	sess, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess != nil {
		t.Error("Load after Clear should return nil")
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := fs.Load(context.Background()); err == nil {
		t.Error("Load of corrupt file should fail")
	}
}
