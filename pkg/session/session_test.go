package session

import (
	"context"
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	sess := New("/tmp/soc.json", "abc123")
	if sess.ID == "" {
		t.Fatal("New should assign an ID")
	}
	if sess.Document != "/tmp/soc.json" || sess.DocHash != "abc123" {
		t.Errorf("unexpected session fields: %+v", sess)
	}
	if sess.IsExpired() {
		t.Error("fresh session should not be expired")
	}

	other := New("/tmp/soc.json", "abc123")
	if other.ID == sess.ID {
		t.Error("sessions should get unique IDs")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	sess := New("/tmp/soc.json", "abc123")
	sess.Cursor = Cursor{Map: "soc", Block: "uart0", Register: "ctrl"}
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for stored session")
	}
	if got.Cursor.Register != "ctrl" {
		t.Errorf("cursor not preserved: %+v", got.Cursor)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	got, err = store.Get(ctx, sess.ID)
	if err != nil || got != nil {
		t.Errorf("Get after Delete = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestFileStoreFind(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	older := New("/tmp/soc.json", "v1")
	older.UpdatedAt = time.Now().Add(-time.Hour)
	newer := New("/tmp/soc.json", "v2")
	unrelated := New("/tmp/other.json", "v1")
	for _, s := range []*Session{older, newer, unrelated} {
		if err := store.Set(ctx, s); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}

	got, err := store.Find(ctx, "/tmp/soc.json")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if got == nil || got.ID != newer.ID {
		t.Errorf("Find should return the most recently updated session, got %+v", got)
	}

	got, err = store.Find(ctx, "/tmp/missing.json")
	if err != nil || got != nil {
		t.Errorf("Find for unknown document = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestFileStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	expired := New("/tmp/soc.json", "v1")
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	live := New("/tmp/soc.json", "v2")
	for _, s := range []*Session{expired, live} {
		if err := store.Set(ctx, s); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}

	if err := store.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup error: %v", err)
	}

	if got, _ := store.Get(ctx, expired.ID); got != nil {
		t.Error("expired session should be removed by Cleanup")
	}
	if got, _ := store.Get(ctx, live.ID); got == nil {
		t.Error("live session should survive Cleanup")
	}
}
