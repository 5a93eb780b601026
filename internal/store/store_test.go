package store

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	c, err := Open(dbPath, ttl)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestOutlineCache_SetGet(t *testing.T) {
	c := openTestCache(t, 24*time.Hour)

	if _, ok := c.GetOutline("abc"); ok {
		t.Fatal("expected miss")
	}

	c.SetOutline("abc", "main.c", "  fn: main\n")

	got, ok := c.GetOutline("abc")
	if !ok {
		t.Fatal("expected hit")
	}
	if got != "  fn: main\n" {
		t.Errorf("got %q, want %q", got, "  fn: main\n")
	}
}

func TestOutlineCache_Expiry(t *testing.T) {
	c := openTestCache(t, 1*time.Second)
	c.SetOutline("abc", "main.c", "outline")

	// Backdate the entry.
	c.db.Exec("UPDATE outline_cache SET created = ? WHERE hash = ?",
		time.Now().Add(-2*time.Second).Unix(), "abc")

	if _, ok := c.GetOutline("abc"); ok {
		t.Fatal("expected stale miss")
	}
}

func TestOutlineCache_SupersededByPath(t *testing.T) {
	c := openTestCache(t, 24*time.Hour)
	c.SetOutline("v1", "main.c", "old")
	c.SetOutline("v2", "main.c", "new")
	c.SetOutline("v9", "other.c", "other")

	if _, ok := c.GetOutline("v1"); ok {
		t.Error("old hash for main.c should be dropped")
	}
	if got, _ := c.GetOutline("v2"); got != "new" {
		t.Errorf("got %q, want %q", got, "new")
	}
	if n := c.Len(); n != 2 {
		t.Errorf("Len = %d, want 2", n)
	}
}

func TestOpen_PurgesStale(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	c, err := Open(dbPath, time.Hour)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	c.SetOutline("abc", "main.c", "outline")
	c.db.Exec("UPDATE outline_cache SET created = ?", time.Now().Add(-2*time.Hour).Unix())
	c.Close()

	c, err = Open(dbPath, time.Hour)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c.Close()
	if n := c.Len(); n != 0 {
		t.Errorf("Len after reopen = %d, want 0", n)
	}
}

func TestNilCache(t *testing.T) {
	var c *Cache

	if _, ok := c.GetOutline("abc"); ok {
		t.Error("nil cache should miss")
	}
	c.SetOutline("abc", "main.c", "outline") // must not panic
	if c.Len() != 0 {
		t.Error("nil cache should be empty")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}
