package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestTableCache_SecondReadServedFromCache(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "absence.csv")
	writeFile(t, path, "First name,Last name\nAda,Lovelace\n")

	cache := NewTableCache()
	first, err := cache.Read(path, 0)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}

	second, err := cache.Read(path, 0)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if len(first.Rows) != 1 || len(second.Rows) != 1 {
		t.Fatalf("rows: first=%d second=%d", len(first.Rows), len(second.Rows))
	}
}

func TestTableCache_ChangedFileReRead(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "absence.csv")
	writeFile(t, path, "First name,Last name\nAda,Lovelace\n")

	cache := NewTableCache()
	if _, err := cache.Read(path, 0); err != nil {
		t.Fatalf("first read: %v", err)
	}

	writeFile(t, path, "First name,Last name\nAda,Lovelace\nAlan,Turing\n")
	// Force a distinct mtime in case the filesystem's resolution is coarse.
	newTime := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, newTime, newTime); err != nil {
		t.Fatal(err)
	}

	table, err := cache.Read(path, 0)
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected re-read to see 2 rows, got %d", len(table.Rows))
	}
}

func TestTableCache_MissingFileErrors(t *testing.T) {
	t.Parallel()
	cache := NewTableCache()
	if _, err := cache.Read(filepath.Join(t.TempDir(), "nope.csv"), 0); err == nil {
		t.Fatalf("expected stat error")
	}
}

func TestTableCache_InvalidateDropsAllSkipVariants(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "blip.csv")
	writeFile(t, path, "note line\nFirst Name,Last Name\nAda,Lovelace\n")

	cache := NewTableCache()
	if _, err := cache.Read(path, 1); err != nil {
		t.Fatalf("read: %v", err)
	}
	cache.Invalidate(path)

	if len(cache.entries) != 0 {
		t.Fatalf("expected empty cache after Invalidate, %d entries remain", len(cache.entries))
	}
}

func TestTableCache_SkipVariantsCachedSeparately(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "blip.csv")
	writeFile(t, path, "note line\nFirst Name,Last Name\nAda,Lovelace\n")

	cache := NewTableCache()
	withSkip, err := cache.Read(path, 1)
	if err != nil {
		t.Fatalf("read with skip: %v", err)
	}
	withoutSkip, err := cache.Read(path, 0)
	if err != nil {
		t.Fatalf("read without skip: %v", err)
	}

	if !withSkip.HasColumn("First Name") {
		t.Errorf("skip=1 should land on the real header, got %v", withSkip.Headers)
	}
	if withoutSkip.HasColumn("First Name") {
		t.Errorf("skip=0 should treat the note line as header, got %v", withoutSkip.Headers)
	}
}
