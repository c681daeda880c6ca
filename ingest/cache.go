package ingest

import (
	"fmt"
	"os"
	"sync"

	"github.com/hmelementsgreen/HRM-Dashboard/importer"
)

// TableCache memoizes parsed input tables so a run that feeds both pipelines
// from one folder parses each file once. Entries are validated against the
// file's (mtime, size) on every lookup; a changed file is re-read. The cache
// is owned by the orchestrator, never global.
type TableCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	modTimeUnixNano int64
	size            int64
	table           importer.Table
}

func NewTableCache() *TableCache {
	return &TableCache{entries: make(map[string]cacheEntry)}
}

// Read returns the parsed table for path, from cache when the file is
// unchanged since the last read.
func (c *TableCache) Read(path string, skipLeadingRows int) (importer.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return importer.Table{}, fmt.Errorf("stat input %s: %w", path, err)
	}

	key := cacheKey(path, skipLeadingRows)

	c.mu.Lock()
	entry, hit := c.entries[key]
	c.mu.Unlock()
	if hit && entry.modTimeUnixNano == info.ModTime().UnixNano() && entry.size == info.Size() {
		return entry.table, nil
	}

	reader, err := importer.ReaderForPath(path, skipLeadingRows)
	if err != nil {
		return importer.Table{}, err
	}
	table, err := reader.Read(path)
	if err != nil {
		return importer.Table{}, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{
		modTimeUnixNano: info.ModTime().UnixNano(),
		size:            info.Size(),
		table:           table,
	}
	c.mu.Unlock()

	return table, nil
}

// Invalidate drops every cached parse of path.
func (c *TableCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if keyPath(key) == path {
			delete(c.entries, key)
		}
	}
}

func cacheKey(path string, skipLeadingRows int) string {
	return fmt.Sprintf("%d\x1e%s", skipLeadingRows, path)
}

func keyPath(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == '\x1e' {
			return key[i+1:]
		}
	}
	return key
}
