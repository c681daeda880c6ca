// Package importer reads the raw HR export files and maps their rows onto
// the fixed-shape domain records. Column lookup is resolved once per file
// against normalized headers; nothing downstream ever sees a raw column
// name.
package importer

import (
	"fmt"
	"strings"
)

// Record is one raw data row keyed by normalized header.
type Record struct {
	RowNumber int
	Values    map[string]string
}

// Get returns the trimmed cell under the first matching column name.
func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		if value, ok := r.Values[normalizeHeader(key)]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Table is the parsed content of one export file: the normalized header
// set plus all data rows.
type Table struct {
	Path    string
	Headers []string
	Rows    []Record
}

// HasColumn reports whether the file carries the named column.
func (t Table) HasColumn(name string) bool {
	normalized := normalizeHeader(name)
	for _, header := range t.Headers {
		if header == normalized {
			return true
		}
	}
	return false
}

// Require verifies the presence of every named column. A missing column is
// a fatal input error: the error names the first absent column so the
// operator can fix the export.
func (t Table) Require(names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return fmt.Errorf("%s: missing required column %q", t.Path, name)
		}
	}
	return nil
}

// FirstPresent returns the first of the candidate column names that exists
// in this file, for the dynamic free-text columns of the absence export.
func (t Table) FirstPresent(candidates ...string) (string, bool) {
	for _, candidate := range candidates {
		if t.HasColumn(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	for _, cut := range []string{"_", "-", " ", "(", ")"} {
		trimmed = strings.ReplaceAll(trimmed, cut, "")
	}
	return trimmed
}
