// Package absence holds the normalized leave records of the BrightHR export
// and their derived projections.
package absence

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/hmelementsgreen/HRM-Dashboard/internal/classify"
)

// Record is one row of the absence export, normalized into a fixed shape at
// ingestion. Category is always one of the five terminal values and
// overwrites the raw type in the cleaned output.
type Record struct {
	FirstName   string
	LastName    string
	Team        string
	Country     string
	RawType     string
	Description string
	// ExtraText carries the auxiliary free-text columns (reason, notes,
	// comment...) in their fixed candidate order, for the double-layer
	// reclassification pass.
	ExtraText []string

	StartDate    time.Time
	HasStart     bool
	EndDate      time.Time
	HasEnd       bool
	DurationDays float64

	EntitlementDays float64
	HasEntitlement  bool

	Category        classify.Category
	Organisation    string
	Suborganisation string

	SourceRow int
}

// Employee is the grouping identity derived from the name columns.
func (r Record) Employee() string {
	return strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
}

// CaseID is a stable identity for the absence case. Purpose text is
// deliberately excluded: editing the description must not change the case.
func (r Record) CaseID() string {
	start, end := "", ""
	if r.HasStart {
		start = r.StartDate.Format("2006-01-02")
	}
	if r.HasEnd {
		end = r.EndDate.Format("2006-01-02")
	}
	payload := fmt.Sprintf("%s|%s|%s|%s|%s|%s", r.Employee(), start, end, r.RawType, r.Team, r.Country)
	sum := md5.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// ClassifyRecords runs the two-pass classification over every record:
// direct keyword/literal mapping first, then the double-layer rescan of the
// enriched free-text blob for anything still in Others. Returns the Others
// counts after each pass for the audit printout.
func ClassifyRecords(records []Record) (othersAfterPass1, othersAfterPass2 int) {
	for i := range records {
		record := &records[i]
		record.Category = classify.Classify(record.RawType, record.Description)
		if record.Category != classify.Others {
			continue
		}
		othersAfterPass1++
		freeText := append([]string{record.Description}, record.ExtraText...)
		record.Category = classify.Reclassify(record.RawType, freeText)
		if record.Category == classify.Others {
			othersAfterPass2++
		}
	}
	return othersAfterPass1, othersAfterPass2
}

// Organisation tables: team name -> organisation / suborganisation.
var (
	teamsEG = map[string]struct{}{
		"HR": {}, "UK BDM": {}, "DE BDM": {}, "Engineering": {},
		"Operations": {}, "Investment": {}, "Investments": {},
	}
	teamsAG = map[string]struct{}{
		"Agri": {},
	}
	teamsUG = map[string]struct{}{
		"Executive": {}, "UG Business Support": {}, "Group Finance": {},
		"Property": {}, "Group Legal": {},
	}
)

// MapOrganisation assigns Organisation/Suborganisation from the team name.
// Unknown teams keep empty values.
func MapOrganisation(record *Record) {
	team := strings.TrimSpace(record.Team)
	switch {
	case contains(teamsEG, team):
		record.Organisation, record.Suborganisation = "AG", "EG"
	case contains(teamsAG, team):
		record.Organisation, record.Suborganisation = "AG", "AG"
	case contains(teamsUG, team):
		record.Organisation, record.Suborganisation = "UG", "UG"
	}
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}

// InferCountry fills a missing country from the team text: an explicit DE
// tag or a German- prefix means Germany, everything else defaults to UK.
func InferCountry(team string) string {
	upper := strings.ToUpper(team)
	if strings.Contains(upper, "GERM") {
		return "Germany"
	}
	for _, word := range strings.FieldsFunc(upper, func(r rune) bool {
		return !('A' <= r && r <= 'Z')
	}) {
		if word == "DE" {
			return "Germany"
		}
	}
	return "UK"
}

// NormalizeCountry cleans an explicit country cell, mapping blanks and
// "Unknown" to the UK default.
func NormalizeCountry(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" || strings.EqualFold(value, "unknown") {
		return "UK"
	}
	return value
}

// DropDuplicates removes exact duplicate rows (every normalized field
// equal), keeping first occurrences in order. Returns the removed count for
// the audit printout.
func DropDuplicates(records []Record) ([]Record, int) {
	seen := make(map[string]struct{}, len(records))
	kept := make([]Record, 0, len(records))
	removed := 0
	for _, record := range records {
		key := dedupeKey(record)
		if _, dup := seen[key]; dup {
			removed++
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, record)
	}
	return kept, removed
}

func dedupeKey(record Record) string {
	start, end := "", ""
	if record.HasStart {
		start = record.StartDate.Format("2006-01-02")
	}
	if record.HasEnd {
		end = record.EndDate.Format("2006-01-02")
	}
	return strings.Join([]string{
		record.FirstName, record.LastName, record.Team, record.Country,
		record.RawType, record.Description, start, end,
		fmt.Sprintf("%g|%g|%t", record.DurationDays, record.EntitlementDays, record.HasEntitlement),
		strings.Join(record.ExtraText, "\x1f"),
	}, "\x1e")
}
