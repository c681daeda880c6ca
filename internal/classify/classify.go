// Package classify maps raw absence-type labels and free-text descriptions
// onto the closed five-category leave taxonomy.
package classify

import (
	"regexp"
	"strings"
)

// Category is one of the five terminal leave categories. Every record ends
// in exactly one; Others is the only category reachable without any keyword
// match.
type Category string

const (
	Annual   Category = "Annual"
	Medical  Category = "Medical"
	WFH      Category = "Work from home"
	External Category = "External & additional assignments"
	Others   Category = "Others"
)

// Categories lists the closed set in display order.
func Categories() []Category {
	return []Category{Annual, Medical, WFH, External, Others}
}

// Keyword sets for the fuzzy matchers. Multi-word keywords tolerate any mix
// of space/hyphen/underscore/slash between their parts.
var (
	medicalKeywords = []string{
		"sick", "sickness", "medical", "ill", "flu", "gp", "doctor", "hospital",
		"injury", "migraine", "sick note", "unwell", "incapacity",
	}
	externalKeywords = []string{
		"travel", "business trip", "offsite", "onsite", "client visit", "site visit",
		"training", "training day", "event", "events", "conference", "workshop", "course",
		"birthday", "birthday leave",
		"hamburg", "london", "berlin", "munich", "frankfurt", "cologne", "dusseldorf",
		"brussels", "amsterdam", "paris", "visit", "assignment", "external",
	}
	wfhKeywords = []string{
		"wfh", "work from home", "working from home", "workfromhome", "remote",
		"working remotely", "home working", "telework", "hybrid",
	}
	annualKeywords = []string{"annual", "holiday", "vacation", "pto"}
)

// literalCategories maps recognized raw-type labels directly, before any
// keyword scan.
var literalCategories = map[string]Category{
	"annual leave":        Annual,
	"maternity leave":     Annual,
	"bereavement leave":   Annual,
	"compassionate leave": Annual,
	"medical appointment": Medical,
	"dental appointment":  Medical,
	"sickness":            Medical,
	"wfh":                 WFH,
	"work from home":      WFH,
	"travel":              External,
	"training events":     External,
	"birthday":            External,
	"birthday leave":      External,
	"other":               Others,
}

type rule struct {
	category Category
	pattern  *regexp.Regexp
}

// rules is the precompiled keyword table, built once at startup and scanned
// in priority order: Medical > External > WFH > Annual.
var rules = []rule{
	{category: Medical, pattern: compileKeywords(medicalKeywords)},
	{category: External, pattern: compileKeywords(externalKeywords)},
	{category: WFH, pattern: compileKeywords(wfhKeywords)},
	{category: Annual, pattern: compileKeywords(annualKeywords)},
}

// Normalize lower-cases, folds punctuation and separators to single spaces
// and collapses whitespace, so "work-from-home", "work_from_home" and
// "work from home" compare identically.
func Normalize(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = separatorPattern.ReplaceAllString(value, " ")
	value = whitespacePattern.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

var (
	separatorPattern  = regexp.MustCompile(`[\-/_,;:()\[\]{}|.]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// compileKeywords builds one alternation over the set with word-boundary
// protection: a keyword never matches as a substring inside a longer word,
// and the parts of a multi-word keyword may be joined by any separator run.
func compileKeywords(keywords []string) *regexp.Regexp {
	variants := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		normalized := Normalize(keyword)
		if normalized == "" {
			continue
		}
		parts := strings.Split(normalized, " ")
		for i, part := range parts {
			parts[i] = regexp.QuoteMeta(part)
		}
		variants = append(variants, strings.Join(parts, `[\s\-_/]*`))
	}
	return regexp.MustCompile(`(?:^|[^a-z0-9])(?:` + strings.Join(variants, "|") + `)(?:$|[^a-z0-9])`)
}

func scanKeywords(text string) (Category, bool) {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.category, true
		}
	}
	return Others, false
}

// Classify performs the direct (pass 1) classification. A raw type that is
// an exact recognized literal maps straight to its category; the literal
// "other" falls through to the keyword scan so its description still gets a
// chance. Everything else runs the priority keyword scan over raw type plus
// the primary description.
func Classify(rawType, description string) Category {
	normalizedType := Normalize(rawType)
	if category, ok := literalCategories[normalizedType]; ok && category != Others {
		return category
	}

	combined := strings.TrimSpace(normalizedType + " " + Normalize(description))
	if category, found := scanKeywords(combined); found {
		return category
	}
	return Others
}

// Reclassify is the double-layer pass applied only to records that resolved
// to Others: the same priority scan, over an enriched blob concatenating
// every available free-text column. Its only effect is to shrink the Others
// bucket; it never moves a record out of a non-Others category.
func Reclassify(rawType string, freeText []string) Category {
	parts := make([]string, 0, len(freeText)+1)
	parts = append(parts, Normalize(rawType))
	for _, text := range freeText {
		if normalized := Normalize(text); normalized != "" {
			parts = append(parts, normalized)
		}
	}
	if category, found := scanKeywords(strings.Join(parts, " ")); found {
		return category
	}
	return Others
}
