// Package normalize maps free-text Hebrew status and category labels from
// report extractions onto the closed code sets in models.
package normalize

import (
	"sort"
	"strings"

	"github.com/sitewatch/sitewatch/internal/models"
)

// Input is the text a status rule inspects.
type Input struct {
	Status string // folded status label
	Notes  string // folded notes
}

// Combined returns status and notes joined for keyword scans.
func (in Input) Combined() string {
	if in.Notes == "" {
		return in.Status
	}
	return in.Status + " " + in.Notes
}

// StatusRule is one (predicate, result) pair. Rules are evaluated in order
// and the first match wins.
type StatusRule struct {
	Name   string
	Match  func(Input) bool
	Result models.Status
}

// CategoryRule is one (predicate, result) pair for categories. The input is
// the folded category label and the folded description.
type CategoryRule struct {
	Name   string
	Match  func(label, description string) bool
	Result models.Category
}

// StatusRules is the ordered rule list used by Status.
var StatusRules = buildStatusRules()

// CategoryRules is the ordered rule list used by Category.
var CategoryRules = buildCategoryRules()

// Status normalizes a raw status label plus free-text notes. The second
// return value is false when nothing matched and IN_PROGRESS was assumed.
func Status(raw, notes string) (models.Status, bool) {
	in := Input{Status: fold(raw), Notes: fold(notes)}
	for _, r := range StatusRules {
		if r.Match(in) {
			return r.Result, true
		}
	}
	return models.StatusInProgress, false
}

// Category normalizes a raw category label, letting the description
// override it. The second return value is false when OTHER was assumed.
func Category(raw, description string) (models.Category, bool) {
	label, desc := fold(raw), fold(description)
	for _, r := range CategoryRules {
		if r.Match(label, desc) {
			return r.Result, true
		}
	}
	return models.CategoryOther, false
}

// HasDefectKeyword reports whether text contains any defect keyword.
func HasDefectKeyword(text string) bool {
	return containsAny(fold(text), DefectKeywords)
}

// HasPartialKeyword reports whether text contains any partial-work keyword.
func HasPartialKeyword(text string) bool {
	return containsAny(fold(text), PartialKeywords)
}

// HasVerificationKeyword reports whether text contains any verification keyword.
func HasVerificationKeyword(text string) bool {
	return containsAny(fold(text), VerificationKeywords)
}

func buildStatusRules() []StatusRule {
	rules := []StatusRule{
		{
			Name:   "defect-keyword",
			Match:  func(in Input) bool { return containsAny(in.Combined(), DefectKeywords) },
			Result: models.StatusDefect,
		},
		{
			Name:   "partial-keyword",
			Match:  func(in Input) bool { return containsAny(in.Status, PartialKeywords) },
			Result: models.StatusInProgress,
		},
	}
	keys := longestFirst(StatusPhrases)
	for _, key := range keys {
		rules = append(rules, StatusRule{
			Name:   "exact:" + key,
			Match:  func(in Input) bool { return in.Status == key },
			Result: StatusPhrases[key],
		})
	}
	for _, key := range keys {
		rules = append(rules, StatusRule{
			Name:   "contains:" + key,
			Match:  func(in Input) bool { return strings.Contains(in.Status, key) },
			Result: StatusPhrases[key],
		})
	}
	return rules
}

func buildCategoryRules() []CategoryRule {
	var rules []CategoryRule
	for _, key := range longestFirst(DescriptionOverrides) {
		rules = append(rules, CategoryRule{
			Name:   "description:" + key,
			Match:  func(_, desc string) bool { return strings.Contains(desc, key) },
			Result: DescriptionOverrides[key],
		})
	}
	keys := longestFirst(CategoryLabels)
	for _, key := range keys {
		rules = append(rules, CategoryRule{
			Name:   "exact:" + key,
			Match:  func(label, _ string) bool { return label == key },
			Result: CategoryLabels[key],
		})
	}
	for _, key := range keys {
		rules = append(rules, CategoryRule{
			Name:   "contains:" + key,
			Match:  func(label, _ string) bool { return strings.Contains(label, key) },
			Result: CategoryLabels[key],
		})
	}
	return rules
}

// longestFirst returns the keys of m ordered by descending rune length, ties
// broken lexically so rule order is deterministic.
func longestFirst[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := len([]rune(keys[i])), len([]rune(keys[j]))
		if li != lj {
			return li > lj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func containsAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// fold lower-cases s, unifies dash variants and collapses whitespace.
func fold(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("–", " - ", "—", " - ", "־", " - ", "-", " - ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
