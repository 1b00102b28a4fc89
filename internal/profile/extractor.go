package profile

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Extraction is the outcome of analyzing one utterance: the facts it
// contained and whose profile they describe.
type Extraction struct {
	Facts Profile
	Scope Scope
}

// Extractor parses profile facts out of utterances. It is stateless and
// safe for concurrent use.
type Extractor struct {
	now func() time.Time
}

// NewExtractor creates an Extractor using the real clock.
func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// NewExtractorWithClock creates an Extractor with an injected clock for tests.
func NewExtractorWithClock(now func() time.Time) *Extractor {
	return &Extractor{now: now}
}

var (
	ageExpr = regexp.MustCompile(`(?i)\b(?:i\s*am|i'm|im|age(?:d)?\s*(?:is)?)\s*(\d{1,2})\b`)
	// "25 years old", "25 saal"
	ageSuffixExpr = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:years?\s*old|yrs?\s*old|saal)\b`)

	incomeExpr = regexp.MustCompile(`(?i)\b(?:earn|income|salary|kamata|kamati)\D{0,20}?(?:rs\.?|₹|inr)?\s*([\d,]+(?:\.\d{1,2})?)\s*(lakh|lac|k|thousand)?`)

	thirdPersonExpr = regexp.MustCompile(`(?i)\b(?:my|meri|mera|mere)\s+(mother|father|brother|sister|wife|husband|son|daughter|friend|uncle|aunt|maa|pita|bhai|behen|didi|dost)\b` +
		`|\bfor\s+(?:him|her|them)\b`)
)

var occupations = []string{
	"farmer", "student", "teacher", "driver", "shopkeeper", "weaver",
	"fisherman", "labourer", "laborer", "engineer", "nurse", "tailor",
	"entrepreneur", "artisan", "vendor", "kisan",
}

var states = []string{
	"andhra pradesh", "arunachal pradesh", "assam", "bihar", "chhattisgarh",
	"goa", "gujarat", "haryana", "himachal pradesh", "jharkhand", "karnataka",
	"kerala", "madhya pradesh", "maharashtra", "manipur", "meghalaya",
	"mizoram", "nagaland", "odisha", "punjab", "rajasthan", "sikkim",
	"tamil nadu", "telangana", "tripura", "uttar pradesh", "uttarakhand",
	"west bengal", "delhi", "jammu", "kashmir", "ladakh", "puducherry",
}

// Extract analyzes the utterance against the prior profile. It determines
// target scope from first- versus third-person referents and pulls structured
// facts via pattern recognition. It never fails; an utterance with nothing to
// extract yields an empty fact set with ScopeSelf.
func (e *Extractor) Extract(utterance string, prior Profile) Extraction {
	now := e.now()
	q := strings.ToLower(utterance)

	scope := ScopeSelf
	if thirdPersonExpr.MatchString(q) {
		scope = ScopeOther
	}

	var facts Profile

	if age, ok := extractAge(q); ok {
		facts.Set(AttrAge, age, now)
	}
	if income, ok := extractIncome(q); ok {
		facts.Set(AttrMonthlyIncome, income, now)
	}
	if st, ok := extractFromLexicon(q, states); ok {
		facts.Set(AttrState, st, now)
	}
	if occ, ok := extractFromLexicon(q, occupations); ok {
		facts.Set(AttrOccupation, normalizeOccupation(occ), now)
	}
	if rt, ok := extractRiskTolerance(q); ok {
		facts.Set(AttrRiskTolerance, rt, now)
	}

	return Extraction{Facts: facts, Scope: scope}
}

func extractAge(q string) (string, bool) {
	for _, expr := range []*regexp.Regexp{ageExpr, ageSuffixExpr} {
		if m := expr.FindStringSubmatch(q); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n >= 10 && n <= 99 {
				return m[1], true
			}
		}
	}
	return "", false
}

func extractIncome(q string) (string, bool) {
	m := incomeExpr.FindStringSubmatch(q)
	if m == nil {
		return "", false
	}

	raw := strings.ReplaceAll(m[1], ",", "")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}

	switch m[2] {
	case "lakh", "lac":
		amount *= 100000
	case "k", "thousand":
		amount *= 1000
	}

	return strconv.FormatFloat(amount, 'f', -1, 64), true
}

func extractFromLexicon(q string, lexicon []string) (string, bool) {
	for _, entry := range lexicon {
		if containsWord(q, entry) {
			return entry, true
		}
	}
	return "", false
}

func extractRiskTolerance(q string) (string, bool) {
	switch {
	case strings.Contains(q, "low risk") || strings.Contains(q, "safe investment"):
		return "low", true
	case strings.Contains(q, "high risk"):
		return "high", true
	}
	return "", false
}

func normalizeOccupation(occ string) string {
	switch occ {
	case "kisan":
		return "farmer"
	case "laborer":
		return "labourer"
	}
	return occ
}

// containsWord matches entry on word boundaries so "assam" does not fire
// inside "assamese curry recipe" style tokens it shouldn't.
func containsWord(q, entry string) bool {
	idx := strings.Index(q, entry)
	if idx < 0 {
		return false
	}
	before := idx == 0 || !isWordByte(q[idx-1])
	end := idx + len(entry)
	after := end == len(q) || !isWordByte(q[end])
	return before && after
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
