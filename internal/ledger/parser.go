package ledger

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// StatementKind classifies what a finance-tracking utterance asks for.
type StatementKind string

// Statement kinds.
const (
	StatementUnknown     StatementKind = "unknown"
	StatementTransaction StatementKind = "transaction"
	StatementBudget      StatementKind = "budget"
	StatementSpendQuery  StatementKind = "spend-query"
	StatementBudgetQuery StatementKind = "budget-query"
)

// Statement is the structured form of a finance-tracking utterance.
// Amount and Category are only meaningful for the kinds that carry them.
type Statement struct {
	Kind        StatementKind
	Amount      float64
	Category    Category
	HasCategory bool
	Range       DateRange
	Note        string
}

var (
	amountExpr = regexp.MustCompile(`(?i)(?:rs\.?|₹|inr)?\s*([\d,]+(?:\.\d{1,2})?)`)

	spendVerbs  = []string{"spent", "paid", "bought", "gave", "debited", "kharcha", "kharch kiya", "diya"}
	budgetCues  = []string{"set budget", "budget of", "budget for", "limit of", "monthly budget"}
	queryCues   = []string{"how much", "total", "kitna", "summary", "show my", "what did i spend"}
	budgetWords = []string{"budget", "limit"}
)

// categoryLexicon maps merchant and item keywords to categories, modeled on
// the cues UPI notification mails carry.
var categoryLexicon = map[Category][]string{
	CategoryTransport: {
		"auto", "taxi", "cab", "uber", "ola", "rickshaw", "bus", "train",
		"metro", "petrol", "diesel", "fuel", "travel",
	},
	CategoryFood: {
		"food", "lunch", "dinner", "breakfast", "zomato", "swiggy", "grocery",
		"groceries", "restaurant", "chai", "tea", "snacks", "khana",
	},
	CategoryShopping: {
		"shopping", "amazon", "flipkart", "myntra", "clothes", "shoes", "kapde",
	},
	CategoryEntertainment: {
		"movie", "cinema", "netflix", "hotstar", "game", "concert",
	},
	CategoryBills: {
		"bill", "electricity", "recharge", "rent", "wifi", "broadband", "gas", "water",
	},
	CategoryHealth: {
		"medicine", "doctor", "hospital", "pharmacy", "gym", "dawai",
	},
	CategoryEducation: {
		"fees", "tuition", "course", "books", "school", "college", "exam",
	},
}

// ParseStatement classifies a finance-tracking utterance and extracts its
// structured fields. Parsing is regex-first and never fails: utterances that
// fit no pattern come back as StatementUnknown for best-effort generation.
func ParseStatement(text string, now time.Time) Statement {
	q := strings.ToLower(strings.TrimSpace(text))

	category, hasCategory := inferCategory(q)

	// Queries are detected before spend verbs: "how much did I spend today"
	// contains "spend" but asks for an aggregate, not a write.
	if containsAny(q, queryCues) {
		kind := StatementSpendQuery
		if containsAny(q, budgetWords) {
			kind = StatementBudgetQuery
		}
		return Statement{
			Kind:        kind,
			Category:    category,
			HasCategory: hasCategory,
			Range:       inferRange(q, now),
		}
	}

	if containsAny(q, budgetCues) {
		if amount, ok := extractAmount(q); ok {
			return Statement{
				Kind:        StatementBudget,
				Amount:      amount,
				Category:    category,
				HasCategory: hasCategory,
			}
		}
	}

	if containsAny(q, spendVerbs) {
		if amount, ok := extractAmount(q); ok {
			return Statement{
				Kind:        StatementTransaction,
				Amount:      amount,
				Category:    category,
				HasCategory: hasCategory,
				Note:        strings.TrimSpace(text),
			}
		}
	}

	return Statement{Kind: StatementUnknown, Category: category, HasCategory: hasCategory}
}

func extractAmount(q string) (float64, bool) {
	m := amountExpr.FindStringSubmatch(q)
	if m == nil {
		return 0, false
	}

	raw := strings.ReplaceAll(m[1], ",", "")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}

// categoryOrder fixes the lexicon scan order so texts matching multiple
// categories always resolve the same way.
var categoryOrder = []Category{
	CategoryTransport, CategoryFood, CategoryShopping,
	CategoryEntertainment, CategoryBills, CategoryHealth, CategoryEducation,
}

func inferCategory(q string) (Category, bool) {
	for _, category := range categoryOrder {
		for _, kw := range categoryLexicon[category] {
			if containsToken(q, kw) {
				return category, true
			}
		}
	}
	return CategoryOther, false
}

func inferRange(q string, now time.Time) DateRange {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case strings.Contains(q, "yesterday"):
		return DateRange{From: today.AddDate(0, 0, -1), To: today}
	case strings.Contains(q, "this week"):
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		monday := today.AddDate(0, 0, -(weekday - 1))
		return DateRange{From: monday, To: today.AddDate(0, 0, 1)}
	case strings.Contains(q, "this month"):
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return DateRange{From: first, To: today.AddDate(0, 0, 1)}
	case strings.Contains(q, "today"):
		return DateRange{From: today, To: today.AddDate(0, 0, 1)}
	}

	// Default window: month to date.
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return DateRange{From: first, To: today.AddDate(0, 0, 1)}
}

func containsAny(q string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(q, cue) {
			return true
		}
	}
	return false
}

// containsToken matches kw on word boundaries so "gas" does not fire inside
// "gastritis" and "auto" matches "auto" but not "automatic".
func containsToken(q, kw string) bool {
	idx := 0
	for {
		i := strings.Index(q[idx:], kw)
		if i < 0 {
			return false
		}
		i += idx
		end := i + len(kw)
		before := i == 0 || !isWordByte(q[i-1])
		after := end == len(q) || !isWordByte(q[end])
		if before && after {
			return true
		}
		idx = end
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
