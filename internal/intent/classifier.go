package intent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finmitra/finmitra/internal/generation"
	"github.com/finmitra/finmitra/pkg/formatting"
)

// Keyword tiers are checked in order; the first matching tier wins.
// Scam cues are checked before finance because messages like "your account
// will be blocked, pay now" contain spending verbs.
var (
	scamKeywords = []string{
		"scam", "fraud", "otp", "phishing", "suspicious", "blocked",
		"lottery", "is this real", "is this fake", "verify my account",
	}
	financeKeywords = []string{
		"spent", "spend", "paid", "bought", "budget", "expense",
		"transaction", "kharch", "kitna", "how much did i",
	}
	schemeKeywords = []string{
		"scheme", "yojana", "loan", "subsidy", "benefit", "eligibility",
		"eligible", "documents", "apply", "application", "procedure",
		"guidelines", "government", "pension", "scholarship",
	}
	conceptKeywords = []string{
		"what is", "kya hai", "explain", "meaning", "how does", "difference between",
		"samjhao", "matlab",
	}
	smallTalkKeywords = []string{
		"hi", "hello", "hey", "namaste", "thanks", "thank you", "ok", "yes", "no",
	}
)

type routeResponse struct {
	Route     string `json:"route"`
	Reasoning string `json:"reasoning"`
}

// Classifier maps an utterance plus recent conversation context to a Domain.
type Classifier struct {
	gen    generation.Service
	logger *slog.Logger
}

// NewClassifier creates a Classifier. gen may be nil, in which case the
// model fallback is skipped and unmatched utterances route to DomainFallback.
func NewClassifier(gen generation.Service, logger *slog.Logger) *Classifier {
	return &Classifier{
		gen:    gen,
		logger: logger.With("system", "intent"),
	}
}

// Classify returns exactly one domain for the utterance. It has no side
// effects and is deterministic for identical utterance and history input.
func (c *Classifier) Classify(ctx context.Context, utterance, historySummary string) Domain {
	q := strings.ToLower(strings.TrimSpace(utterance))

	if d, ok := classifyKeywords(q); ok {
		c.logger.InfoContext(ctx, "routed by keywords", "domain", d)
		return d
	}

	d := c.classifyModel(ctx, q, historySummary)
	c.logger.InfoContext(ctx, "routed by model fallback", "domain", d)
	return d
}

func classifyKeywords(q string) (Domain, bool) {
	if containsAny(q, scamKeywords) {
		return DomainScam, true
	}
	if containsAny(q, financeKeywords) {
		return DomainFinance, true
	}
	if containsAny(q, schemeKeywords) {
		return DomainSchemes, true
	}
	if containsAny(q, conceptKeywords) {
		return DomainConcept, true
	}
	if matchesSmallTalk(q) {
		return DomainFallback, true
	}
	return DomainFallback, false
}

func (c *Classifier) classifyModel(ctx context.Context, q, historySummary string) Domain {
	if c.gen == nil {
		return DomainFallback
	}

	prompt := fmt.Sprintf(routerPrompt, historySummary, q)

	content, err := c.gen.Generate(ctx, prompt, generation.LanguageEnglish)
	if err != nil {
		c.logger.WarnContext(ctx, "model routing failed", "error", err)
		return DomainFallback
	}

	parsed, err := formatting.Parse[routeResponse](content)
	if err != nil {
		c.logger.WarnContext(ctx, "model route unparseable", "error", err)
		return DomainFallback
	}

	d := Domain(strings.TrimSpace(parsed.Route))
	if !d.Valid() {
		return DomainFallback
	}
	return d
}

func containsAny(q string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// matchesSmallTalk requires a whole-token match so that greetings do not
// fire on substrings ("hi" inside "chip").
func matchesSmallTalk(q string) bool {
	for _, kw := range smallTalkKeywords {
		if q == kw || strings.HasPrefix(q, kw+" ") || strings.HasPrefix(q, kw+",") {
			return true
		}
	}
	return false
}

const routerPrompt = `You are a deterministic routing component for a financial assistant.
Choose the SINGLE most appropriate domain for the user's query.

Available domains:
- schemes: government scheme details, eligibility, documents, applications
- finance-tracking: recording expenses, budgets, or questions about the user's own spending
- scam-check: judging whether a message or offer is fraudulent
- concept-explanation: explaining a financial term or concept
- fallback: greetings, confirmations, or anything that fits no other domain

Rules:
- Choose exactly ONE domain.
- If the query involves eligibility, money owed to the user, documents, or
  applications, do NOT choose fallback.
- If uncertain, choose fallback.

Recent conversation:
%s

Query: %s

Respond with JSON: {"route": "<domain>", "reasoning": "<max 10 words>"}`
