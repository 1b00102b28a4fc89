package workflow

import (
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/finmitra/finmitra/internal/intent"
	"github.com/finmitra/finmitra/internal/profile"
	"github.com/finmitra/finmitra/internal/retrieval"
	"github.com/finmitra/finmitra/internal/scams"
)

func TestWellGrounded(t *testing.T) {
	passages := []retrieval.Passage{
		{Content: "a", Score: 0.2},
		{Content: "b", Score: 0.45},
	}

	if !wellGrounded(passages, 0.4) {
		t.Error("a passage at 0.45 clears a 0.4 threshold")
	}
	if wellGrounded(passages, 0.5) {
		t.Error("no passage clears a 0.5 threshold")
	}
	if wellGrounded(nil, 0.4) {
		t.Error("no passages is never well grounded")
	}
}

func TestKindsForDomain(t *testing.T) {
	tests := []struct {
		domain intent.Domain
		want   []retrieval.SourceKind
	}{
		{intent.DomainSchemes, []retrieval.SourceKind{retrieval.SourceGraph, retrieval.SourceSemantic}},
		{intent.DomainConcept, []retrieval.SourceKind{retrieval.SourceSemantic, retrieval.SourceMemory}},
		{intent.DomainFallback, []retrieval.SourceKind{retrieval.SourceSemantic}},
	}

	for _, tt := range tests {
		got := kindsForDomain(tt.domain)
		if len(got) != len(tt.want) {
			t.Errorf("kindsForDomain(%s) = %v, want %v", tt.domain, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("kindsForDomain(%s) = %v, want %v", tt.domain, got, tt.want)
				break
			}
		}
	}
}

func TestBroadenQueryStable(t *testing.T) {
	p := profile.Profile{}
	p.Set(profile.AttrState, "Bihar", time.Now())
	p.Set(profile.AttrOccupation, "farmer", time.Now())

	first := broadenQuery("crop insurance", p)
	if !strings.Contains(first, "Bihar") || !strings.Contains(first, "farmer") {
		t.Errorf("broadened query missing profile facts: %q", first)
	}

	// A second pass over an already-broadened query must not grow it.
	second := broadenQuery(first, p)
	if second != first {
		t.Errorf("broadenQuery should be idempotent: %q then %q", first, second)
	}
}

func TestNeedsRewrite(t *testing.T) {
	rt := &Runtime{RewriteCap: 2}

	tests := []struct {
		name string
		ts   TurnState
		want bool
	}{
		{"weak with budget", TurnState{LowGrounding: true, RewriteCount: 1}, true},
		{"weak exhausted", TurnState{LowGrounding: true, RewriteCount: 2}, false},
		{"well grounded", TurnState{LowGrounding: false, RewriteCount: 0}, false},
	}

	cond := needsRewrite(rt)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state.New(nil).Set(KeyTurn, tt.ts)
			if got := cond(s); got != tt.want {
				t.Errorf("needsRewrite = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComposeAnswerPromptHedges(t *testing.T) {
	ts := &TurnState{
		Utterance:      "What is PMAY?",
		HistorySummary: "Conversation just started.",
		Passages: []retrieval.Passage{
			{Source: retrieval.SourceGraph, Content: "PMAY is a housing scheme.", Score: 0.9},
		},
	}

	grounded := composeAnswerPrompt(ts)
	if !strings.Contains(grounded, "[1] (graph) PMAY is a housing scheme.") {
		t.Errorf("prompt missing numbered passage:\n%s", grounded)
	}
	if strings.Contains(grounded, hedgedInstruction) {
		t.Error("well grounded prompt should not hedge")
	}

	ts.LowGrounding = true
	hedged := composeAnswerPrompt(ts)
	if !strings.Contains(hedged, hedgedInstruction) {
		t.Error("low grounding prompt should hedge")
	}

	ts.Passages = nil
	empty := composeAnswerPrompt(ts)
	if !strings.Contains(empty, "(no reference passages found)") {
		t.Error("empty retrieval should be stated in the prompt")
	}
}

func TestRenderVerdict(t *testing.T) {
	v := &scams.FusedVerdict{
		Label:             scams.RiskHigh,
		Confidence:        0.8,
		Flags:             []string{"payment-link", "urgency-language"},
		ReducedConfidence: true,
	}

	got := renderVerdict(v)

	if !strings.HasPrefix(got, "Risk level: HIGH.") {
		t.Errorf("verdict should lead with the label:\n%s", got)
	}
	if !strings.Contains(got, "payment-link, urgency-language") {
		t.Errorf("verdict should list flags:\n%s", got)
	}
	if !strings.Contains(got, "less certain than usual") {
		t.Errorf("reduced confidence should be disclosed:\n%s", got)
	}

	clean := renderVerdict(&scams.FusedVerdict{Label: scams.RiskLow, Confidence: 0.9})
	if strings.Contains(clean, "Warning signs") {
		t.Errorf("clean verdict should not list flags:\n%s", clean)
	}
}

func TestMonthToDate(t *testing.T) {
	now := time.Date(2026, time.March, 15, 13, 45, 0, 0, time.UTC)
	r := monthToDate(now)

	wantFrom := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !r.From.Equal(wantFrom) {
		t.Errorf("From = %v, want %v", r.From, wantFrom)
	}
	if !r.To.After(now) {
		t.Errorf("To = %v should include now %v", r.To, now)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{200, "₹200"},
		{1250.5, "₹1250.5"},
		{0, "₹0"},
	}

	for _, tt := range tests {
		if got := formatAmount(tt.amount); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
