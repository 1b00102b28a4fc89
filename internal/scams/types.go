// Package scams implements the three-signal scam classifier: a rule lexicon
// scan, an optional statistical model, and a generative risk judgment, fused
// into a single calibrated verdict.
package scams

// RiskLabel is an ordinal risk level.
type RiskLabel string

// Risk labels in ascending order.
const (
	RiskLow      RiskLabel = "LOW"
	RiskMedium   RiskLabel = "MEDIUM"
	RiskHigh     RiskLabel = "HIGH"
	RiskCritical RiskLabel = "CRITICAL"
)

var riskRank = map[RiskLabel]int{
	RiskLow:      0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// Rank returns the ordinal position of the label; unknown labels rank lowest.
func (l RiskLabel) Rank() int {
	return riskRank[l]
}

// Valid reports whether l is a member of the label set.
func (l RiskLabel) Valid() bool {
	_, ok := riskRank[l]
	return ok
}

// SignalSource identifies which detector produced a verdict.
type SignalSource string

// Signal sources.
const (
	SourceRule        SignalSource = "rule"
	SourceStatistical SignalSource = "statistical"
	SourceGenerative  SignalSource = "generative"
)

// SignalVerdict is one detector's judgment. Immutable once produced.
type SignalVerdict struct {
	Source     SignalSource `json:"source"`
	Label      RiskLabel    `json:"label"`
	Confidence float64      `json:"confidence"`
	Flags      []string     `json:"flags,omitempty"`
}

// FusedVerdict aggregates the available signals. Signals carries every
// contributing verdict for explainability; ReducedConfidence marks that at
// least one source was unavailable or failed.
type FusedVerdict struct {
	Label             RiskLabel       `json:"label"`
	Confidence        float64         `json:"confidence"`
	Flags             []string        `json:"flags"`
	Signals           []SignalVerdict `json:"signals"`
	ReducedConfidence bool            `json:"reduced_confidence"`
}

// SenderMeta carries optional message provenance for sender heuristics.
type SenderMeta struct {
	Sender  string `json:"sender,omitempty"`
	Subject string `json:"subject,omitempty"`
}
