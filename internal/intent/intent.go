// Package intent classifies user utterances into workflow domains.
// Classification is keyword-first for deterministic low-latency routing,
// with a temperature-zero model fallback when keywords abstain. It always
// produces exactly one domain and never fails: any ambiguity or model
// error resolves to DomainFallback.
package intent

import "slices"

// Domain identifies a top-level workflow path.
type Domain string

// The closed set of routable domains.
const (
	DomainSchemes  Domain = "schemes"
	DomainFinance  Domain = "finance-tracking"
	DomainScam     Domain = "scam-check"
	DomainConcept  Domain = "concept-explanation"
	DomainFallback Domain = "fallback"
)

// Domains lists every routable domain.
var Domains = []Domain{
	DomainSchemes,
	DomainFinance,
	DomainScam,
	DomainConcept,
	DomainFallback,
}

// Valid reports whether d is a member of the closed domain set.
func (d Domain) Valid() bool {
	return slices.Contains(Domains, d)
}
