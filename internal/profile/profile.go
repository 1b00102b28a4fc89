// Package profile derives and maintains structured user profiles from
// free-text utterances. Extraction is pattern-based and never fails: absent
// attributes simply stay unset, and downstream consumers treat unset as
// unknown rather than zero.
package profile

import (
	"maps"
	"time"
)

// Scope discriminates whose profile an utterance describes.
type Scope string

// Target scopes. ScopeSelf facts merge into the stored profile;
// ScopeOther facts describe a third party and never mutate stored state.
const (
	ScopeSelf  Scope = "self"
	ScopeOther Scope = "other"
)

// Attribute names recognized by the extractor.
const (
	AttrAge           = "age"
	AttrState         = "state"
	AttrOccupation    = "occupation"
	AttrMonthlyIncome = "monthly_income"
	AttrRiskTolerance = "risk_tolerance"
)

// Attribute is a single profile fact with its provenance timestamp.
type Attribute struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile maps attribute names to facts. The zero value is a valid empty profile.
type Profile struct {
	Attributes map[string]Attribute `json:"attributes"`
}

// Get returns the value for an attribute name and whether it is set.
func (p Profile) Get(name string) (string, bool) {
	a, ok := p.Attributes[name]
	if !ok {
		return "", false
	}
	return a.Value, true
}

// Set records an attribute value with the given provenance timestamp.
func (p *Profile) Set(name, value string, at time.Time) {
	if p.Attributes == nil {
		p.Attributes = make(map[string]Attribute)
	}
	p.Attributes[name] = Attribute{Value: value, UpdatedAt: at}
}

// Len returns the number of known attributes.
func (p Profile) Len() int {
	return len(p.Attributes)
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	if p.Attributes == nil {
		return Profile{}
	}
	return Profile{Attributes: maps.Clone(p.Attributes)}
}

// Merge combines newly extracted facts into the prior profile. The merge is
// monotonic for ScopeSelf: every attribute known before remains present,
// possibly overwritten by a newer value. For ScopeOther the prior profile is
// returned untouched, since third-party facts must not pollute the user's
// own profile.
func Merge(prior, facts Profile, scope Scope) Profile {
	if scope == ScopeOther {
		return prior.Clone()
	}

	merged := prior.Clone()
	for name, attr := range facts.Attributes {
		merged.Set(name, attr.Value, attr.UpdatedAt)
	}
	return merged
}
