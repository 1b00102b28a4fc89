package scams

import "slices"

// ruleMinWeight is the floor on the rule signal's weight during confidence
// averaging. Explicit red flags like an OTP request must not be diluted by
// an uncertain statistical score.
const ruleMinWeight = 0.35

// Fuse combines the available signal verdicts into one FusedVerdict.
// The aggregate label is the maximum across sources: a single
// high-confidence red flag is allowed to dominate. Aggregate confidence is
// the confidence-weighted mean of the sources that agree with that maximum
// label, with the rule source weighted at least ruleMinWeight. Flags are the
// sorted union of all contributing flags. reduced marks that one or more
// sources were unavailable. Fuse is pure; callers guarantee signals is
// non-empty.
func Fuse(signals []SignalVerdict, reduced bool) FusedVerdict {
	label := RiskLow
	for _, s := range signals {
		if s.Label.Rank() > label.Rank() {
			label = s.Label
		}
	}

	var weightSum, confSum float64
	for _, s := range signals {
		if s.Label != label {
			continue
		}

		weight := s.Confidence
		if s.Source == SourceRule && weight < ruleMinWeight {
			weight = ruleMinWeight
		}
		weightSum += weight
		confSum += weight * s.Confidence
	}

	confidence := 0.0
	if weightSum > 0 {
		confidence = confSum / weightSum
	}

	var flags []string
	for _, s := range signals {
		flags = append(flags, s.Flags...)
	}
	slices.Sort(flags)
	flags = slices.Compact(flags)
	if flags == nil {
		flags = []string{}
	}

	return FusedVerdict{
		Label:             label,
		Confidence:        confidence,
		Flags:             flags,
		Signals:           signals,
		ReducedConfidence: reduced,
	}
}
