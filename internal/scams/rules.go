package scams

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed flags.yaml
var flagsYAML []byte

type flagRule struct {
	Name     string    `yaml:"name"`
	Severity RiskLabel `yaml:"severity"`
	Patterns []string  `yaml:"patterns"`
}

type flagFile struct {
	Flags []flagRule `yaml:"flags"`
}

// bankCues paired with official sender domains: a message naming a bank but
// sent from an unrelated address is a classic spoof signal.
var bankCues = map[string][]string{
	"hdfc":  {"hdfcbank.net", "hdfcbank.com"},
	"icici": {"icicibank.com"},
	"sbi":   {"sbi.co.in", "onlinesbi.com"},
	"axis":  {"axisbank.com"},
	"kotak": {"kotak.com", "kotakbank.com"},
}

// RuleEngine scans text against the red-flag lexicon. It is pure and never
// unavailable; a clean message produces a LOW verdict, not an error.
type RuleEngine struct {
	flags []flagRule
}

// NewRuleEngine loads the embedded red-flag lexicon.
func NewRuleEngine() (*RuleEngine, error) {
	var file flagFile
	if err := yaml.Unmarshal(flagsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse flag lexicon: %w", err)
	}

	for _, f := range file.Flags {
		if !f.Severity.Valid() {
			return nil, fmt.Errorf("flag %s: invalid severity %q", f.Name, f.Severity)
		}
	}

	return &RuleEngine{flags: file.Flags}, nil
}

// Evaluate scans the message and sender metadata and returns the rule verdict.
func (e *RuleEngine) Evaluate(text string, meta *SenderMeta) SignalVerdict {
	haystack := strings.ToLower(text)
	if meta != nil && meta.Subject != "" {
		haystack += "\n" + strings.ToLower(meta.Subject)
	}

	label := RiskLow
	var flags []string

	for _, f := range e.flags {
		for _, pattern := range f.Patterns {
			if strings.Contains(haystack, pattern) {
				flags = append(flags, f.Name)
				if f.Severity.Rank() > label.Rank() {
					label = f.Severity
				}
				break
			}
		}
	}

	if meta != nil && suspiciousSender(haystack, meta.Sender) {
		flags = append(flags, "suspicious-sender")
		if RiskMedium.Rank() > label.Rank() {
			label = RiskMedium
		}
	}

	slices.Sort(flags)
	return SignalVerdict{
		Source:     SourceRule,
		Label:      label,
		Confidence: ruleConfidence(len(flags)),
		Flags:      flags,
	}
}

func suspiciousSender(haystack, sender string) bool {
	if sender == "" {
		return false
	}
	sender = strings.ToLower(sender)

	for bank, domains := range bankCues {
		if !strings.Contains(haystack, bank) {
			continue
		}
		official := slices.ContainsFunc(domains, func(d string) bool {
			return strings.HasSuffix(sender, d)
		})
		if !official {
			return true
		}
	}
	return false
}

// ruleConfidence grows with corroborating flags. Explicit pattern hits are
// strong evidence, so the floor is high and each extra flag adds a little.
func ruleConfidence(flagCount int) float64 {
	if flagCount == 0 {
		return 0.6
	}
	c := 0.7 + 0.1*float64(flagCount-1)
	return min(c, 0.95)
}
