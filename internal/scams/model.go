package scams

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
)

var tokenExpr = regexp.MustCompile(`[a-z0-9@.]+`)

// Model is a bag-of-words logistic scorer exported from offline training.
// A nil *Model is a valid runtime state meaning no model is deployed; the
// classifier then fuses the remaining signals.
type Model struct {
	Weights map[string]float64 `json:"weights"`
	Bias    float64            `json:"bias"`
}

// LoadModel reads model weights from path. A missing file returns
// (nil, nil): absent model is configuration, not failure.
func LoadModel(path string) (*Model, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read model: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("model has no weights")
	}

	return &m, nil
}

// Score returns the scam probability for the text.
func (m *Model) Score(text string) float64 {
	z := m.Bias
	for _, token := range tokenExpr.FindAllString(strings.ToLower(text), -1) {
		z += m.Weights[token]
	}
	return 1 / (1 + math.Exp(-z))
}

// Verdict converts the probability into a statistical signal verdict.
// Thresholds follow the deployed scorer: >0.8 HIGH, >0.5 MEDIUM, else LOW.
func (m *Model) Verdict(text string) SignalVerdict {
	score := m.Score(text)

	label := RiskLow
	switch {
	case score > 0.8:
		label = RiskHigh
	case score > 0.5:
		label = RiskMedium
	}

	// Confidence reflects distance from the decision boundary.
	confidence := math.Abs(score-0.5) * 2

	return SignalVerdict{
		Source:     SourceStatistical,
		Label:      label,
		Confidence: confidence,
	}
}
