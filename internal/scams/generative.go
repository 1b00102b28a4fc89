package scams

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/finmitra/finmitra/internal/generation"
	"github.com/finmitra/finmitra/pkg/formatting"
)

type generativeResponse struct {
	Risk       string   `json:"risk"`
	Confidence float64  `json:"confidence"`
	Flags      []string `json:"flags"`
	Rationale  string   `json:"rationale"`
}

const judgePrompt = `You are a fraud analyst reviewing a message sent to an Indian consumer.
Judge whether the message is a scam.

Message:
%s
%s
Consider: credential or OTP requests, impersonation of banks or government,
urgency and threats, prize or lottery bait, payment links, remote-access asks.

Respond with JSON only:
{"risk": "LOW|MEDIUM|HIGH|CRITICAL", "confidence": <0.0-1.0>, "flags": ["<kebab-case-flag>", ...], "rationale": "<one sentence>"}`

// generativeVerdict obtains a risk judgment from the generation gateway.
func generativeVerdict(ctx context.Context, gen generation.Service, text string, meta *SenderMeta) (SignalVerdict, error) {
	var metaBlock string
	if meta != nil && (meta.Sender != "" || meta.Subject != "") {
		metaBlock = fmt.Sprintf("Sender: %s\nSubject: %s\n", meta.Sender, meta.Subject)
	}

	content, err := gen.Generate(ctx, fmt.Sprintf(judgePrompt, text, metaBlock), generation.LanguageEnglish)
	if err != nil {
		return SignalVerdict{}, fmt.Errorf("generative signal: %w", err)
	}

	parsed, err := formatting.Parse[generativeResponse](content)
	if err != nil {
		return SignalVerdict{}, fmt.Errorf("generative signal: %w", err)
	}

	label := RiskLabel(strings.ToUpper(strings.TrimSpace(parsed.Risk)))
	if !label.Valid() {
		return SignalVerdict{}, fmt.Errorf("generative signal: invalid risk label %q", parsed.Risk)
	}

	confidence := parsed.Confidence
	if confidence < 0 || confidence > 1 {
		confidence = 0.5
	}

	flags := parsed.Flags
	slices.Sort(flags)

	return SignalVerdict{
		Source:     SourceGenerative,
		Label:      label,
		Confidence: confidence,
		Flags:      flags,
	}, nil
}
