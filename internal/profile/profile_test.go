package profile_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/finmitra/finmitra/internal/profile"
)

var now = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func TestMergeMonotonic(t *testing.T) {
	var prior profile.Profile
	prior.Set(profile.AttrAge, "30", now.Add(-time.Hour))
	prior.Set(profile.AttrState, "bihar", now.Add(-time.Hour))

	var facts profile.Profile
	facts.Set(profile.AttrAge, "31", now)
	facts.Set(profile.AttrOccupation, "farmer", now)

	merged := profile.Merge(prior, facts, profile.ScopeSelf)

	if merged.Len() != 3 {
		t.Fatalf("merged.Len() = %d, want 3", merged.Len())
	}
	if v, _ := merged.Get(profile.AttrAge); v != "31" {
		t.Errorf("age = %s, want 31", v)
	}
	if v, _ := merged.Get(profile.AttrState); v != "bihar" {
		t.Errorf("state = %s, want bihar", v)
	}
	if v, _ := merged.Get(profile.AttrOccupation); v != "farmer" {
		t.Errorf("occupation = %s, want farmer", v)
	}
}

func TestMergeOtherScopeLeavesPriorUntouched(t *testing.T) {
	var prior profile.Profile
	prior.Set(profile.AttrAge, "30", now)

	var facts profile.Profile
	facts.Set(profile.AttrAge, "60", now)
	facts.Set(profile.AttrOccupation, "teacher", now)

	merged := profile.Merge(prior, facts, profile.ScopeOther)

	if diff := cmp.Diff(prior, merged); diff != "" {
		t.Errorf("merge with ScopeOther changed profile (-want +got):\n%s", diff)
	}
}

func TestExtract(t *testing.T) {
	e := profile.NewExtractorWithClock(clock)

	tests := []struct {
		name      string
		utterance string
		wantScope profile.Scope
		wantAttrs map[string]string
	}{
		{
			name:      "age and occupation",
			utterance: "I am 25 and work as a farmer in Bihar",
			wantScope: profile.ScopeSelf,
			wantAttrs: map[string]string{
				profile.AttrAge:        "25",
				profile.AttrOccupation: "farmer",
				profile.AttrState:      "bihar",
			},
		},
		{
			name:      "age suffix hinglish",
			utterance: "main 32 saal ka hoon",
			wantScope: profile.ScopeSelf,
			wantAttrs: map[string]string{profile.AttrAge: "32"},
		},
		{
			name:      "income in lakh",
			utterance: "I earn 2 lakh per year",
			wantScope: profile.ScopeSelf,
			wantAttrs: map[string]string{profile.AttrMonthlyIncome: "200000"},
		},
		{
			name:      "third person scope",
			utterance: "My mother is 60 years old, is there a pension for her?",
			wantScope: profile.ScopeOther,
			wantAttrs: map[string]string{profile.AttrAge: "60"},
		},
		{
			name:      "nothing to extract",
			utterance: "tell me about savings accounts",
			wantScope: profile.ScopeSelf,
			wantAttrs: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := e.Extract(tt.utterance, profile.Profile{})

			if ex.Scope != tt.wantScope {
				t.Errorf("scope = %s, want %s", ex.Scope, tt.wantScope)
			}
			if ex.Facts.Len() != len(tt.wantAttrs) {
				t.Errorf("facts.Len() = %d, want %d", ex.Facts.Len(), len(tt.wantAttrs))
			}
			for attr, want := range tt.wantAttrs {
				if got, ok := ex.Facts.Get(attr); !ok || got != want {
					t.Errorf("%s = %q (set=%v), want %q", attr, got, ok, want)
				}
			}
		})
	}
}

func TestExtractNeverMutatesPrior(t *testing.T) {
	e := profile.NewExtractorWithClock(clock)

	var prior profile.Profile
	prior.Set(profile.AttrAge, "30", now)
	snapshot := prior.Clone()

	e.Extract("I am 45 and a teacher", prior)

	if diff := cmp.Diff(snapshot, prior); diff != "" {
		t.Errorf("Extract mutated prior profile (-want +got):\n%s", diff)
	}
}

func TestCloneIsDeep(t *testing.T) {
	var p profile.Profile
	p.Set(profile.AttrAge, "30", now)

	c := p.Clone()
	c.Set(profile.AttrAge, "31", now)

	if v, _ := p.Get(profile.AttrAge); v != "30" {
		t.Errorf("clone write leaked into original: age = %s", v)
	}
}
