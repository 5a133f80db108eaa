package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spigell/fitrank/internal/scoring"
)

func TestNormalizeCandidateResume(t *testing.T) {
	t.Parallel()

	c := NormalizeCandidate(map[string]any{
		"skills":               []any{"JavaScript", " python ", "javascript"},
		"totalYearsExperience": "5",
		"location":             "Austin, TX",
		"preferences":          map[string]any{"minSalary": "$70,000"},
		"certifications":       []any{"Security+"},
		"clearance":            "Top Secret",
	})

	if diff := cmp.Diff([]string{"javascript", "python"}, c.Skills.Sorted()); diff != "" {
		t.Fatalf("unexpected skills (-want +got):\n%s", diff)
	}
	if c.ExperienceYears != 5 {
		t.Fatalf("expected 5 years, got %v", c.ExperienceYears)
	}
	if c.MinSalary == nil || *c.MinSalary != 70000 {
		t.Fatalf("expected min salary 70000, got %v", c.MinSalary)
	}
	if c.Location != "Austin, TX" {
		t.Fatalf("unexpected location %q", c.Location)
	}
	if diff := cmp.Diff([]string{"cert:security+", "clearance:ts"}, c.Credentials.Sorted()); diff != "" {
		t.Fatalf("unexpected credentials (-want +got):\n%s", diff)
	}
}

func TestNormalizeCandidateNestedResume(t *testing.T) {
	t.Parallel()

	c := NormalizeCandidate(map[string]any{
		"resume": map[string]any{
			"skills":               []any{"Go"},
			"totalYearsExperience": 4,
			"location":             "Boston, MA",
		},
		"preferences": map[string]any{"location": "Remote", "minSalary": 120000},
	})

	if !c.Skills.Has("go") || c.ExperienceYears != 4 {
		t.Fatalf("expected nested resume fields, got %+v", c)
	}
	if c.Location != "Boston, MA" {
		t.Fatalf("expected resume location to win over preference, got %q", c.Location)
	}
	if c.MinSalary == nil || *c.MinSalary != 120000 {
		t.Fatalf("unexpected min salary %v", c.MinSalary)
	}
}

func TestNormalizeCandidateCDL(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"cdl":         map[string]any{"class": "A", "endorsements": []any{"X", "t"}},
		"experience":  map[string]any{"years": 3},
		"preferences": map[string]any{"minPay": 0.55, "jobType": []any{"OTR"}},
		"location":    map[string]any{"city": "Dallas", "state": "TX"},
		"veteran":     map[string]any{"isVeteran": true, "mos": "88M"},
		"equipment":   map[string]any{"trailerTypes": []any{"Dry Van"}},
	}
	if kind := DetectCandidateKind(raw); kind != KindCDL {
		t.Fatalf("expected cdl kind, got %s", kind)
	}

	c := NormalizeCandidate(raw)

	wantCreds := []string{"cdl:a", "endorsement:h", "endorsement:n", "endorsement:t", "mos:88m"}
	if diff := cmp.Diff(wantCreds, c.Credentials.Sorted()); diff != "" {
		t.Fatalf("unexpected credentials (-want +got):\n%s", diff)
	}
	for _, skill := range []string{"otr", "dry van", "commercial driving"} {
		if !c.Skills.Has(skill) {
			t.Fatalf("expected skill %q in %v", skill, c.Skills.Sorted())
		}
	}
	if c.ExperienceYears != 3 {
		t.Fatalf("expected 3 years, got %v", c.ExperienceYears)
	}
	if c.MinSalary == nil || *c.MinSalary != 0.55 {
		t.Fatalf("unexpected min pay %v", c.MinSalary)
	}
	if c.Location != "Dallas, TX" {
		t.Fatalf("unexpected location %q", c.Location)
	}
}

func TestNormalizeCandidateVeteran(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"mos":                "17C",
		"branch":             "Army",
		"clearance":          "TS/SCI",
		"yearsServed":        8,
		"transferableSkills": "leadership, Python",
	}
	if kind := DetectCandidateKind(raw); kind != KindVeteran {
		t.Fatalf("expected veteran kind, got %s", kind)
	}

	c := NormalizeCandidate(raw)

	if c.ExperienceYears != 8 {
		t.Fatalf("expected 8 years, got %v", c.ExperienceYears)
	}
	for _, skill := range []string{"leadership", "python", "network security", "incident response"} {
		if !c.Skills.Has(skill) {
			t.Fatalf("expected skill %q in %v", skill, c.Skills.Sorted())
		}
	}
	if diff := cmp.Diff([]string{"clearance:ts/sci", "mos:17c"}, c.Credentials.Sorted()); diff != "" {
		t.Fatalf("unexpected credentials (-want +got):\n%s", diff)
	}
	if !scoring.HoldsClearance(c.Credentials) {
		t.Fatalf("expected clearance to be held")
	}
}

func TestNormalizeCandidateFailSoft(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  map[string]any
	}{
		{name: "nil", raw: nil},
		{name: "empty", raw: map[string]any{}},
		{
			name: "malformed",
			raw: map[string]any{
				"experienceYears": "lots",
				"minSalary":       "negotiable",
				"preferences":     "none",
				"cdl":             "yes",
				"clearance":       false,
				"credentials":     map[string]any{"bad": true},
			},
		},
		{
			name: "negative numbers",
			raw:  map[string]any{"experienceYears": -4, "minSalary": -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NormalizeCandidate(tt.raw)
			if c.ExperienceYears != 0 {
				t.Fatalf("expected zero experience, got %v", c.ExperienceYears)
			}
			if c.MinSalary != nil {
				t.Fatalf("expected no salary constraint, got %v", *c.MinSalary)
			}
			if c.Credentials.Len() != 0 {
				t.Fatalf("expected no credentials, got %v", c.Credentials.Sorted())
			}
		})
	}
}

func TestDecodeCandidateReportsWarnings(t *testing.T) {
	t.Parallel()

	c, warnings := DecodeCandidate(map[string]any{
		"skills":      []any{"go"},
		"preferences": "none",
	})
	if len(warnings) == 0 {
		t.Fatalf("expected warnings for malformed preferences")
	}
	if !c.Skills.Has("go") {
		t.Fatalf("expected remaining fields to be kept, got %v", c.Skills.Sorted())
	}
}
