package profile

import "testing"

func TestParseSalary(t *testing.T) {
	t.Parallel()

	value := func(f float64) *float64 { return &f }

	tests := []struct {
		text string
		low  *float64
		high *float64
	}{
		{"$75,000-85,000/year", value(75000), value(85000)},
		{"$70k+", value(70000), nil},
		{"90000", value(90000), nil},
		{"$75-85k", value(75000), value(85000)},
		{"$2M", value(2000000), nil},
		{"2,500 miles per week", value(2500), nil},
		{"$0.65 - $0.55 per mile", value(0.55), value(0.65)},
		{"$70,000 to $90,000", value(70000), value(90000)},
		{"$25/hour + 401k", value(25), nil},
		{"401k match, $90,000/yr", value(90000), nil},
		{"$25/hour plus $5 night differential", value(25), nil},
		{"competitive", nil, nil},
		{"", nil, nil},
	}

	for _, tt := range tests {
		low, high := ParseSalary(tt.text)
		if !sameAmount(low, tt.low) || !sameAmount(high, tt.high) {
			t.Fatalf("ParseSalary(%q) = %v, %v; want %v, %v", tt.text, deref(low), deref(high), deref(tt.low), deref(tt.high))
		}
	}
}

func TestNormalizeClearance(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"TS/SCI":           "ts/sci",
		"Top Secret":       "ts",
		"TS":               "ts",
		"clearance:Secret": "secret",
		"Interim Secret":   "secret",
		"Confidential":     "confidential",
		"Public Trust":     "public trust",
		"none":             "",
		"yes":              "secret",
		"DOE Q":            "doe q",
	}

	for in, want := range tests {
		if got := NormalizeClearance(in); got != want {
			t.Fatalf("NormalizeClearance(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDetectClearanceAndTags(t *testing.T) {
	t.Parallel()

	if got := DetectClearance("Must hold an active TOP SECRET clearance"); got != "ts/sci" {
		t.Fatalf("unexpected clearance %q", got)
	}
	if got := DetectClearance("Background adjudication needed"); got != "secret" {
		t.Fatalf("unexpected clearance %q", got)
	}
	for _, text := range []string{
		"No special requirements",
		"No clearance required. Office manager role.",
		"Executive secretary supporting the CEO.",
		"Candidates without a security clearance welcome",
	} {
		if got := DetectClearance(text); got != "" {
			t.Fatalf("DetectClearance(%q) = %q, want none", text, got)
		}
	}

	tags := TagMOS("Paramedic for emergency care")
	if len(tags) != 1 || tags[0] != "68w" {
		t.Fatalf("unexpected tags %v", tags)
	}
}

func sameAmount(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func deref(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
