package scoring

import "testing"

func TestRegionComparator(t *testing.T) {
	t.Parallel()

	cmp := NewRegionComparator(DefaultRegions())

	tests := []struct {
		name      string
		candidate string
		position  string
		want      int
	}{
		{"exact", "Austin, TX", "austin,  tx", 100},
		{"city contained", "Austin", "Austin, TX", 100},
		{"remote position", "Boston, MA", "Remote - US", 100},
		{"nationwide position", "", "Nationwide", 50},
		{"remote candidate on-site job", "Remote", "Austin, TX", 20},
		{"same state different city", "Dallas, TX", "Austin, TX", 70},
		{"same region by state name", "Atlanta, Georgia", "Miami, FL", 70},
		{"no comma state suffix", "Denver CO", "Salt Lake City, UT", 70},
		{"different region", "Boston, MA", "Austin, TX", 20},
		{"candidate unspecified", "", "Austin, TX", 50},
		{"position unspecified", "Austin, TX", "  ", 50},
		{"unknown places", "Atlantis", "El Dorado", 20},
		{"district over state name", "Seattle, Washington", "Washington, DC", 20},
		{"district same region", "Richmond, VA", "Washington, DC", 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cmp.Compare(tt.candidate, tt.position).Score(); got != tt.want {
				t.Fatalf("Compare(%q, %q) = %d, want %d", tt.candidate, tt.position, got, tt.want)
			}
		})
	}
}

func TestRegionComparatorCustomTable(t *testing.T) {
	t.Parallel()

	cmp := NewRegionComparator(map[string][]string{
		"Benelux": {"Amsterdam", "Brussels", "Luxembourg"},
	})

	if got := cmp.Compare("Amsterdam", "Brussels"); got != LocationSameRegion {
		t.Fatalf("expected same region, got %v", got)
	}
	if got := cmp.Compare("Amsterdam", "Berlin"); got != LocationMismatch {
		t.Fatalf("expected mismatch, got %v", got)
	}
}
