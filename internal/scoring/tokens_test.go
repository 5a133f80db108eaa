package scoring

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenSet(t *testing.T) {
	t.Parallel()

	s := NewTokenSet(" Go ", "go", "Machine   Learning", "", "SQL")
	if s.Len() != 3 {
		t.Fatalf("expected 3 tokens, got %d", s.Len())
	}
	if !s.Has("machine learning") || !s.Has("GO") {
		t.Fatalf("expected normalized lookups to succeed")
	}
	if diff := cmp.Diff([]string{"go", "machine learning", "sql"}, s.Sorted()); diff != "" {
		t.Fatalf("unexpected tokens (-want +got):\n%s", diff)
	}

	var zero TokenSet
	if zero.Has("go") || zero.Len() != 0 {
		t.Fatalf("expected zero set to be empty")
	}

	u := zero.Union(NewTokenSet("rust"))
	if !u.Has("rust") || u.Len() != 1 {
		t.Fatalf("unexpected union: %v", u.Sorted())
	}
}

func TestTokenSetJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewTokenSet("b", "A"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["a","b"]` {
		t.Fatalf("unexpected json %s", data)
	}

	var c Candidate
	if err := json.Unmarshal([]byte(`{"skills":["Go","go"],"credentials":["CDL:A"]}`), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Skills.Len() != 1 || !c.Credentials.Has("cdl:a") {
		t.Fatalf("unexpected candidate: %+v", c)
	}
}
