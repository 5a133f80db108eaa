package pool

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadJSONArray(t *testing.T) {
	doc := `[
  {"id": "a", "title": "Go Developer", "requiredSkills": ["Go", "SQL"], "payMin": 90000},
  {"title": "No ID", "salary": "$70k+"},
  {"id": "a", "title": "Duplicate"},
  "not a record"
]`

	positions, warnings, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if positions.Len() != 2 {
		t.Fatalf("expected 2 positions, got %d", positions.Len())
	}

	if positions.Items[1].ID != "pos-2" {
		t.Fatalf("expected generated id, got %q", positions.Items[1].ID)
	}
	if p := positions.Items[1].PayMin; p == nil || *p != 70000 {
		t.Fatalf("expected salary text to be parsed, got %v", p)
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
}

func TestLoadYAMLWithPositionsKey(t *testing.T) {
	doc := `
positions:
  - kind: cdl
    id: t-1
    title: Regional Driver
    cdlClass: B
    endorsements: [H]
    location:
      city: Dallas
      state: TX
  - id: t-2
    title: Yard Jockey
    minExperience: 1
`

	positions, warnings, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	first := positions.FindByID("t-1")
	if first == nil {
		t.Fatalf("expected t-1 to be loaded")
	}
	if first.Location != "Dallas, TX" {
		t.Fatalf("unexpected location %q", first.Location)
	}
	if len(first.RequiredCredentials) != 2 || first.RequiredCredentials[0] != "cdl:b" {
		t.Fatalf("unexpected credentials %v", first.RequiredCredentials)
	}
}

func TestLoadRejectsUnsupportedDocuments(t *testing.T) {
	for _, doc := range []string{"just text", "jobs: []", "42"} {
		if _, _, err := Load(strings.NewReader(doc)); !errors.Is(err, ErrUnsupportedDocument) {
			t.Fatalf("Load(%q): expected ErrUnsupportedDocument, got %v", doc, err)
		}
	}

	positions, _, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("expected empty document to load, got %v", err)
	}
	if positions.Len() != 0 {
		t.Fatalf("expected empty pool, got %d", positions.Len())
	}
}

func TestReadRecord(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "candidate.yaml")
	if err := os.WriteFile(path, []byte("skills: [go, sql]\nexperienceYears: 4\n"), 0o600); err != nil {
		t.Fatalf("write record: %v", err)
	}

	record, err := ReadRecord(path)
	if err != nil {
		t.Fatalf("ReadRecord returned error: %v", err)
	}
	if record["experienceYears"] != 4 {
		t.Fatalf("unexpected record: %v", record)
	}

	list := filepath.Join(dir, "list.json")
	if err := os.WriteFile(list, []byte(`["go"]`), 0o600); err != nil {
		t.Fatalf("write record: %v", err)
	}
	if _, err := ReadRecord(list); err == nil {
		t.Fatalf("expected error for non-mapping record")
	}
}
