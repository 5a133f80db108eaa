package pool

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spigell/fitrank/internal/scoring"
)

func samplePool() *Positions {
	return New(
		scoring.Position{ID: "1", Title: "Go Developer", Company: "Acme", Source: "indeed", PayMin: scoring.Amount(90000)},
		scoring.Position{ID: "2", Title: "Driver", Company: "Haulers", Status: "filled", Source: "scrape"},
		scoring.Position{ID: "3", Title: "SRE", Company: "acme", Source: "indeed"},
		scoring.Position{ID: "4", Title: "Analyst", Company: "Intel Co"},
	)
}

func TestExcludeKeepsOrder(t *testing.T) {
	p := samplePool()

	removed := p.Exclude(PositionCompanyField, []string{"ACME"})
	if diff := cmp.Diff([]string{"1", "3"}, removed); diff != "" {
		t.Fatalf("unexpected removed ids (-want +got):\n%s", diff)
	}

	var left []string
	for _, position := range p.Items {
		left = append(left, position.ID)
	}
	if diff := cmp.Diff([]string{"2", "4"}, left); diff != "" {
		t.Fatalf("unexpected remaining ids (-want +got):\n%s", diff)
	}

	if removed := p.Exclude(PositionIDField, nil); removed != nil {
		t.Fatalf("expected nothing removed, got %v", removed)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	p := samplePool()
	snapshot := p.Snapshot()
	snapshot[0].Title = "changed"

	if p.FindByID("1").Title != "Go Developer" {
		t.Fatalf("expected snapshot to be detached from the pool")
	}
	if p.FindByID("missing") != nil {
		t.Fatalf("expected nil for unknown id")
	}
}

func TestReportByCompany(t *testing.T) {
	report := samplePool().ReportByCompany()

	entries, ok := report["Acme"]
	if !ok {
		t.Fatalf("expected company key in report")
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["pay"] != "90000+" {
		t.Fatalf("unexpected pay %q", entries[0]["pay"])
	}
	if entries[0]["source"] != "indeed" {
		t.Fatalf("unexpected source %q", entries[0]["source"])
	}
}

func TestCountBySource(t *testing.T) {
	got := samplePool().CountBySource()
	want := []SourceCount{{"indeed", 2}, {"scrape", 1}, {"unknown", 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}
}

func TestExcludedFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")

	empty, err := ExcludedFromFile(path)
	if err != nil {
		t.Fatalf("expected missing file to be empty, got %v", err)
	}
	if len(empty.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(empty.Items))
	}

	empty.Append(samplePool().ToExcluded())
	if err := empty.ToFile(path); err != nil {
		t.Fatalf("ToFile: %v", err)
	}

	short := New(scoring.Position{ID: "9"}).ToExcluded()
	if err := short.ToFile(path); err != nil {
		t.Fatalf("ToFile: %v", err)
	}

	loaded, err := ExcludedFromFile(path)
	if err != nil {
		t.Fatalf("ExcludedFromFile: %v", err)
	}
	if diff := cmp.Diff([]string{"9"}, loaded.IDs()); diff != "" {
		t.Fatalf("expected file to be rewritten (-want +got):\n%s", diff)
	}
}

func TestDumpToTmpFile(t *testing.T) {
	path, err := samplePool().DumpToTmpFile()
	if err != nil {
		t.Fatalf("DumpToTmpFile: %v", err)
	}
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if !strings.Contains(string(data), `"Go Developer"`) {
		t.Fatalf("expected dump to contain position titles, got %s", data)
	}
}
