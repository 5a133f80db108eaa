// Package pool holds the position snapshot a ranking call reads and the
// files it is loaded from.
package pool

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spigell/fitrank/internal/scoring"
)

const (
	PositionIDField      = "ID"
	PositionCompanyField = "Company"
	PositionStatusField  = "Status"
	PositionSourceField  = "Source"
)

type Positions struct {
	Items []*scoring.Position `json:"positions"`
}

type ExcludedPositions struct {
	Items []*ExcludedPosition
}

type ExcludedPosition struct {
	ID         string
	Title      string
	Company    string
	ExcludedAt time.Time
}

func New(items ...scoring.Position) *Positions {
	p := &Positions{Items: make([]*scoring.Position, 0, len(items))}
	for i := range items {
		item := items[i]
		p.Items = append(p.Items, &item)
	}
	return p
}

func (p *Positions) Len() int {
	return len(p.Items)
}

// Snapshot copies the pool into the value slice a ranking call reads.
func (p *Positions) Snapshot() []scoring.Position {
	out := make([]scoring.Position, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, *item)
	}
	return out
}

func (p *Positions) FindByID(id string) *scoring.Position {
	for _, position := range p.Items {
		if position.ID == id {
			return position
		}
	}
	return nil
}

func GetStringField(position *scoring.Position, name string) string {
	switch name {
	case PositionIDField:
		return position.ID
	case PositionCompanyField:
		return position.Company
	case PositionStatusField:
		return position.Status
	case PositionSourceField:
		return position.Source
	default:
		return ""
	}
}

// Exclude removes every position whose field matches one of the targets,
// ignoring case, and returns the removed IDs. Order of the rest is preserved.
func (p *Positions) Exclude(name string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}
	set := scoring.NewTokenSet(targets...)

	var excluded []string
	kept := p.Items[:0]
	for _, position := range p.Items {
		if set.Has(GetStringField(position, name)) {
			excluded = append(excluded, position.ID)
			continue
		}
		kept = append(kept, position)
	}
	for i := len(kept); i < len(p.Items); i++ {
		p.Items[i] = nil
	}
	p.Items = kept

	return excluded
}

func (p *Positions) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "positions_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func (p *Positions) ToExcluded() *ExcludedPositions {
	now := time.Now().UTC()
	excluded := &ExcludedPositions{}
	for _, position := range p.Items {
		excluded.Items = append(excluded.Items, &ExcludedPosition{
			ID:         position.ID,
			Title:      position.Title,
			Company:    position.Company,
			ExcludedAt: now,
		})
	}
	return excluded
}

// ReportByCompany groups positions by company, then by source.
func (p *Positions) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, position := range p.Items {
		key := position.Company
		if key == "" {
			key = "unknown"
		}
		report[key] = append(report[key], map[string]string{
			"id":       position.ID,
			"title":    position.Title,
			"location": position.Location,
			"pay":      payRange(position.PayMin, position.PayMax),
			"source":   position.Source,
			"required": strings.Join(position.RequiredSkills, ", "),
		})
	}
	return report
}

// CountBySource returns the number of positions per source, sorted by source.
func (p *Positions) CountBySource() []SourceCount {
	counts := make(map[string]int)
	for _, position := range p.Items {
		source := position.Source
		if source == "" {
			source = "unknown"
		}
		counts[source]++
	}

	out := make([]SourceCount, 0, len(counts))
	for source, n := range counts {
		out = append(out, SourceCount{Source: source, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

func payRange(low, high *float64) string {
	switch {
	case low != nil && high != nil:
		return fmt.Sprintf("%g-%g", *low, *high)
	case low != nil:
		return fmt.Sprintf("%g+", *low)
	case high != nil:
		return fmt.Sprintf("up to %g", *high)
	default:
		return ""
	}
}

// ExcludedFromFile reads an exclude file. A missing or empty file is an empty list.
func ExcludedFromFile(path string) (*ExcludedPositions, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ExcludedPositions{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedPositions{}, nil
	}

	var excluded ExcludedPositions
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedPositions) Append(s *ExcludedPositions) {
	e.Items = append(e.Items, s.Items...)
}

func (e *ExcludedPositions) IDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, position := range e.Items {
		ids = append(ids, position.ID)
	}
	return ids
}

func (e *ExcludedPositions) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
