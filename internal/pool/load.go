package pool

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/spigell/fitrank/internal/profile"
)

var ErrUnsupportedDocument = errors.New("expected a list of records or a mapping with a positions key")

// Warning is a problem found in one record while loading. Loading continues past it.
type Warning struct {
	Index   int
	ID      string
	Message string
}

func (w Warning) String() string {
	if w.ID != "" {
		return fmt.Sprintf("record %d (%s): %s", w.Index, w.ID, w.Message)
	}
	return fmt.Sprintf("record %d: %s", w.Index, w.Message)
}

// LoadFile reads a JSON or YAML pool file.
func LoadFile(path string) (*Positions, []Warning, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open positions file: %w", err)
	}
	defer file.Close()

	positions, warnings, err := Load(file)
	if err != nil {
		return nil, nil, fmt.Errorf("load positions from %q: %w", path, err)
	}
	return positions, warnings, nil
}

// Load normalizes every raw record of the document. Records without an ID get
// a positional one and duplicate IDs keep the first record.
func Load(r io.Reader) (*Positions, []Warning, error) {
	records, err := decodeRecords(r)
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	positions := &Positions{}
	seen := make(map[string]struct{}, len(records))

	for i, raw := range records {
		if raw == nil {
			warnings = append(warnings, Warning{Index: i, Message: "record is not a mapping, skipped"})
			continue
		}

		position, problems := profile.DecodePosition(raw)
		if position.ID == "" {
			position.ID = fmt.Sprintf("pos-%d", i+1)
		}
		for _, problem := range problems {
			warnings = append(warnings, Warning{Index: i, ID: position.ID, Message: problem})
		}

		if _, dup := seen[position.ID]; dup {
			warnings = append(warnings, Warning{Index: i, ID: position.ID, Message: "duplicate id, skipped"})
			continue
		}
		seen[position.ID] = struct{}{}
		positions.Items = append(positions.Items, &position)
	}

	return positions, warnings, nil
}

// ReadRecord reads a single raw JSON or YAML record, such as a candidate profile.
func ReadRecord(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode record %q: %w", path, err)
	}

	record := asRecord(doc)
	if record == nil {
		return nil, fmt.Errorf("decode record %q: expected a mapping", path)
	}
	return record, nil
}

func decodeRecords(r io.Reader) ([]map[string]any, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode document: %w", err)
	}

	if m := asRecord(doc); m != nil {
		doc = m["positions"]
		if doc == nil {
			return nil, ErrUnsupportedDocument
		}
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, ErrUnsupportedDocument
	}

	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		records = append(records, asRecord(item))
	}
	return records, nil
}

func asRecord(v any) map[string]any {
	switch val := v.(type) {
	case map[string]any:
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = item
		}
		return out
	default:
		return nil
	}
}
