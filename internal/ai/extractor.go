package ai

import "context"

// Extraction is the structured record recovered from free-form resume text.
type Extraction struct {
	// Record is a raw candidate record accepted by profile.NormalizeCandidate.
	Record map[string]any
	Raw    string
}

// Extractor turns resume text into a raw candidate record.
type Extractor interface {
	Extract(ctx context.Context, resume string) (*Extraction, error)
}
