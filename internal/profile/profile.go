// Package profile normalizes raw candidate and position records into the
// canonical scoring types.
//
// Normalization never fails. Fields that cannot be decoded are reported as
// warnings and the record falls back to the most permissive value.
package profile

import (
	"errors"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/fitrank/internal/scoring"
)

// Kind names the shape of a raw record.
type Kind string

const (
	KindResume  Kind = "resume"
	KindCDL     Kind = "cdl"
	KindVeteran Kind = "veteran"
	KindJob     Kind = "job"
	KindMOS     Kind = "mos"
)

// DetectCandidateKind honours an explicit "kind" key and otherwise guesses from the record shape.
func DetectCandidateKind(raw map[string]any) Kind {
	switch Kind(scoring.NormalizeToken(coerceString(raw["kind"]))) {
	case KindResume:
		return KindResume
	case KindCDL:
		return KindCDL
	case KindVeteran, KindMOS:
		return KindVeteran
	}

	if coerceMap(raw["cdl"]) != nil {
		return KindCDL
	}
	if _, ok := raw["mos"]; ok {
		return KindVeteran
	}
	if _, ok := raw["branch"]; ok {
		return KindVeteran
	}
	return KindResume
}

// DetectPositionKind honours an explicit "kind" key and otherwise guesses from the record shape.
func DetectPositionKind(raw map[string]any) Kind {
	switch Kind(scoring.NormalizeToken(coerceString(raw["kind"]))) {
	case KindJob:
		return KindJob
	case KindCDL:
		return KindCDL
	case KindMOS, KindVeteran:
		return KindMOS
	}

	if _, ok := raw["cdlClass"]; ok {
		return KindCDL
	}
	if _, ok := raw["idealTraits"]; ok {
		return KindMOS
	}
	return KindJob
}

// decode fills out from raw with weak typing. Fields that fail to decode keep
// their zero value and are returned as warnings.
func decode(raw map[string]any, out any) []string {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		Result:           out,
	})
	if err != nil {
		return []string{err.Error()}
	}

	if err := decoder.Decode(raw); err != nil {
		var decodeErr *mapstructure.Error
		if errors.As(err, &decodeErr) {
			return decodeErr.Errors
		}
		return []string{err.Error()}
	}
	return nil
}
