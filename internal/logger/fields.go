package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"

	FieldPositionID = "position_id"
	FieldCompany    = "company"
	FieldScore      = "score"
	FieldTier       = "tier"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the fields to the logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields describes the AI provider and model. Empty values are ignored.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// RankingFields describes one ranking call.
func RankingFields(positions, matches, minScore, limit int) []zap.Field {
	return []zap.Field{
		zap.Int("positions", positions),
		zap.Int("matches", matches),
		zap.Int("min_score", minScore),
		zap.Int("limit", limit),
	}
}

// MatchFields describes one scored position.
func MatchFields(positionID, company string, score int, tier string) []zap.Field {
	fields := StringFields(
		StringField{Key: FieldPositionID, Value: positionID},
		StringField{Key: FieldCompany, Value: company},
		StringField{Key: FieldTier, Value: tier},
	)
	return append(fields, zap.Int(FieldScore, score))
}
