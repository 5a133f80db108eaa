package scoring

import (
	"encoding/json"
	"sort"
	"strings"
)

// NormalizeToken lower-cases the token, trims it and collapses inner whitespace.
func NormalizeToken(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// TokenSet is an immutable set of normalized tokens.
// The zero value is an empty set.
type TokenSet struct {
	items map[string]struct{}
}

// NewTokenSet normalizes the provided tokens and drops empty and duplicate entries.
func NewTokenSet(tokens ...string) TokenSet {
	items := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		token = NormalizeToken(token)
		if token == "" {
			continue
		}
		items[token] = struct{}{}
	}

	return TokenSet{items: items}
}

func (s TokenSet) Has(token string) bool {
	if len(s.items) == 0 {
		return false
	}
	_, ok := s.items[NormalizeToken(token)]
	return ok
}

func (s TokenSet) Len() int {
	return len(s.items)
}

// Sorted returns the tokens in lexical order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s.items))
	for token := range s.items {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}

// Union returns a new set holding the tokens of both sets.
func (s TokenSet) Union(other TokenSet) TokenSet {
	return NewTokenSet(append(s.Sorted(), other.Sorted()...)...)
}

func (s TokenSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *TokenSet) UnmarshalJSON(data []byte) error {
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}
	*s = NewTokenSet(tokens...)
	return nil
}
