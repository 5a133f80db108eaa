package scoring

import (
	"slices"
	"strings"
)

const (
	// CredentialClearance is the namespace of security clearance tokens, e.g. "clearance:ts/sci".
	CredentialClearance = "clearance"
	// CredentialCDL is the namespace of commercial driver license classes, e.g. "cdl:a".
	CredentialCDL = "cdl"
	// CredentialEndorsement is the namespace of CDL endorsements, e.g. "endorsement:h".
	CredentialEndorsement = "endorsement"
	// CredentialMOS is the namespace of military occupational specialties, e.g. "mos:17c".
	CredentialMOS = "mos"
	// CredentialCert is the namespace of certifications, e.g. "cert:security+".
	CredentialCert = "cert"
)

// CredentialMatcher decides whether the held credentials satisfy one required token.
type CredentialMatcher interface {
	Satisfies(held TokenSet, required string) bool
}

// LadderMatcher satisfies a requirement by an exact token or by a higher rung
// of the same namespace ladder: a CDL class A holder satisfies a class B requirement.
type LadderMatcher struct {
	// namespace -> levels ordered from highest to lowest
	ladders map[string][]string
}

func NewLadderMatcher(ladders map[string][]string) *LadderMatcher {
	normalized := make(map[string][]string, len(ladders))
	for ns, levels := range ladders {
		out := make([]string, 0, len(levels))
		for _, level := range levels {
			if level = NormalizeToken(level); level != "" {
				out = append(out, level)
			}
		}
		normalized[NormalizeToken(ns)] = out
	}
	return &LadderMatcher{ladders: normalized}
}

// DefaultLadders returns the CDL class and security clearance hierarchies.
func DefaultLadders() map[string][]string {
	return map[string][]string{
		CredentialCDL:       {"a", "b", "c", "permit"},
		CredentialClearance: {"ts/sci", "ts", "secret", "confidential", "public trust"},
	}
}

func (m *LadderMatcher) Satisfies(held TokenSet, required string) bool {
	required = NormalizeToken(required)
	if required == "" {
		return true
	}
	if held.Has(required) {
		return true
	}

	ns, level, ok := SplitCredential(required)
	if !ok {
		return false
	}

	// Off-ladder levels are satisfied only by the exact token.
	ladder := m.ladders[ns]
	rung := slices.Index(ladder, level)
	if rung < 0 {
		return false
	}
	for _, higher := range ladder[:rung] {
		if held.Has(ns + ":" + higher) {
			return true
		}
	}
	return false
}

// SplitCredential splits "namespace:value" into its parts.
func SplitCredential(token string) (string, string, bool) {
	ns, value, ok := strings.Cut(NormalizeToken(token), ":")
	if !ok || ns == "" || value == "" {
		return "", "", false
	}
	return strings.TrimSpace(ns), strings.TrimSpace(value), true
}

// CredentialToken builds a normalized "namespace:value" token.
func CredentialToken(namespace, value string) string {
	value = NormalizeToken(value)
	if value == "" {
		return ""
	}
	return NormalizeToken(namespace) + ":" + value
}

// HoldsClearance reports whether any held credential is a security clearance.
func HoldsClearance(held TokenSet) bool {
	for _, token := range held.Sorted() {
		if ns, _, ok := SplitCredential(token); ok && ns == CredentialClearance {
			return true
		}
	}
	return false
}
