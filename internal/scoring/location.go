package scoring

import (
	"slices"
	"strings"
)

// LocationFit is the outcome of comparing a candidate location with a position location.
type LocationFit int

const (
	LocationMismatch LocationFit = iota
	LocationUnknown
	LocationSameRegion
	LocationExact
)

// Score maps the fit onto the location sub-score.
func (f LocationFit) Score() int {
	switch f {
	case LocationExact:
		return 100
	case LocationSameRegion:
		return 70
	case LocationUnknown:
		return 50
	default:
		return 20
	}
}

// LocationComparator decides how well two free-text locations fit together.
type LocationComparator interface {
	Compare(candidate, position string) LocationFit
}

var remoteMarkers = []string{"remote", "nationwide", "anywhere", "work from home", "wfh", "telework"}

// RegionComparator compares locations by place segments and falls back to a
// region table for near matches.
type RegionComparator struct {
	// alias -> region
	regions map[string]string
}

// NewRegionComparator builds a comparator from a region -> aliases table.
// Aliases are normalized; an alias listed under two regions keeps the first one seen
// in lexical region order.
func NewRegionComparator(regions map[string][]string) *RegionComparator {
	index := make(map[string]string)
	names := NewTokenSet(keys(regions)...).Sorted()
	for _, name := range names {
		for region, aliases := range regions {
			if NormalizeToken(region) != name {
				continue
			}
			for _, alias := range aliases {
				alias = NormalizeToken(alias)
				if alias == "" {
					continue
				}
				if _, ok := index[alias]; !ok {
					index[alias] = name
				}
			}
		}
	}

	return &RegionComparator{regions: index}
}

func (r *RegionComparator) Compare(candidate, position string) LocationFit {
	c := NormalizeToken(candidate)
	p := NormalizeToken(position)
	if c == "" || p == "" {
		return LocationUnknown
	}

	if isRemote(p) {
		return LocationExact
	}
	if isRemote(c) {
		return LocationMismatch
	}

	cParts := placeSegments(c)
	pParts := placeSegments(p)
	if c == p || subset(cParts, pParts) || subset(pParts, cParts) {
		return LocationExact
	}

	cRegion := r.regionOf(cParts)
	if cRegion != "" && cRegion == r.regionOf(pParts) {
		return LocationSameRegion
	}

	return LocationMismatch
}

// regionOf resolves the region from the last known segment, so the state in
// "Washington, DC" wins over a city that shares a state name.
func (r *RegionComparator) regionOf(segments []string) string {
	for _, segment := range slices.Backward(segments) {
		if region, ok := r.regions[segment]; ok {
			return region
		}
	}
	for _, segment := range slices.Backward(segments) {
		words := strings.Fields(segment)
		if len(words) < 2 {
			continue
		}
		if region, ok := r.regions[words[len(words)-1]]; ok {
			return region
		}
	}
	return ""
}

func isRemote(location string) bool {
	for _, marker := range remoteMarkers {
		if strings.Contains(location, marker) {
			return true
		}
	}
	return false
}

func placeSegments(location string) []string {
	raw := strings.FieldsFunc(location, func(r rune) bool {
		switch r {
		case ',', '/', '|', ';', '(', ')':
			return true
		}
		return false
	})

	segments := make([]string, 0, len(raw))
	for _, segment := range raw {
		segment = strings.Trim(strings.TrimSpace(segment), ".-")
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

func subset(small, large []string) bool {
	if len(small) == 0 {
		return false
	}
	set := NewTokenSet(large...)
	for _, s := range small {
		if !set.Has(s) {
			return false
		}
	}
	return true
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// DefaultRegions returns the US census regions keyed by region name.
func DefaultRegions() map[string][]string {
	return map[string][]string{
		"northeast": {
			"ct", "connecticut", "me", "maine", "ma", "massachusetts", "nh", "new hampshire",
			"ri", "rhode island", "vt", "vermont", "nj", "new jersey", "ny", "new york",
			"pa", "pennsylvania",
		},
		"midwest": {
			"il", "illinois", "in", "indiana", "mi", "michigan", "oh", "ohio", "wi", "wisconsin",
			"ia", "iowa", "ks", "kansas", "mn", "minnesota", "mo", "missouri", "ne", "nebraska",
			"nd", "north dakota", "sd", "south dakota",
		},
		"south": {
			"de", "delaware", "dc", "district of columbia", "fl", "florida", "ga", "georgia",
			"md", "maryland", "nc", "north carolina", "sc", "south carolina", "va", "virginia",
			"wv", "west virginia", "al", "alabama", "ky", "kentucky", "ms", "mississippi",
			"tn", "tennessee", "ar", "arkansas", "la", "louisiana", "ok", "oklahoma",
			"tx", "texas",
		},
		"west": {
			"az", "arizona", "co", "colorado", "id", "idaho", "mt", "montana", "nv", "nevada",
			"nm", "new mexico", "ut", "utah", "wy", "wyoming", "ak", "alaska", "ca", "california",
			"hi", "hawaii", "or", "oregon", "wa", "washington",
		},
	}
}
