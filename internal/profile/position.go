package profile

import (
	"strings"

	"github.com/spigell/fitrank/internal/scoring"
)

type positionRecord struct {
	ID    any    `mapstructure:"id"`
	JobID any    `mapstructure:"job_id"`
	Code  string `mapstructure:"code"`

	Title    string `mapstructure:"title"`
	JobTitle string `mapstructure:"job_title"`

	// Company is a name or an employer object with a name.
	Company      any    `mapstructure:"company"`
	Employer     any    `mapstructure:"employer"`
	EmployerName string `mapstructure:"employer_name"`

	Location any    `mapstructure:"location"`
	City     string `mapstructure:"job_city"`
	State    string `mapstructure:"job_state"`
	Remote   any    `mapstructure:"remote"`

	Description    string `mapstructure:"description"`
	JobDescription string `mapstructure:"job_description"`

	RequiredSkills  []string `mapstructure:"requiredSkills"`
	Skills          []string `mapstructure:"skills"`
	PreferredSkills []string `mapstructure:"preferredSkills"`
	IdealTraits     []string `mapstructure:"idealTraits"`

	MinExperienceYears any `mapstructure:"minExperienceYears"`
	MinExperience      any `mapstructure:"minExperience"`

	PayMin    any `mapstructure:"payMin"`
	PayMax    any `mapstructure:"payMax"`
	SalaryMin any `mapstructure:"salaryMin"`
	SalaryMax any `mapstructure:"salaryMax"`
	Salary    any `mapstructure:"salary"`

	RequiredCredentials  []string `mapstructure:"requiredCredentials"`
	PreferredCredentials []string `mapstructure:"preferredCredentials"`

	ClearanceRequired any `mapstructure:"clearanceRequired"`
	ClearanceLevel    any `mapstructure:"clearanceLevel"`
	Clearance         any `mapstructure:"clearance"`

	RecommendedMOS    []string `mapstructure:"recommendedMOS"`
	MOSMatch          []string `mapstructure:"mosMatch"`
	VeteranFriendly   any      `mapstructure:"veteranFriendly"`
	VeteranPreference any      `mapstructure:"veteranPreference"`

	CDLClass     string   `mapstructure:"cdlClass"`
	Endorsements []string `mapstructure:"endorsements"`
	TrailerType  string   `mapstructure:"trailerType"`
	JobType      string   `mapstructure:"jobType"`

	Status string `mapstructure:"status"`
	Source string `mapstructure:"source"`
}

// NormalizePosition builds a Position from any supported raw record.
func NormalizePosition(raw map[string]any) scoring.Position {
	p, _ := DecodePosition(raw)
	return p
}

// DecodePosition is NormalizePosition that also returns the fields it had to skip.
func DecodePosition(raw map[string]any) (scoring.Position, []string) {
	if len(raw) == 0 {
		return scoring.Position{RequiredSkills: []string{}, PreferredSkills: []string{}}, nil
	}

	var rec positionRecord
	warnings := decode(raw, &rec)
	kind := DetectPositionKind(raw)

	p := scoring.Position{
		ID:       firstString(coerceString(rec.ID), coerceString(rec.JobID)),
		Title:    firstString(rec.Title, rec.JobTitle),
		Company:  firstString(companyName(rec.Company), companyName(rec.Employer), rec.EmployerName),
		Location: positionLocation(rec),
		Status:   scoring.NormalizeToken(rec.Status),
		Source:   strings.TrimSpace(rec.Source),
	}
	description := firstString(rec.Description, rec.JobDescription)

	var required, preferred, requiredCreds, preferredCreds []string
	required = rec.RequiredSkills
	if len(required) == 0 {
		required = rec.Skills
	}
	preferred = append(preferred, rec.PreferredSkills...)
	requiredCreds = append(requiredCreds, rec.RequiredCredentials...)
	preferredCreds = append(preferredCreds, rec.PreferredCredentials...)

	switch kind {
	case KindCDL:
		requiredCreds = append(requiredCreds, cdlToken(rec.CDLClass))
		requiredCreds = append(requiredCreds, endorsementTokens(rec.Endorsements)...)
		preferred = append(preferred, rec.TrailerType, rec.JobType)
	case KindMOS:
		required = append(required, rec.IdealTraits...)
		if p.ID == "" {
			p.ID = rec.Code
		}
		preferredCreds = append(preferredCreds, scoring.CredentialToken(scoring.CredentialMOS, rec.Code))
		if m, ok := LookupMOS(rec.Code); ok {
			preferred = append(preferred, m.TransferableSkills...)
			if p.Title == "" {
				p.Title = m.Title
			}
		}
	}

	clearance, detected := positionClearance(rec, kind, description)
	requiredCreds = append(requiredCreds, clearance)
	preferredCreds = append(preferredCreds, detected)
	preferredCreds = append(preferredCreds, positionMOS(rec, p.Title, description)...)

	p.RequiredSkills = uniqueOrdered(required, nil)
	p.PreferredSkills = uniqueOrdered(preferred, p.RequiredSkills)
	p.RequiredCredentials = uniqueOrdered(requiredCreds, nil)
	p.PreferredCredentials = uniqueOrdered(preferredCreds, p.RequiredCredentials)
	p.MinExperienceYears, _ = firstYears(rec.MinExperienceYears, rec.MinExperience)
	p.PayMin, p.PayMax = positionPay(rec)

	return p, warnings
}

func positionLocation(rec positionRecord) string {
	location := coerceLocation(rec.Location)
	if location == "" {
		location = coerceLocation(map[string]any{"city": rec.City, "state": rec.State})
	}
	if coerceBool(rec.Remote) && !strings.Contains(strings.ToLower(location), "remote") {
		return "Remote"
	}
	return location
}

func positionPay(rec positionRecord) (*float64, *float64) {
	low := firstMoney(rec.PayMin, rec.SalaryMin)
	high := firstMoney(rec.PayMax, rec.SalaryMax)
	if low != nil || high != nil {
		return low, high
	}

	if text, ok := rec.Salary.(string); ok {
		low, high = ParseSalary(text)
		return positiveOrNil(low), positiveOrNil(high)
	}
	return coerceMoney(rec.Salary), nil
}

// positionClearance returns the clearance an explicit field requires. Without
// one, a clearance mentioned in a generic job description is only preferred.
func positionClearance(rec positionRecord, kind Kind, description string) (string, string) {
	explicit := false
	for _, v := range []any{rec.ClearanceRequired, rec.ClearanceLevel, rec.Clearance} {
		if v == nil {
			continue
		}
		explicit = true
		if token := clearanceToken(coerceString(v)); token != "" {
			return token, ""
		}
	}
	if explicit || kind != KindJob {
		return "", ""
	}
	return "", clearanceToken(DetectClearance(description))
}

func positionMOS(rec positionRecord, title, description string) []string {
	codes := append(append([]string{}, rec.RecommendedMOS...), rec.MOSMatch...)
	if len(codes) == 0 && (coerceBool(rec.VeteranFriendly) || coerceBool(rec.VeteranPreference)) {
		codes = TagMOS(title + " " + description)
	}

	tokens := make([]string, 0, len(codes))
	for _, code := range codes {
		if scoring.NormalizeToken(code) == "any" {
			continue
		}
		tokens = append(tokens, scoring.CredentialToken(scoring.CredentialMOS, code))
	}
	return tokens
}

func companyName(v any) string {
	if m := coerceMap(v); m != nil {
		return coerceString(m["name"])
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// uniqueOrdered normalizes tokens, keeps the first occurrence and drops tokens present in exclude.
func uniqueOrdered(tokens []string, exclude []string) []string {
	skip := scoring.NewTokenSet(exclude...)
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = scoring.NormalizeToken(token)
		if token == "" || skip.Has(token) {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

func firstString(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func positiveOrNil(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return positiveAmount(*v)
}
