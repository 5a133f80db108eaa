package profile

import (
	"github.com/spigell/fitrank/internal/scoring"
)

type candidateRecord struct {
	Skills             []string `mapstructure:"skills"`
	Keywords           []string `mapstructure:"keywords"`
	TransferableSkills []string `mapstructure:"transferableSkills"`

	ExperienceYears      any `mapstructure:"experienceYears"`
	TotalYearsExperience any `mapstructure:"totalYearsExperience"`
	YearsExperience      any `mapstructure:"yearsExperience"`
	YearsServed          any `mapstructure:"yearsServed"`
	// Experience is a number, a {years} object or a list of past jobs.
	Experience any `mapstructure:"experience"`

	Location  any `mapstructure:"location"`
	MinSalary any `mapstructure:"minSalary"`

	Preferences struct {
		MinSalary any      `mapstructure:"minSalary"`
		MinPay    any      `mapstructure:"minPay"`
		Location  any      `mapstructure:"location"`
		JobType   []string `mapstructure:"jobType"`
	} `mapstructure:"preferences"`

	Certifications []string `mapstructure:"certifications"`
	Clearance      any      `mapstructure:"clearance"`
	Credentials    []string `mapstructure:"credentials"`
	MOS            string   `mapstructure:"mos"`

	CDL struct {
		Class        string   `mapstructure:"class"`
		Endorsements []string `mapstructure:"endorsements"`
	} `mapstructure:"cdl"`

	Equipment struct {
		TrailerTypes []string `mapstructure:"trailerTypes"`
	} `mapstructure:"equipment"`

	Veteran struct {
		MOS          string `mapstructure:"mos"`
		ServiceYears any    `mapstructure:"serviceYears"`
	} `mapstructure:"veteran"`
}

// NormalizeCandidate builds a Candidate from any supported raw record.
func NormalizeCandidate(raw map[string]any) scoring.Candidate {
	c, _ := DecodeCandidate(raw)
	return c
}

// DecodeCandidate is NormalizeCandidate that also returns the fields it had to skip.
func DecodeCandidate(raw map[string]any) (scoring.Candidate, []string) {
	if len(raw) == 0 {
		return scoring.Candidate{}, nil
	}

	var rec candidateRecord
	warnings := decode(flattenResume(raw), &rec)
	kind := DetectCandidateKind(raw)

	skills := make([]string, 0, len(rec.Skills)+len(rec.Keywords)+len(rec.TransferableSkills))
	skills = append(skills, rec.Skills...)
	skills = append(skills, rec.Keywords...)
	skills = append(skills, rec.TransferableSkills...)
	skills = append(skills, rec.Equipment.TrailerTypes...)
	skills = append(skills, rec.Preferences.JobType...)

	credentials := make([]string, 0, len(rec.Credentials)+len(rec.Certifications)+4)
	credentials = append(credentials, rec.Credentials...)
	for _, cert := range rec.Certifications {
		credentials = append(credentials, scoring.CredentialToken(scoring.CredentialCert, cert))
	}
	credentials = append(credentials, clearanceToken(coerceString(rec.Clearance)))
	credentials = append(credentials, cdlToken(rec.CDL.Class))
	credentials = append(credentials, endorsementTokens(rec.CDL.Endorsements)...)

	for _, code := range []string{rec.MOS, rec.Veteran.MOS} {
		if code == "" {
			continue
		}
		credentials = append(credentials, scoring.CredentialToken(scoring.CredentialMOS, code))
		if m, ok := LookupMOS(code); ok {
			skills = append(skills, m.TransferableSkills...)
		}
	}

	var years float64
	switch kind {
	case KindCDL:
		years, _ = firstYears(rec.Experience, rec.ExperienceYears, rec.YearsExperience)
	case KindVeteran:
		years, _ = firstYears(rec.ExperienceYears, rec.TotalYearsExperience, rec.YearsServed, rec.Veteran.ServiceYears, rec.Experience)
	default:
		years, _ = firstYears(rec.TotalYearsExperience, rec.ExperienceYears, rec.YearsExperience, rec.Experience)
	}

	location := coerceLocation(rec.Location)
	if location == "" {
		location = coerceLocation(rec.Preferences.Location)
	}

	return scoring.Candidate{
		Skills:          scoring.NewTokenSet(skills...),
		ExperienceYears: years,
		Location:        location,
		MinSalary:       firstMoney(rec.MinSalary, rec.Preferences.MinSalary, rec.Preferences.MinPay),
		Credentials:     scoring.NewTokenSet(credentials...),
	}, warnings
}

// flattenResume lifts the fields of a nested "resume" object to the top level.
// Top-level fields win.
func flattenResume(raw map[string]any) map[string]any {
	nested := coerceMap(raw["resume"])
	if nested == nil {
		return raw
	}

	merged := make(map[string]any, len(nested)+len(raw))
	for k, v := range nested {
		merged[k] = v
	}
	for k, v := range raw {
		if k == "resume" {
			continue
		}
		merged[k] = v
	}
	return merged
}
