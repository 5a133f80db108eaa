package profile

import (
	"regexp"
	"sort"
	"strings"

	"github.com/spigell/fitrank/internal/scoring"
)

// MOS describes a military occupational specialty and the civilian skills it transfers to.
type MOS struct {
	Code               string
	Title              string
	Branch             string
	TransferableSkills []string
}

var mosTable = map[string]MOS{
	"11b":   {"11B", "Infantryman", "Army", []string{"Leadership", "Team Management", "Crisis Response", "Tactical Planning"}},
	"12b":   {"12B", "Combat Engineer", "Army", []string{"Construction", "Demolition", "Heavy Equipment", "Route Clearance"}},
	"17c":   {"17C", "Cyber Operations Specialist", "Army", []string{"Network Security", "Penetration Testing", "Malware Analysis", "Incident Response"}},
	"25b":   {"25B", "Information Technology Specialist", "Army", []string{"System Administration", "Troubleshooting", "Network Management", "User Support"}},
	"25n":   {"25N", "Nodal Network Systems Operator", "Army", []string{"Network Operations", "Routers/Switches", "VoIP", "Telecommunications"}},
	"31b":   {"31B", "Military Police", "Army", []string{"Law Enforcement", "Investigation", "Security", "Report Writing"}},
	"35f":   {"35F", "Intelligence Analyst", "Army", []string{"Intelligence Analysis", "Research", "Reporting", "Threat Assessment"}},
	"35n":   {"35N", "Signals Intelligence Analyst", "Army", []string{"Signals Analysis", "SIGINT Tools", "Technical Analysis"}},
	"42a":   {"42A", "Human Resources Specialist", "Army", []string{"HR Systems", "Personnel Management", "Records", "Customer Service"}},
	"68w":   {"68W", "Combat Medic", "Army", []string{"Emergency Medicine", "Trauma Care", "Patient Assessment", "Medical Procedures"}},
	"74d":   {"74D", "CBRN Specialist", "Army", []string{"HAZMAT Response", "Decontamination", "Safety Procedures", "Risk Assessment"}},
	"88m":   {"88M", "Motor Transport Operator", "Army", []string{"Commercial Driving", "Vehicle Inspection", "Cargo Management", "Route Planning"}},
	"89d":   {"89D", "Explosive Ordnance Disposal", "Army", []string{"EOD", "Hazmat", "Robotics", "Crisis Response"}},
	"91b":   {"91B", "Wheeled Vehicle Mechanic", "Army", []string{"Vehicle Diagnostics", "Engine Repair", "Preventive Maintenance"}},
	"92a":   {"92A", "Automated Logistical Specialist", "Army", []string{"Inventory Management", "Logistics Systems", "Supply Chain"}},
	"hm":    {"HM", "Hospital Corpsman", "Navy", []string{"Patient Care", "Emergency Medicine", "Medical Procedures"}},
	"ctn":   {"CTN", "Cryptologic Technician Networks", "Navy", []string{"Offensive Cyber", "Network Security", "Threat Hunting"}},
	"1b4x1": {"1B4X1", "Cyber Warfare Operations", "Air Force", []string{"Offensive Cyber", "Penetration Testing", "Malware Analysis"}},
	"3d0x2": {"3D0X2", "Cyber Systems Operations", "Air Force", []string{"System Administration", "Server Management", "Cloud Computing"}},
	"3p0x1": {"3P0X1", "Security Forces", "Air Force", []string{"Law Enforcement", "Security", "Investigations", "Access Control"}},
	"0311":  {"0311", "Rifleman", "Marines", []string{"Leadership", "Team Operations", "Crisis Response", "Physical Security"}},
	"2651":  {"2651", "Cybersecurity Technician", "Marines", []string{"Incident Response", "Security Monitoring", "Network Defense"}},
	"5811":  {"5811", "Military Police", "Marines", []string{"Law Enforcement", "Investigations", "Security", "Physical Security"}},
}

// LookupMOS finds a specialty by code, ignoring case.
func LookupMOS(code string) (MOS, bool) {
	m, ok := mosTable[scoring.NormalizeToken(code)]
	return m, ok
}

var mosKeywords = map[string][]string{
	"17c": {"cyber", "security", "infosec", "network defense", "hacker", "penetration", "forensics", "digital"},
	"11b": {"security", "protection", "police", "guard", "defense", "patrol", "surveillance", "tactical"},
	"35f": {"analyst", "intelligence", "clearance", "top secret", "ts/sci", "threat", "reporting", "geospatial"},
	"25b": {"help desk", "it specialist", "network admin", "system admin", "technical support", "cloud", "infrastructure"},
	"68w": {"medical", "emt", "paramedic", "healthcare", "nurse", "emergency", "first aid", "clinical"},
	"92g": {"culinary", "cook", "food", "nutrition", "chef", "hospitality"},
	"88m": {"logistics", "driver", "transportation", "fleet", "delivery", "supply chain", "warehouse"},
	"31b": {"law enforcement", "security", "patrol", "safety", "compliance", "investigation", "private police"},
}

// TagMOS returns the sorted specialty codes whose keywords appear in the text.
func TagMOS(text string) []string {
	text = strings.ToLower(text)

	var codes []string
	for code, keywords := range mosKeywords {
		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				codes = append(codes, code)
				break
			}
		}
	}
	sort.Strings(codes)
	return codes
}

var (
	topSecretPattern = regexp.MustCompile(`\b(ts/sci|top secret|sci[- ]eligible)\b`)
	secretPattern    = regexp.MustCompile(`\b(secret|clearance required|adjudicat\w*)\b`)
	noClearance      = regexp.MustCompile(`\b(no|not|without|zero)\s+(\w+\s+)?clearances?\b|\bclearances?\s+(is\s+|are\s+)?not\s+(required|needed)\b`)
)

// DetectClearance finds the clearance level a job description mentions.
// Negated phrases such as "no clearance required" are ignored.
func DetectClearance(text string) string {
	t := noClearance.ReplaceAllString(strings.ToLower(text), " ")
	switch {
	case topSecretPattern.MatchString(t):
		return "ts/sci"
	case secretPattern.MatchString(t):
		return "secret"
	}
	return ""
}

// NormalizeClearance maps free-form clearance text onto the clearance ladder.
// An empty result means no clearance.
func NormalizeClearance(level string) string {
	t := scoring.NormalizeToken(level)
	t = strings.TrimPrefix(t, scoring.CredentialClearance+":")
	t = strings.TrimSpace(t)

	switch t {
	case "", "none", "no", "n/a", "false", "0":
		return ""
	case "true", "yes", "required", "active":
		return "secret"
	case "ts":
		return "ts"
	}

	switch {
	case strings.Contains(t, "sci"):
		return "ts/sci"
	case strings.Contains(t, "top secret"):
		return "ts"
	case strings.Contains(t, "secret"):
		return "secret"
	case strings.Contains(t, "confidential"):
		return "confidential"
	case strings.Contains(t, "public trust"):
		return "public trust"
	}
	return t
}

func clearanceToken(level string) string {
	return scoring.CredentialToken(scoring.CredentialClearance, NormalizeClearance(level))
}

// endorsementTokens expands CDL endorsement letters. X is the hazmat and tank combination.
func endorsementTokens(letters []string) []string {
	out := make([]string, 0, len(letters))
	for _, letter := range letters {
		letter = scoring.NormalizeToken(letter)
		if letter == "x" {
			out = append(out,
				scoring.CredentialToken(scoring.CredentialEndorsement, "h"),
				scoring.CredentialToken(scoring.CredentialEndorsement, "n"),
			)
			continue
		}
		if token := scoring.CredentialToken(scoring.CredentialEndorsement, letter); token != "" {
			out = append(out, token)
		}
	}
	return out
}

func cdlToken(class string) string {
	class = scoring.NormalizeToken(class)
	for _, prefix := range []string{"cdl", "class"} {
		class = strings.TrimLeft(strings.TrimPrefix(class, prefix), "-: ")
	}
	switch class {
	case "", "none", "no":
		return ""
	}
	return scoring.CredentialToken(scoring.CredentialCDL, class)
}
