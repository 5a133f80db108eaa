// Package output renders ranking results for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/spigell/fitrank/internal/scoring"
)

var matchHeaders = []string{"#", "score", "tier", "position", "company", "skills", "exp", "loc", "pay", "creds", "missing"}

// Printer writes match lists, optionally coloured by tier.
type Printer struct {
	out       io.Writer
	useColors bool
}

func NewPrinter(out io.Writer, useColors bool) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{out: out, useColors: useColors}
}

// ResolveColors disables colours for NO_COLOR and dumb terminals.
func ResolveColors(enabled bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return enabled
}

// Tier returns the recommendation, coloured when the printer uses colours.
func (p *Printer) Tier(r scoring.Recommendation) string {
	if !p.useColors {
		return string(r)
	}

	var c *color.Color
	switch r {
	case scoring.RecommendationExcellent:
		c = color.New(color.FgGreen, color.Bold)
	case scoring.RecommendationGood:
		c = color.New(color.FgGreen)
	case scoring.RecommendationFair:
		c = color.New(color.FgYellow)
	default:
		c = color.New(color.FgRed)
	}
	c.EnableColor()
	return c.Sprint(string(r))
}

// Matches renders one row per match in the given order.
func (p *Printer) Matches(matches []scoring.MatchScore) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(p.out, "no matching positions")
		return err
	}

	table := NewTable(p.out, matchHeaders)
	for i, m := range matches {
		score := strconv.Itoa(m.OverallScore)
		if m.HardGateFailed {
			score += "!"
		}
		table.AddRow([]string{
			strconv.Itoa(i + 1),
			score,
			p.Tier(m.Recommendation),
			m.PositionTitle,
			m.Company,
			strconv.Itoa(m.Breakdown[scoring.FactorSkills]),
			strconv.Itoa(m.Breakdown[scoring.FactorExperience]),
			strconv.Itoa(m.Breakdown[scoring.FactorLocation]),
			strconv.Itoa(m.Breakdown[scoring.FactorCompensation]),
			strconv.Itoa(m.Breakdown[scoring.FactorCredentials]),
			missing(m),
		})
	}
	return table.Render()
}

// Insights prints the breakdown and insights of a single match.
func (p *Printer) Insights(m scoring.MatchScore) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) at %s: %d %s\n", m.PositionTitle, m.PositionID, m.Company, m.OverallScore, p.Tier(m.Recommendation))
	for _, factor := range scoring.Factors() {
		fmt.Fprintf(&b, "  %-13s %3d\n", factor, m.Breakdown[factor])
	}
	if len(m.MatchedSkills) > 0 {
		fmt.Fprintf(&b, "  matched: %s\n", strings.Join(m.MatchedSkills, ", "))
	}
	if len(m.MissingSkills) > 0 {
		fmt.Fprintf(&b, "  missing: %s\n", strings.Join(m.MissingSkills, ", "))
	}
	if m.HardGateFailed {
		fmt.Fprintf(&b, "  hard gate failed: %s\n", strings.Join(m.MissingCredentials, ", "))
	}
	for _, insight := range m.Insights {
		fmt.Fprintf(&b, "  - %s\n", insight)
	}

	_, err := io.WriteString(p.out, b.String())
	return err
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func missing(m scoring.MatchScore) string {
	parts := make([]string, 0, len(m.MissingSkills)+len(m.MissingCredentials))
	parts = append(parts, m.MissingSkills...)
	parts = append(parts, m.MissingCredentials...)
	return strings.Join(parts, ",")
}
