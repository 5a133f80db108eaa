package profile

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	amountPattern  = regexp.MustCompile(`(\$\s*)?(\d[\d,]*(?:\.\d+)?)(?:\s*([kKmM])\b)?`)
	rangeSeparator = regexp.MustCompile(`^\s*(?:-|–|—|to)\s*$`)
)

type salaryFigure struct {
	amount float64
	suffix string
	dollar bool
	start  int
	end    int
}

// ParseSalary extracts the lower and upper bound from free salary text such as
// "$75,000-85,000/year", "$70k+" or "90000". Missing bounds are nil.
// Amounts keep the unit of the text; hourly or per-mile pay is not annualized.
//
// The upper bound must follow the lower one through a range separator. When
// the text has dollar amounts, the lower bound must be one of them, so "401k"
// never becomes pay.
func ParseSalary(text string) (*float64, *float64) {
	var figures []salaryFigure
	anyDollar := false
	for _, m := range amountPattern.FindAllStringSubmatchIndex(text, -1) {
		f, err := strconv.ParseFloat(strings.ReplaceAll(text[m[4]:m[5]], ",", ""), 64)
		if err != nil {
			continue
		}
		fig := salaryFigure{amount: f, dollar: m[2] >= 0, start: m[0], end: m[1]}
		if m[6] >= 0 {
			fig.suffix = strings.ToLower(text[m[6]:m[7]])
		}
		anyDollar = anyDollar || fig.dollar
		figures = append(figures, fig)
	}

	var kept []salaryFigure
	for _, fig := range figures {
		if len(kept) == 0 {
			if anyDollar && !fig.dollar {
				continue
			}
			kept = append(kept, fig)
			continue
		}
		if rangeSeparator.MatchString(text[kept[0].end:fig.start]) {
			kept = append(kept, fig)
		}
		break
	}
	if len(kept) == 0 {
		return nil, nil
	}

	// "$75-85k" carries the multiplier only on the upper bound.
	if len(kept) == 2 && kept[0].suffix == "" && kept[1].suffix != "" && kept[0].amount < 1000 {
		kept[0].suffix = kept[1].suffix
	}

	low := kept[0].amount * multiplier(kept[0].suffix)
	if len(kept) == 1 {
		return &low, nil
	}
	high := kept[1].amount * multiplier(kept[1].suffix)
	if high < low {
		low, high = high, low
	}
	return &low, &high
}

func multiplier(suffix string) float64 {
	switch suffix {
	case "k":
		return 1e3
	case "m":
		return 1e6
	default:
		return 1
	}
}

// coerceMoney accepts numbers and salary text. Non-positive or unusable values
// mean no constraint.
func coerceMoney(v any) *float64 {
	if s, ok := v.(string); ok {
		if f := coerceFloat(s); !math.IsNaN(f) {
			return positiveAmount(f)
		}
		low, _ := ParseSalary(s)
		if low == nil {
			return nil
		}
		return positiveAmount(*low)
	}
	return positiveAmount(coerceFloat(v))
}

func positiveAmount(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return nil
	}
	return &f
}

func firstMoney(values ...any) *float64 {
	for _, v := range values {
		if m := coerceMoney(v); m != nil {
			return m
		}
	}
	return nil
}
