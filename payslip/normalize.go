package payslip

import (
	"strings"
	"time"

	"github.com/pimfinance/payslip-engine/extract"
)

// NormalizeRaw maps a flat raw-field record produced by extraction onto the
// canonical schema. For each canonical field the country's synonym list is
// walked in order and the first raw key holding a non-empty value decides
// the outcome: a clean parse fills the field, a failed parse leaves it nil.
// Zero and "unknown" are never conflated: a value that cannot be coerced
// becomes nil, not 0. The call is deterministic: the same raw record always
// yields the same canonical record.
func NormalizeRaw(raw map[string]any, country Country) *Extracted {
	loc := extract.LocaleFor(string(country))
	table := synonymsFor(country)

	e := &Extracted{
		Country:     country,
		Method:      MethodRegex,
		ExtractedAt: time.Now().UTC(),
	}

	for _, spec := range fieldSpecs {
		keys, applicable := table[spec.name]
		if !applicable {
			continue
		}
		for _, key := range keys {
			v, ok := raw[key]
			if !ok || isEmpty(v) {
				continue
			}
			if spec.numeric {
				if f, parsed := coerceNumber(v, loc); parsed {
					spec.setNum(e, f)
				}
			} else {
				if s, parsed := coerceString(v); parsed {
					spec.setStr(e, s)
				}
			}
			break
		}
	}

	e.Confidence = Confidence(e)
	return e
}

func isEmpty(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// coerceNumber accepts the value shapes raw extraction produces: numbers
// pass through, strings go through the shared money cleaner. Negative
// amounts violate the schema invariant and count as a miss.
func coerceNumber(v any, loc extract.Locale) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, ok := extract.ParseAmount(n, loc)
		if !ok {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f < 0 {
		return 0, false
	}
	return f, true
}

func coerceString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
