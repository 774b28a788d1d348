package extract

import (
	"regexp"
	"strings"
)

// Entity is one typed value produced by a document-AI collaborator.
type Entity struct {
	Type       string  `json:"type"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Source identifies which strategy produced a field value.
type Source string

const (
	SourceNone   Source = ""
	SourceRegex  Source = "regex"
	SourceEntity Source = "entity"
)

// Field locates one value in noisy OCR output using an ordered fallback
// chain: a regex scan over the text lines wins outright, then the first
// entity whose type name contains one of the candidate substrings, in the
// given priority order. The cleaner, when supplied, is applied to whichever
// source produced the value. An empty result means the field was not found;
// financial figures are never guessed or defaulted. The returned source
// says which strategy actually yielded the value, so callers never have to
// re-run the regex to attribute it.
func Field(lines []string, re *regexp.Regexp, entityTypes []string, entities []Entity, cleaner func(string) string) (string, Source) {
	value := matchLines(lines, re)
	source := SourceRegex
	if value == "" {
		value = matchEntities(entityTypes, entities)
		source = SourceEntity
	}
	if value == "" {
		return "", SourceNone
	}
	if cleaner != nil {
		value = cleaner(value)
	}
	return strings.TrimSpace(value), source
}

// matchLines scans top to bottom and returns the first capture-group hit.
// First match wins; OCR layouts duplicate labels across pages and the
// topmost occurrence is the most reliable one.
func matchLines(lines []string, re *regexp.Regexp) string {
	if re == nil {
		return ""
	}
	for _, line := range lines {
		if m := re.FindStringSubmatch(line); len(m) > 1 && strings.TrimSpace(m[1]) != "" {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// matchEntities returns the text of the first entity whose type name
// contains, case-insensitively, one of the candidate substrings.
func matchEntities(candidates []string, entities []Entity) string {
	for _, candidate := range candidates {
		want := strings.ToLower(candidate)
		for _, e := range entities {
			if strings.Contains(strings.ToLower(e.Type), want) && strings.TrimSpace(e.Text) != "" {
				return strings.TrimSpace(e.Text)
			}
		}
	}
	return ""
}

// taxIDLine matches employer tax identifiers across all supported
// countries: CNPJ (BR), NIF/NIPC (PT) and SIREN/SIRET (FR).
var taxIDLine = regexp.MustCompile(`(?i)(?:cnpj|nif|nipc|siren|siret)[\s.:]*[\d./\s-]{8,}`)

var employerNoise = []string{
	"cnpj", "nif", "nipc", "siren", "siret", "folha", "recibo", "pagamento",
	"demonstrativo", "bulletin", "paie", "salaire", "periodo", "holerite",
}

// EmployerNearTaxID is the last-resort positional heuristic for the
// employer name: the non-empty line immediately above a tax-ID line.
// It is only consulted after both the regex and entity lookups miss.
func EmployerNearTaxID(lines []string) string {
	for i, line := range lines {
		if !taxIDLine.MatchString(line) {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			candidate := strings.TrimSpace(lines[j])
			if candidate == "" {
				continue
			}
			if looksLikeName(candidate) {
				return candidate
			}
			break
		}
	}
	return ""
}

func looksLikeName(s string) bool {
	if len(s) < 4 || len(s) > 80 {
		return false
	}
	lower := strings.ToLower(s)
	for _, noise := range employerNoise {
		if strings.Contains(lower, noise) {
			return false
		}
	}
	letters := 0
	for _, r := range lower {
		if r >= 'a' && r <= 'z' {
			letters++
		}
	}
	return letters >= len(s)/2
}
