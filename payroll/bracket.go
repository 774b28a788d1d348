package payroll

import (
	"errors"
	"fmt"
	"sort"
)

// Kind distinguishes the two withholding styles a bracket table can describe.
type Kind string

const (
	// KindSocialSecurity is cumulative: each income slice is taxed at its
	// bracket rate and the slices are summed, subject to a cap.
	KindSocialSecurity Kind = "social_security"

	// KindIncomeTax is single-bracket: the whole base is taxed at the rate
	// of the bracket containing it, minus that bracket's fixed deduction.
	KindIncomeTax Kind = "income_tax"
)

// ErrInvalidSchedule is returned when a bracket table fails validation.
// A bad table is a configuration error, never a reason to fall back to a
// default table.
var ErrInvalidSchedule = errors.New("invalid bracket schedule")

// Bracket is one row of a progressive withholding schedule.
// Max <= 0 marks the unbounded top bracket. Deduction is only meaningful
// for income-tax style tables.
type Bracket struct {
	ID        string  `json:"id"`
	Country   string  `json:"country"`
	Kind      Kind    `json:"kind"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Rate      float64 `json:"rate"`
	Deduction float64 `json:"deduction"`
	Year      int     `json:"year"`
	Active    bool    `json:"active"`
}

// Unbounded reports whether the bracket has no upper limit.
func (b Bracket) Unbounded() bool {
	return b.Max <= 0
}

// Schedule is a validated, sorted bracket table for one (country, kind, year).
type Schedule struct {
	kind     Kind
	brackets []Bracket
}

// Published tables step adjacent bounds by one cent (1518.00 -> 1518.01).
// Contiguity checks accept either that step or exactly touching bounds.
const boundStepTolerance = 0.011

// NewSchedule validates the bracket rows and returns an immutable schedule.
// The rows must cover 0..infinity with no gaps or overlaps once sorted by
// minimum amount, carry rates in [0, 1], and end in an unbounded top bracket.
func NewSchedule(kind Kind, brackets []Bracket) (*Schedule, error) {
	if len(brackets) == 0 {
		return nil, fmt.Errorf("%w: no brackets", ErrInvalidSchedule)
	}

	sorted := make([]Bracket, len(brackets))
	copy(sorted, brackets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })

	for i, b := range sorted {
		if b.Kind != kind {
			return nil, fmt.Errorf("%w: bracket %q has kind %q, schedule is %q", ErrInvalidSchedule, b.ID, b.Kind, kind)
		}
		if b.Rate < 0 || b.Rate > 1 {
			return nil, fmt.Errorf("%w: bracket %q rate %.4f outside [0, 1]", ErrInvalidSchedule, b.ID, b.Rate)
		}
		if b.Deduction < 0 {
			return nil, fmt.Errorf("%w: bracket %q has negative deduction", ErrInvalidSchedule, b.ID)
		}
		if b.Unbounded() && i != len(sorted)-1 {
			return nil, fmt.Errorf("%w: unbounded bracket %q is not the top bracket", ErrInvalidSchedule, b.ID)
		}
	}

	if sorted[0].Min != 0 {
		return nil, fmt.Errorf("%w: lowest bracket starts at %.2f, want 0", ErrInvalidSchedule, sorted[0].Min)
	}
	if !sorted[len(sorted)-1].Unbounded() {
		return nil, fmt.Errorf("%w: top bracket is bounded at %.2f", ErrInvalidSchedule, sorted[len(sorted)-1].Max)
	}

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		step := cur.Min - prev.Max
		if step < 0 {
			return nil, fmt.Errorf("%w: brackets %q and %q overlap", ErrInvalidSchedule, prev.ID, cur.ID)
		}
		if step > boundStepTolerance {
			return nil, fmt.Errorf("%w: gap between %.2f and %.2f", ErrInvalidSchedule, prev.Max, cur.Min)
		}
	}

	return &Schedule{kind: kind, brackets: sorted}, nil
}

// Kind returns the withholding style this schedule describes.
func (s *Schedule) Kind() Kind {
	return s.kind
}

// Brackets returns a copy of the sorted bracket rows.
func (s *Schedule) Brackets() []Bracket {
	out := make([]Bracket, len(s.brackets))
	copy(out, s.brackets)
	return out
}

// containing returns the bracket owning base. Selection is half-open on
// the next bracket's lower bound: published tables step bounds in whole
// cents, and a base with sub-cent precision landing between two bounds
// belongs to the lower bracket, never the top one.
func (s *Schedule) containing(base float64) Bracket {
	for i := 0; i < len(s.brackets)-1; i++ {
		if base < s.brackets[i+1].Min {
			return s.brackets[i]
		}
	}
	return s.brackets[len(s.brackets)-1]
}
