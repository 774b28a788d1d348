package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduleValid(t *testing.T) {
	s, err := NewSchedule(KindSocialSecurity, brazilINSS(2025))
	require.NoError(t, err)

	brackets := s.Brackets()
	assert.Len(t, brackets, 4)
	assert.Equal(t, 0.0, brackets[0].Min)
	assert.True(t, brackets[len(brackets)-1].Unbounded())
}

func TestNewScheduleSortsUnsortedInput(t *testing.T) {
	rows := brazilINSS(2025)
	rows[0], rows[3] = rows[3], rows[0]

	s, err := NewSchedule(KindSocialSecurity, rows)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Brackets()[0].Min)
}

func TestNewScheduleRejectsEmpty(t *testing.T) {
	_, err := NewSchedule(KindIncomeTax, nil)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestNewScheduleRejectsGap(t *testing.T) {
	rows := []Bracket{
		{ID: "low", Kind: KindIncomeTax, Min: 0, Max: 1000},
		{ID: "high", Kind: KindIncomeTax, Min: 2000, Max: 0, Rate: 0.1},
	}
	_, err := NewSchedule(KindIncomeTax, rows)
	require.ErrorIs(t, err, ErrInvalidSchedule)
	assert.Contains(t, err.Error(), "gap")
}

func TestNewScheduleRejectsOverlap(t *testing.T) {
	rows := []Bracket{
		{ID: "low", Kind: KindIncomeTax, Min: 0, Max: 1000},
		{ID: "high", Kind: KindIncomeTax, Min: 500, Max: 0, Rate: 0.1},
	}
	_, err := NewSchedule(KindIncomeTax, rows)
	require.ErrorIs(t, err, ErrInvalidSchedule)
	assert.Contains(t, err.Error(), "overlap")
}

func TestNewScheduleRejectsNegativeRate(t *testing.T) {
	rows := []Bracket{
		{ID: "only", Kind: KindIncomeTax, Min: 0, Max: 0, Rate: -0.1},
	}
	_, err := NewSchedule(KindIncomeTax, rows)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestNewScheduleRejectsBoundedTop(t *testing.T) {
	rows := []Bracket{
		{ID: "low", Kind: KindIncomeTax, Min: 0, Max: 1000},
		{ID: "high", Kind: KindIncomeTax, Min: 1000.01, Max: 5000, Rate: 0.1},
	}
	_, err := NewSchedule(KindIncomeTax, rows)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestNewScheduleRejectsKindMismatch(t *testing.T) {
	_, err := NewSchedule(KindIncomeTax, brazilINSS(2025))
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestRulesForUnknownCountry(t *testing.T) {
	_, err := RulesFor("DE", 2025)
	assert.Error(t, err)
}
