package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/smarttask/internal/errors"
)

// 2025-06-10 is a Tuesday.
var refNow = time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

func TestParseDueDateFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"iso", "2025-12-15", "2025-12-15"},
		{"iso_padded", "  2025-12-15 ", "2025-12-15"},
		{"day_first", "15/12/2025", "2025-12-15"},
		{"day_first_short", "5/1/2026", "2026-01-05"},
		{"day_first_dotted", "15.12.2025", "2025-12-15"},
		{"iso_unpadded", "2025-6-5", "2025-06-05"},
		{"plus_days", "+3d", "2025-06-13"},
		{"plus_weeks", "+2w", "2025-06-24"},
		{"tomorrow", "tomorrow", "2025-06-11"},
		{"manana", "mañana", "2025-06-11"},
		{"spanish_month", "15 de diciembre", "2025-12-15"},
		{"spanish_words", "quince de diciembre", "2025-12-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDueDate(tt.input, refNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatDueDate(got))
			assert.Equal(t, 0, got.Hour())
		})
	}
}

func TestParseDueDateErrors(t *testing.T) {
	inputs := []string{
		"", "   ", "+0d", "not a date at all xyz",
		"2025-02-30", "31/02/2025", "32/13/2025", "2025.13.01", "99",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDueDate(input, refNow)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidDate)
		})
	}
}

func TestResolveDueDate(t *testing.T) {
	got, err := ResolveDueDate("", refNow)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = ResolveDueDate("+1d", refNow)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-11", got)

	_, err = ResolveDueDate("32/13/2025", refNow)
	assert.Error(t, err)
}

func TestNormalizeSpokenNumbers(t *testing.T) {
	tests := []struct{ in, want string }{
		{"quince de diciembre", "15 de diciembre"},
		{"treinta y uno de enero", "31 de enero"},
		{"veintidós de mayo", "22 de mayo"},
		{"next friday", "next friday"},
		{"once", "11"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeSpokenNumbers(tt.in))
	}
}
