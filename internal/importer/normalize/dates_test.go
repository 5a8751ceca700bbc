package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_SupportedFormats(t *testing.T) {
	restore := now
	now = func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }
	defer func() { now = restore }()

	tests := []struct {
		in   string
		want string
	}{
		{"2025/03/10", "2025-03-10"},
		{"2025.03.10", "2025-03-10"},
		{"2025/3/5", "2025-03-05"},
		{"2025-03-10", "2025-03-10"},
		{"March-25", "2025-03-01"},
		{"Mar-25", "2025-03-01"},
		{"December-24", "2024-12-01"},
		{"شهر 3", "2025-03-01"},
		{"شهر 11", "2025-11-01"},
		{"شحن 10-3", "2025-03-10"},
		{"10-03-2025", "2025-03-10"},
		{" 2025/03/10 ", "2025-03-10"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseDate(tt.in)
			require.NotNil(t, got, "expected %q to parse", tt.in)
			assert.Equal(t, tt.want, FormatDate(*got))
		})
	}
}

func TestParseDate_Unparseable(t *testing.T) {
	for _, in := range []string{"", "   ", "-", "soon", "2025", "13-13-2025", "2025/02/30", "Smarch-25"} {
		assert.Nil(t, ParseDate(in), "input %q", in)
	}
}

func TestParseDate_TwoDigitYearsAre20YY(t *testing.T) {
	got := ParseDate("Jan-99")
	require.NotNil(t, got)
	assert.Equal(t, 2099, got.Year())
}

// Round-trip: parse then re-format yields the same calendar date.
func TestParseDate_RoundTrip(t *testing.T) {
	for _, iso := range []string{"2024-01-31", "2025-12-01", "2023-06-15"} {
		got := ParseDate(iso)
		require.NotNil(t, got)
		assert.Equal(t, iso, FormatDate(*got))
	}
}
