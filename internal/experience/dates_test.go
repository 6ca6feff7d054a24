package experience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

func TestParseDate_Formats(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		boundary Boundary
		want     YearMonth
		format   DateFormat
	}{
		{"iso month", "2020-01", BoundaryStart, YearMonth{2020, time.January}, FormatNumericYearFirst},
		{"iso full date", "2020-03-15", BoundaryStart, YearMonth{2020, time.March}, FormatNumericYearFirst},
		{"year slash month", "2020/11", BoundaryEnd, YearMonth{2020, time.November}, FormatNumericYearFirst},
		{"month slash year", "01/2020", BoundaryStart, YearMonth{2020, time.January}, FormatNumericMonthFirst},
		{"single digit month", "3/2019", BoundaryStart, YearMonth{2019, time.March}, FormatNumericMonthFirst},
		{"short month name", "Jan 2020", BoundaryStart, YearMonth{2020, time.January}, FormatMonthName},
		{"full month name", "January 2020", BoundaryStart, YearMonth{2020, time.January}, FormatMonthName},
		{"sept abbreviation", "Sept. 2021", BoundaryStart, YearMonth{2021, time.September}, FormatMonthName},
		{"comma separated", "Dec, 2018", BoundaryEnd, YearMonth{2018, time.December}, FormatMonthName},
		{"upper case", "MAR 2017", BoundaryStart, YearMonth{2017, time.March}, FormatMonthName},
		{"year as start", "2020", BoundaryStart, YearMonth{2020, time.January}, FormatYearOnly},
		{"year as end", "2020", BoundaryEnd, YearMonth{2020, time.December}, FormatYearOnly},
		{"padded", "  2020-01  ", BoundaryStart, YearMonth{2020, time.January}, FormatNumericYearFirst},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, tt.boundary, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Month)
			assert.Equal(t, tt.format, got.Format)
			assert.False(t, got.Present)
		})
	}
}

func TestParseDate_PresentSentinels(t *testing.T) {
	for _, input := range []string{"Present", "current", "NOW", "Ongoing", "To date", "today"} {
		t.Run(input, func(t *testing.T) {
			got, err := ParseDate(input, BoundaryEnd, testNow)
			require.NoError(t, err)
			assert.True(t, got.Present)
			assert.Equal(t, YearMonth{2024, time.June}, got.Month)
			assert.True(t, IsPresent(input))
		})
	}
}

func TestParseDate_Unparsable(t *testing.T) {
	for _, input := range []string{"", "   ", "sometime", "13/2020", "2020-13", "Foo 2020", "1820", "Q3 2020"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input, BoundaryStart, testNow)
			require.Error(t, err)

			var parseErr *DateParseError
			assert.True(t, errors.As(err, &parseErr), "error should be DateParseError type")
		})
	}
}

func TestYearMonth(t *testing.T) {
	jan := YearMonth{2020, time.January}
	dec := YearMonth{2019, time.December}

	assert.Equal(t, 1, jan.Index()-dec.Index())
	assert.True(t, dec.Before(jan))
	assert.True(t, jan.After(dec))
	assert.Equal(t, jan, fromIndex(jan.Index()))
	assert.Equal(t, dec, fromIndex(dec.Index()))
	assert.Equal(t, "2020-01", jan.String())
	assert.True(t, YearMonth{}.IsZero())

	text, err := jan.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2020-01", string(text))
}
