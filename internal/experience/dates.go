package experience

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	minYear = 1950
	maxYear = 2100
)

// YearMonth is a calendar month. Experience is computed at month granularity.
type YearMonth struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing t
func MonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Index returns a monotonic month counter, suitable for arithmetic
func (ym YearMonth) Index() int {
	return ym.Year*12 + int(ym.Month) - 1
}

// fromIndex is the inverse of Index
func fromIndex(idx int) YearMonth {
	return YearMonth{Year: idx / 12, Month: time.Month(idx%12 + 1)}
}

// Before reports whether ym is strictly earlier than other
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Index() < other.Index()
}

// After reports whether ym is strictly later than other
func (ym YearMonth) After(other YearMonth) bool {
	return ym.Index() > other.Index()
}

// IsZero reports whether ym is unset
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// MarshalText renders ym as "YYYY-MM"
func (ym YearMonth) MarshalText() ([]byte, error) {
	return []byte(ym.String()), nil
}

// Boundary says which end of a range a date is. Year-only dates resolve to
// January for a start and December for an end.
type Boundary int

const (
	// BoundaryStart is the first month of a range
	BoundaryStart Boundary = iota
	// BoundaryEnd is the last month of a range
	BoundaryEnd
)

// DateFormat identifies the notation a date was written in
type DateFormat string

// Recognized date notations
const (
	FormatNumericYearFirst  DateFormat = "yyyy-mm"
	FormatNumericMonthFirst DateFormat = "mm/yyyy"
	FormatMonthName         DateFormat = "month yyyy"
	FormatYearOnly          DateFormat = "yyyy"
	FormatPresent           DateFormat = "present"
)

// ParsedDate is the result of parsing one date string
type ParsedDate struct {
	Month   YearMonth  `json:"month"`
	Format  DateFormat `json:"format,omitempty"`
	Present bool       `json:"present,omitempty"`
}

var presentSentinels = map[string]bool{
	"present":    true,
	"current":    true,
	"currently":  true,
	"now":        true,
	"ongoing":    true,
	"today":      true,
	"to date":    true,
	"to present": true,
	"till date":  true,
	"until now":  true,
}

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var (
	yearFirstPattern  = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})(?:[-/.]\d{1,2})?$`)
	monthFirstPattern = regexp.MustCompile(`^(\d{1,2})[-/.](\d{4})$`)
	monthNamePattern  = regexp.MustCompile(`^([a-z]+)\.?,?\s*'?(\d{4})$`)
	yearOnlyPattern   = regexp.MustCompile(`^(\d{4})$`)
	spacePattern      = regexp.MustCompile(`\s+`)
)

// ParseDate interprets a résumé date. Present sentinels resolve to the month of now.
// Unparsable input returns a *DateParseError; ParseDate never panics.
func ParseDate(raw string, boundary Boundary, now time.Time) (ParsedDate, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = spacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return ParsedDate{}, &DateParseError{Message: "date is empty"}
	}

	if presentSentinels[s] {
		return ParsedDate{Month: MonthOf(now), Format: FormatPresent, Present: true}, nil
	}

	if m := yearFirstPattern.FindStringSubmatch(s); m != nil {
		return buildDate(raw, m[1], m[2], FormatNumericYearFirst)
	}

	if m := monthFirstPattern.FindStringSubmatch(s); m != nil {
		return buildDate(raw, m[2], m[1], FormatNumericMonthFirst)
	}

	if m := monthNamePattern.FindStringSubmatch(s); m != nil {
		month, ok := monthNames[m[1]]
		if !ok {
			return ParsedDate{}, &DateParseError{Input: raw, Message: fmt.Sprintf("unknown month %q", m[1])}
		}
		year, err := parseYear(raw, m[2])
		if err != nil {
			return ParsedDate{}, err
		}
		return ParsedDate{Month: YearMonth{Year: year, Month: month}, Format: FormatMonthName}, nil
	}

	if m := yearOnlyPattern.FindStringSubmatch(s); m != nil {
		year, err := parseYear(raw, m[1])
		if err != nil {
			return ParsedDate{}, err
		}
		month := time.January
		if boundary == BoundaryEnd {
			month = time.December
		}
		return ParsedDate{Month: YearMonth{Year: year, Month: month}, Format: FormatYearOnly}, nil
	}

	return ParsedDate{}, &DateParseError{Input: raw, Message: "unrecognized date format"}
}

// IsPresent reports whether raw is a present sentinel such as "Present" or "Current"
func IsPresent(raw string) bool {
	return presentSentinels[strings.ToLower(strings.TrimSpace(raw))]
}

func buildDate(raw, yearStr, monthStr string, format DateFormat) (ParsedDate, error) {
	year, err := parseYear(raw, yearStr)
	if err != nil {
		return ParsedDate{}, err
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return ParsedDate{}, &DateParseError{Input: raw, Message: fmt.Sprintf("month %s out of range", monthStr)}
	}
	return ParsedDate{Month: YearMonth{Year: year, Month: time.Month(month)}, Format: format}, nil
}

func parseYear(raw, yearStr string) (int, error) {
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < minYear || year > maxYear {
		return 0, &DateParseError{Input: raw, Message: fmt.Sprintf("year %s out of range", yearStr)}
	}
	return year, nil
}
