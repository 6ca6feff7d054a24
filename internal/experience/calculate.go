package experience

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/resume-scorer/internal/types"
)

// Interval is an inclusive range of months
type Interval struct {
	Start YearMonth `json:"start"`
	End   YearMonth `json:"end"`
}

// Months returns the number of months covered, counting both ends
func (iv Interval) Months() int {
	return iv.End.Index() - iv.Start.Index() + 1
}

// Gap is a stretch of months not covered by any counted entry
type Gap struct {
	From   YearMonth `json:"from"`
	To     YearMonth `json:"to"`
	Months int       `json:"months"`
}

// Reasons an entry is excluded from the total
const (
	ReasonMissing    = "missing"
	ReasonUnparsable = "unparsable"
)

// EntryFailure records a date on an entry that could not be used
type EntryFailure struct {
	Entry  int    `json:"entry"`
	Field  string `json:"field"`
	Input  string `json:"input,omitempty"`
	Reason string `json:"reason"`
}

// EntryDates holds the parsed dates of one experience entry
type EntryDates struct {
	Entry    int        `json:"entry"`
	Start    ParsedDate `json:"start"`
	End      ParsedDate `json:"end"`
	Interval Interval   `json:"interval"`
	Counted  bool       `json:"counted"`
}

// Summary is the outcome of the experience calculation.
// Every input entry is either counted or listed in Excluded.
type Summary struct {
	TotalMonths int            `json:"total_months"`
	TotalYears  float64        `json:"total_years"`
	Merged      []Interval     `json:"merged"`
	Gaps        []Gap          `json:"gaps,omitempty"`
	Entries     []EntryDates   `json:"entries"`
	Counted     int            `json:"counted"`
	Excluded    []int          `json:"excluded,omitempty"`
	Failures    []EntryFailure `json:"failures,omitempty"`
	Inverted    []int          `json:"inverted,omitempty"`
	Future      []int          `json:"future,omitempty"`
}

// Calculate computes total professional experience as of now. Overlapping and touching
// intervals are merged before summing so concurrent positions are not double counted,
// and end dates past now are clamped to now. The result does not depend on entry order.
func Calculate(entries []types.ExperienceEntry, now time.Time) *Summary {
	summary := &Summary{Entries: make([]EntryDates, 0, len(entries))}
	current := MonthOf(now)

	intervals := make([]Interval, 0, len(entries))
	for i, entry := range entries {
		dates := EntryDates{Entry: i}
		failed := false

		start, err := parseField(entry.StartDate, BoundaryStart, now)
		if err != nil {
			summary.Failures = append(summary.Failures, failureFor(i, "start_date", entry.StartDate))
			failed = true
		}
		end, err := parseField(entry.EndDate, BoundaryEnd, now)
		if err != nil {
			summary.Failures = append(summary.Failures, failureFor(i, "end_date", entry.EndDate))
			failed = true
		}
		dates.Start, dates.End = start, end

		if failed {
			summary.Excluded = append(summary.Excluded, i)
			summary.Entries = append(summary.Entries, dates)
			continue
		}

		interval := Interval{Start: start.Month, End: end.Month}
		if interval.Start.After(current) {
			summary.Future = append(summary.Future, i)
			summary.Excluded = append(summary.Excluded, i)
			summary.Entries = append(summary.Entries, dates)
			continue
		}
		if interval.End.After(current) {
			summary.Future = append(summary.Future, i)
			interval.End = current
		}
		if interval.Start.After(interval.End) {
			summary.Inverted = append(summary.Inverted, i)
			summary.Excluded = append(summary.Excluded, i)
			summary.Entries = append(summary.Entries, dates)
			continue
		}

		dates.Interval = interval
		dates.Counted = true
		summary.Entries = append(summary.Entries, dates)
		intervals = append(intervals, interval)
	}

	summary.Counted = len(intervals)
	summary.Merged = MergeIntervals(intervals)
	for _, iv := range summary.Merged {
		summary.TotalMonths += iv.Months()
	}
	summary.TotalYears = math.Round(float64(summary.TotalMonths)/12*100) / 100
	summary.Gaps = findGaps(summary.Merged)

	return summary
}

// MergeIntervals sorts intervals by start and merges any that overlap or touch.
// The input slice is not modified.
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start.Index() != sorted[j].Start.Index() {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].End.Before(sorted[j].End)
	})

	merged := []Interval{sorted[0]}
	for _, next := range sorted[1:] {
		last := &merged[len(merged)-1]
		if next.Start.Index() <= last.End.Index()+1 {
			if next.End.After(last.End) {
				last.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}
	return merged
}

// YearsFor returns the merged experience of a single entry, or 0 when it was excluded
func (s *Summary) YearsFor(entry int) float64 {
	for _, d := range s.Entries {
		if d.Entry == entry && d.Counted {
			return float64(d.Interval.Months()) / 12
		}
	}
	return 0
}

// Formats returns the distinct date notations used across all parsed dates,
// ignoring present sentinels, in first-seen order
func (s *Summary) Formats() []DateFormat {
	seen := make(map[DateFormat]bool)
	var formats []DateFormat
	for _, d := range s.Entries {
		for _, pd := range []ParsedDate{d.Start, d.End} {
			if pd.Format == "" || pd.Present || seen[pd.Format] {
				continue
			}
			seen[pd.Format] = true
			formats = append(formats, pd.Format)
		}
	}
	return formats
}

func findGaps(merged []Interval) []Gap {
	var gaps []Gap
	for i := 1; i < len(merged); i++ {
		prevEnd := merged[i-1].End.Index()
		nextStart := merged[i].Start.Index()
		if months := nextStart - prevEnd - 1; months > 0 {
			gaps = append(gaps, Gap{
				From:   fromIndex(prevEnd + 1),
				To:     fromIndex(nextStart - 1),
				Months: months,
			})
		}
	}
	return gaps
}

func parseField(raw string, boundary Boundary, now time.Time) (ParsedDate, error) {
	if strings.TrimSpace(raw) == "" {
		return ParsedDate{}, &DateParseError{Message: "date is empty"}
	}
	return ParseDate(raw, boundary, now)
}

func failureFor(entry int, field, input string) EntryFailure {
	reason := ReasonUnparsable
	if strings.TrimSpace(input) == "" {
		reason = ReasonMissing
	}
	return EntryFailure{Entry: entry, Field: field, Input: input, Reason: reason}
}
