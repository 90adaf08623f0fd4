/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package dateperiod

import (
	"fmt"
	"math"
	"time"

	"github.com/google/chartdata/core/columns"
	"github.com/google/chartdata/core/compare"
)

// StartOfPeriod returns the first instant of the period containing t, in UTC.
// Weeks start on the locale's first day of the week.
func StartOfPeriod(t time.Time, p Period, loc Locale) time.Time {
	t = t.UTC()
	year, month, day := t.Date()
	switch p {
	case Years:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	case Quarters:
		first := time.Month((int(month)-1)/3*3 + 1)
		return time.Date(year, first, 1, 0, 0, 0, 0, time.UTC)
	case Months:
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	case Weeks:
		back := (int(t.Weekday()) - int(loc.FirstDayOfWeek()) + 7) % 7
		return time.Date(year, month, day-back, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FormatPeriod labels the period containing t: "2024", "Q1 2024",
// "Jan 2024", "W05 2024" or "2024-01-31". Weeks are numbered within the year
// they start in; W01 is the first week starting in January.
func FormatPeriod(t time.Time, p Period, loc Locale) string {
	start := StartOfPeriod(t, p, loc)
	switch p {
	case Years:
		return fmt.Sprintf("%d", start.Year())
	case Quarters:
		return fmt.Sprintf("Q%d %d", (int(start.Month())-1)/3+1, start.Year())
	case Months:
		return fmt.Sprintf("%s %d", loc.calendarNames().shortMonths[start.Month()-1], start.Year())
	case Weeks:
		return fmt.Sprintf("W%02d %d", (start.YearDay()-1)/7+1, start.Year())
	}
	return start.Format("2006-01-02")
}

// PeriodCompareValue parses a datetime display value and returns the epoch
// milliseconds of the start of its period. Empty input is undefined and
// unparseable input is NaN.
func PeriodCompareValue(displayValue string, p Period, loc Locale) compare.Value {
	t, v, ok := parse(displayValue)
	if !ok {
		return v
	}
	return compare.Value{Kind: compare.KindNumber, Number: float64(StartOfPeriod(t, p, loc).UnixMilli())}
}

// PseudoPeriodIndex returns the 0-based position of t within the cycle of pp.
// Days of the week count from the locale's first day of the week.
func PseudoPeriodIndex(t time.Time, pp PseudoPeriod, loc Locale) int {
	t = t.UTC()
	switch pp {
	case QuarterNumber:
		return (int(t.Month()) - 1) / 3
	case MonthName:
		return int(t.Month()) - 1
	case DayOfWeek:
		return (int(t.Weekday()) - int(loc.FirstDayOfWeek()) + 7) % 7
	case TimeOfDay:
		return t.Hour()
	}
	return 0
}

// PseudoPeriodLabel names the index returned by PseudoPeriodIndex, in the
// locale's language when supported. Indexes outside the cycle yield "".
func PseudoPeriodLabel(index int, pp PseudoPeriod, loc Locale) string {
	if index < 0 || index >= pp.Cardinality() {
		return ""
	}
	switch pp {
	case QuarterNumber:
		return fmt.Sprintf("Q%d", index+1)
	case MonthName:
		return loc.calendarNames().months[index]
	case DayOfWeek:
		day := (int(loc.FirstDayOfWeek()) + index) % 7
		return loc.calendarNames().weekdays[day]
	case TimeOfDay:
		return fmt.Sprintf("%02d:00", index)
	}
	return ""
}

// PseudoPeriodCompareValue parses a datetime display value and returns its
// pseudo period index as a number.
func PseudoPeriodCompareValue(displayValue string, pp PseudoPeriod, loc Locale) compare.Value {
	t, v, ok := parse(displayValue)
	if !ok {
		return v
	}
	return compare.NewIndexValue(PseudoPeriodIndex(t, pp, loc))
}

// parse returns the time of a datetime display value, or the sentinel
// compare value when there is none.
func parse(displayValue string) (time.Time, compare.Value, bool) {
	if displayValue == "" {
		return time.Time{}, compare.Value{Kind: compare.KindNumber, Number: math.NaN(), Undefined: true}, false
	}
	t, err := columns.ParseDatetime(displayValue, time.UTC)
	if err != nil || t.IsZero() {
		return time.Time{}, compare.Value{Kind: compare.KindNumber, Number: math.NaN(), IsNaN: true}, false
	}
	return t, compare.Value{}, true
}
