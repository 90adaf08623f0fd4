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

// Package dateperiod buckets datetimes into calendar periods (years down to
// days) and cyclical pseudo periods (quarter number, month name, day of week,
// hour of day), and derives the compare values charts sort those buckets by.
package dateperiod

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPeriod is returned when a period or pseudo period name is not recognised.
var ErrUnknownPeriod = errors.New("unknown date period")

// Granularity is either a Period or a PseudoPeriod.
type Granularity interface {
	String() string
	isGranularity()
}

// Period is a calendar bucket. Buckets are identified by their start.
type Period int

const (
	Years Period = iota
	Quarters
	Months
	Weeks
	Days
)

var periodNames = map[string]Period{
	"years":    Years,
	"quarters": Quarters,
	"months":   Months,
	"weeks":    Weeks,
	"dates":    Days,
	"days":     Days,
}

// ParsePeriod resolves years, quarters, months, weeks, dates or days, ignoring case.
func ParsePeriod(name string) (Period, error) {
	if p, ok := periodNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPeriod, name)
}

func (p Period) String() string {
	switch p {
	case Years:
		return "years"
	case Quarters:
		return "quarters"
	case Months:
		return "months"
	case Weeks:
		return "weeks"
	case Days:
		return "dates"
	}
	return fmt.Sprintf("Period(%d)", int(p))
}

func (Period) isGranularity() {}

// PseudoPeriod is a cyclical part of a date, independent of the year.
type PseudoPeriod int

const (
	QuarterNumber PseudoPeriod = iota
	MonthName
	DayOfWeek
	TimeOfDay
)

var pseudoPeriodNames = map[string]PseudoPeriod{
	"quarternumber": QuarterNumber,
	"monthname":     MonthName,
	"dayofweek":     DayOfWeek,
	"timeofday":     TimeOfDay,
}

// ParsePseudoPeriod resolves quarterNumber, monthName, dayOfWeek or
// timeOfDay, ignoring case.
func ParsePseudoPeriod(name string) (PseudoPeriod, error) {
	if pp, ok := pseudoPeriodNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return pp, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPeriod, name)
}

func (pp PseudoPeriod) String() string {
	switch pp {
	case QuarterNumber:
		return "quarterNumber"
	case MonthName:
		return "monthName"
	case DayOfWeek:
		return "dayOfWeek"
	case TimeOfDay:
		return "timeOfDay"
	}
	return fmt.Sprintf("PseudoPeriod(%d)", int(pp))
}

// Cardinality is the number of distinct indexes: 4, 12, 7 or 24.
func (pp PseudoPeriod) Cardinality() int {
	switch pp {
	case QuarterNumber:
		return 4
	case MonthName:
		return 12
	case DayOfWeek:
		return 7
	case TimeOfDay:
		return 24
	}
	return 0
}

func (PseudoPeriod) isGranularity() {}

// ParseGranularity accepts any name ParsePeriod or ParsePseudoPeriod accepts.
func ParseGranularity(name string) (Granularity, error) {
	if p, err := ParsePeriod(name); err == nil {
		return p, nil
	}
	if pp, err := ParsePseudoPeriod(name); err == nil {
		return pp, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPeriod, name)
}
