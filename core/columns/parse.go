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

package columns

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DatetimeFormatISO is the canonical rendering of datetime cells.
const DatetimeFormatISO = "2006-01-02T15:04:05.000Z"

// dateParseFormats lists formats to try when parsing datetime strings, in order of preference.
// Layouts without a zone are interpreted in the caller's default location.
var dateParseFormats = []string{
	time.RFC3339Nano,            // 2006-01-02T15:04:05.999999999Z07:00
	time.RFC3339,                // 2006-01-02T15:04:05Z07:00
	"2006-01-02T15:04:05Z0700",  // compact offset
	"2006-01-02T15:04:05",       // ISO without timezone, fraction accepted
	"2006-01-02T15:04",          // ISO without seconds
	"2006-01-02 15:04:05",       // Space separator
	"2006-01-02 15:04:05Z07:00", // Space separator with offset
	"2006-01-02",                // Date only (midnight)
	"2006/01/02",                // YYYY/MM/DD
	"2006-01",                   // Year and month
	"2006",                      // Year only
}

// ParseDatetime parses an ISO-ish datetime string. Strings that carry no zone
// marker are read in defaultLoc (UTC when nil) so the result never depends on
// the host's local zone. Empty and null markers yield the zero time.
func ParseDatetime(s string, defaultLoc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)

	if s == "" || s == "null" || s == "NULL" {
		return time.Time{}, nil
	}

	if defaultLoc == nil {
		defaultLoc = time.UTC
	}

	for _, format := range dateParseFormats {
		if t, err := time.ParseInLocation(format, s, defaultLoc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime: %q", s)
}

// FormatISO renders t in UTC with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(DatetimeFormatISO)
}

// ParseLeadingFloat parses the longest numeric prefix of s after leading
// white space, so "12px" yields 12 and "abc" yields NaN. "Infinity" with an
// optional sign is accepted.
func ParseLeadingFloat(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return math.NaN()
	}

	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}
	end := i

	// An exponent only counts when it is followed by at least one digit.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			end = j
		}
	}

	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		// Out of range prefixes still carry a sign and magnitude.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// FormatNumber renders v in its shortest round-trip form, switching to
// exponent notation for very large or very small magnitudes.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		// 1e+07 -> 1e+7
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + exp
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseBool parses the boolean spellings accepted by the importers.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1", "t", "y":
		return true, nil
	case "false", "no", "0", "f", "n", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value: %q", s)
}
