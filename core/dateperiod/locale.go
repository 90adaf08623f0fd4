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
	"time"

	"golang.org/x/text/language"
)

// Locale selects the first day of the week and the language of labels.
// The zero value behaves as en-US.
type Locale struct {
	tag language.Tag
}

// DefaultLocale is en-US.
var DefaultLocale = Locale{tag: language.AmericanEnglish}

// ParseLocale parses a BCP 47 tag such as "en-US" or "fr-FR". An empty string
// yields DefaultLocale.
func ParseLocale(s string) (Locale, error) {
	if s == "" {
		return DefaultLocale, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return Locale{}, fmt.Errorf("parse locale %q: %w", s, err)
	}
	return Locale{tag: tag}, nil
}

// Tag returns the language tag of the locale.
func (l Locale) Tag() language.Tag {
	if l.tag == language.Und {
		return language.AmericanEnglish
	}
	return l.tag
}

func (l Locale) String() string {
	return l.Tag().String()
}

// Regions whose weeks do not start on Monday.
var (
	sundayRegions = regionSet(
		"AG", "AS", "BD", "BR", "BS", "BT", "BW", "BZ", "CA", "CO", "DM", "DO",
		"ET", "GT", "GU", "HK", "HN", "ID", "IL", "IN", "JM", "JP", "KE", "KH",
		"KR", "LA", "MH", "MM", "MO", "MT", "MX", "MZ", "NI", "NP", "PA", "PE",
		"PH", "PK", "PR", "PT", "PY", "SA", "SG", "SV", "TH", "TT", "TW", "UM",
		"US", "VE", "VI", "WS", "YE", "ZA", "ZW",
	)
	saturdayRegions = regionSet(
		"AE", "AF", "BH", "DJ", "DZ", "EG", "IQ", "IR", "JO", "KW", "LY", "OM",
		"QA", "SD", "SY",
	)
)

func regionSet(codes ...string) map[language.Region]bool {
	set := make(map[language.Region]bool, len(codes))
	for _, c := range codes {
		set[language.MustParseRegion(c)] = true
	}
	return set
}

// FirstDayOfWeek returns the day weeks start on in the locale's region. The
// region is inferred from the language when the tag has none.
func (l Locale) FirstDayOfWeek() time.Weekday {
	region, _ := l.Tag().Region()
	switch {
	case sundayRegions[region]:
		return time.Sunday
	case saturdayRegions[region]:
		return time.Saturday
	}
	return time.Monday
}

// calendarNames holds the month and weekday names of one language.
type calendarNames struct {
	months      [12]string
	shortMonths [12]string
	weekdays    [7]string // indexed by time.Weekday
}

var supportedLanguages = []language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

var names = []calendarNames{
	{
		months:      [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		shortMonths: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		weekdays:    [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	},
	{
		months:      [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
		shortMonths: [12]string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dez"},
		weekdays:    [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
	},
	{
		months:      [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		shortMonths: [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
		weekdays:    [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
	},
	{
		months:      [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		shortMonths: [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
		weekdays:    [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
	},
}

// calendarNames returns the names for the closest supported language,
// falling back to English.
func (l Locale) calendarNames() calendarNames {
	_, index, confidence := languageMatcher.Match(l.Tag())
	if confidence == language.No || index < 0 || index >= len(names) {
		return names[0]
	}
	return names[index]
}
