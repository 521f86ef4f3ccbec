// Copyright 2025-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package marketcal answers whether US equity markets are open at a given
// time. Holidays are computed from the NYSE rule set rather than looked up,
// so the package needs no external data.
package marketcal

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Open and close are expressed as hour*100 + minute in New York time.
const (
	marketOpen  = 930
	marketClose = 1600
)

var nyc *time.Location

func init() {
	var err error
	if nyc, err = time.LoadLocation("America/New_York"); err != nil {
		log.Panic().Err(err).Msg("could not load nyc timezone")
	}
}

// IsMarketOpen returns true when t falls within regular trading hours on a
// trading day. Early closes are not modeled; the worst case is evaluating
// alerts against a stale afternoon quote.
func IsMarketOpen(t time.Time) bool {
	t = t.In(nyc)
	if !IsMarketDay(t) {
		return false
	}

	timeOfDay := t.Hour()*100 + t.Minute()
	return timeOfDay >= marketOpen && timeOfDay <= marketClose
}

// IsMarketDay returns true when t is a weekday that is not a market holiday.
func IsMarketDay(t time.Time) bool {
	t = t.In(nyc)
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !IsMarketHoliday(t)
}

// IsMarketHoliday returns true when the date of t matches an NYSE holiday.
func IsMarketHoliday(t time.Time) bool {
	t = t.In(nyc)
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, nyc)
	for _, holiday := range Holidays(t.Year()) {
		if d.Equal(holiday) {
			return true
		}
	}
	return false
}

// Holidays returns the NYSE holiday dates for a year, at midnight New York
// time.
func Holidays(year int) []time.Time {
	return []time.Time{
		observed(time.Date(year, time.January, 1, 0, 0, 0, 0, nyc)),
		nthWeekday(year, time.January, time.Monday, 3),  // MLK day
		nthWeekday(year, time.February, time.Monday, 3), // Washington's birthday
		goodFriday(year),
		lastWeekday(year, time.May, time.Monday), // Memorial day
		observed(time.Date(year, time.June, 19, 0, 0, 0, 0, nyc)),
		observed(time.Date(year, time.July, 4, 0, 0, 0, 0, nyc)),
		nthWeekday(year, time.September, time.Monday, 1), // Labor day
		nthWeekday(year, time.November, time.Thursday, 4),
		observed(time.Date(year, time.December, 25, 0, 0, 0, 0, nyc)),
	}
}

// observed shifts a fixed-date holiday to the nearest weekday. A Saturday
// holiday is observed Friday; a Sunday holiday is observed Monday.
func observed(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, nyc)
	offset := (int(weekday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset+(n-1)*7)
}

func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	d := time.Date(year, month+1, 1, 0, 0, 0, 0, nyc).AddDate(0, 0, -1)
	offset := (int(d.Weekday()) - int(weekday) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// goodFriday is two days before Easter Sunday, computed with the anonymous
// Gregorian algorithm.
func goodFriday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	easter := time.Date(year, time.Month(month), day, 0, 0, 0, 0, nyc)
	return easter.AddDate(0, 0, -2)
}
