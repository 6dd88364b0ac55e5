// Package timeparse extracts date tokens from note text. Notes in this
// corpus carry dates in the M/D/Y form, optionally followed by a 12-hour
// clock time, e.g. "03/15/2026 10:00 AM" or "3/5/26 9:15:30 pm".
package timeparse

import (
	"regexp"
	"strconv"
	"time"
)

// tokenPattern matches M/D/Y with an optional h:mm[:ss] AM/PM time part.
// Seconds are optional; AM/PM is case-insensitive.
var tokenPattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})(?:\s+(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AaPp][Mm]))?`)

// Extract returns the epoch-millisecond value of the first date token in
// unit, interpreted in the local timezone. A 2-digit year means 2000+Y; a
// missing time part means midnight. Returns 0 when the unit contains no date
// token. Only the first token is ever considered.
func Extract(unit string) int64 {
	m := tokenPattern.FindStringSubmatch(unit)
	if m == nil {
		return 0
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}

	hour, minute, sec := 0, 0, 0
	if m[4] != "" {
		hour, _ = strconv.Atoi(m[4])
		minute, _ = strconv.Atoi(m[5])
		if m[6] != "" {
			sec, _ = strconv.Atoi(m[6])
		}
		hour = to24Hour(hour, m[7])
	}

	return time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.Local).UnixMilli()
}

// to24Hour converts a 12-hour clock hour with AM/PM marker to 24-hour form.
// 12 AM is midnight, 12 PM is noon.
func to24Hour(hour int, meridiem string) int {
	pm := meridiem[0] == 'P' || meridiem[0] == 'p'
	hour = hour % 12
	if pm {
		hour += 12
	}
	return hour
}

// SameLocalDay reports whether epochMillis falls on the same local calendar
// date as ref. Used by the today() predicate builtin.
func SameLocalDay(epochMillis int64, ref time.Time) bool {
	ts := time.UnixMilli(epochMillis).In(ref.Location())
	y1, m1, d1 := ts.Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
