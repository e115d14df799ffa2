// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package timestamp converts between seconds-since-epoch timestamps and
// broken-down Gregorian time. The conversion is done with explicit calendar
// math rather than the time package so that both directions use the same
// tables and round-trip exactly. Parse understands the build-time date and
// time strings the daemon is stamped with at link time.
package timestamp

import (
	"strconv"
	"strings"

	"github.com/sandia-minimega/minilogd/pkg/logerr"
)

const (
	secPerMin  = 60
	secPerHour = 60 * secPerMin
	secPerDay  = 24 * secPerHour
	secPerYear = 365 * secPerDay

	startYear = 1970
)

// Field delimiters accepted by Parse.
const delimiters = ",;.:-_ "

// Cumulative days at the start of each month, normal and leap years.
var monthTable = [2][13]uint16{
	{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365},
	{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366},
}

var monthNames = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Timestamp is a wall-clock time in seconds since 1970-01-01 00:00:00.
type Timestamp uint64

// Time is a broken-down Gregorian time.
type Time struct {
	Year  uint16
	Month uint8 // 1..12
	Day   uint8 // 1..31
	Hour  uint8
	Min   uint8
	Sec   uint8
}

func isLeap(year int64) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func leapIndex(year int64) int {
	if isLeap(year) {
		return 1
	}
	return 0
}

// leapsThruEndOf counts the leap years in [1, year].
func leapsThruEndOf(year int64) int64 {
	return year/4 - year/100 + year/400
}

// Time converts the timestamp to broken-down time, shifted east by hours.
// hours greater than 24 is rejected.
func (ts Timestamp) Time(hours uint8) (Time, error) {
	if hours > 24 {
		return Time{}, logerr.ErrInvalidParameter
	}

	var tm Time

	day := int64(ts / secPerDay)
	rem := int64(ts%secPerDay) + int64(hours)*secPerHour

	for rem >= secPerDay {
		rem -= secPerDay
		day++
	}

	tm.Hour = uint8(rem / secPerHour)
	rem %= secPerHour
	tm.Min = uint8(rem / secPerMin)
	tm.Sec = uint8(rem % secPerMin)

	year := int64(startYear)
	for {
		ydays := int64(365)
		if isLeap(year) {
			ydays = 366
		}
		if day < ydays {
			break
		}
		day -= ydays
		year++
	}
	tm.Year = uint16(year)

	ip := &monthTable[leapIndex(year)]

	month := 11
	for day < int64(ip[month]) {
		month--
	}
	day -= int64(ip[month])

	tm.Month = uint8(month) + 1
	tm.Day = uint8(day) + 1

	return tm, nil
}

// FromTime is the inverse of Time at a zero hour shift.
func FromTime(tm Time) Timestamp {
	year := int64(tm.Year)

	var ts uint64
	ts += uint64(tm.Sec)
	ts += uint64(tm.Min) * secPerMin
	ts += uint64(tm.Hour) * secPerHour
	ts += uint64(int64(monthTable[leapIndex(year)][tm.Month-1])+int64(tm.Day)-1) * secPerDay
	ts += uint64(year-startYear) * secPerYear
	ts += uint64(leapsThruEndOf(year-1)-leapsThruEndOf(startYear-1)) * secPerDay

	return Timestamp(ts)
}

// Parse builds a timestamp from build-time date and time strings, e.g.
// "Jan  2 2026" and "15:04:05". Fields may be separated by any of ",;.:-_ ".
// Month names and numbers are both accepted and two-digit years are taken as
// 2000+yy.
func Parse(date, time string) (Timestamp, error) {
	if date == "" || time == "" {
		return 0, logerr.ErrInvalidParameter
	}

	var tm Time

	fields := splitFields(date)
	if len(fields) < 3 {
		return 0, logerr.ErrInvalidParameter
	}
	tm.Month = parseField(fields[0])
	tm.Day = parseField(fields[1])

	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, logerr.ErrInvalidParameter
	}
	if year < startYear {
		year += 2000
	}
	tm.Year = uint16(year)

	fields = splitFields(time)
	if len(fields) < 3 {
		return 0, logerr.ErrInvalidParameter
	}
	tm.Hour = parseField(fields[0])
	tm.Min = parseField(fields[1])
	tm.Sec = parseField(fields[2])

	if tm.Month < 1 || tm.Month > 12 || tm.Day < 1 || tm.Day > 31 {
		return 0, logerr.ErrInvalidParameter
	}

	return FromTime(tm), nil
}

func splitFields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(delimiters, r)
	})
}

// parseField interprets a month name abbreviation or a decimal number.
func parseField(s string) uint8 {
	for i, name := range monthNames {
		if strings.HasPrefix(s, name) {
			return uint8(i) + 1
		}
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return uint8(v)
}
