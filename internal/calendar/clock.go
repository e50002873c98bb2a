// Package calendar turns display-formatted wellness events into calendar
// exports: a web calendar deep link and an iCalendar file.
package calendar

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CompactLayout is the YYYYMMDDTHHMMSS form used by both exports.
const CompactLayout = "20060102T150405"

var meridiemRe = regexp.MustCompile(`(?i)\d\s*([ap])\.?\s*m\b\.?`)

// ParseClock extracts a wall-clock hour and minute from strings such as
// "Wednesday, 3:00 PM", "3 PM" or "15:30". Day names are ignored. Anything
// unparseable or out of range becomes 0; it never fails.
func ParseClock(s string) (hour, minute int) {
	meridiem := ""
	if m := meridiemRe.FindStringSubmatch(s); m != nil {
		meridiem = strings.ToLower(m[1])
	}

	clean := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ':' {
			return r
		}
		return -1
	}, s)
	parts := strings.Split(clean, ":")
	hour = atoiOrZero(parts[0])
	if len(parts) > 1 {
		minute = atoiOrZero(parts[1])
	}
	if hour < 0 || hour > 23 {
		hour = 0
	}
	if minute < 0 || minute > 59 {
		minute = 0
	}

	if hour >= 1 && hour <= 12 {
		switch meridiem {
		case "p":
			if hour < 12 {
				hour += 12
			}
		case "a":
			if hour == 12 {
				hour = 0
			}
		}
	}
	return hour, minute
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Resolve anchors both times of ev to the calendar date of now. An end that
// is not strictly after the start moves to the following day.
func Resolve(ev Event, now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	loc := now.Location()

	sh, sm := ParseClock(ev.StartTime)
	eh, em := ParseClock(ev.EndTime)
	start = time.Date(y, m, d, sh, sm, 0, 0, loc)
	end = time.Date(y, m, d, eh, em, 0, 0, loc)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}
