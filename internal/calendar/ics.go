package calendar

import (
	"strings"
	"time"
	"unicode/utf8"
)

const maxLineOctets = 75

// ICS renders a single-event VCALENDAR with CRLF line endings. DTSTART and
// DTEND are floating local times; DTSTAMP is UTC.
func ICS(ev Event, start, end, stamp time.Time, uid, prodID string) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"DTSTART:" + start.Format(CompactLayout),
		"DTEND:" + end.Format(CompactLayout),
		"DTSTAMP:" + stamp.UTC().Format(CompactLayout) + "Z",
		"UID:" + uid,
		"SUMMARY:" + escapeText(ev.Title),
		"DESCRIPTION:" + escapeText(ev.Description),
		"STATUS:CONFIRMED",
		"TRANSP:OPAQUE",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(fold(l))
		b.WriteString("\r\n")
	}
	return b.String()
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

func escapeText(s string) string {
	return textEscaper.Replace(strings.ToValidUTF8(s, "\uFFFD"))
}

// fold splits content lines longer than 75 octets without breaking UTF-8
// sequences; continuation lines start with a single space.
func fold(line string) string {
	if len(line) <= maxLineOctets {
		return line
	}
	var b strings.Builder
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		if cut == 0 {
			cut = limit
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		limit = maxLineOctets - 1
	}
	b.WriteString(line)
	return b.String()
}
