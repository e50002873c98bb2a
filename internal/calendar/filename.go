package calendar

import "strings"

const fallbackFilename = "event"

// Filename returns a download-safe "<slug>.ics" name for title.
func Filename(title string) string {
	slug := slugifyASCII(title)
	if slug == "" {
		slug = fallbackFilename
	}
	return slug + ".ics"
}

func slugifyASCII(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")
	if len(out) > 64 {
		out = strings.TrimRight(out[:64], "-")
	}
	return out
}
