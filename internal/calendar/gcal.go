package calendar

import (
	"net/url"
	"time"
)

const GoogleCalendarRender = "https://calendar.google.com/calendar/render"

// GoogleCalendarURL builds an event-creation deep link. Times are local wall
// clock in compact form, without timezone conversion.
func GoogleCalendarURL(ev Event, start, end time.Time) string {
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", ev.Title)
	q.Set("dates", start.Format(CompactLayout)+"/"+end.Format(CompactLayout))
	q.Set("details", ev.Description)
	return GoogleCalendarRender + "?" + q.Encode()
}
