package calendar

import (
	"time"

	"agenthub/internal/types"

	"github.com/google/uuid"
)

const DefaultProdID = "-//agenthub//Wellness Scheduler//EN"

// Event is the subset of a record the exports need.
type Event struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

func FromWellness(e types.WellnessEvent) Event {
	return Event{
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
	}
}

// Export holds both encodings of one event.
type Export struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Link     string    `json:"link"`
	ICS      string    `json:"-"`
	Filename string    `json:"filename"`
}

// Exporter renders exports. Now and NewUID are the only invocation-dependent
// inputs; fixing both makes Export byte-for-byte repeatable.
type Exporter struct {
	Now    func() time.Time
	NewUID func() string
	ProdID string
}

func NewExporter() *Exporter {
	return &Exporter{
		Now:    time.Now,
		NewUID: func() string { return uuid.NewString() + "@agenthub" },
		ProdID: DefaultProdID,
	}
}

// Export has no side effects; writing the file or opening the link is up to
// the caller.
func (x *Exporter) Export(ev Event) Export {
	now := x.now()
	start, end := Resolve(ev, now)
	return Export{
		Start:    start,
		End:      end,
		Link:     GoogleCalendarURL(ev, start, end),
		ICS:      ICS(ev, start, end, now, x.uid(), x.prodID()),
		Filename: Filename(ev.Title),
	}
}

func (x *Exporter) now() time.Time {
	if x == nil || x.Now == nil {
		return time.Now()
	}
	return x.Now()
}

func (x *Exporter) uid() string {
	if x == nil || x.NewUID == nil {
		return uuid.NewString() + "@agenthub"
	}
	return x.NewUID()
}

func (x *Exporter) prodID() string {
	if x == nil || x.ProdID == "" {
		return DefaultProdID
	}
	return x.ProdID
}
