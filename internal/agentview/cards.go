package agentview

import (
	"fmt"

	"agenthub/internal/types"
)

// Snapshot is the render-ready form of a view's state.
type Snapshot struct {
	Domain       types.Domain `json:"domain"`
	Phase        Phase        `json:"phase"`
	Connected    bool         `json:"connected"`
	Input        string       `json:"input,omitempty"`
	Placeholders int          `json:"placeholders,omitempty"`
	Heading      string       `json:"heading,omitempty"`
	Error        string       `json:"error,omitempty"`
	Empty        *EmptyNotice `json:"empty,omitempty"`
	Cards        []any        `json:"cards,omitempty"`
}

type EmptyNotice struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Presenter turns records into cards for one domain. Placeholders is the
// number of skeleton cards shown while loading; Empty is nil for domains
// that render nothing on an empty result.
type Presenter[T any] struct {
	Placeholders int
	Heading      func(input string) string
	Empty        func(input string) *EmptyNotice
	Card         func(T) any
}

type EventCard struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	StartTime   string          `json:"startTime"`
	EndTime     string          `json:"endTime"`
	Type        types.EventType `json:"type"`
	Icon        string          `json:"icon"`
	Tone        string          `json:"tone"`
}

type IssueCard struct {
	Repository string   `json:"repository"`
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Number     int      `json:"number"`
	Labels     []string `json:"labels"`
}

type AlertCard struct {
	Title       string         `json:"title"`
	Location    string         `json:"location"`
	Severity    types.Severity `json:"severity"`
	Urgency     int            `json:"urgency"`
	Tone        string         `json:"tone"`
	Description string         `json:"description"`
	Source      string         `json:"source"`
}

func EventCardFor(e types.WellnessEvent) EventCard {
	t := e.Type.Normalize()
	icon, tone := "coffee", "green"
	switch t {
	case types.EventMindfulness:
		icon, tone = "brain", "cyan"
	case types.EventFocus:
		icon, tone = "book", "purple"
	case types.EventExercise:
		icon, tone = "sun", "yellow"
	}
	return EventCard{
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Type:        t,
		Icon:        icon,
		Tone:        tone,
	}
}

func IssueCardFor(i types.IssueSuggestion) IssueCard {
	labels := i.CardLabels()
	if labels == nil {
		labels = []string{}
	}
	return IssueCard{
		Repository: i.Repository,
		Title:      i.Title,
		URL:        i.URL,
		Number:     i.Number,
		Labels:     labels,
	}
}

func AlertCardFor(a types.DisasterAlert) AlertCard {
	sev := a.Severity.Normalize()
	tone := "blue"
	switch sev {
	case types.SeverityWarning:
		tone = "red"
	case types.SeverityWatch:
		tone = "yellow"
	}
	return AlertCard{
		Title:       a.Title,
		Location:    a.Location,
		Severity:    sev,
		Urgency:     sev.Urgency(),
		Tone:        tone,
		Description: a.Description,
		Source:      a.Source,
	}
}

var WellnessPresenter = Presenter[types.WellnessEvent]{
	Placeholders: 4,
	Heading:      func(string) string { return "Suggested Wellness Breaks:" },
	Card:         func(e types.WellnessEvent) any { return EventCardFor(e) },
}

var IssuesPresenter = Presenter[types.IssueSuggestion]{
	Placeholders: 4,
	Heading:      func(string) string { return `Suggested "Good First Issues":` },
	Card:         func(i types.IssueSuggestion) any { return IssueCardFor(i) },
}

var AlertsPresenter = Presenter[types.DisasterAlert]{
	Placeholders: 2,
	Heading:      func(in string) string { return fmt.Sprintf("Active Alerts for %q:", in) },
	Empty: func(in string) *EmptyNotice {
		return &EmptyNotice{
			Title:  "No Active Alerts Found",
			Detail: fmt.Sprintf("There are currently no major active alerts for %q.", in),
		}
	},
	Card: func(a types.DisasterAlert) any { return AlertCardFor(a) },
}

func (v *View[T]) snapshotLocked() Snapshot {
	snap := Snapshot{
		Domain:    v.q.Domain(),
		Phase:     v.state.Phase(),
		Connected: v.gate == nil || v.gate.Connected(),
	}
	switch s := v.state.(type) {
	case Loading:
		snap.Input = s.Input
		snap.Placeholders = v.p.Placeholders
	case Failed:
		snap.Input = s.Input
		if s.Err != nil {
			snap.Error = s.Err.Error()
		}
	case Loaded[T]:
		snap.Input = s.Input
		if len(s.Results) == 0 {
			if v.p.Empty != nil {
				snap.Empty = v.p.Empty(s.Input)
			}
			return snap
		}
		if v.p.Heading != nil {
			snap.Heading = v.p.Heading(s.Input)
		}
		snap.Cards = make([]any, 0, len(s.Results))
		for _, r := range s.Results {
			if v.p.Card != nil {
				snap.Cards = append(snap.Cards, v.p.Card(r))
			} else {
				snap.Cards = append(snap.Cards, r)
			}
		}
	}
	return snap
}
