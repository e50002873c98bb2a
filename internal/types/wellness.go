package types

type EventType string

const (
	EventMindfulness EventType = "mindfulness"
	EventFocus       EventType = "focus"
	EventBreak       EventType = "break"
	EventExercise    EventType = "exercise"
)

// Normalize maps unknown event types to EventBreak.
func (t EventType) Normalize() EventType {
	switch t {
	case EventMindfulness, EventFocus, EventBreak, EventExercise:
		return t
	}
	return EventBreak
}

type WellnessEvent struct {
	Title       string    `json:"title" desc:"A short, encouraging title for the event."`
	Description string    `json:"description" desc:"A brief, one-sentence description of the activity."`
	StartTime   string    `json:"startTime" desc:"The suggested start time in 'Day, H:MM AM/PM' format."`
	EndTime     string    `json:"endTime" desc:"The suggested end time in 'Day, H:MM AM/PM' format."`
	Type        EventType `json:"type" enum:"mindfulness,focus,break,exercise"`
}
