package types

type Severity string

const (
	SeverityAdvisory Severity = "Advisory"
	SeverityWatch    Severity = "Watch"
	SeverityWarning  Severity = "Warning"
)

// Normalize maps unrecognized severities to SeverityAdvisory, the lowest
// visual urgency.
func (s Severity) Normalize() Severity {
	switch s {
	case SeverityAdvisory, SeverityWatch, SeverityWarning:
		return s
	}
	return SeverityAdvisory
}

// Urgency ranks a severity for display: 0 advisory, 1 watch, 2 warning.
func (s Severity) Urgency() int {
	switch s.Normalize() {
	case SeverityWarning:
		return 2
	case SeverityWatch:
		return 1
	}
	return 0
}

type DisasterAlert struct {
	Title       string   `json:"title" desc:"The title of the alert, e.g., 'Tornado Warning'."`
	Location    string   `json:"location" desc:"The specific area or county affected."`
	Severity    Severity `json:"severity" desc:"The severity level of the alert." enum:"Advisory,Watch,Warning"`
	Description string   `json:"description" desc:"A brief summary of the alert and recommended actions."`
	Source      string   `json:"source" desc:"The official source of the alert, e.g., 'National Weather Service'."`
}
