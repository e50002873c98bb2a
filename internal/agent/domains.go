package agent

import (
	"context"

	"agenthub/internal/types"

	"go.uber.org/zap"
)

var (
	WellnessSpec = Spec[types.WellnessEvent]{
		Domain:       types.DomainWellness,
		Title:        "Mental Health Scheduler",
		MissingInput: "Please describe your schedule and goals.",
		Failure:      "Failed to generate schedule. The AI model may be overloaded. Please try again later.",
	}
	IssuesSpec = Spec[types.IssueSuggestion]{
		Domain:       types.DomainIssues,
		Title:        "Civic Engagement Assistant",
		MissingInput: "Please enter your skills or interests.",
		Failure:      "Failed to find issues. The AI model may be overloaded. Please try again later.",
	}
	AlertsSpec = Spec[types.DisasterAlert]{
		Domain:       types.DomainAlerts,
		Title:        "Disaster Alert Bot",
		MissingInput: "Please enter a location to check for alerts.",
		Failure:      "Failed to retrieve alerts. The AI model may be overloaded. Please try again later.",
	}
)

// Agents bundles the three domain agents over one generator.
type Agents struct {
	Wellness *Agent[types.WellnessEvent]
	Issues   *Agent[types.IssueSuggestion]
	Alerts   *Agent[types.DisasterAlert]
}

func NewAgents(gen Generator, logger *zap.Logger) *Agents {
	return &Agents{
		Wellness: New(WellnessSpec, gen, logger),
		Issues:   New(IssuesSpec, gen, logger),
		Alerts:   New(AlertsSpec, gen, logger),
	}
}

// Title returns the display title for d.
func (a *Agents) Title(d types.Domain) string {
	switch d {
	case types.DomainWellness:
		return a.Wellness.Title()
	case types.DomainIssues:
		return a.Issues.Title()
	case types.DomainAlerts:
		return a.Alerts.Title()
	}
	return ""
}

// FindWellnessBreaks suggests up to four breaks for a weekly schedule.
func FindWellnessBreaks(ctx context.Context, gen Generator, schedule string) ([]types.WellnessEvent, error) {
	return New(WellnessSpec, gen, nil).Query(ctx, schedule)
}

// FindIssues suggests up to four beginner-friendly issues for the interests.
func FindIssues(ctx context.Context, gen Generator, interests string) ([]types.IssueSuggestion, error) {
	return New(IssuesSpec, gen, nil).Query(ctx, interests)
}

// GetDisasterAlerts lists up to four active alerts for a location.
func GetDisasterAlerts(ctx context.Context, gen Generator, location string) ([]types.DisasterAlert, error) {
	return New(AlertsSpec, gen, nil).Query(ctx, location)
}
