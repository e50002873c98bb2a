// Package prompt renders the instruction sent to the generation model for
// one (domain, user input) pair.
package prompt

import (
	"fmt"

	"agenthub/internal/schema"
	"agenthub/internal/types"
)

const jsonArrayFormat = "Return a JSON array of objects. No markdown, no prose outside the JSON."

// Build renders the prompt for domain with input embedded verbatim.
// Unknown domains get a generic instruction built from the same sections.
func Build(d types.Domain, input string) string {
	return SpecFor(d, input).Render()
}

// SpecFor returns the section spec Build renders.
func SpecFor(d types.Domain, input string) Spec {
	fields := schema.For(d)
	switch d {
	case types.DomainWellness:
		return Spec{
			Purpose: fmt.Sprintf(
				"You are an AI assistant for busy college students. Based on the user's schedule: \"%s\", "+
					"find %d distinct, realistically-timed slots for mental health or focus breaks.",
				input, schema.DefaultMaxItems),
			OutputFields: fields,
			Rules: []string{
				"The breaks should be 15-45 minutes.",
				"Create a mix of 'mindfulness', 'focus', 'break', and 'exercise' events.",
				"Assume the week starts on Monday.",
				"Use the 'Day, H:MM AM/PM' format for startTime and endTime.",
			},
			OutputFormat: fmt.Sprintf("Return a JSON array of exactly %d objects. No markdown, no prose outside the JSON.", schema.DefaultMaxItems),
		}
	case types.DomainIssues:
		return Spec{
			Purpose: fmt.Sprintf(
				"You are an AI assistant helping new developers contribute to open source. Based on the user's interests: \"%s\", "+
					"find %d beginner-friendly GitHub issues.",
				input, schema.DefaultMaxItems),
			OutputFields: fields,
			Rules: []string{
				"Prioritize issues with labels like 'good first issue', 'help wanted', or 'documentation'.",
				"Provide the full repository name and URL.",
			},
			OutputFormat: fmt.Sprintf("Return a JSON array of at most %d objects. No markdown, no prose outside the JSON.", schema.DefaultMaxItems),
		}
	case types.DomainAlerts:
		return Spec{
			Purpose: fmt.Sprintf(
				"You are an AI disaster alert system. Find up to %d active, severe weather or disaster alerts for the following location: \"%s\".",
				schema.DefaultMaxItems, input),
			OutputFields: fields,
			Rules: []string{
				"If there are no active alerts, return an empty array.",
				"Focus on official, recent alerts.",
			},
			OutputFormat: fmt.Sprintf("Return a JSON array of at most %d objects. No markdown, no prose outside the JSON.", schema.DefaultMaxItems),
		}
	}
	return Spec{
		Purpose:      fmt.Sprintf("You are an AI assistant. Answer the user's request: \"%s\".", input),
		OutputFields: fields,
		OutputFormat: jsonArrayFormat,
	}
}
