package agentview

import (
	"testing"

	"agenthub/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestEventCardIcons(t *testing.T) {
	cases := []struct {
		in   types.EventType
		want types.EventType
		icon string
		tone string
	}{
		{types.EventMindfulness, types.EventMindfulness, "brain", "cyan"},
		{types.EventFocus, types.EventFocus, "book", "purple"},
		{types.EventExercise, types.EventExercise, "sun", "yellow"},
		{types.EventBreak, types.EventBreak, "coffee", "green"},
		{"nap", types.EventBreak, "coffee", "green"},
	}
	for _, tc := range cases {
		card := EventCardFor(types.WellnessEvent{Title: "x", Type: tc.in})
		assert.Equal(t, tc.want, card.Type)
		assert.Equal(t, tc.icon, card.Icon)
		assert.Equal(t, tc.tone, card.Tone)
	}
}

func TestIssueCardShowsFirstThreeLabels(t *testing.T) {
	issue := types.IssueSuggestion{
		Repository: "owner/repo",
		Title:      "Fix docs",
		URL:        "https://github.com/owner/repo/issues/7",
		Number:     7,
		Labels:     []string{"good first issue", "docs", "help wanted", "a11y"},
	}
	card := IssueCardFor(issue)
	assert.Equal(t, []string{"good first issue", "docs", "help wanted"}, card.Labels)
	assert.Len(t, issue.Labels, 4)

	assert.Equal(t, []string{}, IssueCardFor(types.IssueSuggestion{}).Labels)
}

func TestAlertCardTones(t *testing.T) {
	assert.Equal(t, "red", AlertCardFor(types.DisasterAlert{Severity: types.SeverityWarning}).Tone)
	assert.Equal(t, "yellow", AlertCardFor(types.DisasterAlert{Severity: types.SeverityWatch}).Tone)
	assert.Equal(t, "blue", AlertCardFor(types.DisasterAlert{Severity: types.SeverityAdvisory}).Tone)
	assert.Equal(t, "blue", AlertCardFor(types.DisasterAlert{Severity: ""}).Tone)
}
