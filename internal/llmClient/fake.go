package llmclient

import (
	"context"
	"encoding/json"

	"agenthub/internal/schema"
	"agenthub/internal/types"
)

// FakeClient returns deterministic payloads per domain for offline runs.
type FakeClient struct{}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateJSON(ctx context.Context, prompt string, s *schema.Schema) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewTransportError(f.Name(), err)
	}
	var obj any = []any{}
	if s != nil {
		switch s.Domain {
		case types.DomainWellness:
			obj = []types.WellnessEvent{
				{Title: "Morning Reset", Description: "A short breathing exercise before your first class.", StartTime: "Monday, 8:30 AM", EndTime: "Monday, 8:45 AM", Type: types.EventMindfulness},
				{Title: "Deep Work Block", Description: "Review lecture notes while they are fresh.", StartTime: "Monday, 2:30 PM", EndTime: "Monday, 3:15 PM", Type: types.EventFocus},
				{Title: "Coffee Walk", Description: "Step outside and stretch your legs.", StartTime: "Wednesday, 11:00 AM", EndTime: "Wednesday, 11:20 AM", Type: types.EventBreak},
				{Title: "Campus Run", Description: "A light jog to close out the week.", StartTime: "Friday, 4:00 PM", EndTime: "Friday, 4:40 PM", Type: types.EventExercise},
			}
		case types.DomainIssues:
			obj = []types.IssueSuggestion{
				{Repository: "golang/go", Title: "doc: clarify example in net/url", URL: "https://github.com/golang/go/issues/1", Number: 1, Labels: []string{"good first issue", "documentation"}},
				{Repository: "kubernetes/website", Title: "Fix broken link in tutorial", URL: "https://github.com/kubernetes/website/issues/2", Number: 2, Labels: []string{"help wanted"}},
			}
		case types.DomainAlerts:
			obj = []types.DisasterAlert{
				{Title: "Heat Advisory", Location: "Travis County, TX", Severity: types.SeverityAdvisory, Description: "Limit outdoor activity during the afternoon.", Source: "National Weather Service"},
			}
		}
	}
	b, _ := json.Marshal(obj)
	return json.RawMessage(b), nil
}
