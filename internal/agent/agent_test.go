package agent

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"agenthub/internal/llm"
	llmclient "agenthub/internal/llmClient"
	"agenthub/internal/schema"
	"agenthub/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingClient is a stub generation service that records every call.
type recordingClient struct {
	mu      sync.Mutex
	prompts []string
	raw     string
	err     error
}

func (r *recordingClient) Name() string { return "recording" }
func (r *recordingClient) Close() error { return nil }
func (r *recordingClient) GenerateJSON(_ context.Context, prompt string, _ *schema.Schema) (json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = append(r.prompts, prompt)
	if r.err != nil {
		return nil, r.err
	}
	return json.RawMessage(r.raw), nil
}

func (r *recordingClient) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.prompts)
}

func generator(c *recordingClient) *llm.Generator { return llm.NewGenerator(c, nil) }

var fourBreaks = []types.WellnessEvent{
	{Title: "Breathe", Description: "Box breathing.", StartTime: "Monday, 8:30 AM", EndTime: "Monday, 8:45 AM", Type: types.EventMindfulness},
	{Title: "Review", Description: "Skim notes.", StartTime: "Monday, 2:15 PM", EndTime: "Monday, 3:00 PM", Type: types.EventFocus},
	{Title: "Snack", Description: "Grab fruit.", StartTime: "Wednesday, 11:00 AM", EndTime: "Wednesday, 11:20 AM", Type: types.EventBreak},
	{Title: "Walk", Description: "Loop the quad.", StartTime: "Friday, 2:30 PM", EndTime: "Friday, 3:00 PM", Type: types.EventExercise},
}

func TestFindWellnessBreaksReturnsRecordsUnmodified(t *testing.T) {
	raw, err := json.Marshal(fourBreaks)
	require.NoError(t, err)
	stub := &recordingClient{raw: string(raw)}

	got, err := FindWellnessBreaks(context.Background(), generator(stub), "Classes MWF 9am-2pm")
	require.NoError(t, err)
	assert.Equal(t, fourBreaks, got)
	require.Equal(t, 1, stub.calls())
	assert.Contains(t, stub.prompts[0], `"Classes MWF 9am-2pm"`)
}

func TestFindWellnessBreaksNotJSON(t *testing.T) {
	stub := &recordingClient{raw: "not json"}
	_, err := FindWellnessBreaks(context.Background(), generator(stub), "Classes MWF 9am-2pm")
	require.Error(t, err)

	var re *RetrievalError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, WellnessSpec.Failure, err.Error())
	assert.True(t, llmclient.IsMalformed(err))
}

func TestGetDisasterAlertsRejectsCaseTwinKeys(t *testing.T) {
	stub := &recordingClient{raw: `[{"title":"a","Title":"b","location":"Travis County, TX","severity":"Watch","description":"d","source":"NWS"}]`}
	_, err := GetDisasterAlerts(context.Background(), generator(stub), "Austin, TX")
	require.Error(t, err)

	var v *schema.Violation
	require.True(t, errors.As(err, &v))
	assert.Equal(t, 0, v.Index)
	assert.True(t, llmclient.IsMalformed(err))
}

func TestBlankInputNeverCallsGenerator(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		stub := &recordingClient{raw: "[]"}
		gen := generator(stub)

		_, errW := FindWellnessBreaks(context.Background(), gen, input)
		_, errI := FindIssues(context.Background(), gen, input)
		_, errA := GetDisasterAlerts(context.Background(), gen, input)

		for _, err := range []error{errW, errI, errA} {
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "input %q", input)
		}
		assert.Equal(t, 0, stub.calls())
	}
}

func TestFindIssuesEmptyInputMessage(t *testing.T) {
	stub := &recordingClient{}
	_, err := FindIssues(context.Background(), generator(stub), "")
	require.EqualError(t, err, "Please enter your skills or interests.")
	assert.Equal(t, 0, stub.calls())
}

func TestGetDisasterAlertsEmptyArrayIsNotAnError(t *testing.T) {
	stub := &recordingClient{raw: "[]"}
	got, err := GetDisasterAlerts(context.Background(), generator(stub), "Nowhere, ZZ")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetDisasterAlertsKeepsUnknownSeverity(t *testing.T) {
	stub := &recordingClient{raw: `[{"title":"Dust","location":"Mesa, AZ","severity":"Extreme","description":"Stay in.","source":"NWS"}]`}
	got, err := GetDisasterAlerts(context.Background(), generator(stub), "Mesa, AZ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, types.Severity("Extreme"), got[0].Severity)
	assert.Equal(t, types.SeverityAdvisory, got[0].Severity.Normalize())
}

func TestFindIssuesSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"missing field":    `[{"repository":"a/b","title":"t","url":"https://github.com/a/b/issues/1","labels":[]}]`,
		"number as string": `[{"repository":"a/b","title":"t","url":"https://github.com/a/b/issues/1","number":"1","labels":[]}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			stub := &recordingClient{raw: raw}
			got, err := FindIssues(context.Background(), generator(stub), "Go")
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, llmclient.IsMalformed(err))
			assert.Equal(t, IssuesSpec.Failure, err.Error())
		})
	}
}

func TestTransportFailureDoesNotLeakDetails(t *testing.T) {
	stub := &recordingClient{err: errors.New("POST https://generativelanguage.googleapis.com: 503 UNAVAILABLE")}
	_, err := GetDisasterAlerts(context.Background(), generator(stub), "Miami, Florida")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "googleapis")
	assert.Equal(t, AlertsSpec.Failure, err.Error())
	assert.True(t, llmclient.IsTransport(err))
}

func TestResultsNeverExceedFour(t *testing.T) {
	items := append(append([]types.WellnessEvent{}, fourBreaks...), fourBreaks[0])
	raw, _ := json.Marshal(items)
	stub := &recordingClient{raw: string(raw)}
	_, err := FindWellnessBreaks(context.Background(), generator(stub), "busy week")
	require.Error(t, err)
	assert.True(t, llmclient.IsMalformed(err))
}

func TestAgentsTitles(t *testing.T) {
	a := NewAgents(generator(&recordingClient{}), nil)
	assert.Equal(t, "Mental Health Scheduler", a.Title(types.DomainWellness))
	assert.Equal(t, "Civic Engagement Assistant", a.Title(types.DomainIssues))
	assert.Equal(t, "Disaster Alert Bot", a.Title(types.DomainAlerts))
	assert.Equal(t, "", a.Title("nope"))
}
