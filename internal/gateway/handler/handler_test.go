package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agenthub/internal/agent"
	"agenthub/internal/agentview"
	"agenthub/internal/calendar"
	"agenthub/internal/gateway/session"
	"agenthub/internal/llm"
	llmclient "agenthub/internal/llmClient"
	"agenthub/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type rawClient struct{ raw string }

func (c rawClient) Name() string { return "raw" }
func (c rawClient) Close() error { return nil }
func (c rawClient) GenerateJSON(context.Context, string, *schema.Schema) (json.RawMessage, error) {
	return json.RawMessage(c.raw), nil
}

var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestMux(t *testing.T, client llmclient.LLMClient) http.Handler {
	t.Helper()
	gen := llm.NewGenerator(client, nil)
	agents := agent.NewAgents(gen, zap.NewNop())
	store := session.NewStore(agents, time.Minute, 16, zap.NewNop())
	agentHandler := NewAgentHandler(store, agents, zap.NewNop())
	socket := NewAgentSocket(store, zap.NewNop())
	calendarHandler := NewCalendarHandler(&calendar.Exporter{
		Now:    func() time.Time { return testNow },
		NewUID: func() string { return "uid-1" },
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/agents", agentHandler.HandleList)
	mux.HandleFunc("GET /api/agents/{agent}/state", agentHandler.HandleState)
	mux.HandleFunc("POST /api/agents/{agent}/connect", agentHandler.HandleConnect)
	mux.HandleFunc("DELETE /api/agents/{agent}/connect", agentHandler.HandleDisconnect)
	mux.HandleFunc("POST /api/agents/{agent}/query", agentHandler.HandleQuery)
	mux.HandleFunc("POST /api/agents/{agent}/reset", agentHandler.HandleReset)
	mux.HandleFunc("GET /api/agents/{agent}/ws", socket.HandleAgentWS)
	mux.HandleFunc("POST /api/calendar/export", calendarHandler.HandleExport)
	mux.HandleFunc("GET /healthz", HandleHealth)
	return mux
}

type decodedResponse struct {
	SessionID string             `json:"session_id"`
	Title     string             `json:"title"`
	State     agentview.Snapshot `json:"state"`
}

func do(t *testing.T, h http.Handler, method, path, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) decodedResponse {
	t.Helper()
	var out decodedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestListAgents(t *testing.T) {
	h := newTestMux(t, llmclient.NewFakeClient())
	rec := do(t, h, http.MethodGet, "/api/agents", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Agents []agentInfo `json:"agents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Agents, 3)
	assert.Equal(t, "Mental Health Scheduler", out.Agents[0].Title)
	assert.Equal(t, "Google Calendar", out.Agents[0].ConnectLabel)
	assert.Equal(t, "GitHub", out.Agents[1].ConnectLabel)
	assert.Empty(t, out.Agents[2].ConnectProvider)
}

func TestQueryAlertsCreatesSession(t *testing.T) {
	h := newTestMux(t, llmclient.NewFakeClient())
	rec := do(t, h, http.MethodPost, "/api/agents/alerts/query", "", `{"input":"Austin, TX"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode(t, rec)
	assert.NotEmpty(t, out.SessionID)
	assert.Equal(t, out.SessionID, rec.Header().Get(SessionHeader))
	assert.Equal(t, "Disaster Alert Bot", out.Title)
	assert.Equal(t, agentview.PhaseLoaded, out.State.Phase)
	assert.Len(t, out.State.Cards, 1)

	rec = do(t, h, http.MethodGet, "/api/agents/disaster/state", out.SessionID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, agentview.PhaseLoaded, decode(t, rec).State.Phase)
}

func TestQueryGatedAgentNeedsConnect(t *testing.T) {
	h := newTestMux(t, llmclient.NewFakeClient())

	rec := do(t, h, http.MethodPost, "/api/agents/issues/query", "s1", `{"input":"Go"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_connected")

	rec = do(t, h, http.MethodPost, "/api/agents/issues/connect", "s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode(t, rec).State.Connected)

	rec = do(t, h, http.MethodPost, "/api/agents/issues/query", "s1", `{"input":"Go"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec).State.Cards, 2)

	rec = do(t, h, http.MethodDelete, "/api/agents/issues/connect", "s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.False(t, out.State.Connected)
	assert.Equal(t, agentview.PhaseIdle, out.State.Phase)
}

func TestConnectUngatedAgent(t *testing.T) {
	h := newTestMux(t, llmclient.NewFakeClient())
	rec := do(t, h, http.MethodPost, "/api/agents/alerts/connect", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryBlankInput(t *testing.T) {
	h := newTestMux(t, llmclient.NewFakeClient())
	rec := do(t, h, http.MethodPost, "/api/agents/alerts/query", "", `{"input":"  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	out := decode(t, rec)
	assert.Equal(t, agentview.PhaseFailed, out.State.Phase)
	assert.Equal(t, agent.AlertsSpec.MissingInput, out.State.Error)
}

func TestQueryMalformedModelOutput(t *testing.T) {
	h := newTestMux(t, rawClient{raw: "not json"})
	rec := do(t, h, http.MethodPost, "/api/agents/alerts/query", "", `{"input":"Austin"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	out := decode(t, rec)
	assert.Equal(t, agentview.PhaseFailed, out.State.Phase)
	assert.Equal(t, agent.AlertsSpec.Failure, out.State.Error)
}

func TestQueryEmptyAlerts(t *testing.T) {
	h := newTestMux(t, rawClient{raw: "[]"})
	rec := do(t, h, http.MethodPost, "/api/agents/alerts/query", "", `{"input":"Nowhere"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode(t, rec)
	require.NotNil(t, out.State.Empty)
	assert.Equal(t, "No Active Alerts Found", out.State.Empty.Title)
}

func TestQueryBadRequests(t *testing.T) {
	h := newTestMux(t, llmclient.NewFakeClient())
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/agents/weather/query", "", `{"input":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/agents/alerts/query", "", `{`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/api/agents/alerts/query", "", "").Code)
}

func TestMalformedBodiesReturnJSONErrors(t *testing.T) {
	h := newTestMux(t, llmclient.NewFakeClient())
	for _, path := range []string{
		"/api/agents/alerts/query",
		"/api/calendar/export",
		"/api/calendar/export?format=pdf",
	} {
		body := `{`
		if strings.Contains(path, "format=") {
			body = walkEvent
		}
		rec := do(t, h, http.MethodPost, path, "", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json", path)

		var out errorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), path)
		assert.Equal(t, "invalid_argument", out.Code, path)
		assert.NotEmpty(t, out.Message, path)
	}
}

func TestReset(t *testing.T) {
	h := newTestMux(t, llmclient.NewFakeClient())
	rec := do(t, h, http.MethodPost, "/api/agents/alerts/query", "s", `{"input":"Austin"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/agents/alerts/reset", "s", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, agentview.PhaseIdle, decode(t, rec).State.Phase)
}

const walkEvent = `{"title":"Late Walk","description":"Around the block","startTime":"Friday, 11:00 PM","endTime":"Saturday, 12:30 AM","type":"exercise"}`

func TestCalendarExportICS(t *testing.T) {
	h := newTestMux(t, llmclient.NewFakeClient())
	rec := do(t, h, http.MethodPost, "/api/calendar/export", "", walkEvent)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="late-walk.ics"`, rec.Header().Get("Content-Disposition"))
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n"))
	assert.Contains(t, body, "DTSTART:20260310T230000\r\n")
	assert.Contains(t, body, "DTEND:20260311T003000\r\n")
	assert.Contains(t, body, "UID:uid-1\r\n")
}

func TestCalendarExportLink(t *testing.T) {
	h := newTestMux(t, llmclient.NewFakeClient())
	rec := do(t, h, http.MethodPost, "/api/calendar/export?format=link", "", walkEvent)
	require.Equal(t, http.StatusOK, rec.Code)

	var out linkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out.Link, "dates=20260310T230000%2F20260311T003000")
	assert.Equal(t, "late-walk.ics", out.Filename)

	rec = do(t, h, http.MethodPost, "/api/calendar/export?format=pdf", "", walkEvent)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	h := newTestMux(t, llmclient.NewFakeClient())
	rec := do(t, h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}
