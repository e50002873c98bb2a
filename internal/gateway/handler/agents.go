package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"agenthub/internal/agent"
	"agenthub/internal/agentview"
	"agenthub/internal/connect"
	"agenthub/internal/gateway/session"
	"agenthub/internal/types"

	"go.uber.org/zap"
)

// AgentHandler serves the per-session agent views over plain HTTP.
type AgentHandler struct {
	store  *session.Store
	agents *agent.Agents
	logger *zap.Logger
}

func NewAgentHandler(store *session.Store, agents *agent.Agents, logger *zap.Logger) *AgentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgentHandler{store: store, agents: agents, logger: logger.Named("agents")}
}

type agentInfo struct {
	Domain          types.Domain     `json:"domain"`
	Title           string           `json:"title"`
	ConnectProvider connect.Provider `json:"connect_provider,omitempty"`
	ConnectLabel    string           `json:"connect_label,omitempty"`
}

type agentResponse struct {
	SessionID string             `json:"session_id"`
	Title     string             `json:"title"`
	State     agentview.Snapshot `json:"state"`
}

type queryBody struct {
	Input string `json:"input"`
}

func (h *AgentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	out := make([]agentInfo, 0, len(types.Domains()))
	for _, d := range types.Domains() {
		info := agentInfo{Domain: d, Title: h.agents.Title(d)}
		if p, ok := connect.ProviderFor(d); ok {
			info.ConnectProvider = p
			info.ConnectLabel = p.Label()
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, map[string]any{"agents": out})
}

func (h *AgentHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	d, ok := domainParam(w, r)
	if !ok {
		return
	}
	sess := resolveSession(h.store, w, r)
	view, _ := sess.View(d)
	h.respond(w, http.StatusOK, sess, view.Snapshot())
}

func (h *AgentHandler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	d, ok := domainParam(w, r)
	if !ok {
		return
	}
	sess := resolveSession(h.store, w, r)
	conn, ok := sess.Connector(d)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "agent does not require a connection")
		return
	}
	if err := conn.Connect(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	h.logger.Info("account connected",
		zap.String("session_id", sess.ID),
		zap.String("provider", string(conn.Provider())))
	view, _ := sess.View(d)
	view.Notify()
	h.respond(w, http.StatusOK, sess, view.Snapshot())
}

func (h *AgentHandler) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	d, ok := domainParam(w, r)
	if !ok {
		return
	}
	sess := resolveSession(h.store, w, r)
	conn, ok := sess.Connector(d)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_argument", "agent does not require a connection")
		return
	}
	conn.Disconnect()
	view, _ := sess.View(d)
	view.Reset()
	h.respond(w, http.StatusOK, sess, view.Snapshot())
}

func (h *AgentHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	d, ok := domainParam(w, r)
	if !ok {
		return
	}
	var in queryBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "invalid json body")
		return
	}
	sess := resolveSession(h.store, w, r)
	view, _ := sess.View(d)

	snap, err := view.Submit(r.Context(), in.Input)
	if err != nil {
		var (
			ve *agent.ValidationError
			re *agent.RetrievalError
		)
		switch {
		case errors.Is(err, agentview.ErrNotConnected):
			writeError(w, http.StatusConflict, "not_connected", "connect your account first")
		case errors.Is(err, agentview.ErrBusy):
			writeError(w, http.StatusConflict, "busy", "a query is already in progress")
		case errors.As(err, &ve):
			h.respond(w, http.StatusBadRequest, sess, snap)
		case errors.As(err, &re):
			h.respond(w, http.StatusBadGateway, sess, snap)
		default:
			h.respond(w, http.StatusInternalServerError, sess, snap)
		}
		return
	}
	h.respond(w, http.StatusOK, sess, snap)
}

func (h *AgentHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	d, ok := domainParam(w, r)
	if !ok {
		return
	}
	sess := resolveSession(h.store, w, r)
	view, _ := sess.View(d)
	view.Reset()
	h.respond(w, http.StatusOK, sess, view.Snapshot())
}

func (h *AgentHandler) respond(w http.ResponseWriter, status int, sess *session.Session, snap agentview.Snapshot) {
	writeJSON(w, status, agentResponse{
		SessionID: sess.ID,
		Title:     h.agents.Title(snap.Domain),
		State:     snap,
	})
}
