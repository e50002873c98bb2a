package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"agenthub/internal/agentview"
	"agenthub/internal/gateway/session"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// AgentSocket streams one agent view's snapshots and accepts commands over
// a websocket.
type AgentSocket struct {
	store  *session.Store
	logger *zap.Logger
}

func NewAgentSocket(store *session.Store, logger *zap.Logger) *AgentSocket {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgentSocket{store: store, logger: logger.Named("agent_ws")}
}

const (
	agentWSWriteWait = 10 * time.Second
	agentWSPongWait  = 60 * time.Second
	agentWSPingEvery = (agentWSPongWait * 9) / 10
)

var agentWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type agentWSInbound struct {
	Type  string `json:"type"`
	Input string `json:"input,omitempty"`
}

type agentWSOutbound struct {
	Type      string              `json:"type"`
	SessionID string              `json:"sessionId,omitempty"`
	State     *agentview.Snapshot `json:"state,omitempty"`
	Code      string              `json:"code,omitempty"`
	Message   string              `json:"message,omitempty"`
}

func (h *AgentSocket) HandleAgentWS(w http.ResponseWriter, r *http.Request) {
	d, ok := domainParam(w, r)
	if !ok {
		return
	}
	sess, _ := h.store.GetOrCreate(sessionID(r))
	view, _ := sess.View(d)
	log := h.logger.With(zap.String("session_id", sess.ID), zap.String("domain", string(d)))

	conn, err := agentWSUpgrader.Upgrade(w, r, http.Header{SessionHeader: []string{sess.ID}})
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(agentWSPongWait)); err != nil {
		log.Warn("agent ws set read deadline failed", zap.Error(err))
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(agentWSPongWait))
	})

	writeCh := make(chan agentWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(agentWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(agentWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(agentWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	pushAgentWS(writeCh, agentWSOutbound{
		Type:      "subscribed",
		SessionID: sess.ID,
	})

	snapshots := view.Subscribe(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case snap, ok := <-snapshots:
				if !ok {
					return
				}
				pushAgentWS(writeCh, agentWSOutbound{Type: "state", State: &snap})
			}
		}
	}()

	for {
		var in agentWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		msgType := strings.ToLower(strings.TrimSpace(in.Type))
		switch msgType {
		case "":
			pushAgentWS(writeCh, agentWSOutbound{
				Type:    "error",
				Code:    "invalid_argument",
				Message: "type is required",
			})
		case "ping":
			pushAgentWS(writeCh, agentWSOutbound{Type: "pong"})
		case "submit":
			if err := view.Start(ctx, in.Input); err != nil {
				if code, ok := rejectionCode(err); ok {
					pushAgentWS(writeCh, agentWSOutbound{
						Type:    "error",
						Code:    code,
						Message: err.Error(),
					})
				}
				continue
			}
			log.Debug("agent query started")
		case "reset":
			view.Reset()
		case "connect":
			acct, ok := sess.Connector(d)
			if !ok {
				pushAgentWS(writeCh, agentWSOutbound{
					Type:    "error",
					Code:    "invalid_argument",
					Message: "agent does not require a connection",
				})
				continue
			}
			if err := acct.Connect(ctx); err != nil {
				pushAgentWS(writeCh, agentWSOutbound{
					Type:    "error",
					Code:    "internal",
					Message: err.Error(),
				})
				continue
			}
			view.Notify()
		default:
			pushAgentWS(writeCh, agentWSOutbound{
				Type:    "error",
				Code:    "invalid_argument",
				Message: "unsupported type: " + msgType,
			})
		}
	}
}

// rejectionCode maps submissions the view refused outright. Validation
// failures are not listed: they surface through the next state snapshot.
func rejectionCode(err error) (string, bool) {
	switch {
	case errors.Is(err, agentview.ErrBusy):
		return "busy", true
	case errors.Is(err, agentview.ErrNotConnected):
		return "not_connected", true
	}
	return "", false
}

func pushAgentWS(writeCh chan agentWSOutbound, out agentWSOutbound) {
	if writeCh == nil {
		return
	}
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
