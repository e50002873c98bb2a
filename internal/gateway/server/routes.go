package server

import (
	"net/http"

	"agenthub/internal/gateway/handler"
	"agenthub/internal/gateway/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func NewMux(
	agentHandler *handler.AgentHandler,
	agentSocket *handler.AgentSocket,
	calendarHandler *handler.CalendarHandler,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Agents
	mux.HandleFunc("GET /api/agents", agentHandler.HandleList)
	mux.HandleFunc("GET /api/agents/{agent}/state", agentHandler.HandleState)
	mux.HandleFunc("POST /api/agents/{agent}/connect", agentHandler.HandleConnect)
	mux.HandleFunc("DELETE /api/agents/{agent}/connect", agentHandler.HandleDisconnect)
	mux.HandleFunc("POST /api/agents/{agent}/query", agentHandler.HandleQuery)
	mux.HandleFunc("POST /api/agents/{agent}/reset", agentHandler.HandleReset)
	mux.HandleFunc("GET /api/agents/{agent}/ws", agentSocket.HandleAgentWS)

	// Calendar
	mux.HandleFunc("POST /api/calendar/export", calendarHandler.HandleExport)

	// Ops
	mux.HandleFunc("GET /healthz", handler.HandleHealth)
	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// Middleware
	return middleware.RequestLog(logger)(middleware.CORS(mux))
}
