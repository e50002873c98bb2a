package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"agenthub/internal/gateway/session"
	"agenthub/internal/types"
)

const SessionHeader = "X-Session-ID"

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Code: code, Message: msg})
}

// sessionID reads the header first, then the session_id query parameter.
func sessionID(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(SessionHeader)); v != "" {
		return v
	}
	return strings.TrimSpace(r.URL.Query().Get("session_id"))
}

func resolveSession(store *session.Store, w http.ResponseWriter, r *http.Request) *session.Session {
	sess, _ := store.GetOrCreate(sessionID(r))
	w.Header().Set(SessionHeader, sess.ID)
	return sess
}

func domainParam(w http.ResponseWriter, r *http.Request) (types.Domain, bool) {
	d, ok := types.ParseDomain(strings.TrimSpace(r.PathValue("agent")))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown agent: "+r.PathValue("agent"))
	}
	return d, ok
}
