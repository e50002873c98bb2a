package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"agenthub/internal/calendar"
	"agenthub/internal/types"
)

type CalendarHandler struct {
	exporter *calendar.Exporter
}

func NewCalendarHandler(exporter *calendar.Exporter) *CalendarHandler {
	if exporter == nil {
		exporter = calendar.NewExporter()
	}
	return &CalendarHandler{exporter: exporter}
}

type linkResponse struct {
	Link     string    `json:"link"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Filename string    `json:"filename"`
}

// HandleExport renders a wellness event as an .ics download (default) or,
// with format=link, a calendar deep link.
func (h *CalendarHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	var ev types.WellnessEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "invalid json body")
		return
	}
	out := h.exporter.Export(calendar.FromWellness(ev))

	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))) {
	case "", "ics":
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(out.ICS))
	case "link":
		writeJSON(w, http.StatusOK, linkResponse{
			Link:     out.Link,
			Start:    out.Start,
			End:      out.End,
			Filename: out.Filename,
		})
	default:
		writeError(w, http.StatusBadRequest, "invalid_argument", "format must be ics or link")
	}
}
