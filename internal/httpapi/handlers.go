package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/marketframe/pkg/market"
	"github.com/aristath/marketframe/pkg/ndframe"
	"github.com/aristath/marketframe/pkg/temporal"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func parseDate(raw string) (temporal.Date, bool) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return temporal.Date{}, false
	}
	return temporal.DateFromTime(t), true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleValidDays(w http.ResponseWriter, r *http.Request) {
	cal, ok := s.calendar(w, r)
	if !ok {
		return
	}
	start, ok := parseDate(r.URL.Query().Get("start"))
	if !ok {
		writeError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
		return
	}
	end, ok := parseDate(r.URL.Query().Get("end"))
	if !ok {
		writeError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
		return
	}

	days := cal.ValidDays(start, end)
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.String()
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid_days": out})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	cal, ok := s.calendar(w, r)
	if !ok {
		return
	}
	start, ok := parseDate(r.URL.Query().Get("start"))
	if !ok {
		writeError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
		return
	}
	end, ok := parseDate(r.URL.Query().Get("end"))
	if !ok {
		writeError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
		return
	}
	force := (*bool)(nil)
	if raw := r.URL.Query().Get("force_special_times"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			force = &v
		}
	}

	sched, err := cal.Schedule(start, end, market.ScheduleOptions{ForceSpecialTimes: force})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": scheduleRows(sched)})
}

func scheduleRows(df *ndframe.DataFrame) []map[string]any {
	schema := df.Table().Schema()
	rows := make([]map[string]any, df.RowCount())
	for i := 0; i < df.RowCount(); i++ {
		row := make(map[string]any, schema.NumFields()+1)
		row["date"] = df.Index().Label(i).String()
		for c := 0; c < schema.NumFields(); c++ {
			field := schema.Field(c)
			v := df.Table().Column(c).GetScalar(i)
			if v.IsNull() {
				row[field.Name] = nil
				continue
			}
			row[field.Name] = v.String()
		}
		rows[i] = row
	}
	return rows
}

func (s *Server) handleOpenAtTime(w http.ResponseWriter, r *http.Request) {
	cal, ok := s.calendar(w, r)
	if !ok {
		return
	}
	at := r.URL.Query().Get("at")
	ts, err := time.Parse(time.RFC3339, at)
	if err != nil {
		writeError(w, http.StatusBadRequest, "at must be RFC3339")
		return
	}
	d := temporal.DateFromTime(ts.UTC())
	sched, err := cal.Schedule(d.AddDays(-1), d.AddDays(1), market.ScheduleOptions{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	includeClose := r.URL.Query().Get("include_close") == "true"
	onlyRTH := r.URL.Query().Get("only_rth") == "true"
	open, err := cal.OpenAtTime(sched, temporal.FromTime(ts), includeClose, onlyRTH)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"open": open})
}
