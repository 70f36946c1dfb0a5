package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

// Probe reports whether a single dependency is reachable.
type Probe func(ctx context.Context) error

// Handler serves the liveness and readiness endpoints. Probes are keyed by
// dependency name and run sequentially under a shared deadline.
type Handler struct {
	Probes  map[string]Probe
	Timeout time.Duration
}

type report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Live reports process liveness. It never touches dependencies.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeReport(w, http.StatusOK, report{Status: "up"})
}

// Ready runs every probe and reports 503 when any dependency is down.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if len(h.Probes) == 0 {
		writeReport(w, http.StatusServiceUnavailable, report{Status: "down"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout())
	defer cancel()

	checks := make(map[string]string, len(h.Probes))
	healthy := true
	for _, name := range sortedNames(h.Probes) {
		if err := h.Probes[name](ctx); err != nil {
			checks[name] = err.Error()
			healthy = false
			continue
		}
		checks[name] = "ok"
	}

	status, code := "up", http.StatusOK
	if !healthy {
		status, code = "down", http.StatusServiceUnavailable
	}
	writeReport(w, code, report{Status: status, Checks: checks})
}

func (h Handler) timeout() time.Duration {
	if h.Timeout <= 0 {
		return time.Second
	}
	return h.Timeout
}

func sortedNames(probes map[string]Probe) []string {
	names := make([]string, 0, len(probes))
	for name := range probes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeReport(w http.ResponseWriter, code int, rep report) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(rep)
}
