// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
)

const checkTimeout = 5 * time.Second

type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Check names a dependency. A failing optional check degrades readiness
// without failing it.
type Check struct {
	Name     string
	Checker  Checker
	Required bool
}

type Handler struct {
	checks   []Check
	version  string
	ready    atomic.Bool
	shutdown atomic.Bool
}

func NewHandler(version string, checks ...Check) *Handler {
	h := &Handler{
		checks:  checks,
		version: version,
	}
	h.ready.Store(true)
	return h
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
	r.Get("/api/health", h.Readiness)
}

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		writeStatus(w, http.StatusServiceUnavailable, StatusResponse{Status: StatusShuttingDown})
		return
	}
	writeStatus(w, http.StatusOK, StatusResponse{Status: StatusOK})
}

func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		writeStatus(w, http.StatusServiceUnavailable, StatusResponse{Status: StatusShuttingDown})
		return
	}
	if !h.ready.Load() {
		writeStatus(w, http.StatusServiceUnavailable, StatusResponse{Status: StatusNotReady})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	results := h.Run(ctx)
	status, code := Summarize(results)

	writeStatus(w, code, ReadinessResponse{
		Status:  status,
		Version: h.version,
		Checks:  results,
	})
}

// Run pings every dependency concurrently and keeps registration order.
func (h *Handler) Run(ctx context.Context) []Result {
	results := make([]Result, len(h.checks))

	var wg sync.WaitGroup
	for i, check := range h.checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = run(ctx, check)
		}()
	}
	wg.Wait()

	return results
}

func run(ctx context.Context, check Check) Result {
	res := Result{
		Name:     check.Name,
		Required: check.Required,
		Healthy:  true,
	}
	if check.Checker == nil {
		res.Healthy = false
		res.Message = "not configured"
		return res
	}

	start := time.Now()
	err := check.Checker.Ping(ctx)
	res.Latency = time.Since(start).String()
	if err != nil {
		res.Healthy = false
		res.Message = "ping failed"
	}
	return res
}

// Summarize folds check results into an overall status.
func Summarize(results []Result) (string, int) {
	status := StatusOK
	for _, res := range results {
		if res.Healthy {
			continue
		}
		if res.Required {
			return StatusUnavailable, http.StatusServiceUnavailable
		}
		status = StatusDegraded
	}
	return status, http.StatusOK
}

func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *Handler) SetShutdown(shutdown bool) {
	h.shutdown.Store(shutdown)
}

func writeStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response
	_ = json.NewEncoder(w).Encode(data)
}

const (
	StatusOK           = "ok"
	StatusDegraded     = "degraded"
	StatusUnavailable  = "unavailable"
	StatusNotReady     = "not_ready"
	StatusShuttingDown = "shutting_down"
)

type StatusResponse struct {
	Status string `json:"status"`
}

type ReadinessResponse struct {
	Status  string   `json:"status"`
	Version string   `json:"version,omitempty"`
	Checks  []Result `json:"checks"`
}

type Result struct {
	Name     string `json:"name"`
	Healthy  bool   `json:"healthy"`
	Required bool   `json:"required"`
	Latency  string `json:"latency,omitempty"`
	Message  string `json:"message,omitempty"`
}
