// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
)

type Checker interface {
	Ping(ctx context.Context) error
}

type component struct {
	name    string
	checker Checker
}

// Handler serves liveness and readiness. Liveness always answers 200 while
// the process runs; readiness pings the backing stores and flips to 503
// once shutdown begins so the load balancer drains us.
type Handler struct {
	components   []component
	shuttingDown atomic.Bool
}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) AddComponent(name string, checker Checker) {
	h.components = append(h.components, component{name: name, checker: checker})
}

func (h *Handler) SetShuttingDown() {
	h.shuttingDown.Store(true)
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	core.OK(w, map[string]string{"status": "ok"})
}

func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.shuttingDown.Load() {
		core.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "shutting_down"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	statuses := make(map[string]string, len(h.components))
	healthy := true
	for _, c := range h.components {
		if err := c.checker.Ping(ctx); err != nil {
			statuses[c.name] = "unhealthy"
			healthy = false
			continue
		}
		statuses[c.name] = "ok"
	}

	if !healthy {
		core.JSON(w, http.StatusServiceUnavailable, statuses)
		return
	}
	core.OK(w, statuses)
}
