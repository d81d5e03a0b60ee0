// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/core"
	"github.com/AdrianMatei20/NestJsAPI-sub000/internal/user"
)

// UserLister is the slice of the user service the admin surface reads.
type UserLister interface {
	List(ctx context.Context, params user.ListUsersParams) (*user.ListUsersResponse, error)
}

type Handler struct {
	users     UserLister
	db        *core.Database
	redis     *core.Redis
	startedAt time.Time
}

func NewHandler(users UserLister, db *core.Database, redis *core.Redis) *Handler {
	return &Handler{
		users:     users,
		db:        db,
		redis:     redis,
		startedAt: time.Now(),
	}
}

// RegisterRoutes mounts the operator surface. The caller wraps these in the
// authenticator plus the global ADMIN gate.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/users", h.ListUsers)
		r.Get("/stats", h.Stats)
		r.Get("/stats/db", h.DBStats)
		r.Get("/stats/redis", h.RedisStats)
		r.Get("/stats/runtime", h.RuntimeStats)
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := user.ListUsersParams{
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}

	resp, err := h.users.List(r.Context(), params)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, map[string]any{
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		"database":       h.dbStats(),
		"redis":          h.redisStats(),
		"runtime":        h.runtimeStats(),
	})
}

func (h *Handler) DBStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.dbStats())
}

func (h *Handler) RedisStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.redisStats())
}

func (h *Handler) RuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.runtimeStats())
}

func (h *Handler) dbStats() map[string]any {
	stats := h.db.Stats()
	return map[string]any{
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
	}
}

func (h *Handler) redisStats() map[string]any {
	stats := h.redis.PoolStats()
	return map[string]any{
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
	}
}

func (h *Handler) runtimeStats() map[string]any {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return map[string]any{
		"goroutines":  runtime.NumGoroutine(),
		"heap_bytes":  mem.HeapAlloc,
		"total_alloc": mem.TotalAlloc,
		"num_gc":      mem.NumGC,
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
