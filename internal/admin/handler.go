// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

// Counts is a row count per record type.
type Counts struct {
	Users       int `db:"users"         json:"users"`
	PortalUsers int `db:"portal_users"  json:"portalUsers"`
	Clients     int `db:"clients"       json:"clients"`
	Cases       int `db:"cases"         json:"cases"`
	TimeEntries int `db:"time_entries"  json:"timeEntries"`
	Invoices    int `db:"invoices"      json:"invoices"`
	Documents   int `db:"documents"     json:"documents"`
	Messages    int `db:"messages"      json:"messages"`
	Deadlines   int `db:"deadlines"     json:"complianceDeadlines"`
	AIExchanges int `db:"ai_exchanges"  json:"aiConversations"`
}

type Repository interface {
	Counts(ctx context.Context) (*Counts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Counts(ctx context.Context) (*Counts, error) {
	var c Counts
	err := r.db.GetContext(ctx, &c, `
		SELECT
			(SELECT COUNT(*) FROM users)                AS users,
			(SELECT COUNT(*) FROM portal_users)         AS portal_users,
			(SELECT COUNT(*) FROM clients)              AS clients,
			(SELECT COUNT(*) FROM cases)                AS cases,
			(SELECT COUNT(*) FROM time_entries)         AS time_entries,
			(SELECT COUNT(*) FROM invoices)             AS invoices,
			(SELECT COUNT(*) FROM documents)            AS documents,
			(SELECT COUNT(*) FROM messages)             AS messages,
			(SELECT COUNT(*) FROM compliance_deadlines) AS deadlines,
			(SELECT COUNT(*) FROM ai_conversations)     AS ai_exchanges`)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}
	return &c, nil
}

type Pinger func(ctx context.Context) error

// HandlerConfig wires the pool checks. Redis fields may be nil when Redis
// is not configured.
type HandlerConfig struct {
	Repo       Repository
	DBStats    func() sql.DBStats
	DBPing     Pinger
	RedisStats func() *redis.PoolStats
	RedisPing  Pinger
	Version    string
	StartedAt  time.Time
}

type Handler struct {
	cfg HandlerConfig
}

func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.StartedAt.IsZero() {
		cfg.StartedAt = time.Now()
	}
	return &Handler{cfg: cfg}
}

// RegisterRoutes expects to be mounted under the authorized /api group.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/stats", h.GetSystemStats)
		r.Get("/stats/db", h.GetDatabaseStats)
		r.Get("/stats/redis", h.GetRedisStats)
		r.Get("/stats/runtime", h.GetRuntimeStats)
		r.Get("/stats/records", h.GetRecordCounts)
	})
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := SystemStatsResponse{
		Version: h.cfg.Version,
		Uptime:  time.Since(h.cfg.StartedAt).Round(time.Second).String(),
		Database: DatabaseStatus{
			Healthy: ping(ctx, h.cfg.DBPing),
			Stats:   h.dbStats(),
		},
		Redis: RedisStatus{
			Enabled: h.cfg.RedisPing != nil,
			Healthy: ping(ctx, h.cfg.RedisPing),
			Stats:   h.redisStats(),
		},
		Runtime: runtimeStats(),
	}

	if h.cfg.Repo != nil {
		counts, err := h.cfg.Repo.Counts(ctx)
		if err != nil {
			core.HandleError(w, err, "records")
			return
		}
		response.Records = counts
	}

	core.OK(w, response)
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.dbStats())
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.redisStats())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, runtimeStats())
}

func (h *Handler) GetRecordCounts(w http.ResponseWriter, r *http.Request) {
	if h.cfg.Repo == nil {
		core.OK(w, nil)
		return
	}
	counts, err := h.cfg.Repo.Counts(r.Context())
	if err != nil {
		core.HandleError(w, err, "records")
		return
	}
	core.OK(w, counts)
}

// ping treats a missing check as unhealthy.
func ping(ctx context.Context, p Pinger) bool {
	if p == nil {
		return false
	}
	return p(ctx) == nil
}

func (h *Handler) dbStats() *DBPoolStats {
	if h.cfg.DBStats == nil {
		return nil
	}

	stats := h.cfg.DBStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
	}
}

func (h *Handler) redisStats() *RedisPoolStats {
	if h.cfg.RedisStats == nil {
		return nil
	}

	stats := h.cfg.RedisStats()
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
	}
}

func runtimeStats() RuntimeStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		HeapAlloc:    mem.HeapAlloc,
		Sys:          mem.Sys,
		NumGC:        mem.NumGC,
	}
}

type SystemStatsResponse struct {
	Version  string         `json:"version,omitempty"`
	Uptime   string         `json:"uptime"`
	Database DatabaseStatus `json:"database"`
	Redis    RedisStatus    `json:"redis"`
	Runtime  RuntimeStats   `json:"runtime"`
	Records  *Counts        `json:"records,omitempty"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Enabled bool            `json:"enabled"`
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"maxOpenConnections"`
	OpenConnections    int    `json:"openConnections"`
	InUse              int    `json:"inUse"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"waitCount"`
	WaitDuration       string `json:"waitDuration"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"totalConns"`
	IdleConns  uint32 `json:"idleConns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"goVersion"`
	NumGoroutine int    `json:"numGoroutine"`
	NumCPU       int    `json:"numCpu"`
	HeapAlloc    uint64 `json:"heapAllocBytes"`
	Sys          uint64 `json:"sysBytes"`
	NumGC        uint32 `json:"numGc"`
}
