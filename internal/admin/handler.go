// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/househunt/go-backend/internal/booking"
	"github.com/househunt/go-backend/internal/core"
	"github.com/househunt/go-backend/internal/user"
)

type UserCounter interface {
	CountByRoleAndStatus(ctx context.Context) ([]user.RoleStatusCount, error)
}

type PropertyCounter interface {
	Count(ctx context.Context) (int, error)
}

type BookingCounter interface {
	CountByStatus(ctx context.Context) ([]booking.StatusCount, error)
}

type Handler struct {
	dbStats    func() sql.DBStats
	redisStats func() *redis.PoolStats
	redisPing  func(ctx context.Context) error
	dbPing     func(ctx context.Context) error
	users      UserCounter
	properties PropertyCounter
	bookings   BookingCounter
}

// HandlerConfig leaves RedisStats and RedisPing nil when no Redis is
// configured.
type HandlerConfig struct {
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	RedisPing  func(ctx context.Context) error
	DBPing     func(ctx context.Context) error
	Users      UserCounter
	Properties PropertyCounter
	Bookings   BookingCounter
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		dbStats:    cfg.DBStats,
		redisStats: cfg.RedisStats,
		redisPing:  cfg.RedisPing,
		dbPing:     cfg.DBPing,
		users:      cfg.Users,
		properties: cfg.Properties,
		bookings:   cfg.Bookings,
	}
}

// RegisterRoutes expects r to already enforce the admin role.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.GetSystemStats)
	r.Get("/stats/marketplace", h.GetMarketplaceStats)
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	marketplace, err := h.marketplaceStats(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	response := SystemStatsResponse{
		Database: DatabaseStatus{
			Healthy: ping(ctx, h.dbPing),
			Stats:   h.getDBStats(),
		},
		Redis: RedisStatus{
			Enabled: h.redisPing != nil,
			Healthy: ping(ctx, h.redisPing),
			Stats:   h.getRedisStats(),
		},
		Runtime:     runtimeStats(),
		Marketplace: marketplace,
	}

	core.OK(w, response)
}

func (h *Handler) GetMarketplaceStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.marketplaceStats(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) marketplaceStats(ctx context.Context) (*MarketplaceStats, error) {
	stats := &MarketplaceStats{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := h.users.CountByRoleAndStatus(gctx)
		if err != nil {
			return err
		}
		stats.Users = counts
		for _, c := range counts {
			if c.Role == user.RoleOwner && c.Status == user.StatusPending {
				stats.PendingOwners += c.Count
			}
		}
		return nil
	})

	g.Go(func() error {
		n, err := h.properties.Count(gctx)
		stats.Properties = n
		return err
	})

	g.Go(func() error {
		counts, err := h.bookings.CountByStatus(gctx)
		stats.Bookings = counts
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}

// ping reports an unconfigured dependency as unhealthy.
func ping(ctx context.Context, fn func(context.Context) error) bool {
	if fn == nil {
		return false
	}
	return fn(ctx) == nil
}

func runtimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

func (h *Handler) getDBStats() *DBPoolStats {
	if h.dbStats == nil {
		return nil
	}

	stats := h.dbStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
	}
}

func (h *Handler) getRedisStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	stats := h.redisStats()
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
	}
}

type SystemStatsResponse struct {
	Database    DatabaseStatus    `json:"database"`
	Redis       RedisStatus       `json:"redis"`
	Runtime     RuntimeStats      `json:"runtime"`
	Marketplace *MarketplaceStats `json:"marketplace"`
}

type MarketplaceStats struct {
	Users         []user.RoleStatusCount `json:"users"`
	PendingOwners int                    `json:"pendingOwners"`
	Properties    int                    `json:"properties"`
	Bookings      []booking.StatusCount  `json:"bookings"`
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
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
