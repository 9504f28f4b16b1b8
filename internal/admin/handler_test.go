// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/househunt/go-backend/internal/booking"
	"github.com/househunt/go-backend/internal/user"
)

type stubUsers []user.RoleStatusCount

func (s stubUsers) CountByRoleAndStatus(context.Context) ([]user.RoleStatusCount, error) {
	return s, nil
}

type stubProperties struct {
	n   int
	err error
}

func (s stubProperties) Count(context.Context) (int, error) {
	return s.n, s.err
}

type stubBookings []booking.StatusCount

func (s stubBookings) CountByStatus(context.Context) ([]booking.StatusCount, error) {
	return s, nil
}

func newRouter(cfg HandlerConfig) chi.Router {
	r := chi.NewRouter()
	NewHandler(cfg).RegisterRoutes(r)
	return r
}

func baseConfig() HandlerConfig {
	return HandlerConfig{
		DBStats: func() sql.DBStats { return sql.DBStats{MaxOpenConnections: 25, OpenConnections: 3} },
		DBPing:  func(context.Context) error { return nil },
		Users: stubUsers{
			{Role: user.RoleOwner, Status: user.StatusPending, Count: 2},
			{Role: user.RoleOwner, Status: user.StatusApproved, Count: 5},
			{Role: user.RoleRenter, Status: user.StatusApproved, Count: 40},
		},
		Properties: stubProperties{n: 12},
		Bookings: stubBookings{
			{Status: booking.StatusPending, Count: 3},
			{Status: booking.StatusAccepted, Count: 1},
		},
	}
}

func TestMarketplaceStats(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(baseConfig()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats/marketplace", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var stats MarketplaceStats
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.PendingOwners != 2 || stats.Properties != 12 || len(stats.Bookings) != 2 || len(stats.Users) != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestMarketplaceStats_ErrorIs500(t *testing.T) {
	cfg := baseConfig()
	cfg.Properties = stubProperties{err: errors.New("db down")}

	rec := httptest.NewRecorder()
	newRouter(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats/marketplace", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}

func TestSystemStats_WithoutRedis(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(baseConfig()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var resp SystemStatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Database.Healthy || resp.Database.Stats == nil || resp.Database.Stats.MaxOpenConnections != 25 {
		t.Fatalf("unexpected database status %+v", resp.Database)
	}
	if resp.Redis.Stats != nil {
		t.Fatalf("redis stats should be omitted, got %+v", resp.Redis.Stats)
	}
	if resp.Redis.Enabled || resp.Redis.Healthy {
		t.Fatalf("unconfigured redis must not report healthy: %+v", resp.Redis)
	}
	if resp.Marketplace == nil || resp.Marketplace.PendingOwners != 2 {
		t.Fatalf("marketplace stats missing: %+v", resp.Marketplace)
	}
	if resp.Runtime.GoVersion == "" {
		t.Fatal("runtime stats missing")
	}
}

func TestSystemStats_WithRedis(t *testing.T) {
	cfg := baseConfig()
	cfg.RedisStats = func() *redis.PoolStats { return &redis.PoolStats{TotalConns: 4} }
	cfg.RedisPing = func(context.Context) error { return errors.New("timeout") }

	rec := httptest.NewRecorder()
	newRouter(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	var resp SystemStatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Redis.Enabled || resp.Redis.Healthy {
		t.Fatalf("expected enabled and unhealthy, got %+v", resp.Redis)
	}
	if resp.Redis.Stats == nil || resp.Redis.Stats.TotalConns != 4 {
		t.Fatalf("unexpected redis stats %+v", resp.Redis.Stats)
	}
}
