package health

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
)

// Pinger is satisfied by *pgxpool.Pool and *cache.Cache
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	db    Pinger
	cache Pinger
	// cacheEnabled is false when Redis was unreachable at startup
	cacheEnabled bool
	timeout      time.Duration
}

type HealthStatus struct {
	Status   string          `json:"status"`
	Database ComponentHealth `json:"database"`
	Cache    ComponentHealth `json:"cache"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
}

// DetailedStatus adds host figures to HealthStatus
type DetailedStatus struct {
	HealthStatus
	System SystemStats `json:"system"`
}

type SystemStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    uint64  `json:"memory_used_bytes"`
	MemoryTotal   uint64  `json:"memory_total_bytes"`
	Goroutines    int     `json:"goroutines"`
}

func NewHealthChecker(db Pinger, cache Pinger, cacheEnabled bool) *HealthChecker {
	return &HealthChecker{
		db:           db,
		cache:        cache,
		cacheEnabled: cacheEnabled,
		timeout:      2 * time.Second,
	}
}

// CheckBasic pings the database and cache. Only the database decides
// overall health; the cache is optional.
func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:   StatusHealthy,
		Database: h.check(ctx, h.db),
		Cache:    ComponentHealth{Status: StatusDisabled},
	}
	if h.cacheEnabled && h.cache != nil {
		status.Cache = h.check(ctx, h.cache)
	}

	if status.Database.Status != StatusHealthy {
		status.Status = StatusUnhealthy
	}
	return status
}

// CheckDetailed samples CPU over a short window, so it takes ~200ms
func (h *HealthChecker) CheckDetailed(ctx context.Context) DetailedStatus {
	d := DetailedStatus{
		HealthStatus: h.CheckBasic(ctx),
		System:       SystemStats{Goroutines: runtime.NumGoroutine()},
	}

	if percents, err := cpu.PercentWithContext(ctx, 200*time.Millisecond, false); err == nil && len(percents) > 0 {
		d.System.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		d.System.MemoryPercent = vm.UsedPercent
		d.System.MemoryUsed = vm.Used
		d.System.MemoryTotal = vm.Total
	}
	return d
}

func (h *HealthChecker) check(ctx context.Context, p Pinger) ComponentHealth {
	if p == nil {
		return ComponentHealth{Status: StatusUnhealthy, Error: "not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	c := ComponentHealth{
		Status:       StatusHealthy,
		ResponseTime: time.Since(start).Milliseconds(),
	}
	if err != nil {
		c.Status = StatusUnhealthy
		c.Error = err.Error()
	}
	return c
}
