package monitoring

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"sync"
	"time"
)

// HealthStatus статус здоровья компонента
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth здоровье отдельного компонента
type ComponentHealth struct {
	Name      string        `json:"name"`
	Status    HealthStatus  `json:"status"`
	Message   string        `json:"message,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Latency   time.Duration `json:"latency,omitempty"`
}

// HealthCheckResult результат проверки здоровья системы
type HealthCheckResult struct {
	Status     HealthStatus               `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Uptime     time.Duration              `json:"uptime"`
	Version    string                     `json:"version"`
	Components map[string]ComponentHealth `json:"components"`
	System     SystemHealth               `json:"system"`
}

// SystemHealth системные метрики
type SystemHealth struct {
	MemoryAllocMB float64 `json:"memory_alloc_mb"`
	Goroutines    int     `json:"goroutines"`
}

// HealthCheckFunc функция проверки здоровья компонента
type HealthCheckFunc func(ctx context.Context) ComponentHealth

// HealthChecker проверяет здоровье системы
type HealthChecker struct {
	mu         sync.RWMutex
	components map[string]HealthCheckFunc
	startTime  time.Time
	version    string
	db         *sql.DB
}

// NewHealthChecker создает новый HealthChecker
func NewHealthChecker(version string, db *sql.DB) *HealthChecker {
	return &HealthChecker{
		components: make(map[string]HealthCheckFunc),
		startTime:  time.Now(),
		version:    version,
		db:         db,
	}
}

// RegisterComponent регистрирует компонент для проверки здоровья
func (hc *HealthChecker) RegisterComponent(name string, checkFunc HealthCheckFunc) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.components[name] = checkFunc
}

// Check выполняет проверку здоровья всех компонентов
func (hc *HealthChecker) Check(ctx context.Context) HealthCheckResult {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	components := make(map[string]ComponentHealth)
	overallStatus := HealthStatusHealthy

	if hc.db != nil {
		start := time.Now()
		err := hc.db.PingContext(ctx)
		latency := time.Since(start)
		status := HealthStatusHealthy
		message := "Database is healthy"
		if err != nil {
			status = HealthStatusUnhealthy
			message = fmt.Sprintf("Database error: %v", err)
			overallStatus = HealthStatusUnhealthy
		}
		components["database"] = ComponentHealth{
			Name:      "database",
			Status:    status,
			Message:   message,
			Timestamp: time.Now(),
			Latency:   latency,
		}
	}

	for name, check := range hc.components {
		health := check(ctx)
		health.Name = name
		health.Timestamp = time.Now()
		components[name] = health

		if health.Status == HealthStatusUnhealthy {
			overallStatus = HealthStatusUnhealthy
		} else if health.Status == HealthStatusDegraded && overallStatus == HealthStatusHealthy {
			overallStatus = HealthStatusDegraded
		}
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return HealthCheckResult{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Uptime:     time.Since(hc.startTime),
		Version:    hc.version,
		Components: components,
		System: SystemHealth{
			MemoryAllocMB: float64(memStats.Alloc) / 1024 / 1024,
			Goroutines:    runtime.NumGoroutine(),
		},
	}
}
