// Package monitoring метрики Prometheus и проверки здоровья сервера
package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector собирает метрики HTTP и конвейера загрузки
type MetricsCollector struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	importFilesTotal    *prometheus.CounterVec
	importWarningsTotal *prometheus.CounterVec
	importRowsTotal     prometheus.Counter
	importDuration      prometheus.Histogram

	snapshotsTotal prometheus.Counter
}

// NewMetricsCollector создает сборщик с собственным реестром
func NewMetricsCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())

	mc := &MetricsCollector{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "simpilot_http_requests_total",
			Help: "Количество HTTP запросов по методу, маршруту и статусу",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "simpilot_http_request_duration_seconds",
			Help:    "Длительность HTTP запросов",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		importFilesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "simpilot_import_files_total",
			Help: "Количество обработанных файлов по категории листа",
		}, []string{"category"}),
		importWarningsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "simpilot_import_warnings_total",
			Help: "Количество предупреждений загрузки по коду",
		}, []string{"code"}),
		importRowsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simpilot_import_rows_total",
			Help: "Количество разобранных строк данных",
		}),
		importDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "simpilot_import_duration_seconds",
			Help:    "Длительность обработки одного файла",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		snapshotsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simpilot_snapshots_created_total",
			Help: "Количество созданных срезов",
		}),
	}

	registry.MustRegister(
		mc.httpRequestsTotal,
		mc.httpRequestDuration,
		mc.importFilesTotal,
		mc.importWarningsTotal,
		mc.importRowsTotal,
		mc.importDuration,
		mc.snapshotsTotal,
	)
	return mc
}

// GinMiddleware записывает метрики каждого запроса
func (mc *MetricsCollector) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		mc.httpRequestsTotal.WithLabelValues(
			c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		mc.httpRequestDuration.WithLabelValues(
			c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordImportFile записывает обработку листа заданной категории
func (mc *MetricsCollector) RecordImportFile(category string, duration time.Duration) {
	mc.importFilesTotal.WithLabelValues(category).Inc()
	mc.importDuration.Observe(duration.Seconds())
}

// RecordImportWarning записывает предупреждение загрузки
func (mc *MetricsCollector) RecordImportWarning(code string) {
	mc.importWarningsTotal.WithLabelValues(code).Inc()
}

// RecordImportRows записывает количество разобранных строк
func (mc *MetricsCollector) RecordImportRows(count int) {
	mc.importRowsTotal.Add(float64(count))
}

// RecordSnapshotCreated записывает создание среза
func (mc *MetricsCollector) RecordSnapshotCreated() {
	mc.snapshotsTotal.Inc()
}

// Handler отдает обработчик /metrics
func (mc *MetricsCollector) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(mc.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
