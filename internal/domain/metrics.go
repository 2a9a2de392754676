package domain

import (
	"fmt"
	"strings"
	"time"
)

// MetricsCollector はフェッチ統計収集のインターフェース.
type MetricsCollector interface {
	RecordFetch()
	RecordRequest()
	RecordCacheHit()
	RecordCacheMiss()
	RecordRedirect()
	AddBytesReceived(bytes int64)
	RecordError()
	GetSnapshot() *MetricsSnapshot
}

// MetricsSnapshot はメトリクスのスナップショットを表す.
// 値は起動をまたいで累積される.
type MetricsSnapshot struct {
	Timestamp     time.Time `json:"timestamp"`
	FirstSeen     time.Time `json:"first_seen"`
	TotalFetches  int64     `json:"total_fetches"`
	TotalRequests int64     `json:"total_requests"`
	BytesReceived int64     `json:"bytes_received"`
	CacheHits     int64     `json:"cache_hits"`
	CacheMisses   int64     `json:"cache_misses"`
	Redirects     int64     `json:"redirects"`
	Errors        int64     `json:"errors"`
}

// ToPrometheusFormat はメトリクスをPrometheus形式にフォーマット.
func (ms *MetricsSnapshot) ToPrometheusFormat() string {
	metrics := []string{
		formatMetric("go2web_fetches_total", "Total number of fetch operations", ms.TotalFetches),
		formatMetric("go2web_requests_total", "Total number of requests sent over the network", ms.TotalRequests),
		formatMetric("go2web_bytes_received_total", "Total number of bytes received from servers", ms.BytesReceived),
		formatMetric("go2web_cache_hits_total", "Total number of cache hits", ms.CacheHits),
		formatMetric("go2web_cache_misses_total", "Total number of cache misses", ms.CacheMisses),
		formatMetric("go2web_redirects_total", "Total number of redirect hops followed", ms.Redirects),
		formatMetric("go2web_errors_total", "Total number of failed fetches", ms.Errors),
	}

	return strings.Join(metrics, "\n\n") + "\n"
}

func formatMetric(name, help string, value int64) string {
	return fmt.Sprintf("# HELP %s %s\n# TYPE %s counter\n%s %d", name, help, name, name, value)
}
