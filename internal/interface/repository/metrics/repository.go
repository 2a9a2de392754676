package metrics

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go2web/internal/domain"
)

// Repository はフェッチ統計のリポジトリ実装.
// 値はJSONファイルに保存され、次回起動時に読み戻される.
type Repository struct {
	mu          sync.Mutex
	metricsFile string
	firstSeen   time.Time
	fetches     int64
	requests    int64
	bytes       int64
	cacheHits   int64
	cacheMisses int64
	redirects   int64
	errors      int64
}

// インターフェースの実装を検証
var _ domain.MetricsCollector = (*Repository)(nil)

// New は新しいRepositoryインスタンスを作成.
// 既存のファイルがあれば累積値を引き継ぐ. 壊れたファイルはゼロから数え直す.
func New(metricsFile string) *Repository {
	r := &Repository{
		metricsFile: metricsFile,
		firstSeen:   time.Now(),
	}

	if metricsFile == "" {
		return r
	}
	data, err := os.ReadFile(metricsFile)
	if err != nil {
		return r
	}
	var snapshot domain.MetricsSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return r
	}

	if !snapshot.FirstSeen.IsZero() {
		r.firstSeen = snapshot.FirstSeen
	}
	r.fetches = snapshot.TotalFetches
	r.requests = snapshot.TotalRequests
	r.bytes = snapshot.BytesReceived
	r.cacheHits = snapshot.CacheHits
	r.cacheMisses = snapshot.CacheMisses
	r.redirects = snapshot.Redirects
	r.errors = snapshot.Errors
	return r
}

// Save はメトリクスをファイルに保存
func (r *Repository) Save() error {
	if r.metricsFile == "" {
		return errors.New("no metrics file configured")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(r.GetSnapshot(), "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.metricsFile), 0755); err != nil {
		return err
	}

	tempFile := r.metricsFile + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return err
	}

	return os.Rename(tempFile, r.metricsFile)
}

// 以下、MetricsCollector インターフェースの実装
func (r *Repository) RecordFetch() {
	atomic.AddInt64(&r.fetches, 1)
}

func (r *Repository) RecordRequest() {
	atomic.AddInt64(&r.requests, 1)
}

func (r *Repository) AddBytesReceived(bytes int64) {
	atomic.AddInt64(&r.bytes, bytes)
}

func (r *Repository) RecordCacheHit() {
	atomic.AddInt64(&r.cacheHits, 1)
}

func (r *Repository) RecordCacheMiss() {
	atomic.AddInt64(&r.cacheMisses, 1)
}

func (r *Repository) RecordRedirect() {
	atomic.AddInt64(&r.redirects, 1)
}

func (r *Repository) RecordError() {
	atomic.AddInt64(&r.errors, 1)
}

func (r *Repository) GetSnapshot() *domain.MetricsSnapshot {
	return &domain.MetricsSnapshot{
		Timestamp:     time.Now(),
		FirstSeen:     r.firstSeen,
		TotalFetches:  atomic.LoadInt64(&r.fetches),
		TotalRequests: atomic.LoadInt64(&r.requests),
		BytesReceived: atomic.LoadInt64(&r.bytes),
		CacheHits:     atomic.LoadInt64(&r.cacheHits),
		CacheMisses:   atomic.LoadInt64(&r.cacheMisses),
		Redirects:     atomic.LoadInt64(&r.redirects),
		Errors:        atomic.LoadInt64(&r.errors),
	}
}
