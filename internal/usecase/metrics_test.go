package usecase

import (
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"go2web/internal/interface/repository/metrics"
)

func TestMetricsUseCaseFlush(t *testing.T) {
	file := filepath.Join(t.TempDir(), "stats.json")
	repo := metrics.New(file)
	repo.RecordFetch()

	uc := NewMetricsUseCase(repo, nopLogger{})
	assert.NoError(t, uc.Flush())
	assert.Equal(t, int64(1), metrics.New(file).GetSnapshot().TotalFetches)
	assert.Contains(t, uc.GetPrometheusMetrics(), "go2web_fetches_total 1")
}

func TestMetricsUseCaseFlushError(t *testing.T) {
	uc := NewMetricsUseCase(metrics.New(""), nopLogger{})
	assert.Error(t, uc.Flush())
}
