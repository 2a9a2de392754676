package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestSaveAndReload(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "stats.json")

	r := New(file)
	r.RecordFetch()
	r.RecordRequest()
	r.RecordCacheMiss()
	r.RecordRedirect()
	r.AddBytesReceived(512)
	assert.NoError(t, r.Save())

	reloaded := New(file)
	reloaded.RecordFetch()
	reloaded.RecordCacheHit()

	s := reloaded.GetSnapshot()
	assert.Equal(t, int64(2), s.TotalFetches)
	assert.Equal(t, int64(1), s.TotalRequests)
	assert.Equal(t, int64(1), s.CacheHits)
	assert.Equal(t, int64(1), s.CacheMisses)
	assert.Equal(t, int64(1), s.Redirects)
	assert.Equal(t, int64(512), s.BytesReceived)
	assert.Equal(t, int64(0), s.Errors)
	assert.True(t, s.FirstSeen.Equal(r.GetSnapshot().FirstSeen))
}

func TestCorruptFileStartsFresh(t *testing.T) {
	file := filepath.Join(t.TempDir(), "stats.json")
	assert.NoError(t, os.WriteFile(file, []byte("{not json"), 0644))

	r := New(file)
	assert.Equal(t, int64(0), r.GetSnapshot().TotalFetches)

	r.RecordError()
	assert.NoError(t, r.Save())
	assert.Equal(t, int64(1), New(file).GetSnapshot().Errors)
}

func TestSaveWithoutFile(t *testing.T) {
	assert.Error(t, New("").Save())
}

func TestPrometheusFormat(t *testing.T) {
	r := New("")
	r.RecordFetch()
	r.RecordCacheHit()

	out := r.GetSnapshot().ToPrometheusFormat()
	assert.Contains(t, out, "# TYPE go2web_fetches_total counter\ngo2web_fetches_total 1")
	assert.Contains(t, out, "go2web_cache_hits_total 1")
	assert.Contains(t, out, "go2web_errors_total 0")
	assert.True(t, strings.HasSuffix(out, "\n"))
}
