package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSearch(t *testing.T) {
	r := New()

	r.ObserveSearch("parallel", "filename", false, 20*time.Millisecond, 3)
	r.ObserveSearch("parallel", "filename", true, 5*time.Millisecond, 0)
	r.ObserveSearch("sequential", "content", false, time.Second, 10)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.Searches.WithLabelValues("parallel", "filename", OutcomeCompleted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Searches.WithLabelValues("parallel", "filename", OutcomeCancelled)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Searches.WithLabelValues("sequential", "content", OutcomeCompleted)))
	assert.Equal(t, 3, testutil.CollectAndCount(r.Searches))
	assert.Equal(t, 2, testutil.CollectAndCount(r.SearchDuration))
}

func TestRecordersAreIndependent(t *testing.T) {
	a := New()
	b := New()
	a.ObserveAction("copy", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.Actions.WithLabelValues("copy", "ok")))
	assert.Equal(t, 0, testutil.CollectAndCount(b.Actions))
}

func TestObserveActionStatus(t *testing.T) {
	r := New()
	r.ObserveAction("terminal", errors.New("boom"))
	r.ObserveAction("terminal", nil)
	r.ObserveAction("terminal", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.Actions.WithLabelValues("terminal", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Actions.WithLabelValues("terminal", "ok")))
}

func TestWriteToTextfile(t *testing.T) {
	r := New()
	r.ObserveSearch("sequential", "filename", false, 10*time.Millisecond, 1)
	r.ConfigLoads.WithLabelValues("file").Inc()

	path := filepath.Join(t.TempDir(), "ff.prom")
	require.NoError(t, r.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `ff_search_runs_total{executor="sequential",outcome="completed",type="filename"} 1`)
	assert.Contains(t, out, "ff_search_duration_seconds_bucket")
	assert.Contains(t, out, `ff_config_loads_total{source="file"} 1`)
}
