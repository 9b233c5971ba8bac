package camunda

import (
	"errors"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"matching-workers/internal/common/metrics"
)

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(errors.New("rpc error: code = Unavailable desc = connection refused")))
	assert.True(t, isRetryableZeebeError(errors.New("context deadline exceeded")))
	assert.False(t, isRetryableZeebeError(errors.New("permission denied")))
}

func TestBackoff_IsCapped(t *testing.T) {
	rc := &RetryConfig{BaseDelay: time.Second, MaxDelay: 5 * time.Second}
	assert.Equal(t, time.Second, backoff(rc, 0))
	assert.Equal(t, 4*time.Second, backoff(rc, 2))
	assert.Equal(t, 5*time.Second, backoff(rc, 3))
	assert.Equal(t, 5*time.Second, backoff(rc, 62))
}

func TestInstrument_CallsHandler(t *testing.T) {
	active := metrics.WorkerJobsActive.WithLabelValues("instrument-test")
	called := false
	h := Instrument("instrument-test", func(client worker.JobClient, job entities.Job) {
		called = true
		assert.Equal(t, int64(42), job.Key)
		assert.Equal(t, 1.0, testutil.ToFloat64(active))
	})
	h(nil, entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 42}})
	assert.True(t, called)
	assert.Equal(t, 0.0, testutil.ToFloat64(active))
}
