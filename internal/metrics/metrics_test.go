package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCascadeStep(t *testing.T) {
	okBefore := testutil.ToFloat64(CascadeSteps.WithLabelValues("profile", "ok"))
	failBefore := testutil.ToFloat64(CascadeSteps.WithLabelValues("profile", "failed"))

	RecordCascadeStep("profile", 5*time.Millisecond, nil)
	RecordCascadeStep("profile", time.Millisecond, errors.New("store down"))
	RecordCascadeStep("profile", time.Millisecond, errors.New("store down"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(CascadeSteps.WithLabelValues("profile", "ok")))
	assert.Equal(t, failBefore+2, testutil.ToFloat64(CascadeSteps.WithLabelValues("profile", "failed")))
}

func TestRecordCascadeRun(t *testing.T) {
	before := testutil.ToFloat64(CascadeRuns.WithLabelValues("partial"))
	RecordCascadeRun("partial")
	assert.Equal(t, before+1, testutil.ToFloat64(CascadeRuns.WithLabelValues("partial")))
}
