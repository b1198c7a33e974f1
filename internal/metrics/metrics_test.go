package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBugOperation(t *testing.T) {
	before := testutil.ToFloat64(bugOps.WithLabelValues("create", "ok"))
	BugOperation("create", "ok")
	BugOperation("create", "ok")
	assert.Equal(t, before+2, testutil.ToFloat64(bugOps.WithLabelValues("create", "ok")))
}

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/bugs", "200"))
	ObserveRequest("GET", "/api/bugs", "200", 0.01)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/bugs", "200")))
}
