package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveStore("apt_manager_fees", "get")
	m.ObserveStore("apt_manager_fees", "get")
	m.ObserveStore("apt_manager_fees", "set")
	m.IncReseed()
	m.ObserveRPC("/apartmanager.v1.FeeService/ListFees", "ok", 5*time.Millisecond)

	if got := testutil.ToFloat64(m.storeOps.WithLabelValues("apt_manager_fees", "get")); got != 2 {
		t.Errorf("store get count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.reseeds); got != 1 {
		t.Errorf("reseeds = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.rpcRequests.WithLabelValues("/apartmanager.v1.FeeService/ListFees", "ok")); got != 1 {
		t.Errorf("rpc count = %v, want 1", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveStore("k", "get")
	m.IncReseed()
	m.ObserveRPC("p", "ok", time.Second)
}
