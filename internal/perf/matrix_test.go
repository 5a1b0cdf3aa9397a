package perf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatrixMonitor_IsNoOp(t *testing.T) {
	m := NewMatrixMonitor()
	assert.NotPanics(t, func() {
		stop := m.MonitorHover("card-1")
		stop()
		m.MonitorAnimation("card-1", "drop", 120*time.Millisecond)
		drag := m.MonitorDrag("card-1")
		drag.Update()
		drag.Stop()
	})
}
