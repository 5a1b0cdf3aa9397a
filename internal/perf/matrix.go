package perf

import "time"

// MatrixMonitor is the contract for timing matrix interactions: hover,
// card animations and drags. It is intentionally a no-op; every method is
// safe to call and records nothing. A measuring implementation must keep
// these signatures.
type MatrixMonitor struct{}

func NewMatrixMonitor() MatrixMonitor { return MatrixMonitor{} }

// MonitorHover starts observing hover on element and returns the function
// that stops observing.
func (MatrixMonitor) MonitorHover(element string) (stop func()) {
	return func() {}
}

// MonitorAnimation reports a finished animation of the given kind.
func (MatrixMonitor) MonitorAnimation(element, kind string, d time.Duration) {}

// DragHandle tracks one drag gesture.
type DragHandle struct {
	Update func()
	Stop   func()
}

func (MatrixMonitor) MonitorDrag(element string) DragHandle {
	return DragHandle{Update: func() {}, Stop: func() {}}
}
