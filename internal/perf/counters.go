// Package perf keeps advisory timing samples. Counters are constructed by
// the caller and disabled unless asked for; a disabled Counters drops every
// sample.
package perf

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// DefaultCapacity is the number of samples retained per channel.
const DefaultCapacity = 20

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeTimeout Outcome = "timeout"
	OutcomeError   Outcome = "error"
)

// OutcomeOf classifies an operation result.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	default:
		return OutcomeError
	}
}

type Sample struct {
	Operation string
	Duration  time.Duration
	Outcome   Outcome
	Timestamp time.Time
}

// ring holds the most recent samples, overwriting the oldest.
type ring struct {
	buf  []Sample
	next int
	full bool
}

func (r *ring) add(s Sample) {
	r.buf[r.next] = s
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.full = true
	}
}

// samples returns the contents oldest first.
func (r *ring) samples() []Sample {
	if !r.full {
		return append([]Sample(nil), r.buf[:r.next]...)
	}
	out := make([]Sample, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	return append(out, r.buf[:r.next]...)
}

// Counters is safe for concurrent use.
type Counters struct {
	mu       sync.Mutex
	enabled  bool
	capacity int
	channels map[string]*ring
	now      func() time.Time
}

// NewCounters returns counters keeping capacity samples per channel
// (DefaultCapacity when capacity <= 0).
func NewCounters(enabled bool, capacity int) *Counters {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Counters{
		enabled:  enabled,
		capacity: capacity,
		channels: make(map[string]*ring),
		now:      time.Now,
	}
}

// Enabled is nil-safe so callers may hold a nil *Counters.
func (c *Counters) Enabled() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// SetEnabled switches recording on or off. Retained samples are kept.
func (c *Counters) SetEnabled(enabled bool) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.enabled = enabled
	c.mu.Unlock()
}

// Record adds a successful sample to the named channel.
func (c *Counters) Record(name string, d time.Duration) {
	c.RecordOutcome(name, d, OutcomeSuccess)
}

func (c *Counters) RecordOutcome(name string, d time.Duration, outcome Outcome) {
	if !c.Enabled() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.channels[name]
	if !ok {
		r = &ring{buf: make([]Sample, c.capacity)}
		c.channels[name] = r
	}
	r.add(Sample{Operation: name, Duration: d, Outcome: outcome, Timestamp: c.now()})
}

// Samples returns the retained samples of a channel, oldest first.
func (c *Counters) Samples(name string) []Sample {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.channels[name]
	if !ok {
		return nil
	}
	return r.samples()
}

// Average is the mean duration over the retained samples. ok is false when
// the channel has no data.
func (c *Counters) Average(name string) (avg time.Duration, ok bool) {
	samples := c.Samples(name)
	if len(samples) == 0 {
		return 0, false
	}
	var total time.Duration
	for _, s := range samples {
		total += s.Duration
	}
	return total / time.Duration(len(samples)), true
}

// SuccessRate is the fraction of retained samples that succeeded.
func (c *Counters) SuccessRate(name string) (rate float64, ok bool) {
	samples := c.Samples(name)
	if len(samples) == 0 {
		return 0, false
	}
	n := 0
	for _, s := range samples {
		if s.Outcome == OutcomeSuccess {
			n++
		}
	}
	return float64(n) / float64(len(samples)), true
}

// Names lists channels that hold samples, sorted.
func (c *Counters) Names() []string {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.channels))
	for n := range c.channels {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Reset drops all samples. The enabled state is unchanged.
func (c *Counters) Reset() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.channels = make(map[string]*ring)
}

// Timer measures one operation.
type Timer struct {
	c     *Counters
	name  string
	start time.Time
}

// Start begins timing an operation on the named channel.
func (c *Counters) Start(name string) *Timer {
	t := &Timer{c: c, name: name}
	if c.Enabled() {
		t.start = c.now()
	}
	return t
}

// Finish records the elapsed time with the outcome derived from err and
// returns err unchanged.
func (t *Timer) Finish(err error) error {
	if !t.start.IsZero() && t.c.Enabled() {
		t.c.RecordOutcome(t.name, t.c.now().Sub(t.start), OutcomeOf(err))
	}
	return err
}

// ChannelStats summarises one channel.
type ChannelStats struct {
	Name        string
	Count       int
	Average     time.Duration
	SuccessRate float64
}

// Stats returns a summary per channel, sorted by name.
func (c *Counters) Stats() []ChannelStats {
	var out []ChannelStats
	for _, name := range c.Names() {
		avg, _ := c.Average(name)
		rate, _ := c.SuccessRate(name)
		out = append(out, ChannelStats{
			Name:        name,
			Count:       len(c.Samples(name)),
			Average:     avg,
			SuccessRate: rate,
		})
	}
	return out
}
