package ui

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// LatencyTracker keeps a bounded ring of durations for percentile estimates.
type LatencyTracker struct {
	mu      sync.Mutex
	samples []time.Duration
	count   int
	next    int
	max     time.Duration
}

func NewLatencyTracker(size int) *LatencyTracker {
	if size <= 0 {
		size = 256
	}
	return &LatencyTracker{samples: make([]time.Duration, size)}
}

func (t *LatencyTracker) Observe(d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.samples[t.next] = d
	t.next = (t.next + 1) % len(t.samples)
	if t.count < len(t.samples) {
		t.count++
	}
	if d > t.max {
		t.max = d
	}
	t.mu.Unlock()
}

type LatencySnapshot struct {
	P50 time.Duration
	P99 time.Duration
	Max time.Duration
	N   int
}

// Snapshot returns percentiles over the retained samples. Max covers every
// observation, including ones that have left the ring.
func (t *LatencyTracker) Snapshot() LatencySnapshot {
	if t == nil {
		return LatencySnapshot{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.count == 0 {
		return LatencySnapshot{}
	}
	values := make([]time.Duration, t.count)
	copy(values, t.samples[:t.count])
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return LatencySnapshot{
		P50: values[t.count/2],
		P99: values[int(float64(t.count-1)*0.99)],
		Max: t.max,
		N:   t.count,
	}
}

// Metrics counts what the render loop did over its lifetime.
type Metrics struct {
	renderLatency *LatencyTracker
	frames        atomic.Uint64
	keys          atomic.Uint64
	resizes       atomic.Uint64
}

func NewMetrics() *Metrics {
	return &Metrics{renderLatency: NewLatencyTracker(512)}
}

func (m *Metrics) ObserveFrame(d time.Duration) {
	if m == nil {
		return
	}
	m.frames.Add(1)
	m.renderLatency.Observe(d)
}

func (m *Metrics) KeyEvent() {
	if m == nil {
		return
	}
	m.keys.Add(1)
}

func (m *Metrics) Resize() {
	if m == nil {
		return
	}
	m.resizes.Add(1)
}

func (m *Metrics) Frames() uint64 {
	if m == nil {
		return 0
	}
	return m.frames.Load()
}

func (m *Metrics) Keys() uint64 {
	if m == nil {
		return 0
	}
	return m.keys.Load()
}

func (m *Metrics) Resizes() uint64 {
	if m == nil {
		return 0
	}
	return m.resizes.Load()
}

func (m *Metrics) RenderSnapshot() LatencySnapshot {
	if m == nil {
		return LatencySnapshot{}
	}
	return m.renderLatency.Snapshot()
}

// Summary is a one-line description suitable for the log.
func (m *Metrics) Summary() string {
	if m == nil {
		return "no metrics"
	}
	lat := m.RenderSnapshot()
	return fmt.Sprintf("%d frames, %d keys, %d resizes, render p50=%s p99=%s max=%s",
		m.Frames(), m.Keys(), m.Resizes(),
		lat.P50.Round(time.Microsecond), lat.P99.Round(time.Microsecond), lat.Max.Round(time.Microsecond))
}
