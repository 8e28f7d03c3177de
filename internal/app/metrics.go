package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts what the scheduler did during a run.
type Metrics struct {
	keyCount    atomic.Uint64
	keyTotalNs  atomic.Int64
	keyMaxNs    atomic.Int64
	keysDropped atomic.Uint64

	idleClears  atomic.Uint64
	idleSkipped atomic.Uint64

	reloads       atomic.Uint64
	reloadsFailed atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordKey records one handled key and how long handling and
// rendering took.
func (m *Metrics) RecordKey(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.keyCount.Add(1)
	m.keyTotalNs.Add(ns)
	for {
		cur := m.keyMaxNs.Load()
		if ns <= cur || m.keyMaxNs.CompareAndSwap(cur, ns) {
			return
		}
	}
}

// RecordKeyDropped records a key lost because the dispatcher was busy.
func (m *Metrics) RecordKeyDropped() {
	m.keysDropped.Add(1)
}

// RecordIdle records one idle tick. cleared is false when the console
// was in a search mode and the tick did nothing.
func (m *Metrics) RecordIdle(cleared bool) {
	if cleared {
		m.idleClears.Add(1)
	} else {
		m.idleSkipped.Add(1)
	}
}

// RecordReload records a configuration reload attempt.
func (m *Metrics) RecordReload(ok bool) {
	if ok {
		m.reloads.Add(1)
	} else {
		m.reloadsFailed.Add(1)
	}
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Keys          uint64
	KeysDropped   uint64
	AvgKey        time.Duration
	MaxKey        time.Duration
	IdleClears    uint64
	IdleSkipped   uint64
	Reloads       uint64
	ReloadsFailed uint64
	Uptime        time.Duration
}

// Snapshot returns the current values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Keys:          m.keyCount.Load(),
		KeysDropped:   m.keysDropped.Load(),
		MaxKey:        time.Duration(m.keyMaxNs.Load()),
		IdleClears:    m.idleClears.Load(),
		IdleSkipped:   m.idleSkipped.Load(),
		Reloads:       m.reloads.Load(),
		ReloadsFailed: m.reloadsFailed.Load(),
		Uptime:        time.Since(m.startTime),
	}
	if s.Keys > 0 {
		s.AvgKey = time.Duration(m.keyTotalNs.Load() / int64(s.Keys))
	}
	return s
}
