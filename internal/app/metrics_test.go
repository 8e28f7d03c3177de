package app

import (
	"testing"
	"time"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.RecordKey(2 * time.Millisecond)
	m.RecordKey(4 * time.Millisecond)
	m.RecordKeyDropped()
	m.RecordIdle(true)
	m.RecordIdle(false)
	m.RecordIdle(false)
	m.RecordReload(true)
	m.RecordReload(false)

	s := m.Snapshot()
	if s.Keys != 2 || s.KeysDropped != 1 {
		t.Errorf("keys = %d dropped = %d", s.Keys, s.KeysDropped)
	}
	if s.AvgKey != 3*time.Millisecond || s.MaxKey != 4*time.Millisecond {
		t.Errorf("avg = %v max = %v", s.AvgKey, s.MaxKey)
	}
	if s.IdleClears != 1 || s.IdleSkipped != 2 {
		t.Errorf("idle = %d/%d", s.IdleClears, s.IdleSkipped)
	}
	if s.Reloads != 1 || s.ReloadsFailed != 1 {
		t.Errorf("reloads = %d/%d", s.Reloads, s.ReloadsFailed)
	}
}

func TestMetrics_EmptySnapshot(t *testing.T) {
	s := NewMetrics().Snapshot()
	if s.Keys != 0 || s.AvgKey != 0 {
		t.Errorf("empty snapshot = %+v", s)
	}
}
