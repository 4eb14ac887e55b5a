package tracker

import (
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0s"},
		{999, "0s"}, // sub-second truncates
		{45 * 1000, "45s"},
		{59 * 1000, "59s"},
		{60 * 1000, "1m 0s"},
		{200 * 1000, "3m 20s"},
		{59*60*1000 + 59*1000, "59m 59s"},
		{3600 * 1000, "1h 0m 0s"},
		{3900 * 1000, "1h 5m 0s"},
		{26*3600*1000 + 3*60*1000 + 7*1000, "26h 3m 7s"},
		{-5000, "0s"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.ms); got != tt.want {
			t.Errorf("FormatTime(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestTotalTimeCompletedEntriesOnly(t *testing.T) {
	now := localTime(2025, 3, 14, 12, 0, 0)
	s := NewState(now)
	a := mustAddTask(t, s, "a", now)
	b := mustAddTask(t, s, "b", now)

	StartTask(s, a.ID, localTime(2025, 3, 14, 9, 0, 0))
	StopActive(s, localTime(2025, 3, 14, 9, 30, 0))
	StartTask(s, b.ID, localTime(2025, 3, 14, 10, 0, 0))
	StopActive(s, localTime(2025, 3, 14, 10, 10, 0))
	StartTask(s, a.ID, localTime(2025, 3, 14, 11, 0, 0))
	StopActive(s, localTime(2025, 3, 14, 11, 15, 0))

	if got := TotalTime(s, a.ID, "2025-03-14", now); got != 45*60*1000 {
		t.Errorf("task a total = %d, want 45m", got)
	}
	if got := TotalTime(s, b.ID, "2025-03-14", now); got != 10*60*1000 {
		t.Errorf("task b total = %d, want 10m", got)
	}
	if got := DayTotal(s, "2025-03-14", now); got != 55*60*1000 {
		t.Errorf("day total = %d, want 55m", got)
	}
}

func TestTotalTimeIncludesLiveSessionToday(t *testing.T) {
	start := localTime(2025, 3, 14, 9, 0, 0)
	s := NewState(start)
	task := mustAddTask(t, s, "a", start)
	StartTask(s, task.ID, start)

	now := start.Add(7 * time.Minute)
	if got := TotalTime(s, task.ID, "2025-03-14", now); got != 7*60*1000 {
		t.Errorf("live total = %d, want 7m", got)
	}

	// The live component grows with the clock without mutating state.
	later := start.Add(8 * time.Minute)
	if got := TotalTime(s, task.ID, "2025-03-14", later); got != 8*60*1000 {
		t.Errorf("live total = %d, want 8m", got)
	}
	if len(s.DayEntries("2025-03-14")) != 0 {
		t.Error("reading totals must not record entries")
	}
}

func TestTotalTimeLiveExcludedForOtherTask(t *testing.T) {
	start := localTime(2025, 3, 14, 9, 0, 0)
	s := NewState(start)
	a := mustAddTask(t, s, "a", start)
	b := mustAddTask(t, s, "b", start)
	StartTask(s, a.ID, start)

	now := start.Add(time.Hour)
	if got := TotalTime(s, b.ID, "2025-03-14", now); got != 0 {
		t.Errorf("idle task total = %d, want 0", got)
	}
}

func TestTotalTimeHistoricalDayHasNoLiveComponent(t *testing.T) {
	// A reconciled session runs on today; yesterday's total must stay
	// fixed at its completed entries.
	started := localTime(2025, 3, 14, 23, 0, 0)
	s := NewState(started)
	task := mustAddTask(t, s, "a", started)
	StartTask(s, task.ID, started)

	now := localTime(2025, 3, 15, 8, 0, 0)
	Reconcile(s, now)

	if got := TotalTime(s, task.ID, "2025-03-14", now); got != 60*60*1000 {
		t.Errorf("yesterday total = %d, want fixed 1h", got)
	}
	// Today's total is the live time since midnight.
	if got := TotalTime(s, task.ID, "2025-03-15", now); got != 8*60*60*1000 {
		t.Errorf("today total = %d, want 8h live", got)
	}
}
