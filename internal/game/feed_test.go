package game

import (
	"testing"
	"time"
)

func TestTimedLog_Prune(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newTimedLog(time.Second, func(e KillEntry) time.Time { return e.At })
	for i := 0; i < 4; i++ {
		l.add(KillEntry{VictimLabel: string(rune('a' + i)), At: base.Add(time.Duration(i) * 400 * time.Millisecond)})
	}

	l.prune(base.Add(999 * time.Millisecond))
	if n := len(l.snapshot()); n != 4 {
		t.Fatalf("entries=%d before any expiry, want 4", n)
	}
	l.prune(base.Add(time.Second))
	got := l.snapshot()
	if len(got) != 3 || got[0].VictimLabel != "b" {
		t.Fatalf("after 1s entries=%v, want b..d", got)
	}
	l.prune(base.Add(3 * time.Second))
	if n := len(l.snapshot()); n != 0 {
		t.Fatalf("entries=%d after everything expired", n)
	}
}

func TestTimedLog_SnapshotIsCopy(t *testing.T) {
	l := newTimedLog(time.Second, func(e DamageNumber) time.Time { return e.At })
	l.add(DamageNumber{Amount: 18})
	snap := l.snapshot()
	snap[0].Amount = 99
	if l.snapshot()[0].Amount != 18 {
		t.Fatal("snapshot aliases the log")
	}
	l.reset()
	if len(l.snapshot()) != 0 {
		t.Fatal("reset should empty the log")
	}
}
