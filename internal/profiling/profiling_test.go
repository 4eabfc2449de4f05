package profiling

import (
	"strings"
	"testing"
	"time"
)

func record(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	mu.Unlock()
}

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	stop := Track("world.Tick")
	time.Sleep(time.Millisecond)
	stop()
	Track("world.Tick")()

	ss := Snapshot()
	if ss["world.Tick"] < time.Millisecond {
		t.Fatalf("world.Tick total = %v, want at least 1ms", ss["world.Tick"])
	}
}

func TestResetFrame(t *testing.T) {
	record("a", time.Millisecond)
	Count("draws", 3)
	ResetFrame()
	if len(Snapshot()) != 0 {
		t.Fatalf("Snapshot not empty after ResetFrame")
	}
	if Counter("draws") != 0 {
		t.Fatalf("Counter not cleared after ResetFrame")
	}
}

func TestSumWithPrefix(t *testing.T) {
	ResetFrame()
	record("world.Tick", 2*time.Millisecond)
	record("world.Upload", 3*time.Millisecond)
	record("renderer.Render", 7*time.Millisecond)

	if got := SumWithPrefix("world."); got != 5*time.Millisecond {
		t.Fatalf("SumWithPrefix(world.) = %v, want 5ms", got)
	}
	if got := SumWithPrefix("missing"); got != 0 {
		t.Fatalf("SumWithPrefix(missing) = %v, want 0", got)
	}
}

func TestTopN(t *testing.T) {
	ResetFrame()
	record("a", 4200*time.Microsecond)
	record("b", 2*time.Millisecond)
	record("c", 100*time.Microsecond)

	got := TopN(2)
	want := "a:4.2ms, b:2ms"
	if got != want {
		t.Fatalf("TopN(2) = %q, want %q", got, want)
	}
	if !strings.Contains(TopN(10), "c:0.1ms") {
		t.Fatalf("TopN(10) = %q, missing c", TopN(10))
	}
}

func TestCount(t *testing.T) {
	ResetFrame()
	Count("world.subchunks", 2)
	Count("world.subchunks", 5)
	if got := Counter("world.subchunks"); got != 7 {
		t.Fatalf("Counter = %d, want 7", got)
	}
}
