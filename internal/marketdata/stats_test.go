package marketdata

import (
	"errors"
	"testing"
	"time"
)

func TestFetchStatsSnapshotPercentiles(t *testing.T) {
	stats := NewFetchStats(time.Hour)
	for _, ms := range []int{100, 200, 300, 400, 500} {
		stats.Record(time.Duration(ms)*time.Millisecond, nil)
	}

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestFetchStatsFailuresExcludedFromLatency(t *testing.T) {
	stats := NewFetchStats(time.Hour)
	stats.Record(50*time.Millisecond, nil)
	stats.Record(9*time.Second, errors.New("timeout"))

	snap := stats.Snapshot()
	if snap.Count != 1 || snap.Failures != 1 {
		t.Fatalf("expected 1 success and 1 failure, got %+v", snap)
	}
	if snap.MaxMs != 50 {
		t.Fatalf("expected failed attempt excluded from max, got %d", snap.MaxMs)
	}
}

func TestFetchStatsOnlyFailures(t *testing.T) {
	stats := NewFetchStats(time.Hour)
	stats.Record(time.Second, errors.New("boom"))
	snap := stats.Snapshot()
	if snap.Count != 0 || snap.Failures != 1 || snap.MaxMs != 0 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestFetchStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewFetchStats(10 * time.Millisecond)
	stats.Record(100*time.Millisecond, nil)
	time.Sleep(25 * time.Millisecond)

	snap := stats.Snapshot()
	if snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}

	stats.Record(200*time.Millisecond, nil)
	snap = stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestFetchStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewFetchStats(time.Hour)
	stats.Record(-10*time.Millisecond, nil)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}
