package stats

import (
	"testing"
	"time"

	"aptqueue/internal/queue"
)

func TestCompute_NoDurationsMeansNoETR(t *testing.T) {
	start := time.Now()
	now := start.Add(90 * time.Second)
	counts := queue.Counts{Total: 5, Queued: 5}

	s := Compute(counts, nil, start, now)
	if s.HasETR {
		t.Fatal("HasETR = true before any install completed")
	}
	if s.Elapsed != 90*time.Second {
		t.Fatalf("Elapsed = %v, want 90s", s.Elapsed)
	}
	if s.Total != 5 || s.Processed != 0 {
		t.Fatalf("Total/Processed = %d/%d, want 5/0", s.Total, s.Processed)
	}
}

func TestCompute_ETRIsMeanTimesRemaining(t *testing.T) {
	counts := queue.Counts{Total: 10, Queued: 4, Succeeded: 5, Failed: 1}
	durations := []time.Duration{10 * time.Second, 20 * time.Second, 30 * time.Second}

	s := Compute(counts, durations, time.Now(), time.Now())
	if !s.HasETR {
		t.Fatal("HasETR = false with completed durations")
	}
	if want := 80 * time.Second; s.ETR != want {
		t.Fatalf("ETR = %v, want %v (mean 20s × 4 queued)", s.ETR, want)
	}
	if s.Processed != 6 {
		t.Fatalf("Processed = %d, want 6", s.Processed)
	}
}

func TestCompute_FreshEachCall(t *testing.T) {
	counts := queue.Counts{Total: 3, Queued: 2, Succeeded: 1}
	durations := []time.Duration{4 * time.Second}

	first := Compute(counts, durations, time.Now(), time.Now())
	second := Compute(counts, durations, time.Now(), time.Now())
	if first.ETR != second.ETR || first.Processed != second.Processed {
		t.Fatalf("repeat Compute diverged: %+v vs %+v", first, second)
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		d    time.Duration
		ok   bool
		want string
	}{
		{0, true, "00:00"},
		{65 * time.Second, true, "01:05"},
		{10 * time.Minute, true, "10:00"},
		{30 * time.Second, false, "--:--"},
		{-time.Second, true, "--:--"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.d, tc.ok); got != tc.want {
			t.Fatalf("FormatClock(%v, %v) = %q, want %q", tc.d, tc.ok, got, tc.want)
		}
	}
}
