// Package stats derives run statistics from queue state. Everything here is
// recomputed from scratch on every tick; nothing accumulates between calls.
package stats

import (
	"fmt"
	"time"

	"aptqueue/internal/queue"
)

// Stats is one tick's derived view of run progress. ETR is only meaningful
// when HasETR is set; before the first completed install there is no basis
// for an estimate.
type Stats struct {
	Total     int
	Processed int
	Elapsed   time.Duration
	ETR       time.Duration
	HasETR    bool
}

// Compute derives fresh statistics from the current counts, the durations of
// installs completed so far, and the run start time.
func Compute(counts queue.Counts, durations []time.Duration, start, now time.Time) Stats {
	s := Stats{
		Total:     counts.Total,
		Processed: counts.Processed(),
		Elapsed:   now.Sub(start),
	}
	if len(durations) == 0 {
		return s
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}
	mean := sum / time.Duration(len(durations))
	s.ETR = mean * time.Duration(counts.Queued)
	s.HasETR = true
	return s
}

// FormatClock renders a duration as MM:SS, or "--:--" when there is nothing
// to show.
func FormatClock(d time.Duration, ok bool) string {
	if !ok || d < 0 {
		return "--:--"
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
