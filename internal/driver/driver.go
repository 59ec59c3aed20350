package driver

import (
	"context"
	"log"
	"strings"
	"time"

	"aptqueue/internal/installer"
	"aptqueue/internal/queue"
	"aptqueue/internal/runlog"
)

const (
	defaultSettle = 500 * time.Millisecond
	logCap        = 5000
	welcomeLine   = "Welcome! Press 'h' for help or 's' to toggle stats."
)

// Tool is the slice of the installer the driver needs.
type Tool interface {
	Installed(ctx context.Context, name string) bool
	Start(name string) (Handle, error)
	CommandLine(name string) string
}

// Handle is one live installer child.
type Handle interface {
	Next() (string, installer.ReadState)
	Poll() (code int, done bool)
	Terminate()
}

// OutcomeSink receives every success/failure transition for durable
// persistence. *runlog.Recorder satisfies it.
type OutcomeSink interface {
	Record(key string, outcome runlog.Outcome) error
}

// Driver walks the queue with a monotonic cursor, driving at most one
// installer child. Step is called once per tick and never blocks.
type Driver struct {
	ctx    context.Context
	tool   Tool
	sink   OutcomeSink
	jobs   []queue.Job
	settle time.Duration

	cursor       int
	proc         Handle
	streamClosed bool
	jobStart     time.Time
	settleUntil  time.Time

	durations []time.Duration
	logLines  []string
}

// New builds a driver over jobs. The sink may be nil when outcomes need no
// persistence (tests).
func New(ctx context.Context, tool Tool, sink OutcomeSink, jobs []queue.Job, settle time.Duration) *Driver {
	if settle <= 0 {
		settle = defaultSettle
	}
	return &Driver{
		ctx:      ctx,
		tool:     tool,
		sink:     sink,
		jobs:     jobs,
		settle:   settle,
		logLines: []string{welcomeLine},
	}
}

// Step advances the state machine by one tick and reports whether anything
// visible changed.
func (d *Driver) Step(now time.Time) bool {
	if d.proc != nil {
		return d.stepLive(now)
	}
	if d.cursor >= len(d.jobs) {
		return false
	}
	if now.Before(d.settleUntil) {
		return false
	}

	job := &d.jobs[d.cursor]
	if job.Status != queue.StatusQueued {
		// Resolved by a prior run; visit and move on without reinstalling.
		d.cursor++
		return true
	}

	if d.tool.Installed(d.ctx, job.Name) {
		job.Status = queue.StatusSkipped
		d.cursor++
		return true
	}

	job.Status = queue.StatusProcessing
	d.logLines = []string{
		"Running: " + d.tool.CommandLine(job.Name),
		strings.Repeat("-", 40),
	}

	proc, err := d.tool.Start(job.Name)
	if err != nil {
		// Unspawnable installer fails the job, never the run.
		d.appendLog("spawn failed: " + err.Error())
		d.resolve(job, queue.StatusFailure, now, false)
		return true
	}
	d.proc = proc
	d.streamClosed = false
	d.jobStart = now
	return true
}

// stepLive drains buffered output and polls for completion. A would-block
// read means "no data now" and is never an error.
func (d *Driver) stepLive(now time.Time) bool {
	changed := false
	for !d.streamClosed {
		line, state := d.proc.Next()
		if state == installer.ReadAvailable {
			d.appendLog(line)
			changed = true
			continue
		}
		if state == installer.ReadClosed {
			d.streamClosed = true
		}
		break
	}

	code, done := d.proc.Poll()
	if !done || !d.streamClosed {
		return changed
	}

	job := &d.jobs[d.cursor]
	if code == 0 {
		d.durations = append(d.durations, now.Sub(d.jobStart))
		d.resolve(job, queue.StatusSuccess, now, true)
	} else {
		d.resolve(job, queue.StatusFailure, now, true)
	}
	d.proc = nil
	return true
}

// resolve finalizes the job at the cursor and advances it. A settle delay
// smooths the display between real installs; skips and spawn failures move
// on immediately.
func (d *Driver) resolve(job *queue.Job, status queue.Status, now time.Time, settle bool) {
	job.Status = status
	outcome := runlog.OutcomeSuccess
	if status == queue.StatusFailure {
		outcome = runlog.OutcomeFailure
	}
	if d.sink != nil {
		if err := d.sink.Record(job.Key, outcome); err != nil {
			log.Printf("record outcome for %s: %v", job.Key, err)
		}
	}
	d.cursor++
	if settle {
		d.settleUntil = now.Add(d.settle)
	}
}

func (d *Driver) appendLog(line string) {
	d.logLines = append(d.logLines, line)
	if len(d.logLines) > logCap {
		d.logLines = d.logLines[len(d.logLines)-logCap:]
	}
}

// Terminate kills any in-flight child. Called on early quit so the run
// leaves no orphaned installer behind.
func (d *Driver) Terminate() {
	if d.proc != nil {
		d.proc.Terminate()
	}
}

// Jobs exposes the queue for rendering and counting.
func (d *Driver) Jobs() []queue.Job { return d.jobs }

// Log exposes the current job's captured output lines.
func (d *Driver) Log() []string { return d.logLines }

// Durations lists completed install durations in completion order.
func (d *Driver) Durations() []time.Duration { return d.durations }

// ActiveIndex is the list row the display should follow.
func (d *Driver) ActiveIndex() int {
	if d.cursor >= len(d.jobs) {
		return len(d.jobs) - 1
	}
	return d.cursor
}

// Running reports whether a child is live right now.
func (d *Driver) Running() bool { return d.proc != nil }

// Done reports whether the cursor has passed the last job.
func (d *Driver) Done() bool { return d.proc == nil && d.cursor >= len(d.jobs) }
