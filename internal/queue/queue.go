// Package queue models the ordered package list for one installation run.
package queue

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Status is the lifecycle state of a single job. Transitions are monotonic:
// Queued → Skipped|Processing → Success|Failure, never back.
type Status int

const (
	StatusQueued Status = iota
	StatusProcessing
	StatusSuccess
	StatusFailure
	StatusSkipped
)

// String returns the lowercase display name for the status.
func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusProcessing:
		return "processing"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Resolved reports whether the job has reached a terminal state.
func (s Status) Resolved() bool {
	return s == StatusSuccess || s == StatusFailure || s == StatusSkipped
}

// Job is one queue entry. Key is the exact trimmed source line and is the
// job's identity; Name is the first whitespace token, the package name
// handed to the installer.
type Job struct {
	Key    string
	Name   string
	Status Status
}

// Counts holds derived status tallies for one scan of the queue.
type Counts struct {
	Total      int
	Queued     int
	Processing int
	Succeeded  int
	Failed     int
	Skipped    int
}

// Processed is the number of jobs in a terminal state.
func (c Counts) Processed() int {
	return c.Succeeded + c.Failed + c.Skipped
}

// Count tallies job statuses in one pass.
func Count(jobs []Job) Counts {
	c := Counts{Total: len(jobs)}
	for _, j := range jobs {
		switch j.Status {
		case StatusQueued:
			c.Queued++
		case StatusProcessing:
			c.Processing++
		case StatusSuccess:
			c.Succeeded++
		case StatusFailure:
			c.Failed++
		case StatusSkipped:
			c.Skipped++
		}
	}
	return c
}

// Load reads the package list at path. Blank lines and #-comments are
// skipped; every other line becomes one job in file order. A missing list
// is a fatal error for the run.
func Load(path string) ([]Job, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open package list: %w", err)
	}
	defer file.Close()

	var jobs []Job
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		jobs = append(jobs, Job{
			Key:  line,
			Name: strings.Fields(line)[0],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read package list: %w", err)
	}
	return jobs, nil
}

// ApplyPriorResults marks jobs whose keys appear in a prior run's success or
// failure set so they are never reinstalled this run. Success wins when a
// key somehow appears in both sets. Unmatched jobs stay queued.
func ApplyPriorResults(jobs []Job, successKeys, failureKeys map[string]struct{}) {
	for i := range jobs {
		if _, ok := successKeys[jobs[i].Key]; ok {
			jobs[i].Status = StatusSuccess
			continue
		}
		if _, ok := failureKeys[jobs[i].Key]; ok {
			jobs[i].Status = StatusFailure
		}
	}
}
