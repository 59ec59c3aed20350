// Package runlog persists per-package outcomes across runs. Two append-only
// list files hold the keys of packages that installed successfully or
// failed; a later run loads both sets to skip work already done.
package runlog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Outcome is the terminal result recorded for a job.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
)

// LoadSet reads one key per line from path. A missing file is an empty set.
func LoadSet(path string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return keys, nil
		}
		return nil, fmt.Errorf("open outcome log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		keys[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read outcome log: %w", err)
	}
	return keys, nil
}

// Recorder appends outcome keys to the success and failure logs as jobs
// resolve. Lines are flushed on every record so a crash mid-run loses at
// most the in-flight job.
type Recorder struct {
	success *os.File
	failure *os.File
}

// Open opens (creating if needed) both outcome logs for appending.
func Open(successPath, failurePath string) (*Recorder, error) {
	success, err := os.OpenFile(successPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open success log: %w", err)
	}
	failure, err := os.OpenFile(failurePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		success.Close()
		return nil, fmt.Errorf("open failure log: %w", err)
	}
	return &Recorder{success: success, failure: failure}, nil
}

// Record appends key to the log matching outcome.
func (r *Recorder) Record(key string, outcome Outcome) error {
	dst := r.success
	if outcome == OutcomeFailure {
		dst = r.failure
	}
	if _, err := fmt.Fprintln(dst, key); err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	return nil
}

// Close releases both log files.
func (r *Recorder) Close() error {
	err := r.success.Close()
	if ferr := r.failure.Close(); err == nil {
		err = ferr
	}
	return err
}
