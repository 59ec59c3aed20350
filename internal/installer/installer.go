// Package installer adapts the external package-management tool: the
// synchronous installed-check and the spawned install process whose merged
// output is consumed without blocking.
package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"
)

const checkTimeout = 10 * time.Second

// Tool invokes the configured check and install commands. The package name
// is appended as the final argument of either command.
type Tool struct {
	checkCmd   []string
	installCmd []string
}

// New builds a Tool from the configured command prefixes.
func New(checkCmd, installCmd []string) (*Tool, error) {
	if len(installCmd) == 0 {
		return nil, errors.New("install command is empty")
	}
	return &Tool{
		checkCmd:   slices.Clone(checkCmd),
		installCmd: slices.Clone(installCmd),
	}, nil
}

// Installed runs the check command for name with a bounded timeout. Any
// failure, including a missing check binary, is treated as "not installed".
func (t *Tool) Installed(ctx context.Context, name string) bool {
	if len(t.checkCmd) == 0 {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	args := append(slices.Clone(t.checkCmd[1:]), name)
	cmd := exec.CommandContext(ctx, t.checkCmd[0], args...)
	return cmd.Run() == nil
}

// CommandLine returns the full install invocation for name, for display.
func (t *Tool) CommandLine(name string) string {
	return strings.Join(append(slices.Clone(t.installCmd), name), " ")
}

// Start spawns the installer for name with stderr merged into stdout. The
// returned Process owns the child for the job's lifetime.
func (t *Tool) Start(name string) (*Process, error) {
	args := append(slices.Clone(t.installCmd[1:]), name)
	cmd := exec.Command(t.installCmd[0], args...)

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("output pipe: %w", err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, fmt.Errorf("start installer: %w", err)
	}
	// The child holds the write end now; drop ours so the stream sees EOF
	// when the child exits.
	pw.Close()

	p := &Process{
		cmd:    cmd,
		stream: NewLineStream(pr),
		exit:   make(chan int, 1),
	}
	go func() {
		code := 0
		if err := cmd.Wait(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else {
				code = -1
			}
		}
		p.exit <- code
	}()
	return p, nil
}

// Process is one live installer child: its merged output stream and its
// pending exit status.
type Process struct {
	cmd    *exec.Cmd
	stream *LineStream
	exit   chan int

	done     bool
	exitCode int
}

// Next returns the next buffered output line without blocking.
func (p *Process) Next() (string, ReadState) {
	return p.stream.Next()
}

// Poll checks whether the child has exited without blocking. Once the child
// is done, repeated calls keep returning the recorded exit code.
func (p *Process) Poll() (code int, done bool) {
	if p.done {
		return p.exitCode, true
	}
	select {
	case code := <-p.exit:
		p.done = true
		p.exitCode = code
		return code, true
	default:
		return 0, false
	}
}

// Terminate kills the child. Used on early quit so no installer is left
// orphaned behind the UI.
func (p *Process) Terminate() {
	if p.done || p.cmd.Process == nil {
		return
	}
	_ = p.cmd.Process.Kill()
}
