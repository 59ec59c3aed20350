// Package driver is the install-orchestration state machine. It walks the
// queue with a monotonic cursor and drives at most one installer child at a
// time: precheck, spawn, non-blocking drain, completion poll.
//
// # Stepping
//
// The UI calls Step once per tick. Step never blocks:
//
//   - No child live: the job at the cursor is either already resolved
//     (advance past it), already installed on the system (mark Skipped),
//     or launched. A spawn failure marks the job Failure and moves on.
//   - Child live: all currently buffered output lines are appended to the
//     log buffer, then the exit status is polled. A would-block read means
//     "no data now", never an error. The job resolves only once the child
//     has exited and its output stream has closed, so no trailing output
//     is lost.
//
// After a real install completes, a short settle delay holds the next
// launch back. That pause is display smoothing, not a correctness
// requirement.
//
// # Ownership
//
// The live child handle and its stream belong exclusively to the driver
// for the job's lifetime. Terminate kills the child on early quit; one
// failed or unspawnable job never halts the rest of the queue.
package driver
