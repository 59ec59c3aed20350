package installer

import (
	"bufio"
	"io"
)

// ReadState classifies the result of one non-blocking read attempt.
type ReadState int

const (
	// ReadAvailable means a complete line was returned.
	ReadAvailable ReadState = iota
	// ReadWouldBlock means no data is buffered right now. It is not an
	// error and not end-of-stream.
	ReadWouldBlock
	// ReadClosed means the stream has ended and no more lines will come.
	ReadClosed
)

// LineStream turns a blocking reader into a non-blocking line source. A
// single goroutine owns the reader and feeds a bounded channel; Next never
// blocks the caller.
type LineStream struct {
	lines chan string
}

// NewLineStream starts draining r line by line. The reader is closed when
// it is exhausted.
func NewLineStream(r io.ReadCloser) *LineStream {
	s := &LineStream{lines: make(chan string, 256)}
	go func() {
		defer close(s.lines)
		defer r.Close()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			s.lines <- scanner.Text()
		}
	}()
	return s
}

// Next returns the next buffered line without blocking.
func (s *LineStream) Next() (string, ReadState) {
	select {
	case line, ok := <-s.lines:
		if !ok {
			return "", ReadClosed
		}
		return line, ReadAvailable
	default:
		return "", ReadWouldBlock
	}
}
