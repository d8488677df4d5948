package commands

import (
	"bufio"
	"context"
	"io"
)

// lineReader reads lines on its own goroutine so a blocked read never delays
// cancellation.
type lineReader struct {
	lines chan string
	done  chan struct{}
	err   error // set before lines is closed
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		lines: make(chan string),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(lr.lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lr.lines <- scanner.Text():
			case <-lr.done:
				return
			}
		}
		lr.err = scanner.Err()
	}()
	return lr
}

// next returns the next line. ok is false at end of input or when ctx is
// done.
func (lr *lineReader) next(ctx context.Context) (line string, ok bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok = <-lr.lines:
		return line, ok
	}
}

// Err returns the read error. Only valid once next reported end of input
// with ctx still live.
func (lr *lineReader) Err() error {
	return lr.err
}

// stop releases the reading goroutine once its pending read returns.
func (lr *lineReader) stop() {
	close(lr.done)
}
