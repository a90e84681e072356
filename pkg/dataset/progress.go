package dataset

import (
	"fmt"
	"io"
)

// Progress counts finished files and writes a running total. Workers
// report through a channel, so only one goroutine ever writes.
// A nil *Progress is fine and does nothing.
type Progress struct {
	errs chan error
	done chan struct{}
}

// NewProgress starts a reporter for total jobs writing to w.
func NewProgress(w io.Writer, total int) *Progress {
	p := &Progress{errs: make(chan error), done: make(chan struct{})}
	go func() {
		completed, errorCount := 0, 0
		for err := range p.errs {
			if err == nil {
				completed++
			} else {
				errorCount++
			}
			ratio := 100.0
			if total > 0 {
				ratio = 100.0 * float64(completed+errorCount) / float64(total)
			}
			fmt.Fprintf(w, "\r%d of %d files (%0.2f%% done, %d errors)",
				completed+errorCount, total, ratio, errorCount)
		}
		fmt.Fprintln(w)
		close(p.done)
	}()
	return p
}

// JobDone reports one finished file.
func (p *Progress) JobDone(err error) {
	if p != nil {
		p.errs <- err
	}
}

// Close waits for the last line to be written.
func (p *Progress) Close() {
	if p != nil {
		close(p.errs)
		<-p.done
	}
}
