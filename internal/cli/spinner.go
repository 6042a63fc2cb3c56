package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a one-line progress message on stderr while a pipeline
// stage runs. It stops on Stop or when its context ends.
type Spinner struct {
	w       io.Writer
	message string

	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	stopped  chan struct{}
}

// startSpinner draws message to stderr until Stop is called or ctx ends.
func startSpinner(ctx context.Context, message string) *Spinner {
	return startSpinnerTo(ctx, os.Stderr, message)
}

func startSpinnerTo(ctx context.Context, w io.Writer, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	s := &Spinner{w: w, message: message, ctx: sctx, cancel: cancel, stopped: make(chan struct{})}
	go s.run()
	return s
}

func (s *Spinner) run() {
	defer close(s.stopped)
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
			return
		case <-tick.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
		}
	}
}

// Stop clears the line and waits for the animation to end. It is safe to
// call more than once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(s.cancel)
	<-s.stopped
}
