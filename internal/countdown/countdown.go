// Package countdown renders a timer.Controller run to a terminal and maps
// line commands onto its lifecycle operations.
package countdown

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/connorhough/timerctl/internal/config"
	"github.com/connorhough/timerctl/internal/iostreams"
	"github.com/connorhough/timerctl/internal/timer"
)

// Commands accepted on stdin when it is a terminal.
const (
	cmdPause  = "p"
	cmdResume = "r"
	cmdStop   = "s"
	cmdQuit   = "q"
)

// newController is replaced in tests.
var newController = timer.New

// display is the scope handed to the controller callbacks.
type display struct {
	mu     sync.Mutex
	out    io.Writer
	format config.DisplayFormat
	redraw bool
	closed bool

	done     chan struct{}
	doneOnce sync.Once
}

func (d *display) render(elapsed, remaining time.Duration, bounded bool) string {
	if d.format == config.FormatMillis {
		if !bounded {
			return fmt.Sprintf("%d ms elapsed", elapsed.Milliseconds())
		}
		return fmt.Sprintf("%d ms elapsed, %d ms remaining", elapsed.Milliseconds(), remaining.Milliseconds())
	}
	if !bounded {
		return timer.ToReadable(elapsed) + " elapsed"
	}
	return fmt.Sprintf("%s elapsed, %s remaining", timer.ToReadable(elapsed), timer.ToReadable(remaining))
}

func (d *display) line(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if d.redraw {
		fmt.Fprintf(d.out, "\r\033[K%s", s)
		return
	}
	fmt.Fprintln(d.out, s)
}

// finish ends the in-place line, if any, and prints s on its own line.
// Ticks still in flight are not rendered afterwards.
func (d *display) finish(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.redraw {
		fmt.Fprintln(d.out)
	}
	if s != "" {
		fmt.Fprintln(d.out, s)
	}
}

func onInterval(bounded bool) timer.IntervalFunc {
	return func(scope any, elapsed, remaining time.Duration) {
		d := scope.(*display)
		d.line(d.render(elapsed, remaining, bounded))
	}
}

func onCompleted(scope any) {
	d := scope.(*display)
	d.doneOnce.Do(func() { close(d.done) })
}

// Run drives a countdown described by cfg until it completes, the user
// stops or quits it, or ctx is cancelled.
func Run(ctx context.Context, streams *iostreams.IOStreams, cfg *config.Timer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d := &display{
		out:    streams.Out,
		format: cfg.Format,
		redraw: streams.CanRedraw(),
		done:   make(chan struct{}),
	}
	ctrl := newController(d, timer.WithLogger(slog.Default()))

	var commands <-chan string
	if streams.IsInteractive() {
		fmt.Fprintln(streams.ErrOut, "commands: p pause, r resume, s stop, q quit")
		commands = readCommands(ctx, streams.In)
	}

	bounded := cfg.Duration > 0
	ctrl.Start(timer.StartOptions{
		Duration:    cfg.Duration,
		Interval:    cfg.Interval,
		OnInterval:  onInterval(bounded),
		OnCompleted: onCompleted,
	})
	slog.Debug("countdown started", "duration", cfg.Duration, "interval", ctrl.Interval())

	for {
		select {
		case <-ctx.Done():
			ctrl.Reset()
			d.finish("interrupted")
			return nil

		case <-d.done:
			d.finish("done: " + d.render(ctrl.Duration(), 0, true))
			return nil

		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			switch cmd {
			case cmdPause:
				ctrl.Pause()
			case cmdResume:
				ctrl.Resume()
			case cmdStop:
				elapsed := ctrl.Elapsed()
				// Stop ignores a paused run, Reset does not.
				ctrl.Stop()
				ctrl.Reset()
				d.finish("stopped at " + d.render(elapsed, 0, false))
				return nil
			case cmdQuit:
				ctrl.Reset()
				d.finish("")
				return nil
			default:
				slog.Debug("unknown command", "input", cmd)
			}
		}
	}
}

// readCommands forwards trimmed input lines until r is exhausted or ctx is
// done. A terminal read that never returns keeps the goroutine parked until
// the process exits.
func readCommands(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- strings.ToLower(strings.TrimSpace(scanner.Text())):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
