// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ProgressBar implements a concurrent progress bar. The bar is drawn
// in a separate goroutine so that the progress bar runs concurrently
// with all other processes.
type ProgressBar struct {
	// Width determines the number of characters wide that the progress
	// bar should be
	width int

	// maxProgress determines the number of times Increment() should
	// be called before the progress bar reaches 100%.
	maxProgress int64

	// currentProgress measures the number of times Increment() was
	// called, up to maxProgress
	currentProgress atomic.Int64

	// incrementEvent notifies the display goroutine of new progress
	incrementEvent chan struct{}

	closeEvent chan struct{}
	done       chan struct{}
	displayed  atomic.Bool
	closeOnce  sync.Once

	out               io.Writer
	updateEvery       time.Duration
	updateAtIncrement bool
}

// NewProgressBar returns a new progress bar that is width characters
// wide and reaches 100% capacity after max Increment() calls. The bar
// is redrawn every updateEvery and, if updateAtIncrement is set, at
// each increment.
func NewProgressBar(width, max int, updateEvery time.Duration,
	updateAtIncrement bool) *ProgressBar {
	return &ProgressBar{
		width:             width,
		maxProgress:       int64(max),
		incrementEvent:    make(chan struct{}, 1),
		closeEvent:        make(chan struct{}),
		done:              make(chan struct{}),
		out:               os.Stdout,
		updateEvery:       updateEvery,
		updateAtIncrement: updateAtIncrement,
	}
}

// SetOutput sets the writer the progress bar is drawn to. It must be
// called before Display.
func (p *ProgressBar) SetOutput(w io.Writer) {
	p.out = w
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called. Increment never
// blocks.
func (p *ProgressBar) Increment() {
	for {
		current := p.currentProgress.Load()
		if current >= p.maxProgress {
			return
		}
		if p.currentProgress.CompareAndSwap(current, current+1) {
			break
		}
	}

	select {
	case p.incrementEvent <- struct{}{}:
	default:
	}
}

// Close closes the progress bar so that it will no longer display to
// the screen, drawing it one last time. This function also cleans up
// any resources the progress bar is using.
func (p *ProgressBar) Close() {
	p.closeOnce.Do(func() {
		close(p.closeEvent)
		if p.displayed.Load() {
			<-p.done
			fmt.Fprintln(p.out) // Jump to next line after printed pbar
		}
	})
}

// Display displays the progress bar on the screen. It should only be
// called once.
func (p *ProgressBar) Display() {
	if p.displayed.Swap(true) {
		panic("display: progress bar already displayed")
	}

	start := time.Now()
	draw := func() {
		bar := render(p.width, float64(p.currentProgress.Load()),
			float64(p.maxProgress), time.Since(start))
		fmt.Fprintf(p.out, "\n\033[1A\033[K%v", bar)
	}

	go func() {
		defer close(p.done)

		tick := time.NewTicker(p.updateEvery)
		defer tick.Stop()

		for {
			select {
			case <-p.incrementEvent:
				if !p.updateAtIncrement {
					continue
				}

			case <-tick.C:

			case <-p.closeEvent:
				draw()
				return
			}

			draw()
		}
	}()
}

// render returns the text of a progress bar width characters wide
func render(width int, current, max float64, elapsed time.Duration) string {
	var bar strings.Builder

	fraction := 1.0
	if max > 0 {
		fraction = current / max
	}
	filled := int(fraction * float64(width))

	bar.WriteString("|")
	bar.WriteString(strings.Repeat("█", filled))
	bar.WriteString(strings.Repeat(" ", width-filled))
	bar.WriteString(fmt.Sprintf("| [%.2f%v | elapsed: %v]", fraction*100, "%",
		elapsed.Truncate(time.Second)))

	return bar.String()
}
