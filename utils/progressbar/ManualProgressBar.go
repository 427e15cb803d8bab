package progressbar

import (
	"fmt"
	"io"
	"os"
	"time"
)

// ManualProgressBar implement progress bar functionality that must
// be manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be printed to the screen.
//
// ManualProgressBar does not use concurrency.
type ManualProgressBar struct {
	width           int
	maxProgress     int
	currentProgress int
	startTime       time.Time
	out             io.Writer
}

// NewManualProgressBar returns a new ManualProgressBar
func NewManualProgressBar(width, max int) *ManualProgressBar {
	return &ManualProgressBar{
		width:       width,
		maxProgress: max,
		startTime:   time.Now(),
		out:         os.Stdout,
	}
}

// SetOutput sets the writer the progress bar is drawn to
func (p *ManualProgressBar) SetOutput(w io.Writer) {
	p.out = w
}

// Increment increments the interal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ManualProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Display draws the progress bar over the previously drawn one
func (p *ManualProgressBar) Display() {
	bar := render(p.width, float64(p.currentProgress),
		float64(p.maxProgress), time.Since(p.startTime))
	fmt.Fprintf(p.out, "\n\033[1A\033[K%v", bar)
}

// Finish moves the cursor past the progress bar
func (p *ManualProgressBar) Finish() {
	fmt.Fprintln(p.out)
}
