package progressbar

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	bar := render(10, 5, 10, 1500*time.Millisecond)

	if !strings.HasPrefix(bar, "|"+strings.Repeat("█", 5)+strings.Repeat(" ", 5)+"|") {
		t.Errorf("bar = %q, want 5 of 10 cells filled", bar)
	}
	if !strings.Contains(bar, "50.00%") {
		t.Errorf("bar = %q, want 50.00%%", bar)
	}
	if !strings.Contains(bar, "elapsed: 1s") {
		t.Errorf("bar = %q, want elapsed time truncated to seconds", bar)
	}
}

func TestRenderZeroMax(t *testing.T) {
	bar := render(4, 0, 0, 0)
	if !strings.Contains(bar, "100.00%") {
		t.Errorf("bar = %q, want 100.00%%", bar)
	}
}

func TestManualProgressBar(t *testing.T) {
	var out bytes.Buffer
	p := NewManualProgressBar(8, 4)
	p.SetOutput(&out)

	for i := 0; i < 6; i++ {
		p.Increment()
	}
	p.Display()
	p.Finish()

	if p.currentProgress != 4 {
		t.Errorf("progress = %d, want 4", p.currentProgress)
	}
	if !strings.Contains(out.String(), "100.00%") {
		t.Errorf("output = %q, want 100.00%%", out.String())
	}
}

func TestProgressBar(t *testing.T) {
	var out bytes.Buffer
	p := NewProgressBar(10, 20, time.Hour, true)
	p.SetOutput(&out)
	p.Display()

	for i := 0; i < 25; i++ {
		p.Increment()
	}
	p.Close()
	p.Close()

	if have := p.currentProgress.Load(); have != 20 {
		t.Errorf("progress = %d, want 20", have)
	}
	if !strings.Contains(out.String(), "100.00%") {
		t.Errorf("output = %q, want 100.00%%", out.String())
	}
}

func TestProgressBarCloseWithoutDisplay(t *testing.T) {
	var out bytes.Buffer
	p := NewProgressBar(10, 5, time.Hour, false)
	p.SetOutput(&out)

	p.Increment()
	p.Close()

	if out.Len() != 0 {
		t.Errorf("undisplayed bar wrote %q", out.String())
	}
}
