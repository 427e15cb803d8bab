package maze

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
	env "github.com/samuelfneumann/qmaze/environment"
	"github.com/samuelfneumann/qmaze/utils/floatutils"
)

// CellSize is the width and height in pixels of a rendered cell
const CellSize float64 = 40

// RenderQ draws the maze together with the greedy action of each start
// cell under q. Arrows are green for positive values and red for
// negative ones, and all tied greedy actions are drawn. The image is
// saved to the path given with WithRenderQ.
func (m *Maze) RenderQ(q env.QFunc) error {
	if m.renderPath == "" {
		return nil
	}

	dc := m.draw()

	for _, cell := range m.empty {
		values := q.Q(env.NewState(m.observeAt(cell)))
		max, greedy := floatutils.MaxSlice(values)

		// Shade by value, saturating at the exit reward
		shade := floatutils.Clip(math.Abs(max)/m.rewards.Exit, 0.25, 1)
		if max < 0 {
			dc.SetRGB(shade, 0, 0)
		} else {
			dc.SetRGB(0, shade, 0)
		}

		x, y := center(cell)
		for _, i := range greedy {
			dx, dy := direction(actions[i])
			dc.DrawLine(x, y, x+dx*CellSize/3, y+dy*CellSize/3)
			dc.Stroke()
		}
		dc.DrawCircle(x, y, CellSize/10)
		dc.Fill()
	}

	if err := dc.SavePNG(m.renderPath); err != nil {
		return fmt.Errorf("renderQ: could not save image: %v", err)
	}
	return nil
}

// draw draws the layout and exit of the maze
func (m *Maze) draw() *gg.Context {
	width, height := float64(m.cols)*CellSize, float64(m.rows)*CellSize
	dc := gg.NewContext(int(width), int(height))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if m.layout.At(r, c) != Wall {
				continue
			}
			dc.DrawRectangle(float64(c)*CellSize, float64(r)*CellSize,
				CellSize, CellSize)
		}
	}
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.Fill()

	dc.DrawRectangle(float64(m.exit.Col)*CellSize,
		float64(m.exit.Row)*CellSize, CellSize, CellSize)
	dc.SetRGB(0.5, 0.8, 0.5)
	dc.Fill()

	// Grid
	dc.SetRGB(0.8, 0.8, 0.8)
	dc.SetLineWidth(1)
	for c := 0; c <= m.cols; c++ {
		dc.DrawLine(float64(c)*CellSize, 0, float64(c)*CellSize, height)
	}
	for r := 0; r <= m.rows; r++ {
		dc.DrawLine(0, float64(r)*CellSize, width, float64(r)*CellSize)
	}
	dc.Stroke()

	dc.SetLineWidth(3)
	return dc
}

func center(c env.Cell) (float64, float64) {
	return (float64(c.Col) + 0.5) * CellSize, (float64(c.Row) + 0.5) * CellSize
}

// direction returns the unit image-space direction of an action
func direction(a env.Action) (float64, float64) {
	switch a {
	case MoveLeft:
		return -1, 0
	case MoveRight:
		return 1, 0
	case MoveUp:
		return 0, -1
	default:
		return 0, 1
	}
}
