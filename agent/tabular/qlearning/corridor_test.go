package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/qmaze/environment"
	ts "github.com/samuelfneumann/qmaze/timestep"
	"gonum.org/v1/gonum/mat"
)

const (
	left environment.Action = iota
	right
)

// corridor is a 1-dimensional environment of length cells. The exit is
// the rightmost cell and every other cell is a start cell. Episodes are
// lost after maxSteps steps.
type corridor struct {
	length   int
	maxSteps int

	position int
	steps    int

	// Counters used by tests
	resets  int
	stepped int
	renders int

	stepErr error
}

func newCorridor(length, maxSteps int) *corridor {
	return &corridor{length: length, maxSteps: maxSteps}
}

func (c *corridor) Actions() []environment.Action {
	return []environment.Action{left, right}
}

func (c *corridor) StartCells() []environment.Cell {
	cells := make([]environment.Cell, 0, c.length-1)
	for i := 0; i < c.length-1; i++ {
		cells = append(cells, environment.Cell{Col: i})
	}
	return cells
}

func (c *corridor) observe() mat.Vector {
	obs := mat.NewVecDense(c.length, nil)
	obs.SetVec(c.position, 1.0)
	return obs
}

func (c *corridor) Reset(start environment.Cell) (ts.TimeStep, error) {
	if start.Col < 0 || start.Col >= c.length {
		return ts.TimeStep{}, fmt.Errorf("reset: cell %v outside corridor",
			start)
	}
	c.resets++
	c.position = start.Col
	c.steps = 0
	return ts.New(ts.Playing, 0, c.observe(), 0), nil
}

func (c *corridor) Step(a environment.Action) (ts.TimeStep, error) {
	if c.stepErr != nil {
		return ts.TimeStep{}, c.stepErr
	}
	c.stepped++
	c.steps++

	switch a {
	case left:
		if c.position > 0 {
			c.position--
		}
	case right:
		c.position++
	default:
		return ts.TimeStep{}, fmt.Errorf("step: unknown action %v", a)
	}

	reward, status := -0.1, ts.Playing
	if c.position == c.length-1 {
		reward, status = 1.0, ts.Win
	} else if c.steps >= c.maxSteps {
		status = ts.Lose
	}
	return ts.New(status, reward, c.observe(), c.steps), nil
}

func (c *corridor) play(p environment.Policy,
	start environment.Cell) (ts.Status, error) {
	step, err := c.Reset(start)
	if err != nil {
		return ts.Playing, err
	}
	for {
		step, err = c.Step(p.Predict(environment.NewState(step.Observation)))
		if err != nil {
			return ts.Playing, err
		}
		if step.Last() {
			return step.Status, nil
		}
	}
}

func (c *corridor) CheckWinAll(p environment.Policy) (bool, float64, error) {
	win, lose := 0, 0
	for _, cell := range c.StartCells() {
		status, err := c.play(p, cell)
		if err != nil {
			return false, 0, err
		}
		if status == ts.Win {
			win++
		} else {
			lose++
		}
	}
	return lose == 0, float64(win) / float64(win+lose), nil
}

// renderingCorridor is a corridor that implements QRenderer
type renderingCorridor struct {
	*corridor
}

func (r renderingCorridor) RenderQ(environment.QFunc) error {
	r.renders++
	return nil
}

// noStarts is a corridor without any start cells
type noStarts struct {
	*corridor
}

func (noStarts) StartCells() []environment.Cell {
	return nil
}

// noActions is a corridor without any actions
type noActions struct {
	*corridor
}

func (noActions) Actions() []environment.Action {
	return nil
}
