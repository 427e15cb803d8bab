// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Status classifies the result of the latest environment step. Win and
// Lose are terminal, Playing means the episode continues.
type Status int

const (
	Playing Status = iota
	Win
	Lose
)

func (s Status) String() string {
	switch s {
	case Win:
		return "Win"
	case Lose:
		return "Lose"
	default:
		return "Playing"
	}
}

// Terminal returns whether the status ends an episode
func (s Status) Terminal() bool {
	return s == Win || s == Lose
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	Status      Status
	Reward      float64
	Observation mat.Vector
	Number      int
}

// New returns a new TimeStep
func New(s Status, r float64, o mat.Vector, n int) TimeStep {
	return TimeStep{Status: s, Reward: r, Observation: o, Number: n}
}

// First returns whether a TimeStep is the first in an episode
func (t TimeStep) First() bool {
	return t.Number == 0
}

// Last returns whether a TimeStep is the last in an episode
func (t TimeStep) Last() bool {
	return t.Status.Terminal()
}

func (t TimeStep) String() string {
	str := "TimeStep | Status: %v  |  Reward:  %.2f  |  Step Number:  %v"

	return fmt.Sprintf(str, t.Status, t.Reward, t.Number)
}
