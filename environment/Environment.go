// Package environment outlines the interfaces and structs needed to
// implement concrete grid environments that tabular agents can learn on
package environment

import (
	"github.com/samuelfneumann/qmaze/timestep"
)

// Action is a member of the finite, ordered action set of an
// environment. Agents treat it as an opaque token.
type Action int

// Cell is a (column, row) coordinate in a grid environment
type Cell struct {
	Col, Row int
}

// Policy selects an action in a state
type Policy interface {
	Predict(s State) Action
}

// QFunc is a Policy that can also report the value of each action in a
// state, indexed in the environment's action order
type QFunc interface {
	Policy
	Q(s State) []float64
}

// Environment implements a discrete grid environment with a finite set
// of valid starting cells
type Environment interface {
	// Actions returns the ordered action set, which must be stable
	// across calls
	Actions() []Action

	// StartCells returns the cells an episode may start from. Callers
	// must not modify the returned slice.
	StartCells() []Cell

	// Reset starts a new episode from the argument cell
	Reset(start Cell) (timestep.TimeStep, error)

	// Step takes an action in the environment
	Step(a Action) (timestep.TimeStep, error)

	// CheckWinAll plays the policy greedily from every start cell and
	// returns whether every game was won together with the win rate
	CheckWinAll(p Policy) (bool, float64, error)
}

// QRenderer is an Environment that can visualize the value function of
// an agent. RenderQ must not modify the agent.
type QRenderer interface {
	RenderQ(q QFunc) error
}
