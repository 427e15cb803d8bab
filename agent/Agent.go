// Package agent defines an agent interface
package agent

import (
	"time"

	"github.com/samuelfneumann/qmaze/environment"
)

// Agent determines the implementation details of a tabular agent.
//
// An Agent is a Policy over the states of an environment whose action
// values are learned through Train. Predict and Q may be queried both
// during training and afterwards to deploy the learned policy.
type Agent interface {
	environment.QFunc
	Trainer
}

// Trainer implements a learning algorithm that plays episodes in an
// environment and updates its action values
type Trainer interface {
	// Train plays episodes until the episode budget is spent, or,
	// if stopAtConvergence is set, until the greedy policy wins from
	// every start cell at a convergence check.
	Train(stopAtConvergence bool, h Hyperparameters) (*Result, error)
}

// WinRate is a win rate sample taken at a convergence check
type WinRate struct {
	Episode int
	Rate    float64
}

// Result is the training history of a call to Train
type Result struct {
	// CumulativeRewards holds the running total of all rewards seen
	// during training, sampled at the end of each episode
	CumulativeRewards []float64

	// WinHistory holds one sample per convergence check
	WinHistory []WinRate

	Episodes int
	Elapsed  time.Duration
}

// FinalWinRate returns the last sampled win rate, or false if no
// convergence check ran
func (r *Result) FinalWinRate() (float64, bool) {
	if len(r.WinHistory) == 0 {
		return 0, false
	}
	return r.WinHistory[len(r.WinHistory)-1].Rate, true
}

// ActionValue is a single entry of a tabular action-value function
type ActionValue struct {
	State  environment.State
	Action environment.Action
	Value  float64
}

// Snapshotter is an agent whose action values can be copied out
type Snapshotter interface {
	Snapshot() []ActionValue
}
