package qlearning

import "github.com/samuelfneumann/qmaze/environment"

// stateAction is a key of an eligibility trace
type stateAction struct {
	state  environment.State
	action int
}

// eligibilityTrace stores the recency credit of each (state, action)
// pair visited in the current episode
type eligibilityTrace map[stateAction]float64

// visit adds one unit of credit to a pair, which enters the trace with
// a credit of 1 on its first visit
func (e eligibilityTrace) visit(k stateAction) {
	e[k]++
}

// decay scales the credit of every pair by rate
func (e eligibilityTrace) decay(rate float64) {
	for k := range e {
		e[k] *= rate
	}
}
