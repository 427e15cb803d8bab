package qlearning

import (
	"github.com/samuelfneumann/qmaze/agent"
	"github.com/samuelfneumann/qmaze/environment"
)

func init() {
	agent.Register(agent.QTableTraceModel, func(env environment.Environment,
		seed uint64, opts ...agent.Option) (agent.Agent, error) {
		q, err := NewQTableTrace(env, seed, opts...)
		if err != nil {
			return nil, err
		}
		return q, nil
	})
}

// QTableTrace implements tabular Q-Learning with an eligibility trace.
//
// The trace records the (state, action) pairs visited in the current
// episode. Each TD error is applied to every pair in the trace in
// proportion to its credit, and all credit decays by γλ per step.
type QTableTrace struct {
	*model
	trace eligibilityTrace
}

// NewQTableTrace creates a new QTableTrace agent on env. The seed
// initializes the random number generator used for exploration,
// tie-breaking, and sampling start cells.
func NewQTableTrace(env environment.Environment, seed uint64,
	opts ...agent.Option) (*QTableTrace, error) {
	m, err := newModel(string(agent.QTableTraceModel), env, seed, opts...)
	if err != nil {
		return nil, err
	}
	return &QTableTrace{model: m, trace: make(eligibilityTrace)}, nil
}

// Train trains the agent
func (q *QTableTrace) Train(stopAtConvergence bool,
	h agent.Hyperparameters) (*agent.Result, error) {
	return q.train(stopAtConvergence, h, q)
}

func (q *QTableTrace) beginEpisode() {
	q.trace = make(eligibilityTrace)
}

func (q *QTableTrace) update(t transition, h agent.Hyperparameters) {
	q.trace.visit(stateAction{t.state, t.action})

	target := t.reward + h.Discount*q.table.MaxQ(t.next)
	delta := target - q.table.At(t.state, t.action)

	for k, e := range q.trace {
		q.table.Add(k.state, k.action, h.LearningRate*delta*e)
	}
	q.trace.decay(h.Discount * h.EligibilityDecay)
}
