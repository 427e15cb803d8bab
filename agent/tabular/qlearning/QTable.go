package qlearning

import (
	"github.com/samuelfneumann/qmaze/agent"
	"github.com/samuelfneumann/qmaze/environment"
)

func init() {
	agent.Register(agent.QTableModel, func(env environment.Environment,
		seed uint64, opts ...agent.Option) (agent.Agent, error) {
		q, err := NewQTable(env, seed, opts...)
		if err != nil {
			return nil, err
		}
		return q, nil
	})
}

// QTable implements one-step tabular Q-Learning.
//
// After each transition (s, a, r, s') the value of (s, a) moves towards
// the target r + γ max_a' Q(s', a') by a fraction α of the TD error.
type QTable struct {
	*model
}

// NewQTable creates a new QTable agent on env. The seed initializes the
// random number generator used for exploration, tie-breaking, and
// sampling start cells.
func NewQTable(env environment.Environment, seed uint64,
	opts ...agent.Option) (*QTable, error) {
	m, err := newModel(string(agent.QTableModel), env, seed, opts...)
	if err != nil {
		return nil, err
	}
	return &QTable{m}, nil
}

// Train trains the agent
func (q *QTable) Train(stopAtConvergence bool,
	h agent.Hyperparameters) (*agent.Result, error) {
	return q.train(stopAtConvergence, h, q)
}

func (q *QTable) beginEpisode() {}

func (q *QTable) update(t transition, h agent.Hyperparameters) {
	target := t.reward + h.Discount*q.table.MaxQ(t.next)
	tdError := target - q.table.At(t.state, t.action)
	q.table.Add(t.state, t.action, h.LearningRate*tdError)
}
