// Package qlearning implements tabular Q-Learning.
//
// Two agents are provided. QTable performs the one-step Q-Learning
// update on the (state, action) pair of each transition. QTableTrace
// additionally keeps an eligibility trace of the pairs visited during
// the current episode and applies each TD error to all of them,
// weighted by their recency credit, approximating Q(λ).
//
// Both agents learn off-policy with an ε-greedy behaviour policy and
// a greedy target policy which breaks ties uniformly at random.
package qlearning

import (
	"fmt"
	"time"

	"github.com/samuelfneumann/qmaze/agent"
	"github.com/samuelfneumann/qmaze/environment"
	"github.com/samuelfneumann/qmaze/timestep"
	"github.com/samuelfneumann/qmaze/utils/floatutils"
	"github.com/samuelfneumann/qmaze/utils/intutils"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
)

// transition is a single (s, a, r, s') experience. The action is
// stored as its ordinal in the environment's action set.
type transition struct {
	state  environment.State
	action int
	reward float64
	next   environment.State
}

// updater implements the learning rule of an agent
type updater interface {
	// beginEpisode is called before the first step of each episode
	beginEpisode()

	// update learns from a single transition
	update(t transition, h agent.Hyperparameters)
}

// model implements the table queries, the behaviour policy and the
// episode loop shared by all tabular Q-Learning agents
type model struct {
	name  string
	env   environment.Environment
	table *Table
	rng   *rand.Rand

	// epsilon is the current exploration rate
	epsilon float64

	log         logrus.FieldLogger
	episodeHook func(agent.Episode)
}

func newModel(name string, env environment.Environment, seed uint64,
	opts ...agent.Option) (*model, error) {
	actions := env.Actions()
	if len(actions) == 0 {
		return nil, fmt.Errorf("new: environment has no actions")
	}

	settings := agent.NewSettings(opts...)

	return &model{
		name:        name,
		env:         env,
		table:       NewTable(actions),
		rng:         rand.New(rand.NewSource(seed)),
		epsilon:     agent.DefaultExplorationRate,
		log:         settings.Logger.WithField("model", name),
		episodeHook: settings.EpisodeHook,
	}, nil
}

// Q returns the action values of a state in the environment's action
// order. Actions never updated in the state have value 0.
func (m *model) Q(s environment.State) []float64 {
	return m.table.Q(s)
}

// Predict returns the greedy action in a state. If multiple actions
// share the maximum value, one of them is chosen uniformly at random.
func (m *model) Predict(s environment.State) environment.Action {
	q := m.table.Q(s)
	m.log.Debugf("q[] = %v", q)

	_, greedy := floatutils.MaxSlice(q)
	return m.table.actions[greedy[m.rng.Intn(len(greedy))]]
}

// Snapshot returns a copy of all stored action values
func (m *model) Snapshot() []agent.ActionValue {
	return m.table.Snapshot()
}

// ExplorationRate returns the current ε of the behaviour policy
func (m *model) ExplorationRate() float64 {
	return m.epsilon
}

// selectAction selects an action from the ε-greedy behaviour policy
func (m *model) selectAction(s environment.State) environment.Action {
	if m.rng.Float64() < m.epsilon {
		actions := m.table.actions
		return actions[m.rng.Intn(len(actions))]
	}
	return m.Predict(s)
}

// train plays training episodes, calling u to learn from each
// transition
func (m *model) train(stopAtConvergence bool, h agent.Hyperparameters,
	u updater) (*agent.Result, error) {
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("train: invalid hyperparameters: %v", err)
	}
	startCells := m.env.StartCells()
	if len(startCells) == 0 {
		return nil, fmt.Errorf("train: environment has no start cells")
	}

	episodes := intutils.Max(h.Episodes, 1)
	m.epsilon = h.ExplorationRate

	renderer, render := m.env.(environment.QRenderer)
	starts := environment.NewStartPool(startCells, m.rng)

	result := &agent.Result{}
	cumulativeReward := 0.0
	startTime := time.Now()

	for episode := 1; episode <= episodes; episode++ {
		result.Episodes = episode

		step, err := m.env.Reset(starts.Start())
		if err != nil {
			return nil, fmt.Errorf("train: could not reset environment: %v",
				err)
		}
		state := environment.NewState(step.Observation)
		u.beginEpisode()

		var status timestep.Status
		for {
			action := m.selectAction(state)

			next, err := m.env.Step(action)
			if err != nil {
				return nil, fmt.Errorf("train: could not step environment: "+
					"%v", err)
			}
			nextState := environment.NewState(next.Observation)
			cumulativeReward += next.Reward

			u.update(transition{
				state:  state,
				action: m.table.Ordinal(action),
				reward: next.Reward,
				next:   nextState,
			}, h)

			status = next.Status
			if status.Terminal() {
				break
			}
			state = nextState

			if render {
				if err := renderer.RenderQ(m); err != nil {
					m.log.Warnf("could not render q: %v", err)
				}
			}
		}

		result.CumulativeRewards = append(result.CumulativeRewards,
			cumulativeReward)

		m.log.WithFields(logrus.Fields{
			"episode": fmt.Sprintf("%d/%d", episode, episodes),
			"status":  status,
			"e":       fmt.Sprintf("%.5f", m.epsilon),
		}).Info("episode finished")

		if m.episodeHook != nil {
			m.episodeHook(agent.Episode{
				Number:           episode,
				Status:           status,
				ExplorationRate:  m.epsilon,
				CumulativeReward: cumulativeReward,
			})
		}

		if episode%h.CheckConvergenceEvery == 0 {
			// Only possible since there is a finite number of start cells
			wonAll, winRate, err := m.env.CheckWinAll(m)
			if err != nil {
				return nil, fmt.Errorf("train: could not check convergence: "+
					"%v", err)
			}
			result.WinHistory = append(result.WinHistory, agent.WinRate{
				Episode: episode,
				Rate:    winRate,
			})
			if wonAll && stopAtConvergence {
				m.log.Info("won from all start cells, stop learning")
				break
			}
		}

		m.epsilon *= h.ExplorationDecay
	}

	result.Elapsed = time.Since(startTime)
	m.log.Infof("episodes: %d | time spent: %v", result.Episodes,
		result.Elapsed)

	return result, nil
}
