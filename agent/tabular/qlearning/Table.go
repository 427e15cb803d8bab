package qlearning

import (
	"fmt"
	"sort"

	"github.com/samuelfneumann/qmaze/agent"
	"github.com/samuelfneumann/qmaze/environment"
	"gonum.org/v1/gonum/floats"
)

// Table is a sparse table of action values. Each visited state maps to
// a row of values indexed by the ordinal of the action in the
// environment's action set. Missing rows are implicitly all zero and
// rows are never removed.
type Table struct {
	actions []environment.Action
	index   map[environment.Action]int
	values  map[environment.State][]float64
}

// NewTable returns an empty Table over the argument ordered action set
func NewTable(actions []environment.Action) *Table {
	a := make([]environment.Action, len(actions))
	copy(a, actions)

	index := make(map[environment.Action]int, len(a))
	for i, action := range a {
		index[action] = i
	}

	return &Table{
		actions: a,
		index:   index,
		values:  make(map[environment.State][]float64),
	}
}

// Actions returns the ordered action set of the Table
func (t *Table) Actions() []environment.Action {
	return t.actions
}

// Ordinal returns the index of an action in the action set. Ordinal
// panics if the action is not in the set.
func (t *Table) Ordinal(a environment.Action) int {
	i, ok := t.index[a]
	if !ok {
		panic(fmt.Sprintf("ordinal: unknown action %v", a))
	}
	return i
}

// Q returns a copy of the action values of a state
func (t *Table) Q(s environment.State) []float64 {
	q := make([]float64, len(t.actions))
	if row, ok := t.values[s]; ok {
		copy(q, row)
	}
	return q
}

// At returns the value of the action with the argument ordinal in s
func (t *Table) At(s environment.State, action int) float64 {
	if row, ok := t.values[s]; ok {
		return row[action]
	}
	return 0.0
}

// MaxQ returns the maximum action value in a state, using 0.0 for
// actions that were never updated
func (t *Table) MaxQ(s environment.State) float64 {
	if row, ok := t.values[s]; ok {
		return floats.Max(row)
	}
	return 0.0
}

// Add adds delta to the value of the action with the argument ordinal
// in s, creating the state's row if needed
func (t *Table) Add(s environment.State, action int, delta float64) {
	row, ok := t.values[s]
	if !ok {
		row = make([]float64, len(t.actions))
		t.values[s] = row
	}
	row[action] += delta
}

// States returns the number of states stored in the Table
func (t *Table) States() int {
	return len(t.values)
}

// Snapshot returns a copy of every stored action value, ordered by
// state and then by action ordinal
func (t *Table) Snapshot() []agent.ActionValue {
	states := make([]environment.State, 0, len(t.values))
	for s := range t.values {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })

	values := make([]agent.ActionValue, 0, len(states)*len(t.actions))
	for _, s := range states {
		for i, v := range t.values[s] {
			values = append(values, agent.ActionValue{
				State:  s,
				Action: t.actions[i],
				Value:  v,
			})
		}
	}
	return values
}
