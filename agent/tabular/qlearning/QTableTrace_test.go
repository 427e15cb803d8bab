package qlearning

import (
	"math"
	"reflect"
	"testing"

	"github.com/samuelfneumann/qmaze/agent"
	"github.com/samuelfneumann/qmaze/environment"
)

func TestEligibilityTraceAccumulatesRevisits(t *testing.T) {
	s0, s1 := environment.State("s0"), environment.State("s1")
	visits := []stateAction{{s0, 0}, {s1, 1}, {s0, 0}}

	for _, rate := range []float64{1.0, 0.72} {
		e := make(eligibilityTrace)
		for i, k := range visits {
			e.visit(k)
			if i == len(visits)-1 {
				want := 1 + rate*rate
				if have := e[k]; math.Abs(have-want) > tolerance {
					t.Errorf("rate %v: credit after revisit = %v, want %v",
						rate, have, want)
				}
			}
			e.decay(rate)
		}
	}
}

func TestQTableTraceRevisitCount(t *testing.T) {
	q, err := NewQTableTrace(newCorridor(4, 20), 1)
	if err != nil {
		t.Fatal(err)
	}

	h := agent.DefaultHyperparameters()
	h.Discount, h.EligibilityDecay = 1.0, 1.0

	s0, s1, s2 := environment.State("s0"), environment.State("s1"),
		environment.State("s2")
	q.beginEpisode()
	q.update(transition{state: s0, action: 0, next: s1}, h)
	q.update(transition{state: s1, action: 1, next: s0}, h)
	q.update(transition{state: s0, action: 0, next: s2}, h)

	if have := q.trace[stateAction{s0, 0}]; have != 2 {
		t.Errorf("trace of revisited pair = %v, want 2", have)
	}
	if have := q.trace[stateAction{s1, 1}]; have != 1 {
		t.Errorf("trace of single visit = %v, want 1", have)
	}
}

func TestQTableTraceUpdatesAllTracedPairs(t *testing.T) {
	q, err := NewQTableTrace(newCorridor(4, 20), 1)
	if err != nil {
		t.Fatal(err)
	}

	h := agent.DefaultHyperparameters()
	h.Discount, h.EligibilityDecay, h.LearningRate = 0.9, 0.8, 0.1

	s0, s1, s2 := environment.State("s0"), environment.State("s1"),
		environment.State("s2")
	q.beginEpisode()

	// Zero TD error leaves the table unchanged
	q.update(transition{state: s0, action: 0, reward: 0, next: s1}, h)
	if have := q.table.At(s0, 0); have != 0 {
		t.Fatalf("zero TD error changed the table: have %v", have)
	}

	q.update(transition{state: s1, action: 1, reward: 1, next: s2}, h)

	decay := h.Discount * h.EligibilityDecay
	tests := []struct {
		key  stateAction
		want float64
	}{
		{stateAction{s1, 1}, h.LearningRate * 1.0},
		{stateAction{s0, 0}, h.LearningRate * 1.0 * decay},
	}
	for _, test := range tests {
		have := q.table.At(test.key.state, test.key.action)
		if math.Abs(have-test.want) > tolerance {
			t.Errorf("Q%v = %v, want %v", test.key, have, test.want)
		}
	}

	// Credit decays after the update
	want := decay * decay
	if have := q.trace[stateAction{s0, 0}]; math.Abs(have-want) > tolerance {
		t.Errorf("trace of first pair = %v, want %v", have, want)
	}
}

func TestQTableTraceUsesCurrentValueForDelta(t *testing.T) {
	q, err := NewQTableTrace(newCorridor(4, 20), 1)
	if err != nil {
		t.Fatal(err)
	}

	h := agent.DefaultHyperparameters()
	s := environment.State("s")
	q.table.Add(s, 1, 0.4)
	q.beginEpisode()

	// A self transition: the target bootstraps from the pre-update value
	q.update(transition{state: s, action: 1, reward: 0.5, next: s}, h)

	delta := 0.5 + h.Discount*0.4 - 0.4
	want := 0.4 + h.LearningRate*delta
	if have := q.table.At(s, 1); math.Abs(have-want) > tolerance {
		t.Errorf("self transition: want %v, have %v", want, have)
	}
}

func TestQTableTraceResetsTraceEachEpisode(t *testing.T) {
	q, err := NewQTableTrace(newCorridor(4, 20), 1)
	if err != nil {
		t.Fatal(err)
	}

	h := agent.DefaultHyperparameters()
	q.beginEpisode()
	q.update(transition{state: "a", action: 0, next: "b"}, h)
	q.beginEpisode()

	if len(q.trace) != 0 {
		t.Errorf("trace has %d entries at episode start", len(q.trace))
	}
}

func TestQTableTraceIsDeterministicForSeed(t *testing.T) {
	run := func() *agent.Result {
		q, err := NewQTableTrace(newCorridor(6, 40), 77)
		if err != nil {
			t.Fatal(err)
		}
		h := hyperparameters(60)
		h.ExplorationRate = 0.3
		result, err := q.Train(false, h)
		if err != nil {
			t.Fatal(err)
		}
		return result
	}

	first, second := run(), run()
	if !reflect.DeepEqual(first.CumulativeRewards, second.CumulativeRewards) {
		t.Errorf("reward histories differ")
	}
	if !reflect.DeepEqual(first.WinHistory, second.WinHistory) {
		t.Errorf("win histories differ")
	}
}

func BenchmarkQTableTraceTrain(b *testing.B) {
	h := hyperparameters(50)
	h.CheckConvergenceEvery = 1000

	for i := 0; i < b.N; i++ {
		q, err := NewQTableTrace(newCorridor(20, 200), uint64(i))
		if err != nil {
			b.Fatal(err)
		}
		if _, err := q.Train(false, h); err != nil {
			b.Fatal(err)
		}
	}
}
