package agent

import (
	"fmt"
	"math"
)

// Default hyperparameter values
const (
	DefaultDiscount              float64 = 0.90
	DefaultExplorationRate       float64 = 0.10
	DefaultExplorationDecay      float64 = 0.995
	DefaultLearningRate          float64 = 0.10
	DefaultEligibilityDecay      float64 = 0.80
	DefaultEpisodes              int     = 1000
	DefaultCheckConvergenceEvery int     = 5
)

// Hyperparameters configures a call to Trainer.Train
type Hyperparameters struct {
	// Discount (γ) is the preference for future rewards
	Discount float64 `mapstructure:"discount" json:"discount"`

	// ExplorationRate (ε) is the probability of taking a random action
	ExplorationRate float64 `mapstructure:"exploration-rate" json:"exploration_rate"`

	// ExplorationDecay scales ExplorationRate after each episode
	ExplorationDecay float64 `mapstructure:"exploration-decay" json:"exploration_decay"`

	// LearningRate (α) is the step size of each update
	LearningRate float64 `mapstructure:"learning-rate" json:"learning_rate"`

	// EligibilityDecay (λ) is the eligibility trace decay rate per
	// step. Agents without a trace ignore it.
	EligibilityDecay float64 `mapstructure:"eligibility-decay" json:"eligibility_decay"`

	// Episodes is the number of training episodes. Values below 1
	// train for a single episode.
	Episodes int `mapstructure:"episodes" json:"episodes"`

	// CheckConvergenceEvery is the number of episodes between two
	// convergence checks
	CheckConvergenceEvery int `mapstructure:"check-convergence-every" json:"check_convergence_every"`
}

// DefaultHyperparameters returns the default Hyperparameters
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		Discount:              DefaultDiscount,
		ExplorationRate:       DefaultExplorationRate,
		ExplorationDecay:      DefaultExplorationDecay,
		LearningRate:          DefaultLearningRate,
		EligibilityDecay:      DefaultEligibilityDecay,
		Episodes:              DefaultEpisodes,
		CheckConvergenceEvery: DefaultCheckConvergenceEvery,
	}
}

// Validate ensures that the Hyperparameters are valid. A non-positive
// episode count is valid and is clamped by Train.
func (h Hyperparameters) Validate() error {
	if math.IsNaN(h.Discount) {
		return fmt.Errorf("discount cannot be NaN")
	}
	if h.Discount < 0 {
		return fmt.Errorf("discount cannot be lower than 0")
	}
	if math.IsNaN(h.ExplorationRate) {
		return fmt.Errorf("exploration rate cannot be NaN")
	}
	if h.ExplorationRate < 0 {
		return fmt.Errorf("exploration rate cannot be lower than 0")
	}
	if math.IsNaN(h.ExplorationDecay) {
		return fmt.Errorf("exploration decay cannot be NaN")
	}
	if h.ExplorationDecay < 0 {
		return fmt.Errorf("exploration decay cannot be lower than 0")
	}
	if math.IsNaN(h.LearningRate) {
		return fmt.Errorf("learning rate cannot be NaN")
	}
	if h.LearningRate < 0 {
		return fmt.Errorf("learning rate cannot be lower than 0")
	}
	if math.IsNaN(h.EligibilityDecay) {
		return fmt.Errorf("eligibility decay cannot be NaN")
	}
	if h.EligibilityDecay < 0 {
		return fmt.Errorf("eligibility decay cannot be lower than 0")
	}
	if h.CheckConvergenceEvery < 1 {
		return fmt.Errorf("convergence check interval must be positive, "+
			"have %d", h.CheckConvergenceEvery)
	}
	return nil
}
