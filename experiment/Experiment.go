// Package experiment implements functionality for running an experiment
package experiment

import (
	"fmt"

	"github.com/samuelfneumann/qmaze/agent"
	env "github.com/samuelfneumann/qmaze/environment"
	"github.com/samuelfneumann/qmaze/experiment/savers"
)

// Interface Experiment outlines structs that can run experiments.
// The Run() method trains an agent until its episode budget is spent or
// it converges, and sends the training history to each Saver. The
// Save() function then takes all cached data and saves it to disk.
//
// New Savers can be registered with an Experiment through the
// constructor or through an Experiment's Register() function.
type Experiment interface {
	Run() (*agent.Result, error)

	// Save all tracked data to disk
	Save() error

	// Adds a new savers.Saver to the experiment
	Register(s savers.Saver)
}

// Config represents a configuration of an experiment
type Config struct {
	Agent             agent.Type `mapstructure:"model" json:"model"`
	Seed              uint64     `mapstructure:"seed" json:"seed"`
	StopAtConvergence bool       `mapstructure:"stop-at-convergence" json:"stop_at_convergence"`

	Hyperparameters agent.Hyperparameters `mapstructure:",squash" json:"hyperparameters"`
}

// DefaultConfig returns a Config for a QTableModel with the default
// hyperparameters
func DefaultConfig() Config {
	return Config{
		Agent:           agent.QTableModel,
		Hyperparameters: agent.DefaultHyperparameters(),
	}
}

// CreateExp creates the configured agent on e and returns an Online
// experiment that trains it
func (c Config) CreateExp(e env.Environment, s []savers.Saver,
	opts ...agent.Option) (*Online, error) {
	a, err := agent.Create(c.Agent, e, c.Seed, opts...)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create agent: %v", err)
	}

	return NewOnline(e, a, c, s...), nil
}

// Run trains the configured agent on e and returns its training history
func Run(e env.Environment, c Config, opts ...agent.Option) (*agent.Result,
	error) {
	exp, err := c.CreateExp(e, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("run: %v", err)
	}
	return exp.Run()
}
