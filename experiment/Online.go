package experiment

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/samuelfneumann/qmaze/agent"
	env "github.com/samuelfneumann/qmaze/environment"
	"github.com/samuelfneumann/qmaze/experiment/savers"
)

// Online is an Experiment that trains an agent online only. The learned
// policy is evaluated only through the convergence checks of training.
type Online struct {
	env.Environment
	agent  agent.Agent
	config Config
	savers []savers.Saver
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The s parameter is a slice of
// savers.Saver which determine what data is saved.
func NewOnline(e env.Environment, a agent.Agent, c Config,
	s ...savers.Saver) *Online {
	return &Online{e, a, c, s}
}

// Register registers a saver.Saver with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(s savers.Saver) {
	o.savers = append(o.savers, s)
}

// Agent returns the agent trained by the experiment
func (o *Online) Agent() agent.Agent {
	return o.agent
}

// Run trains the agent and caches its training history in each Saver
func (o *Online) Run() (*agent.Result, error) {
	result, err := o.agent.Train(o.config.StopAtConvergence,
		o.config.Hyperparameters)
	if err != nil {
		return nil, fmt.Errorf("run: %v", err)
	}

	o.track(result)
	return result, nil
}

// Save saves the data cached by the Savers to disk. Every Saver is
// run, and the errors of all failing Savers are returned together.
func (o *Online) Save() error {
	var errs error
	for _, saver := range o.savers {
		if err := saver.Save(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("save: %v", err))
		}
	}
	return errs
}

// track caches the training history in each saver
func (o *Online) track(r *agent.Result) {
	for _, saver := range o.savers {
		saver.Track(r)
	}
}
