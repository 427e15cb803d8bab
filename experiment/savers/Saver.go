// Package savers implements Savers, which track and save data in an
// experiment
package savers

import "github.com/samuelfneumann/qmaze/agent"

// Interface Saver keeps track of the experiment data and saves the data
// after the experiment has finished
type Saver interface {
	Track(r *agent.Result)
	Save() error
}
