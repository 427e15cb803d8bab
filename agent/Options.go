package agent

import (
	"io"

	"github.com/samuelfneumann/qmaze/timestep"
	"github.com/sirupsen/logrus"
)

// Episode summarizes a finished training episode
type Episode struct {
	Number           int
	Status           timestep.Status
	ExplorationRate  float64
	CumulativeReward float64
}

// Settings holds the optional collaborators of an Agent
type Settings struct {
	Logger      logrus.FieldLogger
	EpisodeHook func(Episode)
}

// Option modifies the Settings of an Agent on construction
type Option func(*Settings)

// WithLogger sets the logger an agent reports training progress to
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Settings) {
		s.Logger = l
	}
}

// WithEpisodeHook sets a function called after each training episode
func WithEpisodeHook(f func(Episode)) Option {
	return func(s *Settings) {
		s.EpisodeHook = f
	}
}

// NewSettings applies opts on top of the default Settings. By default
// logs are discarded and no episode hook is set.
func NewSettings(opts ...Option) Settings {
	s := Settings{Logger: NewNullLogger()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NewNullLogger returns a logger that discards all logs
func NewNullLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
