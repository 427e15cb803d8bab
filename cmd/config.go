package cmd

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samuelfneumann/qmaze/agent"
	"github.com/samuelfneumann/qmaze/environment/maze"
	"github.com/samuelfneumann/qmaze/experiment"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ReadConfig returns the experiment configuration. Values are read from
// flags, QMAZE_* environment variables and the config file, in that
// order of precedence, on top of the default configuration.
func ReadConfig() (experiment.Config, error) {
	cfg := experiment.DefaultConfig()

	// If a config file is given, read it in
	if file := viper.GetString("config"); file != "" {
		viper.SetConfigFile(file)
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("readConfig: could not read config "+
				"file: %v", err)
		}
	}

	// Set the prefix for vars so we get only the ones starting with QMAZE
	viper.SetEnvPrefix("QMAZE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.DecodeHookFuncType(agentTypeHook),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := viper.Unmarshal(&cfg, viper.DecodeHook(hook)); err != nil {
		return cfg, fmt.Errorf("readConfig: could not decode config: %v", err)
	}
	return cfg, nil
}

// agentTypeHook decodes model names case insensitively into registered
// agent types
func agentTypeHook(from, to reflect.Type, data interface{}) (interface{},
	error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(agent.Type("")) {
		return data, nil
	}

	name := data.(string)
	for _, t := range agent.Registered() {
		if strings.EqualFold(string(t), name) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("unknown model %q", name)
}

// NewLogger returns a logger writing to out, honouring the debug and
// quiet settings
func NewLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()

	if viper.GetBool("debug") {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	if viper.GetBool("quiet") {
		logger.SetOutput(io.Discard)
	} else {
		logger.SetOutput(out)
	}
	return logger
}

// newMaze creates the maze of the configured layout
func newMaze(opts ...maze.Option) (*maze.Maze, error) {
	name := viper.GetString("layout")
	layout, err := maze.Layout(name)
	if err != nil {
		return nil, err
	}
	return maze.New(layout, opts...)
}
