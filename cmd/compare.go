package cmd

import (
	"fmt"

	"github.com/samuelfneumann/qmaze/agent"
	"github.com/samuelfneumann/qmaze/experiment"
	"github.com/samuelfneumann/qmaze/utils/progressbar"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewCompareCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:     "compare",
		Args:    cobra.ExactArgs(0),
		Short:   "Train every model in the same maze and compare them",
		PreRunE: bindFlags,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			cfg, err := ReadConfig()
			if err != nil {
				return err
			}
			logger := NewLogger(cmd.ErrOrStderr())

			for _, t := range agent.Registered() {
				m, err := newMaze()
				if err != nil {
					return err
				}

				cfg.Agent = t
				opts := []agent.Option{
					agent.WithLogger(logger.WithField("layout",
						viper.GetString("layout"))),
				}

				var bar *progressbar.ManualProgressBar
				if viper.GetBool("progress") {
					bar = progressbar.NewManualProgressBar(progressWidth,
						cfg.Hyperparameters.Episodes)
					bar.SetOutput(cmd.OutOrStdout())
					opts = []agent.Option{
						agent.WithLogger(agent.NewNullLogger()),
						agent.WithEpisodeHook(func(agent.Episode) {
							bar.Increment()
							bar.Display()
						}),
					}
				}

				result, err := experiment.Run(m, cfg, opts...)
				if bar != nil {
					bar.Finish()
				}
				if err != nil {
					return fmt.Errorf("compare: %s: %v", t, err)
				}

				fields := logrus.Fields{
					"model":    t,
					"episodes": result.Episodes,
					"elapsed":  result.Elapsed,
				}
				if rate, ok := result.FinalWinRate(); ok {
					fields["win-rate"] = rate
				}
				logger.WithFields(fields).Info("model trained")

				fmt.Fprintln(cmd.OutOrStdout(), summary(t, result))
			}
			return nil
		},
	}
	root.AddCommand(c)

	addMazeFlags(c)
	addHyperparameterFlags(c.Flags())
	return c
}

// register the subcommand into rootCmd
var _ = NewCompareCmd(rootCmd)
