package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/samuelfneumann/qmaze/agent"
	"github.com/samuelfneumann/qmaze/environment/maze"
	"github.com/samuelfneumann/qmaze/experiment/checkpointer"
	"github.com/samuelfneumann/qmaze/experiment/savers"
	"github.com/samuelfneumann/qmaze/utils/progressbar"
	"github.com/sanity-io/litter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// progressWidth is the width in characters of progress bars
const progressWidth = 40

func NewTrainCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:     "train",
		Args:    cobra.ExactArgs(0),
		Short:   "Train a model in a maze",
		PreRunE: bindFlags,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			cfg, err := ReadConfig()
			if err != nil {
				return err
			}
			logger := NewLogger(cmd.ErrOrStderr())

			var opts []maze.Option
			renderPath := viper.GetString("render-q")
			if renderPath != "" {
				opts = append(opts, maze.WithRenderQ(renderPath))
			}
			m, err := newMaze(opts...)
			if err != nil {
				return err
			}
			logger.Debug(m)
			logger.Debugf("config: %s", litter.Sdump(cfg))

			// Hooks run in order after each training episode
			var hooks []func(agent.Episode)
			agentOpts := []agent.Option{
				agent.WithLogger(logger),
				agent.WithEpisodeHook(func(e agent.Episode) {
					for _, hook := range hooks {
						hook(e)
					}
				}),
			}

			var bar *progressbar.ProgressBar
			if viper.GetBool("progress") {
				bar = progressbar.NewProgressBar(progressWidth,
					cfg.Hyperparameters.Episodes, time.Second, true)
				bar.SetOutput(cmd.OutOrStdout())
				agentOpts = append(agentOpts,
					agent.WithLogger(agent.NewNullLogger()))
				hooks = append(hooks, func(agent.Episode) { bar.Increment() })
			}

			exp, err := cfg.CreateExp(m, nil, agentOpts...)
			if err != nil {
				return err
			}

			if prefix := viper.GetString("checkpoint"); prefix != "" {
				snapshotter, ok := exp.Agent().(agent.Snapshotter)
				if !ok {
					return fmt.Errorf("train: %v cannot be checkpointed",
						cfg.Agent)
				}
				ckpt := checkpointer.NewNEpisode(
					viper.GetInt("checkpoint-every"), snapshotter,
					checkpointer.FilenameEnumerator(0, prefix, ".parquet"))
				hooks = append(hooks, func(e agent.Episode) {
					if err := ckpt.Checkpoint(e); err != nil {
						logger.Warnf("could not checkpoint: %v", err)
					}
				})
			}

			if path := viper.GetString("history"); path != "" {
				history := savers.NewHistory(path)
				history.SetMetadata("model", string(cfg.Agent))
				history.SetMetadata("layout", viper.GetString("layout"))
				history.SetMetadata("seed", fmt.Sprint(cfg.Seed))
				exp.Register(history)
			}

			if bar != nil {
				bar.Display()
			}
			result, err := exp.Run()
			if bar != nil {
				bar.Close()
			}
			if err != nil {
				return err
			}

			if err := exp.Save(); err != nil {
				return err
			}

			// Draw the final greedy policy
			if err := m.RenderQ(exp.Agent()); err != nil {
				logger.Warnf("could not render q: %v", err)
			}

			rate, checked := result.FinalWinRate()
			fields := logrus.Fields{
				"model":    cfg.Agent,
				"episodes": result.Episodes,
				"elapsed":  result.Elapsed,
			}
			if checked {
				fields["win-rate"] = rate
			}
			logger.WithFields(fields).Info("training finished")

			fmt.Fprintln(cmd.OutOrStdout(), summary(cfg.Agent, result))
			return nil
		},
	}
	root.AddCommand(c)

	c.Flags().String("model", string(agent.QTableModel),
		fmt.Sprintf("Model to train (%s)", strings.Join(modelNames(), "|")))
	c.Flags().String("history", "", "Save the training history to a "+
		"parquet file")
	c.Flags().String("render-q", "", "Draw the greedy policy to a PNG file")
	c.Flags().String("checkpoint", "", "Save action values to parquet "+
		"files with this path prefix")
	c.Flags().Int("checkpoint-every", 100, "Episodes between checkpoints")
	addMazeFlags(c)
	addHyperparameterFlags(c.Flags())
	return c
}

// summary returns a one line summary of a training run
func summary(t agent.Type, r *agent.Result) string {
	rate := "n/a"
	if winRate, ok := r.FinalWinRate(); ok {
		rate = fmt.Sprintf("%.3f", winRate)
	}
	return fmt.Sprintf("%s | episodes: %d | win rate: %s | time spent: %v",
		t, r.Episodes, rate, r.Elapsed.Truncate(time.Millisecond))
}

func modelNames() []string {
	var names []string
	for _, t := range agent.Registered() {
		names = append(names, string(t))
	}
	return names
}

// register the subcommand into rootCmd
var _ = NewTrainCmd(rootCmd)
