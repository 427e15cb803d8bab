package cmd

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/qmaze/agent"
	"github.com/samuelfneumann/qmaze/environment/maze"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// addMazeFlags adds flags selecting the maze to train in
func addMazeFlags(cmd *cobra.Command) {
	cmd.Flags().String("layout", "classic", fmt.Sprintf("Maze layout (%s)",
		strings.Join(maze.Layouts(), "|")))
	cmd.Flags().Uint64("seed", 0, "Seed of the random number generator")
	cmd.Flags().Bool("stop-at-convergence", false,
		"Stop training once the policy wins from every start cell")
	cmd.Flags().Bool("progress", false, "Display a progress bar")
}

// addHyperparameterFlags adds one flag per hyperparameter, defaulting
// to the default hyperparameters
func addHyperparameterFlags(flags *pflag.FlagSet) {
	h := agent.DefaultHyperparameters()
	flags.Float64("discount", h.Discount, "Discount applied to future rewards")
	flags.Float64("exploration-rate", h.ExplorationRate,
		"Initial probability of a random action")
	flags.Float64("exploration-decay", h.ExplorationDecay,
		"Factor applied to the exploration rate after each episode")
	flags.Float64("learning-rate", h.LearningRate, "Step size of updates")
	flags.Float64("eligibility-decay", h.EligibilityDecay,
		"Decay of the eligibility trace")
	flags.Int("episodes", h.Episodes, "Maximum number of episodes")
	flags.Int("check-convergence-every", h.CheckConvergenceEvery,
		"Episodes between convergence checks")
}

// bindFlags binds the flags of the command being run to viper. Binding
// at run time lets commands share flag names.
func bindFlags(cmd *cobra.Command, _ []string) error {
	return viper.BindPFlags(cmd.Flags())
}
