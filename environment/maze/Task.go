package maze

import "fmt"

// Default rewards of the maze task
const (
	ExitReward           float64 = 10.0
	MoveReward           float64 = -0.05
	VisitedReward        float64 = -0.25
	ImpossibleMoveReward float64 = -0.75
	MinimumRewardPerCell float64 = -0.5
)

// Rewards is the reward scheme of a maze. Reaching the exit earns Exit,
// moving to a new cell earns Move, moving to a cell visited before in
// the episode earns Visited, and bumping into a wall or the border
// earns Impossible.
type Rewards struct {
	Exit       float64
	Move       float64
	Visited    float64
	Impossible float64
}

// DefaultRewards returns the default reward scheme
func DefaultRewards() Rewards {
	return Rewards{
		Exit:       ExitReward,
		Move:       MoveReward,
		Visited:    VisitedReward,
		Impossible: ImpossibleMoveReward,
	}
}

// Validate ensures every reward but Exit is negative, so that an
// episode which never reaches the exit is eventually lost
func (r Rewards) Validate() error {
	if !(r.Move < 0) {
		return fmt.Errorf("move reward must be negative, have %v", r.Move)
	}
	if !(r.Visited < 0) {
		return fmt.Errorf("visited reward must be negative, have %v",
			r.Visited)
	}
	if !(r.Impossible < 0) {
		return fmt.Errorf("impossible move reward must be negative, have %v",
			r.Impossible)
	}
	return nil
}

func (r Rewards) String() string {
	return fmt.Sprintf("Rewards | Exit: %.2f  |  Move: %.2f  |  Visited: "+
		"%.2f  |  Impossible: %.2f", r.Exit, r.Move, r.Visited, r.Impossible)
}
