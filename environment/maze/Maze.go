// Package maze implements a grid maze environment with walls and a
// single exit cell
package maze

import (
	"fmt"

	env "github.com/samuelfneumann/qmaze/environment"
	ts "github.com/samuelfneumann/qmaze/timestep"
	"gonum.org/v1/gonum/mat"
)

// Actions of the maze, in order
const (
	MoveLeft env.Action = iota
	MoveRight
	MoveUp
	MoveDown
)

// Cell markers of a layout and of observations
const (
	Empty float64 = 0.0
	Wall  float64 = 1.0
	Agent float64 = 2.0
)

var actions = []env.Action{MoveLeft, MoveRight, MoveUp, MoveDown}

// Maze is a grid of empty cells and walls. An agent starts an episode
// in an empty cell and moves one cell per step. The episode is won
// when the agent reaches the exit and lost once the total reward of
// the episode drops below the minimum reward of the maze.
//
// Observations are the flattened layout with the agent's cell marked
// as Agent.
type Maze struct {
	layout     *mat.Dense
	rows, cols int
	exit       env.Cell
	empty      []env.Cell

	rewards       Rewards
	minimumReward float64

	current     env.Cell
	visited     map[env.Cell]bool
	totalReward float64
	number      int

	renderPath string
}

// Option configures a Maze on construction
type Option func(*Maze)

// WithExit sets the exit cell. By default the exit is the bottom right
// cell of the layout.
func WithExit(c env.Cell) Option {
	return func(m *Maze) {
		m.exit = c
	}
}

// WithRewards sets the reward scheme
func WithRewards(r Rewards) Option {
	return func(m *Maze) {
		m.rewards = r
	}
}

// WithRenderQ sets the path of the PNG file RenderQ draws to. Without
// a path RenderQ does nothing.
func WithRenderQ(path string) Option {
	return func(m *Maze) {
		m.renderPath = path
	}
}

// New creates a new Maze from a layout of Empty and Wall cells
func New(layout mat.Matrix, opts ...Option) (*Maze, error) {
	rows, cols := layout.Dims()
	m := &Maze{
		layout:        mat.DenseCopyOf(layout),
		rows:          rows,
		cols:          cols,
		exit:          env.Cell{Col: cols - 1, Row: rows - 1},
		rewards:       DefaultRewards(),
		minimumReward: MinimumRewardPerCell * float64(rows*cols),
		visited:       make(map[env.Cell]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.rewards.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			switch v := m.layout.At(r, c); v {
			case Empty:
				cell := env.Cell{Col: c, Row: r}
				if cell != m.exit {
					m.empty = append(m.empty, cell)
				}
			case Wall:
			default:
				return nil, fmt.Errorf("new: invalid marker %v at row %d, "+
					"col %d", v, r, c)
			}
		}
	}

	if !m.inside(m.exit) {
		return nil, fmt.Errorf("new: exit %v outside maze", m.exit)
	}
	if m.layout.At(m.exit.Row, m.exit.Col) == Wall {
		return nil, fmt.Errorf("new: exit %v is a wall", m.exit)
	}
	m.current = m.exit

	return m, nil
}

// Actions returns the actions of the maze
func (m *Maze) Actions() []env.Action {
	return actions
}

// StartCells returns all empty cells except the exit
func (m *Maze) StartCells() []env.Cell {
	return m.empty
}

// Dims returns the number of rows and columns of the maze
func (m *Maze) Dims() (r, c int) {
	return m.rows, m.cols
}

// Exit returns the exit cell
func (m *Maze) Exit() env.Cell {
	return m.exit
}

// MinimumReward returns the total reward below which an episode is lost
func (m *Maze) MinimumReward() float64 {
	return m.minimumReward
}

// Reset starts a new episode in the argument cell
func (m *Maze) Reset(start env.Cell) (ts.TimeStep, error) {
	if !m.inside(start) {
		return ts.TimeStep{}, fmt.Errorf("reset: start cell %v outside "+
			"maze", start)
	}
	if m.layout.At(start.Row, start.Col) == Wall {
		return ts.TimeStep{}, fmt.Errorf("reset: start cell %v is a wall",
			start)
	}

	m.current = start
	m.totalReward = 0
	m.visited = make(map[env.Cell]bool)
	m.number = 0

	return ts.New(m.status(), 0, m.observe(), m.number), nil
}

// Step moves the agent and returns the resulting timestep
func (m *Maze) Step(a env.Action) (ts.TimeStep, error) {
	if a < MoveLeft || a > MoveDown {
		return ts.TimeStep{}, fmt.Errorf("step: unknown action %v", a)
	}

	reward := m.execute(a)
	m.totalReward += reward
	m.number++

	return ts.New(m.status(), reward, m.observe(), m.number), nil
}

// Current returns the agent's cell
func (m *Maze) Current() env.Cell {
	return m.current
}

// execute performs an action and returns the reward for it
func (m *Maze) execute(a env.Action) float64 {
	possible := m.possibleActions(m.current)

	if len(possible) == 0 {
		// Enclosed by walls, the episode must end
		return m.minimumReward - 1
	}

	if !possible[a] {
		return m.rewards.Impossible
	}

	m.current = move(m.current, a)

	var reward float64
	switch {
	case m.current == m.exit:
		reward = m.rewards.Exit
	case m.visited[m.current]:
		reward = m.rewards.Visited
	default:
		reward = m.rewards.Move
	}
	m.visited[m.current] = true

	return reward
}

// possibleActions returns the actions that do not run into a wall or
// the border of the maze from the argument cell
func (m *Maze) possibleActions(c env.Cell) map[env.Action]bool {
	possible := make(map[env.Action]bool, len(actions))
	for _, a := range actions {
		next := move(c, a)
		if m.inside(next) && m.layout.At(next.Row, next.Col) != Wall {
			possible[a] = true
		}
	}
	return possible
}

func (m *Maze) status() ts.Status {
	if m.current == m.exit {
		return ts.Win
	}
	if m.totalReward < m.minimumReward {
		return ts.Lose
	}
	return ts.Playing
}

func (m *Maze) observe() *mat.VecDense {
	return m.observeAt(m.current)
}

// observeAt returns the observation of the agent standing in cell c
func (m *Maze) observeAt(c env.Cell) *mat.VecDense {
	obs := make([]float64, 0, m.rows*m.cols)
	for r := 0; r < m.rows; r++ {
		obs = append(obs, m.layout.RawRowView(r)...)
	}
	obs[c.Row*m.cols+c.Col] = Agent

	return mat.NewVecDense(len(obs), obs)
}

func (m *Maze) inside(c env.Cell) bool {
	return c.Row >= 0 && c.Row < m.rows && c.Col >= 0 && c.Col < m.cols
}

func move(c env.Cell, a env.Action) env.Cell {
	switch a {
	case MoveLeft:
		c.Col--
	case MoveRight:
		c.Col++
	case MoveUp:
		c.Row--
	case MoveDown:
		c.Row++
	}
	return c
}

// Play plays a single game from the argument cell, following the
// policy until the game is won or lost
func (m *Maze) Play(p env.Policy, start env.Cell) (ts.Status, error) {
	step, err := m.Reset(start)
	if err != nil {
		return ts.Playing, fmt.Errorf("play: %v", err)
	}

	for !step.Last() {
		action := p.Predict(env.NewState(step.Observation))
		if step, err = m.Step(action); err != nil {
			return ts.Playing, fmt.Errorf("play: %v", err)
		}
	}
	return step.Status, nil
}

// CheckWinAll plays the policy from every start cell. It returns
// whether every game was won, and the fraction of games won.
func (m *Maze) CheckWinAll(p env.Policy) (bool, float64, error) {
	win, lose := 0, 0
	for _, cell := range m.empty {
		status, err := m.Play(p, cell)
		if err != nil {
			return false, 0, fmt.Errorf("checkWinAll: %v", err)
		}

		if status == ts.Win {
			win++
		} else {
			lose++
		}
	}

	if win+lose == 0 {
		return false, 0, fmt.Errorf("checkWinAll: no start cells")
	}
	return lose == 0, float64(win) / float64(win+lose), nil
}

func (m *Maze) String() string {
	str := "Maze | At: %v  |  Exit: %v  |  Bounds: (%d, %d)  |  %v"

	return fmt.Sprintf(str, m.current, m.exit, m.rows, m.cols, m.rewards)
}
