package environment

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// State is a hashable snapshot of an observation. It is built from the
// flattened observation vector of a timestep so that it can be used as
// a map key, and agents never inspect its structure.
type State string

// NewState converts an observation vector into a State
func NewState(obs mat.Vector) State {
	if obs == nil {
		return ""
	}

	var b strings.Builder
	for i := 0; i < obs.Len(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(obs.AtVec(i), 'g', -1, 64))
	}
	return State(b.String())
}
