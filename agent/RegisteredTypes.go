package agent

import (
	"fmt"
	"sort"

	"github.com/samuelfneumann/qmaze/environment"
)

// Type represents a specific type of an Agent. Agents of a registered
// Type can be constructed by name with Create.
type Type string

const (
	QTableModel      Type = "QTableModel"
	QTableTraceModel Type = "QTableTraceModel"
)

// Constructor creates a new Agent on an environment. The seed
// initializes the agent's random number generator.
type Constructor func(env environment.Environment, seed uint64,
	opts ...Option) (Agent, error)

// Registered types with the package.
//
// No Types are registered with this package upon initialization.
// Each separate package is in charge of registering its Type with
// the package separately to avoid circular imports.
var registeredTypes map[Type]Constructor

func init() {
	registeredTypes = make(map[Type]Constructor)
}

// Register registers an agent's Type with a Constructor
func Register(agentType Type, c Constructor) {
	if _, ok := registeredTypes[agentType]; ok {
		panic(fmt.Sprintf("register: type %v registered twice", agentType))
	}
	registeredTypes[agentType] = c
}

// Create constructs a new Agent of a registered Type
func Create(agentType Type, env environment.Environment, seed uint64,
	opts ...Option) (Agent, error) {
	c, ok := registeredTypes[agentType]
	if !ok {
		return nil, fmt.Errorf("create: no such agent type %v", agentType)
	}
	return c(env, seed, opts...)
}

// Registered returns all registered Types in lexical order
func Registered() []Type {
	types := make([]Type, 0, len(registeredTypes))
	for t := range registeredTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
