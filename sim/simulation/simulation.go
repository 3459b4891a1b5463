// Package simulation ties an Engine together with the registry of
// components and ports that were built to run on it. It depends only on
// the naming and timing packages, not on modeling, so that it can be
// imported by the modeling package without creating an import cycle.
package simulation

import (
	"github.com/3p1phany/myDRAMsim/sim/naming"
	"github.com/3p1phany/myDRAMsim/sim/timing"
)

// Simulation is the service a Builder needs in order to wire a component
// into a running simulation: an engine to schedule events on, and a
// registry of components and ports. Components can be looked up by name
// later; ports are recorded but have no lookup.
type Simulation interface {
	GetEngine() timing.Engine
	RegisterComponent(c naming.Named)
	RegisterPort(p naming.Named)
	GetComponentByName(name string) naming.Named
}

// Impl is the default Simulation implementation.
type Impl struct {
	engine timing.Engine

	components    []naming.Named
	compNameIndex map[string]int
	ports         []naming.Named
	portNameIndex map[string]int
}

// New creates a Simulation driven by engine.
func New(engine timing.Engine) *Impl {
	return &Impl{
		engine:        engine,
		compNameIndex: make(map[string]int),
		portNameIndex: make(map[string]int),
	}
}

// GetEngine returns the engine driving this simulation.
func (s *Impl) GetEngine() timing.Engine {
	return s.engine
}

// RegisterComponent records c so it can later be looked up by name.
func (s *Impl) RegisterComponent(c naming.Named) {
	if _, found := s.compNameIndex[c.Name()]; found {
		panic("component " + c.Name() + " already registered")
	}

	s.compNameIndex[c.Name()] = len(s.components)
	s.components = append(s.components, c)
}

// RegisterPort records p so it can later be looked up by name.
func (s *Impl) RegisterPort(p naming.Named) {
	if _, found := s.portNameIndex[p.Name()]; found {
		panic("port " + p.Name() + " already registered")
	}

	s.portNameIndex[p.Name()] = len(s.ports)
	s.ports = append(s.ports, p)
}

// GetComponentByName returns the component registered under name.
func (s *Impl) GetComponentByName(name string) naming.Named {
	idx, found := s.compNameIndex[name]
	if !found {
		panic("component " + name + " not found")
	}

	return s.components[idx]
}
