package flappy

import (
	"fmt"
	"math/rand"
)

// Phase is the state of a Simulation between ticks.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseGenerationEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseGenerationEnd:
		return "generation end"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Simulation bundles one population, its course and the tick counter, and
// drives the running/generation-end cycle. Simulations share no state, so
// several can run in one process.
type Simulation struct {
	Config      *Config
	Environment *Environment
	Population  *Population
	Course      *Course
	Tick        int
	Phase       Phase
}

// Initialize creates the first generation and an empty course.
func Initialize(config *Config, rng *rand.Rand) (*Population, *Course, error) {
	pop, err := NewPopulation(config, rng)
	if err != nil {
		return nil, nil, err
	}
	return pop, NewCourse(config, rng), nil
}

// NewSimulation creates a simulation ready to Step.
func NewSimulation(config *Config, rng *rand.Rand) (*Simulation, error) {
	pop, course, err := Initialize(config, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize simulation: %w", err)
	}
	return &Simulation{
		Config:      config,
		Environment: NewEnvironment(config),
		Population:  pop,
		Course:      course,
		Phase:       PhaseRunning,
	}, nil
}

// Step advances the simulation by one tick. When the tick leaves every bird
// dead the simulation passes through the generation-end phase: the population
// evolves, birds respawn and the course restarts. Step reports whether that
// happened.
func (s *Simulation) Step() (bool, error) {
	if s.Phase != PhaseRunning {
		return false, fmt.Errorf("cannot step while in %s phase: %w", s.Phase, ErrEvolutionInProgress)
	}

	next, allDead, err := s.Environment.Tick(s.Population, s.Course, s.Tick)
	if err != nil {
		return false, err
	}
	s.Tick = next
	if !allDead {
		return false, nil
	}

	s.Phase = PhaseGenerationEnd
	tick, err := s.Environment.OnGenerationEnd(s.Population, s.Course)
	if err != nil {
		return true, fmt.Errorf("generation %d: %w", s.Population.Generation, err)
	}
	s.Tick = tick
	s.Phase = PhaseRunning
	return true, nil
}

// RunGeneration steps until the current generation ends. If threshold is
// positive and a live bird reaches that score first, the generation is cut
// short and that bird is returned as the winner without evolving.
func (s *Simulation) RunGeneration(threshold int) (*Agent, error) {
	for {
		ended, err := s.Step()
		if err != nil {
			return nil, err
		}
		if ended {
			return nil, nil
		}
		if threshold > 0 {
			if best := s.Population.Best(); best != nil && best.Body.Alive && best.Body.Score >= threshold {
				return best, nil
			}
		}
	}
}

// Views returns the rendering projection of every agent.
func (s *Simulation) Views() []AgentView {
	views := make([]AgentView, len(s.Population.Individuals))
	for i, a := range s.Population.Individuals {
		views[i] = a.View()
	}
	return views
}
