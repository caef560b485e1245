package flappy

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/gofrs/uuid"
)

// ErrEvolutionInProgress is returned when Evolve is re-entered before the
// previous call finished.
var ErrEvolutionInProgress = errors.New("evolution already in progress")

// Population holds the agents of the current generation and the state of the
// evolutionary process.
type Population struct {
	Config         *Config
	RunID          uuid.UUID // Identifies this simulation instance in reports
	Individuals    []*Agent
	Reproduction   *Reproduction
	Generation     int
	FitnessHistory []int // Best score of each finished generation
	BestScore      int   // Best score seen over all generations
	Reporters      []Reporter

	parents  []*Agent
	evolving bool
}

// NewPopulation creates the first generation of Config.Simulation.PopSize
// agents with random networks.
func NewPopulation(config *Config, rng *rand.Rand) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	runID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run id: %w", err)
	}

	reproduction := NewReproduction(config, rng)
	individuals, err := reproduction.CreateNewPopulation(config.Simulation.PopSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial population: %w", err)
	}

	return &Population{
		Config:       config,
		RunID:        runID,
		Individuals:  individuals,
		Reproduction: reproduction,
		Generation:   1,
	}, nil
}

// AddReporter registers a progress reporter.
func (p *Population) AddReporter(r Reporter) {
	p.Reporters = append(p.Reporters, r)
}

// AllDead reports whether every agent has terminated.
func (p *Population) AllDead() bool {
	for _, a := range p.Individuals {
		if a.Body.Alive {
			return false
		}
	}
	return true
}

// Best returns the highest scoring agent of the current generation, the
// earliest one on ties, or nil for an empty population.
func (p *Population) Best() *Agent {
	var best *Agent
	for _, a := range p.Individuals {
		if best == nil || a.Body.Score > best.Body.Score {
			best = a
		}
	}
	return best
}

// Grade records the best score of the current generation in FitnessHistory.
func (p *Population) Grade() int {
	best, _, _ := scoreStats(p.Individuals)
	p.FitnessHistory = append(p.FitnessHistory, best)
	if best > p.BestScore {
		p.BestScore = best
	}
	return best
}

// SelectParents ranks the current generation by score and fills the parent
// buffer. Individuals is left in ranked order.
func (p *Population) SelectParents() []*Agent {
	ranked, parents := p.Reproduction.SelectParents(p.Individuals)
	p.Individuals = ranked
	p.parents = parents
	return parents
}

// Breed replaces the generation with the selected parents followed by their
// children. With no parents the generation is left as it is.
func (p *Population) Breed() error {
	children, err := p.Reproduction.Breed(p.parents)
	if err != nil {
		return err
	}

	p.Individuals = p.Reproduction.nextGeneration(p.parents, children)
	return nil
}

// Evolve produces the next generation: grade, select parents, breed, clear the
// parent buffer and advance the generation counter. Bodies are not reset here;
// respawning is up to the caller.
func (p *Population) Evolve() error {
	if p.evolving {
		return ErrEvolutionInProgress
	}
	p.evolving = true
	defer func() { p.evolving = false }()

	for _, r := range p.Reporters {
		r.StartGeneration(p)
	}

	_, mean, stdev := scoreStats(p.Individuals)
	best := p.Grade()

	parents := p.SelectParents()
	err := p.Breed()
	switch {
	case errors.Is(err, ErrEmptyParentSet):
		for _, r := range p.Reporters {
			r.Extinction(p)
		}
	case err != nil:
		p.parents = nil
		return fmt.Errorf("breeding failed in generation %d: %w", p.Generation, err)
	}

	stats := GenerationStats{
		Generation: p.Generation,
		Best:       best,
		Mean:       mean,
		Stdev:      stdev,
		Parents:    len(parents),
	}
	if len(parents) > 0 {
		stats.Children = len(p.Individuals) - len(parents)
	}
	for _, r := range p.Reporters {
		r.EndGeneration(p, stats)
	}

	p.parents = nil
	p.Generation++
	return nil
}
