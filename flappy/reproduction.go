package flappy

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/baldhumanity/flappy-neuroevo/flappy/nn"
)

// ErrEmptyParentSet is returned by Breed when selection kept no parents.
// The caller keeps the current generation unchanged in that case.
var ErrEmptyParentSet = errors.New("empty parent set")

// Reproduction handles creating agents, either from scratch or by selection,
// uniform crossover and mutation.
type Reproduction struct {
	Config       *Config
	NextAgentKey int           // Key handed to the next agent created
	Ancestors    map[int][]int // Agent key -> parent keys for the current generation

	rng *rand.Rand
}

// NewReproduction creates a new reproduction manager.
func NewReproduction(config *Config, rng *rand.Rand) *Reproduction {
	return &Reproduction{
		Config:       config,
		NextAgentKey: 1,
		Ancestors:    make(map[int][]int),
		rng:          rng,
	}
}

// getNextKey gets the next available agent key and increments the internal counter.
func (r *Reproduction) getNextKey() int {
	key := r.NextAgentKey
	r.NextAgentKey++
	return key
}

// CreateNewPopulation creates popSize agents with random networks.
func (r *Reproduction) CreateNewPopulation(popSize int) ([]*Agent, error) {
	agents := make([]*Agent, 0, popSize)
	for i := 0; i < popSize; i++ {
		net, err := nn.NewNetwork(r.Config.Simulation.Layers, r.rng)
		if err != nil {
			return nil, fmt.Errorf("failed to create network for initial agent %d: %w", i, err)
		}
		a := &Agent{Key: r.getNextKey(), Network: net, Body: NewBody(r.Config)}
		r.Ancestors[a.Key] = []int{}
		agents = append(agents, a)
	}
	return agents, nil
}

// SelectParents ranks agents by score, best first, and picks parents from them.
// The top floor(select*pop_size) agents are kept unconditionally; every other
// agent is kept independently with probability retain_prob. Equal scores keep
// their original order. The returned ranking is the full sorted population.
func (r *Reproduction) SelectParents(individuals []*Agent) (ranked, parents []*Agent) {
	ranked = append([]*Agent(nil), individuals...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Body.Score > ranked[j].Body.Score
	})

	retainLength := int(r.Config.Simulation.Select * float64(r.Config.Simulation.PopSize))
	if retainLength > len(ranked) {
		retainLength = len(ranked)
	}

	parents = append(parents, ranked[:retainLength]...)
	for _, a := range ranked[retainLength:] {
		if r.rng.Float64() < r.Config.Simulation.RetainProb {
			parents = append(parents, a)
		}
	}
	return ranked, parents
}

// Crossover builds one child weight set by taking every scalar from either
// parent with equal probability.
func (r *Reproduction) Crossover(weightsA, weightsB []*mat.Dense) ([]*mat.Dense, error) {
	if len(weightsA) != len(weightsB) {
		return nil, fmt.Errorf("%w: parents have %d and %d weight matrices", nn.ErrInvalidTopology, len(weightsA), len(weightsB))
	}

	child := make([]*mat.Dense, len(weightsA))
	for i := range weightsA {
		ra, ca := weightsA[i].Dims()
		rb, cb := weightsB[i].Dims()
		if ra != rb || ca != cb {
			return nil, fmt.Errorf("%w: weight matrix %d is %dx%d vs %dx%d", nn.ErrInvalidTopology, i, ra, ca, rb, cb)
		}
		w := mat.NewDense(ra, ca, nil)
		w.Apply(func(row, col int, _ float64) float64 {
			if r.rng.Float64() < 0.5 {
				return weightsA[i].At(row, col)
			}
			return weightsB[i].At(row, col)
		}, w)
		child[i] = w
	}
	return child, nil
}

// Breed fills the generation back up to pop_size with children of parents.
// Each child comes from two distinct parents chosen uniformly; with a single
// parent that parent is crossed with itself, so the child is a mutated copy.
// Mutation happens while building the child network, never in Crossover.
func (r *Reproduction) Breed(parents []*Agent) ([]*Agent, error) {
	if len(parents) == 0 {
		return nil, ErrEmptyParentSet
	}

	target := r.Config.Simulation.PopSize - len(parents)
	children := make([]*Agent, 0, max(target, 0))
	for len(children) < target {
		father, mother := r.pickPair(parents)

		childWeights, err := r.Crossover(father.Network.Weights, mother.Network.Weights)
		if err != nil {
			return nil, fmt.Errorf("crossover of agents %d and %d failed: %w", father.Key, mother.Key, err)
		}
		net, err := nn.NewNetworkFromWeights(r.Config.Simulation.Layers, childWeights, r.Config.Simulation.MutateProb, r.rng)
		if err != nil {
			return nil, fmt.Errorf("failed to build child of agents %d and %d: %w", father.Key, mother.Key, err)
		}

		child := &Agent{Key: r.getNextKey(), Network: net, Body: NewBody(r.Config)}
		r.Ancestors[child.Key] = []int{father.Key, mother.Key}
		children = append(children, child)
	}
	return children, nil
}

// pickPair samples two parents uniformly. When more than one parent exists the
// two are always different agents.
func (r *Reproduction) pickPair(parents []*Agent) (*Agent, *Agent) {
	if len(parents) == 1 {
		return parents[0], parents[0]
	}
	i := r.rng.Intn(len(parents))
	j := r.rng.Intn(len(parents) - 1)
	if j >= i {
		j++
	}
	return parents[i], parents[j]
}

// nextGeneration joins parents, carried over untouched, and children into the
// next generation and rewrites the ancestry table for it.
func (r *Reproduction) nextGeneration(parents, children []*Agent) []*Agent {
	ancestors := make(map[int][]int, len(parents)+len(children))
	for _, p := range parents {
		ancestors[p.Key] = []int{p.Key}
	}
	for _, c := range children {
		ancestors[c.Key] = r.Ancestors[c.Key]
	}
	r.Ancestors = ancestors

	next := make([]*Agent, 0, len(parents)+len(children))
	next = append(next, parents...)
	return append(next, children...)
}
