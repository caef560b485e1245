package flappy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/baldhumanity/flappy-neuroevo/flappy/nn"
)

func testConfig(popSize int) *Config {
	cfg := DefaultConfig()
	cfg.Simulation.PopSize = popSize
	return cfg
}

// constantNetwork builds a network whose every weight is v. With v = 0 the
// output is exactly 0.5, so the bird never jumps.
func constantNetwork(t *testing.T, dims []int, v float64) *nn.FeedForwardNetwork {
	t.Helper()
	weights := make([]*mat.Dense, len(dims)-1)
	for i := range weights {
		w := mat.NewDense(dims[i], dims[i+1], nil)
		w.Apply(func(_, _ int, _ float64) float64 { return v }, w)
		weights[i] = w
	}
	net, err := nn.NewNetworkFromWeights(dims, weights, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return net
}

// newTestPopulation creates a population whose birds never flap.
func newTestPopulation(t *testing.T, cfg *Config, seed int64) *Population {
	t.Helper()
	pop, err := NewPopulation(cfg, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	for _, a := range pop.Individuals {
		a.Network = constantNetwork(t, cfg.Simulation.Layers, 0)
	}
	return pop
}
