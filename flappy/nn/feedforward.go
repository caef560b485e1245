package nn

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidTopology is returned when a network is built from too few layers,
// a non-positive layer size, or weight matrices whose shapes disagree with the
// declared dimensions.
var ErrInvalidTopology = errors.New("invalid topology")

// DefaultDimensions is the layer layout used by the birds: five sensor inputs,
// two hidden layers of five units and a single output unit.
var DefaultDimensions = []int{5, 5, 5, 1}

// FeedForwardNetwork is a fully connected, fixed-topology network with sigmoid
// activations on every layer. Weights[i] has shape
// (Dimensions[i], Dimensions[i+1]); a forward pass multiplies a row vector
// through each matrix in order.
type FeedForwardNetwork struct {
	Dimensions []int
	Weights    []*mat.Dense
	Output     []float64 // Result of the last Forward call, nil before the first one
}

// NewNetwork creates a network with every weight drawn uniformly from [-1, 1).
func NewNetwork(dims []int, rng *rand.Rand) (*FeedForwardNetwork, error) {
	if err := validateDimensions(dims); err != nil {
		return nil, err
	}

	weights := make([]*mat.Dense, len(dims)-1)
	for i := 0; i < len(dims)-1; i++ {
		data := make([]float64, dims[i]*dims[i+1])
		for j := range data {
			data[j] = randomWeight(rng)
		}
		weights[i] = mat.NewDense(dims[i], dims[i+1], data)
	}

	return &FeedForwardNetwork{
		Dimensions: append([]int(nil), dims...),
		Weights:    weights,
	}, nil
}

// NewNetworkFromWeights creates a network from an externally produced weight
// set, typically the result of crossover. The weights are copied, then every
// scalar is independently replaced by a fresh draw from [-1, 1) with
// probability mutateProb.
func NewNetworkFromWeights(dims []int, weights []*mat.Dense, mutateProb float64, rng *rand.Rand) (*FeedForwardNetwork, error) {
	if err := validateDimensions(dims); err != nil {
		return nil, err
	}
	if err := validateWeights(dims, weights); err != nil {
		return nil, err
	}

	mutated := CopyWeights(weights)
	for _, w := range mutated {
		w.Apply(func(_, _ int, v float64) float64 {
			if rng.Float64() < mutateProb {
				return randomWeight(rng)
			}
			return v
		}, w)
	}

	return &FeedForwardNetwork{
		Dimensions: append([]int(nil), dims...),
		Weights:    mutated,
	}, nil
}

// Forward propagates a single input row through the network and returns the
// activation of the last layer. The result is also cached in net.Output.
func (net *FeedForwardNetwork) Forward(inputs []float64) ([]float64, error) {
	if len(inputs) != net.Dimensions[0] {
		return nil, fmt.Errorf("mismatch between input count (%d) and network input units (%d)", len(inputs), net.Dimensions[0])
	}

	layer := mat.NewDense(1, len(inputs), append([]float64(nil), inputs...))
	for _, w := range net.Weights {
		_, cols := w.Dims()
		next := mat.NewDense(1, cols, nil)
		next.Mul(layer, w)
		next.Apply(func(_, _ int, v float64) float64 {
			return Sigmoid(v)
		}, next)
		layer = next
	}

	net.Output = mat.Row(nil, 0, layer)
	return net.Output, nil
}

// SquaredError returns the elementwise squared difference between the last
// forward pass and target. It is a diagnostic; evolution never calls it.
func (net *FeedForwardNetwork) SquaredError(target []float64) ([]float64, error) {
	if net.Output == nil {
		return nil, errors.New("squared error requested before any forward pass")
	}
	if len(target) != len(net.Output) {
		return nil, fmt.Errorf("mismatch between target length (%d) and network output units (%d)", len(target), len(net.Output))
	}

	errs := make([]float64, len(target))
	for i, t := range target {
		d := t - net.Output[i]
		errs[i] = d * d
	}
	return errs, nil
}

// CopyWeights returns a deep copy of a weight set.
func CopyWeights(weights []*mat.Dense) []*mat.Dense {
	out := make([]*mat.Dense, len(weights))
	for i, w := range weights {
		out[i] = mat.DenseCopyOf(w)
	}
	return out
}

func validateDimensions(dims []int) error {
	if len(dims) < 2 {
		return fmt.Errorf("%w: need at least 2 layers, got %d", ErrInvalidTopology, len(dims))
	}
	for i, d := range dims {
		if d <= 0 {
			return fmt.Errorf("%w: layer %d has non-positive size %d", ErrInvalidTopology, i, d)
		}
	}
	return nil
}

func validateWeights(dims []int, weights []*mat.Dense) error {
	if len(weights) != len(dims)-1 {
		return fmt.Errorf("%w: expected %d weight matrices, got %d", ErrInvalidTopology, len(dims)-1, len(weights))
	}
	for i, w := range weights {
		if w == nil {
			return fmt.Errorf("%w: weight matrix %d is nil", ErrInvalidTopology, i)
		}
		r, c := w.Dims()
		if r != dims[i] || c != dims[i+1] {
			return fmt.Errorf("%w: weight matrix %d is %dx%d, expected %dx%d", ErrInvalidTopology, i, r, c, dims[i], dims[i+1])
		}
	}
	return nil
}

// randomWeight draws uniformly from [-1, 1).
func randomWeight(rng *rand.Rand) float64 {
	return 2*rng.Float64() - 1
}
