package flappy

import (
	"fmt"

	"github.com/baldhumanity/flappy-neuroevo/flappy/nn"
)

// jumpThreshold is the network output above which a bird flaps.
const jumpThreshold = 0.5

// Agent pairs a network with the bird body it controls.
type Agent struct {
	Key     int
	Network *nn.FeedForwardNetwork
	Body    Body
}

// AgentView is the read-only projection a renderer needs.
type AgentView struct {
	Alive         bool
	X, Y          int
	Width, Height int
	Score         int
}

// View returns the rendering projection of the agent.
func (a *Agent) View() AgentView {
	return AgentView{
		Alive:  a.Body.Alive,
		X:      a.Body.X,
		Y:      a.Body.Y,
		Width:  a.Body.Width,
		Height: a.Body.Height,
		Score:  a.Body.Score,
	}
}

// Sense builds the normalised sensor vector against pipe. With no pipe ahead
// the gap spans the whole screen and the pipe sits at the right edge.
func (a *Agent) Sense(pipe *Pipe, config *Config) []float64 {
	gapStart, gapEnd, pipeX := 0, config.World.Height, config.World.Width
	if pipe != nil {
		gapStart, gapEnd, pipeX = pipe.GapStart, pipe.GapEnd, pipe.X
	}

	limits := config.FeatureLimits()
	raw := [SensorCount]float64{
		float64(a.Body.Y),
		a.Body.Velocity,
		float64(gapStart),
		float64(gapEnd),
		float64(pipeX),
	}
	inputs := make([]float64, SensorCount)
	for i, v := range raw {
		inputs[i] = v / limits[i]
	}
	return inputs
}

// Decide runs the network on inputs and flaps when the output exceeds 0.5.
// It reports whether the bird jumped.
func (a *Agent) Decide(inputs []float64, config *BirdConfig) (bool, error) {
	out, err := a.Network.Forward(inputs)
	if err != nil {
		return false, fmt.Errorf("agent %d: %w", a.Key, err)
	}
	if out[0] > jumpThreshold {
		a.Jump(config)
		return true, nil
	}
	return false, nil
}

// Jump flaps the bird. It is also the hook for manual control.
func (a *Agent) Jump(config *BirdConfig) {
	if !a.Body.Alive {
		return
	}
	a.Body.Jump(config)
}
