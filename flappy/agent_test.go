package flappy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentSenseNormalises(t *testing.T) {
	cfg := DefaultConfig()
	a := &Agent{Body: NewBody(cfg)}
	a.Body.Velocity = -3

	inputs := a.Sense(&Pipe{X: 320, GapStart: 120, GapEnd: 295}, cfg)
	require.Len(t, inputs, SensorCount)
	assert.InDelta(t, 240.0/480, inputs[0], 1e-12)
	assert.InDelta(t, -3.0/100, inputs[1], 1e-12)
	assert.InDelta(t, 120.0/480, inputs[2], 1e-12)
	assert.InDelta(t, 295.0/480, inputs[3], 1e-12)
	assert.InDelta(t, 320.0/640, inputs[4], 1e-12)
}

func TestAgentSenseWithoutPipe(t *testing.T) {
	cfg := DefaultConfig()
	a := &Agent{Body: NewBody(cfg)}

	inputs := a.Sense(nil, cfg)
	assert.Equal(t, []float64{0.5, 0, 0, 1, 1}, inputs)
}

func TestAgentDecide(t *testing.T) {
	cfg := DefaultConfig()
	inputs := []float64{0.5, 0, 0.25, 0.6, 1}

	idle := &Agent{Network: constantNetwork(t, cfg.Simulation.Layers, 0), Body: NewBody(cfg)}
	jumped, err := idle.Decide(inputs, &cfg.Bird)
	require.NoError(t, err)
	assert.False(t, jumped, "an output of exactly 0.5 does not flap")
	assert.Zero(t, idle.Body.Velocity)

	flapper := &Agent{Network: constantNetwork(t, cfg.Simulation.Layers, 1), Body: NewBody(cfg)}
	jumped, err = flapper.Decide(inputs, &cfg.Bird)
	require.NoError(t, err)
	assert.True(t, jumped)
	assert.Equal(t, cfg.Bird.JumpVelocity, flapper.Body.Velocity)

	sinker := &Agent{Network: constantNetwork(t, cfg.Simulation.Layers, -1), Body: NewBody(cfg)}
	jumped, err = sinker.Decide(inputs, &cfg.Bird)
	require.NoError(t, err)
	assert.False(t, jumped)

	_, err = flapper.Decide([]float64{1}, &cfg.Bird)
	assert.Error(t, err)
}

func TestAgentJumpIgnoredWhenDead(t *testing.T) {
	cfg := DefaultConfig()
	a := &Agent{Body: NewBody(cfg)}
	a.Body.Alive = false

	a.Jump(&cfg.Bird)
	assert.Zero(t, a.Body.Velocity)
}

func TestAgentView(t *testing.T) {
	cfg := DefaultConfig()
	a := &Agent{Body: NewBody(cfg)}
	a.Body.Score = 12

	assert.Equal(t, AgentView{Alive: true, X: 0, Y: 240, Width: 34, Height: 24, Score: 12}, a.View())
}
