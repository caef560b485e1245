package flappy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickCollisionWithPipe(t *testing.T) {
	cfg := testConfig(1)
	pop := newTestPopulation(t, cfg, 1)
	course := NewCourse(cfg, rand.New(rand.NewSource(1)))
	course.Pipes = []*Pipe{{X: 0, GapStart: 300, GapEnd: 475}}
	env := NewEnvironment(cfg)

	next, allDead, err := env.Tick(pop, course, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
	assert.True(t, allDead)
	assert.False(t, pop.Individuals[0].Body.Alive)
	assert.Zero(t, pop.Individuals[0].Body.Score)
}

func TestTickThroughGap(t *testing.T) {
	cfg := testConfig(1)
	pop := newTestPopulation(t, cfg, 1)
	course := NewCourse(cfg, rand.New(rand.NewSource(1)))
	course.Pipes = []*Pipe{{X: 0, GapStart: 200, GapEnd: 375}}
	env := NewEnvironment(cfg)

	_, allDead, err := env.Tick(pop, course, 0)
	require.NoError(t, err)
	assert.False(t, allDead)
	assert.True(t, pop.Individuals[0].Body.Alive)
}

func TestTickScoresSurvivors(t *testing.T) {
	cfg := testConfig(2)
	pop := newTestPopulation(t, cfg, 1)
	course := NewCourse(cfg, rand.New(rand.NewSource(1)))
	env := NewEnvironment(cfg)

	dead := pop.Individuals[1]
	dead.Body.Alive = false
	dead.Body.Y = 100
	dead.Body.Score = 3
	frozen := dead.Body

	next, allDead, err := env.Tick(pop, course, 10)
	require.NoError(t, err)
	assert.Equal(t, 11, next)
	assert.False(t, allDead)

	live := pop.Individuals[0].Body
	assert.True(t, live.Alive)
	assert.Equal(t, 10, live.Score)
	assert.Equal(t, 244, live.Y)
	assert.Equal(t, frozen, dead.Body, "dead birds neither move nor score")
	require.Len(t, course.Pipes, 1)
}

func TestTickOutOfBounds(t *testing.T) {
	cfg := testConfig(2)
	pop := newTestPopulation(t, cfg, 1)
	course := NewCourse(cfg, rand.New(rand.NewSource(1)))
	env := NewEnvironment(cfg)

	pop.Individuals[0].Body.Y = 460
	pop.Individuals[1].Body.Y = -1

	_, allDead, err := env.Tick(pop, course, 0)
	require.NoError(t, err)
	assert.True(t, allDead)
}

func TestOnGenerationEnd(t *testing.T) {
	cfg := testConfig(6)
	pop := newTestPopulation(t, cfg, 2)
	course := NewCourse(cfg, rand.New(rand.NewSource(1)))
	course.Advance(0)
	env := NewEnvironment(cfg)

	for i, a := range pop.Individuals {
		a.Body.Alive = false
		a.Body.Score = i * 7
		a.Body.Y = 470
		a.Body.Velocity = 3
	}
	require.True(t, pop.AllDead())

	tick, err := env.OnGenerationEnd(pop, course)
	require.NoError(t, err)
	assert.Zero(t, tick)
	assert.Equal(t, 2, pop.Generation)
	assert.Empty(t, course.Pipes)
	assert.Len(t, pop.Individuals, 6)
	for _, a := range pop.Individuals {
		assert.Equal(t, NewBody(cfg), a.Body)
		assert.NotNil(t, a.Network)
	}
}
