package flappy

import "fmt"

// Environment advances a population and its course one tick at a time.
// It keeps no state of its own; the tick counter is threaded through calls.
type Environment struct {
	Config *Config
}

// NewEnvironment creates an environment for config.
func NewEnvironment(config *Config) *Environment {
	return &Environment{Config: config}
}

// Tick runs one simulation step and returns the next tick value and whether
// every agent is now dead. The order is fixed: scroll the course, integrate
// live bodies, let each live bird sense and decide, resolve collisions, then
// score the survivors.
//
// Every bird senses the same nearest pipe, looked up from the first agent's
// position. All birds share one x coordinate, so this matches a per-bird
// lookup while keeping a single reference obstacle per tick.
func (e *Environment) Tick(pop *Population, course *Course, tick int) (int, bool, error) {
	cfg := e.Config

	course.Advance(tick)

	for _, a := range pop.Individuals {
		a.Body.Update(tick, &cfg.Bird)
	}

	var nearest *Pipe
	if len(pop.Individuals) > 0 {
		nearest = course.Nearest(pop.Individuals[0].Body.X)
	}

	for _, a := range pop.Individuals {
		if !a.Body.Alive {
			continue
		}
		if _, err := a.Decide(a.Sense(nearest, cfg), &cfg.Bird); err != nil {
			return tick, false, fmt.Errorf("tick %d: %w", tick, err)
		}
	}

	e.checkCollisions(pop, course, nearest)

	for _, a := range pop.Individuals {
		if a.Body.Alive {
			a.Body.Score = tick
		}
	}

	return tick + 1, pop.AllDead(), nil
}

// checkCollisions kills birds touching the nearest pipe or leaving the screen.
func (e *Environment) checkCollisions(pop *Population, course *Course, nearest *Pipe) {
	var upper, lower Rect
	if nearest != nil {
		upper, lower = course.Rects(nearest)
	}

	for _, a := range pop.Individuals {
		if !a.Body.Alive {
			continue
		}
		if nearest != nil {
			r := a.Body.Rect()
			if r.Overlaps(upper) || r.Overlaps(lower) {
				a.Body.Alive = false
				continue
			}
		}
		if a.Body.OutOfBounds(e.Config.World.Height) {
			a.Body.Alive = false
		}
	}
}

// OnGenerationEnd evolves the population, respawns every bird with a fresh
// body while keeping its network, clears the course and returns the reset
// tick counter.
func (e *Environment) OnGenerationEnd(pop *Population, course *Course) (int, error) {
	if err := pop.Evolve(); err != nil {
		return 0, err
	}
	for _, a := range pop.Individuals {
		a.Body = NewBody(e.Config)
	}
	course.Reset()
	return 0, nil
}
