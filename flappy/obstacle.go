package flappy

import (
	"fmt"
	"math/rand"
)

// Pipe is a pair of vertical pipes with a gap between them, scrolling left.
type Pipe struct {
	X          int
	GapStart   int // Top of the gap, inclusive
	GapEnd     int // Bottom of the gap, exclusive
	LastUpdate int
}

// Course is the ordered, left-to-right list of pipes on screen.
type Course struct {
	Pipes []*Pipe

	world  WorldConfig
	config PipeConfig
	rng    *rand.Rand
}

// NewCourse creates an empty course. The first pipe appears on the first Advance.
func NewCourse(config *Config, rng *rand.Rand) *Course {
	return &Course{
		world:  config.World,
		config: config.Pipe,
		rng:    rng,
	}
}

// newPipe spawns a pipe at the right screen edge with a uniformly placed gap.
func (c *Course) newPipe(tick int) *Pipe {
	start := c.rng.Intn(c.world.Height-c.config.GapHeight+1)
	p := &Pipe{
		X:          c.world.Width,
		GapStart:   start,
		GapEnd:     start + c.config.GapHeight,
		LastUpdate: tick,
	}
	if p.GapStart < 0 || p.GapEnd > c.world.Height {
		panic(fmt.Sprintf("degenerate obstacle gap [%d, %d) outside [0, %d]", p.GapStart, p.GapEnd, c.world.Height))
	}
	return p
}

// Advance runs one tick of the pipe lifecycle: spawn when there is room,
// drop the front pipe once it is fully off screen, then scroll every pipe.
func (c *Course) Advance(tick int) {
	if len(c.Pipes) == 0 {
		c.Pipes = append(c.Pipes, c.newPipe(tick))
	} else {
		last := c.Pipes[len(c.Pipes)-1]
		if last.X+c.config.Width+c.config.Spacing < c.world.Width {
			c.Pipes = append(c.Pipes, c.newPipe(tick))
		}
		if first := c.Pipes[0]; first.X+c.config.Width < 0 {
			c.Pipes = c.Pipes[1:]
		}
	}

	for _, p := range c.Pipes {
		if tick-p.LastUpdate >= c.config.AnimationRate && tick > p.LastUpdate {
			p.X -= c.config.Step
			p.LastUpdate = tick
		}
	}
}

// Nearest returns the first pipe whose right edge is still ahead of x, or nil.
func (c *Course) Nearest(x int) *Pipe {
	for _, p := range c.Pipes {
		if x < p.X+c.config.Width {
			return p
		}
	}
	return nil
}

// Rects returns the upper and lower pipe rectangles of p.
func (c *Course) Rects(p *Pipe) (upper, lower Rect) {
	upper = Rect{X: p.X, Y: 0, Width: c.config.Width, Height: p.GapStart}
	lower = Rect{X: p.X, Y: p.GapEnd, Width: c.config.Width, Height: c.world.Height - p.GapEnd}
	return upper, lower
}

// Reset removes every pipe.
func (c *Course) Reset() {
	c.Pipes = nil
}
