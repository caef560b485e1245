package flappy

import "math"

// Body is the physical state of one bird.
type Body struct {
	X, Y          int
	Velocity      float64 // Vertical velocity, negative is upwards
	Width, Height int
	Alive         bool
	Score         int // Ticks survived; the fitness signal
	LastUpdate    int // Tick of the last physics update
}

// NewBody returns a fresh body at the spawn point with zero velocity.
// Resetting a bird between generations assigns a new value from here rather
// than mutating the old one.
func NewBody(config *Config) Body {
	return Body{
		X:      config.Bird.StartX,
		Y:      config.StartY(),
		Width:  config.Bird.Width,
		Height: config.Bird.Height,
		Alive:  true,
	}
}

// Update integrates the body under constant gravity. Physics only advances
// once at least animationRate ticks have passed since the last update, which
// gives the motion its stepped feel. Dead bodies never move.
func (b *Body) Update(tick int, config *BirdConfig) {
	if !b.Alive {
		return
	}
	t := tick - b.LastUpdate
	if t < config.AnimationRate || t <= 0 {
		return
	}
	u := b.Velocity
	a := config.Gravity
	dt := float64(t)
	b.Y += int(math.Floor(u*dt + 0.5*a*dt*dt))
	b.Velocity = u + a*dt
	b.LastUpdate = tick
}

// Jump applies the flap impulse.
func (b *Body) Jump(config *BirdConfig) {
	b.Velocity = config.JumpVelocity
}

// Rect returns the collision rectangle of the body.
func (b *Body) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// OutOfBounds reports whether the body left the vertical screen range
// [0, screenHeight-Height].
func (b *Body) OutOfBounds(screenHeight int) bool {
	return b.Y < 0 || b.Y+b.Height > screenHeight
}
