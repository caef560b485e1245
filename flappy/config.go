package flappy

import (
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/baldhumanity/flappy-neuroevo/flappy/nn"
)

// SensorCount is the length of the sensor vector each bird feeds its network:
// position, velocity, gap start, gap end and pipe x.
const SensorCount = 5

// Config stores every tunable of a simulation run.
type Config struct {
	Simulation SimulationConfig
	World      WorldConfig
	Bird       BirdConfig
	Pipe       PipeConfig
}

// SimulationConfig holds the evolutionary parameters.
type SimulationConfig struct {
	PopSize          int     `ini:"pop_size"`
	MutateProb       float64 `ini:"mutate_prob"`       // Per-weight replacement probability for bred children
	RetainProb       float64 `ini:"retain_prob"`       // Chance a non-elite survives as a parent
	Select           float64 `ini:"select"`            // Elite fraction of pop_size
	FitnessThreshold int     `ini:"fitness_threshold"` // Score at which a trainer may stop; 0 disables
	Layers           []int   `ini:"layers" delim:" "`  // Network dimensions, space-separated
}

// WorldConfig holds the screen-space bounds the simulation lives in.
type WorldConfig struct {
	Width         int     `ini:"width"`
	Height        int     `ini:"height"`
	VelocityLimit float64 `ini:"velocity_limit"` // Normaliser for the velocity sensor
}

// BirdConfig holds body geometry and kinematics.
type BirdConfig struct {
	StartX        int     `ini:"start_x"`
	Width         int     `ini:"width"`
	Height        int     `ini:"height"`
	Gravity       float64 `ini:"gravity"`
	JumpVelocity  float64 `ini:"jump_velocity"`
	AnimationRate int     `ini:"animation_rate"` // Ticks between physics updates
}

// PipeConfig holds obstacle geometry and scrolling.
type PipeConfig struct {
	GapHeight     int `ini:"gap_height"`
	Width         int `ini:"width"`
	Spacing       int `ini:"spacing"`
	Step          int `ini:"step"`
	AnimationRate int `ini:"animation_rate"`
}

// DefaultConfig returns the parameters of the classic 640x480 game.
func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			PopSize:    30,
			MutateProb: 0.03,
			RetainProb: 0.01,
			Select:     0.333,
			Layers:     append([]int(nil), nn.DefaultDimensions...),
		},
		World: WorldConfig{
			Width:         640,
			Height:        480,
			VelocityLimit: 100,
		},
		Bird: BirdConfig{
			StartX:        0,
			Width:         34,
			Height:        24,
			Gravity:       0.08,
			JumpVelocity:  -3,
			AnimationRate: 5,
		},
		Pipe: PipeConfig{
			GapHeight:     175,
			Width:         40,
			Spacing:       350,
			Step:          5,
			AnimationRate: 5,
		},
	}
}

// LoadConfig loads configuration parameters from an INI file.
// Keys missing from the file keep their DefaultConfig values.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	config := DefaultConfig()

	if err := cfg.Section("Simulation").MapTo(&config.Simulation); err != nil {
		return nil, fmt.Errorf("failed to map [Simulation] section: %w", err)
	}
	if err := cfg.Section("World").MapTo(&config.World); err != nil {
		return nil, fmt.Errorf("failed to map [World] section: %w", err)
	}
	if err := cfg.Section("Bird").MapTo(&config.Bird); err != nil {
		return nil, fmt.Errorf("failed to map [Bird] section: %w", err)
	}
	if err := cfg.Section("Pipe").MapTo(&config.Pipe); err != nil {
		return nil, fmt.Errorf("failed to map [Pipe] section: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks value ranges and cross-section consistency.
func (c *Config) Validate() error {
	s := c.Simulation
	if s.PopSize <= 0 {
		return fmt.Errorf("config error: pop_size must be positive")
	}
	if s.MutateProb < 0 || s.MutateProb > 1 {
		return fmt.Errorf("config error: mutate_prob must be between 0 and 1")
	}
	if s.RetainProb < 0 || s.RetainProb > 1 {
		return fmt.Errorf("config error: retain_prob must be between 0 and 1")
	}
	if s.Select < 0 || s.Select > 1 {
		return fmt.Errorf("config error: select must be between 0 and 1")
	}
	if s.FitnessThreshold < 0 {
		return fmt.Errorf("config error: fitness_threshold cannot be negative")
	}
	if len(s.Layers) < 2 {
		return fmt.Errorf("config error: layers needs at least an input and an output size")
	}
	for _, l := range s.Layers {
		if l <= 0 {
			return fmt.Errorf("config error: layer sizes must be positive, got %v", s.Layers)
		}
	}
	if s.Layers[0] != SensorCount {
		return fmt.Errorf("config error: first layer must have %d units to match the sensors, got %d", SensorCount, s.Layers[0])
	}

	w := c.World
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("config error: world width and height must be positive")
	}
	if w.VelocityLimit <= 0 {
		return fmt.Errorf("config error: velocity_limit must be positive")
	}

	b := c.Bird
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("config error: bird width and height must be positive")
	}
	if b.Height >= w.Height {
		return fmt.Errorf("config error: bird height (%d) must be smaller than world height (%d)", b.Height, w.Height)
	}
	if b.StartX < 0 || b.StartX >= w.Width {
		return fmt.Errorf("config error: start_x must lie within [0, %d)", w.Width)
	}
	if b.AnimationRate < 0 {
		return fmt.Errorf("config error: bird animation_rate cannot be negative")
	}

	p := c.Pipe
	if p.GapHeight <= 0 || p.GapHeight > w.Height {
		return fmt.Errorf("config error: gap_height must lie within (0, %d]", w.Height)
	}
	if p.Width <= 0 {
		return fmt.Errorf("config error: pipe width must be positive")
	}
	if p.Spacing < 0 {
		return fmt.Errorf("config error: spacing cannot be negative")
	}
	if p.Step <= 0 {
		return fmt.Errorf("config error: step must be positive")
	}
	if p.AnimationRate < 0 {
		return fmt.Errorf("config error: pipe animation_rate cannot be negative")
	}
	return nil
}

// FeatureLimits returns the per-sensor divisors used to normalise the sensor
// vector, in sensor order.
func (c *Config) FeatureLimits() []float64 {
	h := float64(c.World.Height)
	return []float64{h, c.World.VelocityLimit, h, h, float64(c.World.Width)}
}

// StartY is the vertical spawn position of every bird.
func (c *Config) StartY() int {
	return c.World.Height / 2
}
