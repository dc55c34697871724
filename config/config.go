// Package config provides configuration loading and access for the
// creature simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// legCount is the number of legs a creature skeleton carries.
const legCount = 4

// Config holds all simulation configuration parameters.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Creature   CreatureConfig   `yaml:"creature"`
	Gait       GaitConfig       `yaml:"gait"`
	Skin       SkinConfig       `yaml:"skin"`
	Locomotion LocomotionConfig `yaml:"locomotion"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Camera     CameraConfig     `yaml:"camera"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds world dimensions.
// World can be larger than the window; camera handles the viewport.
type WorldConfig struct {
	Width  int `yaml:"width"`  // World width in world units (0 = use window width)
	Height int `yaml:"height"` // World height in world units (0 = use window height)
}

// PopulationConfig holds creature spawn parameters.
type PopulationConfig struct {
	Count int `yaml:"count"`
}

// CreatureConfig holds baseline body proportions before variant
// multipliers and per-creature jitter apply.
type CreatureConfig struct {
	BoneUpper float64 `yaml:"bone_upper"` // Hip-to-knee bone length
	BoneLower float64 `yaml:"bone_lower"` // Knee-to-foot bone length
	HipSpanX  float64 `yaml:"hip_span_x"` // Horizontal hip offset from the core
	HipSpanY  float64 `yaml:"hip_span_y"` // Vertical hip offset from the core
	Jitter    float64 `yaml:"jitter"`     // Fractional per-creature parameter jitter
}

// GaitConfig holds baseline stepping parameters.
type GaitConfig struct {
	TriggerDistance float64 `yaml:"trigger_distance"` // Foot drift before a step triggers
	DurationTicks   float64 `yaml:"duration_ticks"`   // Swing length in ticks
	Height          float64 `yaml:"height"`           // Peak foot lift during a swing
	Lead            float64 `yaml:"lead"`             // Velocity lead applied to step targets, in ticks
	Order           []int   `yaml:"order"`            // Cyclic leg scheduling order
}

// JointConfig holds one joint's field influence.
type JointConfig struct {
	Radius float64 `yaml:"radius"`
	Weight float64 `yaml:"weight"`
}

// SkinConfig holds scalar field and contour extraction parameters.
type SkinConfig struct {
	Iso      float64     `yaml:"iso"`       // Field threshold traced by the contour
	CellSize float64     `yaml:"cell_size"` // Sampling grid resolution in world units
	Padding  float64     `yaml:"padding"`   // Extra margin around the influence bounds
	Core     JointConfig `yaml:"core"`
	Hip      JointConfig `yaml:"hip"`
	Knee     JointConfig `yaml:"knee"`
	Foot     JointConfig `yaml:"foot"`
}

// LocomotionConfig holds wander driver parameters.
type LocomotionConfig struct {
	MaxSpeed     float64 `yaml:"max_speed"`     // Core speed cap in units per tick
	ArriveRadius float64 `yaml:"arrive_radius"` // Slowdown radius around the wander target
	WanderScale  float64 `yaml:"wander_scale"`  // Fraction of the margin-inset world targets roam
	WanderSpeed  float64 `yaml:"wander_speed"`  // Noise drift per tick
	Margin       float64 `yaml:"margin"`        // Distance targets keep from the world edge
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowSec float64 `yaml:"window_sec"` // Stats window length in seconds
}

// CameraConfig holds viewport zoom limits.
type CameraConfig struct {
	MinZoom float64 `yaml:"min_zoom"`
	MaxZoom float64 `yaml:"max_zoom"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32   float32 // Window.Width as float32
	ScreenH32   float32 // Window.Height as float32
	WorldW32    float32 // Effective world width as float32
	WorldH32    float32 // Effective world height as float32
	WindowTicks int     // Telemetry window length in ticks at target FPS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults and validating the result. If path is empty, only embedded
// defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Window.Width)
	c.Derived.ScreenH32 = float32(c.Window.Height)

	// World dimensions default to window size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Window.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Window.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)

	c.Derived.WindowTicks = int(c.Telemetry.WindowSec * float64(c.Window.TargetFPS))
}

// Validate rejects configurations the animation core cannot run on.
// Violations are load-time errors; nothing downstream re-checks them.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: dimensions must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TargetFPS <= 0 {
		return fmt.Errorf("window: target_fps must be positive, got %d", c.Window.TargetFPS)
	}
	if c.World.Width < 0 || c.World.Height < 0 {
		return fmt.Errorf("world: dimensions must not be negative, got %dx%d", c.World.Width, c.World.Height)
	}
	if c.Population.Count < 1 {
		return fmt.Errorf("population: count must be at least 1, got %d", c.Population.Count)
	}
	if c.Creature.BoneUpper <= 0 || c.Creature.BoneLower <= 0 {
		return fmt.Errorf("creature: bone lengths must be positive, got %v/%v", c.Creature.BoneUpper, c.Creature.BoneLower)
	}
	if c.Creature.HipSpanX <= 0 || c.Creature.HipSpanY <= 0 {
		return fmt.Errorf("creature: hip span must be positive, got %v/%v", c.Creature.HipSpanX, c.Creature.HipSpanY)
	}
	if c.Creature.Jitter < 0 || c.Creature.Jitter >= 1 {
		return fmt.Errorf("creature: jitter must be in [0, 1), got %v", c.Creature.Jitter)
	}
	if c.Gait.TriggerDistance <= 0 {
		return fmt.Errorf("gait: trigger_distance must be positive, got %v", c.Gait.TriggerDistance)
	}
	if c.Gait.DurationTicks < 1 {
		return fmt.Errorf("gait: duration_ticks must be at least 1, got %v", c.Gait.DurationTicks)
	}
	if c.Gait.Height < 0 {
		return fmt.Errorf("gait: height must not be negative, got %v", c.Gait.Height)
	}
	if c.Gait.Lead < 0 {
		return fmt.Errorf("gait: lead must not be negative, got %v", c.Gait.Lead)
	}
	if err := validateOrder(c.Gait.Order); err != nil {
		return err
	}
	if c.Skin.CellSize <= 0 {
		return fmt.Errorf("skin: cell_size must be positive, got %v", c.Skin.CellSize)
	}
	if c.Skin.Padding < 0 {
		return fmt.Errorf("skin: padding must not be negative, got %v", c.Skin.Padding)
	}
	maxWeight := 0.0
	for _, joint := range []struct {
		name string
		j    JointConfig
	}{
		{"core", c.Skin.Core}, {"hip", c.Skin.Hip}, {"knee", c.Skin.Knee}, {"foot", c.Skin.Foot},
	} {
		if joint.j.Radius <= 0 {
			return fmt.Errorf("skin: %s radius must be positive, got %v", joint.name, joint.j.Radius)
		}
		if joint.j.Weight <= 0 {
			return fmt.Errorf("skin: %s weight must be positive, got %v", joint.name, joint.j.Weight)
		}
		if joint.j.Weight > maxWeight {
			maxWeight = joint.j.Weight
		}
	}
	if c.Skin.Iso <= 0 || c.Skin.Iso >= maxWeight {
		return fmt.Errorf("skin: iso must be in (0, %v), got %v", maxWeight, c.Skin.Iso)
	}
	if c.Locomotion.MaxSpeed <= 0 {
		return fmt.Errorf("locomotion: max_speed must be positive, got %v", c.Locomotion.MaxSpeed)
	}
	if c.Locomotion.ArriveRadius < 0 {
		return fmt.Errorf("locomotion: arrive_radius must not be negative, got %v", c.Locomotion.ArriveRadius)
	}
	if c.Locomotion.WanderScale <= 0 || c.Locomotion.WanderScale > 1 {
		return fmt.Errorf("locomotion: wander_scale must be in (0, 1], got %v", c.Locomotion.WanderScale)
	}
	if c.Locomotion.WanderSpeed <= 0 {
		return fmt.Errorf("locomotion: wander_speed must be positive, got %v", c.Locomotion.WanderSpeed)
	}
	if c.Locomotion.Margin < 0 || 2*c.Locomotion.Margin >= float64(c.Derived.WorldW32) || 2*c.Locomotion.Margin >= float64(c.Derived.WorldH32) {
		return fmt.Errorf("locomotion: margin %v does not fit the %vx%v world", c.Locomotion.Margin, c.Derived.WorldW32, c.Derived.WorldH32)
	}
	if c.Telemetry.WindowSec <= 0 {
		return fmt.Errorf("telemetry: window_sec must be positive, got %v", c.Telemetry.WindowSec)
	}
	if c.Camera.MinZoom <= 0 {
		return fmt.Errorf("camera: min_zoom must be positive, got %v", c.Camera.MinZoom)
	}
	if c.Camera.MaxZoom < c.Camera.MinZoom {
		return fmt.Errorf("camera: max_zoom %v below min_zoom %v", c.Camera.MaxZoom, c.Camera.MinZoom)
	}
	return nil
}

// validateOrder checks that the gait order visits every leg exactly once.
func validateOrder(order []int) error {
	if len(order) != legCount {
		return fmt.Errorf("gait: order must list all %d legs, got %v", legCount, order)
	}
	seen := make([]bool, legCount)
	for _, idx := range order {
		if idx < 0 || idx >= legCount {
			return fmt.Errorf("gait: order index %d out of range [0, %d)", idx, legCount)
		}
		if seen[idx] {
			return fmt.Errorf("gait: order repeats leg %d, got %v", idx, order)
		}
		seen[idx] = true
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
