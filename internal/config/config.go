// Package config provides YAML-based game configuration loading and
// difficulty management for pong.
package config

import (
	"errors"
	"fmt"
)

// PongConfig contains all tunables of a match.
type PongConfig struct {
	Physics    PongPhysics      `yaml:"physics"`
	Paddles    PongPaddles      `yaml:"paddles"`
	Ball       PongBall         `yaml:"ball"`
	Gameplay   PongGameplay     `yaml:"gameplay"`
	PowerUps   PowerUpConfig    `yaml:"power_ups"`
	CPU        PongCPU          `yaml:"cpu"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PongPhysics controls the simulation step.
type PongPhysics struct {
	Tolerance          float64 `yaml:"tolerance"`            // float comparison threshold
	FrameTimeThreshold float64 `yaml:"frame_time_threshold"` // longest physics sub-step, seconds
}

// PongPaddles defines paddle geometry and handling. Speeds are world units
// per second.
type PongPaddles struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Offset     float64 `yaml:"offset"` // distance of each paddle center from y=0
	Accel      float64 `yaml:"accel"`  // velocity added per frame while held
	DecelRatio float64 `yaml:"decel_ratio"`
	MaxSpeed   float64 `yaml:"max_speed"`
	SpeedRatio float64 `yaml:"speed_ratio"`
}

// PongBall defines the ball.
type PongBall struct {
	Radius       float64 `yaml:"radius"`
	Speed        float64 `yaml:"speed"`     // serve speed
	MinSpeed     float64 `yaml:"min_speed"` // |vx| floor after a paddle hit
	MaxSpeed     float64 `yaml:"max_speed"` // |vx| ceiling after a paddle hit
	PrepareDelay float64 `yaml:"prepare_delay"`
}

// PongGameplay defines match rules.
type PongGameplay struct {
	WinScore               int     `yaml:"win_score"`
	SafeWallStuckThreshold int     `yaml:"safe_wall_stuck_threshold"`
	HitCueInterval         float64 `yaml:"hit_cue_interval"`
	AutoServe              bool    `yaml:"auto_serve"`
}

// PowerUpConfig defines the optional power-up rules.
type PowerUpConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Duration          float64 `yaml:"duration"`
	SpeedUpDuration   float64 `yaml:"speed_up_duration"`
	SpeedDownDuration float64 `yaml:"speed_down_duration"`
	SpeedDelta        float64 `yaml:"speed_delta"`
	SizeUpScale       float64 `yaml:"size_up_scale"`
	SizeDownScale     float64 `yaml:"size_down_scale"`
}

// PongCPU tunes the computer opponent.
type PongCPU struct {
	MinSkill float64 `yaml:"min_skill"` // 0-1, 1 = perfect tracking
	MaxSkill float64 `yaml:"max_skill"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a match.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // points or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to the serve speed at max difficulty
}

// Validate rejects configurations the simulation cannot run with.
func (c PongConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("physics.tolerance", c.Physics.Tolerance)
	positive("physics.frame_time_threshold", c.Physics.FrameTimeThreshold)
	positive("paddles.width", c.Paddles.Width)
	positive("paddles.height", c.Paddles.Height)
	positive("paddles.accel", c.Paddles.Accel)
	positive("paddles.max_speed", c.Paddles.MaxSpeed)
	positive("paddles.speed_ratio", c.Paddles.SpeedRatio)
	positive("ball.radius", c.Ball.Radius)
	positive("ball.speed", c.Ball.Speed)
	positive("ball.min_speed", c.Ball.MinSpeed)
	positive("ball.max_speed", c.Ball.MaxSpeed)

	if c.Paddles.DecelRatio < 0 || c.Paddles.DecelRatio >= 1 {
		errs = append(errs, fmt.Errorf("paddles.decel_ratio must be in [0, 1), got %v", c.Paddles.DecelRatio))
	}
	if c.Ball.MinSpeed > c.Ball.MaxSpeed {
		errs = append(errs, fmt.Errorf("ball.min_speed %v exceeds ball.max_speed %v", c.Ball.MinSpeed, c.Ball.MaxSpeed))
	}
	if c.Ball.PrepareDelay < 0 {
		errs = append(errs, fmt.Errorf("ball.prepare_delay must not be negative, got %v", c.Ball.PrepareDelay))
	}
	if c.Gameplay.WinScore <= 0 {
		errs = append(errs, fmt.Errorf("gameplay.win_score must be positive, got %d", c.Gameplay.WinScore))
	}
	if c.Gameplay.SafeWallStuckThreshold <= 0 {
		errs = append(errs, fmt.Errorf("gameplay.safe_wall_stuck_threshold must be positive, got %d", c.Gameplay.SafeWallStuckThreshold))
	}
	if c.PowerUps.Enabled {
		positive("power_ups.duration", c.PowerUps.Duration)
		positive("power_ups.speed_up_duration", c.PowerUps.SpeedUpDuration)
		positive("power_ups.speed_down_duration", c.PowerUps.SpeedDownDuration)
		positive("power_ups.size_up_scale", c.PowerUps.SizeUpScale)
		positive("power_ups.size_down_scale", c.PowerUps.SizeDownScale)
	}

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset validates a preset name from the command line.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.3
	default:
		return 0.0
	}
}

// SpeedRatioForPreset returns the paddle speed ratio for a preset and
// whether the preset sets one at all.
func SpeedRatioForPreset(preset DifficultyPreset) (float64, bool) {
	switch preset {
	case DifficultyEasy:
		return 0.8, true
	case DifficultyNormal:
		return 1.0, true
	case DifficultyHard:
		return 1.3, true
	default:
		return 0, false
	}
}
