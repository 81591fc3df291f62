package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultPongConfig returns the hardcoded Pong configuration. It matches
// defaults/pong.yaml.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Physics: PongPhysics{
			Tolerance:          1e-4,
			FrameTimeThreshold: 0.01,
		},
		Paddles: PongPaddles{
			Width:      15,
			Height:     1.5,
			Offset:     40,
			Accel:      6,
			DecelRatio: 0.8,
			MaxSpeed:   60,
			SpeedRatio: 1.0,
		},
		Ball: PongBall{
			Radius:       3,
			Speed:        40,
			MinSpeed:     20,
			MaxSpeed:     70,
			PrepareDelay: 1.0,
		},
		Gameplay: PongGameplay{
			WinScore:               5,
			SafeWallStuckThreshold: 10,
			HitCueInterval:         0.1,
			AutoServe:              true,
		},
		PowerUps: PowerUpConfig{
			Enabled:           false,
			Duration:          3,
			SpeedUpDuration:   0.5,
			SpeedDownDuration: 1.5,
			SpeedDelta:        40,
			SizeUpScale:       2,
			SizeDownScale:     0.5,
		},
		CPU: PongCPU{
			MinSkill: 0.6,
			MaxSkill: 0.85,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 8,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}
