package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driven by the platform (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameTime is the wall-clock duration of one tick in seconds.
func (c RuntimeConfig) FrameTime() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the platform-facing summary of a match.
type GameState struct {
	Score1   int
	Score2   int
	Winner   PlayerID // zero until the match is over
	GameOver bool
	Paused   bool
	Ticks    uint64
}

// Score returns the score of the given player.
func (s GameState) Score(p PlayerID) int {
	if p == Player2 {
		return s.Score2
	}
	return s.Score1
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
