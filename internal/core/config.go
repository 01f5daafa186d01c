package core

import "time"

// Fallbacks for a RuntimeConfig left partly zero.
const (
	DefaultScreenW  = 80
	DefaultScreenH  = 24
	DefaultTickRate = 60
)

// RuntimeConfig is what a game gets on Reset.
type RuntimeConfig struct {
	ScreenW  int   // columns available to the game
	ScreenH  int   // rows available to the game
	TickRate int   // steps per second
	Seed     int64 // 0 picks one from the clock in WithDefaults
}

// WithDefaults fills zero or negative fields.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	if c.ScreenW <= 0 {
		c.ScreenW = DefaultScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = DefaultScreenH
	}
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// GameState is the status a game reports after every step.
type GameState struct {
	Score    int
	GameOver bool
	Won      bool // ended by clearing the final goal rather than running out of moves
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State   GameState
	Changed bool // the board moved this tick
}
