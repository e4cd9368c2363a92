package entity

import (
	"fmt"
	"time"
)

// AgentConfig is the immutable set of run parameters. It is created once at
// construction and never mutated afterwards.
type AgentConfig struct {
	Model        string
	ScreenWidth  int
	ScreenHeight int
	MaxTurns     int
	Timeout      time.Duration
	WaitDelay    time.Duration
	Headless     bool

	// SafetyStrict removes the riskier actions from the vocabulary offered
	// to the model. Confirmations gates risky intents behind a human
	// decision before execution.
	SafetyStrict  bool
	Confirmations bool

	APIKey  string
	BaseURL string
}

func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Model:         "gemini-2.5-computer-use-preview-10-2025",
		ScreenWidth:   1440,
		ScreenHeight:  900,
		MaxTurns:      20,
		Timeout:       30 * time.Second,
		WaitDelay:     5 * time.Second,
		Headless:      false,
		SafetyStrict:  true,
		Confirmations: true,
	}
}

func (c AgentConfig) Validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("screen dimensions must be positive, got %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("max turns must be positive, got %d", c.MaxTurns)
	}
	if c.Model == "" {
		return fmt.Errorf("model identifier is required")
	}
	return nil
}
