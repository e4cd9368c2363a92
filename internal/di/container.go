package di

import (
	"context"
	"fmt"

	"computer-use-agent/internal/application/port/input"
	"computer-use-agent/internal/application/port/output"
	"computer-use-agent/internal/domain/entity"
	rodadapter "computer-use-agent/internal/infrastructure/browser/rod"
	"computer-use-agent/internal/infrastructure/llm/gemini"
	"computer-use-agent/internal/infrastructure/llm/openrouter"
	"computer-use-agent/internal/infrastructure/logger"
	"computer-use-agent/internal/infrastructure/userinteraction"
	"computer-use-agent/internal/usecase/agent"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

type Container struct {
	Browser  output.BrowserPort
	Reasoner output.ReasonerPort
	Logger   output.LoggerPort
	UI       output.UserInteractionPort
	Runner   input.AgentRunner
}

type Config struct {
	Agent entity.AgentConfig

	// Provider selects the reasoning backend; ProviderGemini by default.
	Provider string

	// AutoApprove replaces the interactive confirmation prompt with an
	// always-yes decision for non-interactive hosts.
	AutoApprove bool

	// Task names the log file.
	Task string
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	if err := cfg.Agent.Validate(); err != nil {
		return nil, fmt.Errorf("invalid agent config: %w", err)
	}

	log, err := logger.New(cfg.Task)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	browserCfg := rodadapter.DefaultConfig()
	browserCfg.Headless = cfg.Agent.Headless
	browserCfg.Width = cfg.Agent.ScreenWidth
	browserCfg.Height = cfg.Agent.ScreenHeight
	browser, err := rodadapter.NewBrowserAdapter(ctx, browserCfg)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}

	reasoner, err := newReasoner(cfg, log)
	if err != nil {
		browser.Close()
		log.Close()
		return nil, err
	}

	var ui output.UserInteractionPort
	if cfg.AutoApprove {
		ui = &userinteraction.Auto{Decision: true}
	} else {
		ui = userinteraction.NewConsole()
	}

	loop := agent.NewLoop(cfg.Agent, reasoner, browser, ui, log)

	return &Container{
		Browser:  browser,
		Reasoner: reasoner,
		Logger:   log,
		UI:       ui,
		Runner:   loop,
	}, nil
}

func newReasoner(cfg Config, log output.LoggerPort) (output.ReasonerPort, error) {
	switch cfg.Provider {
	case "", ProviderGemini:
		geminiCfg := gemini.DefaultConfig(cfg.Agent.APIKey, cfg.Agent.Model)
		if cfg.Agent.BaseURL != "" {
			geminiCfg.BaseURL = cfg.Agent.BaseURL
		}
		return gemini.NewAdapter(geminiCfg, log)
	case ProviderOpenRouter:
		orCfg := openrouter.DefaultConfig(cfg.Agent.APIKey, cfg.Agent.Model)
		if cfg.Agent.BaseURL != "" {
			orCfg.BaseURL = cfg.Agent.BaseURL
		}
		return openrouter.NewAdapter(orCfg, log), nil
	default:
		return nil, fmt.Errorf("unknown reasoner provider %q", cfg.Provider)
	}
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
