package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"computer-use-agent/internal/di"
	"computer-use-agent/internal/domain/entity"
	"computer-use-agent/internal/infrastructure/env"
)

var (
	flagURL      string
	flagProvider string
	flagModel    string
	flagHeadless bool
	flagMaxTurns int
	flagYes      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "agent <task>",
		Short:        "Run a computer-use agent against a browser",
		Long:         "Drives a browser turn by turn with a computer-use reasoning model until the given task completes or the turn budget runs out.",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&flagURL, "url", "", "starting URL")
	rootCmd.Flags().StringVar(&flagProvider, "provider", "", "reasoner provider: gemini or openrouter")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "model identifier override")
	rootCmd.Flags().BoolVar(&flagHeadless, "headless", false, "run the browser headless")
	rootCmd.Flags().IntVar(&flagMaxTurns, "max-turns", 0, "turn budget override")
	rootCmd.Flags().BoolVar(&flagYes, "yes", false, "auto-approve safety confirmations (non-interactive)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	task := strings.TrimSpace(strings.Join(args, " "))
	if task == "" {
		return fmt.Errorf("task must not be empty")
	}

	envService := env.NewEnvService()
	cfg := buildConfig(envService, task)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	defer container.Close()

	container.Logger.Info("Task started", "task", task, "url", flagURL)

	result, runErr := container.Runner.Run(ctx, task, flagURL)
	printSummary(result)

	if runErr != nil {
		container.Logger.Error("Run failed", "error", runErr)
	}
	if !result.Success {
		return fmt.Errorf("task did not complete: %s", result.Reason)
	}
	return nil
}

// buildConfig assembles the run configuration: defaults, then environment,
// then CLI flags.
func buildConfig(envService *env.EnvService, task string) di.Config {
	agentCfg := entity.DefaultAgentConfig()

	provider := flagProvider
	if provider == "" {
		provider = envService.Get("REASONER_PROVIDER")
	}

	switch provider {
	case di.ProviderOpenRouter:
		agentCfg.APIKey = envService.MustGet("OPENROUTER_API_KEY")
		agentCfg.Model = envService.MustGet("OPENROUTER_MODEL_NAME")
	default:
		agentCfg.APIKey = envService.MustGet("GOOGLE_API_KEY")
		if model := envService.Get("MODEL_NAME"); model != "" {
			agentCfg.Model = model
		}
	}

	agentCfg.BaseURL = envService.Get("REASONER_BASE_URL")
	agentCfg.ScreenWidth = envService.GetInt("SCREEN_WIDTH", agentCfg.ScreenWidth)
	agentCfg.ScreenHeight = envService.GetInt("SCREEN_HEIGHT", agentCfg.ScreenHeight)
	agentCfg.MaxTurns = envService.GetInt("MAX_TURNS", agentCfg.MaxTurns)
	agentCfg.Timeout = envService.GetDuration("OPERATION_TIMEOUT", agentCfg.Timeout)
	agentCfg.Headless = envService.GetBool("HEADLESS", agentCfg.Headless)
	agentCfg.SafetyStrict = envService.GetBool("SAFETY_STRICT", agentCfg.SafetyStrict)

	if flagModel != "" {
		agentCfg.Model = flagModel
	}
	if flagHeadless {
		agentCfg.Headless = true
	}
	if flagMaxTurns > 0 {
		agentCfg.MaxTurns = flagMaxTurns
	}

	return di.Config{
		Agent:       agentCfg,
		Provider:    provider,
		AutoApprove: flagYes,
		Task:        task,
	}
}

func printSummary(result *entity.RunResult) {
	bold := color.New(color.Bold)
	bold.Println("\n=== AGENT RESULTS ===")
	fmt.Printf("Task:       %s\n", result.Task)

	if result.Success {
		color.Green("Success:    true")
	} else {
		color.Red("Success:    false (%s)", result.Reason)
	}

	fmt.Printf("Turns:      %d\n", len(result.Turns))
	fmt.Printf("Final URL:  %s\n", result.FinalURL)
	fmt.Printf("Elapsed:    %.2fs\n", result.Elapsed.Seconds())

	if result.FinalAnswer != "" {
		bold.Println("\nFinal answer:")
		fmt.Println(result.FinalAnswer)
	}
}
