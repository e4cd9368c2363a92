package userinteraction

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"computer-use-agent/internal/application/port/output"
	"computer-use-agent/internal/domain/entity"
)

var _ output.UserInteractionPort = (*Console)(nil)

// Console is the interactive user-interaction implementation: gated intents
// block on a terminal yes/no prompt, and run progress is printed as it
// happens.
type Console struct {
	reader *bufio.Reader
}

func NewConsole() *Console {
	return &Console{reader: bufio.NewReader(os.Stdin)}
}

func (c *Console) Confirm(ctx context.Context, intent entity.Intent, reason string) (bool, error) {
	red := color.New(color.FgRed, color.Bold)
	red.Println("\n!! SAFETY WARNING !!")
	fmt.Printf("Action:    %s\n", intent.Name)
	fmt.Printf("Arguments: %s\n", formatArgs(intent.Args))
	fmt.Printf("Reason:    %s\n", reason)
	fmt.Println("\nThis action may have significant consequences. Do you want to proceed?")

	for {
		fmt.Print("Enter 'y' to proceed, 'n' to cancel: ")
		answer, err := c.reader.ReadString('\n')
		if err != nil {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Println("Please enter 'y' or 'n'")
	}
}

func (c *Console) ShowTurn(turn, maxTurns int) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Printf("\n--- Turn %d/%d ---\n", turn, maxTurns)
}

func (c *Console) ShowThinking(text string) {
	if text == "" {
		return
	}
	dim := color.New(color.Faint)
	dim.Println(truncate(text, 500))
}

func (c *Console) ShowIntent(intent entity.Intent) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Printf("-> %s", intent.Name)
	if args := formatArgs(intent.Args); args != "{}" {
		dim := color.New(color.Faint)
		dim.Printf(" %s", truncate(args, 120))
	}
	fmt.Println()
}

func (c *Console) ShowOutcome(intent entity.Intent, outcome entity.Outcome) {
	switch outcome.Status {
	case entity.OutcomeSuccess:
		green := color.New(color.FgGreen)
		green.Println("   ok")
	case entity.OutcomeCancelled:
		yellow := color.New(color.FgYellow)
		yellow.Println("   cancelled")
	default:
		red := color.New(color.FgRed)
		red.Printf("   error: %s\n", truncate(outcome.Error, 300))
	}
}

func formatArgs(args map[string]any) string {
	if len(args) == 0 {
		return "{}"
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Sprint(args)
	}
	return string(data)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
