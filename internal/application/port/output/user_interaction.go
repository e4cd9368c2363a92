package output

import (
	"context"

	"computer-use-agent/internal/domain/entity"
)

// UserInteractionPort is the human side of the loop: the blocking yes/no
// confirmation for gated intents plus progress display. Hosts embedding the
// core without a terminal supply an auto-deciding implementation.
type UserInteractionPort interface {
	// Confirm blocks until the user approves or declines the intent. It may
	// block indefinitely.
	Confirm(ctx context.Context, intent entity.Intent, reason string) (bool, error)

	ShowTurn(turn, maxTurns int)
	ShowThinking(text string)
	ShowIntent(intent entity.Intent)
	ShowOutcome(intent entity.Intent, outcome entity.Outcome)
}
