package userinteraction

import (
	"context"

	"computer-use-agent/internal/application/port/output"
	"computer-use-agent/internal/domain/entity"
)

var _ output.UserInteractionPort = (*Auto)(nil)

// Auto is the non-interactive user-interaction implementation for hosts
// without a terminal: every confirmation resolves to the fixed decision and
// progress display is suppressed.
type Auto struct {
	Decision bool
}

func (a *Auto) Confirm(ctx context.Context, intent entity.Intent, reason string) (bool, error) {
	return a.Decision, nil
}

func (a *Auto) ShowTurn(turn, maxTurns int) {}

func (a *Auto) ShowThinking(text string) {}

func (a *Auto) ShowIntent(intent entity.Intent) {}

func (a *Auto) ShowOutcome(intent entity.Intent, outcome entity.Outcome) {}
