package input

import (
	"context"

	"computer-use-agent/internal/domain/entity"
)

// AgentRunner drives one task to completion. The returned RunResult is
// always non-nil and always carries a success flag and, on failure, a
// human-readable reason; the error is non-nil only for loop-level
// infrastructure faults (reasoning service unreachable or malformed) and
// for cancellation.
type AgentRunner interface {
	Run(ctx context.Context, task, startURL string) (*entity.RunResult, error)
}
