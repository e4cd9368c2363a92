package output

import (
	"context"

	"computer-use-agent/internal/domain/entity"
)

// GenerateRequest carries the full ordered conversation each call; the
// service is stateless between calls.
type GenerateRequest struct {
	Messages        []entity.Message
	ExcludedActions []string
	IncludeThoughts bool
}

// GenerateResponse is the service's reply interpreted for the loop: the raw
// message to append to the conversation, the textual content, and the
// intents to dispatch. An empty intent list means the text is the final
// answer.
type GenerateResponse struct {
	Message entity.Message
	Text    string
	Intents []entity.Intent
}

// ReasonerPort is the hosted reasoning service.
type ReasonerPort interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}
