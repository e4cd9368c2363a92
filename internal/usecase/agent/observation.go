package agent

import (
	"context"
	"time"

	"computer-use-agent/internal/application/port/output"
	"computer-use-agent/internal/domain/entity"
)

// ObservationBuilder packages executor outcomes into the tool-result message
// the reasoning service expects as its next input. Each result gets the
// current page URL, a timestamp, and a freshly captured screenshot.
type ObservationBuilder struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewObservationBuilder(browser output.BrowserPort, logger output.LoggerPort) *ObservationBuilder {
	return &ObservationBuilder{browser: browser, logger: logger}
}

// Build returns a single user message carrying one tool result per outcome,
// in dispatch order. A failed screenshot capture is logged and the result is
// emitted without an image.
func (b *ObservationBuilder) Build(ctx context.Context, results []entity.IntentResult) entity.Message {
	parts := make([]entity.Part, 0, len(results))

	for _, r := range results {
		response := map[string]any{
			"status":    string(r.Outcome.Status),
			"url":       b.browser.CurrentURL(),
			"timestamp": time.Now().Unix(),
		}
		for k, v := range r.Outcome.Payload {
			response[k] = v
		}
		if r.Outcome.Status == entity.OutcomeError && r.Outcome.Error != "" {
			response["error"] = r.Outcome.Error
		}

		result := &entity.ToolResult{
			Name:     r.Intent.Name,
			Response: response,
		}

		shot, err := b.browser.Screenshot(ctx)
		if err != nil {
			b.logger.Warn("Screenshot capture failed, emitting result without image",
				"intent", r.Intent.Name, "error", err)
		} else {
			result.Screenshot = shot.ToBlob()
		}

		parts = append(parts, entity.Part{Response: result})
	}

	return entity.Message{Role: entity.RoleUser, Parts: parts}
}
