package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"computer-use-agent/internal/domain/entity"
)

func TestObservationBuilder_OneResultPerOutcome(t *testing.T) {
	browser := &fakeBrowser{url: "https://example.com/page"}
	builder := NewObservationBuilder(browser, nopLogger{})

	results := []entity.IntentResult{
		{
			Intent:  entity.Intent{Name: "navigate"},
			Outcome: entity.SuccessOutcome(map[string]any{"url": "https://example.com/page"}),
		},
		{
			Intent:  entity.Intent{Name: "click_at"},
			Outcome: entity.ErrorOutcome(errors.New("element not found")),
		},
	}

	msg := builder.Build(context.Background(), results)

	require.Equal(t, entity.RoleUser, msg.Role)
	require.Len(t, msg.Parts, 2)

	first := msg.Parts[0].Response
	require.NotNil(t, first)
	assert.Equal(t, "navigate", first.Name)
	assert.Equal(t, "success", first.Response["status"])
	assert.Equal(t, "https://example.com/page", first.Response["url"])
	assert.Contains(t, first.Response, "timestamp")
	require.NotNil(t, first.Screenshot)
	assert.Equal(t, "image/jpeg", first.Screenshot.MIMEType)

	second := msg.Parts[1].Response
	require.NotNil(t, second)
	assert.Equal(t, "click_at", second.Name)
	assert.Equal(t, "error", second.Response["status"])
	assert.Equal(t, "element not found", second.Response["error"])
}

func TestObservationBuilder_CancelledOutcomeCarriesReason(t *testing.T) {
	browser := &fakeBrowser{}
	builder := NewObservationBuilder(browser, nopLogger{})

	msg := builder.Build(context.Background(), []entity.IntentResult{{
		Intent:  entity.Intent{Name: "delete_file"},
		Outcome: entity.CancelledOutcome("user declined"),
	}})

	require.Len(t, msg.Parts, 1)
	response := msg.Parts[0].Response.Response
	assert.Equal(t, "cancelled", response["status"])
	assert.Equal(t, "user declined", response["reason"])
	assert.NotContains(t, response, "error")
}

func TestObservationBuilder_ScreenshotFailureIsNotFatal(t *testing.T) {
	browser := &fakeBrowser{screenshotErr: errors.New("capture failed")}
	builder := NewObservationBuilder(browser, nopLogger{})

	msg := builder.Build(context.Background(), []entity.IntentResult{{
		Intent:  entity.Intent{Name: "wait"},
		Outcome: entity.SuccessOutcome(nil),
	}})

	require.Len(t, msg.Parts, 1)
	result := msg.Parts[0].Response
	require.NotNil(t, result)
	assert.Nil(t, result.Screenshot)
	assert.Equal(t, "success", result.Response["status"])
}
