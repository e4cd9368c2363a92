package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"computer-use-agent/internal/domain/entity"
)

func newTestExecutor(browser *fakeBrowser) *Executor {
	return NewExecutor(browser, nopLogger{}, testConfig())
}

func TestExecutor_Navigate(t *testing.T) {
	browser := &fakeBrowser{title: "Example Domain"}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{
		Name: "navigate",
		Args: map[string]any{"url": "https://example.com"},
	})

	require.Equal(t, entity.OutcomeSuccess, outcome.Status)
	assert.Equal(t, "https://example.com", outcome.Payload["url"])
	assert.Equal(t, "Example Domain", outcome.Payload["title"])
	assert.Equal(t, []string{"navigate https://example.com"}, browser.calls)
}

func TestExecutor_NavigateMissingURL(t *testing.T) {
	browser := &fakeBrowser{}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{Name: "navigate"})

	require.Equal(t, entity.OutcomeError, outcome.Status)
	assert.Contains(t, outcome.Error, "url")
	assert.Empty(t, browser.calls)
}

func TestExecutor_UnknownIntent(t *testing.T) {
	browser := &fakeBrowser{}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{Name: "drag_and_drop"})

	require.Equal(t, entity.OutcomeError, outcome.Status)
	assert.Contains(t, outcome.Error, "drag_and_drop")
	assert.True(t, outcome.Failed())
	assert.Empty(t, browser.calls)
}

func TestExecutor_ClickAtMapsGridToPixels(t *testing.T) {
	browser := &fakeBrowser{}
	exec := newTestExecutor(browser)

	// 1440x900 viewport: (500, 500) on the 0-999 grid lands at (720, 450).
	outcome := exec.Execute(context.Background(), entity.Intent{
		Name: "click_at",
		Args: map[string]any{"x": float64(500), "y": float64(500)},
	})

	require.Equal(t, entity.OutcomeSuccess, outcome.Status)
	assert.Equal(t, []string{"click 720,450"}, browser.calls)

	pos, ok := outcome.Payload["position"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 720, pos["x"])
	assert.Equal(t, 450, pos["y"])
}

func TestExecutor_ClickAtBackendFailureBecomesErrorOutcome(t *testing.T) {
	browser := &fakeBrowser{clickErr: errors.New("target closed")}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{
		Name: "click_at",
		Args: map[string]any{"x": 10, "y": 10},
	})

	require.Equal(t, entity.OutcomeError, outcome.Status)
	assert.Contains(t, outcome.Error, "target closed")
}

func TestExecutor_TypeTextAtFullSequence(t *testing.T) {
	browser := &fakeBrowser{}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{
		Name: "type_text_at",
		Args: map[string]any{"text": "hello", "x": 0, "y": 0},
	})

	require.Equal(t, entity.OutcomeSuccess, outcome.Status)
	assert.Equal(t, []string{
		"focus 0,0",
		"press Control+a",
		"type hello",
		"press Enter",
	}, browser.calls)
}

func TestExecutor_TypeTextAtWithoutClearOrEnter(t *testing.T) {
	browser := &fakeBrowser{}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{
		Name: "type_text_at",
		Args: map[string]any{
			"text":                "abc",
			"x":                   0,
			"y":                   0,
			"clear_before_typing": false,
			"press_enter":         false,
		},
	})

	require.Equal(t, entity.OutcomeSuccess, outcome.Status)
	assert.Equal(t, []string{"focus 0,0", "type abc"}, browser.calls)
}

func TestExecutor_TypeTextAtMissingText(t *testing.T) {
	browser := &fakeBrowser{}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{
		Name: "type_text_at",
		Args: map[string]any{"x": 0, "y": 0},
	})

	require.Equal(t, entity.OutcomeError, outcome.Status)
	assert.Contains(t, outcome.Error, "text")
	assert.Empty(t, browser.calls)
}

func TestExecutor_ScrollDocumentDirections(t *testing.T) {
	cases := []struct {
		direction string
		combo     string
	}{
		{"down", "press PageDown"},
		{"up", "press PageUp"},
		{"left", "press Control+PageUp"},
		{"right", "press Control+PageDown"},
	}

	for _, tc := range cases {
		t.Run(tc.direction, func(t *testing.T) {
			browser := &fakeBrowser{}
			exec := newTestExecutor(browser)

			outcome := exec.Execute(context.Background(), entity.Intent{
				Name: "scroll_document",
				Args: map[string]any{"direction": tc.direction},
			})

			require.Equal(t, entity.OutcomeSuccess, outcome.Status)
			assert.Equal(t, []string{tc.combo}, browser.calls)
		})
	}
}

func TestExecutor_ScrollDocumentUnknownDirection(t *testing.T) {
	browser := &fakeBrowser{}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{
		Name: "scroll_document",
		Args: map[string]any{"direction": "sideways"},
	})

	require.Equal(t, entity.OutcomeError, outcome.Status)
	assert.Contains(t, outcome.Error, "sideways")
}

func TestExecutor_ScrollAtScalesMagnitude(t *testing.T) {
	browser := &fakeBrowser{}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{
		Name: "scroll_at",
		Args: map[string]any{"x": 500, "y": 500, "direction": "down", "magnitude": float64(400)},
	})

	require.Equal(t, entity.OutcomeSuccess, outcome.Status)
	assert.Equal(t, []string{"scroll 0,40"}, browser.calls)
}

func TestExecutor_ScrollAtDefaultsToDown800(t *testing.T) {
	browser := &fakeBrowser{}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{
		Name: "scroll_at",
		Args: map[string]any{"x": 0, "y": 0},
	})

	require.Equal(t, entity.OutcomeSuccess, outcome.Status)
	assert.Equal(t, []string{"scroll 0,80"}, browser.calls)
}

func TestExecutor_ScrollAtHorizontal(t *testing.T) {
	browser := &fakeBrowser{}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{
		Name: "scroll_at",
		Args: map[string]any{"x": 0, "y": 0, "direction": "left", "magnitude": float64(500)},
	})

	require.Equal(t, entity.OutcomeSuccess, outcome.Status)
	assert.Equal(t, []string{"scroll -50,0"}, browser.calls)
}

func TestExecutor_Wait(t *testing.T) {
	browser := &fakeBrowser{}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{Name: "wait"})

	require.Equal(t, entity.OutcomeSuccess, outcome.Status)
	assert.Contains(t, outcome.Payload, "waited")
	assert.Empty(t, browser.calls)
}

func TestExecutor_GoBack(t *testing.T) {
	browser := &fakeBrowser{url: "https://current.example"}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{Name: "go_back"})

	require.Equal(t, entity.OutcomeSuccess, outcome.Status)
	assert.Equal(t, "https://previous.example", outcome.Payload["url"])
	assert.Equal(t, []string{"back"}, browser.calls)
}

func TestExecutor_GoForward(t *testing.T) {
	browser := &fakeBrowser{}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{Name: "go_forward"})

	require.Equal(t, entity.OutcomeSuccess, outcome.Status)
	assert.Equal(t, []string{"forward"}, browser.calls)
}

func TestExecutor_SearchNavigatesToSearchEngine(t *testing.T) {
	browser := &fakeBrowser{}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{Name: "search"})

	require.Equal(t, entity.OutcomeSuccess, outcome.Status)
	assert.Equal(t, []string{"navigate https://www.google.com"}, browser.calls)
}

func TestExecutor_KeyCombination(t *testing.T) {
	browser := &fakeBrowser{}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{
		Name: "key_combination",
		Args: map[string]any{"keys": "Control+Shift+t"},
	})

	require.Equal(t, entity.OutcomeSuccess, outcome.Status)
	assert.Equal(t, []string{"press Control+Shift+t"}, browser.calls)
}

func TestExecutor_KeyCombinationMissingKeys(t *testing.T) {
	browser := &fakeBrowser{}
	exec := newTestExecutor(browser)

	outcome := exec.Execute(context.Background(), entity.Intent{Name: "key_combination"})

	require.Equal(t, entity.OutcomeError, outcome.Status)
	assert.Contains(t, outcome.Error, "keys")
}
