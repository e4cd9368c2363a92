package agent

import (
	"context"
	"fmt"
	"time"

	"computer-use-agent/internal/application/port/output"
	"computer-use-agent/internal/domain/entity"
)

// searchURL is where the search intent lands.
const searchURL = "https://www.google.com"

// Executor translates one decided intent into browser operations and returns
// a structured outcome. Backend failures are caught and converted to error
// outcomes; nothing propagates as a fault out of Execute.
type Executor struct {
	browser   output.BrowserPort
	logger    output.LoggerPort
	width     int
	height    int
	opTimeout time.Duration
	waitDelay time.Duration
}

func NewExecutor(browser output.BrowserPort, logger output.LoggerPort, cfg entity.AgentConfig) *Executor {
	return &Executor{
		browser:   browser,
		logger:    logger,
		width:     cfg.ScreenWidth,
		height:    cfg.ScreenHeight,
		opTimeout: cfg.Timeout,
		waitDelay: cfg.WaitDelay,
	}
}

// Execute dispatches by intent kind. The switch is exhaustive over the
// vocabulary; unrecognized names produce an error outcome and the turn
// continues.
func (e *Executor) Execute(ctx context.Context, intent entity.Intent) entity.Outcome {
	kind, ok := intent.Kind()
	if !ok {
		e.logger.Warn("Unknown intent requested", "name", intent.Name)
		return entity.ErrorOutcome(fmt.Errorf("%w: %q", ErrUnknownIntent, intent.Name))
	}

	e.logger.Info("Executing intent", "name", intent.Name, "args", intent.Args)

	ctx, cancel := context.WithTimeout(ctx, e.opTimeout)
	defer cancel()

	switch kind {
	case entity.IntentNavigate:
		return e.navigate(ctx, intent)
	case entity.IntentClickAt:
		return e.clickAt(ctx, intent)
	case entity.IntentTypeTextAt:
		return e.typeTextAt(ctx, intent)
	case entity.IntentScrollDocument:
		return e.scrollDocument(ctx, intent)
	case entity.IntentScrollAt:
		return e.scrollAt(ctx, intent)
	case entity.IntentWait:
		return e.wait(ctx)
	case entity.IntentGoBack:
		return e.history(ctx, e.browser.GoBack)
	case entity.IntentGoForward:
		return e.history(ctx, e.browser.GoForward)
	case entity.IntentSearch:
		return e.search(ctx)
	case entity.IntentKeyCombination:
		return e.keyCombination(ctx, intent)
	}
	return entity.ErrorOutcome(fmt.Errorf("%w: %q", ErrUnknownIntent, intent.Name))
}

func (e *Executor) navigate(ctx context.Context, intent entity.Intent) entity.Outcome {
	url, ok := intent.StringArg("url")
	if !ok || url == "" {
		return entity.ErrorOutcome(missingArg("navigate", "url"))
	}
	if err := e.browser.Navigate(ctx, url); err != nil {
		return entity.ErrorOutcome(err)
	}
	payload := map[string]any{"url": e.browser.CurrentURL()}
	if title, err := e.browser.Title(ctx); err == nil {
		payload["title"] = title
	}
	return entity.SuccessOutcome(payload)
}

func (e *Executor) clickAt(ctx context.Context, intent entity.Intent) entity.Outcome {
	x, y := e.pixelPosition(intent)
	if err := e.browser.ClickAt(ctx, x, y); err != nil {
		return entity.ErrorOutcome(err)
	}
	return entity.SuccessOutcome(map[string]any{
		"position": map[string]any{"x": x, "y": y},
	})
}

func (e *Executor) typeTextAt(ctx context.Context, intent entity.Intent) entity.Outcome {
	text, ok := intent.StringArg("text")
	if !ok {
		return entity.ErrorOutcome(missingArg("type_text_at", "text"))
	}
	x, y := e.pixelPosition(intent)
	clearBefore := intent.BoolArg("clear_before_typing", true)
	pressEnter := intent.BoolArg("press_enter", true)

	if err := e.browser.FocusAt(ctx, x, y); err != nil {
		return entity.ErrorOutcome(err)
	}
	if clearBefore {
		if err := e.browser.PressKey(ctx, "Control+a"); err != nil {
			return entity.ErrorOutcome(err)
		}
	}
	if err := e.browser.TypeText(ctx, text); err != nil {
		return entity.ErrorOutcome(err)
	}
	if pressEnter {
		if err := e.browser.PressKey(ctx, "Enter"); err != nil {
			return entity.ErrorOutcome(err)
		}
	}
	return entity.SuccessOutcome(map[string]any{
		"text":     text,
		"position": map[string]any{"x": x, "y": y},
	})
}

// scrollDocument pages the whole document with the keyboard.
func (e *Executor) scrollDocument(ctx context.Context, intent entity.Intent) entity.Outcome {
	direction, _ := intent.StringArg("direction")
	if direction == "" {
		direction = "down"
	}

	var combo string
	switch direction {
	case "down":
		combo = "PageDown"
	case "up":
		combo = "PageUp"
	case "left":
		combo = "Control+PageUp"
	case "right":
		combo = "Control+PageDown"
	default:
		return entity.ErrorOutcome(fmt.Errorf("scroll_document: unknown direction %q", direction))
	}

	if err := e.browser.PressKey(ctx, combo); err != nil {
		return entity.ErrorOutcome(err)
	}
	return entity.SuccessOutcome(map[string]any{"direction": direction})
}

func (e *Executor) scrollAt(ctx context.Context, intent entity.Intent) entity.Outcome {
	x, y := e.pixelPosition(intent)
	direction, _ := intent.StringArg("direction")
	if direction == "" {
		direction = "down"
	}
	magnitude, ok := intent.IntArg("magnitude")
	if !ok {
		magnitude = 800
	}
	delta := magnitude / 10

	var dx, dy int
	switch direction {
	case "down":
		dy = delta
	case "up":
		dy = -delta
	case "right":
		dx = delta
	case "left":
		dx = -delta
	default:
		return entity.ErrorOutcome(fmt.Errorf("scroll_at: unknown direction %q", direction))
	}

	if err := e.browser.ScrollBy(ctx, dx, dy); err != nil {
		return entity.ErrorOutcome(err)
	}
	return entity.SuccessOutcome(map[string]any{
		"position":  map[string]any{"x": x, "y": y},
		"direction": direction,
	})
}

func (e *Executor) wait(ctx context.Context) entity.Outcome {
	select {
	case <-time.After(e.waitDelay):
	case <-ctx.Done():
		return entity.ErrorOutcome(ctx.Err())
	}
	return entity.SuccessOutcome(map[string]any{"waited": e.waitDelay.Seconds()})
}

func (e *Executor) history(ctx context.Context, move func(context.Context) error) entity.Outcome {
	if err := move(ctx); err != nil {
		return entity.ErrorOutcome(err)
	}
	return entity.SuccessOutcome(map[string]any{"url": e.browser.CurrentURL()})
}

func (e *Executor) search(ctx context.Context) entity.Outcome {
	if err := e.browser.Navigate(ctx, searchURL); err != nil {
		return entity.ErrorOutcome(err)
	}
	return entity.SuccessOutcome(map[string]any{"url": e.browser.CurrentURL()})
}

func (e *Executor) keyCombination(ctx context.Context, intent entity.Intent) entity.Outcome {
	keys, ok := intent.StringArg("keys")
	if !ok || keys == "" {
		return entity.ErrorOutcome(missingArg("key_combination", "keys"))
	}
	if err := e.browser.PressKey(ctx, keys); err != nil {
		return entity.ErrorOutcome(err)
	}
	return entity.SuccessOutcome(map[string]any{"keys": keys})
}

func (e *Executor) pixelPosition(intent entity.Intent) (int, int) {
	normX, _ := intent.IntArg("x")
	normY, _ := intent.IntArg("y")
	return MapToPixels(normX, normY, e.width, e.height)
}
