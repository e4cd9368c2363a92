package agent

import (
	"context"
	"fmt"

	"computer-use-agent/internal/application/port/output"
	"computer-use-agent/internal/domain/entity"
)

// nopLogger discards everything; tests assert on behavior, not logs.
type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

func (l nopLogger) WithField(key string, value any) output.LoggerPort  { return l }
func (l nopLogger) WithFields(fields map[string]any) output.LoggerPort { return l }

func (nopLogger) Close() error { return nil }

// fakeBrowser records every operation in order and lets tests inject
// failures per operation.
type fakeBrowser struct {
	calls []string

	url   string
	title string

	navigateErr   error
	clickErr      error
	focusErr      error
	typeErr       error
	pressErr      error
	scrollErr     error
	screenshotErr error
	backErr       error
	forwardErr    error
}

var _ output.BrowserPort = (*fakeBrowser)(nil)

func (b *fakeBrowser) record(format string, args ...any) {
	b.calls = append(b.calls, fmt.Sprintf(format, args...))
}

func (b *fakeBrowser) Navigate(ctx context.Context, url string) error {
	b.record("navigate %s", url)
	if b.navigateErr != nil {
		return b.navigateErr
	}
	b.url = url
	return nil
}

func (b *fakeBrowser) ClickAt(ctx context.Context, x, y int) error {
	b.record("click %d,%d", x, y)
	return b.clickErr
}

func (b *fakeBrowser) FocusAt(ctx context.Context, x, y int) error {
	b.record("focus %d,%d", x, y)
	return b.focusErr
}

func (b *fakeBrowser) TypeText(ctx context.Context, text string) error {
	b.record("type %s", text)
	return b.typeErr
}

func (b *fakeBrowser) PressKey(ctx context.Context, combo string) error {
	b.record("press %s", combo)
	return b.pressErr
}

func (b *fakeBrowser) ScrollBy(ctx context.Context, dx, dy int) error {
	b.record("scroll %d,%d", dx, dy)
	return b.scrollErr
}

func (b *fakeBrowser) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	b.record("screenshot")
	if b.screenshotErr != nil {
		return nil, b.screenshotErr
	}
	return &entity.Screenshot{Data: []byte("img"), Format: "jpeg", Width: 1440, Height: 900}, nil
}

func (b *fakeBrowser) CurrentURL() string { return b.url }

func (b *fakeBrowser) Title(ctx context.Context) (string, error) { return b.title, nil }

func (b *fakeBrowser) GoBack(ctx context.Context) error {
	b.record("back")
	if b.backErr != nil {
		return b.backErr
	}
	b.url = "https://previous.example"
	return nil
}

func (b *fakeBrowser) GoForward(ctx context.Context) error {
	b.record("forward")
	if b.forwardErr != nil {
		return b.forwardErr
	}
	b.url = "https://next.example"
	return nil
}

func (b *fakeBrowser) Close() {}

// actionCalls filters out screenshot captures, which the observation
// builder issues on every turn.
func (b *fakeBrowser) actionCalls() []string {
	var out []string
	for _, c := range b.calls {
		if c != "screenshot" {
			out = append(out, c)
		}
	}
	return out
}

// fakeReasoner replays a scripted sequence of responses and captures each
// request it receives.
type fakeReasoner struct {
	responses []*output.GenerateResponse
	errs      []error
	requests  []output.GenerateRequest
}

var _ output.ReasonerPort = (*fakeReasoner)(nil)

func (r *fakeReasoner) Generate(ctx context.Context, req output.GenerateRequest) (*output.GenerateResponse, error) {
	r.requests = append(r.requests, req)
	idx := len(r.requests) - 1
	if idx < len(r.errs) && r.errs[idx] != nil {
		return nil, r.errs[idx]
	}
	if idx >= len(r.responses) {
		return nil, fmt.Errorf("unexpected generate call %d", idx+1)
	}
	return r.responses[idx], nil
}

// modelTurn builds a scripted model reply issuing the given intents.
func modelTurn(text string, intents ...entity.Intent) *output.GenerateResponse {
	parts := []entity.Part{{Text: text}}
	for i := range intents {
		parts = append(parts, entity.Part{Call: &intents[i]})
	}
	return &output.GenerateResponse{
		Message: entity.Message{Role: entity.RoleModel, Parts: parts},
		Text:    text,
		Intents: intents,
	}
}

// fakeUI records confirmation requests and answers with a fixed decision.
type fakeUI struct {
	decision   bool
	confirmErr error
	confirms   []string
}

var _ output.UserInteractionPort = (*fakeUI)(nil)

func (u *fakeUI) Confirm(ctx context.Context, intent entity.Intent, reason string) (bool, error) {
	u.confirms = append(u.confirms, intent.Name)
	if u.confirmErr != nil {
		return false, u.confirmErr
	}
	return u.decision, nil
}

func (u *fakeUI) ShowTurn(turn, maxTurns int)                              {}
func (u *fakeUI) ShowThinking(text string)                                 {}
func (u *fakeUI) ShowIntent(intent entity.Intent)                          {}
func (u *fakeUI) ShowOutcome(intent entity.Intent, outcome entity.Outcome) {}

func testConfig() entity.AgentConfig {
	cfg := entity.DefaultAgentConfig()
	cfg.APIKey = "test-key"
	cfg.WaitDelay = 0
	return cfg
}
