package output

import (
	"context"

	"computer-use-agent/internal/domain/entity"
)

// BrowserPort is the automation backend consumed by the action executor and
// the observation builder. One agent instance owns one browser session for
// its whole lifetime; the port is not safe for concurrent use.
type BrowserPort interface {
	Navigate(ctx context.Context, url string) error
	ClickAt(ctx context.Context, x, y int) error

	// FocusAt focuses the element under the given pixel position, falling
	// back to a raw pointer click when element lookup fails.
	FocusAt(ctx context.Context, x, y int) error
	TypeText(ctx context.Context, text string) error
	PressKey(ctx context.Context, combo string) error
	ScrollBy(ctx context.Context, dx, dy int) error

	Screenshot(ctx context.Context) (*entity.Screenshot, error)
	CurrentURL() string
	Title(ctx context.Context) (string, error)

	GoBack(ctx context.Context) error
	GoForward(ctx context.Context) error

	Close()
}
