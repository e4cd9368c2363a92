package rod

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"time"

	"computer-use-agent/internal/application/port/output"
	"computer-use-agent/internal/domain/entity"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

// BrowserAdapter drives a single chromium page through rod. The page is
// exclusively owned by one agent instance for its lifetime.
type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	width    int
	height   int
}

type Config struct {
	Headless   bool
	Width      int
	Height     int
	SlowMotion time.Duration
	NoSandbox  bool
	DevTools   bool
}

func DefaultConfig() Config {
	return Config{
		Headless:   false,
		Width:      1440,
		Height:     900,
		SlowMotion: 500 * time.Millisecond,
		NoSandbox:  true,
		DevTools:   false,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg Config) (*BrowserAdapter, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain").
		Set("disable-web-security").
		Set("allow-running-insecure-content").
		Set("disable-setuid-sandbox")

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(url).
		SlowMotion(cfg.SlowMotion).
		MustConnect()

	page := browser.MustPage("about:blank")

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.Width,
		Height:            cfg.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to set viewport: %w", err)
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		width:    cfg.Width,
		height:   cfg.Height,
	}, nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, url string) error {
	p := b.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	p.WaitIdle(5 * time.Second)
	return nil
}

func (b *BrowserAdapter) ClickAt(ctx context.Context, x, y int) error {
	p := b.page.Context(ctx)
	if err := p.Mouse.MoveTo(proto.Point{X: float64(x), Y: float64(y)}); err != nil {
		return fmt.Errorf("mouse move failed: %w", err)
	}
	if err := p.Mouse.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	p.WaitIdle(2 * time.Second)
	return nil
}

func (b *BrowserAdapter) FocusAt(ctx context.Context, x, y int) error {
	p := b.page.Context(ctx)

	el, err := p.ElementFromPoint(x, y)
	if err == nil {
		if err := el.Focus(); err == nil {
			return nil
		}
	}

	// Element lookup or focus failed; a raw pointer click focuses whatever
	// is under the point.
	return b.ClickAt(ctx, x, y)
}

func (b *BrowserAdapter) TypeText(ctx context.Context, text string) error {
	p := b.page.Context(ctx)
	if err := p.InsertText(text); err != nil {
		return fmt.Errorf("typing failed: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) PressKey(ctx context.Context, combo string) error {
	modifiers, key, err := parseKeyCombo(combo)
	if err != nil {
		return err
	}

	p := b.page.Context(ctx)
	actions := p.KeyActions()
	if len(modifiers) > 0 {
		actions = actions.Press(modifiers...)
	}
	if err := actions.Type(key).Do(); err != nil {
		return fmt.Errorf("key combination %q failed: %w", combo, err)
	}
	p.WaitIdle(1 * time.Second)
	return nil
}

func (b *BrowserAdapter) ScrollBy(ctx context.Context, dx, dy int) error {
	p := b.page.Context(ctx)
	if _, err := p.Eval(`(dx, dy) => window.scrollBy(dx, dy)`, dx, dy); err != nil {
		return fmt.Errorf("scroll failed: %w", err)
	}
	p.WaitIdle(800 * time.Millisecond)
	return nil
}

// Screenshot captures the full page as jpeg, downscaled to the viewport
// width when the page renders wider.
func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	p := b.page.Context(ctx)

	imgBytes, err := p.Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > b.width {
		img = imaging.Resize(img, b.width, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

func (b *BrowserAdapter) CurrentURL() string {
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (b *BrowserAdapter) Title(ctx context.Context) (string, error) {
	info, err := b.page.Context(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("failed to read page info: %w", err)
	}
	return info.Title, nil
}

func (b *BrowserAdapter) GoBack(ctx context.Context) error {
	p := b.page.Context(ctx)
	if err := p.NavigateBack(); err != nil {
		return fmt.Errorf("history back failed: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	p.WaitIdle(5 * time.Second)
	return nil
}

func (b *BrowserAdapter) GoForward(ctx context.Context) error {
	p := b.page.Context(ctx)
	if err := p.NavigateForward(); err != nil {
		return fmt.Errorf("history forward failed: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	p.WaitIdle(5 * time.Second)
	return nil
}

func (b *BrowserAdapter) Close() {
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}
