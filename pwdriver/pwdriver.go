// Package pwdriver implements the ngdp Driver on top of playwright, driving
// Chromium through the playwright driver process.
package pwdriver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/chromedp/ngdp"
)

var _ ngdp.Driver = (*Driver)(nil)

// pollInterval is the interval, in milliseconds, between checks of
// WaitNotVisible.
const pollInterval = 50

// Driver is a Chromium page driven through playwright.
type Driver struct {
	execPath      string
	headless      bool
	width, height int
	install       bool

	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
}

// New starts playwright and Chromium, and returns a driver for a new page.
func New(opts ...Option) (*Driver, error) {
	d := &Driver{headless: true, width: 1280, height: 1024}
	for _, o := range opts {
		o(d)
	}

	runOpts := &playwright.RunOptions{Browsers: []string{"chromium"}}
	if d.install {
		if err := playwright.Install(runOpts); err != nil {
			return nil, fmt.Errorf("could not install playwright: %w", err)
		}
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	d.pw = pw

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(d.headless),
	}
	if d.execPath != "" {
		launch.ExecutablePath = playwright.String(d.execPath)
	}
	if d.browser, err = pw.Chromium.Launch(launch); err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}
	bctx, err := d.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: d.width, Height: d.height},
	})
	if err == nil {
		d.page, err = bctx.NewPage()
	}
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("could not open page: %w", err)
	}
	return d, nil
}

// Close closes the page and the browser, and stops playwright.
func (d *Driver) Close() error {
	var errs []error
	if d.page != nil {
		errs = append(errs, d.page.Close())
	}
	if d.browser != nil {
		errs = append(errs, d.browser.Close())
	}
	errs = append(errs, d.pw.Stop())
	return errors.Join(errs...)
}

// timeout returns the playwright timeout, in milliseconds, matching the
// deadline of ctx. Zero disables the timeout.
func timeout(ctx context.Context) *float64 {
	deadline, ok := ctx.Deadline()
	if !ok {
		return playwright.Float(0)
	}
	ms := float64(time.Until(deadline).Milliseconds())
	if ms < 1 {
		ms = 1
	}
	return playwright.Float(ms)
}

// notFound reports expired element waits as ngdp.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %w", ngdp.ErrNotFound, err)
	}
	return err
}

// locator returns the locator of the element at pos among the matches of sel.
func (d *Driver) locator(sel string, pos int) (playwright.Locator, error) {
	l := d.page.Locator(sel)
	switch {
	case pos >= 0:
		return l.Nth(pos), nil
	case pos == ngdp.Last:
		return l.Last(), nil
	}
	n, err := l.Count()
	if err != nil {
		return nil, err
	}
	if n+pos < 0 {
		return nil, ngdp.ErrNotFound
	}
	return l.Nth(n + pos), nil
}

// ready waits for the element to be attached, returning its locator and its
// tag name.
func (d *Driver) ready(ctx context.Context, sel string, pos int) (playwright.Locator, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	l, err := d.locator(sel, pos)
	if err != nil {
		return nil, "", err
	}
	err = l.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: timeout(ctx),
	})
	if err != nil {
		return nil, "", notFound(err)
	}
	v, err := l.Evaluate(`e => e.tagName`, nil, playwright.LocatorEvaluateOptions{Timeout: timeout(ctx)})
	if err != nil {
		return nil, "", notFound(err)
	}
	tag, _ := v.(string)
	return l, tag, nil
}

// Navigate satisfies ngdp.Driver.
func (d *Driver) Navigate(ctx context.Context, urlstr string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := d.page.Goto(urlstr, playwright.PageGotoOptions{Timeout: timeout(ctx)})
	return err
}

// Count satisfies ngdp.Driver.
func (d *Driver) Count(ctx context.Context, sel string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return d.page.Locator(sel).Count()
}

// WaitPresent satisfies ngdp.Driver.
func (d *Driver) WaitPresent(ctx context.Context, sel string, pos int) error {
	l, tag, err := d.ready(ctx, sel, pos)
	if err != nil || tag == "OPTION" {
		return err
	}
	return notFound(l.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: timeout(ctx),
	}))
}

// WaitNotVisible satisfies ngdp.Driver.
func (d *Driver) WaitNotVisible(ctx context.Context, sel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := d.page.WaitForFunction(ngdp.NoneVisibleJS, sel, playwright.PageWaitForFunctionOptions{
		Polling: playwright.Float(pollInterval),
		Timeout: timeout(ctx),
	})
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
	}
	return err
}

// Click satisfies ngdp.Driver.
func (d *Driver) Click(ctx context.Context, sel string, pos int) error {
	l, tag, err := d.ready(ctx, sel, pos)
	if err != nil {
		return err
	}
	if tag == "OPTION" {
		v, err := l.Evaluate(ngdp.SelectOptionJS, nil, playwright.LocatorEvaluateOptions{Timeout: timeout(ctx)})
		if err != nil {
			return err
		}
		if ok, _ := v.(bool); !ok {
			return errors.New("option is not within a select")
		}
		return nil
	}
	return notFound(l.Click(playwright.LocatorClickOptions{Timeout: timeout(ctx)}))
}

// Clear satisfies ngdp.Driver.
func (d *Driver) Clear(ctx context.Context, sel string, pos int) error {
	l, _, err := d.ready(ctx, sel, pos)
	if err != nil {
		return err
	}
	return notFound(l.Clear(playwright.LocatorClearOptions{Timeout: timeout(ctx)}))
}

// SendKeys satisfies ngdp.Driver.
func (d *Driver) SendKeys(ctx context.Context, sel string, pos int, keys string) error {
	l, _, err := d.ready(ctx, sel, pos)
	if err != nil {
		return err
	}
	return notFound(l.PressSequentially(keys, playwright.LocatorPressSequentiallyOptions{Timeout: timeout(ctx)}))
}

// Value satisfies ngdp.Driver.
func (d *Driver) Value(ctx context.Context, sel string, pos int) (string, error) {
	l, _, err := d.ready(ctx, sel, pos)
	if err != nil {
		return "", err
	}
	v, err := l.InputValue(playwright.LocatorInputValueOptions{Timeout: timeout(ctx)})
	return v, notFound(err)
}

// Screenshot satisfies ngdp.Driver.
func (d *Driver) Screenshot(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
		Timeout:  timeout(ctx),
	})
}

// PrintPDF satisfies ngdp.Driver.
func (d *Driver) PrintPDF(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.page.PDF(playwright.PagePdfOptions{
		PrintBackground: playwright.Bool(true),
	})
}
