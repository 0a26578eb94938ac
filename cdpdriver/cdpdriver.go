// Package cdpdriver implements the ngdp Driver on top of chromedp, driving a
// Chrome-based browser through the DevTools protocol.
package cdpdriver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/chromedp/ngdp"
)

// ErrNoBrowser is the error returned by New when no browser executable could
// be found.
var ErrNoBrowser = errors.New("no browser executable found")

var _ ngdp.Driver = (*Driver)(nil)

// pollInterval is the interval between checks of WaitNotVisible.
const pollInterval = 50 * time.Millisecond

// Driver is a browser tab driven through chromedp.
type Driver struct {
	execPath  string
	remoteURL string
	headless  bool
	allocOpts []chromedp.ExecAllocatorOption

	// logging funcs
	logf, debugf, errorf ngdp.LogFunc

	ctx    context.Context
	cancel context.CancelFunc
}

// New starts (or, with RemoteURL, connects to) a browser and returns a driver
// for its first tab. The browser lives until Close is called or ctx is
// cancelled.
func New(ctx context.Context, opts ...Option) (*Driver, error) {
	d := &Driver{headless: true}
	for _, o := range opts {
		o(d)
	}

	var allocCtx context.Context
	var cancelAlloc context.CancelFunc
	if d.remoteURL != "" {
		allocCtx, cancelAlloc = chromedp.NewRemoteAllocator(ctx, d.remoteURL)
	} else {
		if d.execPath == "" {
			path, ok := LookExecPath()
			if !ok {
				return nil, ErrNoBrowser
			}
			d.execPath = path
		}
		allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(d.execPath),
			chromedp.DisableGPU,
		)
		if !d.headless {
			allocOpts = append(allocOpts, chromedp.Flag("headless", false))
		}
		allocOpts = append(allocOpts, d.allocOpts...)
		allocCtx, cancelAlloc = chromedp.NewExecAllocator(ctx, allocOpts...)
	}

	var ctxOpts []chromedp.ContextOption
	if d.logf != nil {
		ctxOpts = append(ctxOpts, chromedp.WithLogf(d.logf))
	}
	if d.debugf != nil {
		ctxOpts = append(ctxOpts, chromedp.WithDebugf(d.debugf))
	}
	if d.errorf != nil {
		ctxOpts = append(ctxOpts, chromedp.WithErrorf(d.errorf))
	}
	bctx, cancel := chromedp.NewContext(allocCtx, ctxOpts...)

	// start the browser
	if err := chromedp.Run(bctx); err != nil {
		cancel()
		cancelAlloc()
		return nil, fmt.Errorf("could not start browser: %w", err)
	}

	d.ctx = bctx
	d.cancel = func() {
		cancel()
		cancelAlloc()
	}
	return d, nil
}

// NewTab returns a driver for a new tab of the same browser. Closing the tab
// leaves the browser running.
func (d *Driver) NewTab() (*Driver, error) {
	tctx, cancel := chromedp.NewContext(d.ctx)
	if err := chromedp.Run(tctx); err != nil {
		cancel()
		return nil, fmt.Errorf("could not open tab: %w", err)
	}
	return &Driver{ctx: tctx, cancel: cancel}, nil
}

// Close closes the tab, and the browser if the driver started it.
func (d *Driver) Close() error {
	err := chromedp.Cancel(d.ctx)
	d.cancel()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// run runs actions in the driver's tab, bounded by ctx.
func (d *Driver) run(ctx context.Context, actions ...chromedp.Action) error {
	rctx, cancel := context.WithCancel(d.ctx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		rctx, cancelDeadline = context.WithDeadline(rctx, deadline)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(rctx, actions...)
}

// runElem is run for actions waiting on an element, reporting expired waits
// as ngdp.ErrNotFound.
func (d *Driver) runElem(ctx context.Context, actions ...chromedp.Action) error {
	err := d.run(ctx, actions...)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ngdp.ErrNotFound, err)
	}
	return err
}

// ready waits for the element to exist, returning its Javascript expression
// and its tag name.
func (d *Driver) ready(ctx context.Context, sel string, pos int) (string, string, error) {
	expr := ngdp.ElementExpr(sel, pos)
	var tag string
	err := d.runElem(ctx,
		chromedp.WaitReady(expr, chromedp.ByJSPath),
		chromedp.Evaluate(expr+".tagName", &tag),
	)
	return expr, tag, err
}

// Navigate satisfies ngdp.Driver.
func (d *Driver) Navigate(ctx context.Context, urlstr string) error {
	return d.run(ctx, chromedp.Navigate(urlstr))
}

// Count satisfies ngdp.Driver.
func (d *Driver) Count(ctx context.Context, sel string) (int, error) {
	var n int
	err := d.run(ctx, chromedp.Evaluate(ngdp.CallExpr(`function(s) { return document.querySelectorAll(s).length; }`, sel), &n))
	return n, err
}

// WaitPresent satisfies ngdp.Driver. Option elements, which have no layout
// box of their own, only need to exist.
func (d *Driver) WaitPresent(ctx context.Context, sel string, pos int) error {
	expr, tag, err := d.ready(ctx, sel, pos)
	if err != nil || tag == "OPTION" {
		return err
	}
	return d.runElem(ctx, chromedp.WaitVisible(expr, chromedp.ByJSPath))
}

// WaitNotVisible satisfies ngdp.Driver.
func (d *Driver) WaitNotVisible(ctx context.Context, sel string) error {
	var done bool
	return d.run(ctx, chromedp.Poll(ngdp.CallExpr(ngdp.NoneVisibleJS, sel), &done,
		chromedp.WithPollingInterval(pollInterval),
		chromedp.WithPollingTimeout(0),
	))
}

// Click satisfies ngdp.Driver.
func (d *Driver) Click(ctx context.Context, sel string, pos int) error {
	expr, tag, err := d.ready(ctx, sel, pos)
	if err != nil {
		return err
	}
	if tag == "OPTION" {
		var ok bool
		if err := d.run(ctx, chromedp.Evaluate(ngdp.ApplyExpr(ngdp.SelectOptionJS, expr), &ok)); err != nil {
			return err
		}
		if !ok {
			return errors.New("option is not within a select")
		}
		return nil
	}
	return d.runElem(ctx, chromedp.Click(expr, chromedp.ByJSPath))
}

// Clear satisfies ngdp.Driver.
func (d *Driver) Clear(ctx context.Context, sel string, pos int) error {
	expr := ngdp.ElementExpr(sel, pos)
	var ok bool
	err := d.runElem(ctx,
		chromedp.WaitVisible(expr, chromedp.ByJSPath),
		chromedp.Evaluate(ngdp.ApplyExpr(ngdp.ClearJS, expr), &ok),
	)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("element has no value to clear")
	}
	return nil
}

// SendKeys satisfies ngdp.Driver.
func (d *Driver) SendKeys(ctx context.Context, sel string, pos int, keys string) error {
	return d.runElem(ctx, chromedp.SendKeys(ngdp.ElementExpr(sel, pos), keys, chromedp.ByJSPath))
}

// Value satisfies ngdp.Driver.
func (d *Driver) Value(ctx context.Context, sel string, pos int) (string, error) {
	var v string
	err := d.runElem(ctx, chromedp.Value(ngdp.ElementExpr(sel, pos), &v, chromedp.ByJSPath))
	return v, err
}

// Screenshot satisfies ngdp.Driver.
func (d *Driver) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := d.run(ctx, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, err
	}
	return buf, nil
}

// PrintPDF satisfies ngdp.Driver.
func (d *Driver) PrintPDF(ctx context.Context) ([]byte, error) {
	var buf []byte
	err := d.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, _, err = page.PrintToPDF().WithPrintBackground(true).Do(ctx)
		return err
	}))
	if err != nil {
		return nil, err
	}
	return buf, nil
}
