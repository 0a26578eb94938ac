package cdpdriver

import (
	"github.com/chromedp/chromedp"
	"github.com/chromedp/ngdp"
)

// Option is a driver option.
type Option func(*Driver)

// ExecPath is a driver option to set the browser executable. When unset, the
// first executable found by LookExecPath is used.
func ExecPath(path string) Option {
	return func(d *Driver) {
		d.execPath = path
	}
}

// Headless is a driver option to run the browser with or without a window.
// Browsers are headless by default.
func Headless(headless bool) Option {
	return func(d *Driver) {
		d.headless = headless
	}
}

// NoSandbox is a driver option to disable the browser sandbox, as required
// when running as root in containers.
func NoSandbox(d *Driver) {
	d.allocOpts = append(d.allocOpts, chromedp.NoSandbox)
}

// WindowSize is a driver option to set the browser window size.
func WindowSize(width, height int) Option {
	return func(d *Driver) {
		d.allocOpts = append(d.allocOpts, chromedp.WindowSize(width, height))
	}
}

// RemoteURL is a driver option to connect to an already running browser
// through its DevTools websocket URL instead of starting one.
func RemoteURL(url string) Option {
	return func(d *Driver) {
		d.remoteURL = url
	}
}

// WithLogf is a driver option to specify a func to receive general logging.
func WithLogf(f ngdp.LogFunc) Option {
	return func(d *Driver) {
		d.logf = f
	}
}

// WithDebugf is a driver option to specify a func to receive debug logging
// (ie, DevTools protocol messages).
func WithDebugf(f ngdp.LogFunc) Option {
	return func(d *Driver) {
		d.debugf = f
	}
}

// WithErrorf is a driver option to specify a func to receive error logging.
func WithErrorf(f ngdp.LogFunc) Option {
	return func(d *Driver) {
		d.errorf = f
	}
}
