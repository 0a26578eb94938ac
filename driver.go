package ngdp

import (
	"context"
)

// Driver is a browser page that actions run against.
//
// Elements are addressed by a CSS selector group and a position: a zero based
// index into the document-order matches, or Last. Methods acting on a single
// element wait until it exists and is visible, returning an error wrapping
// ErrNotFound when ctx expires first.
type Driver interface {
	// Navigate loads urlstr in the page.
	Navigate(ctx context.Context, urlstr string) error

	// Count returns the number of nodes currently matching sel.
	Count(ctx context.Context, sel string) (int, error)

	// WaitPresent waits until the element exists and is visible.
	WaitPresent(ctx context.Context, sel string, pos int) error

	// WaitNotVisible waits until no node matching sel is visible.
	WaitNotVisible(ctx context.Context, sel string) error

	// Click clicks the element. Clicking an option node selects it.
	Click(ctx context.Context, sel string, pos int) error

	// Clear empties the value of an input or textarea element.
	Clear(ctx context.Context, sel string, pos int) error

	// SendKeys types keys into the element as key events.
	SendKeys(ctx context.Context, sel string, pos int, keys string) error

	// Value returns the value of an input, textarea or select element.
	Value(ctx context.Context, sel string, pos int) (string, error)

	// Screenshot captures the full page as a PNG.
	Screenshot(ctx context.Context) ([]byte, error)

	// PrintPDF prints the page as a PDF document.
	PrintPDF(ctx context.Context) ([]byte, error)

	// Close releases the browser.
	Close() error
}
