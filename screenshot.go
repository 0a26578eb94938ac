package ngdp

import (
	"context"
	"fmt"
)

// Screenshot is an action that captures the full page as a PNG.
func Screenshot(res *[]byte) Action {
	if res == nil {
		panic("res cannot be nil")
	}
	return ActionFunc(func(ctx context.Context, d Driver) error {
		buf, err := d.Screenshot(ctx)
		if err != nil {
			return fmt.Errorf("screenshot: %w", err)
		}
		*res = buf
		return nil
	})
}

// PrintPDF is an action that prints the page as a PDF document.
func PrintPDF(res *[]byte) Action {
	if res == nil {
		panic("res cannot be nil")
	}
	return ActionFunc(func(ctx context.Context, d Driver) error {
		buf, err := d.PrintPDF(ctx)
		if err != nil {
			return fmt.Errorf("print pdf: %w", err)
		}
		*res = buf
		return nil
	})
}
