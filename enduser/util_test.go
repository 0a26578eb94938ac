package enduser

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// fakeDriver records the driver calls of a scenario, without a browser.
type fakeDriver struct {
	mu     sync.Mutex
	calls  []string
	counts map[string]int
	fail   map[string]error
}

func newFakeDriver(counts map[string]int) *fakeDriver {
	return &fakeDriver{counts: counts, fail: make(map[string]error)}
}

func (d *fakeDriver) record(format string, v ...interface{}) error {
	call := fmt.Sprintf(format, v...)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, call)
	for prefix, err := range d.fail {
		if strings.HasPrefix(call, prefix) {
			return err
		}
	}
	return nil
}

func (d *fakeDriver) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

func (d *fakeDriver) Navigate(_ context.Context, urlstr string) error {
	return d.record("navigate %s", urlstr)
}

func (d *fakeDriver) Count(_ context.Context, sel string) (int, error) {
	return d.counts[sel], d.record("count %s", sel)
}

func (d *fakeDriver) WaitPresent(_ context.Context, sel string, pos int) error {
	return d.record("wait present %s %d", sel, pos)
}

func (d *fakeDriver) WaitNotVisible(_ context.Context, sel string) error {
	return d.record("wait not visible %s", sel)
}

func (d *fakeDriver) Click(_ context.Context, sel string, pos int) error {
	return d.record("click %s %d", sel, pos)
}

func (d *fakeDriver) Clear(_ context.Context, sel string, pos int) error {
	return d.record("clear %s %d", sel, pos)
}

func (d *fakeDriver) SendKeys(_ context.Context, sel string, pos int, keys string) error {
	return d.record("send keys %s %d %q", sel, pos, keys)
}

func (d *fakeDriver) Value(_ context.Context, sel string, pos int) (string, error) {
	return "", d.record("value %s %d", sel, pos)
}

func (d *fakeDriver) Screenshot(context.Context) ([]byte, error) {
	return []byte("png"), d.record("screenshot")
}

func (d *fakeDriver) PrintPDF(context.Context) ([]byte, error) {
	return []byte("%PDF"), d.record("print pdf")
}

func (d *fakeDriver) Close() error {
	return d.record("close")
}
