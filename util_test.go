package ngdp

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// recorder is a Driver recording every call, for tests that don't need a
// browser.
type recorder struct {
	mu    sync.Mutex
	calls []string

	counts map[string]int
	values map[string]string
	fail   map[string]error
	shot   []byte
}

func newRecorder() *recorder {
	return &recorder{
		counts: make(map[string]int),
		values: make(map[string]string),
		fail:   make(map[string]error),
		shot:   []byte("png"),
	}
}

func (r *recorder) record(call string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
	for prefix, err := range r.fail {
		if strings.HasPrefix(call, prefix) {
			return err
		}
	}
	return nil
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) Navigate(_ context.Context, urlstr string) error {
	return r.record("navigate " + urlstr)
}

func (r *recorder) Count(_ context.Context, sel string) (int, error) {
	if err := r.record("count " + sel); err != nil {
		return 0, err
	}
	return r.counts[sel], nil
}

func (r *recorder) WaitPresent(_ context.Context, sel string, pos int) error {
	return r.record(fmt.Sprintf("wait present %s %d", sel, pos))
}

func (r *recorder) WaitNotVisible(_ context.Context, sel string) error {
	return r.record("wait not visible " + sel)
}

func (r *recorder) Click(_ context.Context, sel string, pos int) error {
	return r.record(fmt.Sprintf("click %s %d", sel, pos))
}

func (r *recorder) Clear(_ context.Context, sel string, pos int) error {
	return r.record(fmt.Sprintf("clear %s %d", sel, pos))
}

func (r *recorder) SendKeys(_ context.Context, sel string, pos int, keys string) error {
	return r.record(fmt.Sprintf("send keys %s %d %q", sel, pos, keys))
}

func (r *recorder) Value(_ context.Context, sel string, pos int) (string, error) {
	if err := r.record(fmt.Sprintf("value %s %d", sel, pos)); err != nil {
		return "", err
	}
	return r.values[sel], nil
}

func (r *recorder) Screenshot(context.Context) ([]byte, error) {
	if err := r.record("screenshot"); err != nil {
		return nil, err
	}
	return r.shot, nil
}

func (r *recorder) PrintPDF(context.Context) ([]byte, error) {
	if err := r.record("print pdf"); err != nil {
		return nil, err
	}
	return []byte("%PDF-1.4"), nil
}

func (r *recorder) Close() error {
	return r.record("close")
}
