package ngdp

import (
	"time"
)

// RunnerOption is a Runner option.
type RunnerOption func(*Runner)

// WithLogf is a runner option to specify a func to receive general logging.
func WithLogf(f LogFunc) RunnerOption {
	return func(r *Runner) {
		r.logf = f
	}
}

// WithDebugf is a runner option to specify a func to receive debug logging
// (ie, every action of every step).
func WithDebugf(f LogFunc) RunnerOption {
	return func(r *Runner) {
		r.debugf = f
	}
}

// WithErrorf is a runner option to specify a func to receive error logging.
func WithErrorf(f LogFunc) RunnerOption {
	return func(r *Runner) {
		r.errorf = f
	}
}

// WithTimeout is a runner option to bound a whole run. Zero disables the
// timeout.
func WithTimeout(timeout time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = timeout
	}
}

// WithStepListener is a runner option to receive step events. It may be
// passed multiple times.
func WithStepListener(f func(StepEvent)) RunnerOption {
	return func(r *Runner) {
		r.listeners = append(r.listeners, f)
	}
}

// WithFailureScreenshot is a runner option to capture a screenshot when a run
// fails. The screenshot is passed to f; capture errors are logged.
func WithFailureScreenshot(f func([]byte)) RunnerOption {
	return func(r *Runner) {
		r.onFailure = f
	}
}
