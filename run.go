package ngdp

import (
	"context"
	"fmt"
	"time"
)

// failureScreenshotTimeout bounds the screenshot taken after a failed run,
// whose own context may already be expired.
const failureScreenshotTimeout = 10 * time.Second

// Runner runs actions against a driver.
type Runner struct {
	d Driver

	timeout time.Duration

	listeners []func(StepEvent)
	onFailure func([]byte)

	// logging funcs
	logf, debugf, errorf LogFunc
}

// NewRunner creates a runner for the driver d.
func NewRunner(d Driver, opts ...RunnerOption) *Runner {
	r := &Runner{
		d:      d,
		logf:   defaultLogf,
		debugf: nolog,
	}
	for _, o := range opts {
		o(r)
	}
	if r.errorf == nil {
		r.errorf = func(s string, v ...interface{}) {
			r.logf("ERROR: "+s, v...)
		}
	}
	return r
}

// Driver returns the runner's driver.
func (r *Runner) Driver() Driver {
	return r.d
}

// Run runs the actions sequentially, stopping at the first error.
func (r *Runner) Run(ctx context.Context, actions ...Action) error {
	if r.d == nil {
		return ErrNoDriver
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	ctx = context.WithValue(ctx, runnerKey{}, r)

	err := Tasks(actions).Do(ctx, r.d)
	if err == nil {
		return nil
	}
	r.errorf("run failed: %v", err)
	if r.onFailure != nil {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failureScreenshotTimeout)
		defer cancel()
		buf, serr := r.d.Screenshot(sctx)
		if serr != nil {
			r.errorf("could not capture failure screenshot: %v", serr)
		} else {
			r.onFailure(buf)
		}
	}
	return err
}

func (r *Runner) emit(ev StepEvent) {
	for _, f := range r.listeners {
		f(ev)
	}
}

type runnerKey struct{}

// runnerFromContext returns the Runner running ctx, if any.
func runnerFromContext(ctx context.Context) *Runner {
	r, _ := ctx.Value(runnerKey{}).(*Runner)
	return r
}

// StepEvent is emitted by a Runner when a step starts and when it ends.
type StepEvent struct {
	// Name is the step name. Nested steps are joined with a slash.
	Name string

	// Start is when the step started.
	Start time.Time

	// Done is false for the start event and true for the end event.
	Done bool

	// Duration and Err are set on the end event.
	Duration time.Duration
	Err      error
}

type stepKey struct{}

// Step is an action grouping actions under a name. When run by a Runner, the
// step is logged and reported to the runner's step listeners.
func Step(name string, actions ...Action) Action {
	return ActionFunc(func(ctx context.Context, d Driver) error {
		full := name
		parent, nested := ctx.Value(stepKey{}).(string)
		if nested {
			full = parent + "/" + name
		}
		sctx := context.WithValue(ctx, stepKey{}, full)

		r := runnerFromContext(ctx)
		if r == nil {
			return Tasks(actions).Do(sctx, d)
		}

		start := time.Now()
		r.debugf("step %s", full)
		r.emit(StepEvent{Name: full, Start: start})

		err := Tasks(actions).Do(sctx, d)
		// only the outermost step prefixes the error
		if err != nil && !nested {
			err = fmt.Errorf("%s: %w", full, err)
		}

		ev := StepEvent{Name: full, Start: start, Done: true, Duration: time.Since(start), Err: err}
		if err == nil {
			r.logf("step %s ok (%v)", full, ev.Duration.Round(time.Millisecond))
		}
		r.emit(ev)
		return err
	})
}
