// Package report records the outcome of scenario runs: the run report, its
// artifacts, step metrics, and visual comparison against a baseline.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jwriter"

	"github.com/chromedp/ngdp"
)

// FileName is the name of the report file written by WriteFile.
const FileName = "report.json"

// StepResult is the outcome of a single step.
type StepResult struct {
	Name     string
	Start    time.Time
	Duration time.Duration
	Err      string
}

// Report is the outcome of a scenario run.
type Report struct {
	RunID    string
	Scenario string
	Driver   string
	BaseURL  string
	Start    time.Time
	Duration time.Duration
	Steps    []StepResult
	Err      string

	// Artifacts maps an artifact kind (screenshot, pdf, ...) to its path.
	Artifacts map[string]string

	// DiffPixels is the number of pixels differing from the baseline, or -1
	// when no comparison was made.
	DiffPixels int

	mu sync.Mutex
}

// New creates a report for a run starting now.
func New(scenario, driver, baseURL string) *Report {
	return &Report{
		RunID:      uuid.NewString(),
		Scenario:   scenario,
		Driver:     driver,
		BaseURL:    baseURL,
		Start:      time.Now(),
		Artifacts:  make(map[string]string),
		DiffPixels: -1,
	}
}

// OnStep records finished steps. It is meant to be passed to
// ngdp.WithStepListener.
func (r *Report) OnStep(ev ngdp.StepEvent) {
	if !ev.Done {
		return
	}
	res := StepResult{Name: ev.Name, Start: ev.Start, Duration: ev.Duration}
	if ev.Err != nil {
		res.Err = ev.Err.Error()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Steps = append(r.Steps, res)
}

// Finish records the end of the run.
func (r *Report) Finish(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Duration = time.Since(r.Start)
	if err != nil {
		r.Err = err.Error()
	}
}

// Failed reports whether the run failed.
func (r *Report) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Err != ""
}

// SetDiffPixels records the number of pixels differing from the baseline.
func (r *Report) SetDiffPixels(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.DiffPixels = n
}

// SaveArtifact writes buf to dir, named after the run id and name, and
// records it under kind.
func (r *Report) SaveArtifact(dir, kind, name string, buf []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, r.RunID+"-"+name)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Artifacts[kind] = path
	return path, nil
}

// WriteFile writes the report as JSON to dir/FileName.
func (r *Report) WriteFile(dir string) (string, error) {
	buf, err := easyjson.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("could not encode report: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// MarshalEasyJSON satisfies easyjson.Marshaler.
func (r *Report) MarshalEasyJSON(out *jwriter.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out.RawString(`{"runId":`)
	out.String(r.RunID)
	out.RawString(`,"scenario":`)
	out.String(r.Scenario)
	out.RawString(`,"driver":`)
	out.String(r.Driver)
	out.RawString(`,"baseUrl":`)
	out.String(r.BaseURL)
	out.RawString(`,"start":`)
	out.String(r.Start.Format(time.RFC3339Nano))
	out.RawString(`,"durationSeconds":`)
	out.Float64(r.Duration.Seconds())
	out.RawString(`,"ok":`)
	out.Bool(r.Err == "")
	if r.Err != "" {
		out.RawString(`,"error":`)
		out.String(r.Err)
	}

	out.RawString(`,"steps":[`)
	for i, s := range r.Steps {
		if i > 0 {
			out.RawByte(',')
		}
		s.MarshalEasyJSON(out)
	}
	out.RawByte(']')

	out.RawString(`,"artifacts":{`)
	kinds := make([]string, 0, len(r.Artifacts))
	for k := range r.Artifacts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for i, k := range kinds {
		if i > 0 {
			out.RawByte(',')
		}
		out.String(k)
		out.RawByte(':')
		out.String(r.Artifacts[k])
	}
	out.RawByte('}')

	if r.DiffPixels >= 0 {
		out.RawString(`,"diffPixels":`)
		out.Int(r.DiffPixels)
	}
	out.RawByte('}')
}

// MarshalJSON satisfies json.Marshaler.
func (r *Report) MarshalJSON() ([]byte, error) {
	return easyjson.Marshal(r)
}

// MarshalEasyJSON satisfies easyjson.Marshaler.
func (s StepResult) MarshalEasyJSON(out *jwriter.Writer) {
	out.RawString(`{"name":`)
	out.String(s.Name)
	out.RawString(`,"start":`)
	out.String(s.Start.Format(time.RFC3339Nano))
	out.RawString(`,"durationSeconds":`)
	out.Float64(s.Duration.Seconds())
	out.RawString(`,"ok":`)
	out.Bool(s.Err == "")
	if s.Err != "" {
		out.RawString(`,"error":`)
		out.String(s.Err)
	}
	out.RawByte('}')
}
