package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/chromedp/ngdp"
	"github.com/chromedp/ngdp/cdpdriver"
	"github.com/chromedp/ngdp/config"
	"github.com/chromedp/ngdp/enduser"
	"github.com/chromedp/ngdp/pwdriver"
	"github.com/chromedp/ngdp/report"
)

// artifactTimeout bounds the capture of each artifact after a run.
const artifactTimeout = 30 * time.Second

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "Run a scenario (default from the configuration)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Decode(v)
			if err != nil {
				return err
			}
			name := cfg.Scenario
			if len(args) == 1 {
				name = args[0]
			}
			return run(cmd.Context(), cfg, name)
		},
	}
	f := cmd.Flags()
	f.String("driver", "", "browser driver ("+config.DriverChromedp+" or "+config.DriverPlaywright+")")
	f.Duration("timeout", 0, "overall run timeout")
	f.String("base-url", "", "enduser application URL")
	f.String("artifacts", "", "artifacts directory")
	f.String("baseline", "", "baseline screenshot to compare the final page with")
	f.Bool("pdf", false, "print the final page as PDF")
	f.Bool("headless", true, "run the browser headless")
	f.String("exec-path", "", "browser executable")
	f.String("remote-url", "", "DevTools websocket URL of a running browser")
	return cmd
}

// newDriver starts the configured driver.
func newDriver(ctx context.Context, cfg *config.Config) (ngdp.Driver, error) {
	b := cfg.Browser
	switch cfg.Driver {
	case config.DriverPlaywright:
		opts := []pwdriver.Option{
			pwdriver.Headless(b.Headless),
			pwdriver.WindowSize(b.Width, b.Height),
		}
		if b.ExecPath != "" {
			opts = append(opts, pwdriver.ExecPath(b.ExecPath))
		}
		if b.Install {
			opts = append(opts, pwdriver.Install)
		}
		return pwdriver.New(opts...)
	}

	opts := []cdpdriver.Option{
		cdpdriver.Headless(b.Headless),
		cdpdriver.WindowSize(b.Width, b.Height),
		cdpdriver.WithLogf(logf(&logger, log.InfoLevel)),
		cdpdriver.WithErrorf(logf(&logger, log.ErrorLevel)),
	}
	if b.ExecPath != "" {
		opts = append(opts, cdpdriver.ExecPath(b.ExecPath))
	}
	if b.RemoteURL != "" {
		opts = append(opts, cdpdriver.RemoteURL(b.RemoteURL))
	}
	if b.NoSandbox {
		opts = append(opts, cdpdriver.NoSandbox)
	}
	if cfg.Log.Protocol {
		opts = append(opts, cdpdriver.WithDebugf(logf(&logger, log.DebugLevel)))
	}
	return cdpdriver.New(ctx, opts...)
}

// run runs the named scenario, then writes the report, the artifacts and the
// metrics. The returned error is the run error, if any.
func run(ctx context.Context, cfg *config.Config, name string) error {
	sc, err := enduser.Lookup(name)
	if err != nil {
		return err
	}
	d, err := newDriver(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.Warn().Err(err).Msg("could not close driver")
		}
	}()

	dir := cfg.Artifacts.Dir
	rep := report.New(name, cfg.Driver, cfg.Enduser.BaseURL)
	metrics := report.NewMetrics()
	logger.Info().Str("scenario", name).Str("driver", cfg.Driver).Str("run", rep.RunID).Msg("starting run")

	opts := []ngdp.RunnerOption{
		ngdp.WithLogf(logf(&logger, log.InfoLevel)),
		ngdp.WithDebugf(logf(&logger, log.DebugLevel)),
		ngdp.WithErrorf(logf(&logger, log.ErrorLevel)),
		ngdp.WithTimeout(cfg.Timeout),
		ngdp.WithStepListener(rep.OnStep),
		ngdp.WithStepListener(metrics.StepListener(name)),
	}
	if cfg.Artifacts.Screenshot {
		opts = append(opts, ngdp.WithFailureScreenshot(func(buf []byte) {
			saveArtifact(rep, dir, "screenshot", "failure.png", buf)
		}))
	}
	runErr := ngdp.NewRunner(d, opts...).Run(ctx, sc.Actions(cfg.Enduser))

	if runErr == nil {
		captureFinal(ctx, d, cfg, rep)
	}
	rep.Finish(runErr)
	metrics.ObserveRun(name, runErr)

	path, err := rep.WriteFile(dir)
	if err != nil {
		logger.Error().Err(err).Msg("could not write report")
	} else {
		logger.Info().Str("path", path).Msg("report written")
	}
	if cfg.Artifacts.Metrics != "" {
		if err := metrics.WriteTextfile(cfg.Artifacts.Metrics); err != nil {
			logger.Error().Err(err).Msg("could not write metrics")
		}
	}
	if runErr != nil {
		return fmt.Errorf("scenario %s: %w", name, runErr)
	}
	logger.Info().Str("scenario", name).Dur("duration", rep.Duration).Msg("run ok")
	return nil
}

// captureFinal captures the final page: its screenshot, compared with the
// baseline when configured, and its PDF.
func captureFinal(ctx context.Context, d ngdp.Driver, cfg *config.Config, rep *report.Report) {
	a := cfg.Artifacts
	if a.Screenshot || a.Baseline != "" {
		actx, cancel := context.WithTimeout(ctx, artifactTimeout)
		buf, err := d.Screenshot(actx)
		cancel()
		switch {
		case err != nil:
			logger.Warn().Err(err).Msg("could not capture final screenshot")
		case a.Baseline != "":
			n, err := report.Compare(buf, a.Baseline, a.Threshold)
			if err != nil {
				logger.Warn().Err(err).Msg("could not compare with baseline")
			} else {
				rep.SetDiffPixels(n)
				logger.Info().Int("pixels", n).Str("baseline", a.Baseline).Msg("compared with baseline")
			}
			fallthrough
		default:
			saveArtifact(rep, a.Dir, "final", "final.png", buf)
		}
	}
	if a.PDF {
		actx, cancel := context.WithTimeout(ctx, artifactTimeout)
		buf, err := d.PrintPDF(actx)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Msg("could not print page")
			return
		}
		saveArtifact(rep, a.Dir, "pdf", "final.pdf", buf)
		if text, err := report.PDFText(buf); err == nil {
			logger.Debug().Int("chars", len(text)).Msg("final page text")
		}
	}
}

func saveArtifact(rep *report.Report, dir, kind, name string, buf []byte) {
	path, err := rep.SaveArtifact(dir, kind, name, buf)
	if err != nil {
		logger.Warn().Err(err).Str("kind", kind).Msg("could not save artifact")
		return
	}
	logger.Info().Str("path", filepath.ToSlash(path)).Msg(kind + " saved")
}
