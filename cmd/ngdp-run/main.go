// ngdp-run runs the enduser scenarios against a live enduser application, or
// against the bundled fake application started with "ngdp-run serve".
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chromedp/ngdp/config"
	"github.com/chromedp/ngdp/enduser"
)

// version is set at build time.
var version = "dev"

var (
	configPath string
	v          *viper.Viper
	logger     log.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ngdp-run",
		Short:         "Run end-to-end scenarios against the enduser web UI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if v, err = config.New(configPath); err != nil {
				return err
			}
			for key, name := range boundFlags {
				if f := cmd.Flags().Lookup(name); f != nil {
					if err := v.BindPFlag(key, f); err != nil {
						return err
					}
				}
			}
			logger = newLogger(v.GetString("log.level"))
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" when present)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd(), serveCmd(), listCmd(), configCmd(), versionCmd())
	return wrapErrors(root)
}

// boundFlags maps configuration keys to the flags overriding them.
var boundFlags = map[string]string{
	"log.level":          "log-level",
	"driver":             "driver",
	"timeout":            "timeout",
	"enduser.base_url":   "base-url",
	"artifacts.dir":      "artifacts",
	"artifacts.baseline": "baseline",
	"artifacts.pdf":      "pdf",
	"browser.headless":   "headless",
	"browser.exec_path":  "exec-path",
	"browser.remote_url": "remote-url",
	"serve.addr":         "addr",
}

// wrapErrors logs the errors returned by the commands.
func wrapErrors(root *cobra.Command) *cobra.Command {
	for _, cmd := range root.Commands() {
		runE := cmd.RunE
		if runE == nil {
			continue
		}
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			err := runE(cmd, args)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg(cmd.Name() + " failed")
			}
			return err
		}
	}
	return root
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range enduser.Names() {
				s, err := enduser.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", s.Name, s.Description)
			}
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Decode(v); err != nil {
				return err
			}
			buf, err := config.Dump(v)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(buf)
			return err
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "ngdp-run", version)
		},
	}
}
