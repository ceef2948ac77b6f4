package main

import (
	"github.com/spf13/cobra"

	"github.com/nixlim/threadscope/internal/config"
)

// options holds the command-line flags. Flags that were set override the
// config file.
type options struct {
	pid         int
	configPath  string
	filter      string
	once        bool
	output      string
	logFile     string
	logLevel    string
	metricsAddr string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "threadscope",
		Short: "Live thread view of a process",
		Long: "threadscope attaches to a process through procfs and shows its threads.\n" +
			"Select a thread to make it current, or interrupt and continue the process.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadConfig(opts, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, opts)
		},
	}

	cmd.Version = Version
	cmd.SetVersionTemplate("threadscope version {{.Version}}\n")

	f := cmd.Flags()
	f.IntVar(&opts.pid, "pid", 0, "process to attach to")
	f.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/threadscope/config.toml)")
	f.StringVar(&opts.filter, "filter", "", "initial filter token")
	f.BoolVar(&opts.once, "once", false, "print the thread list once and exit")
	f.StringVarP(&opts.output, "output", "o", "text", "one-shot output format: text, json or yaml")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn or error")
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

// loadConfig reads the config file and applies the flags the user set.
// changed reports whether a flag was given on the command line.
func loadConfig(opts options, changed func(name string) bool) (*config.LoadResult, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	res, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}

	cfg := &res.Config
	if changed("pid") {
		cfg.Session.PID = opts.pid
	}
	if changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if changed("metrics-addr") {
		cfg.Metrics.Listen = opts.metricsAddr
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return res, nil
}
