// Package cmd implements the taskgrapher command line.
package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"taskgrapher/config"
)

var version = "0.3.0"

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	noColor    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "taskgrapher",
		Short: "Explore a task tree in the terminal",
		Long: "taskgrapher draws a task tree as a node graph you can drag, pan and zoom,\n" +
			"add subtasks to and prune, all inside the terminal.",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}
	cmd.SetVersionTemplate("taskgrapher {{ .Version }}\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text, json")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")

	cmd.AddCommand(
		viewCmd(opts),
		outlineCmd(opts),
	)
	return cmd
}

// load reads the configuration and applies flag overrides.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
