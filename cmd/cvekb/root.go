package main

import (
	"github.com/spf13/cobra"

	"github.com/recon-agent/cvekb/pkg/config"
	"github.com/recon-agent/cvekb/pkg/logger"
)

var (
	cfg     *config.Config
	cfgFile string

	logLevel  string
	logFormat string
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "cvekb",
		Short: "CVE data processor for the reconnaissance knowledge base",
		Long: `cvekb filters the public cvelistV5 corpus down to web-relevant
vulnerabilities and emits them as a CSV file for knowledge-base
ingestion. Companion subcommands analyze the corpus before a run,
split oversized output files, and load results into a local catalog.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			if logFormat != "" {
				cfg.Logging.Format = logFormat
			}
			return logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format override (console, json)")

	root.AddCommand(
		newProcessCommand(),
		newAnalyzeCommand(),
		newSplitCommand(),
		newLoadCommand(),
	)
	return root
}
