package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"domain-recovery/internal/config"
)

type options struct {
	configPath string
	output     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "recoverctl",
		Short: "Classify a domain's lifecycle state and print a recovery guide",
		Long: `recoverctl runs the recovery engine from the command line.

analyze performs live WHOIS, website, DNS and archive lookups. evaluate, value,
classify and email work offline on the data given to them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "json" && opts.output != "text" {
				return fmt.Errorf("unsupported output %q (want json or text)", opts.output)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "config/config.yaml", "config file path")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format: text or json")
	root.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "log lookups to stderr")
	root.Version = "0.1.0"

	root.AddCommand(
		newAnalyzeCmd(opts),
		newEvaluateCmd(opts),
		newValueCmd(opts),
		newClassifyCmd(opts),
		newEmailCmd(opts),
		newTemplatesCmd(opts),
	)
	return root
}

// loadConfig reads the config file when present, otherwise defaults plus DR_* variables
func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config.LoadEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
