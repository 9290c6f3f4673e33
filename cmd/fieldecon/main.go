package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ougirez/fieldecon/internal/config"
	"github.com/ougirez/fieldecon/internal/pkg/logger"
)

// Injected with -ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "fieldecon",
		Short:         "Field development economics: cost, income and cash flow per case",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "overrides log.level")

	cmd.AddCommand(
		newServeCommand(opts),
		newCalcCommand(),
		newImportCommand(opts),
		newMigrateCommand(opts),
	)
	return cmd
}

// loadConfig reads the config and initializes the process logger.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err = logger.Init(cfg.Log); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	err := newRootCommand().Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
