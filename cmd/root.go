// Package cmd is for command line interactions with the exoclust application
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/yumyai/exoclust/config"
	"github.com/yumyai/exoclust/logger"
	"github.com/yumyai/exoclust/pkg/db"
)

const Version = "0.1.0"

var (
	v   = viper.New()
	cfg *config.Config
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "exoclust",
	Short: "Collapse overlapping gene predictions to one representative sequence per locus",
	Long: `
Group the gene features of per-species aligner output (GFF-like lines) into
clusters of overlapping intervals, persist them as a cluster report, and keep
the longest sequence of every cluster from a FASTA file.

Settings can also be given as EXOCLUST_* environment variables or in a .env file.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// setup runs before every subcommand: env, config, logger.
func setup(cmd *cobra.Command, args []string) error {
	// Try load env
	dotenvErr := godotenv.Load()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	var err error
	cfg, err = config.New(v)
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if err := logger.InitLogger(level); err != nil {
		return err
	}

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}
	logger.Debug("Start:", zap.String("Version", Version), zap.String("command", cmd.Name()))

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := RootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync() // Make sure that the buffered is flushed.

	if err != nil {
		os.Exit(1)
	}
}

// openDB returns nil when no cluster database is configured.
func openDB() (*db.ClusterDB, error) {
	if cfg.DB == "" {
		return nil, nil
	}
	return db.OpenClusterDB(cfg.DB)
}

func init() {
	config.SetDefaults(v)

	RootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	RootCmd.PersistentFlags().String("db", "", "sqlite database to record runs and representatives in")
}
