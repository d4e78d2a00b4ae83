// Package cli defines the ragclient command tree.
//
// The root command assembles the application lazily in PersistentPreRunE so
// that flags such as --config and --ephemeral apply to every subcommand.
// Running ragclient with no subcommand starts the TUI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ragclient/internal/config"
	"ragclient/internal/logger"
)

// CLI owns the root command and the App it builds.
type CLI struct {
	root *cobra.Command
	app  *App

	configPath string
	envFile    string
	logLevel   string
	ephemeral  bool
}

// New builds the command tree.
func New() *CLI {
	c := &CLI{}
	c.root = &cobra.Command{
		Use:           "ragclient",
		Short:         "Query a document search service and read summaries",
		Long:          `A terminal client for a remote search and summarization service with query history and suggestions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		RunE: c.runTUI,
	}

	f := c.root.PersistentFlags()
	f.StringVar(&c.configPath, "config", "", "Path to YAML config file (default ./config.yaml or ~/.config/ragclient/config.yaml)")
	f.StringVar(&c.envFile, "env-file", "", "Load environment variables from this file before reading config")
	f.StringVar(&c.logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")
	f.BoolVar(&c.ephemeral, "ephemeral", false, "Keep history and preferences in memory only")

	c.root.AddCommand(
		c.newTUICmd(),
		c.newAskCmd(),
		c.newHistoryCmd(),
		c.newSuggestCmd(),
	)
	return c
}

// Command returns the root command.
func (c *CLI) Command() *cobra.Command { return c.root }

// Execute runs the command tree with args and releases the App afterwards.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	c.root.SetArgs(args)
	err := c.root.ExecuteContext(ctx)
	if c.app != nil {
		if closeErr := c.app.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
		c.app = nil
	}
	return err
}

// Main is the process entry point.
func Main() {
	if err := New().Execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (c *CLI) setup(cmd *cobra.Command) error {
	if c.envFile != "" {
		if err := godotenv.Load(c.envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", c.envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	var (
		cfg *config.AppConfig
		err error
	)
	if c.configPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(c.configPath)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}

	log, err := logger.New(cfg.Logging.Env, cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	app, err := NewApp(cfg, log, c.ephemeral)
	if err != nil {
		_ = log.Sync()
		return err
	}
	c.app = app
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))
	return nil
}
