// Package cli provides the command-line interface for InsightLens.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/csheth/insightlens/internal/applog"
	"github.com/csheth/insightlens/internal/backend"
	"github.com/csheth/insightlens/internal/config"
	"github.com/csheth/insightlens/internal/console"
	"github.com/csheth/insightlens/internal/tui"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

type configKey struct{}

type loggerKey struct{}

var (
	cfgFile string
	envFile string
)

// NewRootCmd creates the root command. Run without a subcommand it opens the
// interactive console.
func NewRootCmd() *cobra.Command {
	var logCloser io.Closer

	rootCmd := &cobra.Command{
		Use:   "insightlens",
		Short: "InsightLens - ask questions about your business data",
		Long: `InsightLens is a terminal console for the InsightLens analytics backend.

Type a natural-language question, and the answer comes back as prose,
a table or a bar chart. Switch between the three views without asking again.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(config.Options{
				ConfigFile: cfgFile,
				EnvFile:    envFile,
				Flags:      cmd.Root().PersistentFlags(),
			})
			if err != nil {
				return err
			}

			logger, closer, err := applog.OpenOrDiscard(applog.Options{Path: cfg.LogFile, Verbose: cfg.Verbose})
			if err != nil && cfg.Verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			logCloser = closer
			logger.Info("starting", slog.String("command", cmd.Name()), slog.String("version", Version))
			if cfg.FileUsed != "" {
				logger.Debug("config file loaded", slog.String("path", cfg.FileUsed))
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
		RunE:          runConsole,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./insightlens.yaml)")
	flags.StringVar(&envFile, "env-file", "", "dotenv file (default: ./.env)")
	flags.String("backend-url", "", "analytics backend base URL (eg. http://localhost:8000)")
	flags.Duration("timeout", config.DefaultTimeout, "per-request timeout")
	flags.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	flags.String("log-file", "", "log file path (default: $XDG_STATE_HOME/insightlens/insightlens.log)")
	flags.BoolP("verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newAskCommand())
	rootCmd.AddCommand(newDoctorCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command. Failed queries have already been reported
// with the generic message, so only other errors are printed.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, console.ErrRequestFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{Timeout: config.DefaultTimeout, AltScreen: true}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return applog.Discard()
}

// newBackend validates the config and builds the backend client.
func newBackend(ctx context.Context) (backend.Client, *config.Config, error) {
	cfg := GetConfig(ctx)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	client, err := backend.New(backend.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.Timeout,
		Logger:  GetLogger(ctx),
	})
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

func runConsole(cmd *cobra.Command, _ []string) error {
	client, cfg, err := newBackend(cmd.Context())
	if err != nil {
		return err
	}
	logger := GetLogger(cmd.Context())

	opts := []tea.ProgramOption{tea.WithContext(cmd.Context())}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Backend: client,
			Logger:  logger,
		}),
		opts...,
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	logger.Info("console closed")
	return nil
}
