// ABOUTME: Root Cobra command for fittrack CLI.
// ABOUTME: Loads config, sets up logging and owns the session via PersistentPre/PostRunE.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/app"
	"github.com/harperreed/fittrack/internal/config"
	"github.com/harperreed/fittrack/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var (
	dataDirFlag string

	session   *app.Session
	logCloser io.Closer
)

// noSession lists commands that run without opening the data directory.
var noSession = map[string]bool{
	"help":          true,
	"completion":    true,
	"install-skill": true,
}

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "Personal weight and workout tracker",
	Long: `Fittrack is a CLI tool for tracking body weight toward a goal,
with daily measurements, progress photos and weekly workout plans.

QUICK START:

  $ fittrack settings set --initial 92 --target 80 --deadline 2025-06-01
  $ fittrack log 91.4 --sleep 7.5 --water 2   # Log today's weight
  $ fittrack dashboard                         # Progress, streak, insights
  $ fittrack chart --days 30                   # Weight chart

WORKOUTS:

  $ fittrack workout plan add "Upper A" --days mon,thu \
      --exercise "Bench press|4|6-8|90|60kg" --exercise "Row"
  $ fittrack workout today                     # What is scheduled today
  $ fittrack workout checkin 1a2b3c4d --duration 50
  $ fittrack workout rest 90s                  # Rest countdown

MCP INTEGRATION:

  Run 'fittrack mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "fittrack": { "command": "fittrack", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Records live in SQLite at ~/.local/share/fittrack/fittrack.db and photos
  in ~/.local/share/fittrack/photos. Use --data-dir or data_dir in
  ~/.config/fittrack/config.toml to move them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noSession[cmd.Name()] {
			return nil
		}
		return openSession(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeSession()
	},
}

// Execute runs the root command. The session is closed even when the
// command fails, since cobra skips PersistentPostRunE on error.
func Execute() error {
	err := rootCmd.Execute()
	return multierr.Append(err, closeSession())
}

func openSession(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	dataDir := cfg.GetDataDir()

	logCloser = logging.Setup(logging.Params{
		Level: cfg.GetLogLevel(),
		File:  cfg.GetLogFile(),
	})

	if ctx == nil {
		ctx = context.Background()
	}
	session, err = app.Open(ctx, app.Options{
		DataDir:      dataDir,
		PhotoCacheMB: cfg.GetPhotoCacheMB(),
	})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", dataDir, err)
	}

	if res := session.Migration(); res != nil && !res.AlreadyCurrent {
		color.New(color.Faint).Fprintf(os.Stderr,
			"Migrated %d records, %d photos, %d plans from %s\n",
			res.Records, res.PhotosExtracted, res.Plans, res.FromVersion)
	}
	return nil
}

func closeSession() error {
	var err error
	if session != nil {
		err = multierr.Append(err, session.Close())
		session = nil
	}
	if logCloser != nil {
		err = multierr.Append(err, logCloser.Close())
		logCloser = nil
	}
	return err
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default ~/.local/share/fittrack)")
}
