// ABOUTME: CLI command running the daily logging reminder.
// ABOUTME: Prints a reminder once a day after the configured time if nothing is logged.
package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/reminder"
	"github.com/spf13/cobra"
)

var (
	remindInterval time.Duration
	remindOnce     bool
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the daily logging reminder",
	Long: `Watch for the reminder time and print a reminder when nothing has been
logged today. The reminder fires at most once a day and only while it is
enabled in settings:

  fittrack settings set --reminder --reminder-time 20:00

Run it in a spare terminal, or use --once from cron to check a single time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n := terminalNotifier(cmd.OutOrStdout())

		if remindOnce {
			fired, err := reminder.New(session, n).Check(cmd.Context())
			if err != nil {
				return err
			}
			if !fired {
				fmt.Fprintln(cmd.OutOrStdout(), "No reminder due.")
			}
			return nil
		}

		s, err := session.Settings(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		if !s.ReminderEnabled {
			color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(),
				"Reminder is off; enable it with 'fittrack settings set --reminder'")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Reminding at %s daily. Press Ctrl+C to stop.\n", s.ReminderTime)
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()
		return reminder.New(session, n, reminder.WithInterval(remindInterval)).Run(ctx)
	},
}

func terminalNotifier(out io.Writer) reminder.Notifier {
	return reminder.NotifierFunc(func(ctx context.Context, r reminder.Reminder) error {
		_, err := color.New(color.FgCyan, color.Bold).Fprintf(out, "\a%s %s\n",
			color.New(color.Faint).Sprint(models.FormatDate(r.Date)), r.Text)
		return err
	})
}

func init() {
	remindCmd.Flags().DurationVar(&remindInterval, "interval", reminder.DefaultInterval, "how often to re-read settings")
	remindCmd.Flags().BoolVar(&remindOnce, "once", false, "check once and exit")
	rootCmd.AddCommand(remindCmd)
}
