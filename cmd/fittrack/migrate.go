// ABOUTME: CLI commands for legacy data import, store status and clearing data.
// ABOUTME: migrate imports a browser localStorage dump; clear wipes every store.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/migrate"
	"github.com/harperreed/fittrack/internal/storage"
	"github.com/harperreed/fittrack/internal/tui"
	"github.com/spf13/cobra"
)

var (
	migrateLegacyDump string
	clearYes          bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Import legacy data and show store status",
	Long: `Show the data version and what is stored, or import data exported from the
old browser version of the tracker.

Migration of data already staged in the database runs automatically every
time fittrack opens. A legacy dump is a JSON object holding the old
localStorage keys (fittrack_records, fittrack_config, fittrack_treinos,
fittrack_treino_checkins); values may be JSON strings or inline JSON.

Photos embedded in legacy records are moved into the photo store. Records
with an unreadable date or weight are skipped and counted.

USAGE:

  fittrack migrate                              # Show status
  fittrack migrate --legacy-dump localstorage.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if migrateLegacyDump != "" {
			data, err := os.ReadFile(migrateLegacyDump)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			dump, err := storage.ParseLegacyDump(data)
			if err != nil {
				return err
			}
			staged, res, err := session.ImportLegacy(cmd.Context(), dump)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			writeStaged(out, staged)
			writeMigration(out, res)
			fmt.Fprintln(out)
		}

		st, err := session.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read status: %w", err)
		}
		writeStatus(out, st)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all data",
	Long: `Delete every record, photo, workout plan, check-in and setting.

CAUTION:

  This permanently deletes everything. There is no undo. Export first with
  'fittrack export json -o backup.json'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			var confirmed bool
			form := tui.ConfirmForm("Delete all fittrack data?",
				"Records, photos, plans, check-ins and settings will be removed.", "Yes, delete", &confirmed)
			if err := form.RunWithContext(cmd.Context()); err != nil {
				return fmt.Errorf("confirm: %w", err)
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
				return nil
			}
		}

		if err := session.ClearAll(cmd.Context()); err != nil {
			return err
		}
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "✗ Deleted all data")
		return nil
	},
}

func writeStaged(out io.Writer, s *storage.StashSummary) {
	found := func(ok bool) string {
		if ok {
			return "found"
		}
		return "missing"
	}
	faint := color.New(color.Faint)
	fmt.Fprintf(out, "%s records %s, config %s, plans %s, check-ins %s\n",
		faint.Sprint("Legacy keys:"),
		found(s.Records), found(s.Config), found(s.Workouts), found(s.CheckIns))
}

func writeMigration(out io.Writer, res *migrate.Result) {
	if res.AlreadyCurrent {
		fmt.Fprintln(out, "Nothing to migrate.")
		return
	}
	color.New(color.FgGreen).Fprintf(out, "✓ Migrated from %s in %s\n", res.FromVersion, res.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "  Records:   %d (%d skipped)\n", res.Records, res.Skipped)
	fmt.Fprintf(out, "  Photos:    %d\n", res.PhotosExtracted)
	fmt.Fprintf(out, "  Plans:     %d\n", res.Plans)
	fmt.Fprintf(out, "  Check-ins: %d\n", res.CheckIns)
	if res.Settings {
		fmt.Fprintln(out, "  Settings:  imported")
	}
}

func init() {
	migrateCmd.Flags().StringVar(&migrateLegacyDump, "legacy-dump", "", "JSON file of legacy localStorage keys to import")
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(clearCmd)
}
