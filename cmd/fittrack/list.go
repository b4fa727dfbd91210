// ABOUTME: CLI commands for listing and deleting records.
// ABOUTME: list is a compact newest-first view; history shows every field.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/metrics"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/spf13/cobra"
)

var (
	listSince string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List recent records",
	Long: `List logged records, newest first.

OUTPUT FORMAT:

  Each line shows: DATE  WEIGHT  CHANGE  (NOTE)

  CHANGE is the kilograms lost since the previous record; a negative value
  means weight went up.

EXAMPLES:

  fittrack list                       # Last 20 records
  fittrack list -n 60                 # Last 60 records
  fittrack list --since 2024-01-01    # Everything since New Year`,
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := loadHistory(cmd, listLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(history) == 0 {
			fmt.Fprintln(out, "No records found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range history {
			note := ""
			if e.Record.Note != nil && *e.Record.Note != "" {
				note = faint.Sprintf(" (%s)", truncate(*e.Record.Note, 30))
			}
			fmt.Fprintf(out, "%s %s %s%s\n",
				faint.Sprint(e.Record.DateString()),
				padRight(fmt.Sprintf("%.1f kg", e.Record.Weight), 10),
				padRight(formatChange(e.Change), 8),
				note)
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show records with every measurement",
	Long: `Show logged records newest first with waist, water, sleep, photos and notes.

EXAMPLES:

  fittrack history
  fittrack history --since 2024-03-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := loadHistory(cmd, 0)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(history) == 0 {
			fmt.Fprintln(out, "No records found.")
			return nil
		}

		for i, e := range history {
			if i > 0 {
				fmt.Fprintln(out)
			}
			writeRecord(out, e)
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <date>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete the record for a date",
	Long: `Delete the record logged for a date, along with its photos.

EXAMPLES:

  fittrack delete 2024-03-02
  fittrack rm yesterday

CAUTION:

  This permanently deletes the record. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDay(args[0])
		if err != nil {
			return fmt.Errorf("invalid date: %s", args[0])
		}

		r, err := session.Record(cmd.Context(), date)
		if err != nil {
			return fmt.Errorf("record not found: %s", models.FormatDate(date))
		}
		if err := session.DeleteRecord(cmd.Context(), date); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgYellow).Fprintf(out, "✗ Deleted %s\n", r.DateString())
		fmt.Fprintf(out, "  %.1f kg\n", r.Weight)
		return nil
	},
}

// loadHistory reads records newest first; limit <= 0 means all of them.
func loadHistory(cmd *cobra.Command, limit int) ([]metrics.HistoryEntry, error) {
	var (
		records []*models.Record
		err     error
	)
	if listSince != "" {
		since, perr := parseDay(listSince)
		if perr != nil {
			return nil, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", listSince)
		}
		records, err = session.RecordsSince(cmd.Context(), since)
	} else {
		records, err = session.Records(cmd.Context())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	history := metrics.History(records)
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}

func writeRecord(out io.Writer, e metrics.HistoryEntry) {
	r := e.Record
	faint := color.New(color.Faint)

	fmt.Fprintf(out, "%s  %s  %s\n",
		color.New(color.Bold).Sprint(r.DateString()),
		fmt.Sprintf("%.1f kg", r.Weight),
		faint.Sprint(formatChange(e.Change)))
	if r.Waist != nil {
		fmt.Fprintf(out, "  Waist: %.1f cm\n", *r.Waist)
	}
	if r.Water != nil {
		fmt.Fprintf(out, "  Water: %.1f L\n", *r.Water)
	}
	if r.Sleep != nil {
		fmt.Fprintf(out, "  Sleep: %.1f h\n", *r.Sleep)
	}
	var photos []string
	for _, pt := range models.PhotoTypes {
		if r.PhotoRef(pt) != nil {
			photos = append(photos, string(pt))
		}
	}
	if len(photos) > 0 {
		fmt.Fprintf(out, "  Photos: %s\n", strings.Join(photos, ", "))
	}
	if r.Note != nil && *r.Note != "" {
		fmt.Fprintf(out, "  Note: %s\n", *r.Note)
	}
}

func formatChange(change *float64) string {
	if change == nil {
		return "-"
	}
	return fmt.Sprintf("%+.1f", *change)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	for _, c := range []*cobra.Command{listCmd, historyCmd} {
		c.Flags().StringVar(&listSince, "since", "", "only records on or after this date (YYYY-MM-DD)")
	}
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(deleteCmd)
}
