// ABOUTME: CLI command for logging the day's weight and measurements.
// ABOUTME: Optional flags set waist, water, sleep, a note and progress photos.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/spf13/cobra"
)

var (
	logDate  string
	logWaist float64
	logWater float64
	logSleep float64
	logNote  string
	logFront string
	logSide  string
)

var logCmd = &cobra.Command{
	Use:     "log <weight>",
	Aliases: []string{"add", "a"},
	Short:   "Log the day's weight",
	Long: `Log body weight in kg for a day. Logging the same day again replaces
that day's record; photos already attached stay unless new ones are given.

A weight more than 10kg away from the neighbouring record is rejected as a
likely typo.

Examples:
  fittrack log 82.5
  fittrack log 82,4 --date yesterday --sleep 6.5 --water 2.2
  fittrack log 81.9 --waist 88 --note "after holidays"
  fittrack log 81.7 --front front.jpg --side side.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := parseKg(args[0])
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[0])
		}

		date, err := parseDay(logDate)
		if err != nil {
			return fmt.Errorf("invalid date: %s", logDate)
		}

		r := models.NewRecord(date, weight)
		flags := cmd.Flags()
		if flags.Changed("waist") {
			r.WithWaist(logWaist)
		}
		if flags.Changed("water") {
			r.WithWater(logWater)
		}
		if flags.Changed("sleep") {
			r.WithSleep(logSleep)
		}
		if logNote != "" {
			r.WithNote(logNote)
		}

		images := make(map[models.PhotoType][]byte)
		for pt, path := range map[models.PhotoType]string{models.PhotoFront: logFront, models.PhotoSide: logSide} {
			if path == "" {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s photo: %w", pt, err)
			}
			images[pt] = data
		}

		saved, err := session.SaveRecord(cmd.Context(), r, images)
		if err != nil {
			return fmt.Errorf("failed to log record: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Logged %.1f kg for %s\n", saved.Weight, saved.DateString())
		if len(images) > 0 {
			fmt.Fprintf(out, "  %s\n", color.New(color.Faint).Sprintf("%d photo(s) stored", len(images)))
		}
		return nil
	},
}

// parseKg accepts a decimal point or a decimal comma.
func parseKg(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
}

// parseDay reads a day for a record or check-in. Empty means today.
func parseDay(s string) (time.Time, error) {
	today := session.Today()
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	if d, err := models.ParseDate(s); err == nil {
		return d, nil
	}
	t, err := parseTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return models.Day(t), nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "day to log (YYYY-MM-DD, dd/mm/yyyy, today, yesterday)")
	logCmd.Flags().Float64Var(&logWaist, "waist", 0, "waist in cm")
	logCmd.Flags().Float64Var(&logWater, "water", 0, "water drunk in litres")
	logCmd.Flags().Float64Var(&logSleep, "sleep", 0, "hours slept")
	logCmd.Flags().StringVar(&logNote, "note", "", "note for the day")
	logCmd.Flags().StringVar(&logFront, "front", "", "front progress photo file")
	logCmd.Flags().StringVar(&logSide, "side", "", "side progress photo file")
	rootCmd.AddCommand(logCmd)
}
