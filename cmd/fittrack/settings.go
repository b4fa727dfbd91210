// ABOUTME: CLI commands for viewing and changing goal settings.
// ABOUTME: set changes individual fields from flags; edit opens an interactive form.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/tui"
	"github.com/spf13/cobra"
)

var (
	setName         string
	setInitial      float64
	setTarget       float64
	setDeadline     string
	setReminder     bool
	setReminderTime string
	setTheme        string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change goal settings",
	Long: `View and change your name, starting and target weights, the goal
deadline, the daily reminder and the colour theme.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return settingsShowCmd.RunE(cmd, args)
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := session.Settings(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		writeSettings(cmd.OutOrStdout(), s)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings from flags",
	Long: `Change individual settings. Only the flags you pass are changed; the rest
keep their values. Pass --deadline "" to remove the deadline.

Examples:
  fittrack settings set --name Sam --initial 95 --target 82
  fittrack settings set --deadline 2025-06-01
  fittrack settings set --reminder --reminder-time 21:30
  fittrack settings set --theme light`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var u models.SettingsUpdate

		if flags.Changed("name") {
			u.Name = &setName
		}
		if flags.Changed("initial") {
			u.InitialWeight = &setInitial
		}
		if flags.Changed("target") {
			u.TargetWeight = &setTarget
		}
		if flags.Changed("deadline") {
			if strings.TrimSpace(setDeadline) == "" {
				u.ClearDeadline = true
			} else {
				d, err := models.ParseDate(setDeadline)
				if err != nil {
					return fmt.Errorf("invalid deadline: %s", setDeadline)
				}
				u.Deadline = &d
			}
		}
		if flags.Changed("reminder") {
			u.ReminderEnabled = &setReminder
		}
		if flags.Changed("reminder-time") {
			u.ReminderTime = &setReminderTime
		}
		if flags.Changed("theme") {
			theme := models.Theme(setTheme)
			u.Theme = &theme
		}

		if u.IsEmpty() {
			return fmt.Errorf("nothing to change; see 'fittrack settings set --help'")
		}

		s, err := session.UpdateSettings(cmd.Context(), u)
		if err != nil {
			return fmt.Errorf("failed to update settings: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintln(out, "✓ Settings updated")
		writeSettings(out, s)
		return nil
	},
}

var settingsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit settings in an interactive form",
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := session.Settings(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		in := tui.NewSettingsInput(current)
		if err := in.Form().RunWithContext(cmd.Context()); err != nil {
			return fmt.Errorf("settings form: %w", err)
		}
		u, err := in.Update()
		if err != nil {
			return err
		}

		s, err := session.UpdateSettings(cmd.Context(), u)
		if err != nil {
			return fmt.Errorf("failed to update settings: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintln(out, "✓ Settings updated")
		writeSettings(out, s)
		return nil
	},
}

func writeSettings(out io.Writer, s models.Settings) {
	deadline := "none"
	if s.Deadline != nil {
		deadline = models.FormatDate(*s.Deadline)
	}
	reminder := "off"
	if s.ReminderEnabled {
		reminder = "at " + s.ReminderTime
	}

	fmt.Fprintf(out, "Name:     %s\n", s.Name)
	fmt.Fprintf(out, "Initial:  %.1f kg\n", s.InitialWeight)
	fmt.Fprintf(out, "Target:   %.1f kg\n", s.TargetWeight)
	fmt.Fprintf(out, "Deadline: %s\n", deadline)
	fmt.Fprintf(out, "Reminder: %s\n", reminder)
	fmt.Fprintf(out, "Theme:    %s\n", s.Theme)
}

func init() {
	f := settingsSetCmd.Flags()
	f.StringVar(&setName, "name", "", "display name")
	f.Float64Var(&setInitial, "initial", 0, "starting weight in kg")
	f.Float64Var(&setTarget, "target", 0, "target weight in kg")
	f.StringVar(&setDeadline, "deadline", "", "goal date (YYYY-MM-DD), empty to clear")
	f.BoolVar(&setReminder, "reminder", false, "enable the daily reminder (--reminder=false to disable)")
	f.StringVar(&setReminderTime, "reminder-time", "", "reminder time (HH:MM)")
	f.StringVar(&setTheme, "theme", "", "dark or light")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsEditCmd)
	rootCmd.AddCommand(settingsCmd)
}
