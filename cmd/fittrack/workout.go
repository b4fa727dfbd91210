// ABOUTME: CLI commands for workout plans, check-ins and the rest timer.
// ABOUTME: Supports plan add/list/show/delete/toggle, checkin, stats, today and rest.
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/tui"
	"github.com/spf13/cobra"
)

var (
	planDays        []string
	planExercises   []string
	planDescription string

	checkinDate     string
	checkinDuration int
	checkinNote     string
	checkinSkipped  bool

	restLabel string
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workout plans and check-ins",
	Long: `Plan weekly workouts and check in when you do them.

A plan is a named list of exercises scheduled on weekdays. Each day a plan
is scheduled you can check in once (done or skipped); checking in again the
same day replaces the earlier check-in.

WORKFLOW:

  1. Create a plan:   fittrack workout plan add "Legs" --days tue,sat --exercise "Squat|5|5|180"
  2. See today:       fittrack workout today
  3. Rest timer:      fittrack workout rest 3m
  4. Check in:        fittrack workout checkin <plan-id> --duration 55
  5. Adherence:       fittrack workout stats`,
}

var workoutPlanCmd = &cobra.Command{
	Use:     "plan",
	Aliases: []string{"plans", "p"},
	Short:   "Manage workout plans",
}

var planAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a workout plan",
	Long: `Create a workout plan scheduled on one or more weekdays.

Exercises are given as "name|sets|reps|rest seconds|load"; everything after
the name is optional and defaults to 3 sets of 8-10 with 60s rest.

Examples:
  fittrack workout plan add "Upper A" --days mon,thu \
    --exercise "Bench press|4|6-8|90|60kg" --exercise "Pull-up|3|max"
  fittrack workout plan add Run --days sat --exercise "Easy 5k|1|1|0"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var days []time.Weekday
		for _, arg := range planDays {
			for _, name := range strings.Split(arg, ",") {
				if strings.TrimSpace(name) == "" {
					continue
				}
				d, err := models.ParseWeekday(name)
				if err != nil {
					return err
				}
				days = append(days, d)
			}
		}

		p := models.NewWorkoutPlan(args[0], days...)
		if planDescription != "" {
			p.WithDescription(planDescription)
		}
		for _, raw := range planExercises {
			e, err := parseExercise(raw)
			if err != nil {
				return err
			}
			p.WithExercise(e)
		}

		if err := session.SavePlan(cmd.Context(), p); err != nil {
			return fmt.Errorf("failed to create plan: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Created plan %s\n", p.Name)
		fmt.Fprintf(out, "  ID: %s\n", p.ID.String()[:8])
		fmt.Fprintf(out, "  Days: %s\n", strings.Join(p.DayNames(), ", "))
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workout plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		plans, err := session.Plans(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list plans: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(plans) == 0 {
			fmt.Fprintln(out, "No workout plans found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range plans {
			status := ""
			if !p.IsActive {
				status = faint.Sprint(" (paused)")
			}
			fmt.Fprintf(out, "%s %s %s %d exercises%s\n",
				faint.Sprint(p.ID.String()[:8]),
				padRight(p.Name, 16),
				padRight(strings.Join(p.DayNames(), ","), 16),
				len(p.Exercises),
				status)
		}
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a plan with its exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := session.Plan(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get plan: %w", err)
		}
		out := cmd.OutOrStdout()
		writePlan(out, p)

		checkins, err := session.PlanCheckIns(cmd.Context(), p.ID.String())
		if err != nil {
			return fmt.Errorf("failed to list check-ins: %w", err)
		}
		if len(checkins) == 0 {
			return nil
		}
		fmt.Fprintln(out, "\nRecent check-ins:")
		for _, c := range checkins[max(len(checkins)-planShowCheckIns, 0):] {
			writeCheckIn(out, c)
		}
		return nil
	},
}

// planShowCheckIns is how many check-ins plan show lists.
const planShowCheckIns = 5

func writeCheckIn(out io.Writer, c *models.CheckIn) {
	status := color.New(color.FgGreen).Sprint("done")
	if !c.Completed {
		status = color.New(color.FgYellow).Sprint("skipped")
	}
	line := fmt.Sprintf("  %s %s", models.FormatDate(c.Date), status)
	if c.DurationMinutes != nil {
		line += fmt.Sprintf(", %d min", *c.DurationMinutes)
	}
	if c.Note != nil {
		line += " " + truncate(*c.Note, 40)
	}
	fmt.Fprintln(out, line)
}

var planDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a plan",
	Long: `Delete a workout plan by ID or ID prefix. Check-ins for the plan are kept
as history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := session.Plan(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("plan not found: %s", args[0])
		}
		if err := session.DeletePlan(cmd.Context(), p.ID.String()); err != nil {
			return fmt.Errorf("failed to delete plan: %w", err)
		}

		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted plan %s\n", p.Name)
		return nil
	},
}

var planToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Pause or resume a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := session.Plan(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("plan not found: %s", args[0])
		}
		active := !p.IsActive
		if err := session.SetPlanActive(cmd.Context(), p.ID.String(), active); err != nil {
			return fmt.Errorf("failed to update plan: %w", err)
		}

		state := "paused"
		if active {
			state = "active"
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Plan %s is now %s\n", p.Name, state)
		return nil
	},
}

var checkinCmd = &cobra.Command{
	Use:     "checkin <plan-id>",
	Aliases: []string{"done"},
	Short:   "Check in a workout",
	Long: `Record that a plan was done on a day (today by default). Use --skipped to
record a missed session. Checking in the same plan twice on one day
replaces the earlier check-in.

Examples:
  fittrack workout checkin 1a2b3c4d
  fittrack workout checkin 1a2b --duration 45 --note "felt strong"
  fittrack workout checkin 1a2b --date yesterday --skipped`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDay(checkinDate)
		if err != nil {
			return fmt.Errorf("invalid date: %s", checkinDate)
		}
		p, err := session.Plan(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("plan not found: %s", args[0])
		}

		c := models.NewCheckIn(date, p.ID)
		if checkinDuration > 0 {
			c.WithDuration(checkinDuration)
		}
		if checkinNote != "" {
			c.WithNote(checkinNote)
		}
		if checkinSkipped {
			c.Skipped()
		}
		if err := session.CheckIn(cmd.Context(), c); err != nil {
			return fmt.Errorf("failed to check in: %w", err)
		}

		out := cmd.OutOrStdout()
		if checkinSkipped {
			color.New(color.FgYellow).Fprintf(out, "✗ Skipped %s on %s\n", p.Name, models.FormatDate(date))
			return nil
		}
		color.New(color.FgGreen).Fprintf(out, "✓ Checked in %s on %s\n", p.Name, models.FormatDate(date))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workout totals and weekly adherence",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := session.WorkoutStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to compute workout stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total:     %d workouts\n", ws.Total)
		fmt.Fprintf(out, "Streak:    %d days\n", ws.Streak)
		fmt.Fprintf(out, "This week: %d of %d planned\n", ws.ThisWeek, ws.Expected)
		fmt.Fprintf(out, "Adherence: %d%%\n", ws.Adherence)
		return nil
	},
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the workout scheduled today",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, done, err := session.TodayWorkout(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to find today's workout: %w", err)
		}

		out := cmd.OutOrStdout()
		if p == nil {
			fmt.Fprintln(out, "No workout scheduled today.")
			return nil
		}
		writePlan(out, p)
		if done {
			color.New(color.FgGreen).Fprintln(out, "\n✓ Done today")
		}
		return nil
	},
}

var restCmd = &cobra.Command{
	Use:   "rest [duration]",
	Short: "Run a rest countdown",
	Long: `Count down a rest period between sets. The duration is seconds or a Go
duration such as 90s or 2m30s, and defaults to 60 seconds.

KEYS:

  space    pause or resume
  +        add 15 seconds
  s        skip the rest of the countdown
  q        quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := time.Duration(models.DefaultRestSeconds) * time.Second
		if len(args) == 1 {
			var err error
			if d, err = parseRest(args[0]); err != nil {
				return err
			}
		}

		settings, err := session.Settings(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		res, err := tui.RunRestTimer(ctx, restLabel, d, tui.StylesFor(settings.Theme))
		if err != nil {
			return err
		}

		switch {
		case res.Completed:
			color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Rest done")
		case res.Skipped:
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped with %s left\n", res.Remaining.Round(time.Second))
		}
		return nil
	},
}

// parseExercise reads "name|sets|reps|rest|load" with everything after the
// name optional.
func parseExercise(raw string) (models.Exercise, error) {
	parts := strings.Split(raw, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) > 5 {
		return models.Exercise{}, fmt.Errorf("invalid exercise %q: too many fields", raw)
	}

	e := models.NewExercise(parts[0])
	if len(parts) > 1 && parts[1] != "" {
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return models.Exercise{}, fmt.Errorf("invalid exercise %q: sets must be a number", raw)
		}
		e.SetCount = n
	}
	if len(parts) > 2 && parts[2] != "" {
		e.RepRange = parts[2]
	}
	if len(parts) > 3 && parts[3] != "" {
		n, err := strconv.Atoi(parts[3])
		if err != nil {
			return models.Exercise{}, fmt.Errorf("invalid exercise %q: rest must be seconds", raw)
		}
		e.RestSeconds = n
	}
	if len(parts) > 4 && parts[4] != "" {
		load := parts[4]
		e.Load = &load
	}
	return e, nil
}

func parseRest(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		s = strconv.Itoa(n) + "s"
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid rest duration: %s", s)
	}
	return d, nil
}

func writePlan(out io.Writer, p *models.WorkoutPlan) {
	fmt.Fprintf(out, "Plan: %s %s\n", p.Name, color.New(color.Faint).Sprint(p.ID.String()[:8]))
	fmt.Fprintf(out, "Days: %s\n", strings.Join(p.DayNames(), ", "))
	if p.Description != nil {
		fmt.Fprintf(out, "Description: %s\n", *p.Description)
	}
	if !p.IsActive {
		fmt.Fprintln(out, "Status: paused")
	}

	if len(p.Exercises) > 0 {
		fmt.Fprintln(out, "\nExercises:")
		for _, e := range p.Exercises {
			load := ""
			if e.Load != nil {
				load = " @ " + *e.Load
			}
			fmt.Fprintf(out, "  %s %dx%s%s, rest %ds\n",
				padRight(e.Name, 20), e.SetCount, e.RepRange, load, e.RestSeconds)
		}
	}
}

func init() {
	planAddCmd.Flags().StringSliceVar(&planDays, "days", nil, "weekdays, e.g. mon,wed,fri")
	planAddCmd.Flags().StringArrayVarP(&planExercises, "exercise", "e", nil, `exercise as "name|sets|reps|rest|load" (repeatable)`)
	planAddCmd.Flags().StringVar(&planDescription, "description", "", "plan description")

	checkinCmd.Flags().StringVar(&checkinDate, "date", "", "day of the workout (default today)")
	checkinCmd.Flags().IntVarP(&checkinDuration, "duration", "d", 0, "duration in minutes")
	checkinCmd.Flags().StringVarP(&checkinNote, "note", "n", "", "check-in note")
	checkinCmd.Flags().BoolVar(&checkinSkipped, "skipped", false, "record the workout as skipped")

	restCmd.Flags().StringVarP(&restLabel, "label", "l", "Rest", "label shown above the countdown")

	workoutPlanCmd.AddCommand(planAddCmd)
	workoutPlanCmd.AddCommand(planListCmd)
	workoutPlanCmd.AddCommand(planShowCmd)
	workoutPlanCmd.AddCommand(planDeleteCmd)
	workoutPlanCmd.AddCommand(planToggleCmd)

	workoutCmd.AddCommand(workoutPlanCmd)
	workoutCmd.AddCommand(checkinCmd)
	workoutCmd.AddCommand(statsCmd)
	workoutCmd.AddCommand(todayCmd)
	workoutCmd.AddCommand(restCmd)
	rootCmd.AddCommand(workoutCmd)
}
