// ABOUTME: CLI commands for the dashboard, insights and weight chart.
// ABOUTME: Rendering is done by internal/tui in the configured theme.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/metrics"
	"github.com/harperreed/fittrack/internal/tui"
	"github.com/spf13/cobra"
)

var (
	viewWidth   int
	chartDays   int
	chartSince  string
	chartHeight int
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "d"},
	Short:   "Show progress toward the goal",
	Long: `Show the dashboard: current weight, total lost, logging streak, the weekly
goal, the projection toward the target (after 14 records), insights, a
sparkline of recent weights and today's workout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := session.Dashboard(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to build dashboard: %w", err)
		}

		st := tui.StylesFor(d.Settings.Theme)
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderDashboard(d, st, viewWidth))
		return nil
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show patterns in sleep, water and weekdays",
	Long: `Show heuristic insights comparing weight loss on days with more or less
sleep and water, and by weekday. Insights appear once there are enough
records; until then a reminder to keep logging is shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		insights, err := session.Insights(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to compute insights: %w", err)
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		for _, in := range insights {
			fmt.Fprintf(out, "%s\n  %s\n", bold.Sprint(in.Title), in.Text)
		}
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Chart weight against the target",
	Long: `Draw a bar chart of recent weights with the target weight in the legend.
Bars at or under the target are highlighted.

EXAMPLES:

  fittrack chart               # Last 30 records
  fittrack chart --days 90
  fittrack chart --since 2024-01-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		settings, err := session.Settings(ctx)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		var series metrics.Series
		if chartSince != "" {
			since, err := parseDay(chartSince)
			if err != nil {
				return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", chartSince)
			}
			records, err := session.Records(ctx)
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}
			series = metrics.ChartSeriesSince(records, settings, since)
		} else {
			series, err = session.Chart(ctx, chartDays)
			if err != nil {
				return fmt.Errorf("failed to build chart: %w", err)
			}
		}

		st := tui.StylesFor(settings.Theme)
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderChart(series, st, viewWidth, chartHeight))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{dashboardCmd, chartCmd} {
		c.Flags().IntVarP(&viewWidth, "width", "w", 72, "width in columns")
	}
	chartCmd.Flags().IntVarP(&chartDays, "days", "n", 30, "number of most recent records")
	chartCmd.Flags().StringVar(&chartSince, "since", "", "chart records on or after this date (YYYY-MM-DD)")
	chartCmd.Flags().IntVar(&chartHeight, "height", 12, "height in rows")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(chartCmd)
}
