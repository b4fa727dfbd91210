// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"github.com/harperreed/fittrack/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to log and read your fittrack data
through a standardized protocol. The server communicates via stdin/stdout,
so logs always go to the log file or stderr.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "fittrack": {
        "command": "fittrack",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  log_record          Log or replace a day's weight and measurements
  list_records        List records newest first with change
  delete_record       Delete a day's record
  get_dashboard       Progress, streak, weekly goal, projection, chart
  get_insights        Sleep, water and weekday insights
  update_settings     Change goal, deadline, reminder or theme
  add_workout_plan    Create a weekly workout plan
  list_workout_plans  List plans with exercises
  check_in            Check a plan in as done or skipped
  get_workout_stats   Workout totals, streak and adherence

AVAILABLE RESOURCES:

  fittrack://dashboard   Dashboard snapshot
  fittrack://today       Today's record and workout
  fittrack://history     All records newest first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(session)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
