// ABOUTME: Status command reporting where data lives and how much is stored.
// ABOUTME: Also shows the schema versions and photo cache counters.
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/app"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show data location, versions and counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := session.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read status: %w", err)
		}
		writeStatus(cmd.OutOrStdout(), st)
		return nil
	},
}

func writeStatus(out io.Writer, st *app.Status) {
	fmt.Fprintf(out, "Data dir:  %s\n", st.DataDir)
	fmt.Fprintf(out, "Database:  %s\n", st.DBPath)
	fmt.Fprintf(out, "Version:   %s %s\n", st.DataVersion,
		color.New(color.Faint).Sprintf("(schema %d)", st.SchemaVersion))
	fmt.Fprintf(out, "Records:   %d\n", st.Records)
	fmt.Fprintf(out, "Photos:    %d\n", st.Photos)
	fmt.Fprintf(out, "Plans:     %d\n", st.Plans)
	fmt.Fprintf(out, "Check-ins: %d\n", st.CheckIns)
	if st.CacheHits+st.CacheMisses > 0 {
		fmt.Fprintf(out, "Cache:     %d hits, %d misses\n", st.CacheHits, st.CacheMisses)
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
