// ABOUTME: install-skill command writing the embedded SKILL.md for agents.
// ABOUTME: The summary it prints is built from the CLI commands and the skill's tool table.

package main

import (
	"bufio"
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/tui"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

const (
	skillFile       = "skill/SKILL.md"
	skillToolPrefix = "mcp__fittrack__"
)

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install the fittrack agent skill",
	Long: `Install SKILL.md into ~/.claude/skills/fittrack/ so an agent knows when
to log weight, read progress and check workouts in through fittrack.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return installSkill(cmd.Context(), cmd.OutOrStdout())
	},
}

// skillPath is where the skill file lives under home.
func skillPath(home string) string {
	return filepath.Join(home, ".claude", "skills", "fittrack", "SKILL.md")
}

// skillTools returns the MCP tool names listed in the skill's tool table,
// without the agent prefix.
func skillTools(content []byte) []string {
	var tools []string
	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "| `"+skillToolPrefix) {
			continue
		}
		name := strings.TrimPrefix(line, "| `"+skillToolPrefix)
		if i := strings.IndexByte(name, '`'); i > 0 {
			tools = append(tools, name[:i])
		}
	}
	return tools
}

// skillCommands lists the top-level commands an agent can drive.
func skillCommands() []*cobra.Command {
	var cmds []*cobra.Command
	for _, c := range rootCmd.Commands() {
		if c.Hidden || noSession[c.Name()] || !c.IsAvailableCommand() {
			continue
		}
		cmds = append(cmds, c)
	}
	return cmds
}

func writeSkillSummary(out io.Writer, path string, content []byte) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Fprintln(out, "fittrack agent skill")
	fmt.Fprintln(out, "\nCommands the agent will use:")
	for _, c := range skillCommands() {
		fmt.Fprintf(out, "  %s %s\n", padRight(c.Name(), 12), faint.Sprint(c.Short))
	}
	if tools := skillTools(content); len(tools) > 0 {
		fmt.Fprintf(out, "\nMCP tools (via 'fittrack mcp'): %s\n", strings.Join(tools, ", "))
	}
	fmt.Fprintf(out, "\nDestination: %s\n", path)
}

func installSkill(ctx context.Context, out io.Writer) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	path := skillPath(home)

	content, err := skillFS.ReadFile(skillFile)
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	writeSkillSummary(out, path, content)
	_, statErr := os.Stat(path)
	exists := statErr == nil
	if exists {
		color.New(color.FgYellow).Fprintln(out, "An existing skill file will be replaced.")
	}

	if !skillSkipConfirm {
		var confirmed bool
		form := tui.ConfirmForm("Install the fittrack skill?", path, "Install", &confirmed)
		if err := form.RunWithContext(ctx); err != nil {
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			fmt.Fprintln(out, "Nothing installed.")
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}
	// WriteFile keeps the mode of a file it overwrites.
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set skill file mode: %w", err)
	}

	verb := "Installed"
	if exists {
		verb = "Updated"
	}
	color.New(color.FgGreen).Fprintf(out, "✓ %s skill at %s\n", verb, path)
	return nil
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}
