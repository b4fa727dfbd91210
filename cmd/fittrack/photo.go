// ABOUTME: CLI commands for progress photos attached to records.
// ABOUTME: put stores an image file on a day's record; get writes it back out.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/models"
	"github.com/spf13/cobra"
)

var photoOutput string

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Manage progress photos",
	Long: `Store and retrieve progress photos. Each record has a front and a side
slot; storing a photo in a filled slot replaces it.`,
}

var photoPutCmd = &cobra.Command{
	Use:   "put <front|side> <date> <file>",
	Short: "Attach a photo to a day's record",
	Long: `Attach an image file to the record for a date. The record must exist.

Examples:
  fittrack photo put front today front.jpg
  fittrack photo put side 2024-03-02 side.png`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		pt, err := parsePhotoType(args[0])
		if err != nil {
			return err
		}
		date, err := parseDay(args[1])
		if err != nil {
			return fmt.Errorf("invalid date: %s", args[1])
		}
		data, err := os.ReadFile(args[2])
		if err != nil {
			return fmt.Errorf("failed to read photo: %w", err)
		}

		r, err := session.AttachPhoto(cmd.Context(), pt, date, data)
		if err != nil {
			return fmt.Errorf("failed to store photo: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Stored %s photo for %s\n", pt, r.DateString())
		return nil
	},
}

var photoGetCmd = &cobra.Command{
	Use:   "get <front|side> <date>",
	Short: "Write a stored photo to a file or stdout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pt, err := parsePhotoType(args[0])
		if err != nil {
			return err
		}
		date, err := parseDay(args[1])
		if err != nil {
			return fmt.Errorf("invalid date: %s", args[1])
		}

		data, err := session.Photo(cmd.Context(), pt, date)
		if err != nil {
			return fmt.Errorf("failed to get photo: %w", err)
		}

		if photoOutput == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(photoOutput, data, 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", photoOutput)
		return nil
	},
}

func parsePhotoType(s string) (models.PhotoType, error) {
	if !models.IsValidPhotoType(s) {
		return "", fmt.Errorf("unknown photo slot: %s (use front or side)", s)
	}
	return models.PhotoType(s), nil
}

func init() {
	photoGetCmd.Flags().StringVarP(&photoOutput, "output", "o", "", "output file (default: stdout)")

	photoCmd.AddCommand(photoPutCmd)
	photoCmd.AddCommand(photoGetCmd)
	rootCmd.AddCommand(photoCmd)
}
