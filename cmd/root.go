// Package cmd provides CLI commands for bibparsley.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "bibparsley",
	Short: "Normalize and enrich BibTeX bibliographies",
	Long: `Bibparsley is a CLI tool for maintaining BibTeX bibliographies.

It normalizes author and editor names to abbreviated form, collapses
page ranges, strips unwanted fields, and resolves missing DOIs against
the CrossRef REST API.

Examples:
  bibparsley clean thesis            # thesis.bib -> thesis_updated.bib
  bibparsley clean thesis --skip-doi
  bibparsley check -i refs.bib
  bibparsley rules show`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	setupLogger()
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(rulesCmd)
}
