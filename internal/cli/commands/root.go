// Package commands wires the styler CLI.
package commands

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Polkas/styler/serrors"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "styler",
		Short: "Non-invasive pretty-printing of R source code",
		Long: color.CyanString(`styler - format R code to a consistent style

styler rewrites whitespace, line breaks, indentation and a small set of
tokens so your R sources follow the tidyverse style guide, without ever
changing what the code does.

Features:
  • Four invasiveness levels: spaces, indention, line_breaks, tokens
  • styler: off / styler: on markers to protect hand-crafted regions
  • Expression-level cache so already-styled code is skipped
  • Round-trip validation against the parsed syntax tree`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewStyleCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewCacheCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Print("styler version: ")
			valueColor.Println(Version)

			titleColor.Print("Git commit: ")
			valueColor.Println(GitCommit)

			titleColor.Print("Build date: ")
			valueColor.Println(BuildDate)

			titleColor.Print("Go version: ")
			valueColor.Println(goVer)
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		var styleErr *serrors.StyleError
		if errors.As(err, &styleErr) {
			fmt.Fprintln(rootCmd.ErrOrStderr(), styleErr.Render())
		} else {
			errorColor := color.New(color.FgRed, color.Bold)
			errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return err
	}
	return nil
}
