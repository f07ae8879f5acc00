// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{ //nolint:gochecknoglobals
	Use:   "go-accessibility-controls",
	Short: "Go Accessibility Controls serves a floating accessibility panel",
	Long: `Go Accessibility Controls serves a floating accessibility panel
that lets visitors adjust text size, font, spacing, contrast and alignment,
and remembers their choices in a cookie or in their user account.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
