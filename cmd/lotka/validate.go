package main

import (
	"fmt"
	"os"

	"github.com/aretw0/lotka/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [story]",
	Short: "Check the story for consistency",
	Long:  `Crawls the story from its start scene and reports choices to missing scenes, choices without a target and unreachable scenes.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")
		if err := cli.Validate(cmd.Context(), cfg, strict, os.Stdout); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Println("Story is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat warnings as errors")
}
