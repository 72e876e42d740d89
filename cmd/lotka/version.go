package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/lotka"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lotka",
	// No story is needed to print the version.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lotka version %s\n", strings.TrimSpace(lotka.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
