package main

import (
	"os"

	"github.com/aretw0/lotka/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [story]",
	Short: "Export the story graph visualization",
	Long:  `Loads the story and outputs a Mermaid diagram (graph TD) of its scenes and choices.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Graph(cmd.Context(), cfg, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
