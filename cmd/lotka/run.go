package main

import (
	"github.com/aretw0/lotka/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [story]",
	Short: "Read a story in the terminal",
	Long: `Starts a reading session. On a terminal the full-screen reader is used;
with --plain, --headless or piped input the line runner reads commands
(a choice number, b, r, q) from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		jsonMode, _ := cmd.Flags().GetBool("json")
		plain, _ := cmd.Flags().GetBool("plain")

		return cli.RunSession(cli.RunOptions{
			Config:   cfg,
			Headless: headless,
			JSON:     jsonMode,
			Plain:    plain,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run without banner, hints or full-screen reader")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (one view per line)")
	runCmd.Flags().Bool("plain", false, "Use the line runner even on a terminal")
	runCmd.Flags().String("format", "text", "Line runner output format: text or json")

	rootCmd.Args = cobra.MaximumNArgs(1)
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
