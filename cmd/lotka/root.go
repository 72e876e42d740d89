package main

import (
	"fmt"
	"os"

	"github.com/aretw0/lotka/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cfg is loaded before every command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "lotka",
	Short: "Lotka reads branching stories",
	Long: `Lotka presents a branching story scene by scene: read, pick a choice,
go back, or restart from the beginning.

The story comes from a JSON or YAML file, a directory of markdown scenes,
an http(s) URL or a redis://host/key. Settings are read from flags,
LOTKA_* environment variables and an optional lotka.yaml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		v, err := config.New(cfgFile)
		if err != nil {
			return err
		}
		if err := bindFlags(v, cmd); err != nil {
			return err
		}
		if len(args) > 0 && !cmd.Flags().Changed("story") {
			v.Set("story", args[0])
		}

		loaded, err := config.Load(v)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"story":       "story",
	"start":       "start",
	"debug":       "debug",
	"format":      "format",
	"addr":        "http.addr",
	"metrics":     "http.metrics",
	"session-ttl": "http.session_ttl",
	"transport":   "mcp.transport",
	"port":        "mcp.port",
}

// bindFlags binds the flags the command defines to their config keys.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("story", "s", "story.json", "Story source: file, directory, http(s) URL or redis://host/key")
	rootCmd.PersistentFlags().String("start", "start", "Start scene of directory stories")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./lotka.yaml or $XDG_CONFIG_HOME/lotka/lotka.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}
