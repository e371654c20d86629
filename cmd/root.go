package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"struct-sync/internal/report"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "struct-sync",
	Short: "Compare PostgreSQL structure dumps",
	Long: `
 ___ _____ ___ _   _  ___ _____   _____   ___  _  ___
/ __|_   _| _ \ | | |/ __|_   _| / __\ \ / / \| |/ __|
\__ \ | | |   / |_| | (__  | |   \__ \\ V /| .  | (__
|___/ |_| |_|_\\___/ \___| |_|   |___/ |_| |_|\_|\___|

STRUCT SYNC - structure-only dump parser & schema diff
`,
	SilenceUsage: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./struct-sync.yaml)")
	RootCmd.PersistentFlags().Bool("color", true, "Color tree output and highlight DDL")
	RootCmd.PersistentFlags().Bool("only-changes", false, "Hide objects that match the target")

	viper.BindPFlag("settings.color", RootCmd.PersistentFlags().Lookup("color"))
	viper.BindPFlag("settings.only_changes", RootCmd.PersistentFlags().Lookup("only-changes"))

	viper.SetDefault("settings.pg_dump", "pg_dump")
	viper.SetDefault("settings.color", true)
	viper.SetDefault("settings.only_changes", false)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("struct-sync")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// Reports may go to stdout, so the notice goes to stderr.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// treeOptions collects rendering settings from flags and config.
func treeOptions(showStatus bool) report.Options {
	return report.Options{
		Color:       viper.GetBool("settings.color"),
		OnlyChanges: viper.GetBool("settings.only_changes"),
		ShowStatus:  showStatus,
	}
}

// highlighter returns nil when color is off.
func highlighter() *report.Highlighter {
	if !viper.GetBool("settings.color") {
		return nil
	}
	return report.NewHighlighter()
}
