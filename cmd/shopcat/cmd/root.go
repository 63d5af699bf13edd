// Package cmd implements the shopcat CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "shopcat",
		Short: "Export storefront product catalogs over MCP",
		Long: "shopcat downloads a store's full product catalog through its\n" +
			"MCP endpoint (https://<store>/api/mcp) and writes it out as a\n" +
			"JSON file. Run it once with 'fetch' or keep it exporting on a\n" +
			"schedule with 'serve'.",
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "config.yaml", "config file path (serve mode)")
	rootCmd.PersistentFlags().
		String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().
		String("log-format", "text", "log format (text, json)")

	cobra.CheckErr(viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format")))

	viper.SetEnvPrefix("SHOPCAT")
	viper.AutomaticEnv()

	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCommand())
}
