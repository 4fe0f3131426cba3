package cmd

import (
	"os"
	"strings"

	"github.com/ledgerscope/txdecoder/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "txdecoder",
	Short: "Decodes Ethereum transaction receipts into typed accounting events",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	initConfig(rootCmd)

	rootCmd.PersistentFlags().Bool(config.Debug, false, `"true" or "false"`)
	rootCmd.PersistentFlags().StringP(config.ChainName, "c", "mainnet", "The chain to use (mainnet, holesky, sepolia)")
	rootCmd.PersistentFlags().String(config.TrackedAddresses, "", `Comma-separated list of addresses whose activity is accounted for`)

	rootCmd.PersistentFlags().Bool(config.PrometheusEnabled, false, `e.g. "true" or "false"`)
	rootCmd.PersistentFlags().Int(config.PrometheusPort, 2112, `The port to run the prometheus server on`)

	// setup sub commands
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(runVersionCmd)

	// bind any subcommand flags
	decodeCmd.PersistentFlags().String(config.TransactionFile, "", `Path to the transaction JSON file (required)`)
	decodeCmd.PersistentFlags().String(config.ReceiptFile, "", `Path to the transaction receipt JSON file (required)`)
	decodeCmd.PersistentFlags().String(config.OutputFile, "", `Path to write decoded events to as JSONL (default stdout)`)

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		key := config.KebabToSnakeCase(f.Name)
		viper.BindPFlag(key, f) //nolint:errcheck
		viper.BindEnv(key)      //nolint:errcheck
	})
}

func initConfig(cmd *cobra.Command) {
	viper.SetEnvPrefix(config.ENV_PREFIX)

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.AutomaticEnv()
}
