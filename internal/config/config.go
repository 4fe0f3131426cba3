package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const ENV_PREFIX = "TXDECODER"

// Flag names, bound to viper keys via KebabToSnakeCase.
const (
	Debug             = "debug"
	ChainName         = "chain"
	TrackedAddresses  = "tracked-addresses"
	TransactionFile   = "transaction-file"
	ReceiptFile       = "receipt-file"
	OutputFile        = "output-file"
	PrometheusEnabled = "prometheus.enabled"
	PrometheusPort    = "prometheus.port"
)

type Chain string

const (
	Chain_Mainnet Chain = "ethereum"
	Chain_Holesky Chain = "holesky"
	Chain_Sepolia Chain = "sepolia"
)

func (c Chain) String() string {
	return string(c)
}

// ParseChain maps a chain name to a Chain, failing on unsupported names.
func ParseChain(name string) (Chain, error) {
	switch name {
	case "mainnet", "ethereum":
		return Chain_Mainnet, nil
	case "holesky":
		return Chain_Holesky, nil
	case "sepolia":
		return Chain_Sepolia, nil
	}
	return "", fmt.Errorf("unsupported chain %s", name)
}

type PrometheusConfig struct {
	Enabled bool
	Port    int
}

type Config struct {
	Debug            bool
	Chain            Chain
	TrackedAddresses []string
	TransactionFile  string
	ReceiptFile      string
	OutputFile       string
	PrometheusConfig PrometheusConfig
}

// KebabToSnakeCase converts a kebab-case flag name to the snake_case key
// viper uses for env binding.
func KebabToSnakeCase(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "-", "_"), ".", "_")
}

// NewConfig builds a Config from the currently bound viper values.
func NewConfig() *Config {
	chain, err := ParseChain(viper.GetString(KebabToSnakeCase(ChainName)))
	if err != nil {
		panic(err)
	}
	return &Config{
		Debug:            viper.GetBool(KebabToSnakeCase(Debug)),
		Chain:            chain,
		TrackedAddresses: parseStringAsList(viper.GetString(KebabToSnakeCase(TrackedAddresses))),
		TransactionFile:  viper.GetString(KebabToSnakeCase(TransactionFile)),
		ReceiptFile:      viper.GetString(KebabToSnakeCase(ReceiptFile)),
		OutputFile:       viper.GetString(KebabToSnakeCase(OutputFile)),
		PrometheusConfig: PrometheusConfig{
			Enabled: viper.GetBool(KebabToSnakeCase(PrometheusEnabled)),
			Port:    viper.GetInt(KebabToSnakeCase(PrometheusPort)),
		},
	}
}

func parseStringAsList(envVar string) []string {
	if envVar == "" {
		return []string{}
	}
	l := make([]string, 0)
	for _, s := range strings.Split(envVar, ",") {
		if s = strings.TrimSpace(s); s != "" {
			l = append(l, s)
		}
	}
	return l
}
