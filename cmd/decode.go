package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ledgerscope/txdecoder/internal/config"
	"github.com/ledgerscope/txdecoder/internal/logger"
	"github.com/ledgerscope/txdecoder/internal/version"
	"github.com/ledgerscope/txdecoder/pkg/assets"
	"github.com/ledgerscope/txdecoder/pkg/eventBus"
	"github.com/ledgerscope/txdecoder/pkg/eventBus/eventBusTypes"
	"github.com/ledgerscope/txdecoder/pkg/historyDecoder"
	"github.com/ledgerscope/txdecoder/pkg/historyDecoder/modules/illuvium"
	"github.com/ledgerscope/txdecoder/pkg/historyDecoder/modules/tokenTransfers"
	"github.com/ledgerscope/txdecoder/pkg/metrics/metricsTypes"
	"github.com/ledgerscope/txdecoder/pkg/metrics/prometheus"
	"github.com/ledgerscope/txdecoder/pkg/storage"
	"github.com/ledgerscope/txdecoder/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode one transaction and its receipt into accounting events",
	Run: func(cmd *cobra.Command, args []string) {
		initDecodeCmd(cmd)
		cfg := config.NewConfig()

		if len(cfg.TransactionFile) == 0 {
			log.Fatalf("--%s is required", config.TransactionFile)
		}
		if len(cfg.ReceiptFile) == 0 {
			log.Fatalf("--%s is required", config.ReceiptFile)
		}

		l, _ := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})

		l.Sugar().Infow("txdecoder decode",
			zap.String("version", version.GetVersion()),
			zap.String("commit", version.GetCommit()),
			zap.String("chain", cfg.Chain.String()),
		)

		eb := eventBus.NewEventBus(l)

		var metricsSink metricsTypes.IMetricsClient
		promChan := make(chan bool)
		if cfg.PrometheusConfig.Enabled {
			client, err := prometheus.NewPrometheusMetricsClient(&prometheus.PrometheusMetricsConfig{
				Metrics: metricsTypes.MetricTypes,
			}, l)
			if err != nil {
				l.Sugar().Fatalw("Failed to setup metrics client", zap.Error(err))
			}
			metricsSink = client

			pServer := prometheus.NewPrometheusServer(&prometheus.PrometheusServerConfig{
				Port: cfg.PrometheusConfig.Port,
			}, l)
			if err := pServer.Start(promChan); err != nil {
				l.Sugar().Fatalw("Failed to start prometheus server", zap.Error(err))
			}
		}

		tracked := utils.Map(cfg.TrackedAddresses, func(address string, i uint64) common.Address {
			return common.HexToAddress(address)
		})
		scanner := historyDecoder.NewStaticAccountScanner(tracked)
		store := assets.NewStaticTokenStore(assets.NativeEth, illuvium.Tokens()...)
		base := historyDecoder.NewBaseDecoderTools(l, store, scanner)

		registry := historyDecoder.NewRegistry(l)
		modules := []historyDecoder.DecoderModule{
			tokenTransfers.NewTokenTransfersModule(base, l),
			illuvium.NewIlluviumModule(base, l),
		}
		for _, module := range modules {
			if err := registry.Register(module); err != nil {
				l.Sugar().Fatalw("Failed to register decoder module",
					zap.String("module", module.Name()),
					zap.Error(err),
				)
			}
		}

		decoder := historyDecoder.NewTransactionDecoder(l, registry, base, metricsSink)

		tx, err := storage.ReadTransactionFile(cfg.TransactionFile)
		if err != nil {
			l.Sugar().Fatalw("Failed to load transaction", zap.Error(err))
		}
		receipt, err := storage.ReadReceiptFile(cfg.ReceiptFile)
		if err != nil {
			l.Sugar().Fatalw("Failed to load receipt", zap.Error(err))
		}

		events, err := decoder.DecodeTransaction(tx, receipt)
		if err != nil {
			l.Sugar().Fatalw("Failed to decode transaction",
				zap.String("transactionHash", tx.Hash.String()),
				zap.Error(err),
			)
		}

		eb.Publish(&eventBusTypes.Event{
			Name: eventBusTypes.Event_TransactionDecoded,
			Data: &eventBusTypes.TransactionDecodedData{
				Transaction: tx,
				Receipt:     receipt,
				Events:      events,
			},
		})

		if len(cfg.OutputFile) > 0 {
			sink := storage.NewJsonlEventSink(cfg.OutputFile)
			if err := sink.PutEventBatch(events); err != nil {
				l.Sugar().Fatalw("Failed to write events", zap.Error(err))
			}
		} else {
			encoder := json.NewEncoder(os.Stdout)
			for _, event := range events {
				if err := encoder.Encode(event); err != nil {
					l.Sugar().Fatalw("Failed to write events", zap.Error(err))
				}
			}
		}

		l.Sugar().Infow("Decoded transaction",
			zap.String("transactionHash", tx.Hash.String()),
			zap.Int("events", len(events)),
		)
		if cfg.PrometheusConfig.Enabled {
			promChan <- true
		}
	},
}

func initDecodeCmd(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := viper.BindPFlag(config.KebabToSnakeCase(f.Name), f); err != nil {
			fmt.Printf("Failed to bind flag '%s' - %+v\n", f.Name, err)
		}
		if err := viper.BindEnv(f.Name); err != nil {
			fmt.Printf("Failed to bind env '%s' - %+v\n", f.Name, err)
		}
	})
}
