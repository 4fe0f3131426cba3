package prometheus

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type PrometheusServerConfig struct {
	Port int
}

// PrometheusServer exposes the default registry on /metrics.
type PrometheusServer struct {
	logger *zap.Logger
	config *PrometheusServerConfig
	server *http.Server
}

func NewPrometheusServer(config *PrometheusServerConfig, l *zap.Logger) *PrometheusServer {
	return &PrometheusServer{
		logger: l,
		config: config,
	}
}

// Start serves metrics in the background until a value arrives on quit.
func (ps *PrometheusServer) Start(quit chan bool) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	ps.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", ps.config.Port),
		Handler: mux,
	}

	go func() {
		ps.logger.Sugar().Infow("Starting prometheus server", zap.Int("port", ps.config.Port))
		if err := ps.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ps.logger.Sugar().Errorw("Prometheus server failed", zap.Error(err))
		}
	}()

	go func() {
		<-quit
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ps.server.Shutdown(ctx); err != nil {
			ps.logger.Sugar().Warnw("Prometheus server shutdown failed", zap.Error(err))
		}
	}()

	return nil
}
