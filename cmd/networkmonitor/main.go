// Command networkmonitor runs the live transport-network monitor as a
// long-lived process: it connects to the configured STOMP server, tracks
// passenger occupancy, and serves Prometheus metrics and a health check
// alongside it.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/nofeaturesonlybugs/network-monitor/internal/config"
	"github.com/nofeaturesonlybugs/network-monitor/monitor"
)

// zerologAdapter lets the stomp and monitor packages log through zerolog
// without importing it themselves.
type zerologAdapter struct {
	logger zerolog.Logger
}

func (z zerologAdapter) Infof(format string, args ...interface{}) {
	z.logger.Info().Msgf(format, args...)
}

var (
	connectedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "networkmonitor_connected",
		Help: "1 if the STOMP client currently has an active connection, 0 otherwise.",
	})
	subscribedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "networkmonitor_subscribed",
		Help: "1 if the passenger-event subscription is currently acknowledged, 0 otherwise.",
	})
	lastErrorGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "networkmonitor_last_error_code",
		Help: "The monitor's last recorded error code; 0 is Ok.",
	})
	passengerCountGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "networkmonitor_station_passenger_count",
		Help: "Current passenger count per station.",
	}, []string{"station_id"})
)

func init() {
	prometheus.MustRegister(connectedGauge, subscribedGauge, lastErrorGauge, passengerCountGauge)
}

func main() {
	os.Exit(run())
}

func run() int {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error().Err(err).Msg("could not load configuration")
		return 1
	}

	m := monitor.New(zerologAdapter{logger: logger})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := m.Configure(ctx, monitor.Config{
		ServerURL:         cfg.ServerURL,
		ServerPort:        cfg.ServerPort,
		Username:          cfg.Username,
		Password:          cfg.Password,
		CACertFile:        cfg.CACertFile,
		NetworkLayoutFile: cfg.NetworkLayoutFile,
	}); err != nil {
		logger.Error().Err(err).Msg("could not configure monitor")
		return int(m.GetLastErrorCode())
	}

	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: newRouter()}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server stopped")
		}
	}()
	defer metricsServer.Shutdown(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		m.Stop()
	}()

	stopSampling := sampleMetrics(m)
	defer stopSampling()

	if err := m.Run(ctx, 0); err != nil {
		logger.Error().Err(err).Msg("monitor run failed")
	}

	return int(m.GetLastErrorCode())
}

func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// sampleMetrics periodically copies the monitor's observable state onto
// the Prometheus gauges. It returns a function that stops the sampling.
func sampleMetrics(m *monitor.Monitor) func() {
	ticker := time.NewTicker(time.Second)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				boolToGauge(connectedGauge, m.IsConnected())
				boolToGauge(subscribedGauge, m.IsSubscribed())
				lastErrorGauge.Set(float64(m.GetLastErrorCode()))
				if net := m.GetNetworkRepresentation(); net != nil {
					for _, s := range net.Stations() {
						passengerCountGauge.WithLabelValues(s.ID).Set(float64(s.PassengerCount))
					}
				}
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}

func boolToGauge(g prometheus.Gauge, v bool) {
	if v {
		g.Set(1)
		return
	}
	g.Set(0)
}
