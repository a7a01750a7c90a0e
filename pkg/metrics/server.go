package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shanmugapriya39/globalytix-app/pkg/config"
	"github.com/sirupsen/logrus"
)

// Server exposes the metrics registry over HTTP for scraping.
type Server struct {
	server *http.Server
	logger *logrus.Entry
}

// NewServer creates a scrape endpoint for the given gatherer. It does not
// start listening until Start is called.
func NewServer(cfg config.MetricsSettings, gatherer prometheus.Gatherer, logger *logrus.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger.WithField("service", "metrics"),
	}
}

// Start begins serving in the background.
func (s *Server) Start() {
	s.logger.Infof("metrics endpoint listening on %s", s.server.Addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Errorln("metrics server error")
		}
	}()
}

// Shutdown gracefully stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
