package factory

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shanmugapriya39/globalytix-app/pkg/audio"
	"github.com/shanmugapriya39/globalytix-app/pkg/config"
	"github.com/shanmugapriya39/globalytix-app/pkg/metrics"
	"github.com/shanmugapriya39/globalytix-app/pkg/models"
	synthesisservice "github.com/shanmugapriya39/globalytix-app/pkg/services/synthesis"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech/providers"
	"github.com/sirupsen/logrus"
)

// Application is the root struct holding all dependencies.
type Application struct {
	AppConfig     *config.AppConfig
	Ctx           context.Context
	Session       *models.SessionModel
	Dispatcher    *synthesisservice.Dispatcher
	Metrics       *metrics.Metrics
	Registry      *prometheus.Registry
	MetricsServer *metrics.Server
	AudioContext  audio.Context
}

func (a *Application) Boot() {
	if a.AppConfig.Metrics.Enable {
		a.MetricsServer.Start()
	}
}

func (a *Application) Shutdown() {
	// drain queued synthesis work before releasing the audio backend
	a.Dispatcher.Stop()
	a.AudioContext.Close()

	if a.AppConfig.Metrics.Enable {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.MetricsServer.Shutdown(ctx)
	}
}

func provideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func provideMetrics(registry *prometheus.Registry) *metrics.Metrics {
	return metrics.NewMetrics(registry)
}

func provideMetricsServer(appConfig *config.AppConfig, registry *prometheus.Registry, logger *logrus.Logger) *metrics.Server {
	return metrics.NewServer(appConfig.Metrics, registry, logger)
}

func provideAudioContext(appConfig *config.AppConfig) (audio.Context, error) {
	if appConfig.Capture.Backend == config.FakeCaptureBackend {
		fakeCtx, err := audio.NewFakeContext(appConfig.Capture.FakeWavFile)
		if err != nil {
			return nil, err
		}
		return fakeCtx, nil
	}
	return audio.NewContext()
}

func provideSynthesizer(suite *providers.Suite) speech.Synthesizer {
	return suite.Synthesizer
}
