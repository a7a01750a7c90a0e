package providers

import (
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shanmugapriya39/globalytix-app/pkg/config"
	"github.com/shanmugapriya39/globalytix-app/pkg/metrics"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech/providers/azure"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech/providers/offline"
	"github.com/sirupsen/logrus"
)

func newSuiteTestDeps(t *testing.T, speechServices config.SpeechServices) (*config.AppConfig, *metrics.Metrics, *logrus.Logger) {
	t.Helper()

	cnf, err := config.New(&config.AppConfig{SpeechServices: speechServices})
	if err != nil {
		t.Fatal(err)
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return cnf, metrics.NewMetrics(prometheus.NewRegistry()), logger
}

func TestNewSuiteAzure(t *testing.T) {
	cnf, m, logger := newSuiteTestDeps(t, config.SpeechServices{
		SubscriptionKey: "key",
		ServiceRegion:   "westus",
		TranslatorKey:   "translator-key",
	})

	suite, err := NewSuite(cnf, m, logger)
	if err != nil {
		t.Fatalf("NewSuite() error = %v", err)
	}

	if _, ok := suite.Recognizer.(*azure.Recognizer); !ok {
		t.Errorf("Recognizer is %T, want *azure.Recognizer", suite.Recognizer)
	}
	if _, ok := suite.Translator.(*azure.Translator); !ok {
		t.Errorf("Translator is %T, want *azure.Translator", suite.Translator)
	}
	if _, ok := suite.Synthesizer.(*azure.Synthesizer); !ok {
		t.Errorf("Synthesizer is %T, want *azure.Synthesizer", suite.Synthesizer)
	}
}

func TestNewSuiteOfflineTranslatorFallback(t *testing.T) {
	cnf, m, logger := newSuiteTestDeps(t, config.SpeechServices{
		SubscriptionKey: "key",
		ServiceRegion:   "westus",
	})

	suite, err := NewSuite(cnf, m, logger)
	if err != nil {
		t.Fatalf("NewSuite() error = %v", err)
	}
	if _, ok := suite.Translator.(*offline.Translator); !ok {
		t.Errorf("Translator is %T, want the offline fallback without a translator credential", suite.Translator)
	}
}

func TestNewSuiteUnknownProvider(t *testing.T) {
	cnf, m, logger := newSuiteTestDeps(t, config.SpeechServices{
		Provider:        "clockwork",
		SubscriptionKey: "key",
		ServiceRegion:   "westus",
	})

	if _, err := NewSuite(cnf, m, logger); err == nil {
		t.Error("NewSuite() with an unknown provider expected an error")
	}
}
