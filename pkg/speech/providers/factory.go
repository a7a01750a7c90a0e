package providers

import (
	"fmt"

	"github.com/shanmugapriya39/globalytix-app/pkg/config"
	"github.com/shanmugapriya39/globalytix-app/pkg/metrics"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech/providers/azure"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech/providers/offline"
	"github.com/sirupsen/logrus"
)

// Suite bundles the provider clients one pipeline needs.
type Suite struct {
	Recognizer  speech.Recognizer
	Translator  speech.Translator
	Synthesizer speech.Synthesizer
}

// NewSuite is a factory that builds the configured provider clients.
// Translation falls back to the deterministic offline transform when no
// translator credential is configured, keeping the pipeline usable
// without one.
func NewSuite(cnf *config.AppConfig, m *metrics.Metrics, logger *logrus.Logger) (*Suite, error) {
	switch cnf.SpeechServices.Provider {
	case config.ProviderAzure:
		client, err := azure.NewClient(cnf, m, logger)
		if err != nil {
			return nil, err
		}

		suite := &Suite{
			Recognizer:  azure.NewRecognizer(client),
			Synthesizer: azure.NewSynthesizer(client, cnf.Synthesis.OutputFormat),
		}
		if cnf.SpeechServices.TranslatorKey != "" {
			suite.Translator = azure.NewTranslator(client)
		} else {
			logger.Warnln("no translator credential configured, translations will use the offline transform")
			suite.Translator = offline.NewTranslator(logger)
		}
		return suite, nil
	default:
		return nil, fmt.Errorf("unknown speech provider type: %s", cnf.SpeechServices.Provider)
	}
}
