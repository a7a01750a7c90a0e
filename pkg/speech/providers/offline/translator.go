package offline

import (
	"context"
	"fmt"

	"github.com/shanmugapriya39/globalytix-app/pkg/speech"
	"github.com/sirupsen/logrus"
)

// Translator is a deterministic stand-in used when no translation
// credential is configured. It keeps the rest of the pipeline testable
// offline by returning a marked transform of the input.
type Translator struct {
	logger *logrus.Entry
}

func NewTranslator(logger *logrus.Logger) *Translator {
	return &Translator{
		logger: logger.WithField("provider", "offline"),
	}
}

// Translate returns one deterministic rendering per target, order
// preserved.
func (t *Translator) Translate(_ context.Context, text string, targetCodes []string, _ string) ([]speech.Translation, error) {
	if len(targetCodes) == 0 {
		return nil, fmt.Errorf("no translation targets requested")
	}

	results := make([]speech.Translation, len(targetCodes))
	for i, code := range targetCodes {
		results[i] = speech.Translation{
			Code: code,
			Text: fmt.Sprintf("(%s) %s", code, text),
		}
	}

	t.logger.Debugf("served %d targets without a provider credential", len(targetCodes))
	return results, nil
}
