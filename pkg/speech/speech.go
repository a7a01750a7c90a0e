package speech

import "context"

// LanguageAuto asks the recognizer to detect the spoken language
// instead of being told it.
const LanguageAuto = "auto"

// RecognitionResult is the standardized outcome of one recognition pass.
type RecognitionResult struct {
	Transcript string  `json:"transcript"`
	Language   string  `json:"language"` // full locale tag, e.g. "es-ES"
	Confidence float64 `json:"confidence"`
}

// Translation is one target-language rendering of a source text.
type Translation struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// SynthesisResult holds the raw playable audio for one synthesis call.
type SynthesisResult struct {
	Audio       []byte `json:"-"`
	ContentType string `json:"content_type"`
}

// Recognizer submits canonical-rate WAV audio to a speech-to-text
// provider. languageTag is passed through verbatim unless it is
// LanguageAuto, which triggers a secondary language-identification pass.
type Recognizer interface {
	Recognize(ctx context.Context, wav []byte, languageTag string) (*RecognitionResult, error)
}

// Translator requests one batched multi-target translation. The result
// list matches targetCodes in length and order.
type Translator interface {
	Translate(ctx context.Context, text string, targetCodes []string, sourceCode string) ([]Translation, error)
}

// Synthesizer converts text into spoken audio for a locale and voice.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice, locale string) (*SynthesisResult, error)
}
