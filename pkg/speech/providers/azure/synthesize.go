package azure

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/shanmugapriya39/globalytix-app/pkg/speech"
)

const defaultAudioContentType = "audio/mpeg"

var ssmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Synthesizer requests spoken audio from the Azure text-to-speech REST
// endpoint. It implements speech.Synthesizer.
type Synthesizer struct {
	client       *Client
	outputFormat string
}

func NewSynthesizer(client *Client, outputFormat string) *Synthesizer {
	return &Synthesizer{
		client:       client,
		outputFormat: outputFormat,
	}
}

// Synthesize embeds text in a speech-markup envelope and returns the
// provider's raw audio. Text that cannot form well-formed markup is
// rejected before any network call.
func (s *Synthesizer) Synthesize(ctx context.Context, text, voice, locale string) (*speech.SynthesisResult, error) {
	doc, err := buildSSML(text, voice, locale)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, s.client.ttsBase, strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("building synthesize request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", s.client.cnf.SubscriptionKey)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", s.outputFormat)

	resp, body, err := s.client.do(ctx, "synthesize", req)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, &speech.MalformedResponseError{Operation: "synthesize", Reason: "empty audio payload"}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultAudioContentType
	}

	return &speech.SynthesisResult{
		Audio:       body,
		ContentType: contentType,
	}, nil
}

// buildSSML escapes markup-significant characters and wraps the text in
// the synthesis envelope.
func buildSSML(text, voice, locale string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("synthesis text is empty")
	}
	if voice == "" || locale == "" {
		return "", fmt.Errorf("synthesis requires both voice and locale")
	}
	for _, r := range text {
		// control runes are illegal in the markup document
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return "", fmt.Errorf("synthesis text contains control character %q", r)
		}
	}

	return fmt.Sprintf(
		"<speak version='1.0' xml:lang='%s'><voice xml:lang='%s' name='%s'>%s</voice></speak>",
		locale, locale, voice, ssmlEscaper.Replace(text),
	), nil
}
