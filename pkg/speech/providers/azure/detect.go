package azure

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech"
)

type textPayload struct {
	Text string `json:"Text"`
}

// detectLanguage runs the translator's language-identification pass on
// a transcript and returns the detected short code, e.g. "es".
func (r *Recognizer) detectLanguage(ctx context.Context, transcript string) (string, error) {
	payload, err := json.Marshal([]textPayload{{Text: transcript}})
	if err != nil {
		return "", fmt.Errorf("encoding detect payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, r.client.translatorBase+"/detect?api-version=3.0", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building detect request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", r.client.cnf.TranslatorKey)
	req.Header.Set("Ocp-Apim-Subscription-Region", r.client.cnf.ServiceRegion)
	req.Header.Set("Content-Type", "application/json")

	_, body, err := r.client.do(ctx, "detect", req)
	if err != nil {
		return "", err
	}

	var parsed []struct {
		Language string  `json:"language"`
		Score    float64 `json:"score"`
	}
	if err = json.Unmarshal(body, &parsed); err != nil {
		return "", &speech.MalformedResponseError{Operation: "detect", Reason: "unparseable payload", Err: err}
	}
	if len(parsed) == 0 || parsed[0].Language == "" {
		return "", &speech.MalformedResponseError{Operation: "detect", Reason: "no detected language in payload"}
	}

	return parsed[0].Language, nil
}
