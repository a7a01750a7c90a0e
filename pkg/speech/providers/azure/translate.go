package azure

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech"
)

// Translator requests batched multi-target translations from the Azure
// translator REST endpoint. It implements speech.Translator.
type Translator struct {
	client *Client
}

func NewTranslator(client *Client) *Translator {
	return &Translator{client: client}
}

type translateResponse struct {
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}

// Translate renders text into every target code with a single provider
// call. The result order matches targetCodes exactly.
func (t *Translator) Translate(ctx context.Context, text string, targetCodes []string, sourceCode string) ([]speech.Translation, error) {
	if len(targetCodes) == 0 {
		return nil, fmt.Errorf("no translation targets requested")
	}

	query := url.Values{}
	query.Set("api-version", "3.0")
	if sourceCode != "" {
		query.Set("from", sourceCode)
	}
	for _, code := range targetCodes {
		query.Add("to", code)
	}

	payload, err := json.Marshal([]textPayload{{Text: text}})
	if err != nil {
		return nil, fmt.Errorf("encoding translate payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, t.client.translatorBase+"/translate?"+query.Encode(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building translate request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", t.client.cnf.TranslatorKey)
	req.Header.Set("Ocp-Apim-Subscription-Region", t.client.cnf.ServiceRegion)
	req.Header.Set("Content-Type", "application/json")

	_, body, err := t.client.do(ctx, "translate", req)
	if err != nil {
		return nil, err
	}

	var parsed []translateResponse
	if err = json.Unmarshal(body, &parsed); err != nil {
		return nil, &speech.MalformedResponseError{Operation: "translate", Reason: "unparseable payload", Err: err}
	}
	if len(parsed) == 0 {
		return nil, &speech.MalformedResponseError{Operation: "translate", Reason: "empty translation list"}
	}
	if len(parsed[0].Translations) != len(targetCodes) {
		return nil, &speech.MalformedResponseError{
			Operation: "translate",
			Reason:    fmt.Sprintf("expected %d translations, got %d", len(targetCodes), len(parsed[0].Translations)),
		}
	}

	// the provider answers in request order; keep the caller's codes so
	// the pairing is exact
	results := make([]speech.Translation, len(targetCodes))
	for i, tr := range parsed[0].Translations {
		results[i] = speech.Translation{Code: targetCodes[i], Text: tr.Text}
	}
	return results, nil
}
