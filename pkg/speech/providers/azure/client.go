package azure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/shanmugapriya39/globalytix-app/pkg/config"
	"github.com/shanmugapriya39/globalytix-app/pkg/metrics"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech"
	"github.com/shanmugapriya39/globalytix-app/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	sttEndpointFormat = "https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1"
	ttsEndpointFormat = "https://%s.tts.speech.microsoft.com/cognitiveservices/v1"
	translatorBaseURL = "https://api.cognitive.microsofttranslator.com"
)

// Client carries the REST plumbing shared by the Azure speech clients:
// credentials, the HTTP transport and provider call metrics.
type Client struct {
	cnf        *config.SpeechServices
	httpClient *http.Client
	m          *metrics.Metrics
	logger     *logrus.Entry

	sttBase        string
	ttsBase        string
	translatorBase string
}

func NewClient(cnf *config.AppConfig, m *metrics.Metrics, logger *logrus.Logger) (*Client, error) {
	if cnf.SpeechServices.SubscriptionKey == "" || cnf.SpeechServices.ServiceRegion == "" {
		return nil, fmt.Errorf("azure provider requires subscription_key and service_region")
	}

	c := &Client{
		cnf: &cnf.SpeechServices,
		// no deadline beyond the configured one; 0 keeps requests open
		// until the provider answers or ctx is cancelled
		httpClient:     &http.Client{Timeout: cnf.SpeechServices.ProviderTimeout},
		m:              m,
		logger:         logger.WithField("provider", "azure"),
		sttBase:        fmt.Sprintf(sttEndpointFormat, cnf.SpeechServices.ServiceRegion),
		ttsBase:        fmt.Sprintf(ttsEndpointFormat, cnf.SpeechServices.ServiceRegion),
		translatorBase: translatorBaseURL,
	}
	if cnf.SpeechServices.SttEndpoint != "" {
		c.sttBase = cnf.SpeechServices.SttEndpoint
	}
	if cnf.SpeechServices.TtsEndpoint != "" {
		c.ttsBase = cnf.SpeechServices.TtsEndpoint
	}
	if cnf.SpeechServices.TranslatorEndpoint != "" {
		c.translatorBase = cnf.SpeechServices.TranslatorEndpoint
	}
	return c, nil
}

// do runs one provider round trip and normalizes non-success responses
// into the shared error taxonomy.
func (c *Client) do(ctx context.Context, operation string, req *http.Request) (*http.Response, []byte, error) {
	started := time.Now()

	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		c.m.RecordProviderRequest(operation, "error", time.Since(started).Seconds())
		return nil, nil, fmt.Errorf("%s request: %w", operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.m.RecordProviderRequest(operation, "error", time.Since(started).Seconds())
		return nil, nil, fmt.Errorf("reading %s response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.m.RecordProviderRequest(operation, "error", time.Since(started).Seconds())
		return nil, nil, c.providerError(operation, resp.StatusCode, body)
	}

	c.m.RecordProviderRequest(operation, "success", time.Since(started).Seconds())
	return resp, body, nil
}

// providerError surfaces the provider's structured error message when
// present, else the raw body truncated for diagnostics.
func (c *Client) providerError(operation string, status int, body []byte) error {
	message := utils.TruncateString(string(body), config.MaxProviderErrorBody)

	var structured struct {
		Error struct {
			Code    any    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && structured.Error.Message != "" {
		message = utils.TruncateString(structured.Error.Message, config.MaxProviderErrorBody)
	}

	c.logger.Warnf("%s request rejected with status %d: %s", operation, status, message)
	return &speech.ProviderError{
		Operation: operation,
		Status:    status,
		Message:   message,
	}
}
