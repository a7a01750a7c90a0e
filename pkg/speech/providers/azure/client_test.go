package azure

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shanmugapriya39/globalytix-app/pkg/config"
	"github.com/shanmugapriya39/globalytix-app/pkg/metrics"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech"
	"github.com/sirupsen/logrus"
)

const (
	testSubscriptionKey = "stt-test-key"
	testTranslatorKey   = "translator-test-key"
)

// newTestClient builds a client whose endpoints all point at the given
// local server.
func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	cnf, err := config.New(&config.AppConfig{
		SpeechServices: config.SpeechServices{
			SubscriptionKey:    testSubscriptionKey,
			ServiceRegion:      "local",
			TranslatorKey:      testTranslatorKey,
			SttEndpoint:        serverURL + "/stt",
			TtsEndpoint:        serverURL + "/tts",
			TranslatorEndpoint: serverURL,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client, err := NewClient(cnf, metrics.NewMetrics(prometheus.NewRegistry()), logger)
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestNewClientRequiresCredentials(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	m := metrics.NewMetrics(prometheus.NewRegistry())

	cnf := &config.AppConfig{}
	if _, err := NewClient(cnf, m, logger); err == nil {
		t.Error("NewClient() without credentials expected an error")
	}

	cnf.SpeechServices.SubscriptionKey = "key"
	if _, err := NewClient(cnf, m, logger); err == nil {
		t.Error("NewClient() without a region expected an error")
	}
}

func TestNewClientDerivesRegionalEndpoints(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cnf := &config.AppConfig{
		SpeechServices: config.SpeechServices{
			SubscriptionKey: "key",
			ServiceRegion:   "westeurope",
		},
	}
	client, err := NewClient(cnf, metrics.NewMetrics(prometheus.NewRegistry()), logger)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(client.sttBase, "westeurope.stt.speech.microsoft.com") {
		t.Errorf("sttBase = %q, want the regional host", client.sttBase)
	}
	if !strings.Contains(client.ttsBase, "westeurope.tts.speech.microsoft.com") {
		t.Errorf("ttsBase = %q, want the regional host", client.ttsBase)
	}
}

func TestProviderErrorStructuredMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":401,"message":"access denied due to invalid subscription key"}}`))
	}))
	defer server.Close()

	r := NewRecognizer(newTestClient(t, server.URL))
	_, err := r.Recognize(context.Background(), []byte("wav"), "en-US")

	var provErr *speech.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Recognize() error = %v, want *speech.ProviderError", err)
	}
	if provErr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want %d", provErr.Status, http.StatusUnauthorized)
	}
	if provErr.Message != "access denied due to invalid subscription key" {
		t.Errorf("Message = %q, want the provider's structured message", provErr.Message)
	}
	if provErr.Operation != "recognize" {
		t.Errorf("Operation = %q, want recognize", provErr.Operation)
	}
}

func TestProviderErrorTruncatesRawBody(t *testing.T) {
	longBody := strings.Repeat("x", 3*config.MaxProviderErrorBody)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(longBody))
	}))
	defer server.Close()

	r := NewRecognizer(newTestClient(t, server.URL))
	_, err := r.Recognize(context.Background(), []byte("wav"), "en-US")

	var provErr *speech.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Recognize() error = %v, want *speech.ProviderError", err)
	}
	want := strings.Repeat("x", config.MaxProviderErrorBody) + "..."
	if provErr.Message != want {
		t.Errorf("Message has %d runes, want the body truncated to %d plus marker", len(provErr.Message), config.MaxProviderErrorBody)
	}
}
