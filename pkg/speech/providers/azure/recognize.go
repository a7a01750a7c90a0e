package azure

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech"
)

const recognitionStatusSuccess = "Success"

// Recognizer submits short utterances to the Azure speech-to-text REST
// endpoint. It implements speech.Recognizer.
type Recognizer struct {
	client *Client
}

func NewRecognizer(client *Client) *Recognizer {
	return &Recognizer{client: client}
}

type recognitionResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
	NBest             []struct {
		Confidence float64 `json:"Confidence"`
		Display    string  `json:"Display"`
	} `json:"NBest"`
}

// Recognize transcribes canonical-rate WAV audio. A concrete language
// tag goes to the provider verbatim; speech.LanguageAuto recognizes
// with the bootstrap locale first and identifies the language from the
// transcript afterwards.
func (r *Recognizer) Recognize(ctx context.Context, wav []byte, languageTag string) (*speech.RecognitionResult, error) {
	if languageTag == speech.LanguageAuto {
		return r.recognizeAuto(ctx, wav)
	}
	return r.recognizeWith(ctx, wav, languageTag)
}

func (r *Recognizer) recognizeAuto(ctx context.Context, wav []byte) (*speech.RecognitionResult, error) {
	bootstrap := r.client.cnf.BootstrapLocale

	result, err := r.recognizeWith(ctx, wav, bootstrap)
	if err != nil {
		return nil, err
	}

	// The bootstrap locale produced the transcript but must never be
	// surfaced as the detected language.
	code, err := r.detectLanguage(ctx, result.Transcript)
	if err != nil {
		return nil, err
	}
	result.Language = speech.ExpandLocale(code, r.client.cnf.LocaleMap)
	return result, nil
}

func (r *Recognizer) recognizeWith(ctx context.Context, wav []byte, languageTag string) (*speech.RecognitionResult, error) {
	query := url.Values{}
	query.Set("language", languageTag)
	query.Set("format", "detailed")
	endpoint := r.client.sttBase + "?" + query.Encode()

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(wav))
	if err != nil {
		return nil, fmt.Errorf("building recognize request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", r.client.cnf.SubscriptionKey)
	req.Header.Set("Content-Type", "audio/wav; codecs=audio/pcm; samplerate=16000")
	req.Header.Set("Accept", "application/json")

	_, body, err := r.client.do(ctx, "recognize", req)
	if err != nil {
		return nil, err
	}

	var parsed recognitionResponse
	if err = json.Unmarshal(body, &parsed); err != nil {
		return nil, &speech.MalformedResponseError{Operation: "recognize", Reason: "unparseable payload", Err: err}
	}
	if parsed.RecognitionStatus == "" {
		return nil, &speech.MalformedResponseError{Operation: "recognize", Reason: "missing RecognitionStatus"}
	}

	transcript := strings.TrimSpace(parsed.DisplayText)
	if parsed.RecognitionStatus != recognitionStatusSuccess || transcript == "" {
		// a silent or unintelligible utterance, not a transport failure
		return nil, speech.ErrEmptyResult
	}

	result := &speech.RecognitionResult{
		Transcript: transcript,
		Language:   languageTag,
	}
	if len(parsed.NBest) > 0 {
		result.Confidence = parsed.NBest[0].Confidence
	}
	return result, nil
}
