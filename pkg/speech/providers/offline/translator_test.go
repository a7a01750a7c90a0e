package offline

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestTranslator() *Translator {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewTranslator(logger)
}

func TestTranslateDeterministicTransform(t *testing.T) {
	tr := newTestTranslator()

	targets := []string{"es", "fr", "de"}
	results, err := tr.Translate(context.Background(), "Good morning", targets, "en")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	if len(results) != len(targets) {
		t.Fatalf("got %d translations, want %d", len(results), len(targets))
	}
	for i, code := range targets {
		if results[i].Code != code {
			t.Errorf("result %d code = %q, want %q", i, results[i].Code, code)
		}
		want := "(" + code + ") Good morning"
		if results[i].Text != want {
			t.Errorf("result %d text = %q, want %q", i, results[i].Text, want)
		}
	}

	// same input, same output
	again, err := tr.Translate(context.Background(), "Good morning", targets, "en")
	if err != nil {
		t.Fatal(err)
	}
	for i := range results {
		if again[i] != results[i] {
			t.Errorf("repeated call diverged at %d: %+v != %+v", i, again[i], results[i])
		}
	}
}

func TestTranslateRequiresTargets(t *testing.T) {
	if _, err := newTestTranslator().Translate(context.Background(), "hello", nil, "en"); err == nil {
		t.Error("Translate() without targets expected an error")
	}
}
