package synthesisservice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shanmugapriya39/globalytix-app/pkg/config"
	"github.com/shanmugapriya39/globalytix-app/pkg/metrics"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech"
	"github.com/sirupsen/logrus"
)

type stubSynthesizer struct {
	mu    sync.Mutex
	calls int
	fn    func(ctx context.Context, text, voice, locale string) (*speech.SynthesisResult, error)
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, text, voice, locale string) (*speech.SynthesisResult, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.fn(ctx, text, voice, locale)
}

func (s *stubSynthesizer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestDispatcher(t *testing.T, synth speech.Synthesizer, concurrency int) *Dispatcher {
	t.Helper()

	cnf, err := config.New(&config.AppConfig{
		Synthesis: config.SynthesisSettings{Concurrency: concurrency},
	})
	if err != nil {
		t.Fatal(err)
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	d, err := NewDispatcher(synth, cnf, metrics.NewMetrics(prometheus.NewRegistry()), logger)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(d.Stop)
	return d
}

func TestSynthesizeServesRepeatsFromCache(t *testing.T) {
	audio := []byte("synthesized-audio")
	synth := &stubSynthesizer{
		fn: func(ctx context.Context, text, voice, locale string) (*speech.SynthesisResult, error) {
			return &speech.SynthesisResult{Audio: audio, ContentType: "audio/mpeg"}, nil
		},
	}
	d := newTestDispatcher(t, synth, 3)

	first, err := d.Synthesize(context.Background(), "Good work!", "en-US-JennyNeural", "en-US")
	if err != nil {
		t.Fatalf("first Synthesize() error = %v", err)
	}

	// any further provider call proves the cache was bypassed
	synth.fn = func(ctx context.Context, text, voice, locale string) (*speech.SynthesisResult, error) {
		return nil, errors.New("provider must not be called again")
	}

	second, err := d.Synthesize(context.Background(), "Good work!", "en-US-JennyNeural", "en-US")
	if err != nil {
		t.Fatalf("second Synthesize() error = %v", err)
	}

	if !bytes.Equal(first.Audio, second.Audio) {
		t.Error("cached audio differs from the first result")
	}
	if synth.callCount() != 1 {
		t.Errorf("provider called %d times, want 1", synth.callCount())
	}
	if d.CacheLen() != 1 {
		t.Errorf("CacheLen() = %d, want 1", d.CacheLen())
	}
}

func TestSynthesizeDistinctKeysMiss(t *testing.T) {
	synth := &stubSynthesizer{
		fn: func(ctx context.Context, text, voice, locale string) (*speech.SynthesisResult, error) {
			return &speech.SynthesisResult{Audio: []byte(locale + "|" + voice + "|" + text)}, nil
		},
	}
	d := newTestDispatcher(t, synth, 3)

	requests := [][3]string{
		{"Good work!", "en-US-JennyNeural", "en-US"},
		{"Good work!", "en-US-JennyNeural", "en-GB"},
		{"Good work!", "en-GB-SoniaNeural", "en-US"},
		{"Other text", "en-US-JennyNeural", "en-US"},
	}
	for _, req := range requests {
		if _, err := d.Synthesize(context.Background(), req[0], req[1], req[2]); err != nil {
			t.Fatal(err)
		}
	}

	if synth.callCount() != len(requests) {
		t.Errorf("provider called %d times, want %d (every field is part of the key)", synth.callCount(), len(requests))
	}
}

func TestSynthesizeBoundsConcurrency(t *testing.T) {
	const limit = 3
	const total = 8

	release := make(chan struct{})
	var inFlight, maxInFlight atomic.Int32
	var startMu sync.Mutex
	var startOrder []string

	synth := &stubSynthesizer{
		fn: func(ctx context.Context, text, voice, locale string) (*speech.SynthesisResult, error) {
			n := inFlight.Add(1)
			for {
				prev := maxInFlight.Load()
				if n <= prev || maxInFlight.CompareAndSwap(prev, n) {
					break
				}
			}
			startMu.Lock()
			startOrder = append(startOrder, text)
			startMu.Unlock()

			<-release
			inFlight.Add(-1)
			return &speech.SynthesisResult{Audio: []byte(text)}, nil
		},
	}
	d := newTestDispatcher(t, synth, limit)

	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			if _, err := d.Synthesize(context.Background(), text, "voice", "en-US"); err != nil {
				t.Errorf("Synthesize(%s) error = %v", text, err)
			}
		}(fmt.Sprintf("utterance-%d", i))
		// stagger submissions so the queue order is deterministic
		time.Sleep(20 * time.Millisecond)
	}

	close(release)
	wg.Wait()

	if got := maxInFlight.Load(); got > limit {
		t.Errorf("max in-flight provider calls = %d, want at most %d", got, limit)
	}
	if synth.callCount() != total {
		t.Errorf("provider called %d times, want %d", synth.callCount(), total)
	}
	if d.CacheLen() != total {
		t.Errorf("CacheLen() = %d, want %d", d.CacheLen(), total)
	}

	// overflow work runs in submission order once slots free up
	startMu.Lock()
	defer startMu.Unlock()
	for i := limit; i < total; i++ {
		want := fmt.Sprintf("utterance-%d", i)
		if startOrder[i] != want {
			t.Errorf("queued start %d = %s, want %s", i, startOrder[i], want)
		}
	}
}

func TestSynthesizeFailureNotCached(t *testing.T) {
	providerDown := errors.New("provider unavailable")
	failing := true
	synth := &stubSynthesizer{}
	synth.fn = func(ctx context.Context, text, voice, locale string) (*speech.SynthesisResult, error) {
		if failing {
			return nil, providerDown
		}
		return &speech.SynthesisResult{Audio: []byte("recovered")}, nil
	}
	d := newTestDispatcher(t, synth, 3)

	if _, err := d.Synthesize(context.Background(), "hello", "voice", "en-US"); !errors.Is(err, providerDown) {
		t.Fatalf("Synthesize() error = %v, want the provider failure", err)
	}
	if d.CacheLen() != 0 {
		t.Fatalf("CacheLen() = %d after a failure, failures must not be cached", d.CacheLen())
	}

	failing = false
	result, err := d.Synthesize(context.Background(), "hello", "voice", "en-US")
	if err != nil {
		t.Fatalf("Synthesize() after recovery error = %v", err)
	}
	if string(result.Audio) != "recovered" {
		t.Errorf("Audio = %q, want the fresh provider result", result.Audio)
	}
	if synth.callCount() != 2 {
		t.Errorf("provider called %d times, want 2", synth.callCount())
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("en-US", "en-US-JennyNeural", "Good work!")
	if a != CacheKey("en-US", "en-US-JennyNeural", "Good work!") {
		t.Error("CacheKey() is not deterministic")
	}
	if len(a) != 64 {
		t.Errorf("CacheKey() length = %d, want 64 hex characters", len(a))
	}

	variants := []string{
		CacheKey("en-GB", "en-US-JennyNeural", "Good work!"),
		CacheKey("en-US", "en-GB-SoniaNeural", "Good work!"),
		CacheKey("en-US", "en-US-JennyNeural", "Other text"),
	}
	for i, v := range variants {
		if v == a {
			t.Errorf("variant %d collides with the base key", i)
		}
	}
}
