package synthesisservice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/gammazero/workerpool"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shanmugapriya39/globalytix-app/pkg/config"
	"github.com/shanmugapriya39/globalytix-app/pkg/metrics"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech"
	"github.com/sirupsen/logrus"
)

// Dispatcher fronts the synthesis provider with a bounded-concurrency
// worker pool and a content-addressed result cache. At most the
// configured number of provider calls run at once; overflow queues in
// strict submission order. Dispatchers are explicitly constructed, so
// tests and concurrent sessions get isolated instances.
type Dispatcher struct {
	synthesizer speech.Synthesizer
	pool        *workerpool.WorkerPool
	cache       *lru.Cache[string, *speech.SynthesisResult]
	m           *metrics.Metrics
	logger      *logrus.Entry
}

func NewDispatcher(synthesizer speech.Synthesizer, cnf *config.AppConfig, m *metrics.Metrics, logger *logrus.Logger) (*Dispatcher, error) {
	cache, err := lru.New[string, *speech.SynthesisResult](cnf.Synthesis.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating synthesis cache: %w", err)
	}

	return &Dispatcher{
		synthesizer: synthesizer,
		pool:        workerpool.New(cnf.Synthesis.Concurrency),
		cache:       cache,
		m:           m,
		logger:      logger.WithField("service", "synthesis-dispatcher"),
	}, nil
}

// CacheKey derives the content address for one synthesis request. It is
// a pure function of (locale, voice, text).
func CacheKey(locale, voice, text string) string {
	sum := sha256.Sum256([]byte(locale + "|" + voice + "|" + text))
	return hex.EncodeToString(sum[:])
}

type synthesisOutcome struct {
	result *speech.SynthesisResult
	err    error
}

// Synthesize returns cached audio when the key has been synthesized
// before, otherwise runs the provider call through the concurrency
// gate. Successful results are cached before the caller is released;
// failures cache nothing and reach only the issuing caller. Two racing
// requests on one key may both call the provider.
func (d *Dispatcher) Synthesize(ctx context.Context, text, voice, locale string) (*speech.SynthesisResult, error) {
	key := CacheKey(locale, voice, text)

	if result, ok := d.cache.Get(key); ok {
		d.m.RecordSynthesisCacheHit()
		return result, nil
	}
	d.m.RecordSynthesisCacheMiss()

	done := make(chan synthesisOutcome, 1)
	d.m.SynthesisQueueDepth.Inc()
	d.pool.Submit(func() {
		d.m.SynthesisQueueDepth.Dec()
		d.m.SynthesisInFlight.Inc()
		defer d.m.SynthesisInFlight.Dec()

		result, err := d.synthesizer.Synthesize(ctx, text, voice, locale)
		if err == nil {
			d.cache.Add(key, result)
		}
		done <- synthesisOutcome{result: result, err: err}
	})

	outcome := <-done
	if outcome.err != nil {
		d.logger.WithError(outcome.err).Warnf("synthesis failed for locale %s voice %s", locale, voice)
		return nil, outcome.err
	}
	return outcome.result, nil
}

// CacheLen reports how many synthesized results are currently cached.
func (d *Dispatcher) CacheLen() int {
	return d.cache.Len()
}

// Stop drains queued work and shuts the pool down.
func (d *Dispatcher) Stop() {
	d.pool.StopWait()
}
