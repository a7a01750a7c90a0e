package models

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shanmugapriya39/globalytix-app/pkg/audio"
	"github.com/shanmugapriya39/globalytix-app/pkg/config"
	"github.com/shanmugapriya39/globalytix-app/pkg/media"
	"github.com/shanmugapriya39/globalytix-app/pkg/metrics"
	synthesisservice "github.com/shanmugapriya39/globalytix-app/pkg/services/synthesis"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech"
	"github.com/shanmugapriya39/globalytix-app/pkg/speech/providers"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type SessionState string

const (
	SessionIdle        SessionState = "idle"
	SessionListening   SessionState = "listening"
	SessionTranslating SessionState = "translating"
	SessionDone        SessionState = "done"
	SessionError       SessionState = "error"
)

var (
	// ErrPipelineActive is returned when a capture chain is started
	// while another one is still running on the same session.
	ErrPipelineActive = errors.New("a capture chain is already active for this session")
	// ErrSessionRecovering is returned while the session waits out its
	// error delay before returning to idle.
	ErrSessionRecovering = errors.New("session is recovering from an error")
)

// PipelineResult is the terminal payload of one successful run.
type PipelineResult struct {
	OriginalText     string               `json:"original_text"`
	DetectedLanguage string               `json:"detected_language"`
	Translations     []speech.Translation `json:"translations"`
	Audio            []byte               `json:"-"`
	ContentType      string               `json:"content_type"`
}

// StateChange is one session event. Terminal events carry either a
// result or an error with its user-facing message; the timed return to
// idle after an error carries RetryReady.
type StateChange struct {
	State      SessionState
	Result     *PipelineResult
	Err        error
	Message    string
	RetryReady bool
}

// SessionModel orchestrates one live translation session through the
// capture, encode, recognize, translate and synthesize stages. Exactly
// one chain runs at a time per session.
type SessionModel struct {
	app        *config.AppConfig
	recorder   *audio.Recorder
	encoder    *media.Encoder
	recognizer speech.Recognizer
	translator speech.Translator
	dispatcher *synthesisservice.Dispatcher
	m          *metrics.Metrics
	logger     *logrus.Entry

	lock      sync.Mutex
	state     SessionState
	current   *MessageBubble
	fading    *MessageBubble
	fadeTimer *time.Timer

	events chan StateChange
}

func NewSessionModel(app *config.AppConfig, recorder *audio.Recorder, encoder *media.Encoder, suite *providers.Suite, dispatcher *synthesisservice.Dispatcher, m *metrics.Metrics, logger *logrus.Logger) *SessionModel {
	return &SessionModel{
		app:        app,
		recorder:   recorder,
		encoder:    encoder,
		recognizer: suite.Recognizer,
		translator: suite.Translator,
		dispatcher: dispatcher,
		m:          m,
		logger:     logger.WithField("model", "session"),
		state:      SessionIdle,
		events:     make(chan StateChange, app.Session.EventBuffer),
	}
}

// Events exposes the session's state transitions in order of
// occurrence.
func (s *SessionModel) Events() <-chan StateChange {
	return s.events
}

func (s *SessionModel) State() SessionState {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.state
}

// StopRecording ends the listening phase early. It is the only
// cancellable stage; stages already in flight run to completion.
func (s *SessionModel) StopRecording() {
	s.recorder.Stop()
}

// RecordAndTranslate runs one capture chain: record, encode, recognize,
// translate and synthesize the primary target, in sequence. It blocks
// until the terminal state and returns the terminal payload. Remaining
// targets are prewarmed into the synthesis cache afterwards.
func (s *SessionModel) RecordAndTranslate(ctx context.Context, spokenLang string, targets []string) (*PipelineResult, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("no target languages requested")
	}
	if int32(len(targets)) > s.app.SpeechServices.MaxNumTranLangs {
		return nil, fmt.Errorf("at most %d target languages may be selected", s.app.SpeechServices.MaxNumTranLangs)
	}

	s.lock.Lock()
	switch s.state {
	case SessionListening, SessionTranslating:
		s.lock.Unlock()
		return nil, ErrPipelineActive
	case SessionError:
		s.lock.Unlock()
		return nil, ErrSessionRecovering
	}
	// idle or done both start a new chain directly
	s.state = SessionListening
	s.lock.Unlock()

	s.m.RecordSessionStarted()
	s.emit(StateChange{State: SessionListening})
	started := time.Now()

	recording, err := s.recorder.Record(ctx)
	if err != nil {
		return nil, s.fail("capture", err)
	}

	s.setState(SessionTranslating)
	s.emit(StateChange{State: SessionTranslating})

	utterance, err := s.encoder.Encode(recording.Blob)
	if err != nil {
		return nil, s.fail("encode", err)
	}

	recognized, err := s.recognizer.Recognize(ctx, utterance.WAV, spokenLang)
	if err != nil {
		return nil, s.fail("recognize", err)
	}
	s.PresentBubble(BubbleRoleSubject, recognized.Transcript, recognized.Language)

	translations, err := s.translator.Translate(ctx, recognized.Transcript, targets, speech.ShortCode(recognized.Language))
	if err != nil {
		return nil, s.fail("translate", err)
	}

	primary := translations[0]
	primaryLocale := speech.ExpandLocale(primary.Code, s.app.SpeechServices.LocaleMap)
	voice := s.app.SpeechServices.GetVoiceFor(primaryLocale)

	synthesized, err := s.dispatcher.Synthesize(ctx, primary.Text, voice, primaryLocale)
	if err != nil {
		return nil, s.fail("synthesize", err)
	}
	s.PresentBubble(BubbleRoleTranslated, primary.Text, primaryLocale)

	result := &PipelineResult{
		OriginalText:     recognized.Transcript,
		DetectedLanguage: recognized.Language,
		Translations:     translations,
		Audio:            synthesized.Audio,
		ContentType:      synthesized.ContentType,
	}

	s.setState(SessionDone)
	s.emit(StateChange{State: SessionDone, Result: result})
	s.m.RecordPipelineDone(time.Since(started).Seconds())

	if len(translations) > 1 {
		go s.prewarm(translations[1:])
	}

	return result, nil
}

// prewarm synthesizes the non-primary targets into the dispatcher cache
// so replaying them later is a cache hit. Failures are logged and never
// affect the already-delivered result.
func (s *SessionModel) prewarm(rest []speech.Translation) {
	g := new(errgroup.Group)
	for _, tr := range rest {
		tr := tr
		g.Go(func() error {
			locale := speech.ExpandLocale(tr.Code, s.app.SpeechServices.LocaleMap)
			_, err := s.dispatcher.Synthesize(context.Background(), tr.Text, s.app.SpeechServices.GetVoiceFor(locale), locale)
			if err != nil {
				s.logger.WithError(err).Warnf("cache prewarm failed for %s", tr.Code)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// PresentBubble makes a new current bubble and demotes the previous one
// to fading for the configured interval.
func (s *SessionModel) PresentBubble(role BubbleRole, text, language string) *MessageBubble {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.fadeTimer != nil {
		s.fadeTimer.Stop()
		s.fading = nil
	}

	if s.current != nil {
		demoted := s.current
		demoted.Fading = true
		s.fading = demoted
		s.fadeTimer = time.AfterFunc(s.app.Session.FadeInterval, func() {
			s.lock.Lock()
			if s.fading == demoted {
				s.fading = nil
			}
			s.lock.Unlock()
		})
	}

	bubble := &MessageBubble{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Language:  language,
		CreatedAt: time.Now(),
	}
	s.current = bubble
	return bubble
}

// Bubbles returns copies of the current and fading bubbles; either may
// be nil.
func (s *SessionModel) Bubbles() (*MessageBubble, *MessageBubble) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var current, fading *MessageBubble
	if s.current != nil {
		c := *s.current
		current = &c
	}
	if s.fading != nil {
		f := *s.fading
		fading = &f
	}
	return current, fading
}

// fail drives the state machine to error, emits exactly one error
// notification and schedules the timed return to idle.
func (s *SessionModel) fail(stage string, err error) error {
	s.logger.WithError(err).Errorf("pipeline failed at %s stage", stage)
	s.m.RecordSessionFailure(stage)

	s.setState(SessionError)
	s.emit(StateChange{State: SessionError, Err: err, Message: userMessage(stage, err)})

	time.AfterFunc(s.app.Session.RetryDelay, func() {
		s.setState(SessionIdle)
		s.emit(StateChange{State: SessionIdle, RetryReady: true})
	})

	return err
}

func (s *SessionModel) setState(state SessionState) {
	s.lock.Lock()
	s.state = state
	s.lock.Unlock()
}

func (s *SessionModel) emit(ev StateChange) {
	select {
	case s.events <- ev:
	default:
		s.logger.Warnln("dropping session event, buffer is full")
	}
}

// userMessage picks the user-facing wording for a stage failure. An
// empty recognition result reads differently from a provider outage.
func userMessage(stage string, err error) string {
	switch {
	case errors.Is(err, speech.ErrEmptyResult):
		return config.SpeechNotDetectedMsg
	case errors.Is(err, audio.ErrPermission):
		return config.MicPermissionDeniedMsg
	case errors.Is(err, audio.ErrRecordingActive):
		return config.RecordingActiveMsg
	}

	var malformed *speech.MalformedResponseError
	if errors.As(err, &malformed) {
		return config.UnexpectedReplyMsg
	}
	var encoding *media.EncodingError
	if errors.As(err, &encoding) {
		return config.EncodingFailedMsg
	}

	switch stage {
	case "capture", "encode":
		return config.EncodingFailedMsg
	case "recognize":
		return config.RecognitionFailedMsg
	case "translate":
		return config.TranslationFailedMsg
	default:
		return config.SynthesisFailedMsg
	}
}
