package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var appCnf *AppConfig

type AppConfig struct {
	Logger *logrus.Logger

	RootWorkingDir string

	LogSettings    LogSettings       `yaml:"log_settings"`
	Capture        CaptureSettings   `yaml:"capture"`
	Encoding       EncodingSettings  `yaml:"encoding"`
	SpeechServices SpeechServices    `yaml:"speech_services"`
	Synthesis      SynthesisSettings `yaml:"synthesis"`
	Session        SessionSettings   `yaml:"session"`
	Metrics        MetricsSettings   `yaml:"metrics"`
}

type LogSettings struct {
	LogLevel   *string `yaml:"log_level"`
	LogFile    string  `yaml:"log_file"`
	MaxSize    int     `yaml:"max_size"`
	MaxBackups int     `yaml:"max_backups"`
	MaxAge     int     `yaml:"max_age"`
}

type CaptureSettings struct {
	Backend          string        `yaml:"backend"`
	SampleRate       uint32        `yaml:"sample_rate"`
	MaxDuration      time.Duration `yaml:"max_duration"`
	EchoCancellation *bool         `yaml:"echo_cancellation"`
	NoiseSuppression *bool         `yaml:"noise_suppression"`
	AutoGainControl  *bool         `yaml:"auto_gain_control"`
	DeviceName       *string       `yaml:"device_name"`

	// FakeWavFile feeds a pre-recorded WAV file through the fake backend
	// instead of a real microphone.
	FakeWavFile string `yaml:"fake_wav_file"`
}

type EncodingSettings struct {
	TrimThreshold float64 `yaml:"trim_threshold"`
}

type SpeechServices struct {
	Provider        string            `yaml:"provider"`
	SubscriptionKey string            `yaml:"subscription_key"`
	ServiceRegion   string            `yaml:"service_region"`
	TranslatorKey   string            `yaml:"translator_key"`
	BootstrapLocale string            `yaml:"bootstrap_locale"`
	ProviderTimeout time.Duration     `yaml:"provider_timeout"`
	MaxNumTranLangs int32             `yaml:"max_num_tran_langs"`
	LocaleMap       map[string]string `yaml:"locale_map"`
	VoiceMap        map[string]string `yaml:"voice_map"`
	DefaultVoice    string            `yaml:"default_voice"`

	// endpoint overrides for sovereign clouds and tests; empty means
	// the public endpoints derived from service_region
	SttEndpoint        string `yaml:"stt_endpoint"`
	TtsEndpoint        string `yaml:"tts_endpoint"`
	TranslatorEndpoint string `yaml:"translator_endpoint"`
}

type SynthesisSettings struct {
	Concurrency  int    `yaml:"concurrency"`
	CacheSize    int    `yaml:"cache_size"`
	OutputFormat string `yaml:"output_format"`
}

type SessionSettings struct {
	RetryDelay   time.Duration `yaml:"retry_delay"`
	FadeInterval time.Duration `yaml:"fade_interval"`
	EventBuffer  int           `yaml:"event_buffer"`
}

type MetricsSettings struct {
	Enable      bool   `yaml:"enable"`
	Port        int    `yaml:"port"`
	MetricsPath string `yaml:"metrics_path"`
}

func New(appCnf *AppConfig) (*AppConfig, error) {
	// set default values
	if appCnf.Capture.Backend == "" {
		appCnf.Capture.Backend = DefaultCaptureBackend
	}
	switch appCnf.Capture.Backend {
	case DefaultCaptureBackend, FakeCaptureBackend:
	default:
		return nil, fmt.Errorf("unknown capture backend: %s", appCnf.Capture.Backend)
	}

	if appCnf.Capture.SampleRate == 0 {
		appCnf.Capture.SampleRate = DefaultCaptureSampleRate
	}
	if appCnf.Capture.MaxDuration <= 0 {
		appCnf.Capture.MaxDuration = DefaultUtteranceCeiling
	}
	if appCnf.Capture.MaxDuration < MinUtteranceCeiling {
		return nil, fmt.Errorf("capture max_duration %s is below the minimum of %s", appCnf.Capture.MaxDuration, MinUtteranceCeiling)
	}

	// capture constraints default to enabled
	if appCnf.Capture.EchoCancellation == nil {
		enabled := true
		appCnf.Capture.EchoCancellation = &enabled
	}
	if appCnf.Capture.NoiseSuppression == nil {
		enabled := true
		appCnf.Capture.NoiseSuppression = &enabled
	}
	if appCnf.Capture.AutoGainControl == nil {
		enabled := true
		appCnf.Capture.AutoGainControl = &enabled
	}

	if appCnf.Encoding.TrimThreshold == 0 {
		appCnf.Encoding.TrimThreshold = DefaultTrimThreshold
	}
	if appCnf.Encoding.TrimThreshold < 0 || appCnf.Encoding.TrimThreshold >= 1 {
		return nil, fmt.Errorf("encoding trim_threshold must be within [0, 1), got %f", appCnf.Encoding.TrimThreshold)
	}

	if appCnf.SpeechServices.Provider == "" {
		appCnf.SpeechServices.Provider = ProviderAzure
	}
	appCnf.SpeechServices.Provider = strings.ToLower(appCnf.SpeechServices.Provider)

	if appCnf.SpeechServices.BootstrapLocale == "" {
		appCnf.SpeechServices.BootstrapLocale = DefaultBootstrapLocale
	}
	if appCnf.SpeechServices.MaxNumTranLangs <= 0 {
		appCnf.SpeechServices.MaxNumTranLangs = DefaultMaxNumTranLangs
	}
	if appCnf.SpeechServices.DefaultVoice == "" {
		appCnf.SpeechServices.DefaultVoice = DefaultSynthesisVoice
	}

	if appCnf.Synthesis.Concurrency <= 0 {
		appCnf.Synthesis.Concurrency = DefaultSynthesisConcurrency
	}
	if appCnf.Synthesis.CacheSize <= 0 {
		appCnf.Synthesis.CacheSize = DefaultSynthesisCacheSize
	}
	if appCnf.Synthesis.OutputFormat == "" {
		appCnf.Synthesis.OutputFormat = DefaultSynthesisOutputFormat
	}

	if appCnf.Session.RetryDelay <= 0 {
		appCnf.Session.RetryDelay = DefaultSessionRetryDelay
	}
	if appCnf.Session.FadeInterval <= 0 {
		appCnf.Session.FadeInterval = DefaultBubbleFadeInterval
	}
	if appCnf.Session.EventBuffer <= 0 {
		appCnf.Session.EventBuffer = DefaultSessionEventBuffer
	}

	if appCnf.Metrics.MetricsPath == "" {
		appCnf.Metrics.MetricsPath = "/metrics"
	}
	if appCnf.Metrics.Port == 0 {
		appCnf.Metrics.Port = DefaultMetricsPort
	}

	setConfig(appCnf)
	return appCnf, nil
}

func setConfig(cnf *AppConfig) {
	appCnf = cnf
}

func GetConfig() *AppConfig {
	return appCnf
}

// GetVoiceFor returns the synthesis voice configured for a locale,
// falling back to the default voice.
func (s *SpeechServices) GetVoiceFor(locale string) string {
	if v, ok := s.VoiceMap[locale]; ok && v != "" {
		return v
	}
	return s.DefaultVoice
}
