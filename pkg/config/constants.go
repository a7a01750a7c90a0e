package config

import "time"

const (
	CaptureChannels          = 1
	DefaultCaptureSampleRate = 48000
	EncodeTargetSampleRate   = 16000
	EncodeBitsPerSample      = 16

	DefaultUtteranceCeiling = 4 * time.Second
	MinUtteranceCeiling     = 1 * time.Second
	DefaultTrimThreshold    = 0.01

	DefaultCaptureBackend = "malgo"
	FakeCaptureBackend    = "fake"

	ProviderAzure = "azure"

	DefaultBootstrapLocale = "en-US"
	DefaultMaxNumTranLangs = 4
	DefaultSynthesisVoice  = "en-US-JennyNeural"

	DefaultSynthesisConcurrency  = 3
	DefaultSynthesisCacheSize    = 256
	DefaultSynthesisOutputFormat = "audio-16khz-32kbitrate-mono-mp3"

	// all the timed state transitions
	DefaultSessionRetryDelay  = 2 * time.Second
	DefaultBubbleFadeInterval = 300 * time.Millisecond

	DefaultSessionEventBuffer = 16
	DefaultMetricsPort        = 9100

	// diagnostics carried inside provider errors are clipped to this many runes
	MaxProviderErrorBody = 200
)
