package config

const (
	SpeechNotDetectedMsg     = "no speech detected, please try again"
	MicPermissionDeniedMsg   = "microphone access was denied"
	RecordingActiveMsg       = "a recording is already in progress"
	EncodingFailedMsg        = "captured audio could not be processed"
	RecognitionFailedMsg     = "speech recognition service is unavailable"
	TranslationFailedMsg     = "translation service is unavailable"
	SynthesisFailedMsg       = "speech synthesis service is unavailable"
	UnexpectedReplyMsg       = "received an unexpected reply from the speech service"
)
