package audio

import "errors"

// ErrPermission is returned when the capture device is unavailable or
// access to it was denied. Callers match it with errors.Is.
var ErrPermission = errors.New("capture device unavailable or access denied")

// DataCallback receives raw little-endian S16 PCM from the device.
type DataCallback func(data []byte, frameCount uint32)

type CaptureConfig struct {
	SampleRate uint32
	Channels   uint32
	Options    CaptureOptions
}

// CaptureOptions are best-effort processing constraints. Backends apply
// what they support and report the rest on the recording metadata.
type CaptureOptions struct {
	EchoCancellation bool
	NoiseSuppression bool
	AutoGainControl  bool
}

type DeviceInfo struct {
	ID   string // opaque platform-specific identifier
	Name string
}

type Context interface {
	Devices() ([]DeviceInfo, error)
	NewCapture(device *DeviceInfo, config CaptureConfig) (CaptureDevice, error)
	Close()
}

type CaptureDevice interface {
	Start() error
	Stop()
	Close()
	SetCallback(cb DataCallback)
	ClearCallback()
}
