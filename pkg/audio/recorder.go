package audio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shanmugapriya39/globalytix-app/pkg/config"
	"github.com/shanmugapriya39/globalytix-app/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// ErrRecordingActive is returned when Record is called while a previous
// capture session on the same Recorder has not finished.
var ErrRecordingActive = errors.New("recording already in progress")

// Recording is the outcome of one bounded capture session.
type Recording struct {
	// Blob is the captured audio compressed as FLAC.
	Blob       []byte
	SampleRate uint32
	Duration   time.Duration
	Options    CaptureOptions
}

// Recorder runs single-shot microphone capture sessions. One session at
// a time; capture ends at the configured ceiling or on Stop.
type Recorder struct {
	audioCtx Context
	cnf      *config.AppConfig
	m        *metrics.Metrics
	logger   *logrus.Entry

	lock   sync.Mutex
	active bool
	stopCh chan struct{}
}

func NewRecorder(audioCtx Context, cnf *config.AppConfig, m *metrics.Metrics, logger *logrus.Logger) *Recorder {
	return &Recorder{
		audioCtx: audioCtx,
		cnf:      cnf,
		m:        m,
		logger:   logger.WithField("service", "recorder"),
	}
}

// Record captures one utterance and returns it as a compressed blob.
// It blocks until the duration ceiling elapses, Stop is called or ctx is
// cancelled. No streaming delivery; the blob arrives in one piece.
func (r *Recorder) Record(ctx context.Context) (*Recording, error) {
	r.lock.Lock()
	if r.active {
		r.lock.Unlock()
		return nil, ErrRecordingActive
	}
	r.active = true
	r.stopCh = make(chan struct{})
	stopCh := r.stopCh
	r.lock.Unlock()

	defer func() {
		r.lock.Lock()
		r.active = false
		r.lock.Unlock()
	}()

	device, err := r.selectDevice()
	if err != nil {
		return nil, err
	}

	opts := CaptureOptions{
		EchoCancellation: *r.cnf.Capture.EchoCancellation,
		NoiseSuppression: *r.cnf.Capture.NoiseSuppression,
		AutoGainControl:  *r.cnf.Capture.AutoGainControl,
	}
	dev, err := r.audioCtx.NewCapture(device, CaptureConfig{
		SampleRate: r.cnf.Capture.SampleRate,
		Channels:   config.CaptureChannels,
		Options:    opts,
	})
	if err != nil {
		r.m.RecordCaptureFailure()
		return nil, err
	}
	defer dev.Close()

	var (
		samplesLock sync.Mutex
		samples     []int16
	)
	dev.SetCallback(func(data []byte, frameCount uint32) {
		samplesLock.Lock()
		for i := 0; i+1 < len(data); i += 2 {
			samples = append(samples, int16(data[i])|int16(data[i+1])<<8)
		}
		samplesLock.Unlock()
	})

	if err = dev.Start(); err != nil {
		r.m.RecordCaptureFailure()
		return nil, err
	}
	r.m.RecordCaptureStarted()
	r.logger.Debugf("capture started, ceiling %s", r.cnf.Capture.MaxDuration)

	ceiling := time.NewTimer(r.cnf.Capture.MaxDuration)
	defer ceiling.Stop()

	var cancelled error
	select {
	case <-ceiling.C:
	case <-stopCh:
	case <-ctx.Done():
		cancelled = ctx.Err()
	}

	dev.Stop()
	dev.ClearCallback()

	if cancelled != nil {
		r.m.RecordCaptureFailure()
		return nil, cancelled
	}

	samplesLock.Lock()
	captured := samples
	samples = nil
	samplesLock.Unlock()

	blob, err := encodeFlacBlob(captured, r.cnf.Capture.SampleRate)
	if err != nil {
		r.m.RecordCaptureFailure()
		return nil, err
	}

	duration := time.Duration(len(captured)) * time.Second / time.Duration(r.cnf.Capture.SampleRate)
	r.m.RecordCaptureDone(duration.Seconds())
	r.logger.Debugf("capture finished with %d samples (%s)", len(captured), duration)

	return &Recording{
		Blob:       blob,
		SampleRate: r.cnf.Capture.SampleRate,
		Duration:   duration,
		Options:    opts,
	}, nil
}

// Stop ends the active capture session early. It is a no-op when no
// session is running.
func (r *Recorder) Stop() {
	r.lock.Lock()
	defer r.lock.Unlock()
	if !r.active || r.stopCh == nil {
		return
	}
	select {
	case <-r.stopCh:
	default:
		close(r.stopCh)
	}
}

func (r *Recorder) selectDevice() (*DeviceInfo, error) {
	if r.cnf.Capture.DeviceName == nil || *r.cnf.Capture.DeviceName == "" {
		return nil, nil
	}

	devices, err := r.audioCtx.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerating devices: %w", err)
	}
	want := strings.ToLower(*r.cnf.Capture.DeviceName)
	for i, d := range devices {
		if strings.Contains(strings.ToLower(d.Name), want) {
			return &devices[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no capture device matching %q", ErrPermission, *r.cnf.Capture.DeviceName)
}

func encodeFlacBlob(samples []int16, sampleRate uint32) ([]byte, error) {
	enc, err := NewFlacEncoder(sampleRate)
	if err != nil {
		return nil, err
	}
	for pos := 0; pos < len(samples); pos += flacBlockSize {
		end := min(pos+flacBlockSize, len(samples))
		if err = enc.EncodeBlock(samples[pos:end]); err != nil {
			return nil, err
		}
	}
	if err = enc.Close(); err != nil {
		return nil, fmt.Errorf("closing flac stream: %w", err)
	}
	return enc.Bytes(), nil
}
