package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mewkiz/flac"
	"github.com/shanmugapriya39/globalytix-app/pkg/config"
	"github.com/shanmugapriya39/globalytix-app/pkg/metrics"
	"github.com/sirupsen/logrus"
)

const dataURIPrefix = "data:audio/wav;base64,"

// EncodingError reports a capture blob that could not be decoded or
// normalized for transport.
type EncodingError struct {
	Reason string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("encoding failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("encoding failed: %s", e.Reason)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// EncodedUtterance is one utterance normalized to the canonical rate:
// mono 16-bit PCM at 16 kHz with leading and trailing silence removed,
// plus its transport encodings.
type EncodedUtterance struct {
	PCM        []int16
	WAV        []byte
	DataURI    string
	SampleRate int

	// TrimStart and TrimEnd are the retained [start, end] sample range
	// within the resampled buffer.
	TrimStart int
	TrimEnd   int
}

// Encoder turns compressed capture blobs into recognizer-ready audio.
type Encoder struct {
	threshold float64
	m         *metrics.Metrics
	logger    *logrus.Entry
}

func NewEncoder(cnf *config.AppConfig, m *metrics.Metrics, logger *logrus.Logger) *Encoder {
	return &Encoder{
		threshold: cnf.Encoding.TrimThreshold,
		m:         m,
		logger:    logger.WithField("service", "encoder"),
	}
}

// Encode decodes a FLAC or WAV blob, resamples channel 0 to the
// canonical rate, trims silence from both ends and serializes the
// result as WAV bytes plus a base64 data URI.
func (e *Encoder) Encode(blob []byte) (*EncodedUtterance, error) {
	started := time.Now()

	native, nativeRate, err := decodeBlob(blob)
	if err != nil {
		e.m.RecordEncodeFailure()
		return nil, err
	}
	if len(native) == 0 {
		e.m.RecordEncodeFailure()
		return nil, &EncodingError{Reason: "decoded audio contains no samples"}
	}

	resampled := resampleNearest(native, nativeRate, config.EncodeTargetSampleRate)
	start, end := trimRange(resampled, e.threshold)
	trimmed := resampled[start : end+1]

	pcm := quantize(trimmed)
	wav, err := EncodeWAV(pcm, config.EncodeTargetSampleRate)
	if err != nil {
		e.m.RecordEncodeFailure()
		return nil, &EncodingError{Reason: "serializing WAV container", Err: err}
	}

	e.m.RecordUtteranceEncoded(time.Since(started).Seconds())
	e.logger.Debugf("encoded %d native samples at %dHz into %d canonical samples (trim %d..%d)",
		len(native), nativeRate, len(pcm), start, end)

	return &EncodedUtterance{
		PCM:        pcm,
		WAV:        wav,
		DataURI:    dataURIPrefix + base64.StdEncoding.EncodeToString(wav),
		SampleRate: config.EncodeTargetSampleRate,
		TrimStart:  start,
		TrimEnd:    end,
	}, nil
}

// decodeBlob sniffs the container type and decodes channel 0 into
// normalized floating-point samples at the native rate.
func decodeBlob(blob []byte) ([]float64, int, error) {
	if len(blob) == 0 {
		return nil, 0, &EncodingError{Reason: "empty capture blob"}
	}

	mime := mimetype.Detect(blob)
	switch {
	case mime.Is("audio/flac"):
		return decodeFlac(blob)
	case mime.Is("audio/wav"), mime.Is("audio/x-wav"):
		samples, rate, err := DecodeWAV(blob)
		if err != nil {
			return nil, 0, &EncodingError{Reason: "decoding WAV blob", Err: err}
		}
		native := make([]float64, len(samples))
		for i, s := range samples {
			native[i] = float64(s) / 32768
		}
		return native, rate, nil
	default:
		return nil, 0, &EncodingError{Reason: fmt.Sprintf("unsupported capture blob type %s", mime.String())}
	}
}

func decodeFlac(blob []byte) ([]float64, int, error) {
	stream, err := flac.Parse(bytes.NewReader(blob))
	if err != nil {
		return nil, 0, &EncodingError{Reason: "parsing FLAC stream", Err: err}
	}

	scale := float64(int64(1) << (stream.Info.BitsPerSample - 1))
	nch := int(stream.Info.NChannels)

	var native []float64
	for {
		fr, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, &EncodingError{Reason: "decoding FLAC frame", Err: err}
		}
		if len(fr.Subframes) < nch {
			return nil, 0, &EncodingError{Reason: "FLAC frame is missing channel data"}
		}
		// channel 0 only
		for _, s := range fr.Subframes[0].Samples {
			native = append(native, float64(s)/scale)
		}
	}

	return native, int(stream.Info.SampleRate), nil
}

// resampleNearest maps samples onto the target rate by nearest-neighbor
// selection. Output length is round(inputLength / ratio) with
// ratio = nativeRate / targetRate.
func resampleNearest(in []float64, nativeRate, targetRate int) []float64 {
	if nativeRate == targetRate || len(in) == 0 {
		out := make([]float64, len(in))
		copy(out, in)
		return out
	}

	ratio := float64(nativeRate) / float64(targetRate)
	outLen := int(math.Round(float64(len(in)) / ratio))
	out := make([]float64, 0, outLen)
	for i := 0; i < outLen; i++ {
		idx := int(math.Round(float64(i) * ratio))
		if idx >= len(in) {
			idx = len(in) - 1
		}
		out = append(out, in[idx])
	}
	return out
}

// trimRange finds the retained [start, end] range around the first and
// last samples whose amplitude crosses the threshold. A fully silent
// buffer keeps the whole range; that is an expected outcome, not an
// error.
func trimRange(samples []float64, threshold float64) (int, int) {
	start := 0
	end := len(samples) - 1

	found := false
	for i, s := range samples {
		if math.Abs(s) > threshold {
			start = i
			found = true
			break
		}
	}
	if !found {
		return 0, len(samples) - 1
	}

	for i := len(samples) - 1; i >= start; i-- {
		if math.Abs(samples[i]) > threshold {
			end = i
			break
		}
	}
	return start, end
}

// quantize converts normalized floats to signed 16-bit PCM. The
// negative and positive ranges scale asymmetrically (32768 vs 32767) so
// full-scale input does not distort.
func quantize(samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		if s < -1 {
			s = -1
		} else if s > 1 {
			s = 1
		}
		if s < 0 {
			out[i] = int16(s * 32768)
		} else {
			out[i] = int16(s * 32767)
		}
	}
	return out
}
