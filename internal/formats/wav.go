package formats

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth16 = 16
	bitDepth24 = 24
	bitDepth32 = 32

	// Full-scale values used when decoding (divide) and encoding (multiply).
	fullScale16 = 32768.0
	fullScale24 = 8388608.0
	fullScale32 = 2147483648.0
)

// fullScale returns the magnitude of the most negative sample for bitDepth.
func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitDepth16:
		return fullScale16, nil
	case bitDepth24:
		return fullScale24, nil
	case bitDepth32:
		return fullScale32, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

// pcmReader is the part of wav.Decoder the source uses.
type pcmReader interface {
	PCMBuffer(buf *audio.IntBuffer) (int, error)
}

type wavSource struct {
	dec        pcmReader
	sampleRate int
	channels   int
	invScale   float32
	intBuf     *audio.IntBuffer
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.intBuf.Data) < len(dst) {
		s.intBuf.Data = make([]int, len(dst))
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	for i, v := range s.intBuf.Data[:n] {
		dst[i] = float32(v) * s.invScale
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("failed to read audio data: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// WAVDecoder decodes 16, 24 and 32-bit PCM WAV files with go-audio/wav.
type WAVDecoder struct{}

// Decode reads the WAV header. Non-seekable readers are buffered in memory.
func (WAVDecoder) Decode(r io.Reader) (Source, error) {
	rs, err := asReadSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWAV
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidStream, format)
	}

	scale, err := fullScale(int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	return newWAVSource(dec, format, scale), nil
}

func newWAVSource(dec pcmReader, format *audio.Format, scale float64) *wavSource {
	return &wavSource{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		invScale:   float32(1 / scale),
		intBuf:     &audio.IntBuffer{Format: format},
	}
}

// WAVWriter encodes interleaved float32 samples as PCM WAV.
type WAVWriter struct {
	enc      *wav.Encoder
	buf      *audio.IntBuffer
	maxValue float64
	channels int
	frames   int64
	closer   io.Closer
}

// NewWAVWriter starts a WAV stream on w. Close must be called to finalize
// the header; it does not close w.
func NewWAVWriter(w io.WriteSeeker, sampleRate, bitDepth, channels int) (*WAVWriter, error) {
	scale, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}
	if sampleRate <= 0 || channels < 1 {
		return nil, fmt.Errorf("%w: rate=%d channels=%d", ErrInvalidStream, sampleRate, channels)
	}

	const pcmFormat = 1
	return &WAVWriter{
		enc: wav.NewEncoder(w, sampleRate, bitDepth, channels, pcmFormat),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
		maxValue: scale - 1,
		channels: channels,
	}, nil
}

// CreateWAV creates the file at path and returns a writer that closes it.
func CreateWAV(path string, sampleRate, bitDepth, channels int) (*WAVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w, err := NewWAVWriter(f, sampleRate, bitDepth, channels)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// WriteSamples clamps samples to [-1, 1] and appends them.
func (w *WAVWriter) WriteSamples(samples []float32) error {
	if len(samples)%w.channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrInvalidStream, len(samples), w.channels)
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]

	for i, s := range samples {
		v := min(max(float64(s), -1), 1)
		w.buf.Data[i] = int(math.Round(v * w.maxValue))
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	w.frames += int64(len(samples) / w.channels)
	return nil
}

// Frames returns the number of frames written so far.
func (w *WAVWriter) Frames() int64 { return w.frames }

// Close finalizes the header and closes the file if the writer owns one.
func (w *WAVWriter) Close() error {
	err := w.enc.Close()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
