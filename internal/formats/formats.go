// Package formats decodes audio files into interleaved float32 sample
// streams and encodes resampled output as WAV.
package formats

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Errors returned by the decoders.
var (
	ErrUnsupportedFormat   = errors.New("unsupported audio format")
	ErrNotWAV              = errors.New("not a valid WAV file")
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrInvalidStream       = errors.New("invalid stream parameters")
)

// Source is a decoded stream of interleaved float32 samples in [-1, 1].
type Source interface {
	SampleRate() int
	Channels() int

	// ReadSamples fills dst and returns the number of samples written,
	// or io.EOF once the stream is exhausted.
	ReadSamples(dst []float32) (int, error)

	Close() error
}

// Decoder turns an encoded stream into a Source.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Format identifies a container/codec.
type Format int

const (
	FormatWAV Format = iota
	FormatMP3
	FormatVorbis
)

func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatMP3:
		return "mp3"
	case FormatVorbis:
		return "vorbis"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return FormatWAV, nil
	case ".mp3":
		return FormatMP3, nil
	case ".ogg", ".oga":
		return FormatVorbis, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// DecoderFor returns the decoder for f.
func DecoderFor(f Format) (Decoder, error) {
	switch f {
	case FormatWAV:
		return WAVDecoder{}, nil
	case FormatMP3:
		return MP3Decoder{}, nil
	case FormatVorbis:
		return VorbisDecoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
}

// fileSource closes the underlying file along with the decoded source.
type fileSource struct {
	Source
	file *os.File
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.file.Close())
}

// Open decodes the file at path, choosing the decoder by extension.
// Closing the returned Source closes the file.
func Open(path string) (Source, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	dec, err := DecoderFor(format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return &fileSource{Source: src, file: f}, nil
}

// asReadSeeker returns r as an io.ReadSeeker, buffering it in memory
// when it cannot seek.
func asReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
