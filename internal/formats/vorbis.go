package formats

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the part of oggvorbis.Reader the source uses. Read returns
// the number of values decoded, always a multiple of Channels().
type oggReader interface {
	SampleRate() int
	Channels() int
	Read(p []float32) (int, error)
}

type vorbisSource struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *vorbisSource) SampleRate() int { return s.sampleRate }
func (s *vorbisSource) Channels() int   { return s.channels }
func (s *vorbisSource) Close() error    { return nil }

func (s *vorbisSource) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / s.channels
	if frames == 0 {
		return 0, nil
	}

	samples, err := s.dec.Read(dst[:frames*s.channels])

	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, io.EOF):
		if samples > 0 {
			return samples, nil
		}
		return 0, io.EOF
	default:
		return samples, fmt.Errorf("decoding vorbis: %w", err)
	}
}

// VorbisDecoder decodes Ogg Vorbis with jfreymuth/oggvorbis.
type VorbisDecoder struct{}

// Decode reads the Vorbis headers.
func (VorbisDecoder) Decode(r io.Reader) (Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding vorbis: %w", err)
	}
	return newVorbisSource(dec)
}

func newVorbisSource(dec oggReader) (*vorbisSource, error) {
	if dec.Channels() < 1 || dec.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: rate=%d channels=%d", ErrInvalidStream, dec.SampleRate(), dec.Channels())
	}
	return &vorbisSource{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
