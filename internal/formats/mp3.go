package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

const (
	// go-mp3 always produces 16-bit little-endian stereo.
	mp3Channels       = 2
	mp3BytesPerSample = 2
)

// mp3Reader is the part of go-mp3's Decoder the source uses.
type mp3Reader interface {
	Read(p []byte) (int, error)
	SampleRate() int
}

type mp3Source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	pending    int // bytes of an incomplete sample at the front of buf
}

func (s *mp3Source) SampleRate() int { return s.sampleRate }
func (s *mp3Source) Channels() int   { return mp3Channels }
func (s *mp3Source) Close() error    { return nil }

func (s *mp3Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * mp3BytesPerSample
	if cap(s.buf) < need {
		grown := make([]byte, need)
		copy(grown, s.buf[:s.pending])
		s.buf = grown
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf[s.pending:])
	n += s.pending

	samples := n / mp3BytesPerSample
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*mp3BytesPerSample:]))
		dst[i] = float32(v) / fullScale16
	}

	s.pending = copy(s.buf, s.buf[samples*mp3BytesPerSample:n])

	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, io.EOF):
		if samples > 0 {
			return samples, nil
		}
		return 0, io.EOF
	default:
		return samples, fmt.Errorf("decoding mp3: %w", err)
	}
}

// MP3Decoder decodes MPEG-1/2 Layer III with hajimehoshi/go-mp3.
type MP3Decoder struct{}

// Decode parses the first frame header.
func (MP3Decoder) Decode(r io.Reader) (Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decoding mp3: %w", err)
	}
	return newMP3Source(dec), nil
}

func newMP3Source(dec mp3Reader) *mp3Source {
	return &mp3Source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
	}
}
