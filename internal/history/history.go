// Package history holds the per-channel input history a FIR resampler
// convolves against.
package history

// mirrorCopies is the number of copies of each frame kept in the buffer.
// The second copy sits numTaps frames after the first so the newest
// numTaps frames always form one contiguous slice.
const mirrorCopies = 2

// FrameHistory is a fixed-capacity ring of the most recent numTaps
// interleaved frames.
//
// Frames are written in reverse: the cursor steps back one frame before each
// write, so Window() yields the newest frame first followed by older ones.
// The buffer never grows and Write never allocates.
type FrameHistory struct {
	data         []float32
	channelCount int
	numTaps      int
	cursor       int // frame index of the newest frame, in [0, numTaps)
}

// New creates a history for channelCount channels and numTaps frames.
// Both values must be positive.
func New(channelCount, numTaps int) *FrameHistory {
	return &FrameHistory{
		data:         make([]float32, mirrorCopies*numTaps*channelCount),
		channelCount: channelCount,
		numTaps:      numTaps,
	}
}

// Write stores one frame of channelCount samples as the newest entry,
// discarding the oldest.
func (h *FrameHistory) Write(frame []float32) {
	h.cursor--
	if h.cursor < 0 {
		h.cursor = h.numTaps - 1
	}

	offset := h.numTaps * h.channelCount
	dest := h.data[h.cursor*h.channelCount:]
	for ch := range h.channelCount {
		sample := frame[ch]
		dest[ch] = sample
		dest[ch+offset] = sample
	}
}

// Window returns the newest numTaps frames, newest first, as a slice of
// numTaps × channelCount interleaved samples. The slice aliases the buffer
// and is only valid until the next Write.
func (h *FrameHistory) Window() []float32 {
	start := h.cursor * h.channelCount
	return h.data[start : start+h.numTaps*h.channelCount]
}

// NumTaps returns the number of frames held.
func (h *FrameHistory) NumTaps() int {
	return h.numTaps
}

// ChannelCount returns the number of samples per frame.
func (h *FrameHistory) ChannelCount() int {
	return h.channelCount
}

// Capacity returns the number of float32 slots backing the history.
func (h *FrameHistory) Capacity() int {
	return len(h.data)
}

// Reset zeroes all frames and rewinds the cursor.
func (h *FrameHistory) Reset() {
	clear(h.data)
	h.cursor = 0
}
