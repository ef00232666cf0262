//go:build !resamplerdebug

package resampler

// protocolChecks enables panics on out-of-order WriteNextFrame/ReadNextFrame
// calls. Build with -tags resamplerdebug to turn them on.
const protocolChecks = false
