//go:build resamplerdebug

package resampler

const protocolChecks = true
