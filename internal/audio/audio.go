// Package audio holds the PCM track model and the mixer that aligns and
// sums voice and music onto one output track. Everything in the mixing path
// is mono 16-bit at SampleRate; the decoder normalises inputs to that.
package audio

const (
	SampleRate = 44100
	Channels   = 1
)

// Track is a sequence of PCM samples with a gain multiplier and an optional
// start offset (in samples) on the output timeline.
type Track struct {
	Samples []int16
	Gain    float64
	Offset  int
}

// Seconds returns the track's duration at the package sample rate.
func (t Track) Seconds() float64 {
	return float64(len(t.Samples)) / SampleRate
}
