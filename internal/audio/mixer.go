package audio

import "fmt"

// Mix sums the tracks sample-wise with their gains applied onto one output
// track of exactly targetSamples samples. Tracks longer than the target are
// truncated; shorter ones are silence-padded, so the result always matches
// the video duration it accompanies. targetSamples 0 means "duration of the
// longest track" (offset included).
//
// Summation happens in float64 and the result is clamped - not wrapped - to
// the int16 range. Clipping is lossy but ordinary gain setups (voice at
// full gain plus music at reduced gain) must mix without error, so clamping
// never fails; only a negative gain does.
func Mix(tracks []Track, targetSamples int) (Track, error) {
	for i, t := range tracks {
		if t.Gain < 0 {
			return Track{}, fmt.Errorf("track %d: negative gain %g", i, t.Gain)
		}
	}

	if targetSamples <= 0 {
		for _, t := range tracks {
			if end := t.Offset + len(t.Samples); end > targetSamples {
				targetSamples = end
			}
		}
	}

	sum := make([]float64, targetSamples)
	for _, t := range tracks {
		for i, s := range t.Samples {
			pos := t.Offset + i
			if pos < 0 {
				continue
			}
			if pos >= targetSamples {
				break // truncate past the target duration
			}
			sum[pos] += float64(s) * t.Gain
		}
	}

	out := make([]int16, targetSamples)
	for i, v := range sum {
		switch {
		case v > 32767:
			out[i] = 32767
		case v < -32768:
			out[i] = -32768
		default:
			out[i] = int16(v)
		}
	}

	return Track{Samples: out, Gain: 1.0}, nil
}
