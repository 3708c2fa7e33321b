package audio

import "testing"

func constTrack(seconds float64, value int16, gain float64) Track {
	samples := make([]int16, int(seconds*SampleRate))
	for i := range samples {
		samples[i] = value
	}
	return Track{Samples: samples, Gain: gain}
}

func TestTrackSeconds(t *testing.T) {
	if got := constTrack(2, 1, 1.0).Seconds(); got != 2.0 {
		t.Errorf("Seconds = %g, want 2.0", got)
	}
	if got := (Track{}).Seconds(); got != 0 {
		t.Errorf("Seconds = %g, want 0", got)
	}
}

func TestMixVoicePlusMusic(t *testing.T) {
	// 10s voice at full gain, 15s music at 0.3, target 10s: music is
	// truncated, no error, output is exactly 10s of samples.
	voice := constTrack(10, 10000, 1.0)
	music := constTrack(15, 10000, 0.3)

	out, err := Mix([]Track{voice, music}, 10*SampleRate)
	if err != nil {
		t.Fatalf("Mix: %v", err)
	}
	if len(out.Samples) != 10*SampleRate {
		t.Fatalf("len = %d, want %d", len(out.Samples), 10*SampleRate)
	}
	if out.Samples[0] != 13000 {
		t.Errorf("sample = %d, want 13000 (10000 + 10000*0.3)", out.Samples[0])
	}
	if out.Samples[len(out.Samples)-1] != 13000 {
		t.Errorf("last sample = %d, want 13000", out.Samples[len(out.Samples)-1])
	}
}

func TestMixPadsShortTracks(t *testing.T) {
	voice := constTrack(1, 5000, 1.0)

	out, err := Mix([]Track{voice}, 2*SampleRate)
	if err != nil {
		t.Fatalf("Mix: %v", err)
	}
	if len(out.Samples) != 2*SampleRate {
		t.Fatalf("len = %d, want %d", len(out.Samples), 2*SampleRate)
	}
	if out.Samples[SampleRate/2] != 5000 {
		t.Errorf("voiced region = %d, want 5000", out.Samples[SampleRate/2])
	}
	if out.Samples[SampleRate+100] != 0 {
		t.Errorf("padded region = %d, want silence", out.Samples[SampleRate+100])
	}
}

func TestMixClampsInsteadOfWrapping(t *testing.T) {
	a := constTrack(0.01, 30000, 1.0)
	b := constTrack(0.01, 30000, 1.0)

	out, err := Mix([]Track{a, b}, len(a.Samples))
	if err != nil {
		t.Fatalf("Mix: %v", err)
	}
	if out.Samples[0] != 32767 {
		t.Errorf("sample = %d, want clamped 32767", out.Samples[0])
	}

	neg := constTrack(0.01, -30000, 1.0)
	out, err = Mix([]Track{neg, neg}, len(neg.Samples))
	if err != nil {
		t.Fatalf("Mix: %v", err)
	}
	if out.Samples[0] != -32768 {
		t.Errorf("sample = %d, want clamped -32768", out.Samples[0])
	}
}

func TestMixRejectsNegativeGain(t *testing.T) {
	if _, err := Mix([]Track{constTrack(0.01, 100, -1.0)}, 100); err == nil {
		t.Error("expected error for negative gain")
	}
}

func TestMixDefaultTargetIsLongestTrack(t *testing.T) {
	short := constTrack(0.5, 100, 1.0)
	long := constTrack(1.5, 100, 1.0)

	out, err := Mix([]Track{short, long}, 0)
	if err != nil {
		t.Fatalf("Mix: %v", err)
	}
	if len(out.Samples) != len(long.Samples) {
		t.Errorf("len = %d, want %d (longest track)", len(out.Samples), len(long.Samples))
	}
}

func TestMixHonorsOffset(t *testing.T) {
	tr := Track{Samples: []int16{1000, 1000}, Gain: 1.0, Offset: 3}

	out, err := Mix([]Track{tr}, 6)
	if err != nil {
		t.Fatalf("Mix: %v", err)
	}
	want := []int16{0, 0, 0, 1000, 1000, 0}
	for i, v := range want {
		if out.Samples[i] != v {
			t.Errorf("sample %d = %d, want %d", i, out.Samples[i], v)
		}
	}
}
