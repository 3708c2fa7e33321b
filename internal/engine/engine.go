// Package engine wires the pipeline end to end: title segment, chart
// animation segment, voice synthesis, audio mixing and final assembly. The
// run is synchronous and single-pass; only the pure per-frame renders fan
// out to a worker pool.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ivlev/series2video/internal/audio"
	"github.com/ivlev/series2video/internal/chart"
	"github.com/ivlev/series2video/internal/config"
	"github.com/ivlev/series2video/internal/frame"
	"github.com/ivlev/series2video/internal/render"
	"github.com/ivlev/series2video/internal/system"
	"github.com/ivlev/series2video/internal/timeseries"
	"github.com/ivlev/series2video/internal/video"
)

// transitionFrames is the crossfade ramp length after a cut.
const transitionFrames = 10

// Synthesizer is the voice collaborator the engine consumes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice config.Voice, outPath string) error
}

// Project is one complete generation run. Outputs land in OutputDir as
// separate named artifacts; intermediate files are retained on failure for
// diagnosis.
type Project struct {
	Config       config.Config
	Series       timeseries.Series
	ChartKind    chart.Kind
	Title        string
	Description  string
	Narration    string
	SourceURL    string
	MusicPath    string
	OutputDir    string
	TitleSeconds float64
	Synth        Synthesizer
	ShowStats    bool
}

// Run executes the pipeline and returns the final artifact path.
func (p *Project) Run(ctx context.Context) (string, error) {
	startTime := time.Now()

	if err := p.Config.Validate(); err != nil {
		return "", err
	}
	if err := system.CheckDependencies(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return "", err
	}

	cfg := p.Config
	w, h, fps := cfg.Resolution.Width, cfg.Resolution.Height, cfg.FPS

	snap := system.Probe()
	workers := cfg.Workers
	if workers <= 0 {
		workers = snap.Workers(w * h * 3)
	}
	fmt.Printf("[*] Resolution: %dx%d @ %d FPS | Workers: %d | Points: %d\n", w, h, fps, workers, len(p.Series))

	fonts, err := chart.NewFontManager("")
	if err != nil {
		return "", err
	}

	titleSeconds := p.TitleSeconds
	if titleSeconds <= 0 {
		titleSeconds = 3
	}

	// Title segment
	renderStart := time.Now()
	titler := &render.Titler{
		Width:      w,
		Height:     h,
		FPS:        fps,
		Background: chart.ParseHexColor(cfg.Colors.TitleBG),
		TextColor:  chart.ParseHexColor(cfg.Colors.Text),
		Fonts:      fonts,
		SourceURL:  p.SourceURL,
	}
	titleSeg, err := p.writeSegment(ctx, "title_screen.mp4", func(sink render.Sink) (int, error) {
		return titler.Sequence(ctx, p.Title, p.Description, titleSeconds, sink)
	})
	if err != nil {
		return "", fmt.Errorf("title sequence: %w", err)
	}
	fmt.Printf("[>] Title segment ready: %d frames\n", titleSeg.FrameCount)

	// Chart animation segment
	animator := &render.Animator{
		Renderer: chart.NewRenderer(chart.Style{
			Width:      w,
			Height:     h,
			Background: cfg.Colors.ChartBG,
			Text:       cfg.Colors.Text,
		}, cfg.Kinds(), chart.NewRasterDrawer(fonts)),
		Transition: frame.NewCompositor(transitionFrames),
		Workers:    workers,
	}
	animSeg, err := p.writeSegment(ctx, "chart_animation.mp4", func(sink render.Sink) (int, error) {
		return animator.Sequence(ctx, p.Series, p.ChartKind, sink)
	})
	if err != nil {
		return "", fmt.Errorf("chart animation: %w", err)
	}
	fmt.Printf("[>] Animation segment ready: %d frames\n", animSeg.FrameCount)
	renderTime := time.Since(renderStart)

	// Voice + music onto one track, sized to the video timeline.
	audioStart := time.Now()
	audioPath, err := p.buildAudio(ctx, titleSeg.Duration()+animSeg.Duration())
	if err != nil {
		return "", err
	}
	audioTime := time.Since(audioStart)

	assembleStart := time.Now()
	finalPath := filepath.Join(p.OutputDir, "final_video.mp4")
	assembler := video.NewAssembler()
	if err := assembler.Assemble(ctx, []video.Segment{titleSeg, animSeg}, audioPath, finalPath, p.OutputDir); err != nil {
		return "", err
	}
	assembleTime := time.Since(assembleStart)

	if p.ShowStats {
		total := time.Since(startTime)
		frames := titleSeg.FrameCount + animSeg.FrameCount
		fmt.Printf(
			"--- [PERFORMANCE REPORT] ---\n"+
				"Total Time: %.2fs\n"+
				"Rendering/Encoding: %.2fs\n"+
				"Audio: %.2fs\n"+
				"Assembly: %.2fs\n"+
				"Effective FPS: %.2f\n"+
				"----------------------------\n",
			total.Seconds(), renderTime.Seconds(), audioTime.Seconds(), assembleTime.Seconds(),
			float64(frames)/total.Seconds(),
		)
	}

	return finalPath, nil
}

// writeSegment opens an encoder stream, runs the sequencer into it and
// closes the stream. The partially written file stays on disk when the
// sequence fails.
func (p *Project) writeSegment(ctx context.Context, name string, seq func(render.Sink) (int, error)) (video.Segment, error) {
	path := filepath.Join(p.OutputDir, name)
	writer, err := video.NewSegmentWriter(ctx, path, p.Config.Resolution.Width, p.Config.Resolution.Height, p.Config.FPS, p.Config.Quality)
	if err != nil {
		return video.Segment{}, err
	}

	if _, err := seq(writer); err != nil {
		writer.Close() // reap the encoder; the partial file is diagnostic
		return video.Segment{}, err
	}
	return writer.Close()
}

// buildAudio synthesizes the voiceover, mixes in the optional music bed and
// writes the combined track as a WAV sized to videoSeconds. Returns "" when
// there is nothing to bind.
func (p *Project) buildAudio(ctx context.Context, videoSeconds float64) (string, error) {
	var tracks []audio.Track

	if p.Narration != "" {
		voicePath := filepath.Join(p.OutputDir, "voiceover.wav")
		if err := p.Synth.Synthesize(ctx, p.Narration, p.Config.Voice, voicePath); err != nil {
			return "", err
		}
		samples, err := audio.DecodeFile(ctx, voicePath, 0)
		if err != nil {
			return "", err
		}
		// Voice mixes at full gain; the configured volume was already
		// applied by the synthesis server.
		voice := audio.Track{Samples: samples, Gain: 1.0}
		tracks = append(tracks, voice)
		fmt.Printf("[>] Voiceover ready: %.1fs\n", voice.Seconds())
	}

	if p.MusicPath != "" {
		bedSeconds, err := system.AudioDuration(p.MusicPath)
		if err != nil {
			return "", fmt.Errorf("probe music %s: %w", p.MusicPath, err)
		}
		// Decode only as much bed as the timeline can hold; the rest of a
		// long track stays on disk instead of passing through the mixer.
		var limit float64
		if bedSeconds > videoSeconds {
			limit = videoSeconds
		}
		samples, err := audio.DecodeFile(ctx, p.MusicPath, limit)
		if err != nil {
			return "", fmt.Errorf("decode music %s: %w", p.MusicPath, err)
		}
		tracks = append(tracks, audio.Track{Samples: samples, Gain: p.Config.MusicVolume})
		fmt.Printf("[>] Music bed: %s (%.1fs)\n", p.MusicPath, bedSeconds)
	}

	if len(tracks) == 0 {
		return "", nil
	}

	target := int(videoSeconds*audio.SampleRate + 0.5)
	mixed, err := audio.Mix(tracks, target)
	if err != nil {
		return "", err
	}

	mixedPath := filepath.Join(p.OutputDir, "mixed_audio.wav")
	if err := audio.WriteWAV(mixedPath, mixed.Samples); err != nil {
		return "", err
	}
	return mixedPath, nil
}
