// Package config loads the generation settings document. Explicit file
// values are merged over defaults key-by-key at every nesting level:
// loading unmarshals the YAML document onto a pre-populated defaults
// struct, so overriding voice.rate alone leaves voice.voice_id intact.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/series2video/internal/chart"
)

// Resolution is the output frame size in pixels.
type Resolution struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Colors maps palette roles to hex values.
type Colors struct {
	TitleBG string `yaml:"title_bg"`
	ChartBG string `yaml:"chart_bg"`
	Text    string `yaml:"text"`
}

// Voice holds speech synthesis parameters. It travels with every synthesis
// call; nothing mutates a shared engine.
type Voice struct {
	Rate    int     `yaml:"rate"`   // words per minute
	Volume  float64 `yaml:"volume"` // 0..1 gain
	VoiceID string  `yaml:"voice_id"`
}

// Config is immutable for the lifetime of a generation run. Validate is run
// once at load time, before any rendering or synthesis starts.
type Config struct {
	Resolution  Resolution `yaml:"resolution"`
	FPS         int        `yaml:"fps"`
	ChartTypes  []string   `yaml:"chart_types"`
	Colors      Colors     `yaml:"colors"`
	Voice       Voice      `yaml:"voice"`
	MusicVolume float64    `yaml:"music_volume"`
	Workers     int        `yaml:"workers"` // 0 = derive from the machine
	TTSURL      string     `yaml:"tts_url"`
	Quality     int        `yaml:"quality"` // x264 CRF
}

// Default returns the documented fallback configuration.
func Default() Config {
	return Config{
		Resolution: Resolution{Width: 1280, Height: 720},
		FPS:        24,
		ChartTypes: []string{"line", "bar", "scatter"},
		Colors: Colors{
			TitleBG: "#2c3e50",
			ChartBG: "#ecf0f1",
			Text:    "#ffffff",
		},
		Voice: Voice{
			Rate:    150,
			Volume:  1.0,
			VoiceID: "english",
		},
		MusicVolume: 0.3,
		TTSURL:      "http://localhost:5002",
		Quality:     23,
	}
}

// Load reads the YAML document at path over the defaults. An empty path
// returns the defaults unchanged. Unrecognized keys are ignored.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, &ValidationError{Field: "document", Reason: err.Error()}
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidationError reports a config document that cannot drive a run.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the document once, up front.
func (c Config) Validate() error {
	if c.Resolution.Width <= 0 || c.Resolution.Height <= 0 {
		return &ValidationError{
			Field:  "resolution",
			Reason: fmt.Sprintf("%dx%d: both dimensions must be positive", c.Resolution.Width, c.Resolution.Height),
		}
	}
	if c.FPS <= 0 {
		return &ValidationError{Field: "fps", Reason: fmt.Sprintf("%d: must be positive", c.FPS)}
	}
	if len(c.ChartTypes) == 0 {
		return &ValidationError{Field: "chart_types", Reason: "set must not be empty"}
	}
	for _, t := range c.ChartTypes {
		if _, err := chart.ParseKind(t); err != nil {
			return &ValidationError{Field: "chart_types", Reason: err.Error()}
		}
	}
	for field, hex := range map[string]string{
		"colors.title_bg": c.Colors.TitleBG,
		"colors.chart_bg": c.Colors.ChartBG,
		"colors.text":     c.Colors.Text,
	} {
		if !chart.ValidHexColor(hex) {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a #rrggbb color", hex)}
		}
	}
	if c.Voice.Rate <= 0 {
		return &ValidationError{Field: "voice.rate", Reason: "must be positive"}
	}
	if c.Voice.Volume < 0 {
		return &ValidationError{Field: "voice.volume", Reason: "must not be negative"}
	}
	if c.MusicVolume < 0 {
		return &ValidationError{Field: "music_volume", Reason: "must not be negative"}
	}
	return nil
}

// Kinds returns the configured chart-kind set. Call only after Validate.
func (c Config) Kinds() []chart.Kind {
	kinds := make([]chart.Kind, 0, len(c.ChartTypes))
	for _, t := range c.ChartTypes {
		k, err := chart.ParseKind(t)
		if err != nil {
			continue
		}
		kinds = append(kinds, k)
	}
	return kinds
}
