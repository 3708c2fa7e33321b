// Package speech is the voice-synthesis collaborator: given text and voice
// parameters, fetch a PCM audio asset from a TTS server. The client is
// stateless - voice settings travel with every call, so repeated or
// concurrent invocations cannot race on shared engine properties.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ivlev/series2video/internal/config"
)

// SynthesisError reports an upstream voice-generation failure, including a
// server that answered with empty audio.
type SynthesisError struct {
	Reason string
	Err    error
}

func (e *SynthesisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("speech synthesis: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("speech synthesis: %s", e.Reason)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// Client talks to a TTS HTTP server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a synthesis client for the given server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
}

type synthesizeRequest struct {
	Text    string  `json:"text"`
	Rate    int     `json:"rate"`
	Volume  float64 `json:"volume"`
	VoiceID string  `json:"voice_id"`
}

// Synthesize posts the narration text with its voice parameters and writes
// the returned audio asset to outPath.
func (c *Client) Synthesize(ctx context.Context, text string, voice config.Voice, outPath string) error {
	body, err := json.Marshal(synthesizeRequest{
		Text:    text,
		Rate:    voice.Rate,
		Volume:  voice.Volume,
		VoiceID: voice.VoiceID,
	})
	if err != nil {
		return &SynthesisError{Reason: "marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/tts", bytes.NewReader(body))
	if err != nil {
		return &SynthesisError{Reason: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &SynthesisError{Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &SynthesisError{Reason: fmt.Sprintf("server returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return &SynthesisError{Reason: "read audio", Err: err}
	}
	if len(audio) == 0 {
		return &SynthesisError{Reason: "server returned empty audio"}
	}

	if err := os.WriteFile(outPath, audio, 0644); err != nil {
		return &SynthesisError{Reason: "write audio asset", Err: err}
	}
	return nil
}
