// wav.go - Minimal RIFF/WAVE writer for the mixed output track
// (PCM s16le, mono). Hand-written chunk layout, no container library.
package audio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// WriteWAV persists samples as a PCM WAV file at the package sample rate.
func WriteWAV(path string, samples []int16) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	dataSize := uint32(len(samples) * 2)
	byteRate := uint32(SampleRate * Channels * 2)
	blockAlign := uint16(Channels * 2)

	writeFourCC := func(s string) { w.WriteString(s) }
	writeU32 := func(v uint32) { binary.Write(w, binary.LittleEndian, v) }
	writeU16 := func(v uint16) { binary.Write(w, binary.LittleEndian, v) }

	// === RIFF header ===
	writeFourCC("RIFF")
	writeU32(36 + dataSize) // rest of file
	writeFourCC("WAVE")

	// === fmt chunk (PCM) ===
	writeFourCC("fmt ")
	writeU32(16)
	writeU16(1) // audio format: PCM
	writeU16(Channels)
	writeU32(SampleRate)
	writeU32(byteRate)
	writeU16(blockAlign)
	writeU16(16) // bits per sample

	// === data chunk ===
	writeFourCC("data")
	writeU32(dataSize)
	binary.Write(w, binary.LittleEndian, samples)

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Sync()
}
