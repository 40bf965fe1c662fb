package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"predcodec/internal/wavio"
)

func writeTestWav(t *testing.T, path string, channels int) {
	t.Helper()
	frames := 4096
	samples := make([]int16, frames*channels)
	for i := range samples {
		samples[i] = int16(6000 * math.Sin(float64(i)*0.05))
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := wavio.Write(f, wavio.Format{SampleRate: 22050, Channels: channels}, samples); err != nil {
		t.Fatal(err)
	}
}

func TestEncodeDecodeRoundTripMono(t *testing.T) {
	dir := t.TempDir()
	inWav := filepath.Join(dir, "in.wav")
	enc := filepath.Join(dir, "out.dct")
	outWav := filepath.Join(dir, "roundtrip.wav")
	writeTestWav(t, inWav, 1)

	if code := run([]string{"lossy_audio", "encode", inWav, enc}); code != 0 {
		t.Fatalf("encode exit = %d, want 0", code)
	}
	if code := run([]string{"lossy_audio", "decode", enc, outWav}); code != 0 {
		t.Fatalf("decode exit = %d, want 0", code)
	}

	f, err := os.Open(outWav)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	format, samples, err := wavio.Read(f)
	if err != nil {
		t.Fatal(err)
	}
	if format.SampleRate != 22050 || format.Channels != 1 {
		t.Fatalf("format = %+v, want 22050/1", format)
	}
	if len(samples) != 4096 {
		t.Fatalf("got %d samples, want 4096", len(samples))
	}
}

func TestEncodeDownmixesStereo(t *testing.T) {
	dir := t.TempDir()
	inWav := filepath.Join(dir, "in.wav")
	enc := filepath.Join(dir, "out.dct")
	writeTestWav(t, inWav, 2)

	if code := run([]string{"lossy_audio", "encode", inWav, enc}); code != 0 {
		t.Fatalf("encode exit = %d, want 0", code)
	}
}

func TestRunMissingArgsShowsUsage(t *testing.T) {
	if code := run([]string{"lossy_audio"}); code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
}
