package main

import (
	"os"
	"path/filepath"
	"testing"

	"predcodec/internal/ppmio"
)

func writeGradientPPM(t *testing.T, path string, w, h int) {
	t.Helper()
	pixels := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pixels[y*w+x] = byte((x + y) % 256)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := ppmio.Write(f, &ppmio.Image{Width: w, Height: h, Pixels: pixels}); err != nil {
		t.Fatal(err)
	}
}

func TestEncodeDecodeRoundTripCLI(t *testing.T) {
	dir := t.TempDir()
	inPPM := filepath.Join(dir, "in.ppm")
	enc := filepath.Join(dir, "out.gimg")
	outPPM := filepath.Join(dir, "roundtrip.ppm")
	writeGradientPPM(t, inPPM, 16, 16)

	if code := run([]string{"image_codec", "encode", inPPM, enc, "4", "0", "8"}); code != 0 {
		t.Fatalf("encode exit = %d, want 0", code)
	}
	if code := run([]string{"image_codec", "decode", enc, outPPM}); code != 0 {
		t.Fatalf("decode exit = %d, want 0", code)
	}

	f, err := os.Open(outPPM)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := ppmio.Read(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 16 || img.Height != 16 {
		t.Fatalf("dims = %dx%d, want 16x16", img.Width, img.Height)
	}
}

func TestEncodeAutoSelect(t *testing.T) {
	dir := t.TempDir()
	inPPM := filepath.Join(dir, "in.ppm")
	enc := filepath.Join(dir, "out.gimg")
	writeGradientPPM(t, inPPM, 8, 8)

	if code := run([]string{"image_codec", "encode", inPPM, enc, "-1", "0", "4"}); code != 0 {
		t.Fatalf("auto-select encode exit = %d, want 0", code)
	}
}

func TestRunRejectsBadPredictor(t *testing.T) {
	dir := t.TempDir()
	inPPM := filepath.Join(dir, "in.ppm")
	enc := filepath.Join(dir, "out.gimg")
	writeGradientPPM(t, inPPM, 4, 4)

	if code := run([]string{"image_codec", "encode", inPPM, enc, "9", "0", "4"}); code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
}

func TestRunMissingArgsShowsUsage(t *testing.T) {
	if code := run([]string{"image_codec"}); code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
}
