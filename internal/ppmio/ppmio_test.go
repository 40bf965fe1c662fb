package ppmio

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	img := &Image{
		Width: 3, Height: 2,
		Pixels: []byte{10, 20, 30, 40, 50, 60},
	}
	var buf bytes.Buffer
	if err := Write(&buf, img); err != nil {
		t.Fatal(err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != img.Width || got.Height != img.Height {
		t.Fatalf("dims = %dx%d, want %dx%d", got.Width, got.Height, img.Width, img.Height)
	}
	if !bytes.Equal(got.Pixels, img.Pixels) {
		t.Fatalf("pixels = %v, want %v", got.Pixels, img.Pixels)
	}
}

func TestRejectsWrongMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("P6\n3 2\n255\n")
	buf.Write([]byte{1, 2, 3, 4, 5, 6})
	if _, err := Read(&buf); err != ErrUnsupportedFormat {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestRejectsWrongMaxval(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("P5\n3 2\n65535\n")
	buf.Write([]byte{1, 2, 3, 4, 5, 6})
	if _, err := Read(&buf); err != ErrUnsupportedFormat {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSkipsCommentLine(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("P5\n# a comment\n2 2\n255\n")
	buf.Write([]byte{1, 2, 3, 4})
	got, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != 2 || got.Height != 2 {
		t.Fatalf("dims = %dx%d, want 2x2", got.Width, got.Height)
	}
}
