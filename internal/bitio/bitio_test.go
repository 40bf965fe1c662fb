package bitio

import (
	"bytes"
	"io"
	"testing"
)

func TestWriteReadBitsRoundTrip(t *testing.T) {
	cases := []struct {
		value uint64
		width uint8
	}{
		{0, 1}, {1, 1}, {0b1011, 4}, {0xFF, 8}, {0x1234, 16},
		{0xDEADBEEF, 32}, {1, 64}, {0, 3}, {7, 3},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, c := range cases {
		if err := w.WriteBits(c.value, c.width); err != nil {
			t.Fatalf("WriteBits(%d,%d): %v", c.value, c.width, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r := NewReader(buf.Bytes())
	for _, c := range cases {
		got, err := r.ReadBits(c.width)
		if err != nil {
			t.Fatalf("ReadBits(%d): %v", c.width, err)
		}
		want := c.value & ((1 << c.width) - 1)
		if c.width == 64 {
			want = c.value
		}
		if got != want {
			t.Errorf("ReadBits(%d) = %d, want %d", c.width, got, want)
		}
	}
}

func TestSingleBitRoundTrip(t *testing.T) {
	bits := []bool{true, false, false, true, true, true, false, false, true}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, b := range bits {
		if err := w.WriteBit(b); err != nil {
			t.Fatal(err)
		}
	}
	w.Close()

	r := NewReader(buf.Bytes())
	for i, want := range bits {
		got, err := r.ReadBit()
		if err != nil {
			t.Fatalf("bit %d: %v", i, err)
		}
		if got != want {
			t.Errorf("bit %d = %v, want %v", i, got, want)
		}
	}
}

func TestReadPastEndIsEOF(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteBits(1, 3)
	w.Close()

	r := NewReader(buf.Bytes())
	if _, err := r.ReadBits(8); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestFlushIdempotent(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteBits(0b101, 3)
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	firstLen := buf.Len()
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != firstLen {
		t.Fatalf("second flush changed output length: %d -> %d", firstLen, buf.Len())
	}
}

func TestWriteAfterCloseFails(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Close()
	if err := w.WriteBit(true); err != ErrClosedStream {
		t.Fatalf("expected ErrClosedStream, got %v", err)
	}
}

func TestTrailingByteZeroPadded(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteBits(0b101, 3)
	w.Close()
	if buf.Len() != 1 {
		t.Fatalf("expected 1 byte, got %d", buf.Len())
	}
	if buf.Bytes()[0] != 0b10100000 {
		t.Fatalf("got %08b, want 10100000", buf.Bytes()[0])
	}
}

func TestBitLenIgnoresFlushPadding(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteBits(0b101, 3)
	if w.BitLen() != 3 {
		t.Fatalf("BitLen = %d, want 3", w.BitLen())
	}
	w.Close()
	if w.BitLen() != 3 {
		t.Fatalf("BitLen after Close = %d, want 3 (padding shouldn't count)", w.BitLen())
	}
}

func TestBitPosTracksConsumption(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteBits(0b1011, 4)
	w.WriteBits(0b1, 1)
	w.Close()

	r := NewReader(buf.Bytes())
	if r.BitPos() != 0 {
		t.Fatalf("initial BitPos = %d, want 0", r.BitPos())
	}
	r.ReadBits(4)
	if r.BitPos() != 4 {
		t.Fatalf("BitPos after 4 bits = %d, want 4", r.BitPos())
	}
	r.ReadBit()
	if r.BitPos() != 5 {
		t.Fatalf("BitPos after 1 more bit = %d, want 5", r.BitPos())
	}
}
