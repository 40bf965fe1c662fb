// Package ppmio reads and writes binary PPM P5 (grayscale) images, the
// format the image codec operates on. No suitable third-party library exists
// for this small format, so it is hand-parsed, matching the reference
// implementation's own `ifs >> magic >> width >> height >> maxval` approach.
package ppmio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrUnsupportedFormat is returned for anything other than P5 with maxval
// 255.
var ErrUnsupportedFormat = errors.New("ppmio: unsupported format (need P5, maxval 255)")

// Image is a row-major 8-bit grayscale bitmap.
type Image struct {
	Width, Height int
	Pixels        []byte // len == Width*Height
}

// Read parses a P5 PPM from r.
func Read(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, err
	}
	if magic != "P5" {
		return nil, ErrUnsupportedFormat
	}

	width, err := readIntToken(br)
	if err != nil {
		return nil, err
	}
	height, err := readIntToken(br)
	if err != nil {
		return nil, err
	}
	maxval, err := readIntToken(br)
	if err != nil {
		return nil, err
	}
	if maxval != 255 {
		return nil, ErrUnsupportedFormat
	}
	// The single whitespace byte after maxval separates header from the raw
	// pixel payload; readIntToken already consumed it as a trailing
	// delimiter, so the reader is positioned at the first pixel byte.

	pixels := make([]byte, width*height)
	if _, err := io.ReadFull(br, pixels); err != nil {
		return nil, fmt.Errorf("ppmio: reading pixel data: %w", err)
	}

	return &Image{Width: width, Height: height, Pixels: pixels}, nil
}

// Write emits img as a P5 PPM to w.
func Write(w io.Writer, img *Image) error {
	if _, err := fmt.Fprintf(w, "P5\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return err
	}
	_, err := w.Write(img.Pixels)
	return err
}

// readToken reads a whitespace-delimited token, skipping '#' comments per
// the PPM header convention.
func readToken(br *bufio.Reader) (string, error) {
	var b []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		if isSpace(c) {
			if len(b) == 0 {
				continue
			}
			break
		}
		if c == '#' {
			for {
				c2, err := br.ReadByte()
				if err != nil {
					return "", err
				}
				if c2 == '\n' {
					break
				}
			}
			if len(b) > 0 {
				break
			}
			continue
		}
		b = append(b, c)
	}
	return string(b), nil
}

func readIntToken(br *bufio.Reader) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, err
	}
	var n int
	if _, err := fmt.Sscanf(tok, "%d", &n); err != nil {
		return 0, fmt.Errorf("ppmio: invalid header token %q: %w", tok, err)
	}
	return n, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
