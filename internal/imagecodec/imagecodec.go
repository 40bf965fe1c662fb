// Package imagecodec implements the image container format: predictive
// residual coding of 8-bit grayscale pixels entropy-coded with a
// block-adaptive Golomb coder, including optional predictor auto-selection.
package imagecodec

import (
	"bytes"
	"errors"
	"io"

	"predcodec/internal/bitio"
	"predcodec/internal/blockparam"
	"predcodec/internal/golomb"
	"predcodec/internal/imagepred"
)

const magic = 0x47494D47 // "GIMG"

// Error kinds surfaced by Encode/Decode.
var (
	ErrInvalidParameter = errors.New("imagecodec: invalid parameter")
	ErrTruncatedCode    = errors.New("imagecodec: truncated code")
	ErrCorruptCode      = errors.New("imagecodec: corrupt code")
)

// AutoSelect requests that Encode try every predictor and keep the smallest
// result. The winning predictor id is written into the file header; it is
// not reported back to the caller.
const AutoSelect = -1

// Params configures one Encode call.
type Params struct {
	Predictor int    // 0..8, or AutoSelect
	M         uint32 // 0 = adaptive per block, 1..255 = fixed
	BlockSize uint32 // pixels per block; 0 means "one row" (resolved to width)
}

// Encode compresses a grayscale bitmap (row-major, 8-bit) to w.
func Encode(w io.Writer, width, height int, pixels []byte, p Params) error {
	if p.Predictor != AutoSelect && !imagepred.Valid(p.Predictor) {
		return ErrInvalidParameter
	}
	if p.M > 255 {
		return ErrInvalidParameter
	}
	blockSize := p.BlockSize
	if blockSize == 0 {
		blockSize = uint32(width)
	}

	if p.Predictor == AutoSelect {
		var best []byte
		for id := 0; id < imagepred.Count; id++ {
			var buf bytes.Buffer
			if err := encodeWithPredictor(&buf, width, height, pixels, imagepred.ID(id), p.M, blockSize); err != nil {
				return err
			}
			if best == nil || buf.Len() < len(best) {
				best = buf.Bytes()
			}
		}
		_, err := w.Write(best)
		return err
	}

	return encodeWithPredictor(w, width, height, pixels, imagepred.ID(p.Predictor), p.M, blockSize)
}

func encodeWithPredictor(w io.Writer, width, height int, pixels []byte, id imagepred.ID, m uint32, blockSize uint32) error {
	bw := bitio.NewWriter(w)
	if err := bw.WriteBits(magic, 32); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(width), 32); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(height), 32); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(id), 8); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(m), 8); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(blockSize), 32); err != nil {
		return err
	}

	total := width * height
	pixelAt := func(x, y int) int {
		if x < 0 || y < 0 {
			return 0
		}
		return int(pixels[y*width+x])
	}

	pos := 0
	for pos < total {
		n := int(blockSize)
		if pos+n > total {
			n = total - pos
		}

		residuals := make([]int32, n)
		for i := 0; i < n; i++ {
			idx := pos + i
			x, y := idx%width, idx/width
			var a, b, c int
			if x > 0 {
				a = pixelAt(x-1, y)
			}
			if y > 0 {
				b = pixelAt(x, y-1)
			}
			if x > 0 && y > 0 {
				c = pixelAt(x-1, y-1)
			}
			pred := imagepred.Predict(id, a, b, c)
			residuals[i] = int32(int(pixels[idx]) - pred)
		}

		blockM := m
		if blockM == 0 {
			computed := blockparam.Compute(residuals)
			computed = blockparam.Clamp(computed, 1, 4096)
			blockM = blockparam.Clamp(computed, 1, 255)
			if err := bw.WriteBits(uint64(blockM), 8); err != nil {
				return err
			}
		}

		coder, err := golomb.New(blockM, golomb.Interleaving)
		if err != nil {
			return ErrInvalidParameter
		}
		for _, r := range residuals {
			if err := coder.EncodeSigned(bw, int64(r)); err != nil {
				return err
			}
		}

		pos += n
	}

	return bw.Close()
}

// Decode decompresses a .gimg container into a grayscale bitmap.
func Decode(data []byte) (width, height int, pixels []byte, err error) {
	br := bitio.NewReader(data)

	magicRead, err := br.ReadBits(32)
	if err != nil {
		return 0, 0, nil, ErrTruncatedCode
	}
	if magicRead != magic {
		return 0, 0, nil, ErrCorruptCode
	}
	w64, err := br.ReadBits(32)
	if err != nil {
		return 0, 0, nil, ErrTruncatedCode
	}
	h64, err := br.ReadBits(32)
	if err != nil {
		return 0, 0, nil, ErrTruncatedCode
	}
	predByte, err := br.ReadBits(8)
	if err != nil {
		return 0, 0, nil, ErrTruncatedCode
	}
	mFlag, err := br.ReadBits(8)
	if err != nil {
		return 0, 0, nil, ErrTruncatedCode
	}
	blockSize64, err := br.ReadBits(32)
	if err != nil {
		return 0, 0, nil, ErrTruncatedCode
	}

	width, height = int(w64), int(h64)
	if !imagepred.Valid(int(predByte)) {
		return 0, 0, nil, ErrCorruptCode
	}
	id := imagepred.ID(predByte)
	blockSize := uint32(blockSize64)
	if blockSize == 0 {
		return 0, 0, nil, ErrCorruptCode
	}

	total := width * height
	out := make([]byte, total)
	pixelAt := func(x, y int) int {
		if x < 0 || y < 0 {
			return 0
		}
		return int(out[y*width+x])
	}

	pos := 0
	for pos < total {
		n := int(blockSize)
		if pos+n > total {
			n = total - pos
		}

		var blockM uint32
		if mFlag == 0 {
			m8, err := br.ReadBits(8)
			if err != nil {
				return 0, 0, nil, ErrTruncatedCode
			}
			blockM = uint32(m8)
			if blockM == 0 {
				return 0, 0, nil, ErrCorruptCode
			}
		} else {
			blockM = uint32(mFlag)
		}

		coder, cerr := golomb.New(blockM, golomb.Interleaving)
		if cerr != nil {
			return 0, 0, nil, ErrCorruptCode
		}

		for i := 0; i < n; i++ {
			idx := pos + i
			x, y := idx%width, idx/width
			var a, b, c int
			if x > 0 {
				a = pixelAt(x-1, y)
			}
			if y > 0 {
				b = pixelAt(x, y-1)
			}
			if x > 0 && y > 0 {
				c = pixelAt(x-1, y-1)
			}
			pred := imagepred.Predict(id, a, b, c)

			resid, derr := coder.DecodeSigned(br)
			if derr != nil {
				if errors.Is(derr, golomb.ErrCorruptCode) {
					return 0, 0, nil, ErrCorruptCode
				}
				return 0, 0, nil, ErrTruncatedCode
			}

			px := pred + int(resid)
			out[idx] = clamp8(px)
		}

		pos += n
	}

	return width, height, out, nil
}

func clamp8(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
