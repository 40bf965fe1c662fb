// Package golomb implements truncated-binary Golomb/Rice coding of
// integers, with two strategies for handling negative numbers.
package golomb

import (
	"errors"
	"math/bits"

	"predcodec/internal/bitio"
)

// ErrInvalidParameter is returned when the Golomb parameter m is 0.
var ErrInvalidParameter = errors.New("golomb: m must be greater than 0")

// ErrTruncatedCode is returned when the bit source runs out mid-code.
var ErrTruncatedCode = errors.New("golomb: truncated code")

// ErrCorruptCode is returned when a decoded unary quotient exceeds the
// runaway sanity cap, a strong signal the stream is corrupt rather than
// merely short.
var ErrCorruptCode = errors.New("golomb: corrupt code (quotient runaway)")

// maxQuotient bounds the unary quotient a decode will accept before it gives
// up and reports corruption instead of spinning on a bad stream. Matches the
// reference decoder's cap exactly. As a design limit, this also caps the
// largest decodable unsigned value at maxQuotient*m + (m-1).
const maxQuotient = 100000

// Mode selects how signed integers are mapped onto the unsigned domain the
// core Golomb code operates on.
type Mode int

const (
	// Interleaving maps {0,+1,-1,+2,-2,...} to {0,1,2,3,4,...}. This is the
	// default used by the audio and image codecs.
	Interleaving Mode = iota
	// SignMagnitude codes one leading sign bit followed by the unsigned
	// magnitude. Used only by the standalone Golomb CLI.
	SignMagnitude
)

// Coder encodes and decodes signed integers with a fixed Golomb parameter m
// and a chosen negative-number Mode.
type Coder struct {
	m    uint32
	b    uint32 // ceil(log2(m)); 0 when m == 1
	t    uint32 // cutoff = 2^b - m
	mode Mode
}

// New constructs a Coder for parameter m (must be > 0).
func New(m uint32, mode Mode) (*Coder, error) {
	if m == 0 {
		return nil, ErrInvalidParameter
	}
	b := ceilLog2(m)
	t := (uint32(1) << b) - m
	return &Coder{m: m, b: b, t: t, mode: mode}, nil
}

func ceilLog2(m uint32) uint32 {
	if m == 1 {
		return 0
	}
	return uint32(bits.Len32(m - 1))
}

// M returns the current Golomb parameter.
func (c *Coder) M() uint32 { return c.m }

// SetM changes the Golomb parameter in place, recomputing b and t.
func (c *Coder) SetM(m uint32) error {
	if m == 0 {
		return ErrInvalidParameter
	}
	c.m = m
	c.b = ceilLog2(m)
	c.t = (uint32(1) << c.b) - m
	return nil
}

// foldSigned maps a signed value to the unsigned domain per c.mode.
func (c *Coder) foldSigned(v int64) (u uint64, sign bool) {
	switch c.mode {
	case SignMagnitude:
		if v < 0 {
			return uint64(-v), true
		}
		return uint64(v), false
	default: // Interleaving
		if v >= 0 {
			return uint64(v) * 2, false
		}
		return uint64(-v)*2 - 1, false
	}
}

// unfoldSigned reverses foldSigned.
func (c *Coder) unfoldSigned(u uint64, sign bool) int64 {
	switch c.mode {
	case SignMagnitude:
		if sign && u != 0 {
			return -int64(u)
		}
		// sign with magnitude 0 decodes as +0, matching the reference.
		return int64(u)
	default: // Interleaving
		if u%2 == 0 {
			return int64(u / 2)
		}
		return -int64((u + 1) / 2)
	}
}

// EncodeSigned writes a signed integer to w using the Coder's current mode
// and parameter.
func (c *Coder) EncodeSigned(w *bitio.Writer, v int64) error {
	u, sign := c.foldSigned(v)
	if c.mode == SignMagnitude {
		if err := w.WriteBit(sign); err != nil {
			return err
		}
	}
	return c.EncodeUnsigned(w, u)
}

// DecodeSigned reads a signed integer from r.
func (c *Coder) DecodeSigned(r *bitio.Reader) (int64, error) {
	var sign bool
	if c.mode == SignMagnitude {
		b, err := r.ReadBit()
		if err != nil {
			return 0, translateEOF(err)
		}
		sign = b
	}
	u, err := c.DecodeUnsigned(r)
	if err != nil {
		return 0, err
	}
	return c.unfoldSigned(u, sign), nil
}

// EncodeUnsigned writes the Golomb code for a non-negative integer u.
func (c *Coder) EncodeUnsigned(w *bitio.Writer, u uint64) error {
	q := u / uint64(c.m)
	r := u % uint64(c.m)

	for ; q > 0; q-- {
		if err := w.WriteBit(false); err != nil {
			return err
		}
	}
	if err := w.WriteBit(true); err != nil {
		return err
	}

	if c.b == 0 {
		return nil
	}
	if r < uint64(c.t) {
		if c.b == 1 {
			// b-1 == 0 bits: the remainder field is empty, and r must be 0
			// here since t == 0 whenever b == 1.
			return nil
		}
		return w.WriteBits(r, uint8(c.b-1))
	}
	return w.WriteBits(r+uint64(c.t), uint8(c.b))
}

// DecodeUnsigned reads one Golomb code and returns the unsigned value.
func (c *Coder) DecodeUnsigned(r *bitio.Reader) (uint64, error) {
	var q uint64
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, translateEOF(err)
		}
		if bit {
			break
		}
		q++
		if q > maxQuotient {
			return 0, ErrCorruptCode
		}
	}

	if c.b == 0 {
		return q * uint64(c.m), nil
	}

	var rem uint64
	if c.b > 1 {
		var err error
		rem, err = r.ReadBits(uint8(c.b - 1))
		if err != nil {
			return 0, translateEOF(err)
		}
	}
	if rem < uint64(c.t) {
		return q*uint64(c.m) + rem, nil
	}
	extra, err := r.ReadBit()
	if err != nil {
		return 0, translateEOF(err)
	}
	full := (rem << 1)
	if extra {
		full |= 1
	}
	return q*uint64(c.m) + full - uint64(c.t), nil
}

func translateEOF(err error) error {
	if err != nil {
		return ErrTruncatedCode
	}
	return nil
}
