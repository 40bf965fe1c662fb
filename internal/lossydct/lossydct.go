// Package lossydct implements the secondary, intentionally lossy audio path:
// blockwise DCT-II with energy-adaptive psychoacoustic quantization, and its
// DCT-III inverse. Unlike internal/audiocodec, no bit-exact round-trip is
// asserted for this path.
package lossydct

import (
	"math"

	"predcodec/internal/bitio"
)

// BlockSize is the fixed DCT block length in mono samples.
const BlockSize = 1024

// BaseQuantization is the nominal quantization step before psychoacoustic
// weighting and energy adaptation are applied.
const BaseQuantization = 0.002

// Header is the fixed preamble of the .dct container.
type Header struct {
	SampleRate uint32
	Frames     uint32
	BlockSize  uint16
	QuantFixed uint32 // BaseQuantization * 1e6, stored as a fixed-point integer
}

// dct computes the DCT-II of input, the same orthonormal convention as the
// reference (scale sqrt(1/N) for k=0, sqrt(2/N) otherwise).
func dct(input []float64) []float64 {
	n := len(input)
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		var sum float64
		scale := math.Sqrt(2.0 / float64(n))
		if k == 0 {
			scale = math.Sqrt(1.0 / float64(n))
		}
		for i, v := range input {
			sum += v * math.Cos(math.Pi*float64(k)*(float64(i)+0.5)/float64(n))
		}
		out[k] = sum * scale
	}
	return out
}

// idct computes the DCT-III with the same orthonormal scaling as dct, which
// makes it the exact inverse of dct's DCT-II.
func idct(input []float64) []float64 {
	n := len(input)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for k, v := range input {
			scale := math.Sqrt(2.0 / float64(n))
			if k == 0 {
				scale = math.Sqrt(1.0 / float64(n))
			}
			sum += scale * v * math.Cos(math.Pi*float64(k)*(float64(i)+0.5)/float64(n))
		}
		out[i] = sum
	}
	return out
}

// getWeight returns the psychoacoustic weight for coefficient index within a
// block of the given size: lower frequencies are quantized more finely.
func getWeight(index, blockSize int) float64 {
	ratio := float64(index) / float64(blockSize)
	switch {
	case ratio < 0.1:
		return 0.5
	case ratio < 0.3:
		return 1.0
	case ratio < 0.5:
		return 1.5
	default:
		return 2.5
	}
}

func calculateEnergy(block []float64) float64 {
	var energy float64
	for _, v := range block {
		energy += v * v
	}
	return math.Sqrt(energy / float64(len(block)))
}

func quantizeWeighted(coeffs []float64, baseStep, energyFactor float64) []int32 {
	out := make([]int32, len(coeffs))
	for i, c := range coeffs {
		step := baseStep * getWeight(i, len(coeffs)) * energyFactor
		out[i] = int32(math.Round(c / step))
	}
	return out
}

func dequantizeWeighted(q []int32, baseStep, energyFactor float64) []float64 {
	out := make([]float64, len(q))
	for i, v := range q {
		step := baseStep * getWeight(i, len(q)) * energyFactor
		out[i] = float64(v) * step
	}
	return out
}

// Encode writes mono 16-bit PCM samples to w as a .dct container.
func Encode(w *bitio.Writer, sampleRate uint32, samples []int16) error {
	frames := uint32(len(samples))
	if err := w.WriteBits(uint64(sampleRate), 32); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(frames), 32); err != nil {
		return err
	}
	if err := w.WriteBits(BlockSize, 16); err != nil {
		return err
	}
	quantFixed := uint32(BaseQuantization * 1_000_000)
	if err := w.WriteBits(uint64(quantFixed), 32); err != nil {
		return err
	}

	buf := make([]float64, BlockSize)
	for pos := 0; pos < len(samples); pos += BlockSize {
		for i := range buf {
			if pos+i < len(samples) {
				buf[i] = float64(samples[pos+i]) / 32768.0
			} else {
				buf[i] = 0
			}
		}

		energy := calculateEnergy(buf)
		energyFactor := math.Max(0.5, math.Min(2.0, energy*10.0))

		coeffs := dct(buf)
		quantized := quantizeWeighted(coeffs, BaseQuantization, energyFactor)

		energyEnc := uint16(energyFactor * 1000)
		if err := w.WriteBits(uint64(energyEnc), 16); err != nil {
			return err
		}

		for _, coeff := range quantized {
			sign := coeff < 0
			if sign {
				coeff = -coeff
			}
			if err := w.WriteBit(sign); err != nil {
				return err
			}

			bitsNeeded := bitLength(coeff)
			if bitsNeeded == 0 {
				bitsNeeded = 1
			}
			if bitsNeeded > 20 {
				bitsNeeded = 20
			}
			if err := w.WriteBits(uint64(bitsNeeded), 5); err != nil {
				return err
			}
			if err := w.WriteBits(uint64(coeff), uint8(bitsNeeded)); err != nil {
				return err
			}
		}
	}

	return w.Close()
}

// Decode reads a .dct container and returns the sample rate and
// reconstructed (lossy) mono 16-bit PCM samples.
func Decode(r *bitio.Reader) (sampleRate uint32, samples []int16, err error) {
	sr, err := r.ReadBits(32)
	if err != nil {
		return 0, nil, err
	}
	totalFrames, err := r.ReadBits(32)
	if err != nil {
		return 0, nil, err
	}
	blockSize, err := r.ReadBits(16)
	if err != nil {
		return 0, nil, err
	}
	quantFixed, err := r.ReadBits(32)
	if err != nil {
		return 0, nil, err
	}
	baseQuant := float64(quantFixed) / 1_000_000.0

	out := make([]int16, 0, totalFrames)
	quantized := make([]int32, blockSize)

	var framesWritten uint64
	for framesWritten < totalFrames {
		energyEnc, err := r.ReadBits(16)
		if err != nil {
			break
		}
		if energyEnc == 0 {
			break
		}
		energyFactor := float64(energyEnc) / 1000.0

		eofReached := false
		for i := uint64(0); i < blockSize; i++ {
			sign, err := r.ReadBit()
			if err != nil {
				eofReached = true
				break
			}
			bitsNeeded, err := r.ReadBits(5)
			if err != nil {
				eofReached = true
				break
			}
			if bitsNeeded == 0 {
				bitsNeeded = 1
			}
			magnitude, err := r.ReadBits(uint8(bitsNeeded))
			if err != nil {
				eofReached = true
				break
			}
			if sign {
				quantized[i] = -int32(magnitude)
			} else {
				quantized[i] = int32(magnitude)
			}
		}
		if eofReached {
			break
		}

		coeffs := dequantizeWeighted(quantized, baseQuant, energyFactor)
		recon := idct(coeffs)

		toWrite := uint64(blockSize)
		if totalFrames-framesWritten < toWrite {
			toWrite = totalFrames - framesWritten
		}
		for i := uint64(0); i < toWrite; i++ {
			s := recon[i]
			if s > 1.0 {
				s = 1.0
			}
			if s < -1.0 {
				s = -1.0
			}
			out = append(out, int16(s*32767))
		}
		framesWritten += toWrite
	}

	return uint32(sr), out, nil
}

func bitLength(v int32) int {
	n := 0
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}
