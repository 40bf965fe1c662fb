// Package audiocodec implements the audio container format: predictive
// residual coding of 16-bit PCM samples (with an optional lossless mid/side
// stereo transform) entropy-coded with a block-adaptive Golomb coder.
package audiocodec

import (
	"errors"
	"io"

	"predcodec/internal/audiopred"
	"predcodec/internal/bitio"
	"predcodec/internal/blockparam"
	"predcodec/internal/golomb"
)

// Error kinds surfaced by Encode/Decode, per the system's error taxonomy.
var (
	ErrInvalidParameter = errors.New("audiocodec: invalid parameter")
	ErrTruncatedCode    = errors.New("audiocodec: truncated code")
	ErrCorruptCode      = errors.New("audiocodec: corrupt code")
)

// Header is the fixed-size preamble of the .gblk container.
type Header struct {
	SampleRate     uint32
	Channels       uint16
	Frames         uint64
	BlockSamples   uint32
	PredictorOrder uint8
}

// Params configures one Encode call.
type Params struct {
	BlockSamples   uint32 // frames per block
	M              uint32 // 0 = adaptive per block, >0 = fixed
	PredictorOrder uint8  // 0..3
}

// Encode writes samples (interleaved, frame-major) in the given format to w
// as a .gblk container.
func Encode(w io.Writer, sampleRate uint32, channels uint16, samples []int16, p Params) error {
	if p.PredictorOrder > 3 {
		return ErrInvalidParameter
	}
	if p.BlockSamples == 0 {
		return ErrInvalidParameter
	}
	if channels == 0 {
		return ErrInvalidParameter
	}

	frames := uint64(len(samples)) / uint64(channels)

	bw := bitio.NewWriter(w)
	if err := writeHeader(bw, Header{
		SampleRate: sampleRate, Channels: channels, Frames: frames,
		BlockSamples: p.BlockSamples, PredictorOrder: p.PredictorOrder,
	}); err != nil {
		return err
	}

	stereo := channels == 2
	codedChannels := int(channels)

	histories := make([]audiopred.History, codedChannels)

	frameIdx := uint64(0)
	for frameIdx < frames {
		blockFrames := uint64(p.BlockSamples)
		if frameIdx+blockFrames > frames {
			blockFrames = frames - frameIdx
		}

		residuals := make([]int32, 0, blockFrames*uint64(codedChannels))
		for f := uint64(0); f < blockFrames; f++ {
			base := (frameIdx + f) * uint64(channels)
			var coded [2]int32
			if stereo {
				l := samples[base]
				r := samples[base+1]
				mid, side := audiopred.ForwardMidSide(l, r)
				coded[0], coded[1] = int32(mid), int32(side)
			} else {
				for ch := 0; ch < codedChannels; ch++ {
					coded[ch] = int32(samples[base+uint64(ch)])
				}
			}
			for ch := 0; ch < codedChannels; ch++ {
				pred := histories[ch].Predict(int(p.PredictorOrder))
				resid := coded[ch] - pred
				residuals = append(residuals, resid)
				histories[ch].Push(coded[ch])
			}
		}

		blockM := p.M
		if blockM == 0 {
			blockM = blockparam.Compute(residuals)
		}
		if err := bw.WriteBits(uint64(blockM), 16); err != nil {
			return err
		}
		if err := bw.WriteBits(uint64(len(residuals)), 32); err != nil {
			return err
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

		frameIdx += blockFrames
	}

	return bw.Close()
}

// Decode reads a .gblk container from r and returns the decoded format and
// interleaved 16-bit PCM samples.
func Decode(r []byte) (sampleRate uint32, channels uint16, samples []int16, err error) {
	br := bitio.NewReader(r)
	hdr, err := readHeader(br)
	if err != nil {
		return 0, 0, nil, err
	}
	if hdr.Channels == 0 || hdr.PredictorOrder > 3 {
		return 0, 0, nil, ErrCorruptCode
	}

	stereo := hdr.Channels == 2
	codedChannels := int(hdr.Channels)
	histories := make([]audiopred.History, codedChannels)

	out := make([]int16, 0, hdr.Frames*uint64(hdr.Channels))

	var processed uint64
	for processed < hdr.Frames {
		blockM64, err := br.ReadBits(16)
		if err != nil {
			return 0, 0, nil, ErrTruncatedCode
		}
		count64, err := br.ReadBits(32)
		if err != nil {
			return 0, 0, nil, ErrTruncatedCode
		}
		blockM := uint32(blockM64)
		count := uint32(count64)

		if blockM == 0 {
			return 0, 0, nil, ErrCorruptCode
		}
		if count == 0 && processed < hdr.Frames {
			return 0, 0, nil, ErrCorruptCode
		}

		coder, cerr := golomb.New(blockM, golomb.Interleaving)
		if cerr != nil {
			return 0, 0, nil, ErrCorruptCode
		}

		framesInBlock := uint64(count) / uint64(codedChannels)
		coded := make([]int32, 0, 2)
		emitted := 0
		for i := uint32(0); i < count; i++ {
			resid, derr := coder.DecodeSigned(br)
			if derr != nil {
				if errors.Is(derr, golomb.ErrCorruptCode) {
					return 0, 0, nil, ErrCorruptCode
				}
				return 0, 0, nil, ErrTruncatedCode
			}
			ch := int(i) % codedChannels
			pred := histories[ch].Predict(int(hdr.PredictorOrder))
			sample := wrapI16(pred + int32(resid))
			histories[ch].Push(sample)

			coded = append(coded, sample)
			emitted++
			if emitted == codedChannels {
				if stereo {
					l, r := audiopred.InverseMidSide(int16(coded[0]), int16(coded[1]))
					out = append(out, l, r)
				} else {
					for _, c := range coded {
						out = append(out, int16(c))
					}
				}
				coded = coded[:0]
				emitted = 0
			}
		}
		processed += framesInBlock
	}

	return hdr.SampleRate, hdr.Channels, out, nil
}

func writeHeader(bw *bitio.Writer, h Header) error {
	if err := bw.WriteBits(uint64(h.SampleRate), 32); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(h.Channels), 16); err != nil {
		return err
	}
	if err := bw.WriteBits(h.Frames, 64); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(h.BlockSamples), 32); err != nil {
		return err
	}
	return bw.WriteBits(uint64(h.PredictorOrder), 8)
}

func readHeader(br *bitio.Reader) (Header, error) {
	sr, err := br.ReadBits(32)
	if err != nil {
		return Header{}, ErrTruncatedCode
	}
	ch, err := br.ReadBits(16)
	if err != nil {
		return Header{}, ErrTruncatedCode
	}
	frames, err := br.ReadBits(64)
	if err != nil {
		return Header{}, ErrTruncatedCode
	}
	blk, err := br.ReadBits(32)
	if err != nil {
		return Header{}, ErrTruncatedCode
	}
	order, err := br.ReadBits(8)
	if err != nil {
		return Header{}, ErrTruncatedCode
	}
	return Header{
		SampleRate: uint32(sr), Channels: uint16(ch), Frames: frames,
		BlockSamples: uint32(blk), PredictorOrder: uint8(order),
	}, nil
}

// wrapI16 mirrors i16 wraparound arithmetic on the reconstructed sample,
// matching the encoder side where the stored sample already lived in an
// int16.
func wrapI16(v int32) int32 {
	return int32(int16(v))
}
