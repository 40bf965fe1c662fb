// Command lossy_audio runs the secondary, intentionally lossy audio path:
// blockwise DCT with psychoacoustic quantization. Input WAVs are downmixed
// to mono on encode; decode always produces a mono WAV.
package main

import (
	"bytes"
	"fmt"
	"os"

	"predcodec/internal/bitio"
	"predcodec/internal/lossydct"
	"predcodec/internal/wavio"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  Encode: lossy_audio encode <input.wav> <output.dct>")
	fmt.Fprintln(os.Stderr, "  Decode: lossy_audio decode <input.dct> <output.wav>")
	fmt.Fprintln(os.Stderr, "\nNote: stereo input is downmixed to mono on encode.")
}

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) < 4 {
		usage()
		return 1
	}

	switch args[1] {
	case "encode":
		if !encode(args[2], args[3]) {
			return 2
		}
		return 0
	case "decode":
		if !decode(args[2], args[3]) {
			return 2
		}
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Error: Unknown command '%s'\n", args[1])
		usage()
		return 1
	}
}

func encode(inWav, outFile string) bool {
	in, err := os.Open(inWav)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening input file:", err)
		return false
	}
	defer in.Close()

	format, samples, err := wavio.Read(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading WAV:", err)
		return false
	}

	mono := downmix(samples, format.Channels)

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if err := lossydct.Encode(w, uint32(format.SampleRate), mono); err != nil {
		fmt.Fprintln(os.Stderr, "Error encoding:", err)
		return false
	}

	if err := os.WriteFile(outFile, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing output file:", err)
		return false
	}
	return true
}

func decode(inFile, outWav string) bool {
	data, err := os.ReadFile(inFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening input file:", err)
		return false
	}

	r := bitio.NewReader(data)
	sampleRate, samples, err := lossydct.Decode(r)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error decoding:", err)
		return false
	}

	out, err := os.Create(outWav)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening output file:", err)
		return false
	}
	defer out.Close()

	format := wavio.Format{SampleRate: int(sampleRate), Channels: 1}
	if err := wavio.Write(out, format, samples); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing WAV:", err)
		return false
	}
	return true
}

// downmix averages interleaved multi-channel samples down to mono.
func downmix(samples []int16, channels int) []int16 {
	if channels <= 1 {
		return samples
	}
	frames := len(samples) / channels
	out := make([]int16, frames)
	for f := 0; f < frames; f++ {
		var sum int32
		for c := 0; c < channels; c++ {
			sum += int32(samples[f*channels+c])
		}
		out[f] = int16(sum / int32(channels))
	}
	return out
}
