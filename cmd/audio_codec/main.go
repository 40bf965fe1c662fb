// Command audio_codec encodes 16-bit PCM WAV files to the predictive Golomb
// container and back.
package main

import (
	"fmt"
	"os"
	"strconv"

	"predcodec/internal/audiocodec"
	"predcodec/internal/wavio"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  Encode: audio_codec encode <input.wav> <output.gblk> <blockSamples> <m> <predictorOrder> [-v]")
	fmt.Fprintln(os.Stderr, "  Decode: audio_codec decode <input.gblk> <output.wav> [-v]")
	fmt.Fprintln(os.Stderr, "\nParameters:")
	fmt.Fprintln(os.Stderr, "  blockSamples    : Frames per block (e.g., 4096)")
	fmt.Fprintln(os.Stderr, "  m               : Golomb parameter (0=adaptive, >0=fixed)")
	fmt.Fprintln(os.Stderr, "  predictorOrder  : 0=none, 1=s[n-1], 2=2*s[n-1]-s[n-2], 3=3*s[n-1]-3*s[n-2]+s[n-3]")
	fmt.Fprintln(os.Stderr, "  -v              : Verbose mode")
}

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) < 3 {
		usage()
		return 1
	}

	cmd := args[1]
	verbose := false
	for _, a := range args[1:] {
		if a == "-v" {
			verbose = true
		}
	}

	switch cmd {
	case "encode":
		if len(args) < 7 {
			fmt.Fprintln(os.Stderr, "Error: Encode requires 5 parameters + optional -v")
			usage()
			return 1
		}
		inWav, outFile := args[2], args[3]
		blockSamples, err1 := strconv.ParseUint(args[4], 10, 32)
		m, err2 := strconv.ParseUint(args[5], 10, 32)
		predictorOrder, err3 := strconv.ParseUint(args[6], 10, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			fmt.Fprintln(os.Stderr, "Error: invalid numeric parameter")
			return 1
		}
		if predictorOrder > 3 {
			fmt.Fprintf(os.Stderr, "Error: predictorOrder must be 0-3 (got %d)\n", predictorOrder)
			return 1
		}
		if !encode(inWav, outFile, uint32(blockSamples), uint32(m), uint8(predictorOrder), verbose) {
			return 2
		}
		return 0

	case "decode":
		if len(args) < 4 {
			fmt.Fprintln(os.Stderr, "Error: Decode requires 2 parameters + optional -v")
			usage()
			return 1
		}
		if !decode(args[2], args[3], verbose) {
			return 2
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Error: Unknown command '%s'\n", cmd)
		usage()
		return 1
	}
}

func encode(inWav, outFile string, blockSamples, m uint32, predictorOrder uint8, verbose bool) bool {
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
	if verbose {
		fmt.Printf("Sample rate: %d Hz\n", format.SampleRate)
		fmt.Printf("Channels: %d\n", format.Channels)
	}

	out, err := os.Create(outFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening output file:", err)
		return false
	}
	defer out.Close()

	err = audiocodec.Encode(out, uint32(format.SampleRate), uint16(format.Channels), samples, audiocodec.Params{
		BlockSamples: blockSamples, M: m, PredictorOrder: predictorOrder,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error encoding:", err)
		return false
	}
	if verbose {
		fmt.Println("Encoding complete.")
	}
	return true
}

func decode(inFile, outWav string, verbose bool) bool {
	data, err := os.ReadFile(inFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening input file:", err)
		return false
	}

	sampleRate, channels, samples, err := audiocodec.Decode(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error decoding:", err)
		return false
	}
	if verbose {
		fmt.Printf("Sample rate: %d Hz\n", sampleRate)
		fmt.Printf("Channels: %d\n", channels)
	}

	out, err := os.Create(outWav)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening output file:", err)
		return false
	}
	defer out.Close()

	if err := wavio.Write(out, wavio.Format{SampleRate: int(sampleRate), Channels: int(channels)}, samples); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing WAV:", err)
		return false
	}
	if verbose {
		fmt.Println("Decoding complete.")
	}
	return true
}
