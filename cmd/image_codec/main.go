// Command image_codec encodes binary PPM (P5) grayscale images to the
// predictive Golomb container and back.
package main

import (
	"fmt"
	"os"
	"strconv"

	"predcodec/internal/imagecodec"
	"predcodec/internal/ppmio"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  Encode: image_codec encode <input.ppm> <output.gimg> <predictor> <m> <blockSize> [-v] [-auto]")
	fmt.Fprintln(os.Stderr, "  Decode: image_codec decode <input.gimg> <output.ppm> [-v]")
	fmt.Fprintln(os.Stderr, "\nPredictors (JPEG lossless modes 1-7 + JPEG-LS):")
	fmt.Fprintln(os.Stderr, "  0 = NONE, 1 = LEFT, 2 = UP, 3 = UP_LEFT, 4 = a+b-c,")
	fmt.Fprintln(os.Stderr, "  5 = a+(b-c)/2, 6 = b+(a-c)/2, 7 = (a+b)/2, 8 = JPEG-LS")
	fmt.Fprintln(os.Stderr, "  -1 = AUTO (test all and pick best)")
	fmt.Fprintln(os.Stderr, "\nParameters:")
	fmt.Fprintln(os.Stderr, "  m          : Golomb parameter (0 = adaptive, >0 = fixed)")
	fmt.Fprintln(os.Stderr, "  blockSize  : Block size for adaptive m (0 = per-row, >0 = per block)")
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
	verbose, autoSelect := false, false
	for _, a := range args[1:] {
		if a == "-v" {
			verbose = true
		}
		if a == "-auto" {
			autoSelect = true
		}
	}

	switch cmd {
	case "encode":
		if len(args) < 7 {
			fmt.Fprintln(os.Stderr, "Error: Encode requires 5 parameters + optional -v/-auto")
			usage()
			return 1
		}
		inputImage, outputFile := args[2], args[3]
		predictorNum, err1 := strconv.Atoi(args[4])
		m, err2 := strconv.ParseUint(args[5], 10, 32)
		blockSize, err3 := strconv.ParseUint(args[6], 10, 32)
		if err1 != nil || err2 != nil || err3 != nil {
			fmt.Fprintln(os.Stderr, "Error: invalid numeric parameter")
			return 1
		}

		if predictorNum == -1 || autoSelect {
			autoSelect = true
			predictorNum = imagecodec.AutoSelect
		}
		if predictorNum != imagecodec.AutoSelect && (predictorNum < 0 || predictorNum > 8) {
			fmt.Fprintln(os.Stderr, "Error: Invalid predictor (must be -1 to 8)")
			return 1
		}

		if !encode(inputImage, outputFile, predictorNum, uint32(m), uint32(blockSize), verbose) {
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

func encode(inputImage, outputFile string, predictor int, m, blockSize uint32, verbose bool) bool {
	in, err := os.Open(inputImage)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening input file:", err)
		return false
	}
	defer in.Close()

	img, err := ppmio.Read(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading PPM:", err)
		return false
	}
	if verbose {
		fmt.Printf("Image: %dx%d\n", img.Width, img.Height)
	}

	out, err := os.Create(outputFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening output file:", err)
		return false
	}
	defer out.Close()

	err = imagecodec.Encode(out, img.Width, img.Height, img.Pixels, imagecodec.Params{
		Predictor: predictor, M: m, BlockSize: blockSize,
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

func decode(inputFile, outputImage string, verbose bool) bool {
	data, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening input file:", err)
		return false
	}

	width, height, pixels, err := imagecodec.Decode(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error decoding:", err)
		return false
	}
	if verbose {
		fmt.Printf("Image: %dx%d\n", width, height)
	}

	out, err := os.Create(outputImage)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening output file:", err)
		return false
	}
	defer out.Close()

	if err := ppmio.Write(out, &ppmio.Image{Width: width, Height: height, Pixels: pixels}); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing PPM:", err)
		return false
	}
	if verbose {
		fmt.Println("Decoding complete.")
	}
	return true
}
