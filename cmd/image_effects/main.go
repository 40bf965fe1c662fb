// Command image_effects applies a single demo transform to a binary PPM
// (P5) grayscale image: negative, mirror, rotate, or brightness adjustment.
package main

import (
	"fmt"
	"os"
	"strconv"

	"predcodec/internal/effects"
	"predcodec/internal/ppmio"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: image_effects <effect> <input.ppm> <output.ppm> [amount]")
	fmt.Fprintln(os.Stderr, "\nEffects:")
	fmt.Fprintln(os.Stderr, "  negative              Invert every pixel")
	fmt.Fprintln(os.Stderr, "  mirror <h|v>          Mirror horizontally or vertically (amount = h or v)")
	fmt.Fprintln(os.Stderr, "  rotate <90|180|270>   Rotate clockwise by a multiple of 90 degrees")
	fmt.Fprintln(os.Stderr, "  brightness <delta>    Add delta to every pixel, clamped to [0,255]")
}

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) < 4 {
		usage()
		return 1
	}

	effect := args[0+1]
	inFile, outFile := args[2], args[3]
	amount := ""
	if len(args) > 4 {
		amount = args[4]
	}

	in, err := os.Open(inFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening input file:", err)
		return 2
	}
	img, err := ppmio.Read(in)
	in.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading PPM:", err)
		return 2
	}

	var result *ppmio.Image
	switch effect {
	case "negative":
		result = effects.Negative(img)
	case "mirror":
		switch amount {
		case "h", "":
			result = effects.MirrorHorizontal(img)
		case "v":
			result = effects.MirrorVertical(img)
		default:
			fmt.Fprintln(os.Stderr, "Error: mirror amount must be 'h' or 'v'")
			return 1
		}
	case "rotate":
		degrees, err := strconv.Atoi(amount)
		if err != nil || degrees%90 != 0 {
			fmt.Fprintln(os.Stderr, "Error: rotate amount must be a multiple of 90")
			return 1
		}
		result = effects.RotateMultiple90(img, degrees/90)
	case "brightness":
		delta, err := strconv.Atoi(amount)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error: brightness requires an integer amount")
			return 1
		}
		result = effects.AdjustBrightness(img, delta)
	default:
		fmt.Fprintf(os.Stderr, "Error: Unknown effect '%s'\n", effect)
		usage()
		return 1
	}

	out, err := os.Create(outFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening output file:", err)
		return 2
	}
	defer out.Close()

	if err := ppmio.Write(out, result); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing PPM:", err)
		return 2
	}
	return 0
}
