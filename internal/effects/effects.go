// Package effects implements small pixel-level demo transforms over
// grayscale bitmaps: negative, mirror, rotate, and brightness adjustment.
package effects

import "predcodec/internal/ppmio"

// Negative inverts every pixel (255 - value).
func Negative(img *ppmio.Image) *ppmio.Image {
	out := make([]byte, len(img.Pixels))
	for i, v := range img.Pixels {
		out[i] = 255 - v
	}
	return &ppmio.Image{Width: img.Width, Height: img.Height, Pixels: out}
}

// MirrorHorizontal flips the image left-right.
func MirrorHorizontal(img *ppmio.Image) *ppmio.Image {
	w, h := img.Width, img.Height
	out := make([]byte, len(img.Pixels))
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			out[row*w+col] = img.Pixels[row*w+(w-1-col)]
		}
	}
	return &ppmio.Image{Width: w, Height: h, Pixels: out}
}

// MirrorVertical flips the image top-bottom.
func MirrorVertical(img *ppmio.Image) *ppmio.Image {
	w, h := img.Width, img.Height
	out := make([]byte, len(img.Pixels))
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			out[row*w+col] = img.Pixels[(h-1-row)*w+col]
		}
	}
	return &ppmio.Image{Width: w, Height: h, Pixels: out}
}

// Rotate90 rotates the image 90 degrees clockwise.
func Rotate90(img *ppmio.Image) *ppmio.Image {
	w, h := img.Width, img.Height
	out := make([]byte, len(img.Pixels))
	newW, newH := h, w
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			out[col*newW+(h-1-row)] = img.Pixels[row*w+col]
		}
	}
	return &ppmio.Image{Width: newW, Height: newH, Pixels: out}
}

// RotateMultiple90 applies Rotate90 n times (n mod 4, always non-negative).
func RotateMultiple90(img *ppmio.Image, n int) *ppmio.Image {
	n = ((n % 4) + 4) % 4
	cur := img
	for i := 0; i < n; i++ {
		cur = Rotate90(cur)
	}
	return cur
}

// AdjustBrightness adds delta to every pixel, clamped to [0,255].
func AdjustBrightness(img *ppmio.Image, delta int) *ppmio.Image {
	out := make([]byte, len(img.Pixels))
	for i, v := range img.Pixels {
		val := int(v) + delta
		if val < 0 {
			val = 0
		} else if val > 255 {
			val = 255
		}
		out[i] = byte(val)
	}
	return &ppmio.Image{Width: img.Width, Height: img.Height, Pixels: out}
}
