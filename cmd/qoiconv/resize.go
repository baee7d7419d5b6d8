package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// parseResize parses a "WxH" flag value into target dimensions.
func parseResize(spec string) (int, int, error) {
	parts := strings.SplitN(spec, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("qoiconv: --resize expects WxH, got %q", spec)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("qoiconv: --resize width: %w", err)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("qoiconv: --resize height: %w", err)
	}
	return w, h, nil
}

// resize scales src to w x h using a Catmull-Rom kernel. This is a CLI-only
// convenience layered entirely on top of the codec: it runs before encoding
// ever sees the image, so it cannot affect the byte-exact QOI opcode stream
// the core encoder produces for whatever pixels it is handed.
func resize(src image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
