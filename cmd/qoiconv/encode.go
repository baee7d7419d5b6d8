package main

import (
	"bytes"
	"image"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Aftersol/go-qoi"
)

func newEncodeCmd() *cobra.Command {
	var channels uint8
	var colorspace uint8
	var resizeSpec string

	cmd := &cobra.Command{
		Use:   "encode <in> <out.qoi>",
		Short: "Decode an image the standard library recognizes and re-encode it as QOI",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]

			if channels != 3 && channels != 4 {
				return errors.Errorf("qoiconv: --channels must be 3 or 4, got %d", channels)
			}

			src, err := os.Open(in)
			if err != nil {
				return errors.Wrap(err, "qoiconv encode")
			}
			defer src.Close()

			img, format, err := image.Decode(src)
			if err != nil {
				return errors.Wrapf(err, "qoiconv encode: decoding %s", in)
			}
			logger.Infow("decoded source image", "path", in, "format", format, "bounds", img.Bounds())

			if resizeSpec != "" {
				w, h, err := parseResize(resizeSpec)
				if err != nil {
					return errors.Wrap(err, "qoiconv encode")
				}
				img = resize(img, w, h)
				logger.Infow("resized source image", "width", w, "height", h)
			}

			dst, err := os.Create(out)
			if err != nil {
				return errors.Wrap(err, "qoiconv encode")
			}
			defer dst.Close()

			if channels == 4 {
				var buf bytes.Buffer
				if err := qoi.ImageEncode(&buf, img); err != nil {
					return errors.Wrapf(err, "qoiconv encode: writing %s", out)
				}
				// ImageEncode always tags colorspace 0; the tag is the header's
				// last byte and does not affect the opcodes that follow it.
				data := buf.Bytes()
				data[qoi.HeaderSize-1] = colorspace
				if _, err := dst.Write(data); err != nil {
					return errors.Wrapf(err, "qoiconv encode: writing %s", out)
				}
			} else {
				if err := encodeRGB(dst, img, colorspace); err != nil {
					return errors.Wrapf(err, "qoiconv encode: writing %s", out)
				}
			}
			logger.Infow("wrote qoi stream", "path", out, "channels", channels, "colorspace", colorspace)
			return nil
		},
	}
	cmd.Flags().Uint8VarP(&channels, "channels", "c", 4, "output channel count (3 = RGB, 4 = RGBA)")
	cmd.Flags().Uint8Var(&colorspace, "colorspace", 0, "output colorspace tag (0 = sRGB, 1 = linear)")
	cmd.Flags().StringVar(&resizeSpec, "resize", "", "resize to WxH before encoding (e.g. 800x600)")
	return cmd
}

// encodeRGB drops the alpha channel and writes a 3-channel QOI stream,
// the one shape qoi.ImageEncode (always 4-channel) does not cover.
func encodeRGB(w io.Writer, img image.Image, colorspace uint8) error {
	bounds := img.Bounds()
	desc := qoi.Descriptor{
		Width:      uint32(bounds.Dx()),
		Height:     uint32(bounds.Dy()),
		Channels:   3,
		Colorspace: colorspace,
	}
	pixels := make([]byte, bounds.Dx()*bounds.Dy()*3)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels[i], pixels[i+1], pixels[i+2] = byte(r>>8), byte(g>>8), byte(b>>8)
			i += 3
		}
	}
	data, err := qoi.Encode(desc, pixels)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
