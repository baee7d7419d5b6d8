package main

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Aftersol/go-qoi"
)

func newDecodeCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "decode <in.qoi> <out>",
		Short: "Decode a QOI file and write it out via the standard library (PNG unless <out>'s extension says otherwise)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]

			data, err := os.ReadFile(in)
			if err != nil {
				return errors.Wrap(err, "qoiconv decode")
			}

			if strict {
				if err := qoi.VerifyEndMarker(data); err != nil {
					return errors.Wrapf(err, "qoiconv decode: %s", in)
				}
			}

			img, err := qoi.ImageDecode(bytes.NewReader(data))
			if err != nil {
				return errors.Wrapf(err, "qoiconv decode: %s", in)
			}
			logger.Infow("decoded qoi stream", "path", in, "bounds", img.Bounds())

			dstFile, err := os.Create(out)
			if err != nil {
				return errors.Wrap(err, "qoiconv decode")
			}
			defer dstFile.Close()

			if err := encodeByExtension(dstFile, out, img); err != nil {
				return errors.Wrapf(err, "qoiconv decode: writing %s", out)
			}
			logger.Infow("wrote output image", "path", out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "verify the trailing 8-byte end marker before decoding")
	return cmd
}

// encodeByExtension writes img using the standard image encoder matching
// out's extension, defaulting to PNG.
func encodeByExtension(w *os.File, out string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(out)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, nil)
	default:
		return png.Encode(w, img)
	}
}
