package qoi

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/pkg/errors"
)

// RegisterFormat registers the QOI codec with the standard image package
// under the format name "qoi", so image.Decode and image.DecodeConfig
// recognize QOI streams automatically once this package is imported and
// RegisterFormat has been called. It is not called automatically on import:
// callers that want the codec available to image.Decode opt in explicitly,
// the same way the teacher's own tests and CLI driver did.
func RegisterFormat() {
	image.RegisterFormat("qoi", MagicBytes, ImageDecode, DecodeConfig)
}

// DecodeConfig reads just enough of r to report an image's dimensions and
// color model, without decoding any pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return image.Config{}, errors.Wrap(err, "qoi: DecodeConfig")
	}
	desc, err := ReadHeader(buf)
	if err != nil {
		return image.Config{}, errors.Wrap(err, "qoi: DecodeConfig")
	}
	return image.Config{
		Width:      int(desc.Width),
		Height:     int(desc.Height),
		ColorModel: color.NRGBAModel,
	}, nil
}

// ImageDecode decodes a full QOI stream into an image.Image. RGB (3
// channel) streams are decoded with alpha forced to 255, matching the
// core decoder's own convention.
func ImageDecode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "qoi: ImageDecode")
	}
	desc, pixels, err := Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, "qoi: ImageDecode")
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(desc.Width), int(desc.Height)))
	channels := int(desc.Channels)
	for i := 0; i < desc.TotalPixels(); i++ {
		off := i * channels
		dstOff := i * 4
		img.Pix[dstOff] = pixels[off]
		img.Pix[dstOff+1] = pixels[off+1]
		img.Pix[dstOff+2] = pixels[off+2]
		if channels == 4 {
			img.Pix[dstOff+3] = pixels[off+3]
		} else {
			img.Pix[dstOff+3] = 255
		}
	}
	return img, nil
}

// imageToNRGBA converts an arbitrary image.Image to *image.NRGBA via the
// standard library's image/draw, the same conversion the teacher's own
// encoder used for non-NRGBA sources.
func imageToNRGBA(src image.Image) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

// nrgbaToQOI packs an *image.NRGBA into a 4-channel, sRGB-colorspace QOI
// stream.
func nrgbaToQOI(m *image.NRGBA) ([]byte, error) {
	bounds := m.Bounds()
	desc := Descriptor{
		Width:      uint32(bounds.Dx()),
		Height:     uint32(bounds.Dy()),
		Channels:   4,
		Colorspace: 0,
	}
	if m.Stride == bounds.Dx()*4 {
		return Encode(desc, m.Pix[:bounds.Dx()*bounds.Dy()*4])
	}
	// Non-contiguous source (cropped sub-image): repack row by row.
	packed := make([]byte, bounds.Dx()*bounds.Dy()*4)
	for y := 0; y < bounds.Dy(); y++ {
		srcOff := y * m.Stride
		dstOff := y * bounds.Dx() * 4
		copy(packed[dstOff:dstOff+bounds.Dx()*4], m.Pix[srcOff:srcOff+bounds.Dx()*4])
	}
	return Encode(desc, packed)
}

// ImageEncode encodes m as a QOI stream and writes it to w.
func ImageEncode(w io.Writer, m image.Image) error {
	nrgba, ok := m.(*image.NRGBA)
	if !ok {
		nrgba = imageToNRGBA(m)
	}
	data, err := nrgbaToQOI(nrgba)
	if err != nil {
		return errors.Wrap(err, "qoi: ImageEncode")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "qoi: ImageEncode")
	}
	return nil
}
