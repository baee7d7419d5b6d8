package qoi

import (
	"github.com/pkg/errors"
)

// Decoder is a streaming QOI decoder: it reads one opcode at a time from an
// encoded stream and yields reconstructed pixels in raster order.
type Decoder struct {
	desc        Descriptor
	index       pixelIndex
	prevPixel   Pixel
	pixelCursor int
	totalPixels int
	runCount    uint8
	src         []byte
	readCursor  int
}

// NewDecoder allocates a streaming decoder over src, whose first 14 bytes
// are assumed to already be desc's header (the caller parses that header
// itself via ReadHeader; NewDecoder does not re-parse it). src must be at
// least HeaderSize bytes.
func NewDecoder(desc Descriptor, src []byte) (*Decoder, error) {
	if src == nil {
		return nil, errors.Wrap(ErrNullArgument, "NewDecoder: src")
	}
	if len(src) < HeaderSize {
		return nil, errors.Wrapf(ErrStreamTooShort, "NewDecoder: got %d bytes", len(src))
	}
	return &Decoder{
		desc:        desc,
		prevPixel:   Pixel{R: 0, G: 0, B: 0, A: 255},
		totalPixels: desc.TotalPixels(),
		src:         src,
		readCursor:  HeaderSize,
	}, nil
}

// Done reports whether decoding is complete: either every pixel the
// descriptor promises has been produced, or no run is left to expand and the
// read cursor has entered the trailing 8-byte end-marker zone. The decoder
// does not distinguish a well-formed end marker from simply running out of
// bytes -- see VerifyEndMarker for that stricter check.
func (d *Decoder) Done() bool {
	return (d.runCount == 0 && d.readCursor >= len(d.src)-EndMarkerSize) || d.pixelCursor >= d.totalPixels
}

// PixelCursor returns the number of pixels decoded so far, so callers can
// detect a truncated stream (fewer pixels than the header promised).
func (d *Decoder) PixelCursor() int {
	return d.pixelCursor
}

// DecodeChunk reads one opcode (or continues an in-flight run) and returns
// the reconstructed pixel. Calling DecodeChunk after Done returns true is a
// caller bug.
func (d *Decoder) DecodeChunk() Pixel {
	if d.runCount > 0 {
		d.runCount--
		d.pixelCursor++
		return d.prevPixel
	}

	tag := d.src[d.readCursor]
	var px Pixel

	switch {
	case tag == tagRGB:
		px = Pixel{R: d.src[d.readCursor+1], G: d.src[d.readCursor+2], B: d.src[d.readCursor+3], A: d.prevPixel.A}
		d.readCursor += 4

	case tag == tagRGBA:
		px = Pixel{R: d.src[d.readCursor+1], G: d.src[d.readCursor+2], B: d.src[d.readCursor+3], A: d.src[d.readCursor+4]}
		d.readCursor += 5

	case tag&opMask == opIndex:
		px = d.index[tag&runMask]
		d.readCursor++

	case tag&opMask == opDiff:
		dr := int8((tag>>4)&0x03) - 2
		dg := int8((tag>>2)&0x03) - 2
		db := int8(tag&0x03) - 2
		px = Pixel{
			R: d.prevPixel.R + uint8(dr),
			G: d.prevPixel.G + uint8(dg),
			B: d.prevPixel.B + uint8(db),
			A: d.prevPixel.A,
		}
		d.readCursor++

	case tag&opMask == opLuma:
		byte1 := d.src[d.readCursor+1]
		dg := int8(tag&runMask) - 32
		drDg := int8((byte1>>4)&0x0F) - 8
		dbDg := int8(byte1&0x0F) - 8
		px = Pixel{
			R: d.prevPixel.R + uint8(dg) + uint8(drDg),
			G: d.prevPixel.G + uint8(dg),
			B: d.prevPixel.B + uint8(dg) + uint8(dbDg),
			A: d.prevPixel.A,
		}
		d.readCursor += 2

	default: // tag&opMask == opRun
		d.runCount = tag & runMask
		d.readCursor++
		px = d.prevPixel
	}

	// Every non-continuation branch (including RUN and INDEX) re-stores the
	// resulting pixel at its hash slot, matching the reference decoder: for
	// INDEX it is a no-op (the slot already holds this value), for RUN it
	// seeds the slot for the pixel the run is built from, including when a
	// run opens the very first opcode of the image.
	d.index.store(px)
	d.prevPixel = px
	d.pixelCursor++
	return px
}

// Decode parses src's header, validates its channel count, and decodes
// every pixel into a tightly packed buffer ([R,G,B] or [R,G,B,A] per
// descriptor, row-major, no padding). If the stream runs out before every
// pixel is produced, Decode returns the pixels it did manage to decode
// alongside ErrTruncatedStream.
func Decode(src []byte) (Descriptor, []byte, error) {
	desc, err := ReadHeader(src)
	if err != nil {
		return Descriptor{}, nil, errors.Wrap(err, "qoi: Decode")
	}

	channels := int(desc.Channels)
	if channels != 3 && channels != 4 {
		return Descriptor{}, nil, errors.Errorf("qoi: Decode: unsupported channel count %d", desc.Channels)
	}

	dec, err := NewDecoder(desc, src)
	if err != nil {
		return Descriptor{}, nil, errors.Wrap(err, "qoi: Decode")
	}

	out := make([]byte, desc.TotalPixels()*channels)
	for !dec.Done() {
		px := dec.DecodeChunk()
		off := (dec.pixelCursor - 1) * channels
		out[off], out[off+1], out[off+2] = px.R, px.G, px.B
		if channels == 4 {
			out[off+3] = px.A
		}
	}

	if dec.pixelCursor != desc.TotalPixels() {
		return desc, out[:dec.pixelCursor*channels], errors.Wrapf(ErrTruncatedStream,
			"qoi: Decode: decoded %d of %d pixels", dec.pixelCursor, desc.TotalPixels())
	}
	return desc, out, nil
}
