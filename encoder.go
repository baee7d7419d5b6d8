package qoi

import (
	"github.com/pkg/errors"
)

// Encoder is a streaming QOI encoder: it consumes one pixel at a time, in
// raster order, and appends opcodes to an internal output buffer. It never
// fails on well-formed input; EncodeChunk's error return exists only to
// reject a caller handing it the wrong number of pixel bytes.
type Encoder struct {
	desc        Descriptor
	channels    int
	index       pixelIndex
	prevPixel   Pixel
	pixelCursor int
	totalPixels int
	runCount    uint8
	buf         []byte
}

// NewEncoder allocates a streaming encoder for desc and writes the 14-byte
// header into the returned encoder's output buffer. channels must already be
// 3 or 4 by the time NewEncoder is called; the streaming encoder does not
// validate it (Encode does).
func NewEncoder(desc Descriptor) *Encoder {
	e := &Encoder{
		desc:        desc,
		channels:    int(desc.Channels),
		prevPixel:   Pixel{R: 0, G: 0, B: 0, A: 255},
		totalPixels: desc.TotalPixels(),
		buf:         make([]byte, HeaderSize, HeaderSize+desc.TotalPixels()*(int(desc.Channels)+1)+EndMarkerSize),
	}
	WriteHeader(desc, e.buf[:HeaderSize])
	return e
}

// Done reports whether the encoder has consumed every pixel the descriptor
// promises.
func (e *Encoder) Done() bool {
	return e.pixelCursor >= e.totalPixels
}

// EncodeChunk consumes one pixel, supplied as a 3- or 4-byte tuple matching
// desc.Channels ([R,G,B] or [R,G,B,A]), and appends the opcode(s) the
// pixel-selection decision tree picks for it. Calling EncodeChunk after Done
// returns true is a caller bug that EncodeChunk does not detect: the pixel
// is encoded anyway, and the stream then holds more pixel data than its
// header describes.
func (e *Encoder) EncodeChunk(pixelBytes []byte) error {
	if len(pixelBytes) != e.channels {
		return errors.Errorf("qoi: EncodeChunk expected %d pixel bytes, got %d", e.channels, len(pixelBytes))
	}

	cur := Pixel{R: pixelBytes[0], G: pixelBytes[1], B: pixelBytes[2], A: 255}
	if e.channels == 4 {
		cur.A = pixelBytes[3]
	}

	// Step 1: RUN continuation takes priority over every other opcode.
	if cur.Equals(e.prevPixel) {
		e.runCount++
		e.pixelCursor++
		if e.runCount == maxRun || e.pixelCursor == e.totalPixels {
			e.flushRun()
		}
		return nil
	}

	// Step 2: flush any run accumulated by prior pixels before picking an
	// opcode for the pixel that broke it.
	if e.runCount > 0 {
		e.flushRun()
	}

	// Step 3: INDEX -- the index already holds this exact pixel.
	if e.index.lookup(cur).Equals(cur) {
		e.buf = append(e.buf, opIndex|cur.Hash())
		e.prevPixel = cur
		e.pixelCursor++
		return nil
	}

	// Step 4: the index does not hold cur; record it, then pick the
	// smallest opcode that can express the move from prev to cur.
	e.index.store(cur)

	if e.channels == 4 && cur.A != e.prevPixel.A {
		e.buf = append(e.buf, tagRGBA, cur.R, cur.G, cur.B, cur.A)
		e.prevPixel = cur
		e.pixelCursor++
		return nil
	}

	dr := int8(cur.R - e.prevPixel.R)
	dg := int8(cur.G - e.prevPixel.G)
	db := int8(cur.B - e.prevPixel.B)

	if dr >= -2 && dr <= 1 && dg >= -2 && dg <= 1 && db >= -2 && db <= 1 {
		tag := opDiff | byte(dr+2)<<4 | byte(dg+2)<<2 | byte(db+2)
		e.buf = append(e.buf, tag)
		e.prevPixel = cur
		e.pixelCursor++
		return nil
	}

	drDg := dr - dg
	dbDg := db - dg
	if dg >= -32 && dg <= 31 && drDg >= -8 && drDg <= 7 && dbDg >= -8 && dbDg <= 7 {
		byte0 := opLuma | byte(dg+32)
		byte1 := byte(drDg+8)<<4 | byte(dbDg+8)
		e.buf = append(e.buf, byte0, byte1)
		e.prevPixel = cur
		e.pixelCursor++
		return nil
	}

	// RGB explicit. Alpha is necessarily unchanged here -- the RGBA case
	// above already handled any alpha change.
	e.buf = append(e.buf, tagRGB, cur.R, cur.G, cur.B)
	e.prevPixel = cur
	e.pixelCursor++
	return nil
}

// flushRun appends a RUN opcode for the accumulated run-length (bias -1) and
// resets the counter.
func (e *Encoder) flushRun() {
	e.buf = append(e.buf, opRun|(e.runCount-1))
	e.runCount = 0
}

// Finish appends the 8-byte end marker and returns the complete encoded
// stream. Calling Finish before Done reports true still appends the marker
// but leaves the stream short of every pixel the header promises; that is a
// caller bug, not something Finish can detect.
func (e *Encoder) Finish() []byte {
	return AppendEndMarker(e.buf)
}

// Encode is the convenience entry point over the streaming Encoder: it
// validates desc.Channels and the length of pixels, drives EncodeChunk over
// every pixel in raster order, and returns the complete QOI stream.
func Encode(desc Descriptor, pixels []byte) ([]byte, error) {
	channels := int(desc.Channels)
	if channels != 3 && channels != 4 {
		return nil, errors.Errorf("qoi: Encode: unsupported channel count %d", desc.Channels)
	}
	expected := desc.TotalPixels() * channels
	if len(pixels) != expected {
		return nil, errors.Errorf("qoi: Encode: expected %d bytes of pixel data for %dx%d at %d channels, got %d",
			expected, desc.Width, desc.Height, channels, len(pixels))
	}

	enc := NewEncoder(desc)
	for off := 0; off < len(pixels); off += channels {
		if err := enc.EncodeChunk(pixels[off : off+channels]); err != nil {
			return nil, errors.Wrap(err, "qoi: Encode")
		}
	}
	return enc.Finish(), nil
}
