package qoi

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// MagicBytes is the fixed 4-byte marker that opens every QOI stream.
const MagicBytes = "qoif"

// HeaderSize is the length in bytes of the fixed QOI header.
const HeaderSize = 14

// EndMarkerSize is the length in bytes of the fixed QOI end marker.
const EndMarkerSize = 8

// endMarker is the literal 8-byte suffix every encoded stream ends with.
var endMarker = [EndMarkerSize]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Sentinel errors. Callers should compare with errors.Is; the wrapping
// applied at each call site only adds context, it never replaces these.
var (
	ErrNullArgument    = errors.New("qoi: required argument is nil")
	ErrBadMagic        = errors.New("qoi: first four bytes are not the qoif magic")
	ErrStreamTooShort  = errors.New("qoi: stream shorter than the 14-byte header")
	ErrTruncatedStream = errors.New("qoi: stream ended before every pixel was decoded")
)

// Descriptor carries the four fixed fields of a QOI header. Channels and
// colorspace are informational for the caller; they do not change opcode
// semantics.
type Descriptor struct {
	Width      uint32
	Height     uint32
	Channels   uint8
	Colorspace uint8
}

// NewDescriptor returns a zero-valued descriptor, ready for the mutators
// below.
func NewDescriptor() Descriptor {
	return Descriptor{}
}

// SetDimensions sets width and height in pixels.
func (d *Descriptor) SetDimensions(width, height uint32) {
	d.Width = width
	d.Height = height
}

// SetChannels sets the channel count (3 = RGB, 4 = RGBA). Not validated here;
// Encode and Decode reject other values before sizing their buffers.
func (d *Descriptor) SetChannels(channels uint8) {
	d.Channels = channels
}

// SetColorspace sets the colorspace tag (0 = sRGB with linear alpha, 1 = all
// channels linear). Purely informational to the core codec.
func (d *Descriptor) SetColorspace(colorspace uint8) {
	d.Colorspace = colorspace
}

// TotalPixels returns Width*Height as an int, the pixel count both the
// encoder and decoder drive their cursors against.
func (d Descriptor) TotalPixels() int {
	return int(d.Width) * int(d.Height)
}

// WriteHeader writes the 14-byte QOI header for desc into dst[0:14]. dst
// must have at least HeaderSize bytes; sizing it is the caller's
// responsibility.
func WriteHeader(desc Descriptor, dst []byte) {
	dst[0], dst[1], dst[2], dst[3] = 'q', 'o', 'i', 'f'
	binary.BigEndian.PutUint32(dst[4:8], desc.Width)
	binary.BigEndian.PutUint32(dst[8:12], desc.Height)
	dst[12] = desc.Channels
	dst[13] = desc.Colorspace
}

// ReadHeader parses the 14-byte QOI header from the front of src. Channels
// and colorspace are read verbatim with no range validation, matching the
// reference decoder; a caller that needs strictness validates downstream
// (Decode, for one, rejects channel counts other than 3 or 4).
func ReadHeader(src []byte) (Descriptor, error) {
	if src == nil {
		return Descriptor{}, errors.Wrap(ErrNullArgument, "ReadHeader: src")
	}
	if len(src) < HeaderSize {
		return Descriptor{}, errors.Wrapf(ErrStreamTooShort, "ReadHeader: got %d bytes", len(src))
	}
	if src[0] != 'q' || src[1] != 'o' || src[2] != 'i' || src[3] != 'f' {
		return Descriptor{}, errors.Wrapf(ErrBadMagic, "ReadHeader: found %q", src[0:4])
	}
	return Descriptor{
		Width:      binary.BigEndian.Uint32(src[4:8]),
		Height:     binary.BigEndian.Uint32(src[8:12]),
		Channels:   src[12],
		Colorspace: src[13],
	}, nil
}

// AppendEndMarker appends the fixed 8-byte QOI end marker to dst and returns
// the extended slice.
func AppendEndMarker(dst []byte) []byte {
	return append(dst, endMarker[:]...)
}

// VerifyEndMarker reports whether the trailing 8 bytes of stream are the
// canonical QOI end marker. The core decoder never calls this itself (it
// only stops at the end-marker boundary, per the reference); strict callers
// use it to distinguish a well-formed stream from one that simply ran out of
// bytes.
func VerifyEndMarker(stream []byte) error {
	if len(stream) < EndMarkerSize {
		return errors.Wrap(ErrStreamTooShort, "VerifyEndMarker")
	}
	tail := stream[len(stream)-EndMarkerSize:]
	for i, want := range endMarker {
		if tail[i] != want {
			return errors.Errorf("qoi: end marker mismatch, got % x", tail)
		}
	}
	return nil
}
