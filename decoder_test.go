package qoi_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qoi "github.com/Aftersol/go-qoi"
)

func TestDecodeSingleBlackPixel(t *testing.T) {
	desc := qoi.Descriptor{Width: 1, Height: 1, Channels: 3, Colorspace: 0}
	stream := append(header(1, 1, 3, 0), 0xC0)
	stream = append(stream, endMarker...)

	gotDesc, pixels, err := qoi.Decode(stream)
	require.NoError(t, err)
	assert.Equal(t, desc, gotDesc)
	assert.Equal(t, []byte{0, 0, 0}, pixels)
}

func TestDecodeTwoDistinctPixels(t *testing.T) {
	stream := append(header(2, 1, 3, 0), 0xFE, 0x10, 0x20, 0x30, 0xC0)
	stream = append(stream, endMarker...)

	_, pixels, err := qoi.Decode(stream)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x10, 0x20, 0x30, 0x10, 0x20, 0x30}, pixels)
}

func TestDecodeRGBAAlphaChange(t *testing.T) {
	stream := append(header(1, 1, 4, 0), 0xFF, 0xFF, 0x00, 0x00, 0x80)
	stream = append(stream, endMarker...)

	_, pixels, err := qoi.Decode(stream)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0x00, 0x00, 0x80}, pixels)
}

func TestDecodeIndexHit(t *testing.T) {
	pixel1 := qoi.Pixel{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}
	slot := pixel1.Hash()

	stream := append(header(3, 1, 3, 0), 0xFE, 0x10, 0x20, 0x30, 0xFE, 200, 10, 90, 0x00|slot)
	stream = append(stream, endMarker...)

	_, pixels, err := qoi.Decode(stream)
	require.NoError(t, err)
	want := []byte{
		0x10, 0x20, 0x30,
		200, 10, 90,
		0x10, 0x20, 0x30,
	}
	assert.Equal(t, want, pixels)
}

func TestDecodeTruncatedStream(t *testing.T) {
	// header promises 2 pixels but the payload only ever produces 1.
	stream := append(header(2, 1, 3, 0), 0xC0)
	stream = append(stream, endMarker...)

	_, pixels, err := qoi.Decode(stream)
	require.Error(t, err)
	assert.ErrorIs(t, err, qoi.ErrTruncatedStream)
	assert.Equal(t, []byte{0, 0, 0}, pixels)
}

func TestEncodeDecodeRoundTripRGB(t *testing.T) {
	desc := qoi.Descriptor{Width: 8, Height: 8, Channels: 3, Colorspace: 0}
	pixels := make([]byte, 8*8*3)
	for i := range pixels {
		pixels[i] = byte((i * 37) % 256)
	}
	// Repeat the first three pixels twice later on so the stream mixes INDEX
	// hits in with the RGB opcodes.
	copy(pixels[3*3:], pixels[:3*3])
	copy(pixels[3*10:], pixels[:3*3])

	encoded, err := qoi.Encode(desc, pixels)
	require.NoError(t, err)

	gotDesc, decoded, err := qoi.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, desc, gotDesc)
	if diff := cmp.Diff(pixels, decoded); diff != "" {
		t.Fatalf("decoded pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeRoundTripRGBA(t *testing.T) {
	desc := qoi.Descriptor{Width: 6, Height: 6, Channels: 4, Colorspace: 1}
	pixels := make([]byte, 6*6*4)
	for i := range pixels {
		pixels[i] = byte((i * 53) % 256)
	}

	encoded, err := qoi.Encode(desc, pixels)
	require.NoError(t, err)

	gotDesc, decoded, err := qoi.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, desc, gotDesc)
	assert.Equal(t, pixels, decoded)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	bad := []byte{'p', 'n', 'g', '!', 0, 0, 0, 1, 0, 0, 0, 1, 3, 0, 0xC0}
	bad = append(bad, endMarker...)
	_, _, err := qoi.Decode(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, qoi.ErrBadMagic)
}

func TestDecodeRejectsUnsupportedChannels(t *testing.T) {
	stream := append(header(1, 1, 5, 0), 0xC0)
	stream = append(stream, endMarker...)
	_, _, err := qoi.Decode(stream)
	assert.Error(t, err)
}

func TestDecoderDoneStopsAtEndMarkerZone(t *testing.T) {
	desc := qoi.Descriptor{Width: 1, Height: 1, Channels: 3, Colorspace: 0}
	stream := append(header(1, 1, 3, 0), 0xC0)
	stream = append(stream, endMarker...)

	dec, err := qoi.NewDecoder(desc, stream)
	require.NoError(t, err)
	assert.False(t, dec.Done())
	dec.DecodeChunk()
	assert.True(t, dec.Done())
	assert.Equal(t, 1, dec.PixelCursor())
}
