package qoi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	qoi "github.com/Aftersol/go-qoi"
)

func TestPixelHashRange(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 23 {
			for b := 0; b < 256; b += 29 {
				for a := 0; a < 256; a += 31 {
					p := qoi.Pixel{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}
					h := p.Hash()
					assert.LessOrEqualf(t, h, uint8(63), "hash out of range for %+v", p)
				}
			}
		}
	}
}

func TestPixelHashKnownValues(t *testing.T) {
	tests := []struct {
		name string
		p    qoi.Pixel
		want uint8
	}{
		{"zero", qoi.Pixel{0, 0, 0, 0}, 0},
		{"initial prev pixel", qoi.Pixel{0, 0, 0, 255}, (255 * 11) % 64},
		{"scenario 5 first pixel", qoi.Pixel{0x10, 0x20, 0x30, 0xFF}, 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Hash())
		})
	}
}

func TestPixelEquals(t *testing.T) {
	a := qoi.Pixel{R: 1, G: 2, B: 3, A: 4}
	b := qoi.Pixel{R: 1, G: 2, B: 3, A: 4}
	c := qoi.Pixel{R: 1, G: 2, B: 3, A: 5}

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
