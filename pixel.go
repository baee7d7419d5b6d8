package qoi

// Pixel is one RGBA sample. In 3-channel (RGB) mode A is always 255; the
// codec core never distinguishes "no alpha channel" from "alpha always 255".
type Pixel struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// Hash computes the pixel index slot per the QOI 1.0 specification:
// (r*3 + g*5 + b*7 + a*11) mod 64. Each multiplication and the running sum
// wrap modulo 256 in uint8 arithmetic before the final mod 64, which is
// exactly what taking the low six bits of a uint8 sum gives us.
func (p Pixel) Hash() uint8 {
	return (p.R*3 + p.G*5 + p.B*7 + p.A*11) % 64
}

// Equals reports whether two pixels are identical across all four channels.
func (p Pixel) Equals(other Pixel) bool {
	return p.R == other.R && p.G == other.G && p.B == other.B && p.A == other.A
}
