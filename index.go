package qoi

// pixelIndex is the 64-slot table of recently seen pixels shared by the
// encoder and decoder state machines. Every slot starts at the zero Pixel
// {0,0,0,0} -- note that this differs from the previous-pixel register's
// initial value {0,0,0,255}; the distinction is observable and intentional.
type pixelIndex [64]Pixel

// lookup returns the pixel currently occupying p's hash slot.
func (idx *pixelIndex) lookup(p Pixel) Pixel {
	return idx[p.Hash()]
}

// store writes p into its hash slot, silently overwriting whatever was
// there.
func (idx *pixelIndex) store(p Pixel) {
	idx[p.Hash()] = p
}
