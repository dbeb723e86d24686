package terrain

import (
	"errors"
	"math/rand"
)

// NoiseTexSize is the side of the square facet texture in texels.
const NoiseTexSize = 256

// NoiseTexture is a CPU-side tileable white-noise bitmap used to add
// high-frequency surface detail. Uploading it to the GPU (mipmapped,
// linear-mipmap-linear minification) is the renderer's concern, which keeps
// generation runnable without a GL context.
type NoiseTexture struct {
	Pixels      []uint8 // RGBA, NoiseTexSize*NoiseTexSize texels
	Size        int
	Transparent bool
}

// ErrNoiseAmplitude is returned when the requested amplitude reduces to a
// zero noise range.
var ErrNoiseAmplitude = errors.New("terrain: noise amplitude reduces to zero")

// MakeNoiseTexture builds a square white-noise bitmap. |amplitude| mod 257
// sets the noise range; an amplitude of zero (or a multiple of 257) fails.
// A positive amplitude produces brightness noise: RGB uniform in
// [256-range, 255] with opaque alpha. A negative amplitude produces the
// transparency variant: white RGB with the noise in the alpha channel.
func MakeNoiseTexture(amplitude int32, rng *rand.Rand) (*NoiseTexture, error) {
	transparent := amplitude < 0
	r := int(amplitude)
	if r < 0 {
		r = -r
	}
	r %= 257
	if r == 0 {
		return nil, ErrNoiseAmplitude
	}

	t := &NoiseTexture{
		Pixels:      make([]uint8, NoiseTexSize*NoiseTexSize*4),
		Size:        NoiseTexSize,
		Transparent: transparent,
	}
	for i := 0; i < len(t.Pixels); i += 4 {
		v := uint8(256 - r + rng.Intn(r))
		if transparent {
			t.Pixels[i+0] = 255
			t.Pixels[i+1] = 255
			t.Pixels[i+2] = 255
			t.Pixels[i+3] = v
		} else {
			t.Pixels[i+0] = v
			t.Pixels[i+1] = v
			t.Pixels[i+2] = v
			t.Pixels[i+3] = 255
		}
	}
	return t, nil
}
