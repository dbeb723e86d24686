// Package terrain implements deterministic fractal terrain generation:
// a diamond-square heightfield, toroidal Gaussian smoothing, mesh assembly
// with a midpoint fan triangulation, height-banded coloring with shoreline
// blending, finite-difference normals, procedural facet noise textures and
// scattered surface decorations. Given the same seed and parameters the
// whole pipeline reproduces its output bit-identically.
package terrain

import (
	"errors"
	"math"
	"math/rand"
)

// Field is a square heightfield of side Size()+1. Row and column Size()
// duplicate row and column zero so the surface tiles seamlessly; neighbor
// lookups treat the field as toroidal with period Size().
type Field struct {
	vals []float64
	size int
}

// ErrFieldSize is returned for a heightmap side that is not a power of two.
var ErrFieldSize = errors.New("terrain: heightmap size must be a power of two >= 2")

// Size returns N, the number of grid cells per side.
func (f Field) Size() int { return f.size }

// At returns the value at (x, y); both run 0..Size() inclusive.
func (f Field) At(x, y int) float64 { return f.vals[y*(f.size+1)+x] }

func (f Field) set(x, y int, v float64) { f.vals[y*(f.size+1)+x] = v }

// wrap maps a lattice coordinate onto [0, size) toroidally. Offsets never
// exceed one period, so a single correction suffices.
func (f Field) wrap(i int) int {
	if i < 0 {
		return i + f.size
	}
	if i >= f.size {
		return i - f.size
	}
	return i
}

// perturb draws a uniform random offset in [-amp/2, amp/2].
func perturb(rng *rand.Rand, amp float64) float64 {
	return amp * (rng.Float64() - 0.5)
}

// GenerateHeightmap produces a random heightfield of side size+1 using the
// diamond-square algorithm. size must be a power of two >= 2. roughness
// controls the sharpness of the relief: the displacement amplitude starts at
// 2^-|roughness| and decays by the same factor each pass, so larger values
// give smoother terrain. All randomness comes from rng.
func GenerateHeightmap(size uint32, roughness float64, rng *rand.Rand) (Field, error) {
	if size < 2 || size&(size-1) != 0 {
		return Field{}, ErrFieldSize
	}
	n := int(size)
	f := Field{vals: make([]float64, (n+1)*(n+1)), size: n}

	decay := math.Pow(2, -math.Abs(roughness))
	amp := decay

	for step := n / 2; step >= 1; step, amp = step/2, amp*decay {
		// Diamond pass: each cell center from its four diagonal corners.
		for y := step; y < n; y += 2 * step {
			for x := step; x < n; x += 2 * step {
				avg := 0.25 * (f.At(x-step, y-step) + f.At(x+step, y-step) +
					f.At(x-step, y+step) + f.At(x+step, y+step))
				f.set(x, y, avg+perturb(rng, amp))
			}
		}

		// Square pass: edge midpoints on the alternating lattice from their
		// four orthogonal neighbors, wrapping across the boundary. Writes at
		// row/column zero are mirrored to row/column n to close the seam.
		odd := false
		for y := 0; y < n; y += step {
			x0 := step
			if odd {
				x0 = 0
			}
			for x := x0; x < n; x += 2 * step {
				avg := 0.25 * (f.At(f.wrap(x-step), y) + f.At(f.wrap(x+step), y) +
					f.At(x, f.wrap(y-step)) + f.At(x, f.wrap(y+step)))
				f.set(x, y, avg+perturb(rng, amp))
				if x == 0 {
					f.set(n, y, f.At(0, y))
				}
				if y == 0 {
					f.set(x, n, f.At(x, 0))
				}
			}
			odd = !odd
		}
	}
	return f, nil
}
