package terrain

import "math"

// Blur smooths the field in place with a separable Gaussian of the given
// sigma, wrapping toroidally at the boundary in both passes. A sigma <= 0 or
// a kernel radius reaching the field size leaves the field untouched.
//
// The kernel has floor(3*sigma) side taps with weights exp(-i^2 / (2*sigma^2)).
// The center weight is chosen as 0.5/(sum+0.5) and the side taps rescaled by
// it, so the total mass of the kernel is exactly 1.
func (f Field) Blur(sigma float64) {
	if sigma <= 0 {
		return
	}
	radius := int(3 * sigma)
	if radius < 1 || radius >= f.size {
		return
	}

	w := make([]float64, radius+1)
	sum := 0.0
	for i := radius; i > 0; i-- {
		w[i] = math.Exp(-float64(i*i) / (2 * sigma * sigma))
		sum += w[i]
	}
	w[0] = 0.5 / (sum + 0.5)
	for i := 1; i <= radius; i++ {
		w[i] *= w[0]
	}

	n := f.size
	stride := n + 1
	tmp := make([]float64, len(f.vals))

	// Horizontal pass into the scratch buffer.
	for y := 0; y <= n; y++ {
		row := y * stride
		for x := 0; x <= n; x++ {
			acc := f.vals[row+x] * w[0]
			for z := 1; z <= radius; z++ {
				lo, hi := x-z, x+z
				if lo < 0 {
					lo += n
				}
				if hi > n {
					hi -= n
				}
				acc += (f.vals[row+lo] + f.vals[row+hi]) * w[z]
			}
			tmp[row+x] = acc
		}
	}

	// Vertical pass back into the field.
	for x := 0; x <= n; x++ {
		for y := 0; y <= n; y++ {
			acc := tmp[y*stride+x] * w[0]
			for z := 1; z <= radius; z++ {
				lo, hi := y-z, y+z
				if lo < 0 {
					lo += n
				}
				if hi > n {
					hi -= n
				}
				acc += (tmp[lo*stride+x] + tmp[hi*stride+x]) * w[z]
			}
			f.vals[y*stride+x] = acc
		}
	}
}
