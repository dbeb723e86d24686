package terrain

import (
	"math/rand"

	vmath "github.com/skyfell/terrascape/pkg/math"
)

// Fir geometry tunables. The shrink/fade pair shapes the tapering
// silhouette; they are visual parameters, not invariants.
const (
	firSegments = 3
	firShrink   = 0.75
	firFade     = 0.25 * firShrink
	firTexSpan  = 0.25
	firNoiseAmp = -256 // transparency-noise variant for the foliage
)

// firColor is the flat foliage green shared by every tree vertex.
var firColor = RGBA{R: 0x00, G: 0xB0, B: 0x00, A: 0xFF}

// gridSpot is a midpoint lattice coordinate eligible for an object.
type gridSpot struct {
	x, y int
}

// ScatterObjects builds an auxiliary mesh of decorative "fir" fans placed on
// a uniform random subset of the parent terrain's above-water squares.
// Returns nil if parent is nil or count is zero. A count exceeding the
// number of eligible squares is silently clamped.
//
// Selection is without replacement: each pick draws a uniform index into the
// remaining pool and swap-removes it, so every subset of eligible squares is
// equally likely — not merely the first count encountered.
func ScatterObjects(parent *Mesh, count uint32, rng *rand.Rand) *Mesh {
	if parent == nil || count == 0 {
		return nil
	}

	var pool []gridSpot
	for y := 0; y < parent.Size; y++ {
		for x := 0; x < parent.Size; x++ {
			if parent.Positions[parent.MidIndex(x, y)].Z > parent.WaterLevel {
				pool = append(pool, gridSpot{x, y})
			}
		}
	}
	k := int(count)
	if k > len(pool) {
		k = len(pool)
	}
	if k == 0 {
		return nil
	}

	picks := make([]gridSpot, k)
	avail := len(pool)
	for i := 0; i < k; i++ {
		j := rng.Intn(avail)
		picks[i] = pool[j]
		avail--
		pool[j] = pool[avail]
	}

	verts := firSegments * 5 * k
	m := &Mesh{
		Positions:   make([]vmath.Vec3, verts),
		Normals:     make([]vmath.Vec3, verts),
		TexCoords:   make([]vmath.Vec2, verts),
		Colors:      make([]RGBA, verts),
		Indices:     make([]uint32, 0, firSegments*12*k),
		CellSize:    parent.CellSize,
		Extent:      parent.Extent,
		HeightRange: parent.HeightRange,
		WaterLevel:  parent.WaterLevel,
		Seed:        parent.Seed,
		GenCaps:     GenerationCaps{Normals: true, Colors: true, Texture: true},
	}
	// The foliage texture comes from the same synthesizer as the terrain
	// facets, with its own amplitude. Errors are impossible for the fixed
	// constant.
	m.Texture, _ = MakeNoiseTexture(firNoiseAmp, rng)

	for i, spot := range picks {
		base := parent.Positions[parent.MidIndex(spot.x, spot.y)]
		normal := parent.Normals[parent.MidIndex(spot.x, spot.y)]
		lift := normal.Scale(0.5 * parent.CellSize)

		// Ring of the four surrounding corner positions, walked in order
		// around the square.
		ring := [4]vmath.Vec3{
			parent.Positions[parent.CornerIndex(spot.x, spot.y)],
			parent.Positions[parent.CornerIndex(spot.x+1, spot.y)],
			parent.Positions[parent.CornerIndex(spot.x+1, spot.y+1)],
			parent.Positions[parent.CornerIndex(spot.x, spot.y+1)],
		}

		for s := 0; s < firSegments; s++ {
			vb := (i*firSegments + s) * 5

			m.Positions[vb] = base.Add(lift.Scale(float32(s + 2)))
			shrink := float32(firShrink * (1.0 - firFade*float64(s)))
			for r, corner := range ring {
				m.Positions[vb+1+r] = base.
					Add(corner.Sub(base).Scale(shrink)).
					Add(lift.Scale(float32(s)))
			}

			for v := 0; v < 5; v++ {
				m.Normals[vb+v] = normal
				m.Colors[vb+v] = firColor
			}
			m.TexCoords[vb] = vmath.Vec2{X: 0.5 * firTexSpan, Y: 0.5 * firTexSpan}
			m.TexCoords[vb+2] = vmath.Vec2{X: firTexSpan}
			m.TexCoords[vb+4] = vmath.Vec2{X: firTexSpan}

			b := uint32(vb)
			m.Indices = append(m.Indices,
				b, b+4, b+1,
				b, b+1, b+2,
				b, b+2, b+3,
				b, b+3, b+4,
			)
		}
	}

	return m
}
