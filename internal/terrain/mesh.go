package terrain

import (
	vmath "github.com/skyfell/terrascape/pkg/math"
)

// RGBA is an 8-bit per channel vertex color.
type RGBA struct {
	R, G, B, A uint8
}

// Mesh is one generated renderable unit: parallel vertex attribute slices,
// a triangle index buffer, the facet texture, and the parameters needed to
// place and regenerate it. A Mesh may own a Next mesh holding auxiliary
// geometry (the scattered surface objects); the chain is traversed
// iteratively via Chain.
type Mesh struct {
	Positions []vmath.Vec3
	Normals   []vmath.Vec3
	TexCoords []vmath.Vec2
	Colors    []RGBA
	Indices   []uint32

	// Size is N, the number of grid squares per side. Zero for meshes that
	// are not grids (the scatter mesh).
	Size int
	// CellSize is the world-space side of one elemental square.
	CellSize float32
	// Extent is the world-space span of the whole map, N*CellSize.
	Extent float32
	// HeightRange is the full vertical range the field was normalized onto.
	HeightRange float32
	// WaterLevel is the height every submerged vertex was clamped to.
	WaterLevel float32
	// Seed is the PRNG seed the mesh was generated from.
	Seed uint32

	GenCaps GenerationCaps
	Texture *NoiseTexture

	Next *Mesh
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Positions) }

// IndexCount returns the number of triangle indices.
func (m *Mesh) IndexCount() int { return len(m.Indices) }

// CornerIndex returns the vertex index of lattice corner (x, y);
// both run 0..Size inclusive.
func (m *Mesh) CornerIndex(x, y int) int { return y*(m.Size+1) + x }

// MidIndex returns the vertex index of the midpoint of square (x, y);
// both run 0..Size-1. Midpoints are stored after the (Size+1)^2 corners.
func (m *Mesh) MidIndex(x, y int) int {
	return (m.Size+1)*(m.Size+1) + y*m.Size + x
}

// Chain returns the mesh and every auxiliary mesh linked behind it, in
// draw order.
func (m *Mesh) Chain() []*Mesh {
	var chain []*Mesh
	for n := m; n != nil; n = n.Next {
		chain = append(chain, n)
	}
	return chain
}

// squareFan lists the corner pairs fanned around each square's midpoint, in
// c00, c10, c01, c11 order. The winding is counter-clockwise seen from +Z so
// the external renderer can cull back faces.
var squareFan = [4][2]int{
	{0, 1}, // c00 -> c10
	{1, 3}, // c10 -> c11
	{3, 2}, // c11 -> c01
	{2, 0}, // c01 -> c00
}

// NewTerrainMesh assembles the geometry of a terrain mesh from a heightfield:
// positions, texture coordinates and the 4-triangles-per-square index buffer.
// Colors and normals are filled by Colorize and ComputeNormals.
//
// Field values are mapped affinely from their observed range onto
// [-heightRange/2, heightRange/2], then everything below waterLevel is
// clamped up to it, flattening the sea to one plane. Corner vertices sit on
// an (N+1)x(N+1) lattice at gridSize spacing centered on the origin;
// midpoint vertices sit at the center of each square at the average height
// of its four (clamped) corners.
func NewTerrainMesh(field Field, gridSize, heightRange, waterLevel float32) *Mesh {
	n := field.Size()
	corners := (n + 1) * (n + 1)
	total := corners + n*n

	m := &Mesh{
		Positions:   make([]vmath.Vec3, total),
		Normals:     make([]vmath.Vec3, total),
		TexCoords:   make([]vmath.Vec2, total),
		Colors:      make([]RGBA, total),
		Indices:     make([]uint32, 0, 12*n*n),
		Size:        n,
		CellSize:    gridSize,
		Extent:      float32(n) * gridSize,
		HeightRange: heightRange,
		WaterLevel:  waterLevel,
	}

	lo, hi := field.At(0, 0), field.At(0, 0)
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			v := field.At(x, y)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	scale := float64(0)
	if hi > lo {
		scale = float64(heightRange) / (hi - lo)
	}

	half := 0.5 * m.Extent
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			z := float32((field.At(x, y)-lo)*scale) - 0.5*heightRange
			if z < waterLevel {
				z = waterLevel
			}
			i := m.CornerIndex(x, y)
			m.Positions[i] = vmath.Vec3{
				X: gridSize*float32(x) - half,
				Y: gridSize*float32(y) - half,
				Z: z,
			}
			m.TexCoords[i] = vmath.Vec2{X: float32(x), Y: float32(y)}
		}
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i := m.MidIndex(x, y)
			z := 0.25 * (m.Positions[m.CornerIndex(x, y)].Z +
				m.Positions[m.CornerIndex(x+1, y)].Z +
				m.Positions[m.CornerIndex(x, y+1)].Z +
				m.Positions[m.CornerIndex(x+1, y+1)].Z)
			m.Positions[i] = vmath.Vec3{
				X: gridSize*(float32(x)+0.5) - half,
				Y: gridSize*(float32(y)+0.5) - half,
				Z: z,
			}
			m.TexCoords[i] = vmath.Vec2{X: float32(x) + 0.5, Y: float32(y) + 0.5}
		}
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			sq := [4]uint32{
				uint32(m.CornerIndex(x, y)),
				uint32(m.CornerIndex(x+1, y)),
				uint32(m.CornerIndex(x, y+1)),
				uint32(m.CornerIndex(x+1, y+1)),
			}
			mid := uint32(m.MidIndex(x, y))
			for _, tri := range squareFan {
				m.Indices = append(m.Indices, mid, sq[tri[0]], sq[tri[1]])
			}
		}
	}

	return m
}
