package terrain

import (
	"math/rand"
	"testing"
)

// flatField builds a field directly with the given uniform value.
func flatField(size int, v float64) Field {
	f := Field{vals: make([]float64, (size+1)*(size+1)), size: size}
	for i := range f.vals {
		f.vals[i] = v
	}
	return f
}

func TestNewTerrainMeshCounts(t *testing.T) {
	// A 4x4 element grid: 25 corners + 16 midpoints, 12 indices per square.
	f := randomField(t, 4, 1)
	m := NewTerrainMesh(f, 16, 600, -150)

	if got := m.VertexCount(); got != 41 {
		t.Errorf("vertex count = %d, want 41", got)
	}
	if got := m.IndexCount(); got != 192 {
		t.Errorf("index count = %d, want 192", got)
	}
	if len(m.Normals) != 41 || len(m.Colors) != 41 || len(m.TexCoords) != 41 {
		t.Error("attribute slices are not parallel to positions")
	}
}

func TestNewTerrainMeshClampsWater(t *testing.T) {
	f := randomField(t, 16, 2)
	const water = float32(-150)
	m := NewTerrainMesh(f, 16, 600, water)

	atWater := 0
	for i, p := range m.Positions {
		if p.Z < water {
			t.Fatalf("vertex %d below water: %v", i, p.Z)
		}
		if p.Z == water {
			atWater++
		}
	}
	if atWater == 0 {
		t.Error("expected some vertices clamped to the water plane")
	}
}

func TestNewTerrainMeshHeightSpan(t *testing.T) {
	f := randomField(t, 16, 3)
	m := NewTerrainMesh(f, 16, 600, -300)

	for i, p := range m.Positions {
		if p.Z < -300 || p.Z > 300 {
			t.Fatalf("vertex %d height %v outside [-300, 300]", i, p.Z)
		}
	}
}

func TestNewTerrainMeshMidpointsAverageCorners(t *testing.T) {
	f := randomField(t, 8, 4)
	m := NewTerrainMesh(f, 16, 600, -150)

	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			want := 0.25 * (m.Positions[m.CornerIndex(x, y)].Z +
				m.Positions[m.CornerIndex(x+1, y)].Z +
				m.Positions[m.CornerIndex(x, y+1)].Z +
				m.Positions[m.CornerIndex(x+1, y+1)].Z)
			got := m.Positions[m.MidIndex(x, y)].Z
			if got != want {
				t.Fatalf("midpoint (%d,%d) height %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestNewTerrainMeshCenteredOnOrigin(t *testing.T) {
	f := randomField(t, 8, 5)
	m := NewTerrainMesh(f, 10, 600, -150)

	first := m.Positions[m.CornerIndex(0, 0)]
	last := m.Positions[m.CornerIndex(8, 8)]
	if first.X != -40 || first.Y != -40 || last.X != 40 || last.Y != 40 {
		t.Errorf("lattice not centered: first (%v,%v), last (%v,%v)",
			first.X, first.Y, last.X, last.Y)
	}
	if m.Extent != 80 {
		t.Errorf("Extent = %v, want 80", m.Extent)
	}
}

func TestNewTerrainMeshFlatFieldMapsToWater(t *testing.T) {
	// A degenerate flat field has no observable range; everything lands at
	// the bottom and is clamped to the water plane.
	m := NewTerrainMesh(flatField(4, 1.0), 16, 600, -150)
	for i, p := range m.Positions {
		if p.Z != -150 {
			t.Fatalf("vertex %d height %v, want water level -150", i, p.Z)
		}
	}
}

func TestMeshIndicesInRange(t *testing.T) {
	f := randomField(t, 8, 6)
	m := NewTerrainMesh(f, 16, 600, -150)
	for _, idx := range m.Indices {
		if int(idx) >= m.VertexCount() {
			t.Fatalf("index %d out of range (%d vertices)", idx, m.VertexCount())
		}
	}
}

func TestMeshChain(t *testing.T) {
	f := randomField(t, 4, 7)
	m := NewTerrainMesh(f, 16, 600, -150)
	m.ComputeNormals()
	m.Next = ScatterObjects(m, 3, rand.New(rand.NewSource(1)))

	chain := m.Chain()
	if len(chain) != 2 {
		t.Fatalf("chain length = %d, want 2", len(chain))
	}
	if chain[0] != m || chain[1] != m.Next {
		t.Error("chain order wrong")
	}
}
