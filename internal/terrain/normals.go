package terrain

// ComputeNormals fills per-vertex surface normals by central differences.
// The gradient is estimated on each vertex's own sublattice — corners against
// corner neighbors, midpoints against midpoint neighbors — with toroidal
// wraparound, and the Z component is fixed at twice the cell size before
// normalizing, so flat terrain yields (0, 0, 1).
func (m *Mesh) ComputeNormals() {
	n := m.Size

	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			// Corner row/column n duplicates row/column 0, so the wrapped
			// neighbors at the seam are n-1 and 1.
			left, right := x-1, x+1
			if left < 0 {
				left = n - 1
			}
			if right > n {
				right = 1
			}
			below, above := y-1, y+1
			if below < 0 {
				below = n - 1
			}
			if above > n {
				above = 1
			}

			i := m.CornerIndex(x, y)
			m.Normals[i].X = m.Positions[m.CornerIndex(left, y)].Z - m.Positions[m.CornerIndex(right, y)].Z
			m.Normals[i].Y = m.Positions[m.CornerIndex(x, below)].Z - m.Positions[m.CornerIndex(x, above)].Z
		}
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			left, right := x-1, x+1
			if left < 0 {
				left = n - 1
			}
			if right > n-1 {
				right = 0
			}
			below, above := y-1, y+1
			if below < 0 {
				below = n - 1
			}
			if above > n-1 {
				above = 0
			}

			i := m.MidIndex(x, y)
			m.Normals[i].X = m.Positions[m.MidIndex(left, y)].Z - m.Positions[m.MidIndex(right, y)].Z
			m.Normals[i].Y = m.Positions[m.MidIndex(x, below)].Z - m.Positions[m.MidIndex(x, above)].Z
		}
	}

	for i := range m.Normals {
		m.Normals[i].Z = 2 * m.CellSize
		m.Normals[i] = m.Normals[i].Normalize()
	}
}
