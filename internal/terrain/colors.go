package terrain

import "errors"

// BandEntry maps a slice of the height range to a palette color. Entries are
// consumed in order; RelHeight is the share of the cumulative range the band
// covers. The final entry is the terminator: RelHeight zero, color the water
// color, whose alpha doubles as the water-edge blend transparency.
type BandEntry struct {
	RelHeight float32
	Color     RGBA
}

// ColorBand is an ordered, terminated sequence of height bands.
type ColorBand []BandEntry

// Color band errors.
var (
	ErrEmptyBand        = errors.New("terrain: color band is empty")
	ErrUnterminatedBand = errors.New("terrain: color band missing zero-height terminator")
)

// validate checks the band shape and returns its cumulative range.
func (b ColorBand) validate() (float32, error) {
	if len(b) == 0 {
		return 0, ErrEmptyBand
	}
	if b[len(b)-1].RelHeight != 0 {
		return 0, ErrUnterminatedBand
	}
	var total float32
	for _, e := range b[:len(b)-1] {
		total += e.RelHeight
	}
	return total, nil
}

// classify walks the band list for a normalized height t and returns the
// matching entry index.
func (b ColorBand) classify(t float32) int {
	i := 0
	for b[i].RelHeight > 0 {
		t -= b[i].RelHeight
		if t <= 0 {
			break
		}
		i++
	}
	if b[i].RelHeight <= 0 {
		// Ran past the last real band into the terminator.
		i--
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Colorize assigns a color to every vertex from the band table.
//
// Corner vertices are classified by height and forced opaque; a corner
// sitting exactly at the water level gets the water color, and becomes
// transparent (the terminator's stored alpha) only when all four of its
// surrounding midpoints are also at water level — deep water as opposed to
// shoreline. Midpoint colors are then the channel-wise average of their four
// corners; a midpoint at water level gets an alpha between the water
// transparency and opaque, boosted by a quarter per non-transparent corner,
// which anti-aliases the shoreline. The pass order (corners with deep-water
// detection first, midpoint averaging and edge correction second) is
// required for the blending to come out right.
func (m *Mesh) Colorize(band ColorBand) error {
	total, err := band.validate()
	if err != nil {
		return err
	}

	water := band[len(band)-1].Color
	n := m.Size
	denom := 0.5*m.HeightRange - m.WaterLevel

	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			ci := m.CornerIndex(x, y)
			h := m.Positions[ci].Z

			c := band[band.classify(total*(h-m.WaterLevel)/denom)].Color
			c.A = 255
			if h == m.WaterLevel {
				c = RGBA{R: water.R, G: water.G, B: water.B, A: 255}
				if m.deepWaterCorner(x, y) {
					c.A = water.A
				}
			}
			m.Colors[ci] = c
		}
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			mi := m.MidIndex(x, y)
			c00 := m.Colors[m.CornerIndex(x, y)]
			c10 := m.Colors[m.CornerIndex(x+1, y)]
			c01 := m.Colors[m.CornerIndex(x, y+1)]
			c11 := m.Colors[m.CornerIndex(x+1, y+1)]

			c := RGBA{
				R: uint8((int(c00.R) + int(c10.R) + int(c01.R) + int(c11.R)) >> 2),
				G: uint8((int(c00.G) + int(c10.G) + int(c01.G) + int(c11.G)) >> 2),
				B: uint8((int(c00.B) + int(c10.B) + int(c01.B) + int(c11.B)) >> 2),
				A: 255,
			}
			if m.Positions[mi].Z == m.WaterLevel {
				shore := 0
				for _, a := range [4]uint8{c00.A, c10.A, c01.A, c11.A} {
					if a != water.A {
						shore++
					}
				}
				if shore == 0 {
					c.R, c.G, c.B = water.R, water.G, water.B
				}
				c.A = uint8(int(water.A) + shore*(255-int(water.A))/4)
			}
			m.Colors[mi] = c
		}
	}
	return nil
}

// deepWaterCorner reports whether all four midpoints around corner (x, y)
// sit at water level, wrapping toroidally at the lattice border.
func (m *Mesh) deepWaterCorner(x, y int) bool {
	xl, xh := x-1, x
	if xl < 0 {
		xl = m.Size - 1
	}
	if xh == m.Size {
		xh = 0
	}
	yl, yh := y-1, y
	if yl < 0 {
		yl = m.Size - 1
	}
	if yh == m.Size {
		yh = 0
	}
	return m.Positions[m.MidIndex(xl, yl)].Z == m.WaterLevel &&
		m.Positions[m.MidIndex(xh, yl)].Z == m.WaterLevel &&
		m.Positions[m.MidIndex(xl, yh)].Z == m.WaterLevel &&
		m.Positions[m.MidIndex(xh, yh)].Z == m.WaterLevel
}
