package terrain

import "testing"

var (
	testGreen = RGBA{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF}
	testWater = RGBA{R: 0x0D, G: 0x63, B: 0xAC, A: 128}
)

// shoreBand is the two-band table from the shoreline blending contract:
// one land band plus the half-transparent water terminator.
func shoreBand() ColorBand {
	return ColorBand{
		{RelHeight: 1.0, Color: testGreen},
		{RelHeight: 0.0, Color: testWater},
	}
}

// bumpMesh builds a 4x4 mesh where every vertex is clamped to the water
// plane except a single land peak at corner (2,2). Heights map through an
// identity affine (range [-1,1] onto [-1,1]) with water at 0.
func bumpMesh(t *testing.T) *Mesh {
	t.Helper()
	f := flatField(4, -1)
	f.set(2, 2, 1)
	m := NewTerrainMesh(f, 1, 2, 0)
	if m.Positions[m.CornerIndex(2, 2)].Z != 1 {
		t.Fatalf("peak height = %v, want 1", m.Positions[m.CornerIndex(2, 2)].Z)
	}
	return m
}

func TestColorizeRejectsBadBands(t *testing.T) {
	m := bumpMesh(t)
	if err := m.Colorize(nil); err != ErrEmptyBand {
		t.Errorf("empty band: got %v, want ErrEmptyBand", err)
	}
	unterminated := ColorBand{{RelHeight: 1.0, Color: testGreen}}
	if err := m.Colorize(unterminated); err != ErrUnterminatedBand {
		t.Errorf("unterminated band: got %v, want ErrUnterminatedBand", err)
	}
}

func TestColorizeDeepWaterCorner(t *testing.T) {
	m := bumpMesh(t)
	if err := m.Colorize(shoreBand()); err != nil {
		t.Fatalf("Colorize failed: %v", err)
	}

	// Corner (0,0) is at water level and so are all four midpoints around
	// it (wrapping): deep water, sentinel alpha.
	c := m.Colors[m.CornerIndex(0, 0)]
	if c.A != 128 {
		t.Errorf("deep water corner alpha = %d, want 128", c.A)
	}
	if c.R != testWater.R || c.G != testWater.G || c.B != testWater.B {
		t.Errorf("deep water corner RGB = %v, want water color", c)
	}
}

func TestColorizeShorelineCorner(t *testing.T) {
	m := bumpMesh(t)
	if err := m.Colorize(shoreBand()); err != nil {
		t.Fatalf("Colorize failed: %v", err)
	}

	// Corner (1,1) is at water level, but midpoint (1,1) averages in the
	// peak and sits above water: shoreline, forced opaque.
	c := m.Colors[m.CornerIndex(1, 1)]
	if c.A != 255 {
		t.Errorf("shoreline corner alpha = %d, want 255", c.A)
	}
}

func TestColorizeLandCorner(t *testing.T) {
	m := bumpMesh(t)
	if err := m.Colorize(shoreBand()); err != nil {
		t.Fatalf("Colorize failed: %v", err)
	}

	c := m.Colors[m.CornerIndex(2, 2)]
	if c != testGreen {
		t.Errorf("peak corner color = %v, want %v", c, testGreen)
	}
}

func TestColorizeMidpointShorelineAlpha(t *testing.T) {
	m := bumpMesh(t)
	if err := m.Colorize(shoreBand()); err != nil {
		t.Fatalf("Colorize failed: %v", err)
	}

	// Midpoint (0,0) is at water level; its four corners are all at water
	// level too, but corner (1,1) was forced opaque by the shoreline rule,
	// so one of the four neighbors counts as non-transparent:
	// alpha = 128 + 1*(255-128)/4.
	a := m.Colors[m.MidIndex(0, 0)].A
	want := uint8(128 + (255-128)/4)
	if a != want {
		t.Errorf("shoreline midpoint alpha = %d, want %d", a, want)
	}
}

func TestColorizeDeepMidpoint(t *testing.T) {
	// An 8x8 grid pushes the lone peak far enough from midpoint (0,0) that
	// all four of its corners are deep water: the alpha stays at the
	// sentinel and the RGB is plain water.
	f := flatField(8, -1)
	f.set(4, 4, 1)
	m := NewTerrainMesh(f, 1, 2, 0)
	if err := m.Colorize(shoreBand()); err != nil {
		t.Fatalf("Colorize failed: %v", err)
	}

	c := m.Colors[m.MidIndex(0, 0)]
	if c.A != 128 {
		t.Errorf("deep midpoint alpha = %d, want 128", c.A)
	}
	if c.R != testWater.R || c.G != testWater.G || c.B != testWater.B {
		t.Errorf("deep midpoint RGB = %v, want water color", c)
	}
}

func TestColorizeBandWalk(t *testing.T) {
	// Three land bands splitting the range: heights should pick the band
	// whose cumulative slice they fall into.
	band := ColorBand{
		{RelHeight: 1.0, Color: RGBA{R: 1, A: 0xFF}},
		{RelHeight: 1.0, Color: RGBA{R: 2, A: 0xFF}},
		{RelHeight: 1.0, Color: RGBA{R: 3, A: 0xFF}},
		{RelHeight: 0.0, Color: testWater},
	}

	// The field spans [-1, 1] and maps through heightRange 2 identically,
	// so field values above water are the final heights. total = 3,
	// denom = heightRange/2 - water = 1, t = 3*h: h=0.2 -> band 0,
	// h=0.5 -> band 1, h=0.9 -> band 2, h=1.0 -> t=3.0 lands exactly on
	// band 2.
	f := flatField(4, -1)
	f.set(1, 1, 0.2)
	f.set(2, 1, 0.5)
	f.set(3, 1, 0.9)
	f.set(2, 2, 1)
	m := NewTerrainMesh(f, 1, 2, 0)
	if err := m.Colorize(band); err != nil {
		t.Fatalf("Colorize failed: %v", err)
	}

	cases := []struct {
		x, y int
		want uint8
	}{
		{1, 1, 1},
		{2, 1, 2},
		{3, 1, 3},
		{2, 2, 3},
	}
	for _, tc := range cases {
		got := m.Colors[m.CornerIndex(tc.x, tc.y)].R
		if got != tc.want {
			t.Errorf("corner (%d,%d) band marker = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}
