package terrain

import (
	"errors"
	"math/rand"
	"time"
)

// Default shape parameters, matching the classic map this generator renders.
const (
	DefaultSizeLog2    = 7
	DefaultGridSize    = 16.0
	DefaultHeightRange = 600.0
	DefaultWaterLevel  = -0.25 * DefaultHeightRange
	DefaultRoughness   = 1.0
	DefaultSmoothing   = 1.5
	DefaultObjectCount = 50

	// terrainNoiseAmp is the facet-texture amplitude for the land surface.
	terrainNoiseAmp = 64
)

// Params configures one terrain generation.
type Params struct {
	// SizeLog2 is log2 of the grid side; the mesh has 2^SizeLog2 squares
	// per side. Must be > 0.
	SizeLog2 uint32
	// Seed is the PRNG seed; zero means "pick a fresh one".
	Seed uint32
	// GridSize is the world-space side of one square. Must be > 0.
	GridSize float32
	// HeightRange is the full vertical span; peaks reach HeightRange/2.
	HeightRange float32
	// WaterLevel is the sea plane, clamped to >= -HeightRange/2.
	WaterLevel float32
	// Roughness is the diamond-square sharpness exponent.
	Roughness float64
	// Smoothing is the Gaussian blur sigma applied to the heightfield.
	Smoothing float64
	// Band maps heights to colors; must be non-empty and terminated.
	Band ColorBand
	// ObjectCount is how many decorative objects to scatter; clamped to
	// the number of above-water squares.
	ObjectCount uint32
	// Caps selects which attributes to populate.
	Caps GenerationCaps
}

// DefaultParams returns the parameter set the viewer starts from.
func DefaultParams() Params {
	return Params{
		SizeLog2:    DefaultSizeLog2,
		GridSize:    DefaultGridSize,
		HeightRange: DefaultHeightRange,
		WaterLevel:  DefaultWaterLevel,
		Roughness:   DefaultRoughness,
		Smoothing:   DefaultSmoothing,
		Band:        DefaultBand(),
		ObjectCount: DefaultObjectCount,
		Caps:        AllGenerationCaps(),
	}
}

// DefaultBand returns the classic five-entry palette: sand, grass, rock,
// snow, and half-transparent water.
func DefaultBand() ColorBand {
	return ColorBand{
		{RelHeight: 0.1, Color: RGBA{R: 0xFC, G: 0xDD, B: 0x76, A: 0xFF}},
		{RelHeight: 8.0, Color: RGBA{R: 0x5D, G: 0xA1, B: 0x30, A: 0xFF}},
		{RelHeight: 6.5, Color: RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}},
		{RelHeight: 5.0, Color: RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
		{RelHeight: 0.0, Color: RGBA{R: 0x0D, G: 0x63, B: 0xAC, A: 0x80}},
	}
}

// Parameter validation errors.
var (
	ErrZeroSize = errors.New("terrain: size log2 must be > 0")
	ErrGridSize = errors.New("terrain: grid size must be > 0")
)

// PickSeed returns a fresh non-zero seed derived from the clock.
func PickSeed() uint32 {
	for {
		s := uint32(time.Now().UnixNano())
		if s != 0 {
			return s
		}
	}
}

// Generate runs the full pipeline: heightfield, blur, mesh assembly,
// coloring, normals, facet texture, object scatter. The result is a pure
// function of the parameters and the seed — two calls with identical inputs
// produce bit-identical buffers. The mesh records the seed actually used,
// so a zero-seed call can be reproduced later.
func Generate(p Params) (*Mesh, error) {
	if p.SizeLog2 == 0 {
		return nil, ErrZeroSize
	}
	if p.GridSize <= 0 {
		return nil, ErrGridSize
	}
	if _, err := p.Band.validate(); err != nil {
		return nil, err
	}

	seed := p.Seed
	if seed == 0 {
		seed = PickSeed()
	}
	rng := rand.New(rand.NewSource(int64(seed)))

	heightRange := p.HeightRange
	if heightRange < 0 {
		heightRange = -heightRange
	}
	waterLevel := p.WaterLevel
	if waterLevel < -0.5*heightRange {
		waterLevel = -0.5 * heightRange
	}

	field, err := GenerateHeightmap(1<<p.SizeLog2, p.Roughness, rng)
	if err != nil {
		return nil, err
	}
	field.Blur(p.Smoothing)

	mesh := NewTerrainMesh(field, p.GridSize, heightRange, waterLevel)
	mesh.Seed = seed
	mesh.GenCaps = p.Caps

	if p.Caps.Colors {
		if err := mesh.Colorize(p.Band); err != nil {
			return nil, err
		}
	}
	if p.Caps.Normals {
		mesh.ComputeNormals()
	}
	if p.Caps.Texture {
		if mesh.Texture, err = MakeNoiseTexture(terrainNoiseAmp, rng); err != nil {
			return nil, err
		}
	}
	if p.Caps.Objects && p.ObjectCount > 0 {
		mesh.Next = ScatterObjects(mesh, p.ObjectCount, rng)
	}

	return mesh, nil
}
