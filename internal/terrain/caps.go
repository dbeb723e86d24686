package terrain

// GenerationCaps selects which vertex attributes the pipeline populates.
// Positions, texture coordinates and the index buffer are always built.
type GenerationCaps struct {
	Normals bool // compute per-vertex normals
	Colors  bool // classify heights into band colors
	Texture bool // synthesize the facet noise texture
	Objects bool // scatter decorative objects onto the surface
}

// AllGenerationCaps returns a capability set with everything enabled.
func AllGenerationCaps() GenerationCaps {
	return GenerationCaps{Normals: true, Colors: true, Texture: true, Objects: true}
}

// RenderCaps selects what the renderer currently draws. It is owned by the
// viewer and persisted in the scene record; generation only provides
// defaults. Kept separate from GenerationCaps so toggling a draw mode never
// implies regenerating buffers.
type RenderCaps struct {
	VBO      bool // draw from GPU-resident buffers rather than client arrays
	Fill     bool // filled polygons rather than wireframe
	Shaded   bool // apply lighting from normals
	Textured bool // modulate with the facet texture
	Colored  bool // use per-vertex colors
	Objects  bool // draw the auxiliary object mesh chain
}

// Scene record flag bits. The layout matches the legacy config format so
// old records keep their meaning.
const (
	flagVBO      = 1 << 0
	flagFill     = 1 << 1
	flagShaded   = 1 << 2
	flagTextured = 1 << 3
	flagColored  = 1 << 4
	flagObjects  = 1 << 5
)

// DefaultRenderCaps returns the draw modes a fresh scene starts with.
func DefaultRenderCaps() RenderCaps {
	return RenderCaps{VBO: true, Fill: true, Shaded: true, Textured: true, Colored: true, Objects: true}
}

// Pack serializes the caps into the scene record's flags field.
func (c RenderCaps) Pack() uint32 {
	var v uint32
	if c.VBO {
		v |= flagVBO
	}
	if c.Fill {
		v |= flagFill
	}
	if c.Shaded {
		v |= flagShaded
	}
	if c.Textured {
		v |= flagTextured
	}
	if c.Colored {
		v |= flagColored
	}
	if c.Objects {
		v |= flagObjects
	}
	return v
}

// UnpackRenderCaps decodes a scene record flags field.
func UnpackRenderCaps(v uint32) RenderCaps {
	return RenderCaps{
		VBO:      v&flagVBO != 0,
		Fill:     v&flagFill != 0,
		Shaded:   v&flagShaded != 0,
		Textured: v&flagTextured != 0,
		Colored:  v&flagColored != 0,
		Objects:  v&flagObjects != 0,
	}
}
