// Package export writes generated meshes to Wavefront OBJ, the lowest
// common denominator for inspecting terrain in external tools.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/skyfell/terrascape/internal/terrain"
)

// ErrNilMesh is returned when there is nothing to export.
var ErrNilMesh = errors.New("export: nil mesh")

// WriteOBJ emits the whole mesh chain as one OBJ document, each link as its
// own named object. Vertex colors ride on the v records as the widely read
// "x y z r g b" extension; normals and texture coordinates get vn/vt
// records. Face indices are 1-based and offset past previous links.
func WriteOBJ(w io.Writer, mesh *terrain.Mesh) error {
	if mesh == nil {
		return ErrNilMesh
	}

	bw := bufio.NewWriter(w)
	base := 1
	for i, m := range mesh.Chain() {
		fmt.Fprintf(bw, "o chunk%d\n", i)

		for v, p := range m.Positions {
			c := m.Colors[v]
			fmt.Fprintf(bw, "v %g %g %g %g %g %g\n", p.X, p.Y, p.Z,
				float32(c.R)/255, float32(c.G)/255, float32(c.B)/255)
		}
		for _, t := range m.TexCoords {
			fmt.Fprintf(bw, "vt %g %g\n", t.X, t.Y)
		}
		for _, n := range m.Normals {
			fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
		}

		idx := m.Indices
		for f := 0; f+2 < len(idx); f += 3 {
			a, b, c := base+int(idx[f]), base+int(idx[f+1]), base+int(idx[f+2])
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n",
				a, a, a, b, b, b, c, c, c)
		}
		base += m.VertexCount()
	}
	return bw.Flush()
}

// WriteOBJFile writes the chain to path, gzip-compressed when the path ends
// in ".gz".
func WriteOBJFile(path string, mesh *terrain.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: creating %s: %w", path, err)
	}
	defer f.Close()

	var w io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}

	if err := WriteOBJ(w, mesh); err != nil {
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("export: compressing %s: %w", path, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: closing %s: %w", path, err)
	}
	return nil
}
