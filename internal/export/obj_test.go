package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/skyfell/terrascape/internal/terrain"
)

func testMesh(t *testing.T) *terrain.Mesh {
	t.Helper()
	p := terrain.DefaultParams()
	p.SizeLog2 = 3
	p.Seed = 7
	p.ObjectCount = 4
	m, err := terrain.Generate(p)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return m
}

func countPrefix(s, prefix string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

func TestWriteOBJNilMesh(t *testing.T) {
	if err := WriteOBJ(io.Discard, nil); err != ErrNilMesh {
		t.Errorf("got %v, want ErrNilMesh", err)
	}
}

func TestWriteOBJCounts(t *testing.T) {
	m := testMesh(t)
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}
	out := buf.String()

	wantVerts, wantFaces := 0, 0
	for _, link := range m.Chain() {
		wantVerts += link.VertexCount()
		wantFaces += link.IndexCount() / 3
	}

	if got := countPrefix(out, "v "); got != wantVerts {
		t.Errorf("v records = %d, want %d", got, wantVerts)
	}
	if got := countPrefix(out, "vn "); got != wantVerts {
		t.Errorf("vn records = %d, want %d", got, wantVerts)
	}
	if got := countPrefix(out, "vt "); got != wantVerts {
		t.Errorf("vt records = %d, want %d", got, wantVerts)
	}
	if got := countPrefix(out, "f "); got != wantFaces {
		t.Errorf("f records = %d, want %d", got, wantFaces)
	}
	if got := countPrefix(out, "o "); got != len(m.Chain()) {
		t.Errorf("o records = %d, want %d", got, len(m.Chain()))
	}
}

func TestWriteOBJFaceIndicesValid(t *testing.T) {
	m := testMesh(t)
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	total := 0
	for _, link := range m.Chain() {
		total += link.VertexCount()
	}

	for _, line := range strings.Split(buf.String(), "\n") {
		if !strings.HasPrefix(line, "f ") {
			continue
		}
		for _, ref := range strings.Fields(line)[1:] {
			idx, err := strconv.Atoi(strings.SplitN(ref, "/", 2)[0])
			if err != nil {
				t.Fatalf("bad face reference %q: %v", ref, err)
			}
			if idx < 1 || idx > total {
				t.Fatalf("face index %d outside [1, %d]", idx, total)
			}
		}
	}
}

func TestWriteOBJFileGzip(t *testing.T) {
	m := testMesh(t)
	dir := t.TempDir()

	plain := filepath.Join(dir, "out.obj")
	packed := filepath.Join(dir, "out.obj.gz")
	if err := WriteOBJFile(plain, m); err != nil {
		t.Fatalf("WriteOBJFile failed: %v", err)
	}
	if err := WriteOBJFile(packed, m); err != nil {
		t.Fatalf("WriteOBJFile (gzip) failed: %v", err)
	}

	want, err := os.ReadFile(plain)
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(packed)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("output is not valid gzip: %v", err)
	}
	got, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("decompressing failed: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("gzip content differs from plain output")
	}
}
