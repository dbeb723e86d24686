// Package scene persists the viewer state needed to reproduce a scene: the
// generation seed, the packed draw flags, and the camera and light placement.
package scene

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Scene record errors.
var (
	ErrTruncatedRecord = errors.New("scene: truncated binary record")
	ErrMalformedRecord = errors.New("scene: malformed text record")
)

// binarySize is the fixed on-disk size of a binary record: two uint32
// fields followed by eleven float32 fields.
const binarySize = 52

// textExt selects the whitespace text layout instead of the binary one.
const textExt = ".txt"

// Record is everything needed to rebuild a scene exactly: the terrain is
// regenerated from Seed, the draw toggles come from Flags, and the camera
// and light are restored verbatim. Camera and light fields are opaque to
// generation; only the viewer interprets them.
type Record struct {
	Seed     uint32
	Flags    uint32
	CamYaw   float32
	CamPitch float32
	CamPos   [3]float32
	LightDir [3]float32
	LightPos [3]float32
}

// Default returns the camera-reset record: level yaw, a -60 degree look-down
// pitch, the camera half a height-range below the origin, an overhead light.
func Default() *Record {
	return &Record{
		CamPitch: -60,
		CamPos:   [3]float32{0, 0, -300},
		LightDir: [3]float32{0, 0, -1},
		LightPos: [3]float32{0, 0, 6000},
	}
}

// fields returns the record's eleven float fields in serialization order.
func (r *Record) fields() []*float32 {
	return []*float32{
		&r.CamYaw, &r.CamPitch,
		&r.CamPos[0], &r.CamPos[1], &r.CamPos[2],
		&r.LightDir[0], &r.LightDir[1], &r.LightDir[2],
		&r.LightPos[0], &r.LightPos[1], &r.LightPos[2],
	}
}

// Marshal encodes the record: whitespace-separated decimal when text is
// set, otherwise the fixed 52-byte little-endian layout.
func (r *Record) Marshal(text bool) []byte {
	if text {
		var b strings.Builder
		fmt.Fprintf(&b, "%d %d", r.Seed, r.Flags)
		for _, f := range r.fields() {
			fmt.Fprintf(&b, " %g", *f)
		}
		return []byte(b.String())
	}

	buf := bytes.NewBuffer(make([]byte, 0, binarySize))
	binary.Write(buf, binary.LittleEndian, r.Seed)
	binary.Write(buf, binary.LittleEndian, r.Flags)
	for _, f := range r.fields() {
		binary.Write(buf, binary.LittleEndian, *f)
	}
	return buf.Bytes()
}

// Unmarshal decodes either layout into the record.
func (r *Record) Unmarshal(data []byte, text bool) error {
	if text {
		vals := make([]interface{}, 0, 13)
		vals = append(vals, &r.Seed, &r.Flags)
		for _, f := range r.fields() {
			vals = append(vals, f)
		}
		n, err := fmt.Sscan(string(data), vals...)
		if err != nil || n != len(vals) {
			return ErrMalformedRecord
		}
		return nil
	}

	if len(data) < binarySize {
		return ErrTruncatedRecord
	}
	buf := bytes.NewReader(data)
	binary.Read(buf, binary.LittleEndian, &r.Seed)
	binary.Read(buf, binary.LittleEndian, &r.Flags)
	for _, f := range r.fields() {
		binary.Read(buf, binary.LittleEndian, f)
	}
	return nil
}

// IsTextPath reports whether path selects the text layout.
func IsTextPath(path string) bool {
	return strings.HasSuffix(path, textExt)
}

// Save writes the record to path, picking the layout from the extension.
func Save(path string, r *Record) error {
	if err := os.WriteFile(path, r.Marshal(IsTextPath(path)), 0644); err != nil {
		return fmt.Errorf("scene: saving %s: %w", path, err)
	}
	return nil
}

// Load reads a record from path. The caller decides what a missing file
// means; errors.Is(err, fs.ErrNotExist) sees through the wrapping.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: loading %s: %w", path, err)
	}
	r := &Record{}
	if err := r.Unmarshal(data, IsTextPath(path)); err != nil {
		return nil, err
	}
	return r, nil
}
