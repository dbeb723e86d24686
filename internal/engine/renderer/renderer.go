// Package renderer draws generated terrain through OpenGL 4.1 core.
package renderer

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/skyfell/terrascape/internal/logger"
	"github.com/skyfell/terrascape/internal/terrain"
	"github.com/skyfell/terrascape/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// FogDensity is the exponential fog falloff per world unit.
	FogDensity float32
}

// Renderer owns the shader program and global GL state.
type Renderer struct {
	config  Config
	program uint32

	// Uniform locations, resolved once at link time.
	uProj     int32
	uView     int32
	uLightDir int32
	uFogDens  int32
	uFogColor int32
	uShaded   int32
	uTextured int32
	uColored  int32
	uTexture  int32
}

// fogColor doubles as the clear color so distant terrain fades into the sky.
var fogColor = [4]float32{0.55, 0.65, 0.8, 1.0}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}
	if r.config.FogDensity == 0 {
		r.config.FogDensity = 0.0004
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Setup default OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(fogColor[0], fogColor[1], fogColor[2], fogColor[3])

	// Create shader program
	var err error
	r.program, err = r.createShaderProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.uProj = gl.GetUniformLocation(r.program, gl.Str("uProj\x00"))
	r.uView = gl.GetUniformLocation(r.program, gl.Str("uView\x00"))
	r.uLightDir = gl.GetUniformLocation(r.program, gl.Str("uLightDir\x00"))
	r.uFogDens = gl.GetUniformLocation(r.program, gl.Str("uFogDensity\x00"))
	r.uFogColor = gl.GetUniformLocation(r.program, gl.Str("uFogColor\x00"))
	r.uShaded = gl.GetUniformLocation(r.program, gl.Str("uShaded\x00"))
	r.uTextured = gl.GetUniformLocation(r.program, gl.Str("uTextured\x00"))
	r.uColored = gl.GetUniformLocation(r.program, gl.Str("uColored\x00"))
	r.uTexture = gl.GetUniformLocation(r.program, gl.Str("uTexture\x00"))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// chunk is the GPU residence of one mesh in a chain.
type chunk struct {
	vao     uint32
	buffers [5]uint32 // positions, normals, texcoords, colors, indices
	texture uint32
	count   int32
}

// Landscape is an uploaded mesh chain: the terrain itself first, decorative
// object meshes after it.
type Landscape struct {
	chunks []chunk
}

// Upload moves a mesh chain into GPU buffers. The CPU-side mesh stays
// untouched and can be re-uploaded after a context loss.
func (r *Renderer) Upload(mesh *terrain.Mesh) *Landscape {
	l := &Landscape{}
	for _, m := range mesh.Chain() {
		var c chunk
		c.count = int32(m.IndexCount())

		gl.GenVertexArrays(1, &c.vao)
		gl.BindVertexArray(c.vao)
		gl.GenBuffers(5, &c.buffers[0])

		gl.BindBuffer(gl.ARRAY_BUFFER, c.buffers[0])
		gl.BufferData(gl.ARRAY_BUFFER, len(m.Positions)*3*4,
			unsafe.Pointer(&m.Positions[0]), gl.STATIC_DRAW)
		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, nil)
		gl.EnableVertexAttribArray(0)

		gl.BindBuffer(gl.ARRAY_BUFFER, c.buffers[1])
		gl.BufferData(gl.ARRAY_BUFFER, len(m.Normals)*3*4,
			unsafe.Pointer(&m.Normals[0]), gl.STATIC_DRAW)
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 0, nil)
		gl.EnableVertexAttribArray(1)

		gl.BindBuffer(gl.ARRAY_BUFFER, c.buffers[2])
		gl.BufferData(gl.ARRAY_BUFFER, len(m.TexCoords)*2*4,
			unsafe.Pointer(&m.TexCoords[0]), gl.STATIC_DRAW)
		gl.VertexAttribPointer(2, 2, gl.FLOAT, false, 0, nil)
		gl.EnableVertexAttribArray(2)

		gl.BindBuffer(gl.ARRAY_BUFFER, c.buffers[3])
		gl.BufferData(gl.ARRAY_BUFFER, len(m.Colors)*4,
			unsafe.Pointer(&m.Colors[0]), gl.STATIC_DRAW)
		gl.VertexAttribPointer(3, 4, gl.UNSIGNED_BYTE, true, 0, nil)
		gl.EnableVertexAttribArray(3)

		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, c.buffers[4])
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4,
			unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

		gl.BindVertexArray(0)

		if m.Texture != nil {
			c.texture = uploadTexture(m.Texture)
		}
		l.chunks = append(l.chunks, c)
	}

	logger.Debug("landscape uploaded", zap.Int("chunks", len(l.chunks)))
	return l
}

// Release frees the GPU buffers of an uploaded landscape.
func (r *Renderer) Release(l *Landscape) {
	if l == nil {
		return
	}
	for i := range l.chunks {
		c := &l.chunks[i]
		gl.DeleteBuffers(5, &c.buffers[0])
		gl.DeleteVertexArrays(1, &c.vao)
		if c.texture != 0 {
			gl.DeleteTextures(1, &c.texture)
		}
	}
	l.chunks = nil
}

// Draw renders the landscape with the given draw toggles. The VBO bit is
// kept in RenderCaps for scene-record compatibility; a core-profile context
// always draws from buffers, so it has no effect here.
func (r *Renderer) Draw(l *Landscape, caps terrain.RenderCaps, proj, view math.Mat4, lightDir [3]float32) {
	if l == nil || len(l.chunks) == 0 {
		return
	}

	if caps.Fill {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uProj, 1, false, proj.Ptr())
	gl.UniformMatrix4fv(r.uView, 1, false, view.Ptr())
	gl.Uniform3f(r.uLightDir, lightDir[0], lightDir[1], lightDir[2])
	gl.Uniform1f(r.uFogDens, r.config.FogDensity)
	gl.Uniform4f(r.uFogColor, fogColor[0], fogColor[1], fogColor[2], fogColor[3])
	gl.Uniform1i(r.uShaded, boolUniform(caps.Shaded))
	gl.Uniform1i(r.uColored, boolUniform(caps.Colored))
	gl.Uniform1i(r.uTexture, 0)

	for i, c := range l.chunks {
		if i > 0 && !caps.Objects {
			break
		}
		textured := caps.Textured && c.texture != 0
		gl.Uniform1i(r.uTextured, boolUniform(textured))
		if textured {
			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, c.texture)
		}
		gl.BindVertexArray(c.vao)
		gl.DrawElements(gl.TRIANGLES, c.count, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

func boolUniform(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// uploadTexture creates a mipmapped repeating texture from a noise bitmap.
func uploadTexture(t *terrain.NoiseTexture) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(t.Size), int32(t.Size), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&t.Pixels[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// createShaderProgram compiles and links the terrain shader.
func (r *Renderer) createShaderProgram() (uint32, error) {
	vertexShaderSource := `
		#version 410 core

		layout (location = 0) in vec3 aPos;
		layout (location = 1) in vec3 aNormal;
		layout (location = 2) in vec2 aTexCoord;
		layout (location = 3) in vec4 aColor;

		uniform mat4 uProj;
		uniform mat4 uView;

		out vec3 vNormal;
		out vec2 vTexCoord;
		out vec4 vColor;
		out float vEyeDist;

		void main() {
			vec4 eye = uView * vec4(aPos, 1.0);
			gl_Position = uProj * eye;
			vNormal = aNormal;
			vTexCoord = aTexCoord;
			vColor = aColor;
			vEyeDist = length(eye.xyz);
		}
	` + "\x00"

	fragmentShaderSource := `
		#version 410 core

		in vec3 vNormal;
		in vec2 vTexCoord;
		in vec4 vColor;
		in float vEyeDist;

		uniform vec3 uLightDir;
		uniform float uFogDensity;
		uniform vec4 uFogColor;
		uniform bool uShaded;
		uniform bool uTextured;
		uniform bool uColored;
		uniform sampler2D uTexture;

		out vec4 FragColor;

		void main() {
			vec4 c = uColored ? vColor : vec4(1.0);
			if (uTextured) {
				c *= texture(uTexture, vTexCoord);
			}
			if (uShaded) {
				float d = max(dot(normalize(vNormal), -normalize(uLightDir)), 0.0);
				c.rgb *= 0.35 + 0.65 * d;
			}
			float fog = clamp(exp(-uFogDensity * vEyeDist), 0.0, 1.0);
			FragColor = vec4(mix(uFogColor.rgb, c.rgb, fog), c.a);
		}
	` + "\x00"

	// Compile vertex shader
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	// Compile fragment shader
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	// Link program
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// Check link status
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %s", log)
	}

	logger.Debug("shader program created", zap.Uint32("program", program))
	return program, nil
}

// compileShader compiles a shader from source.
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	// Check compile status
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %s", log)
	}

	return shader, nil
}
