// Package wireframe outlines the block under the camera ray.
package wireframe

import (
	"path/filepath"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"mcvox/internal/graphics"
	renderer "mcvox/internal/graphics/renderer"
	"mcvox/internal/profiling"
)

const (
	vertShader = "wireframe.vert"
	fragShader = "wireframe.frag"

	outlineScale = 1.01
)

// Cube edges as line pairs around the unit cell centred on the origin.
var cubeEdges = []float32{
	// Front face
	-0.5, -0.5, 0.5, 0.5, -0.5, 0.5,
	0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, -0.5, 0.5, 0.5,
	-0.5, 0.5, 0.5, -0.5, -0.5, 0.5,

	// Back face
	-0.5, -0.5, -0.5, 0.5, -0.5, -0.5,
	0.5, -0.5, -0.5, 0.5, 0.5, -0.5,
	0.5, 0.5, -0.5, -0.5, 0.5, -0.5,
	-0.5, 0.5, -0.5, -0.5, -0.5, -0.5,

	// Connecting edges
	-0.5, -0.5, 0.5, -0.5, -0.5, -0.5,
	0.5, -0.5, 0.5, 0.5, -0.5, -0.5,
	0.5, 0.5, 0.5, 0.5, 0.5, -0.5,
	-0.5, 0.5, 0.5, -0.5, 0.5, -0.5,
}

// Wireframe draws an outline around one highlighted block
type Wireframe struct {
	shaderDir string
	shader    *graphics.Shader
	vao       uint32
	vbo       uint32

	target    [3]int
	hasTarget bool
}

// NewWireframe creates a wireframe renderable that loads its shaders from shaderDir.
func NewWireframe(shaderDir string) *Wireframe {
	return &Wireframe{shaderDir: shaderDir}
}

// Init compiles the shader and uploads the cube edges.
func (w *Wireframe) Init() error {
	var err error
	w.shader, err = graphics.NewShader(
		filepath.Join(w.shaderDir, vertShader),
		filepath.Join(w.shaderDir, fragShader))
	if err != nil {
		return err
	}

	w.setupWireframeVAO()
	return nil
}

// SetTarget selects the block to outline; ok=false hides the outline.
func (w *Wireframe) SetTarget(pos [3]int, ok bool) {
	w.target = pos
	w.hasTarget = ok
}

func (w *Wireframe) SetViewport(width, height int) {}

// Render outlines the current target, if any
func (w *Wireframe) Render(ctx renderer.RenderContext) {
	if !w.hasTarget {
		return
	}
	defer profiling.Track("renderer.renderHighlightedBlock")()

	w.shader.Use()
	w.shader.SetMatrix4("proj", &ctx.Proj[0])
	w.shader.SetMatrix4("view", &ctx.View[0])

	model := mgl32.Translate3D(
		float32(w.target[0]),
		float32(w.target[1]),
		float32(w.target[2]),
	).Mul4(mgl32.Scale3D(outlineScale, outlineScale, outlineScale))

	w.shader.SetMatrix4("model", &model[0])
	w.shader.SetVector3("color", 0.0, 0.0, 0.0)

	gl.BindVertexArray(w.vao)
	gl.LineWidth(1.0)
	gl.DrawArrays(gl.LINES, 0, int32(len(cubeEdges)/3))
	gl.BindVertexArray(0)
}

// Dispose cleans up OpenGL resources
func (w *Wireframe) Dispose() {
	if w.shader != nil {
		w.shader.Delete()
	}
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
}

func (w *Wireframe) setupWireframeVAO() {
	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeEdges)*4, gl.Ptr(cubeEdges), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
}
