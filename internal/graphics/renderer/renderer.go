package renderer

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"mcvox/internal/graphics"
	"mcvox/internal/profiling"
	"mcvox/internal/world"
)

// skyColour clears the frame.
var skyColour = mgl32.Vec4{0.53, 0.81, 0.92, 1}

// Renderer draws its renderables in order over a cleared frame.
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera
}

// NewRenderer sets the fixed GL state and initialises rs in order. If one
// fails, the ones already initialised are disposed.
func NewRenderer(camera *graphics.Camera, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	for i, r := range rs {
		if err := r.Init(); err != nil {
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, err
		}
	}
	return &Renderer{renderables: rs, camera: camera}, nil
}

// Render clears the frame and draws every renderable with the current
// camera matrices.
func (r *Renderer) Render(w *world.World, dt float64) {
	defer profiling.Track("renderer.Render")()

	gl.ClearColor(skyColour[0], skyColour[1], skyColour[2], skyColour[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	ctx := RenderContext{
		Camera: r.camera,
		World:  w,
		DT:     dt,
		View:   r.camera.GetViewMatrix(),
		Proj:   r.camera.GetProjectionMatrix(),
	}
	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Dispose releases renderables in reverse order of creation.
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

func (r *Renderer) Camera() *graphics.Camera {
	return r.camera
}

// UpdateViewport updates the camera and every renderable after a resize.
func (r *Renderer) UpdateViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.camera.SetViewport(width, height)
	for _, renderable := range r.renderables {
		renderable.SetViewport(width, height)
	}
}
