package renderer

import (
	"fmt"
	"log"

	"github.com/richinsley/glscale/graphics"
	"github.com/richinsley/glscale/shader"
)

// Renderer owns every device resource of the scaled triangle and the
// animation state. It must be used from the thread that owns the context.
type Renderer struct {
	context   graphics.Context
	device    graphics.Device
	mesh      *Mesh
	program   *Program
	animation Animation
	frames    uint64
	width     int
	height    int
}

// NewRenderer uploads the triangle and builds the shader program on the
// context, which must already be current with its GL entry points loaded
// into dev. On error no device resources remain allocated.
func NewRenderer(ctx graphics.Context, dev graphics.Device, tr Translator) (*Renderer, error) {
	r := &Renderer{
		context: ctx,
		device:  dev,
	}

	log.Printf("GL version : %s", dev.Version())
	dev.ClearColor(0.0, 0.0, 0.0, 0.0)

	r.mesh = UploadMesh(dev, Triangle)

	var err error
	r.program, err = BuildProgram(dev, tr, shader.Sources())
	if err != nil {
		r.mesh.Destroy(dev)
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.width, r.height = ctx.GetFramebufferSize()
	return r, nil
}

func (r *Renderer) Shutdown() {
	r.program.Destroy(r.device)
	r.mesh.Destroy(r.device)
}

// Animation returns the current animation state.
func (r *Renderer) Animation() Animation {
	return r.animation
}

// Frames returns the number of frames rendered so far.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// RenderFrame advances the animation by one step, draws the triangle and
// presents the result.
func (r *Renderer) RenderFrame() {
	r.draw()
	r.context.SwapBuffers()
}

// draw renders one frame into the back buffer without presenting it.
func (r *Renderer) draw() {
	dev := r.device
	dev.Clear()

	dev.Uniform1f(r.program.scaleLoc, r.animation.Advance())

	dev.EnableVertexAttribArray(shader.PositionAttrib)
	dev.BindArrayBuffer(r.mesh.vbo)
	dev.VertexAttribFloats(shader.PositionAttrib, 3)

	dev.DrawTriangles(0, r.mesh.count)
	dev.DisableVertexAttribArray(shader.PositionAttrib)

	r.frames++
}

// Run renders frames until the window is asked to close or, when
// maxFrames is positive, until maxFrames frames have been rendered.
func (r *Renderer) Run(maxFrames int) {
	r.context.SetRefreshCallback(r.RenderFrame)
	defer r.context.SetRefreshCallback(nil)

	for !r.context.ShouldClose() {
		if maxFrames > 0 && r.frames >= uint64(maxFrames) {
			break
		}
		r.RenderFrame()
		r.context.PollEvents()
		r.syncViewport()
	}
	log.Printf("Rendered %d frames", r.frames)
}

func (r *Renderer) syncViewport() {
	width, height := r.context.GetFramebufferSize()
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.device.Viewport(width, height)
}
