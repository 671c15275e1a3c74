package graphics

// Context defines the interface for an OpenGL context and the window
// system that owns it.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// SwapBuffers presents the back buffer.
	SwapBuffers()
	// PollEvents dispatches pending window events. It must not be called
	// from inside a window callback.
	PollEvents()
	GetFramebufferSize() (int, int)
	Time() float64
	// SetRefreshCallback registers f to be called whenever the window
	// system asks for the contents to be redrawn.
	SetRefreshCallback(f func())
}
