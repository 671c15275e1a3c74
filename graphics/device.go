package graphics

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

const (
	VertexShader ShaderStage = iota
	FragmentShader
)

// String returns the stage name in the form the shader translator expects.
func (s ShaderStage) String() string {
	switch s {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// Device is the subset of the OpenGL API the renderer drives. Handles are
// the raw GL object names; 0 means allocation failed. A Device is bound to
// the context that was current when it was created and must only be used
// from that context's thread.
type Device interface {
	// Version returns the GL_VERSION string of the current context.
	Version() string
	Viewport(width, height int)
	ClearColor(r, g, b, a float32)
	// Clear clears the color buffer.
	Clear()

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	GenBuffer() uint32
	// BindArrayBuffer binds buf to the GL_ARRAY_BUFFER target.
	BindArrayBuffer(buf uint32)
	// BufferStaticData copies data into the bound array buffer with
	// GL_STATIC_DRAW usage.
	BufferStaticData(data []float32)
	// ArrayBufferData reads size bytes back from the bound array buffer.
	ArrayBufferData(size int) []byte
	DeleteBuffer(buf uint32)

	CreateShader(stage ShaderStage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	CompileStatus(shader uint32) bool
	// ShaderInfoLog returns the full compiler log of shader.
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	LinkStatus(program uint32) bool
	ValidateProgram(program uint32)
	ValidateStatus(program uint32) bool
	// ProgramInfoLog returns the full link/validate log of program.
	ProgramInfoLog(program uint32) string
	// UniformLocation returns -1 when name is not an active uniform.
	UniformLocation(program uint32, name string) int32
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	Uniform1f(location int32, v float32)

	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	// VertexAttribFloats declares attribute index as size tightly packed,
	// non-normalized floats starting at offset 0 of the bound array buffer.
	VertexAttribFloats(index uint32, size int32)
	// DrawTriangles draws count vertices starting at first as GL_TRIANGLES.
	DrawTriangles(first, count int32)

	// ReadPixels reads the current read buffer as tightly packed RGBA8
	// rows, bottom row first.
	ReadPixels(width, height int) []byte
}
