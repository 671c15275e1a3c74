package renderer

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/richinsley/glscale/encoder"
	"github.com/richinsley/glscale/graphics"
	"github.com/richinsley/glscale/shader"
)

// fakeDevice records the calls made against it and keeps just enough
// state to answer the renderer's queries.
type fakeDevice struct {
	calls []string
	next  uint32

	buffers    map[uint32][]byte
	boundArray uint32
	current    uint32

	shaderStage map[uint32]graphics.ShaderStage
	deleted     map[uint32]bool

	// failure injection
	zeroShader    map[graphics.ShaderStage]bool
	zeroProgram   bool
	compileLogs   map[graphics.ShaderStage]string
	linkLog       string
	validateLog   string
	uniforms      map[string]int32
	attribEnabled map[uint32]bool

	uniformValues []float32
	draws         []drawCall
	readSize      [2]int
}

type drawCall struct {
	first, count int32
	program      uint32
	buffer       uint32
	attribOn     bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		buffers:       map[uint32][]byte{},
		shaderStage:   map[uint32]graphics.ShaderStage{},
		deleted:       map[uint32]bool{},
		zeroShader:    map[graphics.ShaderStage]bool{},
		compileLogs:   map[graphics.ShaderStage]string{},
		uniforms:      map[string]int32{shader.ScaleUniform: 3},
		attribEnabled: map[uint32]bool{},
	}
}

func (d *fakeDevice) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *fakeDevice) handle() uint32 {
	d.next++
	return d.next
}

func (d *fakeDevice) Version() string { return "4.1 fake" }
func (d *fakeDevice) Viewport(width, height int) { d.record("Viewport %d %d", width, height) }
func (d *fakeDevice) ClearColor(r, g, b, a float32) { d.record("ClearColor") }
func (d *fakeDevice) Clear() { d.record("Clear") }

func (d *fakeDevice) GenVertexArray() uint32 {
	h := d.handle()
	d.record("GenVertexArray %d", h)
	return h
}
func (d *fakeDevice) BindVertexArray(vao uint32) { d.record("BindVertexArray %d", vao) }
func (d *fakeDevice) DeleteVertexArray(vao uint32) { d.deleted[vao] = true }

func (d *fakeDevice) GenBuffer() uint32 {
	h := d.handle()
	d.record("GenBuffer %d", h)
	return h
}

func (d *fakeDevice) BindArrayBuffer(buf uint32) {
	d.boundArray = buf
	d.record("BindArrayBuffer %d", buf)
}

func (d *fakeDevice) BufferStaticData(data []float32) {
	raw := make([]byte, len(data)*4)
	for i, f := range data {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(f))
	}
	d.buffers[d.boundArray] = raw
	d.record("BufferStaticData %d", len(data))
}

func (d *fakeDevice) ArrayBufferData(size int) []byte {
	out := make([]byte, size)
	copy(out, d.buffers[d.boundArray])
	return out
}

func (d *fakeDevice) DeleteBuffer(buf uint32) { d.deleted[buf] = true }

func (d *fakeDevice) CreateShader(stage graphics.ShaderStage) uint32 {
	if d.zeroShader[stage] {
		return 0
	}
	h := d.handle()
	d.shaderStage[h] = stage
	d.record("CreateShader %s", stage)
	return h
}

func (d *fakeDevice) ShaderSource(sh uint32, source string) { d.record("ShaderSource %d", sh) }
func (d *fakeDevice) CompileShader(sh uint32) { d.record("CompileShader %d", sh) }

func (d *fakeDevice) CompileStatus(sh uint32) bool {
	_, failed := d.compileLogs[d.shaderStage[sh]]
	return !failed
}

func (d *fakeDevice) ShaderInfoLog(sh uint32) string {
	return d.compileLogs[d.shaderStage[sh]]
}

func (d *fakeDevice) DeleteShader(sh uint32) { d.deleted[sh] = true }

func (d *fakeDevice) CreateProgram() uint32 {
	if d.zeroProgram {
		return 0
	}
	h := d.handle()
	d.record("CreateProgram %d", h)
	return h
}

func (d *fakeDevice) AttachShader(program, sh uint32) { d.record("AttachShader %d %d", program, sh) }
func (d *fakeDevice) LinkProgram(program uint32) { d.record("LinkProgram %d", program) }
func (d *fakeDevice) LinkStatus(program uint32) bool { return d.linkLog == "" }
func (d *fakeDevice) ValidateProgram(program uint32) { d.record("ValidateProgram %d", program) }

func (d *fakeDevice) ValidateStatus(program uint32) bool { return d.validateLog == "" }

func (d *fakeDevice) ProgramInfoLog(program uint32) string {
	if d.linkLog != "" {
		return d.linkLog
	}
	return d.validateLog
}

func (d *fakeDevice) UniformLocation(program uint32, name string) int32 {
	d.record("UniformLocation %s", name)
	if loc, ok := d.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *fakeDevice) UseProgram(program uint32) {
	d.current = program
	d.record("UseProgram %d", program)
}

func (d *fakeDevice) DeleteProgram(program uint32) { d.deleted[program] = true }

func (d *fakeDevice) Uniform1f(location int32, v float32) {
	d.uniformValues = append(d.uniformValues, v)
	d.record("Uniform1f %d", location)
}

func (d *fakeDevice) EnableVertexAttribArray(index uint32) {
	d.attribEnabled[index] = true
	d.record("EnableVertexAttribArray %d", index)
}

func (d *fakeDevice) DisableVertexAttribArray(index uint32) {
	d.attribEnabled[index] = false
	d.record("DisableVertexAttribArray %d", index)
}

func (d *fakeDevice) VertexAttribFloats(index uint32, size int32) {
	d.record("VertexAttribFloats %d %d", index, size)
}

func (d *fakeDevice) DrawTriangles(first, count int32) {
	d.draws = append(d.draws, drawCall{
		first:    first,
		count:    count,
		program:  d.current,
		buffer:   d.boundArray,
		attribOn: d.attribEnabled[shader.PositionAttrib],
	})
	d.record("DrawTriangles %d %d", first, count)
}

func (d *fakeDevice) ReadPixels(width, height int) []byte {
	d.readSize = [2]int{width, height}
	d.record("ReadPixels %d %d", width, height)
	return make([]byte, width*height*4)
}

// fakeContext stands in for a window.
type fakeContext struct {
	width, height int
	swaps         int
	polls         int
	closeAfter    int // ShouldClose reports true once polls reaches this; 0 never closes
	refresh       func()
	onPoll        func(c *fakeContext)
}

func (c *fakeContext) MakeCurrent() {}
func (c *fakeContext) Shutdown() {}
func (c *fakeContext) ShouldClose() bool {
	return c.closeAfter > 0 && c.polls >= c.closeAfter
}
func (c *fakeContext) SwapBuffers() { c.swaps++ }
func (c *fakeContext) PollEvents() {
	c.polls++
	if c.onPoll != nil {
		c.onPoll(c)
	}
}
func (c *fakeContext) GetFramebufferSize() (int, int) { return c.width, c.height }
func (c *fakeContext) Time() float64 { return 0 }
func (c *fakeContext) SetRefreshCallback(f func()) { c.refresh = f }

// fakeTranslator passes sources through, optionally renaming variables or
// failing one stage.
type fakeTranslator struct {
	renames map[string]string
	fail    map[graphics.ShaderStage]string
	seen    []graphics.ShaderStage
}

func (t *fakeTranslator) Translate(source string, stage graphics.ShaderStage) (*shader.Translated, error) {
	t.seen = append(t.seen, stage)
	if msg, ok := t.fail[stage]; ok {
		return nil, fmt.Errorf("%s", msg)
	}
	return &shader.Translated{Code: source, Variables: t.renames}, nil
}

// fakeSink collects recorded frames.
type fakeSink struct {
	frames   []*encoder.Frame
	failAt   int // fail WriteFrame when len(frames) reaches failAt; -1 never
	closeErr error
	closed   int
}

func (s *fakeSink) WriteFrame(frame *encoder.Frame) error {
	if s.failAt >= 0 && len(s.frames) == s.failAt {
		return fmt.Errorf("sink full")
	}
	s.frames = append(s.frames, frame)
	return nil
}

func (s *fakeSink) Close() error {
	s.closed++
	return s.closeErr
}
