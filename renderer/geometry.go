package renderer

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glscale/graphics"
)

// Triangle is the object-space geometry drawn every frame.
var Triangle = []mgl32.Vec3{
	{-1.0, -1.0, 0.0},
	{1.0, -1.0, 0.0},
	{0.0, 1.0, 0.0},
}

// Mesh is a vertex array uploaded once with static usage. Its contents are
// never changed after upload.
type Mesh struct {
	vao   uint32
	vbo   uint32
	count int32
}

// UploadMesh copies vertices into a new device buffer. The vertex array
// object stays bound; core profiles require one for attribute setup.
func UploadMesh(dev graphics.Device, vertices []mgl32.Vec3) *Mesh {
	m := &Mesh{count: int32(len(vertices))}
	m.vao = dev.GenVertexArray()
	dev.BindVertexArray(m.vao)
	m.vbo = dev.GenBuffer()
	dev.BindArrayBuffer(m.vbo)
	dev.BufferStaticData(flatten(vertices))
	return m
}

// Buffer returns the device buffer handle.
func (m *Mesh) Buffer() uint32 {
	return m.vbo
}

// Count returns the number of vertices in the buffer.
func (m *Mesh) Count() int32 {
	return m.count
}

// Vertices reads the buffer back from the device.
func (m *Mesh) Vertices(dev graphics.Device) []mgl32.Vec3 {
	dev.BindArrayBuffer(m.vbo)
	raw := dev.ArrayBufferData(int(m.count) * 3 * 4)
	vertices := make([]mgl32.Vec3, 0, m.count)
	for off := 0; off+12 <= len(raw); off += 12 {
		vertices = append(vertices, mgl32.Vec3{
			math.Float32frombits(binary.LittleEndian.Uint32(raw[off:])),
			math.Float32frombits(binary.LittleEndian.Uint32(raw[off+4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(raw[off+8:])),
		})
	}
	return vertices
}

func (m *Mesh) Destroy(dev graphics.Device) {
	dev.DeleteBuffer(m.vbo)
	dev.DeleteVertexArray(m.vao)
}

func flatten(vertices []mgl32.Vec3) []float32 {
	data := make([]float32, 0, len(vertices)*3)
	for _, v := range vertices {
		data = append(data, v[0], v[1], v[2])
	}
	return data
}
