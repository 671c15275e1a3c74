package shader

import (
	"github.com/richinsley/glscale/graphics"
)

// ScaleUniform is the name of the per-frame scale factor in the vertex stage.
const ScaleUniform = "gScale"

// PositionAttrib is the attribute slot of the vertex position.
const PositionAttrib = 0

// Sources are written against WebGL2 (ESSL 3.00) and translated to the
// context's dialect before compiling.

const vertexShaderSource = `#version 300 es
layout (location = 0) in vec3 Position;
uniform float gScale;
void main()
{
    gl_Position = vec4(gScale * Position.x, gScale * Position.y, Position.z, 1.0);
}
`

const fragmentShaderSource = `#version 300 es
precision highp float;
out vec4 FragColor;
void main()
{
    FragColor = vec4(1.0, 0.0, 0.0, 1.0);
}
`

// Source is the text of one pipeline stage.
type Source struct {
	Stage graphics.ShaderStage
	Code  string
}

// Sources returns the embedded vertex and fragment stages, in link order.
func Sources() []Source {
	return []Source{
		{Stage: graphics.VertexShader, Code: vertexShaderSource},
		{Stage: graphics.FragmentShader, Code: fragmentShaderSource},
	}
}

// Translated is a stage translated for the current context. Variables maps
// the names used in the original source to the names in Code.
type Translated struct {
	Code      string
	Variables map[string]string
}

// MappedName returns the translated name of a variable, or name itself when
// the translator left it alone.
func (t *Translated) MappedName(name string) string {
	if t == nil {
		return name
	}
	if mapped, ok := t.Variables[name]; ok && mapped != "" {
		return mapped
	}
	return name
}
