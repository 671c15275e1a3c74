package translator

import (
	"context"
	"fmt"

	"github.com/richinsley/glscale/graphics"
	"github.com/richinsley/glscale/shader"
	gst "github.com/richinsley/goshadertranslator"
)

// Translator converts WebGL2 shader sources into desktop GLSL 4.10.
type Translator struct {
	st *gst.ShaderTranslator
}

func New(ctx context.Context) (*Translator, error) {
	st, err := gst.NewShaderTranslator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start shader translator: %w", err)
	}
	return &Translator{st: st}, nil
}

// Translate translates source for the given stage. The returned variable
// map covers every variable the translator reported, keyed by its name in
// source.
func (t *Translator) Translate(source string, stage graphics.ShaderStage) (*shader.Translated, error) {
	out, err := t.st.TranslateShader(source, stage.String(), gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, err
	}
	retv := &shader.Translated{
		Code:      out.Code,
		Variables: make(map[string]string, len(out.Variables)),
	}
	for name, v := range out.Variables {
		retv.Variables[name] = v.MappedName
	}
	return retv, nil
}
