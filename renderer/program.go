package renderer

import (
	"fmt"
	"strings"

	"github.com/richinsley/glscale/graphics"
	"github.com/richinsley/glscale/shader"
)

// Translator converts a stage's source into the dialect of the current
// context.
type Translator interface {
	Translate(source string, stage graphics.ShaderStage) (*shader.Translated, error)
}

// Phase names the step of a program build that failed.
type Phase int

const (
	PhaseTranslate Phase = iota
	PhaseCreate
	PhaseCompile
	PhaseLink
	PhaseUniform
	PhaseValidate
)

func (p Phase) String() string {
	switch p {
	case PhaseTranslate:
		return "translate"
	case PhaseCreate:
		return "create"
	case PhaseCompile:
		return "compile"
	case PhaseLink:
		return "link"
	case PhaseUniform:
		return "uniform lookup"
	case PhaseValidate:
		return "validate"
	default:
		return "unknown"
	}
}

// BuildError reports a failed program build. Stage is only meaningful for
// the per-stage phases (translate, compile, and shader creation when
// Program is false). Log holds the diagnostic text from the translator or
// the driver.
type BuildError struct {
	Phase   Phase
	Stage   graphics.ShaderStage
	Program bool
	Log     string
}

func (e *BuildError) Error() string {
	if e.Program {
		return fmt.Sprintf("shader program %s failed: %s", e.Phase, e.Log)
	}
	return fmt.Sprintf("%s shader %s failed: %s", e.Stage, e.Phase, e.Log)
}

// Program is a linked, validated shader program with its resolved scale
// uniform.
type Program struct {
	handle   uint32
	scaleLoc int32
}

func (p *Program) Handle() uint32 {
	return p.handle
}

// ScaleLocation returns the location of the scale uniform; never -1.
func (p *Program) ScaleLocation() int32 {
	return p.scaleLoc
}

func (p *Program) Destroy(dev graphics.Device) {
	dev.DeleteProgram(p.handle)
}

// BuildProgram translates, compiles and links sources into one program,
// resolves the scale uniform, validates the program against the current
// state and makes it the current program. Nothing is left allocated on
// failure.
func BuildProgram(dev graphics.Device, tr Translator, sources []shader.Source) (*Program, error) {
	handle := dev.CreateProgram()
	if handle == 0 {
		return nil, &BuildError{Phase: PhaseCreate, Program: true, Log: "no program object returned"}
	}

	var shaders []uint32
	defer func() {
		for _, sh := range shaders {
			dev.DeleteShader(sh)
		}
	}()

	variables := map[string]string{}
	for _, src := range sources {
		translated, err := tr.Translate(src.Code, src.Stage)
		if err != nil {
			dev.DeleteProgram(handle)
			return nil, &BuildError{Phase: PhaseTranslate, Stage: src.Stage, Log: err.Error()}
		}
		for name, mapped := range translated.Variables {
			variables[name] = mapped
		}

		sh, err := compileShader(dev, translated.Code, src.Stage)
		if err != nil {
			dev.DeleteProgram(handle)
			return nil, err
		}
		shaders = append(shaders, sh)
		dev.AttachShader(handle, sh)
	}

	dev.LinkProgram(handle)
	if !dev.LinkStatus(handle) {
		log := diagnostic(dev.ProgramInfoLog(handle))
		dev.DeleteProgram(handle)
		return nil, &BuildError{Phase: PhaseLink, Program: true, Log: log}
	}

	uniformName := (&shader.Translated{Variables: variables}).MappedName(shader.ScaleUniform)
	scaleLoc := dev.UniformLocation(handle, uniformName)
	if scaleLoc == -1 {
		dev.DeleteProgram(handle)
		return nil, &BuildError{
			Phase:   PhaseUniform,
			Program: true,
			Log:     fmt.Sprintf("uniform %s (%s) not found", shader.ScaleUniform, uniformName),
		}
	}

	dev.ValidateProgram(handle)
	if !dev.ValidateStatus(handle) {
		log := diagnostic(dev.ProgramInfoLog(handle))
		dev.DeleteProgram(handle)
		return nil, &BuildError{Phase: PhaseValidate, Program: true, Log: log}
	}

	dev.UseProgram(handle)
	return &Program{handle: handle, scaleLoc: scaleLoc}, nil
}

func compileShader(dev graphics.Device, source string, stage graphics.ShaderStage) (uint32, error) {
	sh := dev.CreateShader(stage)
	if sh == 0 {
		return 0, &BuildError{Phase: PhaseCreate, Stage: stage, Log: "no shader object returned"}
	}
	dev.ShaderSource(sh, source)
	dev.CompileShader(sh)
	if !dev.CompileStatus(sh) {
		log := diagnostic(dev.ShaderInfoLog(sh))
		dev.DeleteShader(sh)
		return 0, &BuildError{Phase: PhaseCompile, Stage: stage, Log: log}
	}
	return sh, nil
}

// diagnostic substitutes a placeholder for drivers that fail without a log.
func diagnostic(log string) string {
	if strings.TrimSpace(log) == "" {
		return "driver reported no diagnostic"
	}
	return log
}
