package shader

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

// State is the lifecycle state of a Program.
type State int

const (
	Unlinked State = iota
	Linked
	Deleted
)

func (s State) String() string {
	switch s {
	case Unlinked:
		return "unlinked"
	case Linked:
		return "linked"
	case Deleted:
		return "deleted"
	}
	return "unknown"
}

type options struct {
	logger *slog.Logger
}

type Option func(*options)

// WithLogger sets the logger diagnostics are reported to.
// The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// sources remembers where a program's stages came from so it can be rebuilt.
type sources struct {
	read         func(name string) ([]byte, error)
	vertexPath   string
	fragmentPath string
	vertex       string
	fragment     string
}

func (s *sources) load(logger *slog.Logger) error {
	if s.read == nil {
		return nil
	}

	vertex, err := readStage(s.read, Vertex, s.vertexPath, logger)
	if err != nil {
		return err
	}
	fragment, err := readStage(s.read, Fragment, s.fragmentPath, logger)
	if err != nil {
		return err
	}

	s.vertex, s.fragment = vertex, fragment
	return nil
}

func readStage(read func(string) ([]byte, error), stage Stage, path string, logger *slog.Logger) (string, error) {
	b, err := read(path)
	if err != nil {
		err = &FileReadError{Stage: stage, Path: path, Err: err}
		logger.Error("shader file not read", "stage", stage.String(), "path", path, "err", err)
		return "", err
	}
	return string(b), nil
}

// Program is a linked vertex + fragment shader program.
//
// A Program returned by Load, LoadFS or New is always linked. Methods must be
// called from the thread owning the graphics context.
type Program struct {
	gl        GL
	id        uint32
	state     State
	logger    *slog.Logger
	src       sources
	locations map[string]int32
}

// Load reads the vertex and fragment stages from disk and builds a program.
func Load(gl GL, vertexPath, fragmentPath string, opts ...Option) (*Program, error) {
	return newProgram(gl, sources{
		read:         os.ReadFile,
		vertexPath:   vertexPath,
		fragmentPath: fragmentPath,
	}, opts)
}

// LoadFS is like Load but reads the stages from fsys.
func LoadFS(gl GL, fsys fs.FS, vertexPath, fragmentPath string, opts ...Option) (*Program, error) {
	return newProgram(gl, sources{
		read:         func(name string) ([]byte, error) { return fs.ReadFile(fsys, name) },
		vertexPath:   vertexPath,
		fragmentPath: fragmentPath,
	}, opts)
}

// New builds a program from vertex and fragment source text.
func New(gl GL, vertexSource, fragmentSource string, opts ...Option) (*Program, error) {
	return newProgram(gl, sources{
		vertex:   vertexSource,
		fragment: fragmentSource,
	}, opts)
}

func newProgram(gl GL, src sources, opts []Option) (*Program, error) {
	o := newOptions(opts)
	p := &Program{
		gl:        gl,
		state:     Unlinked,
		logger:    o.logger,
		src:       src,
		locations: make(map[string]int32),
	}

	if err := p.src.load(p.logger); err != nil {
		return nil, err
	}

	id, err := build(gl, p.logger, p.src.vertex, p.src.fragment)
	if err != nil {
		return nil, err
	}

	p.id = id
	p.state = Linked
	register(p)
	return p, nil
}

// build compiles both stages and links them. Both stages are always compiled so
// that every compiler diagnostic is reported; the stage objects are deleted
// before returning whatever the outcome.
func build(gl GL, logger *slog.Logger, vertex, fragment string) (uint32, error) {
	vertexShader, verr := compile(gl, logger, Vertex, vertex)
	fragmentShader, ferr := compile(gl, logger, Fragment, fragment)
	defer func() {
		if vertexShader != 0 {
			gl.DeleteShader(vertexShader)
		}
		if fragmentShader != 0 {
			gl.DeleteShader(fragmentShader)
		}
	}()

	if err := errors.Join(verr, ferr); err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	if ok, log := gl.LinkProgram(program, vertexShader, fragmentShader); !ok {
		gl.DeleteProgram(program)
		log = strings.TrimRight(log, "\x00\n")
		logger.Error("shader program failed to link", "stage", programTag, "log", log)
		return 0, &LinkError{Log: log}
	}

	return program, nil
}

func compile(gl GL, logger *slog.Logger, stage Stage, source string) (uint32, error) {
	shader := gl.CreateShader(stage)
	if ok, log := gl.CompileShader(shader, source); !ok {
		gl.DeleteShader(shader)
		log = strings.TrimRight(log, "\x00\n")
		logger.Error("shader failed to compile", "stage", stage.String(), "log", log)
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return shader, nil
}

// ID returns the underlying program handle, 0 once deleted.
func (p *Program) ID() uint32 {
	return p.id
}

func (p *Program) State() State {
	return p.state
}

// Paths returns the vertex and fragment source paths, or empty strings if the
// program was built from source text.
func (p *Program) Paths() (vertex, fragment string) {
	return p.src.vertexPath, p.src.fragmentPath
}

// Use makes p the active program for subsequent draws and uniform uploads.
func (p *Program) Use() {
	if p.state != Linked {
		p.logger.Warn("use of shader program that is not linked", "state", p.state.String())
		return
	}
	p.gl.UseProgram(p.id)
}

// Reload rebuilds the program from its sources, re-reading them from disk if it
// was loaded from files. If the rebuild fails p is left untouched.
func (p *Program) Reload() error {
	if p.state == Deleted {
		return ErrDeleted
	}

	src := p.src
	if err := src.load(p.logger); err != nil {
		return err
	}

	id, err := build(p.gl, p.logger, src.vertex, src.fragment)
	if err != nil {
		return err
	}

	if p.gl.CurrentProgram() == p.id {
		p.gl.UseProgram(id)
	}
	p.gl.DeleteProgram(p.id)
	unregister(p.gl, p.id)

	p.id = id
	p.src = src
	register(p)
	clear(p.locations)
	p.logger.Info("shader program reloaded", "program", id, "vertex", src.vertexPath, "fragment", src.fragmentPath)
	return nil
}

// Delete releases the program. It is safe to call more than once.
func (p *Program) Delete() {
	if p.state == Deleted {
		return
	}
	if p.id != 0 {
		p.gl.DeleteProgram(p.id)
		unregister(p.gl, p.id)
	}
	p.id = 0
	p.state = Deleted
	clear(p.locations)
}
