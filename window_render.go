package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stewi1014/glhello/config"
	"github.com/stewi1014/glhello/gldriver"
	"github.com/stewi1014/glhello/programs"
	"github.com/stewi1014/glhello/shader"
	"github.com/stewi1014/glhello/window"
)

var _ window.Scene = (*renderer)(nil)

func newRenderer(cfg config.Config, program programs.Program, quit context.CancelCauseFunc) *renderer {
	return &renderer{
		cfg:        cfg,
		program:    program,
		quit:       quit,
		logger:     slog.Default().With("program", program.Name),
		gl:         gldriver.Driver{},
		newMesh:    func(m programs.Mesh) drawer { return gldriver.NewMesh(m) },
		clear:      gldriver.Clear,
		checkError: gldriver.CheckError,
	}
}

// drawer is a mesh uploaded to the GPU.
type drawer interface {
	Draw()
	Delete()
}

// renderer draws every pass of a program each frame.
type renderer struct {
	cfg     config.Config
	program programs.Program
	quit    context.CancelCauseFunc
	logger  *slog.Logger

	gl         shader.GL
	newMesh    func(programs.Mesh) drawer
	clear      func(colour [4]float32)
	checkError func() error

	passes  []*pass
	watcher *shader.Watcher
	saving  sync.WaitGroup

	lastGLError string
}

type pass struct {
	programs.Pass
	shader *shader.Program
	mesh   drawer
}

// Setup builds every pass. If it fails whatever was already built is released,
// since the window only tears down scenes that set up.
func (r *renderer) Setup(w *window.Window) error {
	if err := r.setup(); err != nil {
		r.Teardown()
		return err
	}
	r.logger.Info("scene ready", "passes", len(r.passes), "watch", r.cfg.Watch)
	return nil
}

func (r *renderer) setup() error {
	for i, p := range r.program.Passes {
		ps := &pass{
			Pass: p,
			mesh: r.newMesh(p.Mesh),
		}
		r.passes = append(r.passes, ps)

		if err := r.loadPass(ps); err != nil {
			if !r.cfg.Watch {
				return fmt.Errorf("pass %d of %v: %w", i, r.program.Name, err)
			}
			r.logger.Warn("pass disabled until its shaders build", "pass", i, "err", err)
		}
	}

	if r.cfg.Watch {
		var paths []string
		for _, p := range r.passes {
			vertex, fragment := r.paths(p)
			paths = append(paths, vertex, fragment)
		}

		var err error
		r.watcher, err = shader.NewWatcher(paths, shader.WithLogger(r.logger))
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) paths(p *pass) (vertex, fragment string) {
	return filepath.Join(r.cfg.ShaderDir, filepath.FromSlash(p.VertexPath)),
		filepath.Join(r.cfg.ShaderDir, filepath.FromSlash(p.FragmentPath))
}

func (r *renderer) loadPass(p *pass) error {
	opt := shader.WithLogger(r.logger.With("vertex", p.VertexPath, "fragment", p.FragmentPath))

	var err error
	if r.cfg.ShaderDir == "" {
		p.shader, err = shader.LoadFS(r.gl, programs.Shaders, p.VertexPath, p.FragmentPath, opt)
	} else {
		vertex, fragment := r.paths(p)
		p.shader, err = shader.Load(r.gl, vertex, fragment, opt)
	}
	return err
}

// reload rebuilds every pass. Passes that fail keep drawing with their last
// good program.
func (r *renderer) reload() {
	for i, p := range r.passes {
		var err error
		if p.shader == nil {
			err = r.loadPass(p)
		} else {
			err = p.shader.Reload()
		}

		if err != nil {
			r.logger.Warn("shader reload failed", "pass", i, "err", err)
		}
	}
}

func (r *renderer) Frame(f window.Frame) error {
	defer CatchPanicToContext(r.quit)

	if r.watcher != nil && r.watcher.Changed() {
		r.reload()
	}

	r.clear(r.cfg.ClearColour)

	for _, p := range r.passes {
		if p.shader == nil {
			continue
		}

		err := p.shader.With(func(b *shader.Binding) error {
			if p.Uniforms != nil {
				if err := b.SetUniforms(p.Uniforms(f.Time)); err != nil {
					return err
				}
			}
			p.mesh.Draw()
			return nil
		})
		if err != nil {
			return err
		}
	}

	// report each distinct error once rather than every frame
	if err := r.checkError(); err != nil {
		if msg := err.Error(); msg != r.lastGLError {
			r.logger.Error("draw failed", "err", err)
			r.lastGLError = msg
		}
	} else {
		r.lastGLError = ""
	}

	if f.Window == nil {
		return nil
	}
	if f.Window.KeyPressed(glfw.KeyF12) {
		r.screenshot(f.Width, f.Height)
	}
	if f.Window.KeyPressed(glfw.KeyR) {
		r.reload()
	}

	return nil
}

func (r *renderer) Teardown() {
	r.saving.Wait()

	if r.watcher != nil {
		if err := r.watcher.Close(); err != nil {
			r.logger.Warn("closing shader watcher", "err", err)
		}
	}

	for _, p := range r.passes {
		if p.shader != nil {
			p.shader.Delete()
		}
		p.mesh.Delete()
	}
	r.passes = nil
	r.watcher = nil
}
