// Package window stands up a glfw window with an OpenGL 4.1 core context and
// drives a Scene from it until the window closes.
package window

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stewi1014/glhello/gldriver"
)

func init() {
	// glfw and the GL context must stay on the main thread
	runtime.LockOSThread()
}

type Config struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

// Scene is what a window draws. All methods are called on the thread owning
// the GL context.
type Scene interface {
	// Setup is called once the context is current, before the first frame.
	Setup(w *Window) error
	// Frame draws one frame. Returning an error stops the loop.
	Frame(f Frame) error
	// Teardown is called before the context is destroyed if Setup succeeded.
	Teardown()
}

type Frame struct {
	// Time is the number of seconds since the first frame, Delta the number
	// since the previous one.
	Time  float64
	Delta float64

	// Framebuffer size in pixels.
	Width  int
	Height int

	Window *Window
}

type Window struct {
	*glfw.Window
	width, height int
	keys          map[glfw.Key]bool
}

// FramebufferSize returns the size in pixels as of the last resize.
func (w *Window) FramebufferSize() (width, height int) {
	return w.width, w.height
}

// KeyPressed reports whether key went down since the last call for that key.
func (w *Window) KeyPressed(key glfw.Key) bool {
	down := w.GetKey(key) == glfw.Press
	was := w.keys[key]
	w.keys[key] = down
	return down && !was
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// Run creates the window, hands it to scene and runs the frame loop until the
// window is closed, Escape is pressed, ctx is done or a frame fails.
func Run(ctx context.Context, cfg Config, scene Scene) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw.Init failed: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolHint(cfg.Resizable))

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}
	defer window.Destroy()

	window.MakeContextCurrent()
	if err := gldriver.Init(); err != nil {
		return err
	}

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{
		Window: window,
		keys:   make(map[glfw.Key]bool),
	}
	w.width, w.height = window.GetFramebufferSize()
	gldriver.Viewport(w.width, w.height)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		gldriver.Viewport(width, height)
	})

	if err := scene.Setup(w); err != nil {
		return err
	}
	defer scene.Teardown()

	start := glfw.GetTime()
	last := start
	for !window.ShouldClose() {
		if ctx.Err() != nil {
			if cause := context.Cause(ctx); !errors.Is(cause, context.Canceled) {
				return cause
			}
			return nil
		}

		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		now := glfw.GetTime()
		err := scene.Frame(Frame{
			Time:   now - start,
			Delta:  now - last,
			Width:  w.width,
			Height: w.height,
			Window: w,
		})
		if err != nil {
			return err
		}
		last = now

		window.SwapBuffers()
		glfw.PollEvents()
	}

	return nil
}
