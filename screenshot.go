package main

import (
	"github.com/stewi1014/glhello/capture"
	"github.com/stewi1014/glhello/gldriver"
)

// screenshot reads the framebuffer on the GL thread and encodes it in the
// background.
func (r *renderer) screenshot(width, height int) {
	img := gldriver.ReadPixels(width, height)

	r.saving.Add(1)
	go func() {
		defer r.saving.Done()
		defer CatchPanicToContext(r.quit)

		path, err := capture.Save(r.cfg.ScreenshotDir, r.program.Name, capture.Flip(img))
		if err != nil {
			r.logger.Error("screenshot failed", "err", err)
			return
		}
		r.logger.Info("screenshot saved", "path", path)
	}()
}
