package renderer

import (
	"fmt"
	"log"

	"github.com/richinsley/glscale/encoder"
)

// FrameSink consumes rendered frames.
type FrameSink interface {
	WriteFrame(frame *encoder.Frame) error
	Close() error
}

// Record renders frames frames, reading each back buffer before it is
// presented, and hands them to sink. The sink is closed on return.
func (r *Renderer) Record(frames int, sink FrameSink) error {
	width, height := r.context.GetFramebufferSize()
	log.Printf("Recording %d frames at %dx%d", frames, width, height)

	for i := 0; i < frames; i++ {
		r.draw()
		pixels := r.device.ReadPixels(width, height)
		r.context.SwapBuffers()

		if err := sink.WriteFrame(&encoder.Frame{Pixels: pixels, PTS: int64(i)}); err != nil {
			sink.Close()
			return fmt.Errorf("failed to queue frame %d: %w", i, err)
		}
		r.context.PollEvents()
	}

	if err := sink.Close(); err != nil {
		return fmt.Errorf("failed to finish recording: %w", err)
	}
	return nil
}
