package encoder

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/richinsley/glscale/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame represents a single rendered frame, ready for encoding. Pixels are
// tightly packed RGBA8 rows, bottom row first.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// FFmpegEncoder pipes raw frames into an ffmpeg process.
type FFmpegEncoder struct {
	width      int
	height     int
	frames     chan *Frame
	done       chan error
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	closed     bool
}

// FrameSize returns the byte size of one RGBA8 frame.
func FrameSize(width, height int) int {
	return width * height * 4
}

// getArgs returns the ffmpeg input and output arguments for frames of the
// given size.
func getArgs(opts *options.Options, width, height int) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": *opts.FPS,
	}

	// GL rows arrive bottom-up.
	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}
	if *opts.Codec == "hevc" {
		outputArgs["c:v"] = "libx265"
		if strings.HasSuffix(strings.ToLower(*opts.OutputFile), ".mp4") {
			outputArgs["tag:v"] = "hvc1"
		}
	} else {
		outputArgs["c:v"] = "libx264"
	}
	return
}

// NewFFmpegEncoder starts ffmpeg writing to opts.OutputFile. Frames must be
// width x height; this is the framebuffer size, which can differ from the
// requested window size on high-DPI displays.
func NewFFmpegEncoder(opts *options.Options, width, height int) (*FFmpegEncoder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if *opts.FPS <= 0 {
		return nil, fmt.Errorf("invalid frame rate %d", *opts.FPS)
	}

	pipeReader, pipeWriter := io.Pipe()
	e := &FFmpegEncoder{
		width:      width,
		height:     height,
		frames:     make(chan *Frame, 3),
		done:       make(chan error, 1),
		pipeReader: pipeReader,
		pipeWriter: pipeWriter,
	}

	inputArgs, outputArgs := getArgs(opts, width, height)
	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if *opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*opts.FFMPEGPath)
	}

	log.Printf("Encoding %dx%d at %d fps to %s", e.width, e.height, *opts.FPS, *opts.OutputFile)
	go e.run(ffmpegCmd)
	return e, nil
}

// run is the consumer. It feeds queued frames into ffmpeg until the frame
// channel is closed, then reports the first failure on done.
func (e *FFmpegEncoder) run(ffmpegCmd *ffmpeg.Stream) {
	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// unblock writers if ffmpeg went away early
		e.pipeReader.Close()
		errc <- err
	}()

	var writeErr error
	for frame := range e.frames {
		if writeErr != nil {
			continue
		}
		if _, err := e.pipeWriter.Write(frame.Pixels); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame.PTS, err)
			log.Printf("Error: %v", writeErr)
		}
	}
	e.pipeWriter.Close()

	if err := <-errc; err != nil {
		e.done <- fmt.Errorf("ffmpeg failed: %w", err)
		return
	}
	e.done <- writeErr
}

// WriteFrame queues frame for encoding.
func (e *FFmpegEncoder) WriteFrame(frame *Frame) error {
	if e.closed {
		return fmt.Errorf("encoder is closed")
	}
	if want := FrameSize(e.width, e.height); len(frame.Pixels) != want {
		return fmt.Errorf("frame %d has %d bytes, want %d", frame.PTS, len(frame.Pixels), want)
	}
	e.frames <- frame
	return nil
}

// Close flushes the queued frames and waits for ffmpeg to exit.
func (e *FFmpegEncoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	close(e.frames)
	return <-e.done
}
