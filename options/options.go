package options

import (
	"flag"
	"fmt"
	"strings"
)

type Options struct {
	Width      *int
	Height     *int
	PosX       *int
	PosY       *int
	Title      *string
	Frames     *int // 0 runs until the window is closed
	Help       *bool
	Record     *bool
	FPS        *int
	OutputFile *string
	Codec      *string // h264 or hevc
	FFMPEGPath *string // empty uses ffmpeg from PATH
}

// Register defines the command-line flags on fs and returns the options
// they populate once fs is parsed.
func Register(fs *flag.FlagSet) *Options {
	return &Options{
		Width:      fs.Int("width", 1024, "Width of the window"),
		Height:     fs.Int("height", 768, "Height of the window"),
		PosX:       fs.Int("x", 200, "Horizontal window position"),
		PosY:       fs.Int("y", 200, "Vertical window position"),
		Title:      fs.String("title", "Tutorial 05", "Window title"),
		Frames:     fs.Int("frames", 0, "Number of frames to render (0 renders until the window is closed)"),
		Help:       fs.Bool("help", false, "Show help message"),
		Record:     fs.Bool("record", false, "Render into a hidden window and encode the frames with ffmpeg"),
		FPS:        fs.Int("fps", 60, "Frames per second for recording"),
		OutputFile: fs.String("output", "output.mp4", "Output file name for recording"),
		Codec:      fs.String("codec", "h264", "Video codec for recording (h264, hevc)"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
	}
}

// RecordFrames returns the number of frames to encode in record mode.
// Without an explicit frame count ten seconds are recorded.
func (o *Options) RecordFrames() int {
	if *o.Frames > 0 {
		return *o.Frames
	}
	return *o.FPS * 10
}

func (o *Options) Validate() error {
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", *o.Width, *o.Height)
	}
	if *o.Frames < 0 {
		return fmt.Errorf("frame count must not be negative, got %d", *o.Frames)
	}
	if !*o.Record {
		return nil
	}
	if *o.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", *o.FPS)
	}
	if strings.TrimSpace(*o.OutputFile) == "" {
		return fmt.Errorf("an output file is required when recording")
	}
	switch *o.Codec {
	case "h264", "hevc":
	default:
		return fmt.Errorf("unsupported codec %q", *o.Codec)
	}
	return nil
}
