package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/richinsley/glscale/encoder"
	"github.com/richinsley/glscale/glfwcontext"
	"github.com/richinsley/glscale/glgpu"
	options "github.com/richinsley/glscale/options"
	renderer "github.com/richinsley/glscale/renderer"
	"github.com/richinsley/glscale/translator"
)

func init() {
	runtime.LockOSThread()
}

func run(opts *options.Options) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	// If recording, the window will be hidden
	ctx, err := glfwcontext.New(opts, !*opts.Record)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer ctx.Shutdown()
	ctx.MakeCurrent()

	dev, err := glgpu.New()
	if err != nil {
		return err
	}

	tr, err := translator.New(context.Background())
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(ctx, dev, tr)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	if *opts.Record {
		width, height := ctx.GetFramebufferSize()
		enc, err := encoder.NewFFmpegEncoder(opts, width, height)
		if err != nil {
			return fmt.Errorf("failed to start encoder: %w", err)
		}
		if err := r.Record(opts.RecordFrames(), enc); err != nil {
			return err
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return nil
	}

	log.Println("Starting render loop...")
	r.Run(*opts.Frames)
	return nil
}

func main() {
	opts := options.Register(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("Scaled triangle")
		flag.PrintDefaults()
		return
	}

	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	if err := run(opts); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
