// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"image"
	"log/slog"
	"runtime"

	"cogentcore.org/core/base/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"

	"cogentcore.org/forward/gpu"
	"cogentcore.org/forward/gpu/gldevice"
	"cogentcore.org/forward/render"
)

func init() {
	// glfw and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Render the demo scene in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, path, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			w, _ := cmd.Flags().GetInt("width")
			h, _ := cmd.Flags().GetInt("height")
			return run(cmd.Context(), image.Pt(w, h), s, path)
		},
	}
	cmd.Flags().Int("width", 1280, "window width")
	cmd.Flags().Int("height", 720, "window height")
	return cmd
}

// newWindow opens a window with an OpenGL 4.1 core context made
// current, with vsync on.
func newWindow(size image.Point, title string) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, err
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	win, err := glfw.CreateWindow(size.X, size.Y, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	return win, nil
}

func run(ctx context.Context, size image.Point, s render.Settings, settingsPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	win, err := newWindow(size, "forward")
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer win.Destroy()

	dev, err := gldevice.New()
	if err != nil {
		return err
	}
	r := render.NewRenderer(render.NewContext(dev))
	defer r.Dispose()
	r.SetSettings(s)

	var updates <-chan render.Settings
	if settingsPath != "" {
		updates = errors.Log1(render.WatchSettings(ctx, settingsPath))
	}

	d := newDemo()
	r.Context.Resources.UploadScene(d.Scene)
	errors.Log(r.Precompile(ctx, d.Scene))

	for !win.ShouldClose() && ctx.Err() == nil {
		select {
		case ns, ok := <-updates:
			if !ok {
				updates = nil
				break
			}
			slog.Info("settings reloaded", "path", settingsPath)
			r.SetSettings(ns)
		default:
		}

		fw, fh := win.GetFramebufferSize()
		r.SetSize(image.Pt(fw, fh))
		if fh > 0 {
			d.Scene.Camera.Aspect = float32(fw) / float32(fh)
		}
		d.animate(float32(glfw.GetTime()))

		if err := r.Render(d.Scene); err != nil {
			if !errors.Is(err, gpu.ErrContextLost) {
				return err
			}
			slog.Warn("context lost, restoring resources", "err", err)
			r.Restore()
		}
		win.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}
