// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image"
	"io"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"cogentcore.org/forward/gpu/record"
	"cogentcore.org/forward/render"
)

func benchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Render the demo scene headless and print statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			frames, _ := cmd.Flags().GetInt("frames")
			res, err := bench(frames, s)
			if err != nil {
				return err
			}
			res.print(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().Int("frames", 600, "number of frames to render")
	return cmd
}

// benchResult is the total over the frames of a benchmark.
type benchResult struct {
	Frames   int
	Elapsed  time.Duration
	Total    render.Stats
	Compiles int
	Programs int
	Device   map[string]int
}

// bench renders the demo scene for the given number of frames into
// the recording device, at 60 frames per second of scene time.
func bench(frames int, s render.Settings) (*benchResult, error) {
	dev := record.New()
	r := render.NewRenderer(render.NewContext(dev))
	r.SetSize(image.Pt(1280, 720))
	r.SetSettings(s)
	d := newDemo()
	r.Context.Resources.UploadScene(d.Scene)

	res := &benchResult{Frames: frames}
	start := time.Now()
	for i := range frames {
		d.animate(float32(i) / 60)
		if err := r.Render(d.Scene); err != nil {
			return nil, fmt.Errorf("frame %d: %w", r.Frame(), err)
		}
		st := r.Stats()
		res.Total.Entries += st.Entries
		res.Total.DrawCalls += st.DrawCalls
		res.Total.Triangles += st.Triangles
		res.Total.Culled += st.Culled
		res.Total.Skipped += st.Skipped
		res.Total.ProgramSwitches += st.ProgramSwitches
		res.Total.CompileErrors += st.CompileErrors
	}
	res.Elapsed = time.Since(start)
	res.Compiles = r.Context.Programs.Compiles()
	res.Programs = r.Context.Programs.Len()
	res.Device = map[string]int{}
	for _, name := range deviceCalls {
		res.Device[name] = dev.Count(name)
	}
	r.Dispose()
	return res, nil
}

// deviceCalls are the device calls counted by bench.
var deviceCalls = []string{"UseProgram", "BindVertexArray", "BindTexture", "SetBlending", "DrawElements", "DrawArrays"}

func (br *benchResult) print(w io.Writer) {
	out := termenv.NewOutput(w)
	head := func(s string) termenv.Style {
		return out.String(s).Bold().Foreground(out.Color("6"))
	}
	per := func(n int) string {
		if br.Frames == 0 {
			return "0"
		}
		return fmt.Sprintf("%.1f", float64(n)/float64(br.Frames))
	}
	fmt.Fprintf(w, "%s %d frames in %v", head("forward bench:"), br.Frames, br.Elapsed.Round(time.Microsecond))
	if br.Frames > 0 {
		fmt.Fprintf(w, " (%v/frame)", (br.Elapsed / time.Duration(br.Frames)).Round(time.Microsecond))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, head("per frame"))
	rows := []struct {
		name string
		n    int
	}{
		{"entries", br.Total.Entries},
		{"draw calls", br.Total.DrawCalls},
		{"triangles", br.Total.Triangles},
		{"culled", br.Total.Culled},
		{"skipped", br.Total.Skipped},
		{"program switches", br.Total.ProgramSwitches},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %-18s %s\n", row.name, per(row.n))
	}

	fmt.Fprintln(w, head("programs"))
	fmt.Fprintf(w, "  %-18s %d\n", "compiled", br.Compiles)
	fmt.Fprintf(w, "  %-18s %d\n", "cached", br.Programs)
	errs := out.String(fmt.Sprint(br.Total.CompileErrors))
	if br.Total.CompileErrors > 0 {
		errs = errs.Foreground(out.Color("1"))
	}
	fmt.Fprintf(w, "  %-18s %s\n", "compile errors", errs)

	fmt.Fprintln(w, head("device calls"))
	for _, name := range deviceCalls {
		fmt.Fprintf(w, "  %-18s %d\n", name, br.Device[name])
	}
}
