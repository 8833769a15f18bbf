// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command forward renders a demo scene with the forward renderer,
// either in a window or headless for benchmarking.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"cogentcore.org/forward/render"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "forward",
		Short:        "Forward renderer demo",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("settings", "", "render settings file (.toml or .yaml)")
	root.AddCommand(runCmd(), benchCmd())
	return root
}

// loadSettings loads the settings named by the --settings flag,
// or returns the defaults if there is none.
func loadSettings(cmd *cobra.Command) (render.Settings, string, error) {
	path, err := cmd.Flags().GetString("settings")
	if err != nil {
		return render.Settings{}, "", err
	}
	if path == "" {
		return render.DefaultSettings(), "", nil
	}
	s, err := render.LoadSettings(path)
	if err != nil {
		return s, path, fmt.Errorf("loading settings: %w", err)
	}
	return s, path, nil
}
