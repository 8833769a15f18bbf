// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"context"
	"path/filepath"

	"cogentcore.org/core/base/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// WatchSettings watches the settings file and sends the reloaded
// settings on the returned channel each time the file is written.
// Files that fail to load are logged and skipped. The directory is
// watched, so that editors that replace the file are handled.
// Watching stops and the channel is closed when ctx is done.
// The settings are meant to be applied with [Renderer.SetSettings]
// on the render thread.
func WatchSettings(ctx context.Context, path string) (<-chan Settings, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watch.Add(filepath.Dir(path)); err != nil {
		watch.Close()
		return nil, err
	}
	ch := make(chan Settings, 1)
	go func() {
		defer close(ch)
		defer watch.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watch.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				s, err := LoadSettings(path)
				if errors.Log(err) != nil {
					continue
				}
				select {
				case ch <- s:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watch.Errors:
				if !ok {
					return
				}
				errors.Log(err)
			}
		}
	}()
	return ch, nil
}
