// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"strings"

	"cogentcore.org/core/base/errors"
)

// ErrContextLost is matched by every [ContextLostError].
var ErrContextLost = errors.New("gpu: context lost")

// ContextLostError is returned when the graphics context became invalid.
// All device objects are gone: caches must be invalidated and
// resources uploaded again.
type ContextLostError struct {

	// Frame is the number of the frame that detected the loss.
	Frame uint64
}

func (e *ContextLostError) Error() string {
	return fmt.Sprintf("gpu: context lost in frame %d", e.Frame)
}

func (e *ContextLostError) Unwrap() error {
	return ErrContextLost
}

// ShaderError is a shader compile or program link failure.
type ShaderError struct {
	Stage Stages

	// Log is the diagnostic text of the driver.
	Log string
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("gpu: %s stage failed: %s", e.Stage, strings.TrimSpace(e.Log))
}
