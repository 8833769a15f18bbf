// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package program

import (
	"fmt"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/forward/gpu"
)

// CompileError is a failure to build the program of a key.
// It carries the stage that failed and the diagnostic log of the driver.
type CompileError struct {
	Key   Key
	Stage gpu.Stages
	Log   string

	err error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("program %s: %s stage failed: %s", e.Key, e.Stage, strings.TrimSpace(e.Log))
}

func (e *CompileError) Unwrap() error {
	return e.err
}

// compileError wraps a device error for the given key.
func compileError(key Key, err error) *CompileError {
	ce := &CompileError{Key: key, Stage: gpu.LinkStage, Log: err.Error(), err: err}
	var se *gpu.ShaderError
	if errors.As(err, &se) {
		ce.Stage = se.Stage
		ce.Log = se.Log
	}
	return ce
}
