// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "fmt"

// CycleError is returned when attaching a node as a child of itself
// or of one of its descendants.
type CycleError struct {

	// Parent is the path of the node that was asked to take the child.
	Parent string

	// Child is the path of the node being attached.
	Child string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("xyz: cannot add %s as a child of %s: it would create a cycle", e.Child, e.Parent)
}
