// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
)

// AddToLibrary adds given node to library, using node's name as unique key
// in Library map.
func (sc *Scene) AddToLibrary(n *Node) {
	if sc.Library == nil {
		sc.Library = make(map[string]*Node)
	}
	sc.Library[n.Name] = n
}

// NewInLibrary makes a new node in library, using given name as unique key
// in Library map.
func (sc *Scene) NewInLibrary(name string) *Node {
	n := NewNode(name)
	sc.AddToLibrary(n)
	return n
}

// AddFromLibrary adds a Clone of named item in the Library under given parent
// in the scenegraph.  Returns an error if item not found.
func (sc *Scene) AddFromLibrary(name string, parent *Node) (*Node, error) {
	n, ok := sc.Library[name]
	if !ok {
		return nil, fmt.Errorf("Scene AddFromLibrary: Library item: %s not found", name)
	}
	cl := n.Clone()
	if err := parent.AddChild(cl); err != nil {
		return nil, err
	}
	return cl, nil
}
