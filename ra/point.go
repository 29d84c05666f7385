// Copyright 2024 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Program points.  Each instruction gets a 'use' point, at which its
// inputs are read, followed by a 'def' point, at which its outputs
// are written.  Packing the def bit into the low end gives points a
// total order that fragment spans can be compared by.

package ra

import (
	"fmt"
)

type InstIxT uint32

type InstPointT uint32

func UsePoint(inst InstIxT) InstPointT {
	return InstPointT(inst) << 1
}

func DefPoint(inst InstIxT) InstPointT {
	return InstPointT(inst)<<1 | 1
}

func (pt InstPointT) Inst() InstIxT { return InstIxT(pt >> 1) }
func (pt InstPointT) IsDef() bool   { return pt&1 == 1 }

func (pt InstPointT) String() string {
	side := "u"
	if pt.IsDef() {
		side = "d"
	}
	return fmt.Sprintf("%d.%s", pt.Inst(), side)
}
