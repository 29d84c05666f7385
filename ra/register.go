// Copyright 2024 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Registers and register classes.
//
// A register is either real (a fixed hardware location picked before
// this allocator runs) or virtual (still waiting for one).  Registers
// of different classes never hold each other's values, so a class
// mismatch between the two ends of a move is a client bug.

package ra

import (
	"fmt"
)

type RegisterClassT uint8

const (
	ClassI64 RegisterClassT = iota
	ClassF64
	ClassV128
)

func (class RegisterClassT) String() string {
	switch class {
	case ClassI64:
		return "i64"
	case ClassF64:
		return "f64"
	case ClassV128:
		return "v128"
	}
	return fmt.Sprintf("class?%d", uint8(class))
}

type RegisterT struct {
	class   RegisterClassT
	virtual bool
	index   uint32
}

func RealReg(class RegisterClassT, index uint32) RegisterT {
	return RegisterT{class: class, index: index}
}

func VirtualReg(class RegisterClassT, index uint32) RegisterT {
	return RegisterT{class: class, virtual: true, index: index}
}

func (reg RegisterT) Class() RegisterClassT { return reg.class }
func (reg RegisterT) IsVirtual() bool       { return reg.virtual }
func (reg RegisterT) Index() uint32         { return reg.index }

func (reg RegisterT) String() string {
	if reg.virtual {
		return fmt.Sprintf("v%d:%s", reg.index, reg.class)
	}
	return fmt.Sprintf("r%d:%s", reg.index, reg.class)
}
