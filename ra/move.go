// Copyright 2024 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package ra

import (
	"fmt"
)

// A move is an instruction the client's classifier recognizes as a
// pure register-to-register copy.  Src is read at the instruction's
// use point and Dst is written at its def point.

type MoveT struct {
	Src  RegisterT
	Dst  RegisterT
	Inst InstIxT
}

func (move MoveT) String() string {
	return fmt.Sprintf("%s := %s @%d", move.Dst, move.Src, move.Inst)
}
