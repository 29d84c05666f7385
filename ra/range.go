// Copyright 2024 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Live ranges and range ids.
//
// Real ranges are pinned to a real register by earlier decisions and
// share the allocator-wide fragment table; virtual ranges are not yet
// assigned a location and own their fragments outright.  A RangeIdT
// names one range of either kind so that passes which do not care
// about the difference, like the reftype propagation, can treat them
// as a single vertex type.

package ra

import (
	"fmt"
)

type RealRangeIxT uint32

type RealRangeT struct {
	Reg   RegisterT // the real register this range is pinned to
	Frags []RangeFragIxT
	IsRef bool
}

type VirtualRangeIxT uint32

type VirtualRangeT struct {
	Reg   RegisterT // the virtual register this range carries
	Frags FragsT
	IsRef bool
}

// A range id packs the real/virtual tag into the low bit so that ids
// double as sparse-set keys.

type RangeIdT uint32

func RealRangeId(ix RealRangeIxT) RangeIdT {
	return RangeIdT(ix)<<1 | 1
}

func VirtualRangeId(ix VirtualRangeIxT) RangeIdT {
	return RangeIdT(ix) << 1
}

func (id RangeIdT) IsReal() bool { return id&1 == 1 }

func (id RangeIdT) RealIx() RealRangeIxT {
	if !id.IsReal() {
		panic(fmt.Sprintf("range id %s is not a real range", id))
	}
	return RealRangeIxT(id >> 1)
}

func (id RangeIdT) VirtualIx() VirtualRangeIxT {
	if id.IsReal() {
		panic(fmt.Sprintf("range id %s is not a virtual range", id))
	}
	return VirtualRangeIxT(id >> 1)
}

func (id RangeIdT) String() string {
	if id.IsReal() {
		return fmt.Sprintf("rr%d", id>>1)
	}
	return fmt.Sprintf("vr%d", id>>1)
}

// The per-register lists of owning ranges, indexed by register index.
// Produced by the liveness pass; a register may own more than one
// range across the function.

type RegRangesT struct {
	Real    [][]RealRangeIxT
	Virtual [][]VirtualRangeIxT
}
