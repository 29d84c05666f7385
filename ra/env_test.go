// Copyright 2024 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package ra

import (
	"strings"
	"testing"
)

func span(first InstPointT, last InstPointT) RangeFragT {
	return RangeFragT{First: first, Last: last}
}

// One range per register, all live over the whole function.
func wholeFunctionRanges(regs ...RegisterT) ([]VirtualRangeT, *RegRangesT) {
	virtual := make([]VirtualRangeT, len(regs))
	regRanges := &RegRangesT{Virtual: make([][]VirtualRangeIxT, len(regs))}
	for i, reg := range regs {
		virtual[i] = VirtualRangeT{
			Reg:   reg,
			Frags: FragsT{span(UsePoint(0), DefPoint(20))},
		}
		regRanges.Virtual[reg.Index()] = []VirtualRangeIxT{VirtualRangeIxT(i)}
	}
	return virtual, regRanges
}

// The chain v2 := v1 then v3 := v2 with v1 seeded marks the ranges of
// all three registers; the untouched v4 stays unmarked.

func TestMarkReftypedChain(t *testing.T) {
	v1, v2, v3, v4 := vi(0), vi(1), vi(2), vi(3)
	virtual, regRanges := wholeFunctionRanges(v1, v2, v3, v4)
	moves := []MoveT{
		mv(v1, v2, 2),
		mv(v2, v3, 5),
	}
	err := MarkReftypedRanges(nil, virtual, nil, regRanges, moves,
		ClassI64, []RegisterT{v1})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if !virtual[i].IsRef {
			t.Errorf("range of v%d is not marked", i)
		}
	}
	if virtual[3].IsRef {
		t.Error("range of the untouched v4 is marked")
	}
}

// A register split into two ranges resolves moves by point: only the
// range live at the move's instruction is part of the graph.

func TestFindRangeIdIsPointSensitive(t *testing.T) {
	v0 := vi(0)
	virtual := []VirtualRangeT{
		{Reg: v0, Frags: FragsT{span(UsePoint(0), DefPoint(3))}},
		{Reg: v0, Frags: FragsT{span(UsePoint(6), DefPoint(9))}},
	}
	regRanges := &RegRangesT{Virtual: [][]VirtualRangeIxT{{0, 1}}}
	env := NewRangeEnv(nil, virtual, nil, regRanges)

	if got := env.FindRangeId(UsePoint(2), v0); got != VirtualRangeId(0) {
		t.Errorf("point 2.u resolved to %s, want vr0", got)
	}
	if got := env.FindRangeId(DefPoint(7), v0); got != VirtualRangeId(1) {
		t.Errorf("point 7.d resolved to %s, want vr1", got)
	}
}

// Real ranges index into the shared fragment table and participate in
// propagation like any other vertex.

func TestMarkReftypedRealRanges(t *testing.T) {
	v0, v1 := vi(0), vi(1)
	r7 := RealReg(ClassI64, 7)
	frags := []RangeFragT{span(DefPoint(1), DefPoint(4))}
	real := []RealRangeT{{Reg: r7, Frags: []RangeFragIxT{0}}}
	virtual := []VirtualRangeT{
		{Reg: v0, Frags: FragsT{span(UsePoint(0), DefPoint(10))}},
		{Reg: v1, Frags: FragsT{span(UsePoint(0), DefPoint(10))}},
	}
	regRanges := &RegRangesT{
		Real:    make([][]RealRangeIxT, 8),
		Virtual: [][]VirtualRangeIxT{{0}, {1}},
	}
	regRanges.Real[7] = []RealRangeIxT{0}

	moves := []MoveT{
		mv(v0, r7, 1), // refness flows into the pinned range
		mv(r7, v1, 4), // and back out of it
	}
	err := MarkReftypedRanges(real, virtual, frags, regRanges, moves,
		ClassI64, []RegisterT{v0})
	if err != nil {
		t.Fatal(err)
	}
	if !real[0].IsRef {
		t.Error("pinned range is not marked")
	}
	if !virtual[1].IsRef {
		t.Error("range downstream of the pinned range is not marked")
	}
}

// The liveness pass lists a register's ranges in no particular
// order; lookups must resolve correctly regardless of the order the
// index saw the fragments in.

func TestFindRangeIdWithRangesListedOutOfOrder(t *testing.T) {
	v0 := vi(0)
	virtual := []VirtualRangeT{
		{Reg: v0, Frags: FragsT{span(UsePoint(12), DefPoint(15))}},
		{Reg: v0, Frags: FragsT{span(UsePoint(0), DefPoint(3))}},
		{Reg: v0, Frags: FragsT{span(UsePoint(6), DefPoint(9))}},
	}
	regRanges := &RegRangesT{Virtual: [][]VirtualRangeIxT{{0, 1, 2}}}
	env := NewRangeEnv(nil, virtual, nil, regRanges)

	for ix, pt := range []InstPointT{DefPoint(13), UsePoint(2), DefPoint(9)} {
		want := VirtualRangeId(VirtualRangeIxT(ix))
		if got := env.FindRangeId(pt, v0); got != want {
			t.Errorf("point %s resolved to %s, want %s", pt, got, want)
		}
	}
}

func TestFindRangeIdPanicsWithoutCoverage(t *testing.T) {
	v0 := vi(0)
	virtual, regRanges := wholeFunctionRanges(v0)
	env := NewRangeEnv(nil, virtual, nil, regRanges)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for the uncovered point")
		}
		if !strings.Contains(r.(string), "no range of") {
			t.Errorf("unexpected panic message %q", r)
		}
	}()
	env.FindRangeId(UsePoint(30), v0)
}

// Overlapping fragments for one register mean the liveness pass
// produced garbage; the environment refuses to build.

func TestOverlappingRangesPanic(t *testing.T) {
	v0 := vi(0)
	virtual := []VirtualRangeT{
		{Reg: v0, Frags: FragsT{span(UsePoint(0), DefPoint(5))}},
		{Reg: v0, Frags: FragsT{span(UsePoint(4), DefPoint(9))}},
	}
	regRanges := &RegRangesT{Virtual: [][]VirtualRangeIxT{{0, 1}}}
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for overlapping ranges")
		}
	}()
	NewRangeEnv(nil, virtual, nil, regRanges)
}
