// Copyright 2024 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Taint propagation for reference-typed values.  Starting from the
// virtual registers the client says hold references, find every range
// that a reference can flow into via register-to-register moves and
// set its is-ref flag.  The GC-map emitter later treats marked ranges
// as holding roots, so the result must be exact reachability: an
// undercount would hide roots from the collector.
//
// Three stages:
//  1. Turn the move list into a graph from source range ids to the
//     sets of destination range ids.
//  2. Turn the client's reffy virtual registers into the seed set of
//     range ids.
//  3. Walk the graph from the seeds and mark everything reached.

package ra

import (
	"fmt"

	"golang.org/x/tools/container/intsets"

	"github.com/s48/regalloc/util"
)

// A move whose two ends disagree about their register class.  The
// move classifier only ever reports pure copies, which cannot change
// class, so this is a misbehaving client.

type MoveClassError struct {
	Move MoveT
}

func (err *MoveClassError) Error() string {
	return fmt.Sprintf("move %s copies between register classes", err.Move)
}

// A seed register that is not virtual or is not of the class the
// client itself declared to be reference-capable.

type SeedRegError struct {
	Reg   RegisterT
	Class RegisterClassT
}

func (err *SeedRegError) Error() string {
	return fmt.Sprintf("seed register %s is not a virtual %s register",
		err.Reg, err.Class)
}

// PropagateReffyRanges marks, through 'env', every range reachable
// from the ranges of 'reffyVRegs' by following moves of 'refClass'
// registers.  Contract violations in 'moves' or 'reffyVRegs' are
// reported before any range is marked; inconsistencies between the
// move list and the liveness data panic inside FindRangeId.

func PropagateReffyRanges(env ReftypeEnvT, moves []MoveT,
	refClass RegisterClassT, reffyVRegs []RegisterT) error {

	// Stage 1.  Moves of other classes cannot carry references and
	// contribute no edges, even if their register indices coincide
	// with reffy ones.
	succ := map[RangeIdT]util.SetT[RangeIdT]{}
	for _, move := range moves {
		if move.Src.Class() != move.Dst.Class() {
			return &MoveClassError{Move: move}
		}
		if move.Dst.Class() != refClass {
			continue
		}
		srcId := env.FindRangeId(UsePoint(move.Inst), move.Src)
		dstId := env.FindRangeId(DefPoint(move.Inst), move.Dst)
		// fmt.Printf("move %s: %s -> %s\n", move, srcId, dstId)
		dstIds := succ[srcId]
		if dstIds == nil {
			dstIds = util.NewSet[RangeIdT]()
			succ[srcId] = dstIds
		}
		dstIds.Add(dstId)
	}

	// Stage 2.
	var seeds intsets.Sparse
	for _, vreg := range reffyVRegs {
		if !vreg.IsVirtual() || vreg.Class() != refClass {
			return &SeedRegError{Reg: vreg, Class: refClass}
		}
		env.SeedRanges(vreg, &seeds)
	}

	// Stage 3.  Depth-first walk with an explicit stack.  Each id is
	// pushed at most once, guarded by the visited set, so the work is
	// bounded by the vertex and edge counts.  The final set does not
	// depend on the walk order.
	var visited intsets.Sparse
	visited.Copy(&seeds)
	stack := util.StackT[RangeIdT]{}
	for _, id := range seeds.AppendTo(nil) {
		stack.Push(RangeIdT(id))
	}
	for !stack.Empty() {
		srcId := stack.Pop()
		for dstId := range succ[srcId] {
			if visited.Insert(int(dstId)) {
				stack.Push(dstId)
			}
		}
	}

	for _, id := range visited.AppendTo(nil) {
		env.MarkReffy(RangeIdT(id))
	}
	return nil
}

// MarkReftypedRanges runs the propagation against the allocator's own
// range tables, setting the is-ref flags in place.

func MarkReftypedRanges(realRanges []RealRangeT, virtualRanges []VirtualRangeT,
	frags []RangeFragT, regRanges *RegRangesT, moves []MoveT,
	refClass RegisterClassT, reffyVRegs []RegisterT) error {

	env := NewRangeEnv(realRanges, virtualRanges, frags, regRanges)
	return PropagateReffyRanges(env, moves, refClass, reffyVRegs)
}
