// Copyright 2024 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// The environment the reftype propagation runs against.  The
// interface carries just the three operations the propagation needs,
// so the algorithm itself never looks at how ranges are stored and
// can be tested against an in-memory double.

package ra

import (
	"fmt"

	"golang.org/x/tools/container/intsets"
)

type ReftypeEnvT interface {
	// The id of the range that covers 'reg' at 'pt'.  A register
	// referenced by a move is covered by exactly one range at the
	// relevant point in any well-formed program, so failure to find
	// one is a bug in the upstream liveness data and panics.
	FindRangeId(pt InstPointT, reg RegisterT) RangeIdT

	// Add the ids of every range owned by the virtual register to
	// the set.
	SeedRanges(vreg RegisterT, set *intsets.Sparse)

	// Set the range's is-ref flag.  Marking the same range twice
	// is harmless.
	MarkReffy(id RangeIdT)
}

// The production environment, backed by the allocator's range tables.
// The tables are borrowed for the duration of the analysis; marking
// writes through to the caller's ranges.

type RangeEnvT struct {
	realRanges    []RealRangeT
	virtualRanges []VirtualRangeT
	regRanges     *RegRangesT
	coverage      coverageT
}

func NewRangeEnv(realRanges []RealRangeT, virtualRanges []VirtualRangeT,
	frags []RangeFragT, regRanges *RegRangesT) *RangeEnvT {

	env := &RangeEnvT{
		realRanges:    realRanges,
		virtualRanges: virtualRanges,
		regRanges:     regRanges,
		coverage:      coverageT{},
	}
	for _, rlrixs := range regRanges.Real {
		for _, rlrix := range rlrixs {
			rlr := &realRanges[rlrix]
			for _, fragIx := range rlr.Frags {
				env.coverage.add(rlr.Reg, frags[fragIx], RealRangeId(rlrix))
			}
		}
	}
	for _, vlrixs := range regRanges.Virtual {
		for _, vlrix := range vlrixs {
			vlr := &virtualRanges[vlrix]
			for _, frag := range vlr.Frags {
				env.coverage.add(vlr.Reg, frag, VirtualRangeId(vlrix))
			}
		}
	}
	env.coverage.seal()
	return env
}

func (env *RangeEnvT) FindRangeId(pt InstPointT, reg RegisterT) RangeIdT {
	id, found := env.coverage.find(pt, reg)
	if !found {
		panic(fmt.Sprintf("no range of %s covers point %s", reg, pt))
	}
	return id
}

func (env *RangeEnvT) SeedRanges(vreg RegisterT, set *intsets.Sparse) {
	if !vreg.IsVirtual() || int(vreg.Index()) >= len(env.regRanges.Virtual) {
		panic(fmt.Sprintf("seed register %s has no range list", vreg))
	}
	for _, vlrix := range env.regRanges.Virtual[vreg.Index()] {
		set.Insert(int(VirtualRangeId(vlrix)))
	}
}

func (env *RangeEnvT) MarkReffy(id RangeIdT) {
	if id.IsReal() {
		env.realRanges[id.RealIx()].IsRef = true
	} else {
		env.virtualRanges[id.VirtualIx()].IsRef = true
	}
}
