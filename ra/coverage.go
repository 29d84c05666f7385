// Copyright 2024 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// A point-coverage index: for each register, the fragment spans of
// that register's ranges, each mapped to the owning range id.  The
// fragments of one register's ranges are disjoint, so spans order by
// 'strictly before'/'strictly after' and a single-point probe span
// finds the covering range.
//
// Inserts go through an RB-tree ordered by that relation, whose
// insert reports any overlapping span already present; that is what
// catches a liveness pass that produced overlapping ranges.  Lookups
// binary-search a per-register slice sorted once after construction,
// since all inserts happen before the first lookup.  Lookups happen
// twice per move record, which is what pays for building the index
// instead of scanning range lists.

package ra

import (
	"fmt"
	"sort"

	"github.com/sirkon/rbtree"
)

type coverSpanT struct {
	first InstPointT
	last  InstPointT
	id    RangeIdT
}

// Order for the tree: disjoint spans compare by position, any overlap
// compares equal.  Overlap only ever happens on an insert with bad
// upstream data or a lookup probe that found its answer.
func (span *coverSpanT) Cmp(other *coverSpanT) int {
	if span.last < other.first {
		return -1
	}
	if other.last < span.first {
		return 1
	}
	return 0
}

type coverListT struct {
	tree  *rbtree.Tree[*coverSpanT]
	spans []*coverSpanT
}

type coverageT map[RegisterT]*coverListT

func (cov coverageT) add(reg RegisterT, frag RangeFragT, id RangeIdT) {
	list := cov[reg]
	if list == nil {
		list = &coverListT{tree: rbtree.New[*coverSpanT]()}
		cov[reg] = list
	}
	span := &coverSpanT{first: frag.First, last: frag.Last, id: id}
	if got := list.tree.InsertReturn(span); got != span {
		panic(fmt.Sprintf("ranges %s and %s of %s overlap at %s",
			got.id, id, reg, frag))
	}
	list.spans = append(list.spans, span)
}

// Called once, after the last add.
func (cov coverageT) seal() {
	for _, list := range cov {
		sort.Slice(list.spans, func(i int, j int) bool {
			return list.spans[i].first < list.spans[j].first
		})
	}
}

func (cov coverageT) find(pt InstPointT, reg RegisterT) (RangeIdT, bool) {
	list := cov[reg]
	if list == nil {
		return 0, false
	}
	spans := list.spans
	i := sort.Search(len(spans), func(i int) bool {
		return pt <= spans[i].last
	})
	if i < len(spans) && spans[i].first <= pt {
		return spans[i].id, true
	}
	return 0, false
}
