// Copyright 2024 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Live-range fragments.  A fragment is an inclusive span of program
// points; a range is live over an ordered list of disjoint fragments.

package ra

import (
	"fmt"
	"sort"
)

type RangeFragT struct {
	First InstPointT
	Last  InstPointT
}

type RangeFragIxT uint32

func (frag RangeFragT) Contains(pt InstPointT) bool {
	return frag.First <= pt && pt <= frag.Last
}

func (frag RangeFragT) String() string {
	return fmt.Sprintf("[%s-%s]", frag.First, frag.Last)
}

// An ordered list of disjoint fragments, as owned by a virtual range.

type FragsT []RangeFragT

// Fragments are appended in increasing point order; an abutting
// fragment extends the previous one instead of adding an entry.
func (frags *FragsT) Add(frag RangeFragT) {
	if frag.Last < frag.First {
		panic(fmt.Sprintf("fragment %s ends before it starts", frag))
	}
	list := *frags
	if len(list) != 0 {
		last := &list[len(list)-1]
		if frag.First <= last.Last {
			panic(fmt.Sprintf("fragment %s added out of order after %s", frag, *last))
		}
		if frag.First == last.Last+1 {
			last.Last = frag.Last
			return
		}
	}
	*frags = append(list, frag)
}

func (frags FragsT) ContainsPoint(pt InstPointT) bool {
	i := sort.Search(len(frags), func(i int) bool {
		return pt <= frags[i].Last
	})
	return i < len(frags) && frags[i].Contains(pt)
}
