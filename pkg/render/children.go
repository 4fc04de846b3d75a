package render

import (
	"github.com/sunnyxujian/minivue/internal/errors"
	"github.com/sunnyxujian/minivue/pkg/backend"
	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// patchChildren reconciles prev's children into next's inside container.
// anchor is the node that follows the children (nil when they run to the end
// of the container).
func (r *Renderer) patchChildren(prev, next *vdom.VNode, container, anchor backend.Node, svg bool) error {
	switch prev.Arity {
	case vdom.NoChildren:
		return r.mountChildren(next, container, anchor, svg)

	case vdom.SingleChild:
		switch next.Arity {
		case vdom.NoChildren:
			r.unmount(prev.Children[0])
			return nil
		case vdom.SingleChild:
			return r.patch(prev.Children[0], next.Children[0], container, svg)
		}

	case vdom.MultipleChildren:
		if next.Arity == vdom.NoChildren {
			for _, c := range prev.Children {
				r.unmount(c)
			}
			return nil
		}
	}
	return r.patchList(prev.Children, next.Children, container, anchor, svg)
}

// patchList reconciles two child lists. Keys are used when every child of
// both lists has one; otherwise children are matched by position.
func (r *Renderer) patchList(old, next []*vdom.VNode, container, anchor backend.Node, svg bool) error {
	if err := checkKeys(next); err != nil {
		return err
	}
	if allKeyed(old) && allKeyed(next) {
		return r.patchKeyed(old, next, container, anchor, svg)
	}
	return r.patchPositional(old, next, container, anchor, svg)
}

func (r *Renderer) patchPositional(old, next []*vdom.VNode, container, anchor backend.Node, svg bool) error {
	common := min(len(old), len(next))
	for i := 0; i < common; i++ {
		if err := r.patch(old[i], next[i], container, svg); err != nil {
			return err
		}
	}
	for _, c := range old[common:] {
		r.unmount(c)
	}
	for _, c := range next[common:] {
		if err := r.mount(c, container, anchor, svg); err != nil {
			return err
		}
	}
	return nil
}

// patchKeyed syncs the common prefix and suffix, then matches the middle by
// key and moves only nodes outside the longest increasing subsequence of
// their old positions.
func (r *Renderer) patchKeyed(old, next []*vdom.VNode, container, anchor backend.Node, svg bool) error {
	i := 0
	e1 := len(old) - 1
	e2 := len(next) - 1

	for i <= e1 && i <= e2 && sameKeyed(old[i], next[i]) {
		if err := r.patch(old[i], next[i], container, svg); err != nil {
			return err
		}
		i++
	}
	for i <= e1 && i <= e2 && sameKeyed(old[e1], next[e2]) {
		if err := r.patch(old[e1], next[e2], container, svg); err != nil {
			return err
		}
		e1--
		e2--
	}

	// refAfter is the insertion reference for next[idx].
	refAfter := func(idx int) backend.Node {
		if idx+1 < len(next) {
			return firstHandle(next[idx+1])
		}
		return anchor
	}

	switch {
	case i > e1:
		if i <= e2 {
			ref := refAfter(e2)
			for j := i; j <= e2; j++ {
				if err := r.mount(next[j], container, ref, svg); err != nil {
					return err
				}
				r.metrics.RecordPatch("insert")
			}
		}
		return nil
	case i > e2:
		for j := i; j <= e1; j++ {
			r.unmount(old[j])
		}
		return nil
	}

	keyToNew := make(map[string]int, e2-i+1)
	for j := i; j <= e2; j++ {
		keyToNew[next[j].Key] = j
	}

	// newToOld[k] is the old index of next[i+k], or -1 if it is new.
	newToOld := make([]int, e2-i+1)
	for k := range newToOld {
		newToOld[k] = -1
	}

	moved := false
	maxNewIndex := -1
	for j := i; j <= e1; j++ {
		idx, ok := keyToNew[old[j].Key]
		if !ok || !vdom.SameType(old[j], next[idx]) {
			r.unmount(old[j])
			continue
		}
		newToOld[idx-i] = j
		if idx > maxNewIndex {
			maxNewIndex = idx
		} else {
			moved = true
		}
		if err := r.patch(old[j], next[idx], container, svg); err != nil {
			return err
		}
	}

	var stable []int
	if moved {
		stable = longestIncreasing(newToOld)
	}
	s := len(stable) - 1

	// Walk backwards so the reference node is always in its final place.
	for k := len(newToOld) - 1; k >= 0; k-- {
		idx := i + k
		ref := refAfter(idx)
		switch {
		case newToOld[k] == -1:
			if err := r.mount(next[idx], container, ref, svg); err != nil {
				return err
			}
			r.metrics.RecordPatch("insert")
		case moved:
			if s >= 0 && stable[s] == k {
				s--
			} else {
				r.move(next[idx], container, ref)
			}
		}
	}
	return nil
}

func sameKeyed(a, b *vdom.VNode) bool {
	return a.Key == b.Key && vdom.SameType(a, b)
}

func allKeyed(list []*vdom.VNode) bool {
	for _, c := range list {
		if c.Key == "" {
			return false
		}
	}
	return true
}

// checkKeys reports a duplicate non-empty key among siblings.
func checkKeys(list []*vdom.VNode) error {
	var seen map[string]bool
	for _, c := range list {
		if c.Key == "" {
			continue
		}
		if seen == nil {
			seen = make(map[string]bool, len(list))
		}
		if seen[c.Key] {
			return errors.New("E102").WithDetailf("key %q", c.Key)
		}
		seen[c.Key] = true
	}
	return nil
}

// longestIncreasing returns the positions in seq of a longest strictly
// increasing subsequence, ignoring -1 entries.
func longestIncreasing(seq []int) []int {
	// tails[l] is the position of the smallest tail of an increasing
	// subsequence of length l+1.
	tails := make([]int, 0, len(seq))
	prev := make([]int, len(seq))

	for i, v := range seq {
		if v < 0 {
			continue
		}
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[i] = tails[lo-1]
		} else {
			prev[i] = -1
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	out := make([]int, len(tails))
	if len(tails) == 0 {
		return out
	}
	k := tails[len(tails)-1]
	for j := len(tails) - 1; j >= 0; j-- {
		out[j] = k
		k = prev[k]
	}
	return out
}
