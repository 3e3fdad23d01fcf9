package prolog

// goalFrame pairs a goal term with the cut barrier in effect when it runs:
// the choicepoint-stack depth that a `!` occurring directly in this goal
// (if it is a clause body goal) must cut back to (spec.md §4.5's "Cut
// semantics").
type goalFrame struct {
	goal       Term
	cutBarrier int
}

// goalList is a singly-linked continuation of goalFrames. Using a linked
// list rather than a slice makes prepending a clause body (the hot path of
// resolution) O(body length) instead of O(total remaining goals), and
// lets many choicepoints share the same tail safely (no aliasing hazards
// from in-place slice mutation).
type goalList struct {
	frame goalFrame
	next  *goalList
}

// consGoals prepends frames (in order) onto rest.
func consGoals(frames []goalFrame, rest *goalList) *goalList {
	for i := len(frames) - 1; i >= 0; i-- {
		rest = &goalList{frame: frames[i], next: rest}
	}
	return rest
}

// wrapGoals lifts plain Terms into goalFrames sharing a single cut barrier,
// then conses them onto rest. This is the common case: a clause body or a
// built-in's extra goals all inherit one barrier.
func wrapGoals(goals []Term, barrier int, rest *goalList) *goalList {
	if len(goals) == 0 {
		return rest
	}
	frames := make([]goalFrame, len(goals))
	for i, g := range goals {
		frames[i] = goalFrame{goal: g, cutBarrier: barrier}
	}
	return consGoals(frames, rest)
}

// appendAtTail appends frame after the end of cont — used only by the
// bounded arithmetic deferred-constraint mechanism (spec.md §4.6), which
// must reschedule a goal behind everything currently pending rather than
// in front of it. This walks the whole list, which is fine given deferred
// goals are rare and the retry bound is small.
func appendAtTail(cont *goalList, frame goalFrame) *goalList {
	if cont == nil {
		return &goalList{frame: frame}
	}
	head := &goalList{frame: cont.frame}
	cur := head
	for n := cont.next; n != nil; n = n.next {
		cur.next = &goalList{frame: n.frame}
		cur = cur.next
	}
	cur.next = &goalList{frame: frame}
	return head
}

// flattenConjunction flattens a (possibly nested) ","/2 conjunction term
// into a flat slice of goals, per spec.md §3's "the engine flattens on
// demand" requirement that both flat-sequence and nested ,/2 encodings of
// a conjunction are accepted.
func flattenConjunction(t Term) []Term {
	c, ok := t.(*Compound)
	if !ok || c.Functor != "," || len(c.Args) != 2 {
		return []Term{t}
	}
	left := flattenConjunction(c.Args[0])
	right := flattenConjunction(c.Args[1])
	return append(left, right...)
}
