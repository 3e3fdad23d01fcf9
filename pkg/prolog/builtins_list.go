package prolog

import "strconv"

// This file is the spec.md §4.7 list-operation group, generalizing the
// teacher's relational list_ops.go (Rembero and friends, which returned
// Goal values built from Conj/Disj/Eq over channel Streams) into direct
// built-ins that enumerate solutions via AltThunk, matching the engine's
// choicepoint-stack model instead of goroutine streams.
func init() {
	registerBuiltin("append", 3, biAppend)
	registerBuiltin("length", 2, biLength)
	registerBuiltin("member", 2, biMember)
	registerBuiltin("memberchk", 2, biMemberchk)
	registerBuiltin("permutation", 2, biPermutation)
	registerBuiltin("reverse", 2, biReverse)
	registerBuiltin("sort", 2, biSort)
	registerBuiltin("msort", 2, biMsort)
	registerBuiltin("keysort", 2, biKeysort)
	registerBuiltin("subtract", 3, biSubtract)
	registerBuiltin("flatten", 2, biFlatten)
	registerBuiltin("between", 3, biBetween)
	registerBuiltin("select", 3, biSelect)
	registerBuiltin("ord_subset", 2, biOrdSubset)
	registerBuiltin("nth0", 3, biNth0)
	registerBuiltin("nth1", 3, biNth1)
	registerBuiltin("last", 2, biLast)
	registerBuiltin("sum_list", 2, biSumList)
	registerBuiltin("sumlist", 2, biSumList)
	registerBuiltin("max_list", 2, biMaxList)
	registerBuiltin("min_list", 2, biMinList)
}

// biAppend implements append/3. When the first argument is (after
// walking) a proper list, the result is computed deterministically by
// reusing the third argument's tail; otherwise, if the third argument is a
// proper list, every split is enumerated (spec.md §8 scenario 2).
func biAppend(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	xs, ys, zs := args[0], args[1], args[2]
	if elems, ok := SliceFromProperList(e.env.WalkDeep(xs)); ok {
		return ok1(Unify(zs, List(ys, elems...), e.env))
	}
	zElems, ok := SliceFromProperList(e.env.WalkDeep(zs))
	if !ok {
		return fault(errInstantiation("append/3"))
	}
	thunks := make([]AltThunk, len(zElems)+1)
	for i := 0; i <= len(zElems); i++ {
		i := i
		thunks[i] = func(env *Env) ([]Term, bool) {
			ok := Unify(xs, ProperList(zElems[:i]...), env) && Unify(ys, ProperList(zElems[i:]...), env)
			return nil, ok
		}
	}
	ok2, extra, rest := tryCandidates(e, thunks)
	return ok2, extra, rest, nil
}

// biLength implements length/2: count a bound list, or generate a list of
// N fresh variables when the list argument is unbound and N is bound.
func biLength(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	listArg := e.env.WalkDeep(args[0])
	if elems, ok := SliceFromProperList(listArg); ok {
		return ok1(Unify(args[1], Atom{Name: strconv.Itoa(len(elems))}, e.env))
	}
	nAtom, ok := e.env.Walk(args[1]).(Atom)
	if !ok {
		return fault(errInstantiation("length/2"))
	}
	n, err := strconv.Atoi(nAtom.Name)
	if err != nil || n < 0 {
		return fault(errType("integer", nAtom))
	}
	elems := make([]Term, n)
	for i := range elems {
		elems[i] = e.freshVar("_")
	}
	return ok1(Unify(args[0], ProperList(elems...), e.env))
}

// biMember implements member/2: enumerate the proper-list elements of the
// second argument (spec.md §4.7: "list arg must be bound").
func biMember(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	elems, ok := SliceFromProperList(e.env.WalkDeep(args[1]))
	if !ok {
		return fault(errInstantiation("member/2"))
	}
	thunks := make([]AltThunk, len(elems))
	for i, el := range elems {
		el := el
		thunks[i] = func(env *Env) ([]Term, bool) { return nil, Unify(args[0], el, env) }
	}
	ok2, extra, rest := tryCandidates(e, thunks)
	return ok2, extra, rest, nil
}

// biMemberchk implements memberchk/2: the deterministic first match.
func biMemberchk(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	elems, ok := SliceFromProperList(e.env.WalkDeep(args[1]))
	if !ok {
		return fault(errInstantiation("memberchk/2"))
	}
	for _, el := range elems {
		m := e.env.Mark()
		if Unify(args[0], el, e.env) {
			return ok1(true)
		}
		e.env.UndoTo(m)
	}
	return failed()
}

// biPermutation implements permutation/2, enumerating all n! orderings of
// the first proper list found (spec.md §8 scenario 3: exactly six answers
// for a 3-element list, first is the identity ordering).
func biPermutation(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	elems, ok := SliceFromProperList(e.env.WalkDeep(args[0]))
	if !ok {
		elems, ok = SliceFromProperList(e.env.WalkDeep(args[1]))
		if !ok {
			return fault(errInstantiation("permutation/2"))
		}
		perms := allPermutations(elems)
		thunks := make([]AltThunk, len(perms))
		for i, p := range perms {
			p := p
			thunks[i] = func(env *Env) ([]Term, bool) { return nil, Unify(args[0], ProperList(p...), env) }
		}
		ok2, extra, rest := tryCandidates(e, thunks)
		return ok2, extra, rest, nil
	}
	perms := allPermutations(elems)
	thunks := make([]AltThunk, len(perms))
	for i, p := range perms {
		p := p
		thunks[i] = func(env *Env) ([]Term, bool) { return nil, Unify(args[1], ProperList(p...), env) }
	}
	ok2, extra, rest := tryCandidates(e, thunks)
	return ok2, extra, rest, nil
}

func allPermutations(elems []Term) [][]Term {
	if len(elems) == 0 {
		return [][]Term{{}}
	}
	var out [][]Term
	for i := range elems {
		rest := make([]Term, 0, len(elems)-1)
		rest = append(rest, elems[:i]...)
		rest = append(rest, elems[i+1:]...)
		for _, p := range allPermutations(rest) {
			out = append(out, append([]Term{elems[i]}, p...))
		}
	}
	return out
}

// biReverse implements reverse/2, bidirectionally (either argument may be
// the proper list).
func biReverse(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	if elems, ok := SliceFromProperList(e.env.WalkDeep(args[0])); ok {
		return ok1(Unify(args[1], ProperList(reversed(elems)...), e.env))
	}
	elems, ok := SliceFromProperList(e.env.WalkDeep(args[1]))
	if !ok {
		return fault(errInstantiation("reverse/2"))
	}
	return ok1(Unify(args[0], ProperList(reversed(elems)...), e.env))
}

func reversed(elems []Term) []Term {
	out := make([]Term, len(elems))
	for i, e := range elems {
		out[len(elems)-1-i] = e
	}
	return out
}

// biSort implements sort/2: standard-order sort with duplicate removal.
func biSort(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	elems, ok := SliceFromProperList(e.env.WalkDeep(args[0]))
	if !ok {
		return fault(errInstantiation("sort/2"))
	}
	sorted := SortTerms(append([]Term(nil), elems...), true)
	return ok1(Unify(args[1], ProperList(sorted...), e.env))
}

// biMsort implements msort/2: standard-order sort without removing
// duplicates.
func biMsort(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	elems, ok := SliceFromProperList(e.env.WalkDeep(args[0]))
	if !ok {
		return fault(errInstantiation("msort/2"))
	}
	sorted := SortTerms(append([]Term(nil), elems...), false)
	return ok1(Unify(args[1], ProperList(sorted...), e.env))
}

// biKeysort implements keysort/2: a stable sort of Key-Value pairs by Key.
func biKeysort(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	elems, ok := SliceFromProperList(e.env.WalkDeep(args[0]))
	if !ok {
		return fault(errInstantiation("keysort/2"))
	}
	pairs := append([]Term(nil), elems...)
	keyOf := func(t Term) Term {
		if c, ok := t.(*Compound); ok && c.Functor == "-" && len(c.Args) == 2 {
			return c.Args[0]
		}
		return t
	}
	stableSortBy(pairs, func(a, b Term) bool { return Compare(keyOf(a), keyOf(b)) < 0 })
	return ok1(Unify(args[1], ProperList(pairs...), e.env))
}

func stableSortBy(xs []Term, less func(a, b Term) bool) {
	// Simple insertion sort: stable, and list lengths in Prolog programs
	// this engine targets are small enough that O(n^2) is not a concern.
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && less(xs[j], xs[j-1]); j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

// biSubtract implements subtract/3: set difference preserving the order
// of the first list (spec.md §4 supplement from original_source/).
func biSubtract(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	xs, ok := SliceFromProperList(e.env.WalkDeep(args[0]))
	if !ok {
		return fault(errInstantiation("subtract/3"))
	}
	ys, ok := SliceFromProperList(e.env.WalkDeep(args[1]))
	if !ok {
		return fault(errInstantiation("subtract/3"))
	}
	var out []Term
	for _, x := range xs {
		found := false
		for _, y := range ys {
			if Equal(x, y) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, x)
		}
	}
	return ok1(Unify(args[2], ProperList(out...), e.env))
}

// biFlatten implements flatten/2: recursively flatten nested lists.
func biFlatten(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	var out []Term
	var walk func(Term)
	walk = func(t Term) {
		t = e.env.WalkDeep(t)
		if elems, ok := SliceFromProperList(t); ok {
			for _, el := range elems {
				walk(el)
			}
			return
		}
		out = append(out, t)
	}
	walk(args[0])
	return ok1(Unify(args[1], ProperList(out...), e.env))
}

// biBetween implements between/3: enumerate [Low, High], or check
// membership when the third argument is already bound (spec.md §8
// scenario 7).
func biBetween(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	loA, ok := e.env.Walk(args[0]).(Atom)
	if !ok {
		return fault(errInstantiation("between/3"))
	}
	hiA, ok := e.env.Walk(args[1]).(Atom)
	if !ok {
		return fault(errInstantiation("between/3"))
	}
	lo, err1 := strconv.Atoi(loA.Name)
	hi, err2 := strconv.Atoi(hiA.Name)
	if err1 != nil || err2 != nil {
		return fault(errType("integer", loA))
	}
	if x, ok := e.env.Walk(args[2]).(Atom); ok {
		if n, err := strconv.Atoi(x.Name); err == nil {
			return ok1(n >= lo && n <= hi)
		}
	}
	if lo > hi {
		return failed()
	}
	thunks := make([]AltThunk, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		n := n
		thunks = append(thunks, func(env *Env) ([]Term, bool) {
			return nil, Unify(args[2], Atom{Name: strconv.Itoa(n)}, env)
		})
	}
	ok2, extra, rest := tryCandidates(e, thunks)
	return ok2, extra, rest, nil
}

// biSelect implements select/3 (non-deterministic remove-one,
// spec.md §4 supplement): select(X, List, Rest) relates List to Rest with
// one occurrence of X removed, in either direction.
func biSelect(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	if elems, ok := SliceFromProperList(e.env.WalkDeep(args[1])); ok {
		thunks := make([]AltThunk, len(elems))
		for i := range elems {
			i := i
			thunks[i] = func(env *Env) ([]Term, bool) {
				rest := make([]Term, 0, len(elems)-1)
				rest = append(rest, elems[:i]...)
				rest = append(rest, elems[i+1:]...)
				return nil, Unify(args[0], elems[i], env) && Unify(args[2], ProperList(rest...), env)
			}
		}
		ok2, extra, rest := tryCandidates(e, thunks)
		return ok2, extra, rest, nil
	}
	restElems, ok := SliceFromProperList(e.env.WalkDeep(args[2]))
	if !ok {
		return fault(errInstantiation("select/3"))
	}
	thunks := make([]AltThunk, len(restElems)+1)
	for i := 0; i <= len(restElems); i++ {
		i := i
		thunks[i] = func(env *Env) ([]Term, bool) {
			full := make([]Term, 0, len(restElems)+1)
			full = append(full, restElems[:i]...)
			full = append(full, args[0])
			full = append(full, restElems[i:]...)
			return nil, Unify(args[1], ProperList(full...), env)
		}
	}
	ok2, extra, rest := tryCandidates(e, thunks)
	return ok2, extra, rest, nil
}

// biOrdSubset implements ord_subset/2 (spec.md §4 supplement): checks, in
// lockstep, that the first list's elements occur in the second in the
// same relative order, skipping superset elements not present next. With
// an unbound first argument it generates: the empty subsequence always
// satisfies the lockstep walk, so an unbound Sub unifies with [] rather
// than aborting the query (spec.md §4.7 lists this predicate as
// check/generate).
func biOrdSubset(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	super, ok := SliceFromProperList(e.env.WalkDeep(args[1]))
	if !ok {
		return fault(errInstantiation("ord_subset/2"))
	}
	sub, ok := SliceFromProperList(e.env.WalkDeep(args[0]))
	if !ok {
		return ok1(Unify(args[0], ProperList(), e.env))
	}
	i := 0
	for _, s := range super {
		if i >= len(sub) {
			break
		}
		if Equal(sub[i], s) {
			i++
		}
	}
	return ok1(i == len(sub))
}

func biNth0(e *Engine, args []Term) (bool, []Term, []AltThunk, error) { return nth(e, args, 0) }
func biNth1(e *Engine, args []Term) (bool, []Term, []AltThunk, error) { return nth(e, args, 1) }

func nth(e *Engine, args []Term, base int) (bool, []Term, []AltThunk, error) {
	elems, ok := SliceFromProperList(e.env.WalkDeep(args[1]))
	if !ok {
		return fault(errInstantiation("nth/3"))
	}
	if idxA, ok := e.env.Walk(args[0]).(Atom); ok {
		if n, err := strconv.Atoi(idxA.Name); err == nil {
			idx := n - base
			if idx < 0 || idx >= len(elems) {
				return failed()
			}
			return ok1(Unify(args[2], elems[idx], e.env))
		}
	}
	thunks := make([]AltThunk, len(elems))
	for i, el := range elems {
		i, el := i, el
		thunks[i] = func(env *Env) ([]Term, bool) {
			return nil, Unify(args[0], Atom{Name: strconv.Itoa(i + base)}, env) && Unify(args[2], el, env)
		}
	}
	ok2, extra, rest := tryCandidates(e, thunks)
	return ok2, extra, rest, nil
}

func biLast(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	elems, ok := SliceFromProperList(e.env.WalkDeep(args[0]))
	if !ok || len(elems) == 0 {
		return failed()
	}
	return ok1(Unify(args[1], elems[len(elems)-1], e.env))
}

func biSumList(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	elems, ok := SliceFromProperList(e.env.WalkDeep(args[0]))
	if !ok {
		return fault(errInstantiation("sum_list/2"))
	}
	total := intNum(0)
	for _, el := range elems {
		n, err := Eval(el, e.env)
		if err != nil {
			return fault(err.(*Fault))
		}
		total, _ = evalBinary("+", total, n)
	}
	return ok1(Unify(args[1], total.toTerm(), e.env))
}

func biMaxList(e *Engine, args []Term) (bool, []Term, []AltThunk, error) { return extremum(e, args, "max") }
func biMinList(e *Engine, args []Term) (bool, []Term, []AltThunk, error) { return extremum(e, args, "min") }

func extremum(e *Engine, args []Term, op string) (bool, []Term, []AltThunk, error) {
	elems, ok := SliceFromProperList(e.env.WalkDeep(args[0]))
	if !ok || len(elems) == 0 {
		return failed()
	}
	best, err := Eval(elems[0], e.env)
	if err != nil {
		return fault(err.(*Fault))
	}
	for _, el := range elems[1:] {
		n, err := Eval(el, e.env)
		if err != nil {
			return fault(err.(*Fault))
		}
		best, _ = evalBinary(op, best, n)
	}
	return ok1(Unify(args[1], best.toTerm(), e.env))
}
