package prolog

// This file implements the meta-predicate group of spec.md §4.8:
// findall/3, setof/3, forall/2 and the maplist/N family. Each establishes
// its own cut barrier the way the teacher's control_flow.go isolates a
// sub-goal's choicepoints from the caller's — here via a nested,
// zero-barrier search (solveAll/hasSolution) rather than a fresh Stream.
func init() {
	registerBuiltin("findall", 3, biFindall)
	registerBuiltin("bagof", 3, biFindall)
	registerBuiltin("setof", 3, biSetof)
	registerBuiltin("forall", 2, biForall)
	registerBuiltin("aggregate_all", 3, biAggregateAll)
	registerBuiltin("maplist", 2, biMaplist(1))
	registerBuiltin("maplist", 3, biMaplist(2))
	registerBuiltin("maplist", 4, biMaplist(3))
	registerBuiltin("maplist", 5, biMaplist(4))
	registerBuiltin("include", 3, biInclude)
	registerBuiltin("exclude", 3, biExclude)
}

// solveAll runs goal as a nested, reentrant search with its own
// choicepoint stack and a fresh cut barrier (0), invoking collect once per
// solution found and backtracking for more afterward, until goal's search
// space is exhausted. Bindings made during the search are visible to
// collect but are not undone until the caller does so — matching
// hasSolution's sharing of the outer Env, generalized to "collect every
// answer" rather than "stop at the first."
func (e *Engine) solveAll(goal Term, collect func()) *Fault {
	cont := wrapGoals([]Term{goal}, 0, nil)
	var stack []*choicepoint
	for {
		if cont == nil {
			collect()
			if !e.backtrack(&stack, &cont) {
				return nil
			}
			continue
		}
		frame := cont.frame
		rest := cont.next
		walked := e.env.Walk(frame.goal)
		fault, handled := e.dispatch(walked, frame, rest, &stack, &cont)
		if fault != nil {
			return fault
		}
		if !handled {
			if !e.backtrack(&stack, &cont) {
				return nil
			}
		}
	}
}

// biFindall implements findall/3 (and, without the free-variable grouping
// bagof/3 traditionally adds, doubles as its registration — spec.md §4.8
// does not distinguish the two): collect Template under Goal for every
// solution, unifying List with the result even when it is empty.
func biFindall(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	template, goal, listArg := args[0], args[1], args[2]
	mark := e.env.Mark()
	var results []Term
	f := e.solveAll(goal, func() {
		results = append(results, e.env.WalkDeep(template))
	})
	e.env.UndoTo(mark)
	if f != nil {
		return fault(f)
	}
	return ok1(Unify(listArg, ProperList(results...), e.env))
}

// biSetof implements setof/3: as findall/3, but sorted into the standard
// order of terms with duplicates removed, and failing (rather than
// succeeding with []) when Goal has no solutions.
func biSetof(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	template, goal, listArg := args[0], args[1], args[2]
	mark := e.env.Mark()
	var results []Term
	f := e.solveAll(goal, func() {
		results = append(results, e.env.WalkDeep(template))
	})
	e.env.UndoTo(mark)
	if f != nil {
		return fault(f)
	}
	if len(results) == 0 {
		return failed()
	}
	sorted := SortTerms(results, true)
	return ok1(Unify(listArg, ProperList(sorted...), e.env))
}

// biForall implements forall/2 as \+(Cond, \+Action), the standard
// definition: every solution of Cond must admit at least one solution of
// Action.
func biForall(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	cond, action := args[0], args[1]
	inner := &Compound{Functor: "\\+", Args: []Term{action}}
	conj := &Compound{Functor: ",", Args: []Term{cond, inner}}
	mark := e.env.Mark()
	has, f := e.hasSolution(conj)
	e.env.UndoTo(mark)
	if f != nil {
		return fault(f)
	}
	return ok1(!has)
}

// biAggregateAll implements the count/sum/bag/set templates of
// aggregate_all/3 (spec.md §4 supplement), reusing the same solveAll
// collection loop as findall/setof.
func biAggregateAll(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	spec, goal, result := args[0], args[1], args[2]
	specC, isCompound := e.env.Walk(spec).(*Compound)
	specAtom, isAtom := e.env.Walk(spec).(Atom)

	mark := e.env.Mark()
	var results []Term
	var template Term = Atom{Name: "x"}
	if isCompound && len(specC.Args) == 1 {
		template = specC.Args[0]
	}
	f := e.solveAll(goal, func() {
		results = append(results, e.env.WalkDeep(template))
	})
	e.env.UndoTo(mark)
	if f != nil {
		return fault(f)
	}

	switch {
	case isAtom && specAtom.Name == "count":
		return ok1(Unify(result, intNum(int64(len(results))).toTerm(), e.env))
	case isCompound && specC.Functor == "count":
		return ok1(Unify(result, intNum(int64(len(results))).toTerm(), e.env))
	case isCompound && specC.Functor == "bag":
		return ok1(Unify(result, ProperList(results...), e.env))
	case isCompound && specC.Functor == "set":
		return ok1(Unify(result, ProperList(SortTerms(results, true)...), e.env))
	case isCompound && specC.Functor == "sum":
		total := intNum(0)
		for _, r := range results {
			n, err := Eval(r, e.env)
			if err != nil {
				return fault(err.(*Fault))
			}
			total, _ = evalBinary("+", total, n)
		}
		return ok1(Unify(result, total.toTerm(), e.env))
	default:
		return fault(errType("aggregate_spec", e.env.Walk(spec)))
	}
}

// applyGoal extends a partially-applied goal (Atom or Compound) with extra
// trailing arguments, the mechanism maplist/N and include/exclude use to
// turn a closure plus one row of elements into a callable goal term.
func applyGoal(goal Term, extra []Term) Term {
	switch g := goal.(type) {
	case Atom:
		if len(extra) == 0 {
			return g
		}
		return &Compound{Functor: g.Name, Args: extra}
	case *Compound:
		args := make([]Term, 0, len(g.Args)+len(extra))
		args = append(args, g.Args...)
		args = append(args, extra...)
		return &Compound{Functor: g.Functor, Args: args}
	default:
		return goal
	}
}

// biMaplist returns a maplist/(nLists+1) built-in: Goal is applied to the
// nLists-tuple of corresponding elements across every list, in lockstep.
// At least one list argument must already be a proper list so the common
// length can be determined; any other list arguments that are unbound are
// filled with fresh variables of that length, matching spec.md §4.8's
// generation mode.
func biMaplist(nLists int) BuiltinFunc {
	return func(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
		goal := args[0]
		lists := args[1:]
		elemsPerList := make([][]Term, nLists)
		length := -1
		for i, l := range lists {
			if elems, ok := SliceFromProperList(e.env.WalkDeep(l)); ok {
				if length == -1 {
					length = len(elems)
				} else if length != len(elems) {
					return failed()
				}
				elemsPerList[i] = elems
			}
		}
		if length == -1 {
			return fault(errInstantiation("maplist"))
		}
		for i, l := range lists {
			if elemsPerList[i] != nil {
				continue
			}
			fresh := make([]Term, length)
			for j := range fresh {
				fresh[j] = e.freshVar("_")
			}
			if !Unify(l, ProperList(fresh...), e.env) {
				return failed()
			}
			elemsPerList[i] = fresh
		}
		extra := make([]Term, length)
		for row := 0; row < length; row++ {
			rowArgs := make([]Term, nLists)
			for i := 0; i < nLists; i++ {
				rowArgs[i] = elemsPerList[i][row]
			}
			extra[row] = applyGoal(goal, rowArgs)
		}
		return true, extra, nil, nil
	}
}

// biInclude implements include/3: keep only the elements of the input
// list for which Goal has at least one solution.
func biInclude(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	return filterList(e, args, true)
}

// biExclude implements exclude/3: the complement of include/3.
func biExclude(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	return filterList(e, args, false)
}

func filterList(e *Engine, args []Term, keepOnSuccess bool) (bool, []Term, []AltThunk, error) {
	goal, listArg, result := args[0], args[1], args[2]
	elems, ok := SliceFromProperList(e.env.WalkDeep(listArg))
	if !ok {
		return fault(errInstantiation("include/exclude"))
	}
	var out []Term
	for _, el := range elems {
		mark := e.env.Mark()
		has, f := e.hasSolution(applyGoal(goal, []Term{el}))
		e.env.UndoTo(mark)
		if f != nil {
			return fault(f)
		}
		if has == keepOnSuccess {
			out = append(out, el)
		}
	}
	return ok1(Unify(result, ProperList(out...), e.env))
}
