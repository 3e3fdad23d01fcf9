package prolog

// altState is the retryable alternative stored in a choicepoint
// (spec.md §3: "remaining alternatives (clauses or solution sets)"). next
// attempts the next alternative against the already-rolled-back Env and
// reports whether it succeeded and whether further alternatives remain
// after this attempt (so the engine knows whether to keep the choicepoint
// on the stack or discard it).
type altState interface {
	next(e *Engine) (cont *goalList, ok bool, hasMore bool)
}

// choicepoint is the saved state enabling retry of an alternative after
// failure (spec.md §3). depth records the stack length at creation time.
// Cutting (spec.md §4.5's "Cut semantics") does not read it: `!` and the
// if-then-else commit marker truncate the stack to the barrier length
// recorded in their own goal frame or marker.
type choicepoint struct {
	mark  int
	depth int
	alt   altState
}

// clauseAlt retries the remaining user-predicate clauses for one call.
// barrier is the cut barrier assigned to each clause body renamed from it
// — the stack depth recorded when this call was first dispatched, so a `!`
// in the selected clause's body discards this very choicepoint along with
// anything created afterward.
type clauseAlt struct {
	clauses  []Clause
	callTerm Term
	cont     *goalList
	barrier  int
}

func (a *clauseAlt) next(e *Engine) (*goalList, bool, bool) {
	for len(a.clauses) > 0 {
		c := a.clauses[0]
		a.clauses = a.clauses[1:]
		m := e.env.Mark()
		rc := rename(c, e.freshVar)
		if Unify(a.callTerm, rc.Head, e.env) {
			return wrapGoals(rc.Body, a.barrier, a.cont), true, len(a.clauses) > 0
		}
		e.env.UndoTo(m)
	}
	return nil, false, false
}

// builtinAlt retries the remaining solutions of a multi-solution built-in
// (append/3 splitting, member/2 enumeration, between/3, permutation/2,
// select/3, atom_concat/3 splitting, …). Each thunk is tried against a
// freshly rolled-back Env; barrier is the calling goal's own cut barrier,
// since built-ins never introduce a fresh cut scope.
type builtinAlt struct {
	thunks  []AltThunk
	cont    *goalList
	barrier int
}

func (a *builtinAlt) next(e *Engine) (*goalList, bool, bool) {
	for len(a.thunks) > 0 {
		t := a.thunks[0]
		a.thunks = a.thunks[1:]
		m := e.env.Mark()
		extra, ok := t(e.env)
		if ok {
			return wrapGoals(extra, a.barrier, a.cont), true, len(a.thunks) > 0
		}
		e.env.UndoTo(m)
	}
	return nil, false, false
}

// disjAlt is the single-shot alternative created by plain (A ; B): the
// right branch, tried once if A's own choicepoints are all exhausted.
// It inherits the enclosing goal's cut barrier (disjunction does not open
// a fresh cut scope — spec.md §4.5 only grants one to `->`'s condition,
// findall, and negation).
type disjAlt struct {
	branch  Term
	cont    *goalList
	barrier int
}

func (a *disjAlt) next(e *Engine) (*goalList, bool, bool) {
	return wrapGoals([]Term{a.branch}, a.barrier, a.cont), true, false
}

// elseOnceAlt is the single-shot alternative pushed by if-then-else before
// the condition runs: reached only if the condition produces zero
// solutions. See engine.go's dispatchIfThenElse for how the commit marker
// prevents this from ever being reached once the condition succeeds.
type elseOnceAlt struct {
	elseGoal Term
	cont     *goalList
	barrier  int
}

func (a *elseOnceAlt) next(e *Engine) (*goalList, bool, bool) {
	return wrapGoals([]Term{a.elseGoal}, a.barrier, a.cont), true, false
}
