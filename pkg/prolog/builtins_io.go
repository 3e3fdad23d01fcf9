package prolog

import "fmt"

// This file groups the side-effecting built-ins of spec.md §4.7: term
// output and database mutation. Output goes to e.opts.Out (defaulting to
// os.Stdout, see NewEngine) rather than directly to the fmt package, so a
// host embedding the engine can capture it — the same seam the teacher's
// cmd/example uses between its solver and its own presentation layer.
func init() {
	registerBuiltin("write", 1, biWrite)
	registerBuiltin("print", 1, biWrite)
	registerBuiltin("writeln", 1, biWriteln)
	registerBuiltin("nl", 0, biNl)
	registerBuiltin("tab", 1, biTab)
	registerBuiltin("asserta", 1, biAsserta)
	registerBuiltin("assertz", 1, biAssertz)
	registerBuiltin("assert", 1, biAssertz)
	registerBuiltin("retract", 1, biRetract)
}

func biWrite(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	fmt.Fprint(e.opts.Out, e.env.WalkDeep(args[0]).String())
	return ok1(true)
}

func biWriteln(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	fmt.Fprintln(e.opts.Out, e.env.WalkDeep(args[0]).String())
	return ok1(true)
}

func biNl(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	fmt.Fprintln(e.opts.Out)
	return ok1(true)
}

func biTab(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	n, err := Eval(args[0], e.env)
	if err != nil {
		return fault(err.(*Fault))
	}
	for i := int64(0); i < n.i; i++ {
		fmt.Fprint(e.opts.Out, " ")
	}
	return ok1(true)
}

// clauseFromTerm splits a Head or (Head :- Body) term into a Clause,
// grounded on how the teacher's pldb.go parses assert/retract arguments.
func clauseFromTerm(t Term) Clause {
	if c, ok := t.(*Compound); ok && c.Functor == ":-" && len(c.Args) == 2 {
		return Clause{Head: c.Args[0], Body: flattenConjunction(c.Args[1])}
	}
	return Clause{Head: t}
}

// biAsserta implements asserta/1: add a clause at the front of its
// predicate's candidate list, visible to subsequent goals in the same
// query (spec.md §5).
func biAsserta(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	e.db.Asserta(clauseFromTerm(e.env.WalkDeep(args[0])))
	return ok1(true)
}

// biAssertz implements assertz/1 (and assert/1): append a clause.
func biAssertz(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	e.db.Assertz(clauseFromTerm(e.env.WalkDeep(args[0])))
	return ok1(true)
}

// biRetract implements retract/1: remove the first matching clause (by
// unification of both head and body against the stored clause, renamed
// fresh so the match doesn't leak the stored clause's own variables).
func biRetract(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	target := clauseFromTerm(e.env.WalkDeep(args[0]))
	pi, ok := IndicatorOf(target.Head)
	if !ok {
		return fault(errType("callable", target.Head))
	}
	removed := e.db.RetractMatching(pi, func(c Clause) bool {
		mark := e.env.Mark()
		renamed := rename(c, func(name string) *Var { return e.freshVar(name) })
		matched := Unify(target.Head, renamed.Head, e.env) && UnifyLists(target.Body, renamed.Body, e.env)
		e.env.UndoTo(mark)
		return matched
	})
	return ok1(removed)
}
