package prolog

// Unify computes the most general extension of env that equates a and b,
// mutating env in place and returning whether it succeeded (spec.md §4.3).
// This generalizes the teacher's unify/unifyWithConstraints (primitives.go)
// from a cloning, order-independent constraint-store scheme to the
// trail-based Env: on failure, env may hold partial bindings made before
// the failing sub-unification — per spec.md §4.3's "Failure guarantee",
// the caller owns rollback via a Mark/UndoTo pair, not Unify itself.
func Unify(a, b Term, env *Env) bool {
	a = env.Walk(a)
	b = env.Walk(b)

	if av, ok := a.(*Var); ok {
		if bv, ok := b.(*Var); ok && av.id == bv.id {
			return true
		}
		// Deterministic orientation avoids creating a cycle when the same
		// clause is renamed and unified against itself repeatedly: the
		// newer (higher-id) variable always points at the older one.
		if bv, ok := b.(*Var); ok {
			if av.id < bv.id {
				env.Bind(bv, av)
			} else {
				env.Bind(av, bv)
			}
			return true
		}
		env.Bind(av, b)
		return true
	}
	if bv, ok := b.(*Var); ok {
		env.Bind(bv, a)
		return true
	}

	switch av := a.(type) {
	case Atom:
		bv, ok := b.(Atom)
		return ok && av.Name == bv.Name
	case *Compound:
		bv, ok := b.(*Compound)
		if !ok || av.Functor != bv.Functor || len(av.Args) != len(bv.Args) {
			return false
		}
		return UnifyLists(av.Args, bv.Args, env)
	}
	return false
}

// UnifyLists unifies two term vectors pointwise, left to right,
// short-circuiting on the first failure. Both vectors must have equal
// length; a length mismatch is itself a failure rather than a panic.
func UnifyLists(xs, ys []Term, env *Env) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !Unify(xs[i], ys[i], env) {
			return false
		}
	}
	return true
}
