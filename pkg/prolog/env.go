package prolog

// Env is the binding environment (spec.md §4.2): a mapping from variable
// identity to Term, together with a trail — an append-only log of variable
// identities bound since the last checkpoint. This replaces the teacher's
// persistent-map Substitution (pkg/minikanren's core.go Substitution.Bind,
// which cloned the whole map on every binding) with one map keyed by
// variable id plus a trail: O(1) bind, undo-to-mark in time proportional
// to the bindings removed, no clone on backtrack.
type Env struct {
	bindings map[int64]Term
	trail    []int64
}

// NewEnv creates an empty binding environment.
func NewEnv() *Env {
	return &Env{bindings: make(map[int64]Term)}
}

// Walk follows v -> v' -> ... until it reaches a non-Var or an unbound Var,
// and returns that terminal term. It does not recurse into compound
// arguments; see WalkDeep for that.
func (e *Env) Walk(t Term) Term {
	for {
		v, ok := t.(*Var)
		if !ok {
			return t
		}
		bound, has := e.bindings[v.id]
		if !has {
			return v
		}
		t = bound
	}
}

// WalkDeep recursively substitutes every variable in t using Walk,
// producing a term with no remaining bound variables reachable from its
// root. Unbound variables are left in place.
//
// WalkDeep does not occurs-check; a program that manages to build a cyclic
// binding (only possible via built-ins that bypass Unify, since Unify
// itself never creates one without direct self-reference) could make this
// recurse unboundedly. depth is bounded to guard against that per
// spec.md §3: beyond maxWalkDepth this returns the term unexpanded rather
// than raising, since callers of WalkDeep are in arbitrary internal
// contexts, not just the top-level answer projector.
func (e *Env) WalkDeep(t Term) Term {
	return e.walkDeepN(t, 0)
}

const maxWalkDepth = 1_000_000

func (e *Env) walkDeepN(t Term, depth int) Term {
	if depth > maxWalkDepth {
		return t
	}
	t = e.Walk(t)
	c, ok := t.(*Compound)
	if !ok {
		return t
	}
	args := make([]Term, len(c.Args))
	changed := false
	for i, a := range c.Args {
		na := e.walkDeepN(a, depth+1)
		args[i] = na
		if na != a {
			changed = true
		}
	}
	if !changed {
		return c
	}
	return &Compound{Functor: c.Functor, Args: args}
}

// Bind installs v -> t and appends v to the trail. The caller must ensure v
// is currently unbound; Bind does not check (Unify is the only caller and
// always walks first).
func (e *Env) Bind(v *Var, t Term) {
	e.bindings[v.id] = t
	e.trail = append(e.trail, v.id)
}

// Mark returns the current trail length, a checkpoint that UndoTo can later
// roll back to.
func (e *Env) Mark() int { return len(e.trail) }

// UndoTo removes every binding added since mark, restoring the environment
// to the state Mark() captured. This is the single backtracking primitive:
// the resolution engine never inspects or copies the bindings map itself,
// only trail length.
func (e *Env) UndoTo(mark int) {
	for i := len(e.trail) - 1; i >= mark; i-- {
		delete(e.bindings, e.trail[i])
	}
	e.trail = e.trail[:mark]
}

// TrailLen reports the current trail length, primarily for tests asserting
// the "backtrack restoration" invariant in spec.md §8.
func (e *Env) TrailLen() int { return len(e.trail) }

// Answer is a finite mapping from a query's free variables to their
// fully-substituted terms (spec.md §3's Answer lifecycle).
type Answer map[string]Term

// Project extracts the substitution over exactly the given query
// variables, skipping any internally generated names (the "_G"/"TEMP"
// convention from spec.md §4.2). Each Var's value is produced via WalkDeep
// so the projection contains no bound-but-unexpanded variables.
func (e *Env) Project(queryVars []*Var) Answer {
	ans := make(Answer, len(queryVars))
	for _, v := range queryVars {
		if isInternalName(v.name) {
			continue
		}
		ans[v.name] = e.WalkDeep(v)
	}
	return ans
}

func isInternalName(name string) bool {
	return len(name) >= 2 && (name[:2] == "_G" || (len(name) >= 4 && name[:4] == "TEMP"))
}
