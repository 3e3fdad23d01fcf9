package prolog

import "strconv"

func init() {
	registerBuiltin("=", 2, biUnify)
	registerBuiltin("\\=", 2, biNotUnifiable)
	registerBuiltin("==", 2, biStructEqual)
	registerBuiltin("\\==", 2, biStructNotEqual)
	registerBuiltin("@<", 2, biOrderLT)
	registerBuiltin("@>", 2, biOrderGT)
	registerBuiltin("@=<", 2, biOrderLE)
	registerBuiltin("@>=", 2, biOrderGE)
	registerBuiltin("compare", 3, biCompare)

	registerBuiltin("var", 1, biVar)
	registerBuiltin("nonvar", 1, biNonvar)
	registerBuiltin("atom", 1, biAtom)
	registerBuiltin("atomic", 1, biAtomic)
	registerBuiltin("number", 1, biNumber)
	registerBuiltin("integer", 1, biInteger)
	registerBuiltin("float", 1, biFloat)
	registerBuiltin("compound", 1, biCompound)
	registerBuiltin("callable", 1, biCallable)
	registerBuiltin("is_list", 1, biIsList)
	registerBuiltin("ground", 1, biGround)
	registerBuiltin("functor", 3, biFunctor)
	registerBuiltin("arg", 3, biArg)
	registerBuiltin("=..", 2, biUniv)
}

// biUnify implements =/2: plain unification (spec.md §4.7).
func biUnify(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	return ok1(Unify(args[0], args[1], e.env))
}

// biNotUnifiable implements \=/2: succeeds iff = would fail, retaining no
// bindings either way (spec.md §4.7).
func biNotUnifiable(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	m := e.env.Mark()
	ok := Unify(args[0], args[1], e.env)
	e.env.UndoTo(m)
	return ok1(!ok)
}

func biStructEqual(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	return ok1(Equal(e.env.WalkDeep(args[0]), e.env.WalkDeep(args[1])))
}

func biStructNotEqual(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	return ok1(!Equal(e.env.WalkDeep(args[0]), e.env.WalkDeep(args[1])))
}

func biOrderLT(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	return ok1(Compare(e.env.WalkDeep(args[0]), e.env.WalkDeep(args[1])) < 0)
}
func biOrderGT(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	return ok1(Compare(e.env.WalkDeep(args[0]), e.env.WalkDeep(args[1])) > 0)
}
func biOrderLE(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	return ok1(Compare(e.env.WalkDeep(args[0]), e.env.WalkDeep(args[1])) <= 0)
}
func biOrderGE(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	return ok1(Compare(e.env.WalkDeep(args[0]), e.env.WalkDeep(args[1])) >= 0)
}

func biCompare(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	c := Compare(e.env.WalkDeep(args[1]), e.env.WalkDeep(args[2]))
	var sym string
	switch {
	case c < 0:
		sym = "<"
	case c > 0:
		sym = ">"
	default:
		sym = "="
	}
	return ok1(Unify(args[0], Atom{Name: sym}, e.env))
}

func biVar(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	_, ok := e.env.Walk(args[0]).(*Var)
	return ok1(ok)
}
func biNonvar(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	_, ok := e.env.Walk(args[0]).(*Var)
	return ok1(!ok)
}
func biAtom(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	a, ok := e.env.Walk(args[0]).(Atom)
	return ok1(ok && !isNumericText(a.Name))
}
func biAtomic(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	_, isAtom := e.env.Walk(args[0]).(Atom)
	return ok1(isAtom)
}
func biNumber(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	a, ok := e.env.Walk(args[0]).(Atom)
	return ok1(ok && isNumericText(a.Name))
}
func biInteger(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	a, ok := e.env.Walk(args[0]).(Atom)
	if !ok {
		return ok1(false)
	}
	_, err := strconv.ParseInt(a.Name, 10, 64)
	return ok1(err == nil)
}
func biFloat(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	a, ok := e.env.Walk(args[0]).(Atom)
	if !ok {
		return ok1(false)
	}
	if _, err := strconv.ParseInt(a.Name, 10, 64); err == nil {
		return ok1(false)
	}
	_, err := strconv.ParseFloat(a.Name, 64)
	return ok1(err == nil)
}
func biCompound(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	_, ok := e.env.Walk(args[0]).(*Compound)
	return ok1(ok)
}
func biCallable(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	switch e.env.Walk(args[0]).(type) {
	case Atom, *Compound:
		return ok1(true)
	}
	return ok1(false)
}
func biIsList(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	_, ok := SliceFromProperList(e.env.WalkDeep(args[0]))
	return ok1(ok)
}
func biGround(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	return ok1(IsGround(e.env.WalkDeep(args[0])))
}

// biFunctor implements functor/3: decompose a compound/atomic into its
// name and arity, or (when the first argument is unbound) construct one
// from name and arity.
func biFunctor(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	t := e.env.Walk(args[0])
	if _, isVar := t.(*Var); !isVar {
		pi, ok := IndicatorOf(t)
		if !ok {
			return failed()
		}
		return ok1(Unify(args[1], Atom{Name: pi.Name}, e.env) && Unify(args[2], Atom{Name: strconv.Itoa(pi.Arity)}, e.env))
	}
	name, ok := e.env.Walk(args[1]).(Atom)
	if !ok {
		return fault(errType("atom", e.env.Walk(args[1])))
	}
	arityAtom, ok := e.env.Walk(args[2]).(Atom)
	if !ok {
		return fault(errType("integer", e.env.Walk(args[2])))
	}
	arity, err := strconv.Atoi(arityAtom.Name)
	if err != nil {
		return fault(errType("integer", arityAtom))
	}
	if arity == 0 {
		return ok1(Unify(args[0], name, e.env))
	}
	newArgs := make([]Term, arity)
	for i := range newArgs {
		newArgs[i] = e.freshVar("_")
	}
	return ok1(Unify(args[0], &Compound{Functor: name.Name, Args: newArgs}, e.env))
}

// biArg implements arg/3: arg(N, Term, Value).
func biArg(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	nAtom, ok := e.env.Walk(args[0]).(Atom)
	if !ok {
		return fault(errInstantiation(args[0]))
	}
	n, err := strconv.Atoi(nAtom.Name)
	if err != nil {
		return fault(errType("integer", nAtom))
	}
	c, ok := e.env.Walk(args[1]).(*Compound)
	if !ok {
		return fault(errType("compound", e.env.Walk(args[1])))
	}
	if n < 1 || n > len(c.Args) {
		return failed()
	}
	return ok1(Unify(args[2], c.Args[n-1], e.env))
}

// biUniv implements =../2 (univ): Term =.. [Functor|Args].
func biUniv(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	t := e.env.Walk(args[0])
	if _, isVar := t.(*Var); !isVar {
		var elems []Term
		switch v := t.(type) {
		case Atom:
			elems = []Term{v}
		case *Compound:
			elems = append([]Term{Atom{Name: v.Functor}}, v.Args...)
		default:
			return failed()
		}
		return ok1(Unify(args[1], ProperList(elems...), e.env))
	}
	elems, ok := SliceFromProperList(e.env.WalkDeep(args[1]))
	if !ok || len(elems) == 0 {
		return fault(errInstantiation(args[1]))
	}
	name, ok := elems[0].(Atom)
	if !ok {
		return fault(errType("atom", elems[0]))
	}
	if len(elems) == 1 {
		return ok1(Unify(args[0], name, e.env))
	}
	return ok1(Unify(args[0], &Compound{Functor: name.Name, Args: elems[1:]}, e.env))
}
