package prolog

import (
	"fmt"
	"math"
	"strconv"
)

// number is the evaluator's internal numeric result (spec.md §4.6):
// integer preferred when exact, float otherwise. isInt discriminates which
// field is meaningful.
type number struct {
	isInt bool
	i     int64
	f     float64
}

func intNum(i int64) number    { return number{isInt: true, i: i} }
func floatNum(f float64) number { return number{isInt: false, f: f} }

func (n number) asFloat() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

func (n number) toTerm() Term {
	if n.isInt {
		return Atom{Name: strconv.FormatInt(n.i, 10)}
	}
	return Atom{Name: strconv.FormatFloat(n.f, 'g', -1, 64)}
}

// Eval performs the recursive numeric evaluation of spec.md §4.6 over
// env.Walk(t) (walking one level at a time as recursion descends, matching
// the spec's "Recursive descent over a Term after walk_deep"). It returns
// a *Fault (ErrUninstantiated / ErrDivisionByZero / ErrArithmeticType
// wrapped as InstantiationFault/EvaluationFault) rather than panicking;
// callers surface that as a hard error per spec.md §7.
func Eval(t Term, env *Env) (number, error) {
	t = env.Walk(t)
	switch v := t.(type) {
	case *Var:
		return number{}, errInstantiation(ErrUninstantiated)
	case Atom:
		if i, err := strconv.ParseInt(v.Name, 10, 64); err == nil {
			return intNum(i), nil
		}
		if f, err := strconv.ParseFloat(v.Name, 64); err == nil {
			return floatNum(f), nil
		}
		switch v.Name {
		case "pi":
			return floatNum(math.Pi), nil
		case "e":
			return floatNum(math.E), nil
		}
		return number{}, errEvaluation(ErrArithmeticType)
	case *Compound:
		return evalCompound(v, env)
	default:
		return number{}, errEvaluation(ErrArithmeticType)
	}
}

func evalCompound(c *Compound, env *Env) (number, error) {
	if len(c.Args) == 1 {
		a, err := Eval(c.Args[0], env)
		if err != nil {
			return number{}, err
		}
		switch c.Functor {
		case "-":
			if a.isInt {
				return intNum(-a.i), nil
			}
			return floatNum(-a.f), nil
		case "+":
			return a, nil
		case "abs":
			if a.isInt {
				if a.i < 0 {
					return intNum(-a.i), nil
				}
				return a, nil
			}
			return floatNum(math.Abs(a.f)), nil
		case "sqrt":
			return floatNum(math.Sqrt(a.asFloat())), nil
		case "sign":
			if a.isInt {
				switch {
				case a.i > 0:
					return intNum(1), nil
				case a.i < 0:
					return intNum(-1), nil
				default:
					return intNum(0), nil
				}
			}
			return floatNum(float64(sign(a.f))), nil
		case "float":
			return floatNum(a.asFloat()), nil
		case "truncate", "integer":
			return intNum(int64(a.asFloat())), nil
		case "floor":
			return intNum(int64(math.Floor(a.asFloat()))), nil
		case "ceiling":
			return intNum(int64(math.Ceil(a.asFloat()))), nil
		}
		return number{}, errEvaluation(c.Functor)
	}
	if len(c.Args) == 2 {
		a, err := Eval(c.Args[0], env)
		if err != nil {
			return number{}, err
		}
		b, err := Eval(c.Args[1], env)
		if err != nil {
			return number{}, err
		}
		return evalBinary(c.Functor, a, b)
	}
	return number{}, errEvaluation(ErrArithmeticType)
}

func sign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

func evalBinary(op string, a, b number) (number, error) {
	bothInt := a.isInt && b.isInt
	switch op {
	case "+":
		if bothInt {
			return intNum(a.i + b.i), nil
		}
		return floatNum(a.asFloat() + b.asFloat()), nil
	case "-":
		if bothInt {
			return intNum(a.i - b.i), nil
		}
		return floatNum(a.asFloat() - b.asFloat()), nil
	case "*":
		if bothInt {
			return intNum(a.i * b.i), nil
		}
		return floatNum(a.asFloat() * b.asFloat()), nil
	case "/":
		if b.asFloat() == 0 {
			return number{}, errEvaluation(ErrDivisionByZero)
		}
		if bothInt && a.i%b.i == 0 {
			return intNum(a.i / b.i), nil
		}
		return floatNum(a.asFloat() / b.asFloat()), nil
	case "//":
		if !bothInt {
			return number{}, errType("integer", b.toTerm())
		}
		if b.i == 0 {
			return number{}, errEvaluation(ErrDivisionByZero)
		}
		return intNum(floorDiv(a.i, b.i)), nil
	case "mod":
		if !bothInt {
			return number{}, errType("integer", b.toTerm())
		}
		if b.i == 0 {
			return number{}, errEvaluation(ErrDivisionByZero)
		}
		m := a.i % b.i
		if m != 0 && (m < 0) != (b.i < 0) {
			m += b.i
		}
		return intNum(m), nil
	case "rem":
		if !bothInt {
			return number{}, errType("integer", b.toTerm())
		}
		if b.i == 0 {
			return number{}, errEvaluation(ErrDivisionByZero)
		}
		return intNum(a.i % b.i), nil
	case "min":
		if compareNumbers(a, b) <= 0 {
			return a, nil
		}
		return b, nil
	case "max":
		if compareNumbers(a, b) >= 0 {
			return a, nil
		}
		return b, nil
	case "**", "^":
		if bothInt && b.i >= 0 && op == "^" {
			r := int64(1)
			for i := int64(0); i < b.i; i++ {
				r *= a.i
			}
			return intNum(r), nil
		}
		return floatNum(math.Pow(a.asFloat(), b.asFloat())), nil
	}
	return number{}, errEvaluation(op)
}

// floorDiv implements the floored integer division spec.md §4.6 requires
// for "//" (as opposed to Go's truncating "/").
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func compareNumbers(a, b number) int {
	fa, fb := a.asFloat(), b.asFloat()
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	default:
		return 0
	}
}

// deferredGoal is the internal marker the engine reschedules a comparison
// goal as when one side is uninstantiated (spec.md §4.6's "Deferred
// constraints"). remaining counts down from Options.DeferredRetryBound;
// when it reaches zero the goal raises ErrUninstantiated instead of
// deferring again.
type deferredGoal struct {
	goal      *Compound
	remaining int
}

func (deferredGoal) isTerm() {}
func (d deferredGoal) String() string {
	return fmt.Sprintf("$deferred(%s,%d)", d.goal.String(), d.remaining)
}

func isCompareOp(functor string) bool {
	switch functor {
	case "=:=", "=\\=", "<", ">", ">=", "=<":
		return true
	}
	return false
}

func isUninstantiated(err error) bool {
	f, ok := err.(*Fault)
	return ok && f.Kind == FaultInstantiation
}

// dispatchIs implements is/2 and :=/2 (spec.md §4.7): evaluate the right
// side and unify it with the left. The right side must be fully
// evaluable; unlike comparisons, is/2 has nothing to defer against since
// its whole purpose is to produce a value for the left side.
func (e *Engine) dispatchIs(g *Compound, rest *goalList, cont **goalList) (*Fault, bool) {
	n, err := Eval(g.Args[1], e.env)
	if err != nil {
		if f, ok := err.(*Fault); ok {
			return f, false
		}
		return newFault(FaultEvaluation, err.Error()), false
	}
	if !Unify(g.Args[0], n.toTerm(), e.env) {
		return nil, false
	}
	*cont = rest
	return nil, true
}

// dispatchCompare implements the arithmetic comparison operators,
// including the bounded deferred-constraint retry of spec.md §4.6: when
// evaluation fails only because of an uninstantiated variable, the goal is
// reappended at the tail of the continuation with a decremented counter,
// rather than raising immediately.
func (e *Engine) dispatchCompare(g *Compound, frame goalFrame, rest *goalList, remaining int, cont **goalList) (*Fault, bool) {
	a, errA := Eval(g.Args[0], e.env)
	b, errB := Eval(g.Args[1], e.env)
	if (errA != nil && isUninstantiated(errA)) || (errB != nil && isUninstantiated(errB)) {
		if remaining > 0 {
			dg := deferredGoal{goal: g, remaining: remaining - 1}
			*cont = appendAtTail(rest, goalFrame{goal: dg, cutBarrier: frame.cutBarrier})
			return nil, true
		}
		return errInstantiation(ErrUninstantiated), false
	}
	if errA != nil {
		return errA.(*Fault), false
	}
	if errB != nil {
		return errB.(*Fault), false
	}
	cmp := compareNumbers(a, b)
	var ok bool
	switch g.Functor {
	case "=:=":
		ok = cmp == 0
	case "=\\=":
		ok = cmp != 0
	case "<":
		ok = cmp < 0
	case ">":
		ok = cmp > 0
	case ">=":
		ok = cmp >= 0
	case "=<":
		ok = cmp <= 0
	}
	if !ok {
		return nil, false
	}
	*cont = rest
	return nil, true
}
