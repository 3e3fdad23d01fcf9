// Package prolog implements the resolution core of a Prolog interpreter:
// a first-order term model, a trail-backed binding environment,
// unification, an indexed clause database, and an iterative SLD-resolution
// engine with cut, negation-as-failure, if-then-else, arithmetic, and the
// standard built-in/meta-predicate catalog.
//
// The engine is agnostic to how clauses and queries are produced: the
// package's own text reader (Parser, reader.go) or a host's code builds
// Terms and hands them to the engine through Database and Solve.
package prolog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Term is the tagged variant at the root of the data model: every value the
// engine manipulates — variables, atoms, and compound structures — is a
// Term. Terms are immutable after construction; all mutation happens in the
// Env's bindings, never on the Term itself.
type Term interface {
	isTerm()
	String() string
}

// Var is a logic variable. Identity is the id, not the (optional) name:
// two Vars with the same name but different ids are distinct variables,
// which is what clause renaming (see rename in clausedb.go) relies on.
type Var struct {
	id   int64
	name string
}

func (*Var) isTerm() {}

// String renders a variable using its source name when present, falling
// back to an internal "_G<id>" form. Names beginning with "_G" or "TEMP"
// are treated by Env.Project as internally generated and are never shown
// to a caller of Solve.
func (v *Var) String() string {
	if v.name != "" && v.name != "_" {
		return v.name
	}
	return fmt.Sprintf("_G%d", v.id)
}

// ID returns the variable's unique identity.
func (v *Var) ID() int64 { return v.id }

// Name returns the variable's source-level name, or "" for anonymous
// variables synthesized internally.
func (v *Var) Name() string { return v.name }

// Atom is a zero-arity symbol. Numeric literals are represented textually
// here too (e.g. Atom{Name: "42"}); the arithmetic evaluator (arith.go)
// recognizes numericity on demand rather than the term model carving out a
// distinct numeric variant, which preserves exact source-text round trip
// for the formatter.
type Atom struct {
	Name string
}

func (Atom) isTerm() {}

func (a Atom) String() string {
	return quoteAtomIfNeeded(a.Name)
}

// Compound is a named functor applied to an ordered argument vector. The
// empty list ("[]"/0) is represented as an Atom per the classic convention;
// list cells are Compound{Functor: ".", Args: [Head, Tail]}.
type Compound struct {
	Functor string
	Args    []Term
}

func (*Compound) isTerm() {}

// Arity returns the number of arguments, i.e. len(Args).
func (c *Compound) Arity() int { return len(c.Args) }

func (c *Compound) String() string {
	if IsList(c) || (c.Functor == "." && len(c.Args) == 2) {
		return formatList(c)
	}
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", quoteAtomIfNeeded(c.Functor), strings.Join(args, ","))
}

// Indicator is the (name, arity) pair a clause database indexes clauses by
// — spec.md calls this the "principal functor".
type Indicator struct {
	Name  string
	Arity int
}

func (pi Indicator) String() string { return fmt.Sprintf("%s/%d", pi.Name, pi.Arity) }

// IndicatorOf returns the principal functor of a goal/head term: an Atom
// has arity 0, a Compound has arity len(Args); any other term has no
// well-defined indicator and ok is false.
func IndicatorOf(t Term) (Indicator, bool) {
	switch v := t.(type) {
	case Atom:
		return Indicator{Name: v.Name, Arity: 0}, true
	case *Compound:
		return Indicator{Name: v.Functor, Arity: len(v.Args)}, true
	default:
		return Indicator{}, false
	}
}

// Construction helpers mirroring the classic Prolog surface vocabulary.

// NewVar allocates a variable carrying the given source name; id is
// supplied by the caller (normally Engine.freshVar) so that counters stay
// centralized per top-level query.
func NewVar(id int64, name string) *Var { return &Var{id: id, name: name} }

// NewAtom constructs an Atom.
func NewAtom(name string) Atom { return Atom{Name: name} }

// NewCompound constructs a Compound, or an Atom when args is empty — this
// keeps zero-arity functors represented uniformly as Atom throughout the
// engine.
func NewCompound(functor string, args ...Term) Term {
	if len(args) == 0 {
		return Atom{Name: functor}
	}
	return &Compound{Functor: functor, Args: args}
}

// EmptyList is the canonical "[]" atom.
var EmptyList = Atom{Name: "[]"}

// Cons builds a single list cell head.tail ("."/2).
func Cons(head, tail Term) Term {
	return &Compound{Functor: ".", Args: []Term{head, tail}}
}

// List builds a proper list from the given elements, optionally ending in
// tail instead of EmptyList (for [a, b | T] syntax).
func List(tail Term, elems ...Term) Term {
	result := tail
	for i := len(elems) - 1; i >= 0; i-- {
		result = Cons(elems[i], result)
	}
	return result
}

// ProperList builds a nil-terminated list.
func ProperList(elems ...Term) Term {
	return List(EmptyList, elems...)
}

// IsList reports whether t is syntactically "[]" or a "."/2 cons cell.
// It does not require the list to be proper (fully nil-terminated).
func IsList(t Term) bool {
	switch v := t.(type) {
	case Atom:
		return v.Name == "[]"
	case *Compound:
		return v.Functor == "." && len(v.Args) == 2
	}
	return false
}

// SliceFromProperList converts a nil-terminated list term into a Go slice
// of its elements (which may themselves be unbound variables). ok is false
// if t is not a proper list.
func SliceFromProperList(t Term) (elems []Term, ok bool) {
	cur := t
	for {
		switch v := cur.(type) {
		case Atom:
			if v.Name == "[]" {
				return elems, true
			}
			return nil, false
		case *Compound:
			if v.Functor != "." || len(v.Args) != 2 {
				return nil, false
			}
			elems = append(elems, v.Args[0])
			cur = v.Args[1]
		default:
			return nil, false
		}
	}
}

func formatList(c *Compound) string {
	var sb strings.Builder
	sb.WriteByte('[')
	cur := Term(c)
	first := true
	for {
		cc, ok := cur.(*Compound)
		if !ok || cc.Functor != "." || len(cc.Args) != 2 {
			break
		}
		if !first {
			sb.WriteByte(',')
		}
		sb.WriteString(cc.Args[0].String())
		first = false
		cur = cc.Args[1]
	}
	if a, ok := cur.(Atom); !ok || a.Name != "[]" {
		sb.WriteByte('|')
		sb.WriteString(cur.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func quoteAtomIfNeeded(name string) string {
	if name == "" {
		return "''"
	}
	if name == "[]" || name == "!" || name == ";" || name == "," {
		return name
	}
	r := rune(name[0])
	if r >= 'a' && r <= 'z' {
		plain := true
		for _, c := range name {
			if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
				plain = false
				break
			}
		}
		if plain {
			return name
		}
	}
	if isSymbolicAtom(name) {
		return name
	}
	if isNumericText(name) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "\\'") + "'"
}

func isSymbolicAtom(name string) bool {
	const symbolChars = "+-*/\\^<>=~:.?@#&$"
	for _, c := range name {
		if !strings.ContainsRune(symbolChars, c) {
			return false
		}
	}
	return len(name) > 0
}

func isNumericText(s string) bool {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return false
}

// Equal is strict structural equality (==/2 in Prolog): Vars compare by
// identity, Atoms by name, Compounds by functor/arity and recursively by
// argument. It does not consult any environment — use Env.Walk first if
// bindings should be taken into account.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case *Var:
		y, ok := b.(*Var)
		return ok && x.id == y.id
	case Atom:
		y, ok := b.(Atom)
		return ok && x.Name == y.Name
	case *Compound:
		y, ok := b.(*Compound)
		if !ok || x.Functor != y.Functor || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// order class, used by Compare to implement the standard order of terms:
// Var < Number < Atom < Compound.
func orderClass(t Term) int {
	switch v := t.(type) {
	case *Var:
		return 0
	case Atom:
		if isNumericText(v.Name) {
			return 1
		}
		return 2
	case *Compound:
		return 3
	}
	return 4
}

// Compare implements the standard order of terms (spec.md §8, §GLOSSARY):
// variables order by id, numbers numerically, atoms lexicographically, and
// compounds by arity then name then recursively by argument. It returns a
// negative number, zero, or a positive number, as with strings.Compare.
func Compare(a, b Term) int {
	ca, cb := orderClass(a), orderClass(b)
	if ca != cb {
		return ca - cb
	}
	switch ca {
	case 0:
		return int(a.(*Var).id - b.(*Var).id)
	case 1:
		fa, _ := parseNumber(a.(Atom).Name)
		fb, _ := parseNumber(b.(Atom).Name)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	case 2:
		return strings.Compare(a.(Atom).Name, b.(Atom).Name)
	case 3:
		ca, cb := a.(*Compound), b.(*Compound)
		if len(ca.Args) != len(cb.Args) {
			return len(ca.Args) - len(cb.Args)
		}
		if ca.Functor != cb.Functor {
			return strings.Compare(ca.Functor, cb.Functor)
		}
		for i := range ca.Args {
			if c := Compare(ca.Args[i], cb.Args[i]); c != 0 {
				return c
			}
		}
		return 0
	}
	return 0
}

func parseNumber(s string) (float64, bool) {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return 0, false
}

// SortTerms sorts a slice of terms in place by the standard order,
// optionally removing duplicates (as setof/3 and sort/2 require).
func SortTerms(terms []Term, dedup bool) []Term {
	sort.SliceStable(terms, func(i, j int) bool { return Compare(terms[i], terms[j]) < 0 })
	if !dedup {
		return terms
	}
	out := terms[:0]
	for i, t := range terms {
		if i == 0 || Compare(out[len(out)-1], t) != 0 {
			out = append(out, t)
		}
	}
	return out
}

// IsGround reports whether t contains no unbound variables as written
// (this does not walk through an environment — use Env.WalkDeep first on
// a term that may contain bound variables).
func IsGround(t Term) bool {
	switch v := t.(type) {
	case *Var:
		return false
	case *Compound:
		for _, a := range v.Args {
			if !IsGround(a) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// VarsIn collects the distinct variables occurring in t, in first-occurrence
// order.
func VarsIn(t Term) []*Var {
	var out []*Var
	seen := map[int64]bool{}
	var walk func(Term)
	walk = func(t Term) {
		switch v := t.(type) {
		case *Var:
			if !seen[v.id] {
				seen[v.id] = true
				out = append(out, v)
			}
		case *Compound:
			for _, a := range v.Args {
				walk(a)
			}
		}
	}
	walk(t)
	return out
}
