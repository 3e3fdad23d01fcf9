package prolog

// Clause is an ordered pair (Head, Body): Body is nil/empty for a fact.
// Both Head and Body reference the same set of Vars as written in source
// (or as constructed by a host); rename produces a fresh copy for
// each use so that different uses of the same clause in a proof never
// share variable identity (spec.md §4.5, "Variable renaming").
type Clause struct {
	Head Term
	Body []Term
}

// NewFact builds a Clause with an empty body.
func NewFact(head Term) Clause { return Clause{Head: head} }

// NewRule builds a Clause from a head and a body goal sequence.
func NewRule(head Term, body ...Term) Clause { return Clause{Head: head, Body: body} }

// Database is the clause store (spec.md §4.4): an ordered sequence of
// clauses, indexed by principal functor/arity for candidate lookup. Clause
// order is source order and is observable: it determines the order
// candidates() returns them in, and hence which solution is found first.
//
// This generalizes the teacher's pldb.go Database (a persistent,
// copy-on-write map of ground ./n Facts keyed by Relation) to full
// (possibly non-ground) Horn clauses: pldb's Relation/Fact/indexed lookup
// becomes Indicator/Clause/predicates, and AddFact's copy-on-write becomes
// plain ordered-slice mutation since spec.md's Database has no concurrent
// readers to isolate from (§5: single-threaded per query).
type Database struct {
	order []Indicator
	preds map[Indicator][]Clause
}

// NewDatabase creates an empty clause database.
func NewDatabase() *Database {
	return &Database{preds: make(map[Indicator][]Clause)}
}

// Assertz appends a clause to the end of its predicate's clause list
// (source-order loading).
func (db *Database) Assertz(c Clause) {
	pi, ok := IndicatorOf(c.Head)
	if !ok {
		return
	}
	if _, exists := db.preds[pi]; !exists {
		db.order = append(db.order, pi)
	}
	db.preds[pi] = append(db.preds[pi], c)
}

// Asserta prepends a clause to its predicate's clause list — spec.md §4.4 /
// §4.7's asserta/1 built-in. Visible to subsequent goals in the same query
// (spec.md §5's "Shared resources").
func (db *Database) Asserta(c Clause) {
	pi, ok := IndicatorOf(c.Head)
	if !ok {
		return
	}
	if _, exists := db.preds[pi]; !exists {
		db.order = append(db.order, pi)
	}
	db.preds[pi] = append([]Clause{c}, db.preds[pi]...)
}

// Candidates returns the ordered sequence of clauses whose head matches
// the given principal functor. The returned slice is owned by the
// database; callers must not mutate it (the resolution engine only reads
// it when building a choicepoint alternative list).
func (db *Database) Candidates(pi Indicator) []Clause {
	return db.preds[pi]
}

// HasPredicate reports whether any clause is defined for pi, so a host can
// tell "no matching clause" apart from "predicate entirely undefined". The
// engine does not call it: a call to an undefined predicate fails just
// like a call that no clause matches.
func (db *Database) HasPredicate(pi Indicator) bool {
	_, ok := db.preds[pi]
	return ok
}

// RetractMatching removes the first clause of pi for which match returns
// true, preserving the relative order of the remaining clauses (spec.md
// §4 supplement's retract/1). Reports whether a clause was removed.
func (db *Database) RetractMatching(pi Indicator, match func(Clause) bool) bool {
	clauses := db.preds[pi]
	for i, c := range clauses {
		if match(c) {
			db.preds[pi] = append(clauses[:i:i], clauses[i+1:]...)
			return true
		}
	}
	return false
}

// Indicators returns the predicate indicators in the order their first
// clause was loaded — used by listing-style host tooling.
func (db *Database) Indicators() []Indicator {
	out := make([]Indicator, len(db.order))
	copy(out, db.order)
	return out
}

// rename produces a structurally identical clause whose variables all
// carry fresh identities drawn from next (spec.md §4.4/§4.5). next is
// called once per distinct variable encountered, in first-occurrence
// order, so that repeated variables in a clause (e.g. append(X,Y,Y) would
// not type-check but sum(N,N,X) does occur in practice) stay shared in the
// renamed copy.
func rename(c Clause, next func(name string) *Var) Clause {
	mapping := map[int64]*Var{}
	var walk func(Term) Term
	walk = func(t Term) Term {
		switch v := t.(type) {
		case *Var:
			if nv, ok := mapping[v.id]; ok {
				return nv
			}
			nv := next(v.name)
			mapping[v.id] = nv
			return nv
		case *Compound:
			args := make([]Term, len(v.Args))
			for i, a := range v.Args {
				args[i] = walk(a)
			}
			return &Compound{Functor: v.Functor, Args: args}
		default:
			return t
		}
	}
	head := walk(c.Head)
	body := make([]Term, len(c.Body))
	for i, g := range c.Body {
		body[i] = walk(g)
	}
	return Clause{Head: head, Body: body}
}
