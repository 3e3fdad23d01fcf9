package prolog

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// AltThunk is one alternative of a multi-solution built-in: given the
// current (already rolled-back) Env, attempt to establish this solution's
// bindings and report any extra goals the engine should run afterward
// (spec.md §4.7: "(success, new_goals, alternative_envs)").
type AltThunk func(env *Env) (extraGoals []Term, ok bool)

// BuiltinFunc implements one non-recursive or meta built-in. It runs the
// *first* alternative itself (mutating env directly, as Unify does) and
// returns any remaining alternatives for the engine to wrap in a
// choicepoint. A returned error aborts the whole query (spec.md §7); a
// plain `ok == false` with err == nil is silent failure that backtracks.
type BuiltinFunc func(e *Engine, args []Term) (ok bool, extraGoals []Term, alternatives []AltThunk, err error)

// Options configures an Engine. The zero Options is valid: logging is
// disabled, cancellation is never polled, and deferred arithmetic
// constraints retry up to the spec's documented default of 3.
type Options struct {
	Logger             hclog.Logger
	PollHook           func() bool
	DeferredRetryBound int
	Out                io.Writer
}

// Engine is the resolution engine (spec.md §4.5): single-threaded,
// cooperative, depth-first. Each Solve call is one top-level query run on
// a fresh Env; an Engine may run several in turn (cmd/goprolog runs a
// file's directives and then the query on one Engine), and its clause
// Database and record store persist between them. The Database may be
// mutated by asserta/1 during a query and the mutation is visible to
// subsequent goals in the same query, per spec.md §5.
//
// This replaces the teacher's goroutine-per-goal channel Stream
// (pkg/minikanren's core.go/primitives.go Conj/Disj) with the iterative
// explicit-stack design spec.md's Design Notes mandate: recursion here is
// reserved for genuine sub-queries (meta-predicates, negation), never for
// the top-level proof search itself.
type Engine struct {
	db         *Database
	env        *Env
	opts       Options
	logger     hclog.Logger
	varCounter int64
	records    map[string][]recordEntry
	recCounter int64
}

// NewEngine creates an Engine over db with the given options.
func NewEngine(db *Database, opts Options) *Engine {
	if opts.DeferredRetryBound <= 0 {
		opts.DeferredRetryBound = 3
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Engine{db: db, opts: opts, logger: logger}
}

// Database returns the clause database the engine resolves against.
func (e *Engine) Database() *Database { return e.db }

func (e *Engine) freshVar(name string) *Var {
	id := atomic.AddInt64(&e.varCounter, 1)
	return NewVar(id, name)
}

// FreshVar allocates a variable carrying a fresh, engine-unique identity.
// It is exported so a reader (pkg/prolog's own Parser, or a host's) can
// draw clause/query variables from the same identity space the engine
// itself uses for renaming and for built-ins that synthesize variables
// (length/2, maplist/N, …) — the two counters must never diverge, or two
// unrelated variables could collide on one id.
func (e *Engine) FreshVar(name string) *Var { return e.freshVar(name) }

// Outcome is the terminal result of a query (spec.md §6).
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
	OutcomeError
)

// Result is what Solve returns: a terminal outcome plus whatever answers
// were accumulated before it (spec.md §6's "stream of answer substitutions
// ... A terminal outcome").
type Result struct {
	Outcome   Outcome
	Answers   []Answer
	Err       error
	SessionID string
}

// Solve runs goals (flattened and conjoined) to exhaustion or until limit
// answers have been found (limit <= 0 means unbounded: enumerate every
// answer). It is the sole entry point into the resolution engine; the
// Parser in reader.go (or a host's own code) is responsible for turning
// program text into the Terms passed here. Once the search ends, every
// binding made during it is undone, leaving the trail empty; the returned
// answers are already fully substituted copies.
func (e *Engine) Solve(goals []Term, limit int) *Result {
	sessionID := uuid.NewString()
	e.env = NewEnv()

	var flat []Term
	for _, g := range goals {
		flat = append(flat, flattenConjunction(g)...)
	}
	queryVars := collectVars(flat)

	cont := wrapGoals(flat, 0, nil)
	var stack []*choicepoint
	var answers []Answer

	e.logger.Trace("solve.start", "session", sessionID, "goals", len(flat))

	for {
		if e.opts.PollHook != nil && e.opts.PollHook() {
			e.logger.Debug("solve.cancelled", "session", sessionID)
			return &Result{Outcome: OutcomeError, Err: ErrCancelled, Answers: answers, SessionID: sessionID}
		}

		if cont == nil {
			answers = append(answers, e.env.Project(queryVars))
			e.logger.Trace("solve.answer", "session", sessionID, "n", len(answers))
			if limit > 0 && len(answers) >= limit {
				break
			}
			if !e.backtrack(&stack, &cont) {
				break
			}
			continue
		}

		frame := cont.frame
		rest := cont.next
		goal := e.env.Walk(frame.goal)

		fault, handled := e.dispatch(goal, frame, rest, &stack, &cont)
		if fault != nil {
			e.logger.Debug("solve.fault", "session", sessionID, "kind", fault.Kind)
			return &Result{Outcome: OutcomeError, Err: fault, Answers: answers, SessionID: sessionID}
		}
		if !handled {
			if !e.backtrack(&stack, &cont) {
				break
			}
		}
	}
	e.env.UndoTo(0)

	outcome := OutcomeFailure
	if len(answers) > 0 {
		outcome = OutcomeSuccess
	}
	e.logger.Trace("solve.done", "session", sessionID, "outcome", outcome, "answers", len(answers))
	return &Result{Outcome: outcome, Answers: answers, SessionID: sessionID}
}

// dispatch executes one goal frame, updating stack/cont in place. It
// returns a non-nil fault if the goal raised a hard error (spec.md §7),
// and handled == false if the goal failed outright and the caller should
// backtrack. cont is only ever reassigned when handled == true (or a
// fault occurred, in which case cont is irrelevant).
func (e *Engine) dispatch(goal Term, frame goalFrame, rest *goalList, stack *[]*choicepoint, cont **goalList) (*Fault, bool) {
	switch g := goal.(type) {
	case *Var:
		return errInstantiation(ErrUninstantiated), false

	case commitMarker:
		if g.depth < len(*stack) {
			*stack = (*stack)[:g.depth]
		}
		*cont = rest
		return nil, true

	case deferredGoal:
		return e.dispatchCompare(g.goal, frame, rest, g.remaining, cont)

	case Atom:
		switch g.Name {
		case "true":
			*cont = rest
			return nil, true
		case "fail", "false":
			return nil, false
		case "!":
			if frame.cutBarrier < len(*stack) {
				*stack = (*stack)[:frame.cutBarrier]
			}
			*cont = rest
			return nil, true
		default:
			return e.dispatchCall(g, nil, frame, rest, stack, cont)
		}

	case *Compound:
		switch {
		case g.Functor == "," && len(g.Args) == 2:
			*cont = wrapGoals(flattenConjunction(g), frame.cutBarrier, rest)
			return nil, true
		case g.Functor == ";" && len(g.Args) == 2:
			return e.dispatchDisjunction(g, frame, rest, stack, cont)
		case g.Functor == "->" && len(g.Args) == 2:
			return e.dispatchIfThenElse(g.Args[0], g.Args[1], Atom{Name: "fail"}, frame, rest, stack, cont)
		case (g.Functor == "\\+" || g.Functor == "not") && len(g.Args) == 1:
			return e.dispatchNegation(g.Args[0], rest, cont)
		case (g.Functor == "is" || g.Functor == ":=") && len(g.Args) == 2:
			return e.dispatchIs(g, rest, cont)
		case isCompareOp(g.Functor) && len(g.Args) == 2:
			return e.dispatchCompare(g, frame, rest, e.opts.DeferredRetryBound, cont)
		default:
			return e.dispatchCall(g, g.Args, frame, rest, stack, cont)
		}
	default:
		return errType("callable", goal), false
	}
}

// dispatchDisjunction handles both plain (A ; B) and if-then-else
// (Cond -> Then ; Else), per spec.md §4.5.
func (e *Engine) dispatchDisjunction(g *Compound, frame goalFrame, rest *goalList, stack *[]*choicepoint, cont **goalList) (*Fault, bool) {
	left := g.Args[0]
	right := g.Args[1]
	if lc, ok := left.(*Compound); ok && lc.Functor == "->" && len(lc.Args) == 2 {
		return e.dispatchIfThenElse(lc.Args[0], lc.Args[1], right, frame, rest, stack, cont)
	}
	mark := e.env.Mark()
	*stack = append(*stack, &choicepoint{
		mark: mark, depth: len(*stack),
		alt: &disjAlt{branch: right, cont: rest, barrier: frame.cutBarrier},
	})
	*cont = wrapGoals([]Term{left}, frame.cutBarrier, rest)
	return nil, true
}

// dispatchIfThenElse implements spec.md §4.5's if-then-else: cond runs
// under a fresh cut barrier; on its first success, a commitMarker cuts
// back to entryDepth (discarding both cond's own choicepoints and the
// else alternative) before then runs under the outer barrier. If cond is
// exhausted without succeeding, backtracking naturally reaches the
// elseOnceAlt choicepoint instead.
func (e *Engine) dispatchIfThenElse(cond, then, els Term, frame goalFrame, rest *goalList, stack *[]*choicepoint, cont **goalList) (*Fault, bool) {
	entryDepth := len(*stack)
	mark := e.env.Mark()
	*stack = append(*stack, &choicepoint{
		mark: mark, depth: entryDepth,
		alt: &elseOnceAlt{elseGoal: els, cont: rest, barrier: frame.cutBarrier},
	})
	condBarrier := len(*stack)
	commit := goalFrame{goal: commitMarker{depth: entryDepth}, cutBarrier: frame.cutBarrier}
	thenCont := &goalList{frame: goalFrame{goal: then, cutBarrier: frame.cutBarrier}, next: rest}
	*cont = wrapGoals([]Term{cond}, condBarrier, &goalList{frame: commit, next: thenCont})
	return nil, true
}

// dispatchNegation implements \+/not (spec.md §4.5): solve goal once as a
// sub-query with no bindings retained either way.
func (e *Engine) dispatchNegation(goal Term, rest *goalList, cont **goalList) (*Fault, bool) {
	mark := e.env.Mark()
	ok, fault := e.hasSolution(goal)
	e.env.UndoTo(mark)
	if fault != nil {
		return fault, false
	}
	if ok {
		return nil, false
	}
	*cont = rest
	return nil, true
}

// dispatchCall resolves a control-free goal: first against the built-in
// catalog (builtins_*.go), then the meta-predicate catalog (meta.go,
// registered into the same table), then the user clause database.
func (e *Engine) dispatchCall(goalTerm Term, args []Term, frame goalFrame, rest *goalList, stack *[]*choicepoint, cont **goalList) (*Fault, bool) {
	pi, ok := IndicatorOf(goalTerm)
	if !ok {
		return errType("callable", goalTerm), false
	}

	if fn, isBuiltin := builtinTable[pi]; isBuiltin {
		mark := e.env.Mark()
		ok, extra, alts, err := fn(e, args)
		if err != nil {
			if f, isFault := err.(*Fault); isFault {
				return f, false
			}
			return newFault(FaultEvaluation, err.Error()), false
		}
		if !ok {
			e.env.UndoTo(mark)
			return nil, false
		}
		if len(alts) > 0 {
			*stack = append(*stack, &choicepoint{
				mark: mark, depth: len(*stack),
				alt: &builtinAlt{thunks: alts, cont: rest, barrier: frame.cutBarrier},
			})
		}
		*cont = wrapGoals(extra, frame.cutBarrier, rest)
		return nil, true
	}

	entryDepth := len(*stack)
	candidates := e.db.Candidates(pi)
	if len(candidates) == 0 {
		return nil, false
	}
	alt := &clauseAlt{
		clauses:  append([]Clause(nil), candidates...),
		callTerm: goalTerm,
		cont:     rest,
		barrier:  entryDepth,
	}
	mark := e.env.Mark()
	newCont, ok2, hasMore := alt.next(e)
	if !ok2 {
		e.env.UndoTo(mark)
		return nil, false
	}
	if hasMore {
		*stack = append(*stack, &choicepoint{mark: mark, depth: entryDepth, alt: alt})
	}
	*cont = newCont
	return nil, true
}

// backtrack pops choicepoints until one yields an alternative, rolling the
// environment back to each one's mark as it goes (spec.md §4.5's
// "Backtrack"). Returns false once the stack is exhausted.
func (e *Engine) backtrack(stack *[]*choicepoint, cont **goalList) bool {
	for len(*stack) > 0 {
		cp := (*stack)[len(*stack)-1]
		e.env.UndoTo(cp.mark)
		newCont, ok, hasMore := cp.alt.next(e)
		if hasMore {
			// cp.alt mutated itself in place; keep it on the stack.
		} else {
			*stack = (*stack)[:len(*stack)-1]
		}
		if ok {
			*cont = newCont
			return true
		}
	}
	return false
}

// hasSolution runs goal as a genuinely reentrant nested search (its own
// stack, its own barrier scope) sharing the outer Env, and reports whether
// it has at least one solution. Used by \+/not and as the commit check
// inside findall's collection loop is NOT needed (findall enumerates all
// solutions itself, see meta.go) — this is specifically the "solve once"
// primitive spec.md §4.5 describes for negation.
func (e *Engine) hasSolution(goal Term) (bool, *Fault) {
	cont := wrapGoals([]Term{goal}, 0, nil)
	var stack []*choicepoint
	for {
		if cont == nil {
			return true, nil
		}
		frame := cont.frame
		rest := cont.next
		walked := e.env.Walk(frame.goal)
		fault, handled := e.dispatch(walked, frame, rest, &stack, &cont)
		if fault != nil {
			return false, fault
		}
		if !handled {
			if !e.backtrack(&stack, &cont) {
				return false, nil
			}
		}
	}
}

func collectVars(goals []Term) []*Var {
	var out []*Var
	seen := map[int64]bool{}
	for _, g := range goals {
		for _, v := range VarsIn(g) {
			if !seen[v.id] {
				seen[v.id] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// commitMarker is an internal control term injected by dispatchIfThenElse;
// it is never produced by a parser or built-in.
type commitMarker struct{ depth int }

func (commitMarker) isTerm()        {}
func (c commitMarker) String() string { return fmt.Sprintf("$commit(%d)", c.depth) }
