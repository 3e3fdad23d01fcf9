package prolog

// builtinTable is the built-in catalog of spec.md §4.7, keyed by principal
// functor. It is populated by init() functions across the builtins_*.go
// files so each file can own registration for its own group of
// predicates, mirroring how the teacher splits concerns across many files
// in one package (list_ops.go, pldb.go, control_flow.go, …) rather than
// one monolithic switch.
var builtinTable = map[Indicator]BuiltinFunc{}

func registerBuiltin(name string, arity int, fn BuiltinFunc) {
	builtinTable[Indicator{Name: name, Arity: arity}] = fn
}

// ok1 is shorthand for a deterministic built-in that either succeeds with
// no extra goals and no alternatives, or fails outright.
func ok1(success bool) (bool, []Term, []AltThunk, error) {
	return success, nil, nil, nil
}

func failed() (bool, []Term, []AltThunk, error) {
	return false, nil, nil, nil
}

func fault(f *Fault) (bool, []Term, []AltThunk, error) {
	return false, nil, nil, f
}

// tryCandidates attempts each candidate thunk in order against e.env,
// undoing any partial bindings between failed attempts, until one
// succeeds. It returns the first success's extra goals plus the untried
// remainder (for the caller to wrap in a choicepoint), matching the
// built-in contract of spec.md §4.7: "(success, new_goals,
// alternative_envs)" with alternative_envs represented lazily as thunks
// rather than precomputed environments.
func tryCandidates(e *Engine, thunks []AltThunk) (ok bool, extra []Term, rest []AltThunk) {
	for i, t := range thunks {
		m := e.env.Mark()
		ex, success := t(e.env)
		if success {
			return true, ex, thunks[i+1:]
		}
		e.env.UndoTo(m)
	}
	return false, nil, nil
}
