package prolog

import "strconv"

// This file implements the recorda/recorded/erase auxiliary database of
// spec.md §4 (supplemented from original_source/, which keeps a second
// key-value store separate from the clause database for non-clausal term
// storage). Unlike the clause database, records are keyed by an arbitrary
// term's printed form rather than a predicate indicator, and each entry
// carries a reference atom that erase/1 uses to remove it directly.
func init() {
	registerBuiltin("recorda", 3, biRecorda)
	registerBuiltin("recordz", 3, biRecordz)
	registerBuiltin("recorded", 3, biRecorded)
	registerBuiltin("erase", 1, biErase)
}

// recordEntry is one stored (ref, value) pair under a record key.
type recordEntry struct {
	ref   string
	value Term
}

func recordKey(t Term) string { return t.String() }

func (e *Engine) newRef() Atom {
	e.recCounter++
	return Atom{Name: "$ref" + strconv.FormatInt(e.recCounter, 10)}
}

func (e *Engine) ensureRecords() {
	if e.records == nil {
		e.records = make(map[string][]recordEntry)
	}
}

// biRecorda implements recorda/3: store Value under Key at the front of
// that key's entries, unifying Ref with a fresh reference atom.
func biRecorda(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	e.ensureRecords()
	key := recordKey(e.env.WalkDeep(args[0]))
	ref := e.newRef()
	entry := recordEntry{ref: ref.Name, value: e.env.WalkDeep(args[1])}
	e.records[key] = append([]recordEntry{entry}, e.records[key]...)
	return ok1(Unify(args[2], ref, e.env))
}

// biRecordz implements recordz/3: as recorda/3, appended at the end.
func biRecordz(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	e.ensureRecords()
	key := recordKey(e.env.WalkDeep(args[0]))
	ref := e.newRef()
	entry := recordEntry{ref: ref.Name, value: e.env.WalkDeep(args[1])}
	e.records[key] = append(e.records[key], entry)
	return ok1(Unify(args[2], ref, e.env))
}

// biRecorded implements recorded/3: enumerate every entry stored under
// Key, unifying Value and Ref with each in turn.
func biRecorded(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	e.ensureRecords()
	key := recordKey(e.env.WalkDeep(args[0]))
	entries := e.records[key]
	thunks := make([]AltThunk, len(entries))
	for i, ent := range entries {
		ent := ent
		thunks[i] = func(env *Env) ([]Term, bool) {
			return nil, Unify(args[1], ent.value, env) && Unify(args[2], Atom{Name: ent.ref}, env)
		}
	}
	ok2, extra, rest := tryCandidates(e, thunks)
	return ok2, extra, rest, nil
}

// biErase implements erase/1: remove the entry whose reference atom
// matches Ref, scanning every key (references are unique across keys).
func biErase(e *Engine, args []Term) (bool, []Term, []AltThunk, error) {
	e.ensureRecords()
	refAtom, ok := e.env.Walk(args[0]).(Atom)
	if !ok {
		return fault(errInstantiation("erase/1"))
	}
	for key, entries := range e.records {
		for i, ent := range entries {
			if ent.ref == refAtom.Name {
				e.records[key] = append(entries[:i:i], entries[i+1:]...)
				return ok1(true)
			}
		}
	}
	return failed()
}
