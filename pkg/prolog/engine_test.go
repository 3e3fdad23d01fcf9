package prolog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// solveQuery is the test-only convenience a real host's consult+run pair
// would provide: it parses query as one goal sequence and solves it
// against db on a fresh Engine. Tests build db beforehand, either through
// Go calls or through mustParseClauses.
func solveQuery(t *testing.T, db *Database, query string, limit int) *Result {
	t.Helper()
	eng := NewEngine(db, Options{})
	parser, err := NewParser(query, eng.FreshVar)
	require.NoError(t, err)
	goals, err := parser.ReadQuery()
	require.NoError(t, err)
	return eng.Solve(goals, limit)
}

// mustParseClauses parses src's clauses using a scratch engine purely as
// a variable-identity allocator (clause variables are always renamed
// fresh before a clause body ever touches an Env, so which counter they
// were first allocated from does not matter — see rename in clausedb.go).
func mustParseClauses(t *testing.T, src string) []Clause {
	t.Helper()
	scratch := NewEngine(NewDatabase(), Options{})
	parser, err := NewParser(src, scratch.FreshVar)
	require.NoError(t, err)
	var out []Clause
	for {
		c, ok, err := parser.ReadClause()
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

func TestAppendDeterministicConstruction(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `append([1,2],[3,4],Z).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Len(result.Answers, 1)
	require.Equal("[1,2,3,4]", result.Answers[0]["Z"].String())
}

func TestAppendEnumeratesEverySplit(t *testing.T) {
	// spec.md §8 scenario: append/3 with an unbound pair of lists and a
	// ground third argument enumerates every split, in order.
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `append(X,Y,[1,2,3]).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Len(result.Answers, 4)
	require.Equal("[]", result.Answers[0]["X"].String())
	require.Equal("[1,2,3]", result.Answers[0]["Y"].String())
	require.Equal("[1,2,3]", result.Answers[3]["X"].String())
	require.Equal("[]", result.Answers[3]["Y"].String())
}

func TestPermutationSixAnswers(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `permutation([1,2,3],P).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Len(result.Answers, 6)
	require.Equal("[1,2,3]", result.Answers[0]["P"].String())
}

func TestSumListViaFoldRule(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	for _, c := range mustParseClauses(t, `
sum([],0).
sum([H|T],S) :- sum(T,S0), S is H+S0.
`) {
		db.Assertz(c)
	}
	result := solveQuery(t, db, `sum([1,2,3,4,5],S).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Len(result.Answers, 1)
	require.Equal("15", result.Answers[0]["S"].String())
}

func TestCutPrunesAlternatives(t *testing.T) {
	// max/3 with a cut in the first clause must produce exactly one answer
	// even though the second clause would also match.
	require := require.New(t)
	db := NewDatabase()
	for _, c := range mustParseClauses(t, `
max(X,Y,X) :- X >= Y, !.
max(X,Y,Y).
`) {
		db.Assertz(c)
	}
	result := solveQuery(t, db, `max(3,7,M).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Len(result.Answers, 1)
	require.Equal("7", result.Answers[0]["M"].String())
	cut := solveQuery(t, db, `max(5,3,M).`, 0)
	require.Equal(OutcomeSuccess, cut.Outcome)
	require.Len(cut.Answers, 1)
	require.Equal("5", cut.Answers[0]["M"].String())
}

func TestFourQueensTwoAnswers(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	for _, c := range mustParseClauses(t, `
abs_diff(X,Y,D) :- D is X-Y, D >= 0.
abs_diff(X,Y,D) :- D is Y-X, D > 0.
queens(N,Qs) :- numlist(1,N,L), permute(L,Qs), noattack(Qs).
numlist(L,H,[]) :- L > H, !.
numlist(L,H,[L|T]) :- L =< H, L1 is L+1, numlist(L1,H,T).
permute([],[]).
permute(L,[H|T]) :- select(H,L,R), permute(R,T).
noattack([]).
noattack([Q|Qs]) :- noattack(Qs,Q,1), noattack(Qs).
noattack([],_,_).
noattack([Q|Qs],Q0,D) :- Q0 =\= Q, abs_diff(Q0,Q,DD), DD =\= D, D1 is D+1, noattack(Qs,Q0,D1).
`) {
		db.Assertz(c)
	}
	result := solveQuery(t, db, `queens(4,Qs).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Len(result.Answers, 2)
}

func TestFindallCollectsEveryAnswerIncludingEmpty(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	for _, c := range mustParseClauses(t, `
color(red).
color(green).
color(blue).
`) {
		db.Assertz(c)
	}
	result := solveQuery(t, db, `findall(C,color(C),Cs).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Equal("[red,green,blue]", result.Answers[0]["Cs"].String())

	empty := solveQuery(t, db, `findall(C,color2(C),Cs).`, 0)
	require.Equal(OutcomeSuccess, empty.Outcome)
	require.Equal("[]", empty.Answers[0]["Cs"].String())
}

func TestBetweenEnumeratesInclusiveRange(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `between(1,5,X).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Len(result.Answers, 5)
	require.Equal("1", result.Answers[0]["X"].String())
	require.Equal("5", result.Answers[4]["X"].String())
}

func TestNegationAsFailure(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	db.Assertz(NewFact(&Compound{Functor: "likes", Args: []Term{Atom{Name: "ann"}, Atom{Name: "pasta"}}}))
	result := solveQuery(t, db, `\+ likes(ann,pizza).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	result2 := solveQuery(t, db, `\+ likes(ann,pasta).`, 0)
	require.Equal(OutcomeFailure, result2.Outcome)
}

func TestIfThenElse(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	for _, c := range mustParseClauses(t, `
classify(X,R) :- (X > 0 -> R = positive ; X < 0 -> R = negative ; R = zero).
`) {
		db.Assertz(c)
	}
	pos := solveQuery(t, db, `classify(5,R).`, 0)
	require.Equal("positive", pos.Answers[0]["R"].String())
	neg := solveQuery(t, db, `classify(-5,R).`, 0)
	require.Equal("negative", neg.Answers[0]["R"].String())
	zero := solveQuery(t, db, `classify(0,R).`, 0)
	require.Equal("zero", zero.Answers[0]["R"].String())
}

func TestBacktrackingRestoresTrailLength(t *testing.T) {
	// spec.md §8's core invariant: after a query completes (success or
	// failure), every choicepoint's bindings made and later abandoned are
	// fully undone — checked here via TrailLen returning to 0 once a
	// multi-solution query is driven to exhaustion.
	require := require.New(t)
	db := NewDatabase()
	eng := NewEngine(db, Options{})
	parser, err := NewParser(`member(X,[1,2,3]).`, eng.FreshVar)
	require.NoError(err)
	goals, err := parser.ReadQuery()
	require.NoError(err)
	result := eng.Solve(goals, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Len(result.Answers, 3)
	require.Equal(0, eng.env.TrailLen())
}

func TestMaplistAppliesGoalAcrossLists(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	for _, c := range mustParseClauses(t, `succ2(X,Y) :- Y is X+1.`) {
		db.Assertz(c)
	}
	result := solveQuery(t, db, `maplist(succ2,[1,2,3],Ys).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Equal("[2,3,4]", result.Answers[0]["Ys"].String())
}

// ExampleEngine_Solve demonstrates a minimal consult-then-query round
// trip entirely through the Go API.
func ExampleEngine_Solve() {
	db := NewDatabase()
	eng := NewEngine(db, Options{})

	db.Assertz(NewFact(&Compound{Functor: "parent", Args: []Term{Atom{Name: "tom"}, Atom{Name: "bob"}}}))
	db.Assertz(NewFact(&Compound{Functor: "parent", Args: []Term{Atom{Name: "bob"}, Atom{Name: "ann"}}}))
	x, y, z := eng.FreshVar("X"), eng.FreshVar("Y"), eng.FreshVar("Z")
	db.Assertz(NewRule(
		&Compound{Functor: "grandparent", Args: []Term{x, z}},
		&Compound{Functor: "parent", Args: []Term{x, y}},
		&Compound{Functor: "parent", Args: []Term{y, z}},
	))

	who := eng.FreshVar("Who")
	result := eng.Solve([]Term{&Compound{Functor: "grandparent", Args: []Term{Atom{Name: "tom"}, who}}}, 0)
	fmt.Println(result.Answers[0]["Who"].String())
	// Output: ann
}
