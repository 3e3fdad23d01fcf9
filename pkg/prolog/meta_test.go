package prolog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetofSortsAndDedupes(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	for _, c := range mustParseClauses(t, `
num(3).
num(1).
num(2).
num(1).
`) {
		db.Assertz(c)
	}
	result := solveQuery(t, db, `setof(N,num(N),Ns).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Equal("[1,2,3]", result.Answers[0]["Ns"].String())
}

func TestSetofFailsOnNoSolutions(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `setof(N,num(N),Ns).`, 0)
	require.Equal(OutcomeFailure, result.Outcome)
}

func TestForallOverEveryCondition(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	for _, c := range mustParseClauses(t, `
even(2).
even(4).
`) {
		db.Assertz(c)
	}
	ok := solveQuery(t, db, `forall(member(X,[2,4]),even(X)).`, 0)
	require.Equal(OutcomeSuccess, ok.Outcome)
	fails := solveQuery(t, db, `forall(member(X,[2,3,4]),even(X)).`, 0)
	require.Equal(OutcomeFailure, fails.Outcome)
}

func TestAggregateAllCountBagSetSum(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	for _, c := range mustParseClauses(t, `
item(1).
item(2).
item(2).
`) {
		db.Assertz(c)
	}
	count := solveQuery(t, db, `aggregate_all(count,item(_),N).`, 0)
	require.Equal("3", count.Answers[0]["N"].String())
	bag := solveQuery(t, db, `aggregate_all(bag(X),item(X),B).`, 0)
	require.Equal("[1,2,2]", bag.Answers[0]["B"].String())
	set := solveQuery(t, db, `aggregate_all(set(X),item(X),S).`, 0)
	require.Equal("[1,2]", set.Answers[0]["S"].String())
	sum := solveQuery(t, db, `aggregate_all(sum(X),item(X),Sum).`, 0)
	require.Equal("5", sum.Answers[0]["Sum"].String())
}

func TestMaplistGeneratesUnboundOutputList(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	for _, c := range mustParseClauses(t, `double(X,Y) :- Y is X*2.`) {
		db.Assertz(c)
	}
	result := solveQuery(t, db, `maplist(double,[1,2,3],Ys).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Equal("[2,4,6]", result.Answers[0]["Ys"].String())
}

func TestIncludeExcludeComplementaryFilter(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	for _, c := range mustParseClauses(t, `positive(X) :- X > 0.`) {
		db.Assertz(c)
	}
	inc := solveQuery(t, db, `include(positive,[-1,2,-3,4],In).`, 0)
	require.Equal("[2,4]", inc.Answers[0]["In"].String())
	exc := solveQuery(t, db, `exclude(positive,[-1,2,-3,4],Ex).`, 0)
	require.Equal("[-1,-3]", exc.Answers[0]["Ex"].String())
}
