package prolog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLengthGeneratesFreshVars(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `length(L,3).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Equal("[_G2,_G3,_G4]", result.Answers[0]["L"].String())
}

func TestReverseBidirectional(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `reverse([1,2,3],R).`, 0)
	require.Equal("[3,2,1]", result.Answers[0]["R"].String())
}

func TestSortRemovesDuplicates(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `sort([3,1,2,1,3],S).`, 0)
	require.Equal("[1,2,3]", result.Answers[0]["S"].String())
}

func TestMsortKeepsDuplicates(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `msort([3,1,2,1],S).`, 0)
	require.Equal("[1,1,2,3]", result.Answers[0]["S"].String())
}

func TestSubtractPreservesLeftOrder(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `subtract([1,2,3,4],[2,4],S).`, 0)
	require.Equal("[1,3]", result.Answers[0]["S"].String())
}

func TestSelectEnumeratesRemovals(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `select(X,[a,b,c],R).`, 0)
	require.Len(result.Answers, 3)
	require.Equal("a", result.Answers[0]["X"].String())
	require.Equal("[b,c]", result.Answers[0]["R"].String())
}

func TestOrdSubsetInOrder(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	ok := solveQuery(t, db, `ord_subset([1,3],[1,2,3,4]).`, 0)
	require.Equal(OutcomeSuccess, ok.Outcome)
	fails := solveQuery(t, db, `ord_subset([3,1],[1,2,3,4]).`, 0)
	require.Equal(OutcomeFailure, fails.Outcome)
}

func TestOrdSubsetUnboundGeneratesEmpty(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `ord_subset(Sub,[1,2,3]).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Equal("[]", result.Answers[0]["Sub"].String())
}

func TestNth0AndNth1(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	r0 := solveQuery(t, db, `nth0(1,[a,b,c],X).`, 0)
	require.Equal("b", r0.Answers[0]["X"].String())
	r1 := solveQuery(t, db, `nth1(1,[a,b,c],X).`, 0)
	require.Equal("a", r1.Answers[0]["X"].String())
}

func TestSumMaxMinList(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	sum := solveQuery(t, db, `sum_list([1,2,3,4],S).`, 0)
	require.Equal("10", sum.Answers[0]["S"].String())
	mx := solveQuery(t, db, `max_list([3,7,2],M).`, 0)
	require.Equal("7", mx.Answers[0]["M"].String())
	mn := solveQuery(t, db, `min_list([3,7,2],M).`, 0)
	require.Equal("2", mn.Answers[0]["M"].String())
}
