package prolog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFunctorDecomposesCompound(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `functor(foo(a,b,c),Name,Arity).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Equal("foo", result.Answers[0]["Name"].String())
	require.Equal("3", result.Answers[0]["Arity"].String())
}

func TestFunctorDecomposesAtomic(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `functor(foo,Name,Arity).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Equal("foo", result.Answers[0]["Name"].String())
	require.Equal("0", result.Answers[0]["Arity"].String())
}

func TestFunctorConstructsCompound(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `functor(T,foo,3).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Equal("foo(_G2,_G3,_G4)", result.Answers[0]["T"].String())
}

func TestFunctorConstructsAtomWhenArityZero(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `functor(T,foo,0).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Equal("foo", result.Answers[0]["T"].String())
}

func TestArgExtractsNthArgument(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `arg(2,foo(a,b,c),X).`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Equal("b", result.Answers[0]["X"].String())
}

func TestArgOutOfRangeFails(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `arg(5,foo(a,b,c),X).`, 0)
	require.Equal(OutcomeFailure, result.Outcome)
}

func TestUnivDecomposesCompound(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `foo(a,b) =.. L.`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Equal("[foo,a,b]", result.Answers[0]["L"].String())
}

func TestUnivDecomposesAtom(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `foo =.. L.`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Equal("[foo]", result.Answers[0]["L"].String())
}

func TestUnivConstructsCompound(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `T =.. [foo,a,b].`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Equal("foo(a,b)", result.Answers[0]["T"].String())
}

func TestUnivConstructsAtomFromSingleton(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	result := solveQuery(t, db, `T =.. [foo].`, 0)
	require.Equal(OutcomeSuccess, result.Outcome)
	require.Equal("foo", result.Answers[0]["T"].String())
}

func TestCompareReportsOrder(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	lt := solveQuery(t, db, `compare(Order,1,2).`, 0)
	require.Equal("<", lt.Answers[0]["Order"].String())
	eq := solveQuery(t, db, `compare(Order,foo,foo).`, 0)
	require.Equal("=", eq.Answers[0]["Order"].String())
	gt := solveQuery(t, db, `compare(Order,2,1).`, 0)
	require.Equal(">", gt.Answers[0]["Order"].String())
}

func TestStandardOrderOperators(t *testing.T) {
	require := require.New(t)
	db := NewDatabase()
	require.Equal(OutcomeSuccess, solveQuery(t, db, `1 @< 2.`, 0).Outcome)
	require.Equal(OutcomeSuccess, solveQuery(t, db, `2 @> 1.`, 0).Outcome)
	require.Equal(OutcomeSuccess, solveQuery(t, db, `1 @=< 1.`, 0).Outcome)
	require.Equal(OutcomeSuccess, solveQuery(t, db, `1 @>= 1.`, 0).Outcome)
	require.Equal(OutcomeFailure, solveQuery(t, db, `2 @< 1.`, 0).Outcome)
}
