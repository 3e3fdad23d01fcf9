package prolog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestParser(t *testing.T, src string) *Parser {
	t.Helper()
	scratch := NewEngine(NewDatabase(), Options{})
	p, err := NewParser(src, scratch.FreshVar)
	require.NoError(t, err)
	return p
}

func TestParseFactWithoutBody(t *testing.T) {
	require := require.New(t)
	p := newTestParser(t, `likes(ann,pasta).`)
	c, ok, err := p.ReadClause()
	require.NoError(err)
	require.True(ok)
	require.Equal("likes(ann,pasta)", c.Head.String())
	require.Nil(c.Body)
}

func TestParseRuleSplitsHeadAndBody(t *testing.T) {
	require := require.New(t)
	p := newTestParser(t, `grandparent(X,Z) :- parent(X,Y), parent(Y,Z).`)
	c, ok, err := p.ReadClause()
	require.NoError(err)
	require.True(ok)
	require.Equal("grandparent(X,Z)", c.Head.String())
	require.Len(c.Body, 2)
	require.Equal("parent(X,Y)", c.Body[0].String())
	require.Equal("parent(Y,Z)", c.Body[1].String())
}

func TestParseArithmeticOperatorPrecedence(t *testing.T) {
	require := require.New(t)
	p := newTestParser(t, `X is 1+2*3.`)
	goals, err := p.ReadQuery()
	require.NoError(err)
	require.Len(goals, 1)
	is := goals[0].(*Compound)
	require.Equal("is", is.Functor)
	rhs := is.Args[1].(*Compound)
	require.Equal("+", rhs.Functor)
	require.Equal("1", rhs.Args[0].String())
	mul := rhs.Args[1].(*Compound)
	require.Equal("*", mul.Functor)
}

func TestParseListWithTail(t *testing.T) {
	require := require.New(t)
	p := newTestParser(t, `[1,2|T].`)
	c, _, err := p.ReadClause()
	require.NoError(err)
	require.Equal("[1,2|T]", c.Head.String())
}

func TestParseNegativeNumberFoldsIntoLiteral(t *testing.T) {
	require := require.New(t)
	p := newTestParser(t, `X is -5.`)
	goals, err := p.ReadQuery()
	require.NoError(err)
	is := goals[0].(*Compound)
	require.Equal("-5", is.Args[1].String())
}

func TestParseDirectiveShape(t *testing.T) {
	require := require.New(t)
	p := newTestParser(t, `:- initialization(main).`)
	c, ok, err := p.ReadClause()
	require.NoError(err)
	require.True(ok)
	comp, isCompound := c.Head.(*Compound)
	require.True(isCompound)
	require.Equal("$directive", comp.Functor)
	require.Equal("initialization(main)", comp.Args[0].String())
}

func TestParseConjunctionAndDisjunctionPrecedence(t *testing.T) {
	require := require.New(t)
	p := newTestParser(t, `(a , b ; c).`)
	goals, err := p.ReadQuery()
	require.NoError(err)
	disj := goals[0].(*Compound)
	require.Equal(";", disj.Functor)
	conj := disj.Args[0].(*Compound)
	require.Equal(",", conj.Functor)
	require.Equal("c", disj.Args[1].String())
}

func TestParseQuotedAtomWithSpaces(t *testing.T) {
	require := require.New(t)
	p := newTestParser(t, `'hello world'(X).`)
	c, _, err := p.ReadClause()
	require.NoError(err)
	comp := c.Head.(*Compound)
	require.Equal("hello world", comp.Functor)
}

func TestParseStringAsCodeList(t *testing.T) {
	require := require.New(t)
	p := newTestParser(t, `X = "ab".`)
	goals, err := p.ReadQuery()
	require.NoError(err)
	eq := goals[0].(*Compound)
	require.Equal("[97,98]", eq.Args[1].String())
}

func TestParseSharedVariableWithinClauseSameIdentity(t *testing.T) {
	require := require.New(t)
	p := newTestParser(t, `p(X,X).`)
	c, _, err := p.ReadClause()
	require.NoError(err)
	comp := c.Head.(*Compound)
	v0, ok0 := comp.Args[0].(*Var)
	v1, ok1 := comp.Args[1].(*Var)
	require.True(ok0)
	require.True(ok1)
	require.Equal(v0.ID(), v1.ID())
}
