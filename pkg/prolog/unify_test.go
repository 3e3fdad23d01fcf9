package prolog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnifyAtoms(t *testing.T) {
	require := require.New(t)
	env := NewEnv()
	require.True(Unify(Atom{Name: "a"}, Atom{Name: "a"}, env))
	require.False(Unify(Atom{Name: "a"}, Atom{Name: "b"}, env))
}

func TestUnifyVarBindsAndUndoes(t *testing.T) {
	require := require.New(t)
	env := NewEnv()
	v := NewVar(1, "X")
	mark := env.Mark()
	require.True(Unify(v, Atom{Name: "foo"}, env))
	require.Equal(Atom{Name: "foo"}, env.Walk(v))
	env.UndoTo(mark)
	require.Equal(v, env.Walk(v))
	require.Equal(0, env.TrailLen())
}

func TestUnifyCompoundRecursive(t *testing.T) {
	require := require.New(t)
	env := NewEnv()
	x := NewVar(1, "X")
	y := NewVar(2, "Y")
	left := &Compound{Functor: "f", Args: []Term{x, Atom{Name: "b"}}}
	right := &Compound{Functor: "f", Args: []Term{Atom{Name: "a"}, y}}
	require.True(Unify(left, right, env))
	require.Equal(Atom{Name: "a"}, env.Walk(x))
	require.Equal(Atom{Name: "b"}, env.Walk(y))
}

func TestUnifyArityMismatchFails(t *testing.T) {
	require := require.New(t)
	env := NewEnv()
	a := &Compound{Functor: "f", Args: []Term{Atom{Name: "a"}}}
	b := &Compound{Functor: "f", Args: []Term{Atom{Name: "a"}, Atom{Name: "b"}}}
	require.False(Unify(a, b, env))
}

func TestUnifyPartialBindingsVisibleBeforeRollback(t *testing.T) {
	// spec.md's unification "Failure guarantee": on failure, env may retain
	// partial bindings made before the failing sub-unification; the caller
	// owns rollback via Mark/UndoTo, matching how the engine itself always
	// wraps clause-head unification in a mark/undo pair (choicepoint.go).
	require := require.New(t)
	env := NewEnv()
	x := NewVar(1, "X")
	left := &Compound{Functor: "f", Args: []Term{x, Atom{Name: "b"}}}
	right := &Compound{Functor: "f", Args: []Term{Atom{Name: "a"}, Atom{Name: "c"}}}
	mark := env.Mark()
	require.False(Unify(left, right, env))
	require.Equal(Atom{Name: "a"}, env.Walk(x))
	env.UndoTo(mark)
	require.Equal(x, env.Walk(x))
}

func TestUnifySharedVariableSelfConflict(t *testing.T) {
	// t2's second argument aliases t1's first, so unifying requires X=1 and
	// X=2 simultaneously.
	require := require.New(t)
	env := NewEnv()
	x := NewVar(1, "X")
	t1 := &Compound{Functor: "pair", Args: []Term{x, Atom{Name: "2"}}}
	t2 := &Compound{Functor: "pair", Args: []Term{Atom{Name: "1"}, x}}
	require.False(Unify(t1, t2, env))
}
