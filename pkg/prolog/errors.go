package prolog

import (
	"fmt"

	"github.com/pkg/errors"
)

// FaultKind enumerates the abstract error kinds of spec.md §7. A fault
// aborts the current top-level query (no recovery via backtracking); only
// silent unification failure drives backtracking.
type FaultKind string

const (
	FaultSyntax        FaultKind = "syntax"
	FaultInstantiation FaultKind = "instantiation_error"
	FaultType          FaultKind = "type_error"
	FaultEvaluation    FaultKind = "evaluation_error"
	FaultExistence     FaultKind = "existence_error"
	FaultIllegalUse    FaultKind = "illegal_use"
	FaultCancelled     FaultKind = "cancelled"
)

// Fault is the engine-visible error value carried by error(kind, payload)
// outcomes. Payload is whatever detail helps a host format a diagnostic
// (e.g. the offending term, predicate indicator, or operator name).
type Fault struct {
	Kind    FaultKind
	Payload interface{}
	cause   error
}

func (f *Fault) Error() string {
	if f.Payload != nil {
		return fmt.Sprintf("%s: %v", f.Kind, f.Payload)
	}
	return string(f.Kind)
}

// Unwrap exposes the wrapped cause (if any) to errors.Is/errors.As, and to
// github.com/pkg/errors' Cause().
func (f *Fault) Unwrap() error { return f.cause }

// newFault constructs a Fault and attaches a stack trace via pkg/errors so
// a host-level formatter (out of scope here, spec.md §6) can render one
// without the engine itself doing any presentation.
func newFault(kind FaultKind, payload interface{}) *Fault {
	cause, ok := payload.(error)
	if !ok {
		cause = fmt.Errorf("%s", kind)
	}
	return &Fault{Kind: kind, Payload: payload, cause: errors.WithStack(cause)}
}

func errInstantiation(payload interface{}) *Fault { return newFault(FaultInstantiation, payload) }
func errType(expected string, got Term) *Fault {
	return newFault(FaultType, fmt.Sprintf("expected %s, got %s", expected, got.String()))
}
func errEvaluation(payload interface{}) *Fault { return newFault(FaultEvaluation, payload) }
func errExistence(payload interface{}) *Fault  { return newFault(FaultExistence, payload) }
func errIllegalUse(payload interface{}) *Fault { return newFault(FaultIllegalUse, payload) }

// ErrCancelled is the distinguished sentinel returned when the engine's
// cancellation poll hook (spec.md §5) aborts a query.
var ErrCancelled = newFault(FaultCancelled, "query cancelled by host")

// ErrDivisionByZero, ErrUninstantiated and ErrArithmeticType name the three
// EvaluationFault / InstantiationFault cases the arithmetic evaluator raises
// explicitly (spec.md §4.6). Each occurrence is a new Fault built via
// errEvaluation / errInstantiation with one of these values as its Payload
// and as its wrapped cause, so callers can errors.Is a returned Fault
// against them.
var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrUninstantiated = errors.New("uninstantiated variable in arithmetic expression")
	ErrArithmeticType = errors.New("non-numeric operand in arithmetic expression")
)
