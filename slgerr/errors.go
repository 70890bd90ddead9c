// Package slgerr holds the two kinds of failure the solver core can produce.
//
// A recoverable failure is an ordinary error wrapping ErrNoSolution: the
// caller tries its next candidate clause or strand.
// A fatal failure is an *InvariantViolation, raised with Invariant as a panic.
// It means some precondition established elsewhere in the session is broken,
// and the session must be aborted rather than keep producing answers.
package slgerr

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/pkg/errors"
)

// enableDebugErrorPrinting makes violations include the frame that raised them when printed
const enableDebugErrorPrinting bool = true
const enableDebugFullStacktrace bool = false

// ErrNoSolution is returned when two terms cannot be unified or a clause
// head cannot match a goal.
var ErrNoSolution = errors.New("no solution")

// NoSolution wraps ErrNoSolution with a message describing what failed to unify
func NoSolution(format string, args ...any) error {
	return errors.Wrapf(ErrNoSolution, format, args...)
}

// IsNoSolution reports whether err is a recoverable solving failure
func IsNoSolution(err error) bool {
	return errors.Is(err, ErrNoSolution)
}

type ErrCode int

const (
	None ErrCode = iota
	KindMismatch
	FreeInferenceVar
	SubstLengthMismatch
	TableOutOfRange
	UnboundVariable
	CanonicalMismatch
	EmptyExClause
	FlounderedTable
)

func (c ErrCode) String() string {
	switch c {
	case KindMismatch:
		return "kind mismatch"
	case FreeInferenceVar:
		return "free inference variable"
	case SubstLengthMismatch:
		return "substitution length mismatch"
	case TableOutOfRange:
		return "table index out of range"
	case UnboundVariable:
		return "unknown variable"
	case CanonicalMismatch:
		return "canonical template mismatch"
	case EmptyExClause:
		return "ex-clause has no subgoals"
	case FlounderedTable:
		return "table floundered"
	default:
		return "unclassified"
	}
}

// InvariantViolation is the value Invariant panics with
type InvariantViolation struct {
	Code    ErrCode
	Message string
	stack   []byte
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("internal invariant violated (%s): %s", e.Code, e.Message)
}

// FormatWithCode renders e along with the frame that raised it, when available
func FormatWithCode(e *InvariantViolation) string {
	if enableDebugErrorPrinting && e.stack != nil {
		stack := string(e.stack)
		if !enableDebugFullStacktrace {
			lines := strings.Split(stack, "\n")
			if len(lines) > 6 {
				stack = strings.TrimSpace(lines[6])
			}
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code, e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code, e.Error())
}

// Invariant aborts the current solve session.
// It never returns.
func Invariant(code ErrCode, format string, args ...any) {
	panic(&InvariantViolation{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		stack:   debug.Stack(),
	})
}

// Abort is meant to be deferred at the boundary of a solve session.
// It turns an *InvariantViolation panic into an error stored in errp,
// and lets any other panic continue unwinding.
func Abort(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	violation, ok := r.(*InvariantViolation)
	if !ok {
		panic(r)
	}
	*errp = violation
}
