package ir

import (
	"fmt"

	"github.com/cottand/slg/slgerr"
)

// Term is implemented by every value of the term model
type Term[T any] interface {
	fmt.Stringer
	FoldWith(f Folder, outer DebruijnIndex) T
	VisitWith(v Visitor, outer DebruijnIndex)
}

// Folder rewrites the variable-like leaves of a term.
//
// Each method receives the kind of the leaf (with its already folded type,
// for constants) and the number of binders crossed so far,
// and returns the replacement along with true, or false to keep the leaf.
type Folder interface {
	FoldBoundVar(bv BoundVar, kind VarKind, outer DebruijnIndex) (GenericArg, bool)
	FoldInferenceVar(v InferenceVar, kind VarKind, outer DebruijnIndex) (GenericArg, bool)
	FoldPlaceholder(p PlaceholderIndex, kind VarKind, outer DebruijnIndex) (GenericArg, bool)
}

// NopFolder keeps every leaf. Embed it to only override some methods.
type NopFolder struct{}

func (NopFolder) FoldBoundVar(BoundVar, VarKind, DebruijnIndex) (GenericArg, bool) {
	return GenericArg{}, false
}
func (NopFolder) FoldInferenceVar(InferenceVar, VarKind, DebruijnIndex) (GenericArg, bool) {
	return GenericArg{}, false
}
func (NopFolder) FoldPlaceholder(PlaceholderIndex, VarKind, DebruijnIndex) (GenericArg, bool) {
	return GenericArg{}, false
}

// Visitor observes the types, lifetimes and constants of a term.
// Implementations decide whether to descend with SuperVisitTy and SuperVisitConst.
type Visitor interface {
	VisitTy(ty Ty, outer DebruijnIndex)
	VisitLifetime(lt Lifetime, outer DebruijnIndex)
	VisitConst(c Const, outer DebruijnIndex)
}

// Equal is structural equality of terms.
// Term renderings are unambiguous, so equal renderings mean equal terms.
func Equal(a, b fmt.Stringer) bool {
	return a.String() == b.String()
}

// Binders quantifies Value over variables of the given Kinds.
// Inside Value, the variable i of these binders is BoundVar{Debruijn: 0, Index: i}.
type Binders[T Term[T]] struct {
	Kinds []VarKind
	Value T
}

func NewBinders[T Term[T]](kinds []VarKind, value T) Binders[T] {
	return Binders[T]{Kinds: kinds, Value: value}
}

func (b Binders[T]) Len() int { return len(b.Kinds) }

func (b Binders[T]) String() string {
	return fmt.Sprintf("for<%s> %s", joinStrings(b.Kinds, ", "), b.Value)
}

func (b Binders[T]) FoldWith(f Folder, outer DebruijnIndex) Binders[T] {
	return Binders[T]{Kinds: foldVarKinds(b.Kinds, f, outer), Value: b.Value.FoldWith(f, outer.Shifted())}
}

func (b Binders[T]) VisitWith(v Visitor, outer DebruijnIndex) {
	b.Value.VisitWith(v, outer.Shifted())
}

// Substitute instantiates the binders with params
func (b Binders[T]) Substitute(params Substitution) T {
	if len(params) != len(b.Kinds) {
		slgerr.Invariant(slgerr.SubstLengthMismatch, "%d parameters for %d binders in %s", len(params), len(b.Kinds), b)
	}
	return Substitute(params, b.Value)
}

// Substitute replaces the variables of the binder value is directly under with params,
// removing that binder
func Substitute[T Term[T]](params Substitution, value T) T {
	return value.FoldWith(substFolder{params: params}, Innermost)
}

type substFolder struct {
	NopFolder
	params Substitution
}

func (s substFolder) FoldBoundVar(bv BoundVar, kind VarKind, outer DebruijnIndex) (GenericArg, bool) {
	if bv.Debruijn < outer {
		return GenericArg{}, false
	}
	if bv.Debruijn > outer {
		// bound further out, one binder fewer to cross now
		return kind.BoundVarArg(NewBoundVar(bv.Debruijn-1, bv.Index)), true
	}
	if bv.Index >= len(s.params) {
		slgerr.Invariant(slgerr.SubstLengthMismatch, "bound variable %s out of range of substitution %s", bv, s.params)
	}
	param := s.params[bv.Index]
	if param.Kind() != kind.Kind {
		slgerr.Invariant(slgerr.KindMismatch, "bound variable %s of kind %s substituted with %s %s", bv, kind, param.Kind(), param)
	}
	return Shift(param, outer), true
}

// Shift moves the bound variables that are free in value amount binders further out,
// for value to be placed under amount new binders
func Shift[T Term[T]](value T, amount DebruijnIndex) T {
	if amount == 0 {
		return value
	}
	return value.FoldWith(shiftFolder{amount: amount}, Innermost)
}

type shiftFolder struct {
	NopFolder
	amount DebruijnIndex
}

func (s shiftFolder) FoldBoundVar(bv BoundVar, kind VarKind, outer DebruijnIndex) (GenericArg, bool) {
	if bv.Debruijn < outer {
		return GenericArg{}, false
	}
	return kind.BoundVarArg(NewBoundVar(bv.Debruijn+s.amount, bv.Index)), true
}
