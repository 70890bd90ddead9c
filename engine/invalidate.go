package engine

import (
	"github.com/cottand/slg/ir"
	"github.com/cottand/slg/slgerr"
)

// SubstMayInvalidate reports whether the new answer candidate might invalidate the cached
// answer current, meaning that candidate is not an instance of current.
//
// It errs on the side of true: a false result is only returned when every position
// of candidate is known to be an instance of the same position of current.
// Both substitutions are canonical answers to the same goal, so they must have the
// same length; candidate must contain no inference variables.
func SubstMayInvalidate(candidate ir.Substitution, current ir.Canonical[ir.Substitution]) bool {
	if len(candidate) != len(current.Value) {
		slgerr.Invariant(slgerr.SubstLengthMismatch, "answer %s cannot be compared with %s", candidate, current)
	}
	for i := range candidate {
		if MayInvalidate(candidate[i], current.Value[i]) {
			return true
		}
	}
	return false
}

// MayInvalidate reports whether candidate might not be an instance of current.
// Any bound variable of current matches anything, lifetimes are never compared.
func MayInvalidate(candidate, current ir.GenericArg) bool {
	if candidate.Kind() != current.Kind() {
		slgerr.Invariant(slgerr.KindMismatch, "mismatched parameter kinds: %s and %s", candidate, current)
	}
	switch candidate.Kind() {
	case ir.KindTy:
		return tyMayInvalidate(candidate.AssertTy(), current.AssertTy())
	case ir.KindLifetime:
		return true
	default:
		return constMayInvalidate(candidate.AssertConst(), current.AssertConst())
	}
}

func tyMayInvalidate(candidate, current ir.Ty) bool {
	if _, ok := current.(ir.BoundVarTy); ok {
		return false
	}
	if _, ok := candidate.(ir.BoundVarTy); ok {
		return true
	}
	_, candidateIsVar := candidate.(ir.InferenceVarTy)
	_, currentIsVar := current.(ir.InferenceVarTy)
	if candidateIsVar || currentIsVar {
		slgerr.Invariant(slgerr.FreeInferenceVar, "unexpected inference variable comparing %s with %s", candidate, current)
	}

	switch candidate := candidate.(type) {
	case ir.PlaceholderTy:
		if current, ok := current.(ir.PlaceholderTy); ok {
			return candidate.Index != current.Index
		}
	case ir.AliasTy:
		if current, ok := current.(ir.AliasTy); ok && candidate.Kind == current.Kind {
			return nameAndSubstMayInvalidate(candidate.ID, current.ID, candidate.Subst, current.Subst)
		}
	case ir.ApplyTy:
		if current, ok := current.(ir.ApplyTy); ok {
			return nameAndSubstMayInvalidate(candidate.Name, current.Name, candidate.Subst, current.Subst)
		}
	case ir.ScalarTy:
		if current, ok := current.(ir.ScalarTy); ok {
			return candidate.Scalar != current.Scalar
		}
	case ir.RefTy:
		if current, ok := current.(ir.RefTy); ok {
			return candidate.Mutability != current.Mutability ||
				MayInvalidate(ir.LifetimeArg(candidate.Lifetime), ir.LifetimeArg(current.Lifetime)) ||
				tyMayInvalidate(candidate.Elem, current.Elem)
		}
	case ir.RawPtrTy:
		if current, ok := current.(ir.RawPtrTy); ok {
			return candidate.Mutability != current.Mutability || tyMayInvalidate(candidate.Elem, current.Elem)
		}
	case ir.ArrayTy:
		if current, ok := current.(ir.ArrayTy); ok {
			return tyMayInvalidate(candidate.Elem, current.Elem) || constMayInvalidate(candidate.Len, current.Len)
		}
	case ir.SliceTy:
		if current, ok := current.(ir.SliceTy); ok {
			return tyMayInvalidate(candidate.Elem, current.Elem)
		}
	}
	// different heads, or a head against a placeholder
	return true
}

func constMayInvalidate(candidate, current ir.Const) bool {
	if tyMayInvalidate(candidate.Ty, current.Ty) {
		return true
	}
	switch currentValue := current.Value.(type) {
	case ir.BoundVarConst:
		return false
	case ir.InferenceVarConst:
		slgerr.Invariant(slgerr.FreeInferenceVar, "unexpected inference variable comparing %s with %s", candidate, current)
	case ir.PlaceholderConst:
		if candidateValue, ok := candidate.Value.(ir.PlaceholderConst); ok {
			return candidateValue.Index != currentValue.Index
		}
	case ir.ConcreteConst:
		if candidateValue, ok := candidate.Value.(ir.ConcreteConst); ok {
			return !ir.ConstEq(candidate.Ty, candidateValue, currentValue)
		}
	}
	if _, ok := candidate.Value.(ir.InferenceVarConst); ok {
		slgerr.Invariant(slgerr.FreeInferenceVar, "unexpected inference variable comparing %s with %s", candidate, current)
	}
	return true
}

func nameAndSubstMayInvalidate[N comparable](candidateName, currentName N, candidate, current ir.Substitution) bool {
	if candidateName != currentName {
		return true
	}
	if len(candidate) != len(current) {
		slgerr.Invariant(slgerr.SubstLengthMismatch, "%v applied to %s and %s", candidateName, candidate, current)
	}
	for i := range candidate {
		if MayInvalidate(candidate[i], current[i]) {
			return true
		}
	}
	return false
}
