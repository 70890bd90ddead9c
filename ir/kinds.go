package ir

import (
	"fmt"
	"strings"
)

// VariableKind is the kind of a generic argument or of a variable standing for one
type VariableKind uint8

const (
	KindTy VariableKind = iota
	KindLifetime
	KindConst
)

func (k VariableKind) String() string {
	switch k {
	case KindTy:
		return "ty"
	case KindLifetime:
		return "lt"
	case KindConst:
		return "const"
	default:
		return "invalid"
	}
}

// VarKind is a VariableKind along with the type of the variable, for constants
type VarKind struct {
	Kind VariableKind
	// Ty is only set when Kind is KindConst
	Ty Ty
}

func TyVarKind() VarKind         { return VarKind{Kind: KindTy} }
func LifetimeVarKind() VarKind   { return VarKind{Kind: KindLifetime} }
func ConstVarKind(ty Ty) VarKind { return VarKind{Kind: KindConst, Ty: ty} }

func (k VarKind) String() string {
	if k.Kind == KindConst && k.Ty != nil {
		return fmt.Sprintf("const(%s)", k.Ty)
	}
	return k.Kind.String()
}

func (k VarKind) foldWith(f Folder, outer DebruijnIndex) VarKind {
	if k.Kind == KindConst && k.Ty != nil {
		k.Ty = k.Ty.FoldWith(f, outer)
	}
	return k
}

// BoundVarArg builds the generic argument of kind k that refers to bv
func (k VarKind) BoundVarArg(bv BoundVar) GenericArg {
	switch k.Kind {
	case KindTy:
		return TyArg(BoundVarTy{Var: bv})
	case KindLifetime:
		return LifetimeArg(BoundVarLifetime{Var: bv})
	default:
		return ConstArg(Const{Ty: k.Ty, Value: BoundVarConst{Var: bv}})
	}
}

// InferenceVarArg builds the generic argument of kind k that refers to v
func (k VarKind) InferenceVarArg(v InferenceVar) GenericArg {
	switch k.Kind {
	case KindTy:
		return TyArg(InferenceVarTy{Var: v})
	case KindLifetime:
		return LifetimeArg(InferenceVarLifetime{Var: v})
	default:
		return ConstArg(Const{Ty: k.Ty, Value: InferenceVarConst{Var: v}})
	}
}

// PlaceholderArg builds the generic argument of kind k that refers to p
func (k VarKind) PlaceholderArg(p PlaceholderIndex) GenericArg {
	switch k.Kind {
	case KindTy:
		return TyArg(PlaceholderTy{Index: p})
	case KindLifetime:
		return LifetimeArg(PlaceholderLifetime{Index: p})
	default:
		return ConstArg(Const{Ty: k.Ty, Value: PlaceholderConst{Index: p}})
	}
}

// UniverseIndex tags placeholders and inference variables.
// A variable in universe U may only be bound to terms whose placeholders
// all live in universes <= U.
type UniverseIndex uint32

const RootUniverse UniverseIndex = 0

func (u UniverseIndex) Next() UniverseIndex { return u + 1 }

// CanSee reports whether terms of universe other may flow into universe u
func (u UniverseIndex) CanSee(other UniverseIndex) bool { return u >= other }

func (u UniverseIndex) String() string { return fmt.Sprintf("U%d", uint32(u)) }

// DebruijnIndex counts binders outward from a bound variable's use site.
// 0 is the innermost binder.
type DebruijnIndex uint32

const Innermost DebruijnIndex = 0

func (d DebruijnIndex) Shifted() DebruijnIndex { return d + 1 }

// BoundVar refers to the Index-th variable of the binder Debruijn levels out
type BoundVar struct {
	Debruijn DebruijnIndex
	Index    int
}

func NewBoundVar(debruijn DebruijnIndex, index int) BoundVar {
	return BoundVar{Debruijn: debruijn, Index: index}
}

// BoundAt returns the index of b if it refers to the binder at depth outer
func (b BoundVar) BoundAt(outer DebruijnIndex) (int, bool) {
	if b.Debruijn == outer {
		return b.Index, true
	}
	return 0, false
}

func (b BoundVar) String() string { return fmt.Sprintf("^%d.%d", b.Debruijn, b.Index) }

// InferenceVar is an existential unknown owned by an inference table
type InferenceVar uint32

func (v InferenceVar) String() string { return fmt.Sprintf("?%d", uint32(v)) }

// PlaceholderIndex is a rigid, universally quantified variable
type PlaceholderIndex struct {
	Universe UniverseIndex
	Index    int
}

func (p PlaceholderIndex) String() string { return fmt.Sprintf("!%d_%d", p.Universe, p.Index) }

// CanonicalVarKind describes one bound slot of a Canonical value
type CanonicalVarKind struct {
	VarKind
	Universe UniverseIndex
}

func (k CanonicalVarKind) String() string {
	return fmt.Sprintf("%s %s", k.VarKind, k.Universe)
}

func joinStrings[S fmt.Stringer](elems []S, sep string) string {
	sb := strings.Builder{}
	for i, elem := range elems {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(elem.String())
	}
	return sb.String()
}
