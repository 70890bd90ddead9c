package ir

import (
	"fmt"

	"github.com/cottand/slg/slgerr"
)

// GenericArg is a type, a lifetime or a constant
type GenericArg struct {
	kind     VariableKind
	ty       Ty
	lifetime Lifetime
	konst    Const
}

func TyArg(ty Ty) GenericArg             { return GenericArg{kind: KindTy, ty: ty} }
func LifetimeArg(lt Lifetime) GenericArg { return GenericArg{kind: KindLifetime, lifetime: lt} }
func ConstArg(c Const) GenericArg        { return GenericArg{kind: KindConst, konst: c} }

func (a GenericArg) Kind() VariableKind { return a.kind }

func (a GenericArg) Ty() (Ty, bool)             { return a.ty, a.kind == KindTy }
func (a GenericArg) Lifetime() (Lifetime, bool) { return a.lifetime, a.kind == KindLifetime }
func (a GenericArg) Const() (Const, bool)       { return a.konst, a.kind == KindConst }

// AssertTy returns the type in a and aborts the session if a is of another kind
func (a GenericArg) AssertTy() Ty {
	if a.kind != KindTy {
		slgerr.Invariant(slgerr.KindMismatch, "expected a type, found %s %s", a.kind, a)
	}
	return a.ty
}

func (a GenericArg) AssertLifetime() Lifetime {
	if a.kind != KindLifetime {
		slgerr.Invariant(slgerr.KindMismatch, "expected a lifetime, found %s %s", a.kind, a)
	}
	return a.lifetime
}

func (a GenericArg) AssertConst() Const {
	if a.kind != KindConst {
		slgerr.Invariant(slgerr.KindMismatch, "expected a const, found %s %s", a.kind, a)
	}
	return a.konst
}

func (a GenericArg) String() string {
	switch a.kind {
	case KindTy:
		if a.ty == nil {
			return "<nil>"
		}
		return a.ty.String()
	case KindLifetime:
		if a.lifetime == nil {
			return "<nil>"
		}
		return a.lifetime.String()
	default:
		if a.konst.Ty == nil {
			return "<nil>"
		}
		return a.konst.String()
	}
}

func (a GenericArg) FoldWith(f Folder, outer DebruijnIndex) GenericArg {
	switch a.kind {
	case KindTy:
		return TyArg(a.ty.FoldWith(f, outer))
	case KindLifetime:
		return LifetimeArg(a.lifetime.FoldWith(f, outer))
	default:
		return ConstArg(a.konst.FoldWith(f, outer))
	}
}

func (a GenericArg) VisitWith(v Visitor, outer DebruijnIndex) {
	switch a.kind {
	case KindTy:
		a.ty.VisitWith(v, outer)
	case KindLifetime:
		a.lifetime.VisitWith(v, outer)
	default:
		a.konst.VisitWith(v, outer)
	}
}

// Substitution maps the bound slots of some template, in order, to generic arguments
type Substitution []GenericArg

func (s Substitution) Len() int { return len(s) }

func (s Substitution) String() string { return fmt.Sprintf("[%s]", joinStrings(s, ", ")) }

func (s Substitution) FoldWith(f Folder, outer DebruijnIndex) Substitution {
	if s == nil {
		return nil
	}
	folded := make(Substitution, len(s))
	for i, arg := range s {
		folded[i] = arg.FoldWith(f, outer)
	}
	return folded
}

func (s Substitution) VisitWith(v Visitor, outer DebruijnIndex) {
	for _, arg := range s {
		arg.VisitWith(v, outer)
	}
}

// IdentitySubstitution maps every slot of binders to the bound variable for it
func IdentitySubstitution(binders []CanonicalVarKind) Substitution {
	subst := make(Substitution, len(binders))
	for i, kind := range binders {
		subst[i] = kind.BoundVarArg(NewBoundVar(Innermost, i))
	}
	return subst
}

func TyArgs(tys ...Ty) Substitution {
	subst := make(Substitution, len(tys))
	for i, ty := range tys {
		subst[i] = TyArg(ty)
	}
	return subst
}
