package ir

import (
	"fmt"
	"reflect"
)

// Ty is a type term
type Ty interface {
	fmt.Stringer
	FoldWith(f Folder, outer DebruijnIndex) Ty
	VisitWith(v Visitor, outer DebruijnIndex)
	isTy()
}

var (
	_ Ty = BoundVarTy{}
	_ Ty = InferenceVarTy{}
	_ Ty = PlaceholderTy{}
	_ Ty = ApplyTy{}
	_ Ty = AliasTy{}
	_ Ty = ScalarTy{}
	_ Ty = RefTy{}
	_ Ty = RawPtrTy{}
	_ Ty = ArrayTy{}
	_ Ty = SliceTy{}
)

// BoundVarTy is a type bound by an enclosing binder.
// In canonical values it doubles as the wildcard for a not-yet-known type.
type BoundVarTy struct {
	Var BoundVar
}

// InferenceVarTy is an unknown type to be solved for
type InferenceVarTy struct {
	Var InferenceVar
}

// PlaceholderTy is a rigid type that only equals itself
type PlaceholderTy struct {
	Index PlaceholderIndex
}

type TypeNameKind uint8

const (
	NameAdt TypeNameKind = iota
	NameAssociatedType
	NameTuple
	NameFnDef
	NameClosure
	NameGenerator
	NameGeneratorWitness
	NameOpaqueType
	NameForeign
	NameStr
	NameNever
	NameError
)

// ItemID identifies a declaration of the program: a struct, trait, associated type...
type ItemID uint32

// TypeName is the nominal head of an ApplyTy.
// For tuples ID holds the arity.
type TypeName struct {
	Kind TypeNameKind
	ID   ItemID
}

func (n TypeName) String() string {
	switch n.Kind {
	case NameAdt:
		return fmt.Sprintf("adt#%d", n.ID)
	case NameAssociatedType:
		return fmt.Sprintf("assoc#%d", n.ID)
	case NameTuple:
		return fmt.Sprintf("tuple#%d", n.ID)
	case NameFnDef:
		return fmt.Sprintf("fn#%d", n.ID)
	case NameClosure:
		return fmt.Sprintf("closure#%d", n.ID)
	case NameGenerator:
		return fmt.Sprintf("generator#%d", n.ID)
	case NameGeneratorWitness:
		return fmt.Sprintf("witness#%d", n.ID)
	case NameOpaqueType:
		return fmt.Sprintf("opaque#%d", n.ID)
	case NameForeign:
		return fmt.Sprintf("foreign#%d", n.ID)
	case NameStr:
		return "str"
	case NameNever:
		return "never"
	case NameError:
		return "{error}"
	default:
		return fmt.Sprintf("name(%d)#%d", n.Kind, n.ID)
	}
}

// ApplyTy is a nominal type applied to its generic arguments
type ApplyTy struct {
	Name  TypeName
	Subst Substitution
}

type AliasKind uint8

const (
	AliasProjection AliasKind = iota
	AliasOpaque
)

// AliasTy is a type that may normalize to another one, like an associated type projection
type AliasTy struct {
	Kind  AliasKind
	ID    ItemID
	Subst Substitution
}

type Scalar uint8

const (
	Bool Scalar = iota
	Char
	I8
	I16
	I32
	I64
	I128
	Isize
	U8
	U16
	U32
	U64
	U128
	Usize
	F32
	F64
)

var scalarNames = [...]string{"bool", "char", "i8", "i16", "i32", "i64", "i128", "isize", "u8", "u16", "u32", "u64", "u128", "usize", "f32", "f64"}

func (s Scalar) String() string {
	if int(s) < len(scalarNames) {
		return scalarNames[s]
	}
	return fmt.Sprintf("scalar(%d)", uint8(s))
}

type ScalarTy struct {
	Scalar Scalar
}

type Mutability uint8

const (
	Not Mutability = iota
	Mut
)

type RefTy struct {
	Mutability Mutability
	Lifetime   Lifetime
	Elem       Ty
}

type RawPtrTy struct {
	Mutability Mutability
	Elem       Ty
}

type ArrayTy struct {
	Elem Ty
	Len  Const
}

type SliceTy struct {
	Elem Ty
}

func (BoundVarTy) isTy()     {}
func (InferenceVarTy) isTy() {}
func (PlaceholderTy) isTy()  {}
func (ApplyTy) isTy()        {}
func (AliasTy) isTy()        {}
func (ScalarTy) isTy()       {}
func (RefTy) isTy()          {}
func (RawPtrTy) isTy()       {}
func (ArrayTy) isTy()        {}
func (SliceTy) isTy()        {}

func (t BoundVarTy) String() string     { return t.Var.String() }
func (t InferenceVarTy) String() string { return t.Var.String() }
func (t PlaceholderTy) String() string  { return t.Index.String() }
func (t ScalarTy) String() string       { return t.Scalar.String() }
func (t SliceTy) String() string        { return fmt.Sprintf("[%s]", t.Elem) }
func (t ArrayTy) String() string        { return fmt.Sprintf("[%s; %s]", t.Elem, t.Len) }

func (t ApplyTy) String() string {
	if len(t.Subst) == 0 {
		return t.Name.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, joinStrings(t.Subst, ", "))
}

func (t AliasTy) String() string {
	prefix := "proj"
	if t.Kind == AliasOpaque {
		prefix = "impl"
	}
	return fmt.Sprintf("%s#%d<%s>", prefix, t.ID, joinStrings(t.Subst, ", "))
}

func (t RefTy) String() string {
	if t.Mutability == Mut {
		return fmt.Sprintf("&%s mut %s", t.Lifetime, t.Elem)
	}
	return fmt.Sprintf("&%s %s", t.Lifetime, t.Elem)
}

func (t RawPtrTy) String() string {
	if t.Mutability == Mut {
		return fmt.Sprintf("*mut %s", t.Elem)
	}
	return fmt.Sprintf("*const %s", t.Elem)
}

func (t BoundVarTy) FoldWith(f Folder, outer DebruijnIndex) Ty {
	if r, ok := f.FoldBoundVar(t.Var, TyVarKind(), outer); ok {
		return r.AssertTy()
	}
	return t
}

func (t InferenceVarTy) FoldWith(f Folder, outer DebruijnIndex) Ty {
	if r, ok := f.FoldInferenceVar(t.Var, TyVarKind(), outer); ok {
		return r.AssertTy()
	}
	return t
}

func (t PlaceholderTy) FoldWith(f Folder, outer DebruijnIndex) Ty {
	if r, ok := f.FoldPlaceholder(t.Index, TyVarKind(), outer); ok {
		return r.AssertTy()
	}
	return t
}

func (t ApplyTy) FoldWith(f Folder, outer DebruijnIndex) Ty {
	return ApplyTy{Name: t.Name, Subst: t.Subst.FoldWith(f, outer)}
}

func (t AliasTy) FoldWith(f Folder, outer DebruijnIndex) Ty {
	return t.FoldAlias(f, outer)
}

// FoldAlias is FoldWith without losing the static type
func (t AliasTy) FoldAlias(f Folder, outer DebruijnIndex) AliasTy {
	return AliasTy{Kind: t.Kind, ID: t.ID, Subst: t.Subst.FoldWith(f, outer)}
}

func (t ScalarTy) FoldWith(Folder, DebruijnIndex) Ty { return t }

func (t RefTy) FoldWith(f Folder, outer DebruijnIndex) Ty {
	return RefTy{
		Mutability: t.Mutability,
		Lifetime:   t.Lifetime.FoldWith(f, outer),
		Elem:       t.Elem.FoldWith(f, outer),
	}
}

func (t RawPtrTy) FoldWith(f Folder, outer DebruijnIndex) Ty {
	return RawPtrTy{Mutability: t.Mutability, Elem: t.Elem.FoldWith(f, outer)}
}

func (t ArrayTy) FoldWith(f Folder, outer DebruijnIndex) Ty {
	return ArrayTy{Elem: t.Elem.FoldWith(f, outer), Len: t.Len.FoldWith(f, outer)}
}

func (t SliceTy) FoldWith(f Folder, outer DebruijnIndex) Ty {
	return SliceTy{Elem: t.Elem.FoldWith(f, outer)}
}

func (t BoundVarTy) VisitWith(v Visitor, outer DebruijnIndex)     { v.VisitTy(t, outer) }
func (t InferenceVarTy) VisitWith(v Visitor, outer DebruijnIndex) { v.VisitTy(t, outer) }
func (t PlaceholderTy) VisitWith(v Visitor, outer DebruijnIndex)  { v.VisitTy(t, outer) }
func (t ApplyTy) VisitWith(v Visitor, outer DebruijnIndex)        { v.VisitTy(t, outer) }
func (t AliasTy) VisitWith(v Visitor, outer DebruijnIndex)        { v.VisitTy(t, outer) }
func (t ScalarTy) VisitWith(v Visitor, outer DebruijnIndex)       { v.VisitTy(t, outer) }
func (t RefTy) VisitWith(v Visitor, outer DebruijnIndex)          { v.VisitTy(t, outer) }
func (t RawPtrTy) VisitWith(v Visitor, outer DebruijnIndex)       { v.VisitTy(t, outer) }
func (t ArrayTy) VisitWith(v Visitor, outer DebruijnIndex)        { v.VisitTy(t, outer) }
func (t SliceTy) VisitWith(v Visitor, outer DebruijnIndex)        { v.VisitTy(t, outer) }

// SuperVisitTy visits the direct children of ty.
// Visitors call it from VisitTy to keep descending.
func SuperVisitTy(v Visitor, ty Ty, outer DebruijnIndex) {
	switch ty := ty.(type) {
	case BoundVarTy, InferenceVarTy, PlaceholderTy, ScalarTy:
	case ApplyTy:
		ty.Subst.VisitWith(v, outer)
	case AliasTy:
		ty.Subst.VisitWith(v, outer)
	case RefTy:
		ty.Lifetime.VisitWith(v, outer)
		ty.Elem.VisitWith(v, outer)
	case RawPtrTy:
		ty.Elem.VisitWith(v, outer)
	case ArrayTy:
		ty.Elem.VisitWith(v, outer)
		ty.Len.VisitWith(v, outer)
	case SliceTy:
		ty.Elem.VisitWith(v, outer)
	default:
		panic("unhandled type for SuperVisitTy: " + reflect.TypeOf(ty).String())
	}
}

func Adt(id ItemID, args ...GenericArg) ApplyTy {
	return ApplyTy{Name: TypeName{Kind: NameAdt, ID: id}, Subst: args}
}

func Tuple(elems ...Ty) ApplyTy {
	subst := make(Substitution, len(elems))
	for i, elem := range elems {
		subst[i] = TyArg(elem)
	}
	return ApplyTy{Name: TypeName{Kind: NameTuple, ID: ItemID(len(elems))}, Subst: subst}
}

func Str() ApplyTy   { return ApplyTy{Name: TypeName{Kind: NameStr}} }
func Never() ApplyTy { return ApplyTy{Name: TypeName{Kind: NameNever}} }

func Projection(id ItemID, args ...GenericArg) AliasTy {
	return AliasTy{Kind: AliasProjection, ID: id, Subst: args}
}

func ScalarOf(s Scalar) ScalarTy { return ScalarTy{Scalar: s} }
