package ir

import "fmt"

// Const is a constant term along with its type
type Const struct {
	Ty    Ty
	Value ConstValue
}

type ConstValue interface {
	fmt.Stringer
	isConstValue()
}

type BoundVarConst struct{ Var BoundVar }
type InferenceVarConst struct{ Var InferenceVar }
type PlaceholderConst struct{ Index PlaceholderIndex }

// ConcreteConst is a fully evaluated constant
type ConcreteConst struct {
	Value uint64
}

func (BoundVarConst) isConstValue()     {}
func (InferenceVarConst) isConstValue() {}
func (PlaceholderConst) isConstValue()  {}
func (ConcreteConst) isConstValue()     {}

func (c BoundVarConst) String() string     { return c.Var.String() }
func (c InferenceVarConst) String() string { return c.Var.String() }
func (c PlaceholderConst) String() string  { return c.Index.String() }
func (c ConcreteConst) String() string     { return fmt.Sprint(c.Value) }

func (c Const) String() string { return fmt.Sprintf("const(%s: %s)", c.Value, c.Ty) }

// ConstEq is the equality of two concrete constants of type ty
func ConstEq(_ Ty, a, b ConcreteConst) bool {
	return a.Value == b.Value
}

func ConcreteConstOf(ty Ty, value uint64) Const {
	return Const{Ty: ty, Value: ConcreteConst{Value: value}}
}

func (c Const) FoldWith(f Folder, outer DebruijnIndex) Const {
	ty := c.Ty.FoldWith(f, outer)
	kind := ConstVarKind(ty)
	switch value := c.Value.(type) {
	case BoundVarConst:
		if r, ok := f.FoldBoundVar(value.Var, kind, outer); ok {
			return r.AssertConst()
		}
	case InferenceVarConst:
		if r, ok := f.FoldInferenceVar(value.Var, kind, outer); ok {
			return r.AssertConst()
		}
	case PlaceholderConst:
		if r, ok := f.FoldPlaceholder(value.Index, kind, outer); ok {
			return r.AssertConst()
		}
	}
	return Const{Ty: ty, Value: c.Value}
}

func (c Const) VisitWith(v Visitor, outer DebruijnIndex) { v.VisitConst(c, outer) }

// SuperVisitConst visits the type of c
func SuperVisitConst(v Visitor, c Const, outer DebruijnIndex) {
	c.Ty.VisitWith(v, outer)
}
