package ir

import "fmt"

type Lifetime interface {
	fmt.Stringer
	FoldWith(f Folder, outer DebruijnIndex) Lifetime
	VisitWith(v Visitor, outer DebruijnIndex)
	isLifetime()
}

type BoundVarLifetime struct{ Var BoundVar }
type InferenceVarLifetime struct{ Var InferenceVar }
type PlaceholderLifetime struct{ Index PlaceholderIndex }
type StaticLifetime struct{}

// ErasedLifetime stands for a lifetime that was deliberately forgotten
type ErasedLifetime struct{}

func (BoundVarLifetime) isLifetime()     {}
func (InferenceVarLifetime) isLifetime() {}
func (PlaceholderLifetime) isLifetime()  {}
func (StaticLifetime) isLifetime()       {}
func (ErasedLifetime) isLifetime()       {}

func (l BoundVarLifetime) String() string     { return "'" + l.Var.String() }
func (l InferenceVarLifetime) String() string { return "'" + l.Var.String() }
func (l PlaceholderLifetime) String() string  { return "'" + l.Index.String() }
func (StaticLifetime) String() string         { return "'static" }
func (ErasedLifetime) String() string         { return "'erased" }

func (l BoundVarLifetime) FoldWith(f Folder, outer DebruijnIndex) Lifetime {
	if r, ok := f.FoldBoundVar(l.Var, LifetimeVarKind(), outer); ok {
		return r.AssertLifetime()
	}
	return l
}

func (l InferenceVarLifetime) FoldWith(f Folder, outer DebruijnIndex) Lifetime {
	if r, ok := f.FoldInferenceVar(l.Var, LifetimeVarKind(), outer); ok {
		return r.AssertLifetime()
	}
	return l
}

func (l PlaceholderLifetime) FoldWith(f Folder, outer DebruijnIndex) Lifetime {
	if r, ok := f.FoldPlaceholder(l.Index, LifetimeVarKind(), outer); ok {
		return r.AssertLifetime()
	}
	return l
}

func (l StaticLifetime) FoldWith(Folder, DebruijnIndex) Lifetime { return l }
func (l ErasedLifetime) FoldWith(Folder, DebruijnIndex) Lifetime { return l }

func (l BoundVarLifetime) VisitWith(v Visitor, outer DebruijnIndex)     { v.VisitLifetime(l, outer) }
func (l InferenceVarLifetime) VisitWith(v Visitor, outer DebruijnIndex) { v.VisitLifetime(l, outer) }
func (l PlaceholderLifetime) VisitWith(v Visitor, outer DebruijnIndex)  { v.VisitLifetime(l, outer) }
func (l StaticLifetime) VisitWith(v Visitor, outer DebruijnIndex)       { v.VisitLifetime(l, outer) }
func (l ErasedLifetime) VisitWith(v Visitor, outer DebruijnIndex)       { v.VisitLifetime(l, outer) }
