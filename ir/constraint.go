package ir

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// Constraint is a region side condition produced while unifying
type Constraint interface {
	fmt.Stringer
	FoldWith(f Folder, outer DebruijnIndex) Constraint
	VisitWith(v Visitor, outer DebruijnIndex)
	isConstraint()
}

// LifetimeOutlives is `'a: 'b`
type LifetimeOutlives struct {
	A, B Lifetime
}

// TypeOutlives is `T: 'a`
type TypeOutlives struct {
	Ty       Ty
	Lifetime Lifetime
}

func (LifetimeOutlives) isConstraint() {}
func (TypeOutlives) isConstraint()     {}

func (c LifetimeOutlives) String() string { return fmt.Sprintf("%s: %s", c.A, c.B) }
func (c TypeOutlives) String() string     { return fmt.Sprintf("%s: %s", c.Ty, c.Lifetime) }

func (c LifetimeOutlives) FoldWith(f Folder, outer DebruijnIndex) Constraint {
	return LifetimeOutlives{A: c.A.FoldWith(f, outer), B: c.B.FoldWith(f, outer)}
}

func (c TypeOutlives) FoldWith(f Folder, outer DebruijnIndex) Constraint {
	return TypeOutlives{Ty: c.Ty.FoldWith(f, outer), Lifetime: c.Lifetime.FoldWith(f, outer)}
}

func (c LifetimeOutlives) VisitWith(v Visitor, outer DebruijnIndex) {
	c.A.VisitWith(v, outer)
	c.B.VisitWith(v, outer)
}

func (c TypeOutlives) VisitWith(v Visitor, outer DebruijnIndex) {
	c.Ty.VisitWith(v, outer)
	c.Lifetime.VisitWith(v, outer)
}

// Constraints is a set of constraints, each in its environment.
// It is kept sorted and free of duplicates so that equal sets render,
// and therefore canonicalize, identically.
type Constraints []InEnvironment[Constraint]

// NewConstraints builds the set of the given constraints
func NewConstraints(constraints ...InEnvironment[Constraint]) Constraints {
	return Constraints(nil).Union(constraints...)
}

// Union returns the set of constraints in c or in other. Neither side is modified.
func (c Constraints) Union(other ...InEnvironment[Constraint]) Constraints {
	if len(other) == 0 {
		return c
	}
	union := set.NewHashSet[InEnvironment[Constraint], string](len(c) + len(other))
	union.InsertSlice(c)
	union.InsertSlice(other)
	if union.Size() == 0 {
		return nil
	}
	sorted := Constraints(union.Slice())
	slices.SortFunc(sorted, func(a, b InEnvironment[Constraint]) int {
		return cmp.Compare(a.String(), b.String())
	})
	return sorted
}

func (c Constraints) String() string { return fmt.Sprintf("{%s}", joinStrings(c, ", ")) }

// FoldWith folds every constraint. The result is re-normalized,
// since folding may make two constraints equal.
func (c Constraints) FoldWith(f Folder, outer DebruijnIndex) Constraints {
	if len(c) == 0 {
		return nil
	}
	folded := make([]InEnvironment[Constraint], len(c))
	for i, constraint := range c {
		folded[i] = constraint.FoldWith(f, outer)
	}
	return NewConstraints(folded...)
}

func (c Constraints) VisitWith(v Visitor, outer DebruijnIndex) {
	for _, constraint := range c {
		constraint.VisitWith(v, outer)
	}
}
