package ir

import (
	"fmt"
	"slices"

	"github.com/cottand/slg/slgerr"
)

// Canonical is a value whose free inference variables were replaced by the
// bound slots described by Binders. It contains no inference variables.
type Canonical[T Term[T]] struct {
	Binders []CanonicalVarKind
	Value   T
}

func (c Canonical[T]) String() string {
	return fmt.Sprintf("Canonical[%s]{%s}", joinStrings(c.Binders, ", "), c.Value)
}

// UCanonical is a Canonical value whose universes were renumbered to 0..Universes-1
type UCanonical[T Term[T]] struct {
	Canonical Canonical[T]
	Universes int
}

func (u UCanonical[T]) String() string {
	return fmt.Sprintf("UCanonical(%d)%s", u.Universes, u.Canonical)
}

// Key identifies u as a memoization key: two UCanonical values have the same Key
// iff they are equal
func (u UCanonical[T]) Key() string { return u.String() }

// UniverseMap relates the universes of a UCanonical value (its indices) to the
// universes of the inference table it was built in (its values, sorted).
type UniverseMap struct {
	Universes []UniverseIndex
}

// NewUniverseMap returns the map that relates only the root universe to itself
func NewUniverseMap() UniverseMap {
	return UniverseMap{Universes: []UniverseIndex{RootUniverse}}
}

func (m UniverseMap) NumCanonicalUniverses() int { return len(m.Universes) }

// MapUniverseToCanonical returns the canonical universe of u, if u is in the map
func (m UniverseMap) MapUniverseToCanonical(u UniverseIndex) (UniverseIndex, bool) {
	i, found := slices.BinarySearch(m.Universes, u)
	return UniverseIndex(i), found
}

// MapUniverseFromCanonical returns the universe a canonical universe stands for.
// Universes past the end of the map were created after canonicalization and are
// mapped past the greatest known universe.
func (m UniverseMap) MapUniverseFromCanonical(u UniverseIndex) UniverseIndex {
	if int(u) < len(m.Universes) {
		return m.Universes[u]
	}
	last := len(m.Universes) - 1
	return m.Universes[last] + (u - UniverseIndex(last))
}

func (m UniverseMap) String() string {
	return fmt.Sprintf("UniverseMap%v", m.Universes)
}

// MapFromCanonical translates the universes of canonical, which are canonical
// universes of m, back to the universes they stand for
func MapFromCanonical[T Term[T]](m UniverseMap, canonical Canonical[T]) Canonical[T] {
	return RenameUniverses(canonical, m.MapUniverseFromCanonical)
}

// universeFolder renames the universe of every placeholder of a canonical value
type universeFolder struct {
	mapUniverse func(UniverseIndex) UniverseIndex
}

func (f universeFolder) FoldBoundVar(BoundVar, VarKind, DebruijnIndex) (GenericArg, bool) {
	return GenericArg{}, false
}

func (f universeFolder) FoldInferenceVar(v InferenceVar, _ VarKind, _ DebruijnIndex) (GenericArg, bool) {
	slgerr.Invariant(slgerr.FreeInferenceVar, "inference variable %s in a canonical value", v)
	return GenericArg{}, false
}

func (f universeFolder) FoldPlaceholder(p PlaceholderIndex, kind VarKind, _ DebruijnIndex) (GenericArg, bool) {
	return kind.PlaceholderArg(PlaceholderIndex{Universe: f.mapUniverse(p.Universe), Index: p.Index}), true
}

// RenameUniverses applies rename to the universe of every placeholder of canonical,
// and to the universe of each of its binders
func RenameUniverses[T Term[T]](canonical Canonical[T], rename func(UniverseIndex) UniverseIndex) Canonical[T] {
	binders := make([]CanonicalVarKind, len(canonical.Binders))
	for i, kind := range canonical.Binders {
		binders[i] = CanonicalVarKind{VarKind: kind.VarKind, Universe: rename(kind.Universe)}
	}
	return Canonical[T]{
		Binders: binders,
		Value:   canonical.Value.FoldWith(universeFolder{mapUniverse: rename}, Innermost),
	}
}

// ConstrainedSubst is a substitution along with the constraints it holds under
type ConstrainedSubst struct {
	Subst       Substitution
	Constraints Constraints
}

func (c ConstrainedSubst) String() string {
	return fmt.Sprintf("%s where %s", c.Subst, c.Constraints)
}

func (c ConstrainedSubst) FoldWith(f Folder, outer DebruijnIndex) ConstrainedSubst {
	return ConstrainedSubst{Subst: c.Subst.FoldWith(f, outer), Constraints: c.Constraints.FoldWith(f, outer)}
}

func (c ConstrainedSubst) VisitWith(v Visitor, outer DebruijnIndex) {
	c.Subst.VisitWith(v, outer)
	c.Constraints.VisitWith(v, outer)
}

// AnswerSubst is a ConstrainedSubst that only holds if DelayedSubgoals,
// which could not be answered yet, hold too
type AnswerSubst struct {
	Subst           Substitution
	Constraints     Constraints
	DelayedSubgoals []InEnvironment[Goal]
}

func (a AnswerSubst) String() string {
	if len(a.DelayedSubgoals) == 0 {
		return fmt.Sprintf("%s where %s", a.Subst, a.Constraints)
	}
	return fmt.Sprintf("%s where %s delayed %s", a.Subst, a.Constraints, joinStrings(a.DelayedSubgoals, ", "))
}

func (a AnswerSubst) FoldWith(f Folder, outer DebruijnIndex) AnswerSubst {
	var delayed []InEnvironment[Goal]
	for _, goal := range a.DelayedSubgoals {
		delayed = append(delayed, goal.FoldWith(f, outer))
	}
	return AnswerSubst{
		Subst:           a.Subst.FoldWith(f, outer),
		Constraints:     a.Constraints.FoldWith(f, outer),
		DelayedSubgoals: delayed,
	}
}

func (a AnswerSubst) VisitWith(v Visitor, outer DebruijnIndex) {
	a.Subst.VisitWith(v, outer)
	a.Constraints.VisitWith(v, outer)
	for _, goal := range a.DelayedSubgoals {
		goal.VisitWith(v, outer)
	}
}
