package infer

import (
	"github.com/cottand/slg/ir"
)

// InstantiateBindersExistentially replaces the variables of binders with fresh
// inference variables in the current universe: unknowns to solve for
func InstantiateBindersExistentially[T ir.Term[T]](t *Table, binders ir.Binders[T]) T {
	universe := t.maxUniverse
	params := make(ir.Substitution, len(binders.Kinds))
	for i, kind := range binders.Kinds {
		params[i] = kind.InferenceVarArg(t.NewVariable(kind.Kind, universe))
	}
	return binders.Substitute(params)
}

// InstantiateBindersUniversally replaces the variables of binders with placeholders
// of a new universe: rigid terms that only unify with themselves
func InstantiateBindersUniversally[T ir.Term[T]](t *Table, binders ir.Binders[T]) T {
	universe := t.NewUniverse()
	params := make(ir.Substitution, len(binders.Kinds))
	for i, kind := range binders.Kinds {
		params[i] = kind.PlaceholderArg(ir.PlaceholderIndex{Universe: universe, Index: i})
	}
	return binders.Substitute(params)
}

// InstantiateCanonical creates one inference variable per slot of canonical, in
// the slot's universe, and returns them along with the value they are substituted in
func InstantiateCanonical[T ir.Term[T]](t *Table, canonical ir.Canonical[T]) (ir.Substitution, T) {
	subst := make(ir.Substitution, len(canonical.Binders))
	for i, kind := range canonical.Binders {
		subst[i] = kind.InferenceVarArg(t.NewVariable(kind.Kind, kind.Universe))
	}
	// the const types of the slots may refer to other slots
	for i, arg := range subst {
		if c, ok := arg.Const(); ok {
			subst[i] = ir.ConstArg(ir.Const{Ty: ir.Substitute(subst, c.Ty), Value: c.Value})
		}
	}
	return subst, ir.Substitute(subst, canonical.Value)
}

// FromCanonical creates a table with the given number of universes and
// instantiates canonical in it.
// The returned substitution maps each slot of canonical to its new variable.
func FromCanonical[T ir.Term[T]](universes int, canonical ir.Canonical[T]) (*Table, ir.Substitution, T) {
	t := New()
	for i := 1; i < universes; i++ {
		t.NewUniverse()
	}
	subst, value := InstantiateCanonical(t, canonical)
	return t, subst, value
}
