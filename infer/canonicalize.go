package infer

import (
	"sort"

	"github.com/cottand/slg/ir"
	"github.com/cottand/slg/slgerr"
	"github.com/xtgo/set"
)

// FreeVar is an inference variable that became a slot of a canonical value
type FreeVar struct {
	Var  ir.InferenceVar
	Kind ir.VariableKind
}

// ArgLike builds the generic argument for fv, taking the type of a constant from like
func (fv FreeVar) ArgLike(like ir.GenericArg) ir.GenericArg {
	switch fv.Kind {
	case ir.KindTy:
		return ir.TyArg(ir.InferenceVarTy{Var: fv.Var})
	case ir.KindLifetime:
		return ir.LifetimeArg(ir.InferenceVarLifetime{Var: fv.Var})
	default:
		return ir.ConstArg(ir.Const{Ty: like.AssertConst().Ty, Value: ir.InferenceVarConst{Var: fv.Var}})
	}
}

// Canonicalized is the result of Canonicalize.
// FreeVars[i] is the inference variable that slot i of Quantified stands for.
type Canonicalized[T ir.Term[T]] struct {
	Quantified ir.Canonical[T]
	FreeVars   []FreeVar
}

// Canonicalize replaces the unbound inference variables of value, after normalization,
// with bound slots numbered in order of first appearance
func Canonicalize[T ir.Term[T]](t *Table, value T) Canonicalized[T] {
	c := &canonicalizer{table: t, indices: make(map[ir.InferenceVar]int)}
	quantified := value.FoldWith(c, ir.Innermost)
	logger.Debug("canonicalized", "value", value, "quantified", quantified, "freeVars", len(c.freeVars))
	return Canonicalized[T]{
		Quantified: ir.Canonical[T]{Binders: c.binders, Value: quantified},
		FreeVars:   c.freeVars,
	}
}

type canonicalizer struct {
	ir.NopFolder
	table    *Table
	freeVars []FreeVar
	binders  []ir.CanonicalVarKind
	indices  map[ir.InferenceVar]int
}

func (c *canonicalizer) FoldInferenceVar(v ir.InferenceVar, kind ir.VarKind, outer ir.DebruijnIndex) (ir.GenericArg, bool) {
	root, value := c.table.find(v)
	if value.state == bound {
		// the slots of the canonical value are bound at the innermost level of the
		// bound value, and need to cross the outer binders we are under
		return ir.Shift(value.value.FoldWith(c, ir.Innermost), outer), true
	}
	index, ok := c.indices[root]
	if !ok {
		index = len(c.freeVars)
		c.indices[root] = index
		c.freeVars = append(c.freeVars, FreeVar{Var: root, Kind: kind.Kind})
		c.binders = append(c.binders, ir.CanonicalVarKind{VarKind: kind, Universe: value.universe})
	}
	return kind.BoundVarArg(ir.NewBoundVar(outer, index)), true
}

// UCanonicalized is the result of UCanonicalize
type UCanonicalized[T ir.Term[T]] struct {
	Quantified ir.UCanonical[T]
	Universes  ir.UniverseMap
}

// UCanonicalize renumbers the universes canonical refers to, in its placeholders
// and its slots, to 0..n-1, keeping their order.
// The returned UniverseMap translates the new universes back.
func UCanonicalize[T ir.Term[T]](canonical ir.Canonical[T]) UCanonicalized[T] {
	collector := &universeCollector{universes: universes{ir.RootUniverse}}
	for _, kind := range canonical.Binders {
		collector.universes = append(collector.universes, kind.Universe)
	}
	canonical.Value.FoldWith(collector, ir.Innermost)

	collected := collector.universes
	sort.Sort(collected)
	collected = collected[:set.Uniq(collected)]
	universeMap := ir.UniverseMap{Universes: collected}

	toCanonical := func(u ir.UniverseIndex) ir.UniverseIndex {
		mapped, found := universeMap.MapUniverseToCanonical(u)
		if !found {
			slgerr.Invariant(slgerr.CanonicalMismatch, "universe %s was not collected", u)
		}
		return mapped
	}
	return UCanonicalized[T]{
		Quantified: ir.UCanonical[T]{
			Canonical: ir.RenameUniverses(canonical, toCanonical),
			Universes: len(collected),
		},
		Universes: universeMap,
	}
}

type universes []ir.UniverseIndex

func (u universes) Len() int           { return len(u) }
func (u universes) Less(i, j int) bool { return u[i] < u[j] }
func (u universes) Swap(i, j int)      { u[i], u[j] = u[j], u[i] }

type universeCollector struct {
	ir.NopFolder
	universes universes
}

func (c *universeCollector) FoldInferenceVar(v ir.InferenceVar, _ ir.VarKind, _ ir.DebruijnIndex) (ir.GenericArg, bool) {
	slgerr.Invariant(slgerr.FreeInferenceVar, "inference variable %s in a canonical value", v)
	return ir.GenericArg{}, false
}

func (c *universeCollector) FoldPlaceholder(p ir.PlaceholderIndex, _ ir.VarKind, _ ir.DebruijnIndex) (ir.GenericArg, bool) {
	c.universes = append(c.universes, p.Universe)
	return ir.GenericArg{}, false
}
