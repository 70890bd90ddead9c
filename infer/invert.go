package infer

import (
	"github.com/cottand/slg/ir"
)

// Invert prepares value to be refuted: its placeholders, which were universally
// quantified, become existential variables, so that proving the result has an
// answer amounts to refuting value for all of them.
//
// Invert refuses (returns false) when value still has unbound existential variables:
// those would have to become universal, and negating an open goal is unsound.
func Invert[T ir.Term[T]](t *Table, value T) (T, bool) {
	canonicalized := Canonicalize(t, value)
	if len(canonicalized.FreeVars) > 0 {
		logger.Debug("refusing to invert a goal with free variables", "value", value, "freeVars", len(canonicalized.FreeVars))
		var zero T
		return zero, false
	}
	inv := &inverter{table: t, vars: make(map[ir.PlaceholderIndex]ir.InferenceVar)}
	return canonicalized.Quantified.Value.FoldWith(inv, ir.Innermost), true
}

type inverter struct {
	ir.NopFolder
	table *Table
	vars  map[ir.PlaceholderIndex]ir.InferenceVar
}

func (inv *inverter) FoldPlaceholder(p ir.PlaceholderIndex, kind ir.VarKind, _ ir.DebruijnIndex) (ir.GenericArg, bool) {
	v, ok := inv.vars[p]
	if !ok {
		v = inv.table.NewVariable(kind.Kind, p.Universe)
		inv.vars[p] = v
	}
	return kind.InferenceVarArg(v), true
}
