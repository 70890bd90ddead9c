// Package infer implements the inference table a single derivation attempt
// owns: its existential variables, their bindings and its universes,
// along with the operations that create, bind and canonicalize them.
//
// A Table is mutable and not suitable for concurrent use.
// Its variable store is a persistent map, so Clone and Snapshot are cheap.
package infer

import (
	"github.com/benbjohnson/immutable"
	"github.com/cottand/slg/internal/log"
	"github.com/cottand/slg/ir"
	"github.com/cottand/slg/slgerr"
)

var logger = log.DefaultLogger.With("section", "infer")

type varState uint8

const (
	unbound varState = iota
	// linked variables were unified with another variable, which stands for both
	linked
	bound
)

type varValue struct {
	kind     ir.VariableKind
	universe ir.UniverseIndex
	state    varState
	link     ir.InferenceVar
	value    ir.GenericArg
}

type varHasher struct{}

func (varHasher) Hash(v ir.InferenceVar) uint32   { return uint32(v) }
func (varHasher) Equal(a, b ir.InferenceVar) bool { return a == b }

// Table holds the inference variables of one derivation attempt
type Table struct {
	vars        *immutable.Map[ir.InferenceVar, varValue]
	nextVar     ir.InferenceVar
	maxUniverse ir.UniverseIndex
}

func New() *Table {
	return &Table{
		vars:        immutable.NewMap[ir.InferenceVar, varValue](varHasher{}),
		maxUniverse: ir.RootUniverse,
	}
}

// Clone returns an independent copy of t
func (t *Table) Clone() *Table {
	clone := *t
	return &clone
}

// Snapshot is the state of a Table at some point, which Rollback restores
type Snapshot struct {
	vars        *immutable.Map[ir.InferenceVar, varValue]
	nextVar     ir.InferenceVar
	maxUniverse ir.UniverseIndex
}

func (t *Table) Snapshot() Snapshot {
	return Snapshot{vars: t.vars, nextVar: t.nextVar, maxUniverse: t.maxUniverse}
}

// Rollback forgets every variable, binding and universe created since s was taken
func (t *Table) Rollback(s Snapshot) {
	t.vars = s.vars
	t.nextVar = s.nextVar
	t.maxUniverse = s.maxUniverse
}

func (t *Table) MaxUniverse() ir.UniverseIndex { return t.maxUniverse }

// NewUniverse creates a universe that can see every existing one
func (t *Table) NewUniverse() ir.UniverseIndex {
	t.maxUniverse = t.maxUniverse.Next()
	return t.maxUniverse
}

// NewVariable creates an unbound variable of the given kind in universe
func (t *Table) NewVariable(kind ir.VariableKind, universe ir.UniverseIndex) ir.InferenceVar {
	for t.maxUniverse < universe {
		t.NewUniverse()
	}
	v := t.nextVar
	t.nextVar++
	t.vars = t.vars.Set(v, varValue{kind: kind, universe: universe})
	return v
}

// NumVariables is the number of variables ever created in t
func (t *Table) NumVariables() int { return int(t.nextVar) }

// find returns the variable that stands for v and its value
func (t *Table) find(v ir.InferenceVar) (ir.InferenceVar, varValue) {
	for {
		value, ok := t.vars.Get(v)
		if !ok {
			slgerr.Invariant(slgerr.UnboundVariable, "variable %s does not belong to this table", v)
		}
		if value.state != linked {
			return v, value
		}
		v = value.link
	}
}

// ProbeVar returns the value v is bound to, if any
func (t *Table) ProbeVar(v ir.InferenceVar) (ir.GenericArg, bool) {
	_, value := t.find(v)
	return value.value, value.state == bound
}

// UniverseOf returns the universe of the (root of) v
func (t *Table) UniverseOf(v ir.InferenceVar) ir.UniverseIndex {
	_, value := t.find(v)
	return value.universe
}

func (t *Table) setValue(v ir.InferenceVar, value varValue) {
	t.vars = t.vars.Set(v, value)
}

// NormalizeTyShallow returns the value ty is bound to, if ty is a bound inference variable
func (t *Table) NormalizeTyShallow(ty ir.Ty) (ir.Ty, bool) {
	if v, ok := ty.(ir.InferenceVarTy); ok {
		if value, isBound := t.ProbeVar(v.Var); isBound {
			return value.AssertTy(), true
		}
	}
	return ty, false
}

func (t *Table) normalizeLifetimeShallow(lt ir.Lifetime) ir.Lifetime {
	if v, ok := lt.(ir.InferenceVarLifetime); ok {
		if value, isBound := t.ProbeVar(v.Var); isBound {
			return value.AssertLifetime()
		}
	}
	return lt
}

func (t *Table) normalizeConstShallow(c ir.Const) ir.Const {
	if v, ok := c.Value.(ir.InferenceVarConst); ok {
		if value, isBound := t.ProbeVar(v.Var); isBound {
			return value.AssertConst()
		}
	}
	return c
}

// NormalizeDeep replaces every bound inference variable of value with what it is bound to,
// and every unbound one with the variable that stands for it
func NormalizeDeep[T ir.Term[T]](t *Table, value T) T {
	return value.FoldWith(deepNormalizer{table: t}, ir.Innermost)
}

type deepNormalizer struct {
	ir.NopFolder
	table *Table
}

func (n deepNormalizer) FoldInferenceVar(v ir.InferenceVar, kind ir.VarKind, _ ir.DebruijnIndex) (ir.GenericArg, bool) {
	root, value := n.table.find(v)
	if value.state == bound {
		// bound values never contain bound variables, so there is nothing to shift
		return value.value.FoldWith(n, ir.Innermost), true
	}
	return kind.InferenceVarArg(root), true
}
