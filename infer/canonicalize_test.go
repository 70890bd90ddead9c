package infer_test

import (
	"testing"

	"github.com/cottand/slg/infer"
	"github.com/cottand/slg/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func implemented(trait ir.ItemID, tys ...ir.Ty) ir.InEnvironment[ir.Goal] {
	return ir.NewInEnvironment[ir.Goal](env, ir.ImplementedGoal(trait, ir.TyArgs(tys...)...))
}

func TestCanonicalizeNumbersVariablesInOrder(t *testing.T) {
	table := infer.New()
	a, b := tyVar(table), tyVar(table)

	canonicalized := infer.Canonicalize(table, implemented(1, b, a, b))

	require.Len(t, canonicalized.FreeVars, 2)
	assert.Equal(t, b.Var, canonicalized.FreeVars[0].Var)
	assert.Equal(t, a.Var, canonicalized.FreeVars[1].Var)
	expected := implemented(1,
		ir.BoundVarTy{Var: ir.NewBoundVar(0, 0)},
		ir.BoundVarTy{Var: ir.NewBoundVar(0, 1)},
		ir.BoundVarTy{Var: ir.NewBoundVar(0, 0)},
	)
	assert.Equal(t, expected.String(), canonicalized.Quantified.Value.String())
}

func TestCanonicalizeFollowsBindings(t *testing.T) {
	table := infer.New()
	a, b := tyVar(table), tyVar(table)
	_, err := table.Unify(env, ir.TyArg(a), ir.TyArg(ir.Adt(3, ir.TyArg(b))))
	require.NoError(t, err)

	canonicalized := infer.Canonicalize(table, implemented(1, a))

	require.Len(t, canonicalized.FreeVars, 1)
	assert.Equal(t, b.Var, canonicalized.FreeVars[0].Var)
	expected := implemented(1, ir.Adt(3, ir.TyArg(ir.BoundVarTy{Var: ir.NewBoundVar(0, 0)})))
	assert.Equal(t, expected.String(), canonicalized.Quantified.Value.String())
}

func TestCanonicalizeUnderBinder(t *testing.T) {
	table := infer.New()
	v := tyVar(table)
	goal := ir.NewInEnvironment[ir.Goal](env, ir.QuantifiedGoal{
		Kind:    ir.ForAll,
		Binders: []ir.VarKind{ir.TyVarKind()},
		Body:    ir.ImplementedGoal(1, ir.TyArg(ir.BoundVarTy{Var: ir.NewBoundVar(0, 0)}), ir.TyArg(v)),
	})

	canonicalized := infer.Canonicalize(table, goal)

	expected := ir.NewInEnvironment[ir.Goal](env, ir.QuantifiedGoal{
		Kind:    ir.ForAll,
		Binders: []ir.VarKind{ir.TyVarKind()},
		Body: ir.ImplementedGoal(1,
			ir.TyArg(ir.BoundVarTy{Var: ir.NewBoundVar(0, 0)}),
			ir.TyArg(ir.BoundVarTy{Var: ir.NewBoundVar(1, 0)}),
		),
	})
	assert.Equal(t, expected.String(), canonicalized.Quantified.Value.String())
}

func TestCanonicalStability(t *testing.T) {
	// the same goal, built with different variables in different universes
	first := infer.New()
	first.NewUniverse()
	firstGoal := implemented(1, ir.InferenceVarTy{Var: first.NewVariable(ir.KindTy, first.MaxUniverse())}, u32)

	second := infer.New()
	tyVar(second)
	second.NewUniverse()
	second.NewUniverse()
	secondGoal := implemented(1, ir.InferenceVarTy{Var: second.NewVariable(ir.KindTy, second.MaxUniverse())}, u32)

	a := infer.UCanonicalize(infer.Canonicalize(first, firstGoal).Quantified)
	b := infer.UCanonicalize(infer.Canonicalize(second, secondGoal).Quantified)

	assert.Equal(t, a.Quantified.Key(), b.Quantified.Key())
	assert.Equal(t, 2, a.Quantified.Universes)
	assert.Equal(t, []ir.UniverseIndex{0, 1}, a.Universes.Universes)
	assert.Equal(t, []ir.UniverseIndex{0, 2}, b.Universes.Universes)
}

func TestUCanonicalizeCompactsUniverses(t *testing.T) {
	table := infer.New()
	table.NewUniverse()
	table.NewUniverse()
	u3 := table.NewUniverse()
	placeholder := ir.PlaceholderTy{Index: ir.PlaceholderIndex{Universe: u3, Index: 0}}

	canonical := infer.Canonicalize(table, implemented(1, placeholder)).Quantified
	ucanonical := infer.UCanonicalize(canonical)

	assert.Equal(t, 2, ucanonical.Quantified.Universes)
	expected := implemented(1, ir.PlaceholderTy{Index: ir.PlaceholderIndex{Universe: 1, Index: 0}})
	assert.Equal(t, expected.String(), ucanonical.Quantified.Canonical.Value.String())

	back := ir.MapFromCanonical(ucanonical.Universes, ucanonical.Quantified.Canonical)
	assert.Equal(t, canonical.String(), back.String())
}

func TestFromCanonicalRoundTrip(t *testing.T) {
	table := infer.New()
	a, b := tyVar(table), tyVar(table)
	canonical := infer.Canonicalize(table, implemented(1, a, ir.Adt(2, ir.TyArg(b)))).Quantified

	fresh, subst, goal := infer.FromCanonical(1, canonical)

	assert.Len(t, subst, 2)
	assert.Equal(t, 2, fresh.NumVariables())
	again := infer.Canonicalize(fresh, goal).Quantified
	assert.Equal(t, canonical.String(), again.String())
}

func TestFreeVarArgLike(t *testing.T) {
	table := infer.New()
	v := table.NewVariable(ir.KindConst, ir.RootUniverse)
	fv := infer.FreeVar{Var: v, Kind: ir.KindConst}

	arg := fv.ArgLike(ir.ConstArg(ir.ConcreteConstOf(u32, 1)))

	assert.Equal(t, ir.ConstArg(ir.Const{Ty: u32, Value: ir.InferenceVarConst{Var: v}}).String(), arg.String())
}

func TestNeedsTruncation(t *testing.T) {
	table := infer.New()
	nested := ir.Ty(u32)
	for range 4 {
		nested = ir.Adt(1, ir.TyArg(nested))
	}
	goal := implemented(1, nested)

	assert.True(t, infer.NeedsTruncation(table, 3, goal))
	assert.False(t, infer.NeedsTruncation(table, 10, goal))
	assert.False(t, infer.NeedsTruncation(table, 5, goal))
}

func TestNeedsTruncationLooksThroughBindings(t *testing.T) {
	table := infer.New()
	v := tyVar(table)
	_, err := table.Unify(env, ir.TyArg(v), ir.TyArg(ir.Adt(1, ir.TyArg(ir.Adt(1, ir.TyArg(u32))))))
	require.NoError(t, err)

	assert.True(t, infer.NeedsTruncation(table, 3, implemented(1, ir.Adt(1, ir.TyArg(v)))))
	assert.False(t, infer.NeedsTruncation(table, 3, implemented(1, v)))
}

func TestNeedsTruncationMeasuresEachTypeOnItsOwn(t *testing.T) {
	table := infer.New()
	pair := ir.Adt(1, ir.TyArg(u32))

	// three types of size 2 do not add up
	assert.False(t, infer.NeedsTruncation(table, 2, implemented(1, pair, pair, pair)))
}

func TestInvert(t *testing.T) {
	table := infer.New()
	binders := ir.NewBinders[ir.Goal]([]ir.VarKind{ir.TyVarKind()}, ir.ImplementedGoal(1, ir.TyArg(ir.BoundVarTy{Var: ir.NewBoundVar(0, 0)})))
	goal := ir.NewInEnvironment(env, infer.InstantiateBindersUniversally(table, binders))

	inverted, ok := infer.Invert(table, goal)

	require.True(t, ok)
	canonicalized := infer.Canonicalize(table, inverted)
	assert.Len(t, canonicalized.FreeVars, 1)
}

func TestInvertRefusesFreeVariables(t *testing.T) {
	table := infer.New()

	_, ok := infer.Invert(table, implemented(1, tyVar(table)))

	assert.False(t, ok)
}

func TestInvertAcceptsBoundVariables(t *testing.T) {
	table := infer.New()
	v := tyVar(table)
	_, err := table.Unify(env, ir.TyArg(v), ir.TyArg(u32))
	require.NoError(t, err)

	inverted, ok := infer.Invert(table, implemented(1, v))

	require.True(t, ok)
	assert.Equal(t, implemented(1, u32).String(), inverted.String())
}
