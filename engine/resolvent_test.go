package engine_test

import (
	"testing"

	"github.com/cottand/slg/engine"
	"github.com/cottand/slg/infer"
	"github.com/cottand/slg/ir"
	"github.com/cottand/slg/slgerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolventClause(t *testing.T) {
	table := newTable()
	subst := ir.TyArgs(u32)

	exClause, err := table.ResolventClause(env, clone(vec(u32)), subst, vecClone)

	require.NoError(t, err)
	assert.Equal(t, subst, exClause.Subst)
	require.Len(t, exClause.Subgoals, 1)
	assert.Equal(t, engine.Positive, exClause.Subgoals[0].Polarity)
	subgoal := infer.NormalizeDeep(table.Infer(), exClause.Subgoals[0].Goal)
	assert.Equal(t, inEnv(ir.Holds{Domain: clone(u32)}).String(), subgoal.String())
}

func TestResolventClauseDoesNotApply(t *testing.T) {
	table := newTable()
	before := table.Infer().NumVariables()

	_, err := table.ResolventClause(env, clone(ir.Str()), nil, vecClone)

	assert.ErrorIs(t, err, slgerr.ErrNoSolution)
	assert.Equal(t, before, table.Infer().NumVariables())
}

func TestResolventClauseKeepsBindingsOfTheGoal(t *testing.T) {
	table := newTable()
	v := tyVar(table.Infer())

	exClause, err := table.ResolventClause(env, clone(v), ir.TyArgs(v), vecClone)

	require.NoError(t, err)
	value, ok := table.Infer().ProbeVar(v.Var)
	require.True(t, ok)
	_, isAdt := value.AssertTy().(ir.ApplyTy)
	assert.True(t, isAdt)
	assert.Len(t, exClause.Subgoals, 1)
}

func TestResolventClauseConditions(t *testing.T) {
	table := newTable()
	send := ir.Implemented{Trait: ir.TraitRef{TraitID: sendTrait, Subst: ir.TyArgs(bound(0))}}
	clause := ir.ProgramClause{
		Binders: []ir.VarKind{ir.TyVarKind()},
		Implication: ir.ProgramClauseImplication{
			Consequence: ir.AliasEq{Alias: ir.Projection(itemAlias, ir.TyArg(vec(bound(0)))), Ty: bound(0)},
			Conditions: []ir.Goal{
				ir.Holds{Domain: clone(bound(0))},
				ir.NotGoal{Goal: ir.Holds{Domain: send}},
			},
			Constraints: ir.NewConstraints(ir.NewInEnvironment[ir.Constraint](env, ir.TypeOutlives{Ty: bound(0), Lifetime: ir.StaticLifetime{}})),
		},
	}
	goal := ir.AliasEq{Alias: ir.Projection(itemAlias, ir.TyArg(vec(u32))), Ty: u32}

	exClause, err := table.ResolventClause(env, goal, nil, clause)

	require.NoError(t, err)
	require.Len(t, exClause.Subgoals, 2)
	assert.Equal(t, engine.Positive, exClause.Subgoals[0].Polarity)
	assert.Equal(t, engine.Negative, exClause.Subgoals[1].Polarity)
	assert.Equal(t, ir.Holds{Domain: ir.Implemented{Trait: ir.TraitRef{TraitID: sendTrait, Subst: ir.TyArgs(u32)}}}.String(),
		infer.NormalizeDeep(table.Infer(), exClause.Subgoals[1].Goal.Goal).String())
	assert.Len(t, exClause.Constraints, 1)
}

func TestApplyAnswerSubst(t *testing.T) {
	table := newTable()
	v := tyVar(table.Infer())
	selected := inEnv(ir.Holds{Domain: clone(v)})
	tableGoal := infer.Canonicalize(table.Infer(), selected).Quantified

	existing := ir.NewInEnvironment[ir.Constraint](env, ir.LifetimeOutlives{A: ir.StaticLifetime{}, B: ir.ErasedLifetime{}})
	added := ir.NewInEnvironment[ir.Constraint](env, ir.LifetimeOutlives{A: ir.ErasedLifetime{}, B: ir.StaticLifetime{}})
	delayed := inEnv(ir.Holds{Domain: clone(boolTy)})
	answer := ir.Canonical[ir.AnswerSubst]{
		Value: ir.AnswerSubst{
			Subst:           ir.TyArgs(u32),
			Constraints:     ir.NewConstraints(existing, added),
			DelayedSubgoals: []ir.InEnvironment[ir.Goal]{delayed},
		},
	}
	exClause := engine.ExClause{
		Constraints: ir.NewConstraints(existing),
		Subgoals:    []engine.Literal{engine.PositiveLiteral(inEnv(ir.Holds{Domain: clone(boolTy)}))},
	}

	err := table.ApplyAnswerSubst(&exClause, selected, tableGoal, answer)

	require.NoError(t, err)
	value, ok := table.Infer().ProbeVar(v.Var)
	require.True(t, ok)
	assert.Equal(t, u32.String(), value.String())
	assert.Len(t, exClause.Constraints, 2)
	assert.Len(t, exClause.Subgoals, 1)
	require.Len(t, exClause.DelayedSubgoals, 1)
	assert.Equal(t, delayed.String(), exClause.DelayedSubgoals[0].String())
}

func TestApplyAnswerSubstWithAnswerVariables(t *testing.T) {
	table := newTable()
	v := tyVar(table.Infer())
	selected := inEnv(ir.Holds{Domain: clone(v)})
	tableGoal := infer.Canonicalize(table.Infer(), selected).Quantified
	// the answer Vec<^0>: the table found that any vector works
	answer := ir.Canonical[ir.AnswerSubst]{
		Binders: []ir.CanonicalVarKind{{VarKind: ir.TyVarKind()}},
		Value:   ir.AnswerSubst{Subst: ir.TyArgs(vec(bound(0)))},
	}
	exClause := engine.ExClause{}

	err := table.ApplyAnswerSubst(&exClause, selected, tableGoal, answer)

	require.NoError(t, err)
	canonical := infer.Canonicalize(table.Infer(), selected).Quantified
	assert.Equal(t, inEnv(ir.Holds{Domain: clone(vec(bound(0)))}).String(), canonical.Value.String())
}

func TestApplyAnswerSubstFailureLeavesExClause(t *testing.T) {
	table := newTable()
	v := tyVar(table.Infer())
	selected := inEnv(ir.Holds{Domain: clone(v)})
	tableGoal := infer.Canonicalize(table.Infer(), selected).Quantified
	// v cannot name a placeholder of a universe created after it
	placeholder := ir.PlaceholderTy{Index: ir.PlaceholderIndex{Universe: table.Infer().NewUniverse(), Index: 0}}
	answer := ir.Canonical[ir.AnswerSubst]{
		Binders: []ir.CanonicalVarKind{{VarKind: ir.TyVarKind()}},
		Value: ir.AnswerSubst{
			Subst:           ir.TyArgs(ir.Tuple(bound(0), placeholder)),
			DelayedSubgoals: []ir.InEnvironment[ir.Goal]{inEnv(ir.Holds{Domain: clone(u32)})},
		},
	}
	exClause := engine.ExClause{Subgoals: []engine.Literal{engine.PositiveLiteral(inEnv(ir.Holds{Domain: clone(boolTy)}))}}
	before := table.Infer().NumVariables()

	err := table.ApplyAnswerSubst(&exClause, selected, tableGoal, answer)

	assert.ErrorIs(t, err, slgerr.ErrNoSolution)
	assert.Len(t, exClause.Subgoals, 1)
	assert.Empty(t, exClause.DelayedSubgoals)
	_, ok := table.Infer().ProbeVar(v.Var)
	assert.False(t, ok)
	assert.Equal(t, before, table.Infer().NumVariables())
}

func TestApplyAnswerSubstToAnotherGoal(t *testing.T) {
	table := newTable()
	v := tyVar(table.Infer())
	selected := inEnv(ir.Holds{Domain: clone(v)})
	other := ir.Implemented{Trait: ir.TraitRef{TraitID: sendTrait, Subst: ir.TyArgs(v)}}
	tableGoal := infer.Canonicalize(table.Infer(), inEnv(ir.Holds{Domain: other})).Quantified
	answer := ir.Canonical[ir.AnswerSubst]{Value: ir.AnswerSubst{Subst: ir.TyArgs(u32)}}
	exClause := engine.ExClause{}

	var err error
	func() {
		defer slgerr.Abort(&err)
		_ = table.ApplyAnswerSubst(&exClause, selected, tableGoal, answer)
	}()

	var violation *slgerr.InvariantViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, slgerr.CanonicalMismatch, violation.Code)
}

func TestApplyAnswerSubstThroughUniverseMap(t *testing.T) {
	table := newTable()
	table.Infer().NewUniverse()
	universe := table.Infer().NewUniverse()
	v := ir.InferenceVarTy{Var: table.Infer().NewVariable(ir.KindTy, universe)}
	selected := inEnv(ir.Holds{Domain: clone(v)})

	// the table is keyed with universes renumbered, so U2 is its U1
	ucanonical := infer.UCanonicalize(infer.Canonicalize(table.Infer(), selected).Quantified)
	require.Equal(t, 2, ucanonical.Quantified.Universes)
	tableAnswer := ir.Canonical[ir.AnswerSubst]{Value: ir.AnswerSubst{
		Subst: ir.TyArgs(ir.PlaceholderTy{Index: ir.PlaceholderIndex{Universe: 1, Index: 0}}),
	}}

	tableGoal := ir.MapFromCanonical(ucanonical.Universes, ucanonical.Quantified.Canonical)
	answer := ir.MapFromCanonical(ucanonical.Universes, tableAnswer)
	exClause := engine.ExClause{}

	err := table.ApplyAnswerSubst(&exClause, selected, tableGoal, answer)

	require.NoError(t, err)
	value, ok := table.Infer().ProbeVar(v.Var)
	require.True(t, ok)
	expected := ir.PlaceholderTy{Index: ir.PlaceholderIndex{Universe: universe, Index: 0}}
	assert.Equal(t, expected.String(), value.String())
}
