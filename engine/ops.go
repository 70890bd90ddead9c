// Package engine holds the parts of an SLG resolution engine that sit between the
// solver loop and the term model: how strands resolve against program clauses and
// cached answers, how goals are canonicalized into table keys, when an answer
// invalidates a cached one, and the registry of tables.
//
// Table, ExClause and inference-table values are not safe for concurrent use:
// a solve session owns them.
package engine

import (
	"fmt"

	"github.com/cottand/slg/infer"
	"github.com/cottand/slg/internal/log"
	"github.com/cottand/slg/ir"
)

var logger = log.DefaultLogger.With("section", "engine")

// TruncateOps decides when goals and answers are too large to be tabled as they are
type TruncateOps interface {
	GoalNeedsTruncation(subgoal ir.InEnvironment[ir.Goal]) bool
	AnswerNeedsTruncation(subst ir.Substitution) bool
}

// ResolventOps computes resolvents: the ExClauses left after resolving a goal against
// a program clause, or a selected subgoal against a cached answer
type ResolventOps interface {
	ResolventClause(env ir.Environment, goal ir.DomainGoal, subst ir.Substitution, clause ir.ProgramClause) (ExClause, error)
	ApplyAnswerSubst(
		exClause *ExClause,
		selectedGoal ir.InEnvironment[ir.Goal],
		answerTableGoal ir.Canonical[ir.InEnvironment[ir.Goal]],
		canonicalAnswerSubst ir.Canonical[ir.AnswerSubst],
	) error
}

// UnificationOps is the part of an inference table the engine uses
type UnificationOps interface {
	InstantiateBindersUniversally(arg ir.Binders[ir.Goal]) ir.Goal
	InstantiateBindersExistentially(arg ir.Binders[ir.Goal]) ir.Goal

	// DebugExClause renders exClause with its variables resolved
	DebugExClause(exClause ExClause) fmt.Stringer

	FullyCanonicalizeGoal(value ir.InEnvironment[ir.Goal]) (ir.UCanonical[ir.InEnvironment[ir.Goal]], ir.UniverseMap)
	CanonicalizeExClause(value ExClause) ir.Canonical[ExClause]
	CanonicalizeConstrainedSubst(subst ir.Substitution, constraints []ir.InEnvironment[ir.Constraint]) ir.Canonical[ir.ConstrainedSubst]
	CanonicalizeAnswerSubst(
		subst ir.Substitution,
		constraints []ir.InEnvironment[ir.Constraint],
		delayedSubgoals []ir.InEnvironment[ir.Goal],
	) ir.Canonical[ir.AnswerSubst]

	// InvertGoal prepares value for negation. It returns false when value cannot
	// be inverted because it still has free existential variables.
	InvertGoal(value ir.InEnvironment[ir.Goal]) (ir.InEnvironment[ir.Goal], bool)

	// UnifyGenericArgsIntoExClause unifies a and b and adds the goals and
	// constraints left over to exClause. On error, neither exClause nor the
	// inference table are modified.
	UnifyGenericArgsIntoExClause(env ir.Environment, a, b ir.GenericArg, exClause *ExClause) error
}

var (
	_ TruncateOps    = (*TruncatingInferenceTable)(nil)
	_ ResolventOps   = (*TruncatingInferenceTable)(nil)
	_ UnificationOps = (*TruncatingInferenceTable)(nil)
)

// TruncatingInferenceTable is the inference table of a strand, along with the
// size above which its goals and answers need truncating
type TruncatingInferenceTable struct {
	maxSize int
	infer   *infer.Table
}

func NewTruncatingInferenceTable(maxSize int, table *infer.Table) *TruncatingInferenceTable {
	return &TruncatingInferenceTable{maxSize: maxSize, infer: table}
}

// Infer is the underlying inference table
func (t *TruncatingInferenceTable) Infer() *infer.Table { return t.infer }

func (t *TruncatingInferenceTable) MaxSize() int { return t.maxSize }

// Clone returns an independent copy of t, for forking a strand
func (t *TruncatingInferenceTable) Clone() *TruncatingInferenceTable {
	return &TruncatingInferenceTable{maxSize: t.maxSize, infer: t.infer.Clone()}
}

func (t *TruncatingInferenceTable) GoalNeedsTruncation(subgoal ir.InEnvironment[ir.Goal]) bool {
	return infer.NeedsTruncation(t.infer, t.maxSize, subgoal)
}

func (t *TruncatingInferenceTable) AnswerNeedsTruncation(subst ir.Substitution) bool {
	return infer.NeedsTruncation(t.infer, t.maxSize, subst)
}

func (t *TruncatingInferenceTable) InstantiateBindersUniversally(arg ir.Binders[ir.Goal]) ir.Goal {
	return infer.InstantiateBindersUniversally(t.infer, arg)
}

func (t *TruncatingInferenceTable) InstantiateBindersExistentially(arg ir.Binders[ir.Goal]) ir.Goal {
	return infer.InstantiateBindersExistentially(t.infer, arg)
}

func (t *TruncatingInferenceTable) DebugExClause(exClause ExClause) fmt.Stringer {
	return infer.NormalizeDeep(t.infer, exClause)
}

func (t *TruncatingInferenceTable) FullyCanonicalizeGoal(value ir.InEnvironment[ir.Goal]) (ir.UCanonical[ir.InEnvironment[ir.Goal]], ir.UniverseMap) {
	canonicalized := infer.Canonicalize(t.infer, value)
	ucanonicalized := infer.UCanonicalize(canonicalized.Quantified)
	return ucanonicalized.Quantified, ucanonicalized.Universes
}

func (t *TruncatingInferenceTable) CanonicalizeExClause(value ExClause) ir.Canonical[ExClause] {
	return infer.Canonicalize(t.infer, value).Quantified
}

func (t *TruncatingInferenceTable) CanonicalizeConstrainedSubst(
	subst ir.Substitution,
	constraints []ir.InEnvironment[ir.Constraint],
) ir.Canonical[ir.ConstrainedSubst] {
	value := ir.ConstrainedSubst{Subst: subst, Constraints: ir.NewConstraints(constraints...)}
	return infer.Canonicalize(t.infer, value).Quantified
}

func (t *TruncatingInferenceTable) CanonicalizeAnswerSubst(
	subst ir.Substitution,
	constraints []ir.InEnvironment[ir.Constraint],
	delayedSubgoals []ir.InEnvironment[ir.Goal],
) ir.Canonical[ir.AnswerSubst] {
	value := ir.AnswerSubst{
		Subst:           subst,
		Constraints:     ir.NewConstraints(constraints...),
		DelayedSubgoals: delayedSubgoals,
	}
	return infer.Canonicalize(t.infer, value).Quantified
}

func (t *TruncatingInferenceTable) InvertGoal(value ir.InEnvironment[ir.Goal]) (ir.InEnvironment[ir.Goal], bool) {
	return infer.Invert(t.infer, value)
}

func (t *TruncatingInferenceTable) UnifyGenericArgsIntoExClause(env ir.Environment, a, b ir.GenericArg, exClause *ExClause) error {
	result, err := t.infer.Unify(env, a, b)
	if err != nil {
		return err
	}
	intoExClause(result.Goals, result.Constraints, exClause)
	return nil
}
