package engine

import (
	"github.com/cottand/slg/infer"
	"github.com/cottand/slg/ir"
	"github.com/cottand/slg/slgerr"
)

// ResolventClause resolves goal, a selected literal of a table goal, against clause.
//
// Given the clause `forall<X..> { Consequence :- Conditions }`, the variables X are
// instantiated with fresh inference variables and Consequence is unified with goal.
// The resulting ExClause has subst (the table goal's substitution) as its substitution,
// and as subgoals the goals unification left over followed by the clause's Conditions.
//
// When goal does not unify with the consequence, the returned error wraps
// slgerr.ErrNoSolution and the inference table is left as it was.
func (t *TruncatingInferenceTable) ResolventClause(
	env ir.Environment,
	goal ir.DomainGoal,
	subst ir.Substitution,
	clause ir.ProgramClause,
) (ExClause, error) {
	snapshot := t.infer.Snapshot()
	implication := infer.InstantiateBindersExistentially(t.infer, clause.AsBinders())

	result, err := t.infer.UnifyDomainGoals(env, goal, implication.Consequence)
	if err != nil {
		t.infer.Rollback(snapshot)
		logger.Debug("clause does not apply", "goal", goal, "clause", clause)
		return ExClause{}, err
	}

	exClause := ExClause{
		Subst:       subst,
		Constraints: implication.Constraints,
	}
	intoExClause(result.Goals, result.Constraints, &exClause)
	for _, condition := range implication.Conditions {
		exClause.Subgoals = append(exClause.Subgoals, LiteralFor(env, condition))
	}
	logger.Debug("resolvent", "goal", goal, "clause", clause, "exClause", exClause)
	return exClause, nil
}

// ApplyAnswerSubst incorporates an answer to the selected subgoal of exClause.
//
// selectedGoal is the subgoal as it is in exClause's inference table, and
// answerTableGoal the goal of the table that was consulted, with its universes
// mapped back to those of the inference table. The two are the same up to the
// naming of their free variables. canonicalAnswerSubst is an answer of that table,
// mapped back through the same universe map with ir.MapFromCanonical: each of its
// values is unified with the corresponding free variable of selectedGoal.
// The answer's constraints and delayed subgoals carry over to exClause.
//
// If unification fails, the returned error wraps slgerr.ErrNoSolution and neither
// exClause nor the inference table are modified.
// If selectedGoal is not an instance of answerTableGoal the session is aborted.
func (t *TruncatingInferenceTable) ApplyAnswerSubst(
	exClause *ExClause,
	selectedGoal ir.InEnvironment[ir.Goal],
	answerTableGoal ir.Canonical[ir.InEnvironment[ir.Goal]],
	canonicalAnswerSubst ir.Canonical[ir.AnswerSubst],
) error {
	snapshot := t.infer.Snapshot()
	_, answer := infer.InstantiateCanonical(t.infer, canonicalAnswerSubst)

	selected := infer.Canonicalize(t.infer, selectedGoal)
	if len(selected.Quantified.Binders) != len(answerTableGoal.Binders) ||
		!ir.Equal(selected.Quantified.Value, answerTableGoal.Value) {
		slgerr.Invariant(slgerr.CanonicalMismatch, "selected goal %s is not an instance of table goal %s", selected.Quantified, answerTableGoal)
	}
	if len(answer.Subst) != len(selected.FreeVars) {
		slgerr.Invariant(slgerr.SubstLengthMismatch, "answer %s for goal %s", answer, answerTableGoal)
	}

	var goals []ir.InEnvironment[ir.Goal]
	var constraints []ir.InEnvironment[ir.Constraint]
	for i, freeVar := range selected.FreeVars {
		result, err := t.infer.Unify(selectedGoal.Environment, freeVar.ArgLike(answer.Subst[i]), answer.Subst[i])
		if err != nil {
			t.infer.Rollback(snapshot)
			logger.Debug("answer does not apply", "goal", selectedGoal, "answer", answer)
			return err
		}
		goals = append(goals, result.Goals...)
		constraints = append(constraints, result.Constraints...)
	}

	intoExClause(goals, constraints, exClause)
	exClause.Constraints = exClause.Constraints.Union(answer.Constraints...)
	exClause.DelayedSubgoals = append(exClause.DelayedSubgoals, answer.DelayedSubgoals...)
	return nil
}
