package engine

import (
	"github.com/cottand/slg/ir"
	"github.com/cottand/slg/util"
)

// SimplifyGoal breaks goal down into the literals of exClause: quantifiers are
// instantiated, implications extend the environment, conjunctions are flattened
// and equalities are unified on the spot.
// Goals are taken from a stack, so the subgoals of a conjunction end up in
// exClause in reverse order.
// The returned error wraps slgerr.ErrNoSolution when an equality cannot hold.
func SimplifyGoal(ops UnificationOps, goal ir.InEnvironment[ir.Goal], exClause *ExClause) error {
	pending := util.Stack[ir.InEnvironment[ir.Goal]]{}
	pending.Push(goal)
	for next, ok := pending.Pop(); ok; next, ok = pending.Pop() {
		env := next.Environment

		switch g := next.Goal.(type) {
		case ir.QuantifiedGoal:
			var body ir.Goal
			if g.Kind == ir.ForAll {
				body = ops.InstantiateBindersUniversally(g.AsBinders())
			} else {
				body = ops.InstantiateBindersExistentially(g.AsBinders())
			}
			pending.Push(ir.NewInEnvironment(env, body))
		case ir.ImpliesGoal:
			pending.Push(ir.NewInEnvironment(env.AddClauses(g.Clauses...), g.Goal))
		case ir.AllGoal:
			for _, sub := range g.Goals {
				pending.Push(ir.NewInEnvironment(env, sub))
			}
		case ir.NotGoal:
			exClause.Subgoals = append(exClause.Subgoals, NegativeLiteral(ir.NewInEnvironment(env, g.Goal)))
		case ir.EqGoal:
			if err := ops.UnifyGenericArgsIntoExClause(env, g.A, g.B, exClause); err != nil {
				return err
			}
		case ir.Holds:
			exClause.Subgoals = append(exClause.Subgoals, PositiveLiteral(next))
		case ir.CannotProve:
			exClause.Ambiguous = true
		}
	}
	return nil
}
