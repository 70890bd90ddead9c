package engine

import (
	"fmt"
	"strings"

	"github.com/cottand/slg/ir"
)

type Polarity uint8

const (
	Positive Polarity = iota
	Negative
)

// Literal is a subgoal of an ExClause: a goal to prove, or to refute when Negative
type Literal struct {
	Polarity Polarity
	Goal     ir.InEnvironment[ir.Goal]
}

func PositiveLiteral(goal ir.InEnvironment[ir.Goal]) Literal {
	return Literal{Polarity: Positive, Goal: goal}
}

func NegativeLiteral(goal ir.InEnvironment[ir.Goal]) Literal {
	return Literal{Polarity: Negative, Goal: goal}
}

// LiteralFor turns a clause condition into a literal, unwrapping negations
func LiteralFor(env ir.Environment, goal ir.Goal) Literal {
	if not, ok := goal.(ir.NotGoal); ok {
		return NegativeLiteral(ir.NewInEnvironment(env, not.Goal))
	}
	return PositiveLiteral(ir.NewInEnvironment(env, goal))
}

func (l Literal) String() string {
	if l.Polarity == Negative {
		return fmt.Sprintf("Negative(%s)", l.Goal)
	}
	return fmt.Sprintf("Positive(%s)", l.Goal)
}

func (l Literal) FoldWith(f ir.Folder, outer ir.DebruijnIndex) Literal {
	return Literal{Polarity: l.Polarity, Goal: l.Goal.FoldWith(f, outer)}
}

func (l Literal) VisitWith(v ir.Visitor, outer ir.DebruijnIndex) { l.Goal.VisitWith(v, outer) }

// TimeStamp orders events in the life of a table
type TimeStamp uint64

// FlounderedSubgoal is a negative literal that could not be selected
// because it still had free variables when it was attempted
type FlounderedSubgoal struct {
	Literal        Literal
	FlounderedTime TimeStamp
}

func (f FlounderedSubgoal) String() string {
	return fmt.Sprintf("%s@%d", f.Literal, f.FlounderedTime)
}

// ExClause is a partial derivation of a table's goal: the substitution for the goal's
// variables found so far, under Constraints, and the Subgoals left to prove
// for it to become an answer.
type ExClause struct {
	Subst ir.Substitution

	// Ambiguous is set when some step could not decide and the answer can only be "maybe"
	Ambiguous   bool
	Constraints ir.Constraints

	// Subgoals are the literals left to prove. Their order only matters
	// to NextSubgoalIndex.
	Subgoals []Literal

	// DelayedSubgoals were postponed because answering them needed an answer that
	// was not available yet
	DelayedSubgoals []ir.InEnvironment[ir.Goal]

	// AnswerTime is the number of answers of the selected subgoal's table this
	// ExClause had seen when it was last resumed
	AnswerTime TimeStamp

	FlounderedSubgoals []FlounderedSubgoal
}

func (e ExClause) String() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("ExClause(%s", e.Subst))
	if e.Ambiguous {
		sb.WriteString(" ambiguous")
	}
	if len(e.Constraints) > 0 {
		sb.WriteString(fmt.Sprintf(" where %s", e.Constraints))
	}
	sb.WriteString(" :- ")
	for i, subgoal := range e.Subgoals {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(subgoal.String())
	}
	if len(e.DelayedSubgoals) > 0 {
		sb.WriteString(" delayed ")
		for i, goal := range e.DelayedSubgoals {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(goal.String())
		}
	}
	if len(e.FlounderedSubgoals) > 0 {
		sb.WriteString(" floundered ")
		for i, floundered := range e.FlounderedSubgoals {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(floundered.String())
		}
	}
	sb.WriteString(fmt.Sprintf(" @%d)", e.AnswerTime))
	return sb.String()
}

func (e ExClause) FoldWith(f ir.Folder, outer ir.DebruijnIndex) ExClause {
	folded := ExClause{
		Subst:       e.Subst.FoldWith(f, outer),
		Ambiguous:   e.Ambiguous,
		Constraints: e.Constraints.FoldWith(f, outer),
		AnswerTime:  e.AnswerTime,
	}
	for _, subgoal := range e.Subgoals {
		folded.Subgoals = append(folded.Subgoals, subgoal.FoldWith(f, outer))
	}
	for _, goal := range e.DelayedSubgoals {
		folded.DelayedSubgoals = append(folded.DelayedSubgoals, goal.FoldWith(f, outer))
	}
	for _, floundered := range e.FlounderedSubgoals {
		folded.FlounderedSubgoals = append(folded.FlounderedSubgoals, FlounderedSubgoal{
			Literal:        floundered.Literal.FoldWith(f, outer),
			FlounderedTime: floundered.FlounderedTime,
		})
	}
	return folded
}

func (e ExClause) VisitWith(v ir.Visitor, outer ir.DebruijnIndex) {
	e.Subst.VisitWith(v, outer)
	e.Constraints.VisitWith(v, outer)
	for _, subgoal := range e.Subgoals {
		subgoal.VisitWith(v, outer)
	}
	for _, goal := range e.DelayedSubgoals {
		goal.VisitWith(v, outer)
	}
	for _, floundered := range e.FlounderedSubgoals {
		floundered.Literal.VisitWith(v, outer)
	}
}

// intoExClause adds what unification left unsettled to exClause
func intoExClause(goals []ir.InEnvironment[ir.Goal], constraints []ir.InEnvironment[ir.Constraint], exClause *ExClause) {
	for _, goal := range goals {
		exClause.Subgoals = append(exClause.Subgoals, PositiveLiteral(goal))
	}
	exClause.Constraints = exClause.Constraints.Union(constraints...)
}
