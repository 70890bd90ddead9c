package engine

import (
	"github.com/cottand/slg/infer"
	"github.com/cottand/slg/ir"
	"github.com/cottand/slg/slgerr"
)

// DefaultMaxSize is the size above which goals and answers are truncated,
// when no other is configured
const DefaultMaxSize = 10

// Program is the source of the program clauses a goal can be resolved against
type Program interface {
	// ProgramClausesFor returns the clauses whose consequence may unify with goal,
	// including the hypotheses of env
	ProgramClausesFor(env ir.Environment, goal ir.DomainGoal) []ir.ProgramClause

	// IsCoinductive reports whether cycles are accepted as proofs of goal
	IsCoinductive(goal ir.DomainGoal) bool
}

// ContextOps is the configuration of a solve session: the program to solve against
// and the limits that keep the session finite
type ContextOps struct {
	program         Program
	maxSize         int
	expectedAnswers *int
}

// NewContextOps configures a session. A maxSize of 0 or less uses DefaultMaxSize.
// expectedAnswers, when not nil, caps how many answers the session needs.
func NewContextOps(program Program, maxSize int, expectedAnswers *int) *ContextOps {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &ContextOps{program: program, maxSize: maxSize, expectedAnswers: expectedAnswers}
}

func (c *ContextOps) Program() Program { return c.program }

func (c *ContextOps) MaxSize() int { return c.maxSize }

// ExpectedAnswers returns the answer cap, if there is one
func (c *ContextOps) ExpectedAnswers() (int, bool) {
	if c.expectedAnswers == nil {
		return 0, false
	}
	return *c.expectedAnswers, true
}

// AnswerCapReached reports whether found answers are as many as the session needs
func (c *ContextOps) AnswerCapReached(found int) bool {
	expected, ok := c.ExpectedAnswers()
	return ok && found >= expected
}

// IdentityConstrainedSubst is the answer to goal that binds each of its variables
// to itself, under no constraints
func (c *ContextOps) IdentityConstrainedSubst(goal ir.UCanonical[ir.InEnvironment[ir.Goal]]) ir.Canonical[ir.ConstrainedSubst] {
	binders := goal.Canonical.Binders
	return ir.Canonical[ir.ConstrainedSubst]{
		Binders: binders,
		Value:   ir.ConstrainedSubst{Subst: ir.IdentitySubstitution(binders)},
	}
}

// NewInferenceTable instantiates goal in a fresh inference table.
// It returns the table, the substitution from the slots of goal to the new
// variables, and the instantiated goal.
func (c *ContextOps) NewInferenceTable(
	goal ir.UCanonical[ir.InEnvironment[ir.Goal]],
) (*TruncatingInferenceTable, ir.Substitution, ir.InEnvironment[ir.Goal]) {
	table, subst, value := infer.FromCanonical(goal.Universes, goal.Canonical)
	return NewTruncatingInferenceTable(c.maxSize, table), subst, value
}

// ProgramClauses returns the clauses goal may be resolved against in env
func (c *ContextOps) ProgramClauses(env ir.Environment, goal ir.DomainGoal) []ir.ProgramClause {
	return c.program.ProgramClausesFor(env, goal)
}

// NextSubgoalIndex picks the subgoal of exClause to work on next: the last one.
// exClause must have subgoals.
func NextSubgoalIndex(exClause ExClause) int {
	if len(exClause.Subgoals) == 0 {
		slgerr.Invariant(slgerr.EmptyExClause, "no subgoal to select in %s", exClause)
	}
	return len(exClause.Subgoals) - 1
}

// GetOrCreateTable returns the index of the table for goal, creating it if needed.
//
// A new table starts with one strand per way of starting to prove goal: for a
// domain goal, one per program clause whose consequence unifies with it;
// otherwise a single strand whose subgoals are the parts goal simplifies to.
func (c *ContextOps) GetOrCreateTable(tables *Tables, goal ir.UCanonical[ir.InEnvironment[ir.Goal]]) TableIndex {
	if index, ok := tables.IndexOf(goal); ok {
		return index
	}

	inferTable, subst, envGoal := c.NewInferenceTable(goal)
	coinductive := false
	if holds, ok := envGoal.Goal.(ir.Holds); ok {
		coinductive = c.program.IsCoinductive(holds.Domain)
	}
	table := NewTable(goal, coinductive)

	if holds, ok := envGoal.Goal.(ir.Holds); ok {
		env := envGoal.Environment
		for _, clause := range c.ProgramClauses(env, holds.Domain) {
			strandInfer := inferTable.Clone()
			exClause, err := strandInfer.ResolventClause(env, holds.Domain, subst, clause)
			if err != nil {
				continue
			}
			table.EnqueueStrand(Suspend(Strand{Infer: strandInfer, ExClause: exClause}))
		}
	} else {
		exClause := ExClause{Subst: subst}
		if err := SimplifyGoal(inferTable, envGoal, &exClause); err == nil {
			table.EnqueueStrand(Suspend(Strand{Infer: inferTable, ExClause: exClause}))
		}
	}

	index := tables.Insert(table)
	logger.Debug("created table", "index", index, "strands", table.NumStrands(), "coinductive", coinductive)
	return index
}
