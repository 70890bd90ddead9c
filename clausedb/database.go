// Package clausedb is an in-memory program: a set of program clauses indexed by
// the item their consequence is about.
package clausedb

import (
	"github.com/cottand/slg/engine"
	"github.com/cottand/slg/internal/log"
	"github.com/cottand/slg/ir"
	"github.com/hashicorp/go-set/v3"
)

var logger = log.DefaultLogger.With("section", "clausedb")

var _ engine.Program = &Database{}

type headKind uint8

const (
	headTrait headKind = iota
	headAlias
)

// head is what a domain goal is about. Only clauses with the same head
// as a goal can resolve it.
type head struct {
	kind headKind
	id   ir.ItemID
}

func headOf(goal ir.DomainGoal) head {
	switch goal := goal.(type) {
	case ir.Implemented:
		return head{kind: headTrait, id: goal.Trait.TraitID}
	case ir.AliasEq:
		return head{kind: headAlias, id: goal.Alias.ID}
	}
	panic("unknown domain goal " + goal.String())
}

// Database holds the clauses of a program.
// It is not safe to add clauses while goals are being solved against it.
type Database struct {
	clauses     map[head][]ir.ProgramClause
	coinductive *set.Set[ir.ItemID]
}

func New() *Database {
	return &Database{
		clauses:     make(map[head][]ir.ProgramClause),
		coinductive: set.New[ir.ItemID](0),
	}
}

// AddClause adds clauses to the program, after those already in it
func (d *Database) AddClause(clauses ...ir.ProgramClause) *Database {
	for _, clause := range clauses {
		h := headOf(clause.Implication.Consequence)
		d.clauses[h] = append(d.clauses[h], clause)
	}
	return d
}

// AddFact adds the clause `forall<binders> { goal }`
func (d *Database) AddFact(goal ir.DomainGoal, binders ...ir.VarKind) *Database {
	return d.AddClause(ir.ProgramClause{
		Binders:     binders,
		Implication: ir.ProgramClauseImplication{Consequence: goal},
	})
}

// MarkCoinductive makes goals about trait accept cycles as proofs, like auto traits
func (d *Database) MarkCoinductive(trait ir.ItemID) *Database {
	d.coinductive.Insert(trait)
	return d
}

// ProgramClausesFor returns the clauses about the same item as goal, in the order
// they were added, followed by the hypotheses of env about it
func (d *Database) ProgramClausesFor(env ir.Environment, goal ir.DomainGoal) []ir.ProgramClause {
	h := headOf(goal)
	clauses := append([]ir.ProgramClause(nil), d.clauses[h]...)
	for _, hypothesis := range env.Clauses {
		if headOf(hypothesis.Implication.Consequence) == h {
			clauses = append(clauses, hypothesis)
		}
	}
	logger.Debug("program clauses", "goal", goal, "count", len(clauses))
	return clauses
}

func (d *Database) IsCoinductive(goal ir.DomainGoal) bool {
	implemented, ok := goal.(ir.Implemented)
	return ok && d.coinductive.Contains(implemented.Trait.TraitID)
}
