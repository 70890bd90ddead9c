package ir

import "fmt"

// Goal is a proposition to be proven within an Environment
type Goal interface {
	fmt.Stringer
	FoldWith(f Folder, outer DebruijnIndex) Goal
	VisitWith(v Visitor, outer DebruijnIndex)
	isGoal()
}

var (
	_ Goal = QuantifiedGoal{}
	_ Goal = ImpliesGoal{}
	_ Goal = AllGoal{}
	_ Goal = NotGoal{}
	_ Goal = EqGoal{}
	_ Goal = Holds{}
	_ Goal = CannotProve{}
)

type QuantifierKind uint8

const (
	ForAll QuantifierKind = iota
	Exists
)

// QuantifiedGoal binds Binders in Body
type QuantifiedGoal struct {
	Kind    QuantifierKind
	Binders []VarKind
	Body    Goal
}

// ImpliesGoal holds when Goal holds after assuming Clauses
type ImpliesGoal struct {
	Clauses []ProgramClause
	Goal    Goal
}

type AllGoal struct {
	Goals []Goal
}

type NotGoal struct {
	Goal Goal
}

type EqGoal struct {
	A, B GenericArg
}

// Holds lifts a DomainGoal into a Goal
type Holds struct {
	Domain DomainGoal
}

type CannotProve struct{}

func (QuantifiedGoal) isGoal() {}
func (ImpliesGoal) isGoal()    {}
func (AllGoal) isGoal()        {}
func (NotGoal) isGoal()        {}
func (EqGoal) isGoal()         {}
func (Holds) isGoal()          {}
func (CannotProve) isGoal()    {}

// AsBinders views the quantifier's binders and body as a Binders
func (g QuantifiedGoal) AsBinders() Binders[Goal] {
	return Binders[Goal]{Kinds: g.Binders, Value: g.Body}
}

func (g QuantifiedGoal) String() string {
	quantifier := "forall"
	if g.Kind == Exists {
		quantifier = "exists"
	}
	return fmt.Sprintf("%s<%s> { %s }", quantifier, joinStrings(g.Binders, ", "), g.Body)
}

func (g ImpliesGoal) String() string {
	return fmt.Sprintf("if (%s) { %s }", joinStrings(g.Clauses, "; "), g.Goal)
}

func (g AllGoal) String() string   { return fmt.Sprintf("all(%s)", joinStrings(g.Goals, ", ")) }
func (g NotGoal) String() string   { return fmt.Sprintf("not { %s }", g.Goal) }
func (g EqGoal) String() string    { return fmt.Sprintf("%s = %s", g.A, g.B) }
func (g Holds) String() string     { return g.Domain.String() }
func (CannotProve) String() string { return "CannotProve" }

func (g QuantifiedGoal) FoldWith(f Folder, outer DebruijnIndex) Goal {
	return QuantifiedGoal{
		Kind:    g.Kind,
		Binders: foldVarKinds(g.Binders, f, outer),
		Body:    g.Body.FoldWith(f, outer.Shifted()),
	}
}

func (g ImpliesGoal) FoldWith(f Folder, outer DebruijnIndex) Goal {
	return ImpliesGoal{Clauses: foldClauses(g.Clauses, f, outer), Goal: g.Goal.FoldWith(f, outer)}
}

func (g AllGoal) FoldWith(f Folder, outer DebruijnIndex) Goal {
	return AllGoal{Goals: foldGoals(g.Goals, f, outer)}
}

func (g NotGoal) FoldWith(f Folder, outer DebruijnIndex) Goal {
	return NotGoal{Goal: g.Goal.FoldWith(f, outer)}
}

func (g EqGoal) FoldWith(f Folder, outer DebruijnIndex) Goal {
	return EqGoal{A: g.A.FoldWith(f, outer), B: g.B.FoldWith(f, outer)}
}

func (g Holds) FoldWith(f Folder, outer DebruijnIndex) Goal {
	return Holds{Domain: g.Domain.FoldWith(f, outer)}
}

func (g CannotProve) FoldWith(Folder, DebruijnIndex) Goal { return g }

func (g QuantifiedGoal) VisitWith(v Visitor, outer DebruijnIndex) {
	g.Body.VisitWith(v, outer.Shifted())
}

func (g ImpliesGoal) VisitWith(v Visitor, outer DebruijnIndex) {
	for _, clause := range g.Clauses {
		clause.VisitWith(v, outer)
	}
	g.Goal.VisitWith(v, outer)
}

func (g AllGoal) VisitWith(v Visitor, outer DebruijnIndex) {
	for _, goal := range g.Goals {
		goal.VisitWith(v, outer)
	}
}

func (g NotGoal) VisitWith(v Visitor, outer DebruijnIndex) { g.Goal.VisitWith(v, outer) }

func (g EqGoal) VisitWith(v Visitor, outer DebruijnIndex) {
	g.A.VisitWith(v, outer)
	g.B.VisitWith(v, outer)
}

func (g Holds) VisitWith(v Visitor, outer DebruijnIndex) { g.Domain.VisitWith(v, outer) }
func (CannotProve) VisitWith(Visitor, DebruijnIndex)     {}

// DomainGoal is an atomic obligation that program clauses can prove
type DomainGoal interface {
	fmt.Stringer
	FoldWith(f Folder, outer DebruijnIndex) DomainGoal
	VisitWith(v Visitor, outer DebruijnIndex)
	isDomainGoal()
}

// TraitRef is a trait applied to its parameters, the first of which is the self type
type TraitRef struct {
	TraitID ItemID
	Subst   Substitution
}

func (t TraitRef) String() string {
	return fmt.Sprintf("trait#%d<%s>", t.TraitID, joinStrings(t.Subst, ", "))
}

// Implemented holds when the trait is implemented for its parameters
type Implemented struct {
	Trait TraitRef
}

// AliasEq holds when Alias normalizes to Ty
type AliasEq struct {
	Alias AliasTy
	Ty    Ty
}

func (Implemented) isDomainGoal() {}
func (AliasEq) isDomainGoal()     {}

func (g Implemented) String() string { return fmt.Sprintf("Implemented(%s)", g.Trait) }
func (g AliasEq) String() string     { return fmt.Sprintf("AliasEq(%s = %s)", g.Alias, g.Ty) }

func (g Implemented) FoldWith(f Folder, outer DebruijnIndex) DomainGoal {
	return Implemented{Trait: TraitRef{TraitID: g.Trait.TraitID, Subst: g.Trait.Subst.FoldWith(f, outer)}}
}

func (g AliasEq) FoldWith(f Folder, outer DebruijnIndex) DomainGoal {
	return AliasEq{Alias: g.Alias.FoldAlias(f, outer), Ty: g.Ty.FoldWith(f, outer)}
}

func (g Implemented) VisitWith(v Visitor, outer DebruijnIndex) { g.Trait.Subst.VisitWith(v, outer) }

func (g AliasEq) VisitWith(v Visitor, outer DebruijnIndex) {
	g.Alias.VisitWith(v, outer)
	g.Ty.VisitWith(v, outer)
}

func ImplementedGoal(trait ItemID, args ...GenericArg) Holds {
	return Holds{Domain: Implemented{Trait: TraitRef{TraitID: trait, Subst: args}}}
}

// ProgramClauseImplication is `Consequence :- Conditions`, with Constraints
// added to any answer derived through it
type ProgramClauseImplication struct {
	Consequence DomainGoal
	Conditions  []Goal
	Constraints Constraints
}

func (p ProgramClauseImplication) String() string {
	rendered := p.Consequence.String()
	if len(p.Conditions) > 0 {
		rendered = fmt.Sprintf("%s :- %s", rendered, joinStrings(p.Conditions, ", "))
	}
	if len(p.Constraints) > 0 {
		rendered = fmt.Sprintf("%s where %s", rendered, p.Constraints)
	}
	return rendered
}

func (p ProgramClauseImplication) FoldWith(f Folder, outer DebruijnIndex) ProgramClauseImplication {
	return ProgramClauseImplication{
		Consequence: p.Consequence.FoldWith(f, outer),
		Conditions:  foldGoals(p.Conditions, f, outer),
		Constraints: p.Constraints.FoldWith(f, outer),
	}
}

func (p ProgramClauseImplication) VisitWith(v Visitor, outer DebruijnIndex) {
	p.Consequence.VisitWith(v, outer)
	for _, cond := range p.Conditions {
		cond.VisitWith(v, outer)
	}
	p.Constraints.VisitWith(v, outer)
}

// ProgramClause is a ProgramClauseImplication universally quantified over Binders
type ProgramClause struct {
	Binders     []VarKind
	Implication ProgramClauseImplication
}

func (c ProgramClause) AsBinders() Binders[ProgramClauseImplication] {
	return Binders[ProgramClauseImplication]{Kinds: c.Binders, Value: c.Implication}
}

func (c ProgramClause) String() string {
	if len(c.Binders) == 0 {
		return c.Implication.String()
	}
	return fmt.Sprintf("forall<%s> { %s }", joinStrings(c.Binders, ", "), c.Implication)
}

func (c ProgramClause) FoldWith(f Folder, outer DebruijnIndex) ProgramClause {
	return ProgramClause{
		Binders:     foldVarKinds(c.Binders, f, outer),
		Implication: c.Implication.FoldWith(f, outer.Shifted()),
	}
}

func (c ProgramClause) VisitWith(v Visitor, outer DebruijnIndex) {
	c.Implication.VisitWith(v, outer.Shifted())
}

// Environment is the set of hypotheses in scope for a goal
type Environment struct {
	Clauses []ProgramClause
}

func (e Environment) String() string { return fmt.Sprintf("Env[%s]", joinStrings(e.Clauses, "; ")) }

func (e Environment) FoldWith(f Folder, outer DebruijnIndex) Environment {
	return Environment{Clauses: foldClauses(e.Clauses, f, outer)}
}

func (e Environment) VisitWith(v Visitor, outer DebruijnIndex) {
	for _, clause := range e.Clauses {
		clause.VisitWith(v, outer)
	}
}

// AddClauses returns a new Environment with clauses added to the hypotheses of e
func (e Environment) AddClauses(clauses ...ProgramClause) Environment {
	all := make([]ProgramClause, 0, len(e.Clauses)+len(clauses))
	all = append(all, e.Clauses...)
	return Environment{Clauses: append(all, clauses...)}
}

// InEnvironment pairs a value with the Environment it must hold in
type InEnvironment[G Term[G]] struct {
	Environment Environment
	Goal        G
}

func NewInEnvironment[G Term[G]](env Environment, goal G) InEnvironment[G] {
	return InEnvironment[G]{Environment: env, Goal: goal}
}

func (e InEnvironment[G]) String() string {
	return fmt.Sprintf("%s |- %s", e.Environment, e.Goal)
}

// Hash is the identity of e, used to key sets of environment-bound values
func (e InEnvironment[G]) Hash() string { return e.String() }

func (e InEnvironment[G]) FoldWith(f Folder, outer DebruijnIndex) InEnvironment[G] {
	return InEnvironment[G]{Environment: e.Environment.FoldWith(f, outer), Goal: e.Goal.FoldWith(f, outer)}
}

func (e InEnvironment[G]) VisitWith(v Visitor, outer DebruijnIndex) {
	e.Environment.VisitWith(v, outer)
	e.Goal.VisitWith(v, outer)
}

func foldGoals(goals []Goal, f Folder, outer DebruijnIndex) []Goal {
	if goals == nil {
		return nil
	}
	folded := make([]Goal, len(goals))
	for i, goal := range goals {
		folded[i] = goal.FoldWith(f, outer)
	}
	return folded
}

func foldClauses(clauses []ProgramClause, f Folder, outer DebruijnIndex) []ProgramClause {
	if clauses == nil {
		return nil
	}
	folded := make([]ProgramClause, len(clauses))
	for i, clause := range clauses {
		folded[i] = clause.FoldWith(f, outer)
	}
	return folded
}

func foldVarKinds(kinds []VarKind, f Folder, outer DebruijnIndex) []VarKind {
	if kinds == nil {
		return nil
	}
	folded := make([]VarKind, len(kinds))
	for i, kind := range kinds {
		folded[i] = kind.foldWith(f, outer)
	}
	return folded
}
