package engine_test

import (
	"github.com/cottand/slg/infer"
	"github.com/cottand/slg/ir"
)

const (
	cloneTrait ir.ItemID = iota + 1
	sendTrait
	vecAdt
	itemAlias
)

var (
	u32    = ir.ScalarOf(ir.U32)
	boolTy = ir.ScalarOf(ir.Bool)
	env    = ir.Environment{}
)

func bound(index int) ir.Ty {
	return ir.BoundVarTy{Var: ir.NewBoundVar(0, index)}
}

func vec(elem ir.Ty) ir.Ty {
	return ir.Adt(vecAdt, ir.TyArg(elem))
}

func clone(ty ir.Ty) ir.Implemented {
	return ir.Implemented{Trait: ir.TraitRef{TraitID: cloneTrait, Subst: ir.TyArgs(ty)}}
}

func inEnv(goal ir.Goal) ir.InEnvironment[ir.Goal] {
	return ir.NewInEnvironment(env, goal)
}

func tyVar(table *infer.Table) ir.InferenceVarTy {
	return ir.InferenceVarTy{Var: table.NewVariable(ir.KindTy, ir.RootUniverse)}
}

// vecClone is `forall<T> { Implemented(Clone: Vec<T>) :- Implemented(Clone: T) }`
var vecClone = ir.ProgramClause{
	Binders: []ir.VarKind{ir.TyVarKind()},
	Implication: ir.ProgramClauseImplication{
		Consequence: clone(vec(bound(0))),
		Conditions:  []ir.Goal{ir.Holds{Domain: clone(bound(0))}},
	},
}

// canonicalGoal builds the table key for goal, which must not have inference variables
func canonicalGoal(goal ir.Goal, binders ...ir.CanonicalVarKind) ir.UCanonical[ir.InEnvironment[ir.Goal]] {
	return ir.UCanonical[ir.InEnvironment[ir.Goal]]{
		Canonical: ir.Canonical[ir.InEnvironment[ir.Goal]]{Binders: binders, Value: inEnv(goal)},
		Universes: 1,
	}
}
