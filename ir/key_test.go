package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func keyOf(env Environment, goal Goal, binders ...CanonicalVarKind) string {
	return UCanonical[InEnvironment[Goal]]{
		Canonical: Canonical[InEnvironment[Goal]]{Binders: binders, Value: NewInEnvironment[Goal](env, goal)},
		Universes: 1,
	}.Key()
}

func tyKey(ty Ty) string { return keyOf(Environment{}, EqGoal{A: TyArg(ty), B: TyArg(u32)}) }

func lifetimeKey(lt Lifetime) string { return tyKey(RefTy{Lifetime: lt, Elem: u32}) }

func constKey(c Const) string { return tyKey(ArrayTy{Elem: u32, Len: c}) }

func domainKey(goal DomainGoal) string { return keyOf(Environment{}, Holds{Domain: goal}) }

func clauseKey(clause ProgramClause) string {
	return keyOf(Environment{Clauses: []ProgramClause{clause}}, CannotProve{})
}

func constraintKey(c Constraint) string {
	return clauseKey(ProgramClause{Implication: ProgramClauseImplication{
		Consequence: implemented(1, u32),
		Constraints: NewConstraints(NewInEnvironment(Environment{}, c)),
	}})
}

func implemented(trait ItemID, tys ...Ty) Implemented {
	return Implemented{Trait: TraitRef{TraitID: trait, Subst: TyArgs(tys...)}}
}

func placeholder(universe UniverseIndex, index int) PlaceholderIndex {
	return PlaceholderIndex{Universe: universe, Index: index}
}

func concrete(value uint64) Const { return Const{Ty: u32, Value: ConcreteConst{Value: value}} }

// Each case changes a single field of a term, which must change its key
func TestKeyCoversEveryField(t *testing.T) {
	holds := Holds{Domain: implemented(1, u32)}
	clause := ProgramClause{Implication: ProgramClauseImplication{Consequence: implemented(1, u32)}}
	alias := AliasTy{Kind: AliasProjection, ID: 1, Subst: TyArgs(u32)}
	staticOutlives := LifetimeOutlives{A: StaticLifetime{}, B: StaticLifetime{}}
	typeOutlives := TypeOutlives{Ty: u32, Lifetime: StaticLifetime{}}

	tests := []struct {
		name string
		a, b string
	}{
		// canonical wrappers
		{"binder kind", keyOf(Environment{}, holds, CanonicalVarKind{VarKind: TyVarKind()}), keyOf(Environment{}, holds, CanonicalVarKind{VarKind: LifetimeVarKind()})},
		{"binder universe", keyOf(Environment{}, holds, CanonicalVarKind{VarKind: TyVarKind()}), keyOf(Environment{}, holds, CanonicalVarKind{VarKind: TyVarKind(), Universe: 1})},
		{"binder const type", keyOf(Environment{}, holds, CanonicalVarKind{VarKind: ConstVarKind(u32)}), keyOf(Environment{}, holds, CanonicalVarKind{VarKind: ConstVarKind(boolTy)})},
		{"binder count", keyOf(Environment{}, holds), keyOf(Environment{}, holds, CanonicalVarKind{VarKind: TyVarKind()})},
		{
			"universe count",
			UCanonical[InEnvironment[Goal]]{Canonical: Canonical[InEnvironment[Goal]]{Value: NewInEnvironment[Goal](Environment{}, holds)}, Universes: 1}.Key(),
			UCanonical[InEnvironment[Goal]]{Canonical: Canonical[InEnvironment[Goal]]{Value: NewInEnvironment[Goal](Environment{}, holds)}, Universes: 2}.Key(),
		},

		// environment and clauses
		{"environment", keyOf(Environment{}, holds), keyOf(Environment{Clauses: []ProgramClause{clause}}, holds)},
		{"clause binders", clauseKey(clause), clauseKey(ProgramClause{Binders: []VarKind{TyVarKind()}, Implication: clause.Implication})},
		{"clause consequence", clauseKey(clause), clauseKey(ProgramClause{Implication: ProgramClauseImplication{Consequence: implemented(2, u32)}})},
		{
			"clause conditions",
			clauseKey(clause),
			clauseKey(ProgramClause{Implication: ProgramClauseImplication{Consequence: implemented(1, u32), Conditions: []Goal{holds}}}),
		},
		{
			"clause constraints",
			clauseKey(clause),
			clauseKey(ProgramClause{Implication: ProgramClauseImplication{
				Consequence: implemented(1, u32),
				Constraints: NewConstraints(NewInEnvironment[Constraint](Environment{}, TypeOutlives{Ty: u32, Lifetime: ErasedLifetime{}})),
			}}),
		},
		{
			"constraint environment",
			constraintKey(staticOutlives),
			clauseKey(ProgramClause{Implication: ProgramClauseImplication{
				Consequence: implemented(1, u32),
				Constraints: NewConstraints(NewInEnvironment[Constraint](Environment{Clauses: []ProgramClause{clause}}, staticOutlives)),
			}}),
		},

		// constraints
		{"outlives lhs", constraintKey(staticOutlives), constraintKey(LifetimeOutlives{A: ErasedLifetime{}, B: StaticLifetime{}})},
		{"outlives rhs", constraintKey(staticOutlives), constraintKey(LifetimeOutlives{A: StaticLifetime{}, B: ErasedLifetime{}})},
		{"type outlives type", constraintKey(typeOutlives), constraintKey(TypeOutlives{Ty: boolTy, Lifetime: StaticLifetime{}})},
		{"type outlives lifetime", constraintKey(typeOutlives), constraintKey(TypeOutlives{Ty: u32, Lifetime: ErasedLifetime{}})},

		// goals
		{"quantifier kind", keyOf(Environment{}, QuantifiedGoal{Kind: ForAll, Binders: []VarKind{TyVarKind()}, Body: holds}), keyOf(Environment{}, QuantifiedGoal{Kind: Exists, Binders: []VarKind{TyVarKind()}, Body: holds})},
		{"quantifier binders", keyOf(Environment{}, QuantifiedGoal{Binders: []VarKind{TyVarKind()}, Body: holds}), keyOf(Environment{}, QuantifiedGoal{Binders: []VarKind{LifetimeVarKind()}, Body: holds})},
		{"quantifier body", keyOf(Environment{}, QuantifiedGoal{Binders: []VarKind{TyVarKind()}, Body: holds}), keyOf(Environment{}, QuantifiedGoal{Binders: []VarKind{TyVarKind()}, Body: CannotProve{}})},
		{"implication clauses", keyOf(Environment{}, ImpliesGoal{Goal: holds}), keyOf(Environment{}, ImpliesGoal{Clauses: []ProgramClause{clause}, Goal: holds})},
		{"implication goal", keyOf(Environment{}, ImpliesGoal{Clauses: []ProgramClause{clause}, Goal: holds}), keyOf(Environment{}, ImpliesGoal{Clauses: []ProgramClause{clause}, Goal: CannotProve{}})},
		{"conjunction", keyOf(Environment{}, AllGoal{Goals: []Goal{holds}}), keyOf(Environment{}, AllGoal{Goals: []Goal{holds, holds}})},
		{"negation", keyOf(Environment{}, holds), keyOf(Environment{}, NotGoal{Goal: holds})},
		{"equality lhs", keyOf(Environment{}, EqGoal{A: TyArg(u32), B: TyArg(u32)}), keyOf(Environment{}, EqGoal{A: TyArg(boolTy), B: TyArg(u32)})},
		{"equality rhs", keyOf(Environment{}, EqGoal{A: TyArg(u32), B: TyArg(u32)}), keyOf(Environment{}, EqGoal{A: TyArg(u32), B: TyArg(boolTy)})},
		{"cannot prove", keyOf(Environment{}, holds), keyOf(Environment{}, CannotProve{})},

		// domain goals
		{"trait", domainKey(implemented(1, u32)), domainKey(implemented(2, u32))},
		{"trait parameters", domainKey(implemented(1, u32)), domainKey(implemented(1, boolTy))},
		{"alias kind", domainKey(AliasEq{Alias: alias, Ty: u32}), domainKey(AliasEq{Alias: AliasTy{Kind: AliasOpaque, ID: 1, Subst: TyArgs(u32)}, Ty: u32})},
		{"alias item", domainKey(AliasEq{Alias: alias, Ty: u32}), domainKey(AliasEq{Alias: AliasTy{ID: 2, Subst: TyArgs(u32)}, Ty: u32})},
		{"alias parameters", domainKey(AliasEq{Alias: alias, Ty: u32}), domainKey(AliasEq{Alias: AliasTy{ID: 1, Subst: TyArgs(boolTy)}, Ty: u32})},
		{"alias normalized type", domainKey(AliasEq{Alias: alias, Ty: u32}), domainKey(AliasEq{Alias: alias, Ty: boolTy})},

		// types
		{"bound var binder", tyKey(boundTy(0, 0)), tyKey(boundTy(1, 0))},
		{"bound var index", tyKey(boundTy(0, 0)), tyKey(boundTy(0, 1))},
		{"placeholder universe", tyKey(PlaceholderTy{Index: placeholder(0, 0)}), tyKey(PlaceholderTy{Index: placeholder(1, 0)})},
		{"placeholder index", tyKey(PlaceholderTy{Index: placeholder(0, 0)}), tyKey(PlaceholderTy{Index: placeholder(0, 1)})},
		{"type name kind", tyKey(ApplyTy{Name: TypeName{Kind: NameAdt, ID: 1}}), tyKey(ApplyTy{Name: TypeName{Kind: NameFnDef, ID: 1}})},
		{"type name item", tyKey(Adt(1)), tyKey(Adt(2))},
		{"type parameters", tyKey(Adt(1, TyArg(u32))), tyKey(Adt(1, TyArg(boolTy)))},
		{"scalar", tyKey(u32), tyKey(boolTy)},
		{"ref mutability", tyKey(RefTy{Mutability: Not, Lifetime: StaticLifetime{}, Elem: u32}), tyKey(RefTy{Mutability: Mut, Lifetime: StaticLifetime{}, Elem: u32})},
		{"ref lifetime", tyKey(RefTy{Lifetime: StaticLifetime{}, Elem: u32}), tyKey(RefTy{Lifetime: ErasedLifetime{}, Elem: u32})},
		{"ref element", tyKey(RefTy{Lifetime: StaticLifetime{}, Elem: u32}), tyKey(RefTy{Lifetime: StaticLifetime{}, Elem: boolTy})},
		{"pointer mutability", tyKey(RawPtrTy{Mutability: Not, Elem: u32}), tyKey(RawPtrTy{Mutability: Mut, Elem: u32})},
		{"pointer element", tyKey(RawPtrTy{Elem: u32}), tyKey(RawPtrTy{Elem: boolTy})},
		{"array element", tyKey(ArrayTy{Elem: u32, Len: concrete(1)}), tyKey(ArrayTy{Elem: boolTy, Len: concrete(1)})},
		{"array length", tyKey(ArrayTy{Elem: u32, Len: concrete(1)}), tyKey(ArrayTy{Elem: u32, Len: concrete(2)})},
		{"slice element", tyKey(SliceTy{Elem: u32}), tyKey(SliceTy{Elem: boolTy})},
		{"array and slice", tyKey(ArrayTy{Elem: u32, Len: concrete(1)}), tyKey(SliceTy{Elem: u32})},

		// lifetimes
		{"lifetime bound var", lifetimeKey(BoundVarLifetime{Var: NewBoundVar(0, 0)}), lifetimeKey(BoundVarLifetime{Var: NewBoundVar(0, 1)})},
		{"lifetime placeholder", lifetimeKey(PlaceholderLifetime{Index: placeholder(0, 0)}), lifetimeKey(PlaceholderLifetime{Index: placeholder(1, 0)})},
		{"static and erased", lifetimeKey(StaticLifetime{}), lifetimeKey(ErasedLifetime{})},
		{"lifetime and type variables", lifetimeKey(BoundVarLifetime{Var: NewBoundVar(0, 0)}), tyKey(RefTy{Lifetime: StaticLifetime{}, Elem: boundTy(0, 0)})},

		// constants
		{"const type", constKey(concrete(1)), constKey(Const{Ty: boolTy, Value: ConcreteConst{Value: 1}})},
		{"const value", constKey(concrete(1)), constKey(concrete(2))},
		{"const bound var", constKey(Const{Ty: u32, Value: BoundVarConst{Var: NewBoundVar(0, 0)}}), constKey(Const{Ty: u32, Value: BoundVarConst{Var: NewBoundVar(0, 1)}})},
		{"const placeholder", constKey(Const{Ty: u32, Value: PlaceholderConst{Index: placeholder(0, 0)}}), constKey(Const{Ty: u32, Value: PlaceholderConst{Index: placeholder(0, 1)}})},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.NotEqual(t, test.a, test.b)
		})
	}
}

func TestKeyIsStableForEqualTerms(t *testing.T) {
	clause := func() ProgramClause {
		return ProgramClause{
			Binders: []VarKind{TyVarKind()},
			Implication: ProgramClauseImplication{
				Consequence: implemented(1, boundTy(0, 0)),
				Conditions:  []Goal{Holds{Domain: implemented(2, boundTy(0, 0))}},
				Constraints: NewConstraints(NewInEnvironment[Constraint](Environment{}, TypeOutlives{Ty: boundTy(0, 0), Lifetime: StaticLifetime{}})),
			},
		}
	}

	assert.Equal(t, clauseKey(clause()), clauseKey(clause()))
	assert.Contains(t, clause().String(), "where")
}
