package infer

import (
	"github.com/cottand/slg/ir"
	"github.com/cottand/slg/slgerr"
)

// UnificationResult holds what unification could not settle by binding variables:
// goals that must still be proven (like alias normalizations) and region constraints
type UnificationResult struct {
	Goals       []ir.InEnvironment[ir.Goal]
	Constraints []ir.InEnvironment[ir.Constraint]
}

// Unify makes a and b equal by binding inference variables of t.
//
// If a and b cannot be made equal, the returned error wraps slgerr.ErrNoSolution
// and t is left as it was.
// a and b must be of the same kind: comparing, for example, a type with a lifetime
// aborts the session.
func (t *Table) Unify(env ir.Environment, a, b ir.GenericArg) (UnificationResult, error) {
	if a.Kind() != b.Kind() {
		slgerr.Invariant(slgerr.KindMismatch, "cannot unify %s %s with %s %s", a.Kind(), a, b.Kind(), b)
	}
	return t.relate(env, func(u *unifier) error {
		return u.relateArgs(a, b)
	})
}

// UnifyDomainGoals unifies the parameters of a and b, which must be the same kind of domain goal
// about the same item for unification to succeed.
func (t *Table) UnifyDomainGoals(env ir.Environment, a, b ir.DomainGoal) (UnificationResult, error) {
	return t.relate(env, func(u *unifier) error {
		return u.relateDomainGoals(a, b)
	})
}

func (t *Table) relate(env ir.Environment, op func(u *unifier) error) (UnificationResult, error) {
	snapshot := t.Snapshot()
	u := &unifier{table: t, env: env}
	if err := op(u); err != nil {
		t.Rollback(snapshot)
		logger.Debug("unification failed", "err", err)
		return UnificationResult{}, err
	}
	return UnificationResult{Goals: u.goals, Constraints: u.constraints}, nil
}

type unifier struct {
	table       *Table
	env         ir.Environment
	goals       []ir.InEnvironment[ir.Goal]
	constraints []ir.InEnvironment[ir.Constraint]
}

func (u *unifier) pushGoal(goal ir.Goal) {
	u.goals = append(u.goals, ir.NewInEnvironment(u.env, goal))
}

func (u *unifier) pushLifetimeEq(a, b ir.Lifetime) {
	u.constraints = append(u.constraints,
		ir.NewInEnvironment[ir.Constraint](u.env, ir.LifetimeOutlives{A: a, B: b}),
		ir.NewInEnvironment[ir.Constraint](u.env, ir.LifetimeOutlives{A: b, B: a}),
	)
}

func (u *unifier) relateArgs(a, b ir.GenericArg) error {
	switch a.Kind() {
	case ir.KindTy:
		return u.relateTys(a.AssertTy(), b.AssertTy())
	case ir.KindLifetime:
		return u.relateLifetimes(a.AssertLifetime(), b.AssertLifetime())
	default:
		return u.relateConsts(a.AssertConst(), b.AssertConst())
	}
}

func (u *unifier) relateSubsts(a, b ir.Substitution) error {
	if len(a) != len(b) {
		slgerr.Invariant(slgerr.SubstLengthMismatch, "cannot unify %s with %s", a, b)
	}
	for i := range a {
		if a[i].Kind() != b[i].Kind() {
			slgerr.Invariant(slgerr.KindMismatch, "parameter %d: cannot unify %s with %s", i, a[i], b[i])
		}
		if err := u.relateArgs(a[i], b[i]); err != nil {
			return err
		}
	}
	return nil
}

func (u *unifier) relateTys(a, b ir.Ty) error {
	a, _ = u.table.NormalizeTyShallow(a)
	b, _ = u.table.NormalizeTyShallow(b)
	_, aIsBound := a.(ir.BoundVarTy)
	_, bIsBound := b.(ir.BoundVarTy)
	if aIsBound || bIsBound {
		// bound variables are wildcards
		return nil
	}

	aVar, aIsVar := a.(ir.InferenceVarTy)
	bVar, bIsVar := b.(ir.InferenceVarTy)
	switch {
	case aIsVar && bIsVar:
		return u.unifyVarVar(aVar.Var, bVar.Var)
	case aIsVar:
		return u.bindVar(aVar.Var, ir.TyArg(b))
	case bIsVar:
		return u.bindVar(bVar.Var, ir.TyArg(a))
	}

	aAlias, aIsAlias := a.(ir.AliasTy)
	bAlias, bIsAlias := b.(ir.AliasTy)
	if aIsAlias && bIsAlias && ir.Equal(aAlias, bAlias) {
		return nil
	}
	if alias, ok := a.(ir.AliasTy); ok {
		u.pushGoal(ir.Holds{Domain: ir.AliasEq{Alias: alias, Ty: b}})
		return nil
	}
	if alias, ok := b.(ir.AliasTy); ok {
		u.pushGoal(ir.Holds{Domain: ir.AliasEq{Alias: alias, Ty: a}})
		return nil
	}

	switch a := a.(type) {
	case ir.PlaceholderTy:
		if b, ok := b.(ir.PlaceholderTy); ok && a.Index == b.Index {
			return nil
		}
	case ir.ScalarTy:
		if b, ok := b.(ir.ScalarTy); ok && a.Scalar == b.Scalar {
			return nil
		}
	case ir.ApplyTy:
		if b, ok := b.(ir.ApplyTy); ok && a.Name == b.Name {
			return u.relateSubsts(a.Subst, b.Subst)
		}
	case ir.RefTy:
		if b, ok := b.(ir.RefTy); ok && a.Mutability == b.Mutability {
			if err := u.relateLifetimes(a.Lifetime, b.Lifetime); err != nil {
				return err
			}
			return u.relateTys(a.Elem, b.Elem)
		}
	case ir.RawPtrTy:
		if b, ok := b.(ir.RawPtrTy); ok && a.Mutability == b.Mutability {
			return u.relateTys(a.Elem, b.Elem)
		}
	case ir.ArrayTy:
		if b, ok := b.(ir.ArrayTy); ok {
			if err := u.relateTys(a.Elem, b.Elem); err != nil {
				return err
			}
			return u.relateConsts(a.Len, b.Len)
		}
	case ir.SliceTy:
		if b, ok := b.(ir.SliceTy); ok {
			return u.relateTys(a.Elem, b.Elem)
		}
	}
	// placeholders and scalars only equal themselves, and different shapes never unify
	return slgerr.NoSolution("cannot unify %s with %s", a, b)
}

func (u *unifier) relateLifetimes(a, b ir.Lifetime) error {
	a = u.table.normalizeLifetimeShallow(a)
	b = u.table.normalizeLifetimeShallow(b)
	// every lifetime is a comparable leaf
	if a == b {
		return nil
	}
	_, aIsBound := a.(ir.BoundVarLifetime)
	_, bIsBound := b.(ir.BoundVarLifetime)
	if aIsBound || bIsBound {
		return nil
	}

	aVar, aIsVar := a.(ir.InferenceVarLifetime)
	bVar, bIsVar := b.(ir.InferenceVarLifetime)
	switch {
	case aIsVar && bIsVar:
		return u.unifyVarVar(aVar.Var, bVar.Var)
	case aIsVar:
		return u.bindVar(aVar.Var, ir.LifetimeArg(b))
	case bIsVar:
		return u.bindVar(bVar.Var, ir.LifetimeArg(a))
	}
	// distinct lifetimes are left for region checking to decide
	u.pushLifetimeEq(a, b)
	return nil
}

func (u *unifier) relateConsts(a, b ir.Const) error {
	if err := u.relateTys(a.Ty, b.Ty); err != nil {
		return err
	}
	a = u.table.normalizeConstShallow(a)
	b = u.table.normalizeConstShallow(b)
	// the types are related already, and every const value is a comparable leaf
	if a.Value == b.Value {
		return nil
	}
	_, aIsBound := a.Value.(ir.BoundVarConst)
	_, bIsBound := b.Value.(ir.BoundVarConst)
	if aIsBound || bIsBound {
		return nil
	}

	aVar, aIsVar := a.Value.(ir.InferenceVarConst)
	bVar, bIsVar := b.Value.(ir.InferenceVarConst)
	switch {
	case aIsVar && bIsVar:
		return u.unifyVarVar(aVar.Var, bVar.Var)
	case aIsVar:
		return u.bindVar(aVar.Var, ir.ConstArg(b))
	case bIsVar:
		return u.bindVar(bVar.Var, ir.ConstArg(a))
	}

	aConcrete, aIsConcrete := a.Value.(ir.ConcreteConst)
	bConcrete, bIsConcrete := b.Value.(ir.ConcreteConst)
	if aIsConcrete && bIsConcrete && ir.ConstEq(a.Ty, aConcrete, bConcrete) {
		return nil
	}
	return slgerr.NoSolution("cannot unify %s with %s", a, b)
}

func (u *unifier) relateDomainGoals(a, b ir.DomainGoal) error {
	switch a := a.(type) {
	case ir.Implemented:
		if b, ok := b.(ir.Implemented); ok && a.Trait.TraitID == b.Trait.TraitID {
			return u.relateSubsts(a.Trait.Subst, b.Trait.Subst)
		}
	case ir.AliasEq:
		if b, ok := b.(ir.AliasEq); ok && a.Alias.Kind == b.Alias.Kind && a.Alias.ID == b.Alias.ID {
			if err := u.relateSubsts(a.Alias.Subst, b.Alias.Subst); err != nil {
				return err
			}
			return u.relateTys(a.Ty, b.Ty)
		}
	}
	return slgerr.NoSolution("cannot unify %s with %s", a, b)
}

func (u *unifier) unifyVarVar(a, b ir.InferenceVar) error {
	rootA, valueA := u.table.find(a)
	rootB, valueB := u.table.find(b)
	if rootA == rootB {
		return nil
	}
	if valueA.kind != valueB.kind {
		slgerr.Invariant(slgerr.KindMismatch, "cannot unify %s variable %s with %s variable %s", valueA.kind, a, valueB.kind, b)
	}
	// rootB stands for both from now on, and must only see what both could see
	valueB.universe = min(valueA.universe, valueB.universe)
	u.table.setValue(rootB, valueB)
	u.table.setValue(rootA, varValue{kind: valueA.kind, universe: valueA.universe, state: linked, link: rootB})
	return nil
}

func (u *unifier) bindVar(v ir.InferenceVar, value ir.GenericArg) error {
	root, current := u.table.find(v)
	if current.kind != value.Kind() {
		slgerr.Invariant(slgerr.KindMismatch, "cannot bind %s variable %s to %s %s", current.kind, v, value.Kind(), value)
	}
	check := &occursCheck{unifier: u, root: root, universe: current.universe}
	checked := value.FoldWith(check, ir.Innermost)
	if check.err != nil {
		return check.err
	}
	logger.Debug("binding variable", "var", root, "value", checked)
	current.state = bound
	current.value = checked
	u.table.setValue(root, current)
	return nil
}

// occursCheck rejects binding a variable to a term that contains it, or that mentions
// placeholders the variable's universe cannot see.
// Variables of the term are moved down to the universe of the bound variable.
type occursCheck struct {
	ir.NopFolder
	unifier  *unifier
	root     ir.InferenceVar
	universe ir.UniverseIndex
	err      error
}

func (o *occursCheck) FoldInferenceVar(v ir.InferenceVar, kind ir.VarKind, _ ir.DebruijnIndex) (ir.GenericArg, bool) {
	table := o.unifier.table
	root, value := table.find(v)
	if value.state == bound {
		return value.value.FoldWith(o, ir.Innermost), true
	}
	if root == o.root {
		if o.err == nil {
			o.err = slgerr.NoSolution("occurs check: %s occurs in its own value", root)
		}
		return ir.GenericArg{}, false
	}
	if value.universe > o.universe {
		value.universe = o.universe
		table.setValue(root, value)
	}
	return kind.InferenceVarArg(root), true
}

func (o *occursCheck) FoldPlaceholder(p ir.PlaceholderIndex, kind ir.VarKind, _ ir.DebruijnIndex) (ir.GenericArg, bool) {
	if o.universe.CanSee(p.Universe) {
		return ir.GenericArg{}, false
	}
	if kind.Kind == ir.KindLifetime {
		// a lifetime the variable cannot name is replaced with one it can,
		// and region checking is left to relate the two
		fresh := ir.InferenceVarLifetime{Var: o.unifier.table.NewVariable(ir.KindLifetime, o.universe)}
		o.unifier.pushLifetimeEq(fresh, ir.PlaceholderLifetime{Index: p})
		return ir.LifetimeArg(fresh), true
	}
	if o.err == nil {
		o.err = slgerr.NoSolution("placeholder %s is not visible from universe %s", p, o.universe)
	}
	return ir.GenericArg{}, false
}
