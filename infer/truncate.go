package infer

import (
	"github.com/cottand/slg/ir"
)

// NeedsTruncation reports whether some outermost type in value, once its bound
// inference variables are looked through, is made of more than maxSize types.
//
// This is only the check: truncating ("abstracting") the value is left to the caller.
// See:
//   - Terminating Evaluation of Logic Programs with Finite Three-Valued Models,
//     Riguzzi and Swift, ACM Transactions on Computational Logic 2013
//   - Radial Restraint, Grosof and Swift, 2013
func NeedsTruncation[T ir.Term[T]](t *Table, maxSize int, value T) bool {
	visitor := &tySizeVisitor{table: t}
	value.VisitWith(visitor, ir.Innermost)
	return visitor.maxSize > maxSize
}

type tySizeVisitor struct {
	table   *Table
	size    int
	maxSize int
	depth   int
}

func (v *tySizeVisitor) VisitTy(ty ir.Ty, outer ir.DebruijnIndex) {
	if normalized, ok := v.table.NormalizeTyShallow(ty); ok {
		normalized.VisitWith(v, outer)
		return
	}
	v.size++
	v.maxSize = max(v.size, v.maxSize)
	v.depth++
	ir.SuperVisitTy(v, ty, outer)
	v.depth--
	// each outermost type is measured on its own
	if v.depth == 0 {
		v.size = 0
	}
}

func (v *tySizeVisitor) VisitLifetime(ir.Lifetime, ir.DebruijnIndex) {}

func (v *tySizeVisitor) VisitConst(c ir.Const, outer ir.DebruijnIndex) {
	ir.SuperVisitConst(v, c, outer)
}
