package engine

import (
	"fmt"

	"github.com/cottand/slg/infer"
	"github.com/cottand/slg/ir"
)

// SelectedSubgoal records which subgoal a strand is waiting on,
// and which answer of that subgoal's table it will consume next
type SelectedSubgoal struct {
	SubgoalIndex      int
	SubgoalTableIndex TableIndex

	// UniverseMap maps the universes of the subgoal's table back to
	// those of the strand's inference table
	UniverseMap ir.UniverseMap
	AnswerIndex AnswerIndex
}

func (s SelectedSubgoal) String() string {
	return fmt.Sprintf("subgoal %d of %s, answer %d", s.SubgoalIndex, s.SubgoalTableIndex, s.AnswerIndex)
}

// Strand is a derivation in progress: an ExClause along with the inference
// table its variables live in
type Strand struct {
	Infer           *TruncatingInferenceTable
	ExClause        ExClause
	SelectedSubgoal *SelectedSubgoal
	LastPursuedTime TimeStamp
}

func (s Strand) String() string {
	return fmt.Sprintf("Strand(%s, selected %v)", s.Infer.DebugExClause(s.ExClause), s.SelectedSubgoal)
}

// CanonicalStrand is a suspended Strand: its ExClause is canonical,
// so it no longer needs an inference table
type CanonicalStrand struct {
	Canonical       ir.Canonical[ExClause]
	SelectedSubgoal *SelectedSubgoal
	LastPursuedTime TimeStamp
}

func (s CanonicalStrand) String() string {
	return fmt.Sprintf("CanonicalStrand(%s, selected %v)", s.Canonical, s.SelectedSubgoal)
}

// Suspend canonicalizes strand so it can be stored in a table
func Suspend(strand Strand) CanonicalStrand {
	return CanonicalStrand{
		Canonical:       strand.Infer.CanonicalizeExClause(strand.ExClause),
		SelectedSubgoal: strand.SelectedSubgoal,
		LastPursuedTime: strand.LastPursuedTime,
	}
}

// Resume instantiates strand in a fresh inference table with the given number of
// universes, those of the goal of the table the strand belongs to
func (c *ContextOps) Resume(universes int, strand CanonicalStrand) Strand {
	table, _, exClause := infer.FromCanonical(universes, strand.Canonical)
	return Strand{
		Infer:           NewTruncatingInferenceTable(c.maxSize, table),
		ExClause:        exClause,
		SelectedSubgoal: strand.SelectedSubgoal,
		LastPursuedTime: strand.LastPursuedTime,
	}
}
