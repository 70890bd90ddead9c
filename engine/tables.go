package engine

import (
	"fmt"
	"iter"

	"github.com/cottand/slg/internal/log"
	"github.com/cottand/slg/ir"
	"github.com/cottand/slg/slgerr"
)

var tablesLogger = log.DefaultLogger.With("section", "tables")

// TableIndex identifies a table of a Tables registry.
// Indices are dense and assigned in order of insertion.
type TableIndex struct {
	value int
}

func (i TableIndex) Value() int { return i.value }

func (i TableIndex) String() string { return fmt.Sprintf("TableIndex(%d)", i.value) }

// Tables is the registry of the tables of a solve session,
// indexed both by position and by goal
type Tables struct {
	indices map[string]TableIndex
	tables  []*Table
}

func NewTables() *Tables {
	return &Tables{indices: make(map[string]TableIndex)}
}

// NextIndex is the index the next inserted table will get
func (t *Tables) NextIndex() TableIndex {
	return TableIndex{value: len(t.tables)}
}

// Insert appends table to the registry and returns its index.
//
// It does not check whether a table for the same goal exists: callers look for
// one with IndexOf first. If they do not, the goal lookup will return the newest table.
func (t *Tables) Insert(table *Table) TableIndex {
	index := t.NextIndex()
	t.tables = append(t.tables, table)
	t.indices[table.TableGoal.Key()] = index
	tablesLogger.Debug("inserted table", "index", index, "goal", table.TableGoal)
	return index
}

// IndexOf returns the index of the table for goal, if there is one
func (t *Tables) IndexOf(goal ir.UCanonical[ir.InEnvironment[ir.Goal]]) (TableIndex, bool) {
	index, ok := t.indices[goal.Key()]
	return index, ok
}

// Get returns the table at index. index must come from this registry.
func (t *Tables) Get(index TableIndex) *Table {
	if index.value < 0 || index.value >= len(t.tables) {
		slgerr.Invariant(slgerr.TableOutOfRange, "%s, but there are %d tables", index, len(t.tables))
	}
	return t.tables[index.value]
}

func (t *Tables) Len() int { return len(t.tables) }

// All iterates over the tables in order of insertion
func (t *Tables) All() iter.Seq2[TableIndex, *Table] {
	return func(yield func(TableIndex, *Table) bool) {
		for i, table := range t.tables {
			if !yield(TableIndex{value: i}, table) {
				return
			}
		}
	}
}
