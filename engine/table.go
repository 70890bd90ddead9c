package engine

import (
	"fmt"

	"github.com/cottand/slg/ir"
	"github.com/cottand/slg/slgerr"
	"github.com/cottand/slg/util"
	"github.com/hashicorp/go-set/v3"
)

// AnswerIndex is the position of an answer in its table
type AnswerIndex int

// Answer is a cached solution to the goal of a table
type Answer struct {
	Subst ir.Canonical[ir.AnswerSubst]

	// Ambiguous answers are "maybe" answers: the subgoals they were derived
	// from could not be decided
	Ambiguous bool
}

func (a Answer) String() string {
	if a.Ambiguous {
		return fmt.Sprintf("Answer(ambiguous %s)", a.Subst)
	}
	return fmt.Sprintf("Answer(%s)", a.Subst)
}

// Table memoizes the answers to one canonical goal,
// along with the strands still working on producing more
type Table struct {
	TableGoal ir.UCanonical[ir.InEnvironment[ir.Goal]]

	// Coinductive goals accept cycles as proof
	Coinductive bool

	floundered bool
	answers    []Answer
	// seen holds the substitutions of the cached answers, definite those
	// of the cached answers that are not ambiguous
	seen     *set.Set[string]
	definite *set.Set[string]
	strands  util.Queue[CanonicalStrand]
}

func NewTable(goal ir.UCanonical[ir.InEnvironment[ir.Goal]], coinductive bool) *Table {
	return &Table{
		TableGoal:   goal,
		Coinductive: coinductive,
		seen:        set.New[string](0),
		definite:    set.New[string](0),
	}
}

func (t *Table) String() string {
	return fmt.Sprintf("Table(%s, %d answers, %d strands)", t.TableGoal, len(t.answers), t.strands.Len())
}

// EnqueueStrand adds strand at the back of the table's queue
func (t *Table) EnqueueStrand(strand CanonicalStrand) {
	t.strands.Push(strand)
}

// DequeueStrand removes the strand at the front of the queue
func (t *Table) DequeueStrand() (CanonicalStrand, bool) {
	return t.strands.Pop()
}

// TakeStrands empties the queue and returns what was in it
func (t *Table) TakeStrands() []CanonicalStrand {
	return t.strands.PopAll()
}

func (t *Table) NumStrands() int { return t.strands.Len() }

// MarkFloundered records that the table's goal cannot be enumerated. Its strands
// and answers are discarded: none of them can be trusted anymore.
func (t *Table) MarkFloundered() {
	tablesLogger.Debug("table floundered", "goal", t.TableGoal)
	t.floundered = true
	t.strands.PopAll()
	t.answers = nil
	t.seen = set.New[string](0)
	t.definite = set.New[string](0)
}

func (t *Table) Floundered() bool { return t.floundered }

// PushAnswer adds answer to the table, unless an equal answer is cached already.
// A definite answer replaces an ambiguous one with the same substitution.
// It returns the index of the added answer, or false when nothing was added.
func (t *Table) PushAnswer(answer Answer) (AnswerIndex, bool) {
	if t.floundered {
		slgerr.Invariant(slgerr.FlounderedTable, "answer %s pushed to %s", answer, t.TableGoal)
	}
	key := answer.Subst.String()
	if t.definite.Contains(key) || (answer.Ambiguous && t.seen.Contains(key)) {
		return 0, false
	}
	t.seen.Insert(key)
	if !answer.Ambiguous {
		t.definite.Insert(key)
	}
	t.answers = append(t.answers, answer)
	index := AnswerIndex(len(t.answers) - 1)
	tablesLogger.Debug("new answer", "goal", t.TableGoal, "index", index, "answer", answer)
	return index, true
}

// Answer returns the answer at index, if the table has that many
func (t *Table) Answer(index AnswerIndex) (Answer, bool) {
	if index < 0 || int(index) >= len(t.answers) {
		return Answer{}, false
	}
	return t.answers[index], true
}

func (t *Table) NumCachedAnswers() int { return len(t.answers) }

// NextAnswerIndex is the index the next answer pushed will get
func (t *Table) NextAnswerIndex() AnswerIndex { return AnswerIndex(len(t.answers)) }
