package semitree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildS6 builds the fixture from SPEC_FULL.md scenario S6:
// root{1} -> (l1{2}, b1{4} -> (b2{6} -> l3{5}, l2{3}))
func buildS6() (*Tree[int], NodeID) {
	t := New[int]()
	root := t.NewBranch(1)
	l1 := t.NewLeaf(2)
	b1 := t.NewBranch(4)
	b2 := t.NewBranch(6)
	l3 := t.NewLeaf(5)
	l2 := t.NewLeaf(3)

	t.AppendChild(b2, l3)
	t.AppendChild(b1, b2)
	t.AppendChild(b1, l2)
	t.AppendChild(root, l1)
	t.AppendChild(root, b1)
	return t, root
}

func TestInorderSumS6(t *testing.T) {
	tr, root := buildS6()
	sum := 0
	count := 0
	tr.Walk(root, func(p Pos) bool {
		sum += tr.Payload(p.Node)
		count++
		return true
	})
	require.Equal(t, 32, sum)
	require.Equal(t, 9, count)
}

func TestPreorderSumS6(t *testing.T) {
	tr, root := buildS6()
	sum := 0
	tr.Walk(root, func(p Pos) bool {
		if !p.Visited {
			sum += tr.Payload(p.Node)
		}
		return true
	})
	require.Equal(t, 21, sum)
}

func TestPostorderSumS6(t *testing.T) {
	tr, root := buildS6()
	sum := 0
	tr.Walk(root, func(p Pos) bool {
		if p.Visited || !tr.IsBranch(p.Node) {
			sum += tr.Payload(p.Node)
		}
		return true
	})
	require.Equal(t, 21, sum)
}

func TestReverseProducesSameMultisetReversed(t *testing.T) {
	tr, root := buildS6()

	var fwd []Pos
	for p := tr.Begin(root); ; p = tr.Next(p) {
		fwd = append(fwd, p)
		if p == tr.End(root) {
			break
		}
	}

	var rev []Pos
	for p := tr.End(root); ; p = tr.Prev(p) {
		rev = append(rev, p)
		if p == tr.Begin(root) {
			break
		}
	}

	require.Equal(t, len(fwd), len(rev))
	for i := range fwd {
		require.Equal(t, fwd[i], rev[len(rev)-1-i])
	}
}

func TestEveryBranchTwiceEveryLeafOnce(t *testing.T) {
	tr, root := buildS6()
	visits := map[NodeID]int{}
	tr.Walk(root, func(p Pos) bool {
		visits[p.Node]++
		return true
	})
	branches := []NodeID{root}
	leaves := []NodeID{}
	for id := NodeID(0); int(id) < 6; id++ {
		if tr.IsBranch(id) {
			require.Equal(t, 2, visits[id], "branch %d", id)
		} else {
			leaves = append(leaves, id)
			require.Equal(t, 1, visits[id], "leaf %d", id)
		}
	}
	_ = branches
	_ = leaves
}

func TestEmptyBranchVisitedTwiceNoDescent(t *testing.T) {
	tr := New[int]()
	root := tr.NewBranch(9)
	seq := []Pos{}
	tr.Walk(root, func(p Pos) bool {
		seq = append(seq, p)
		return true
	})
	require.Equal(t, []Pos{{root, false}, {root, true}}, seq)
}

func TestSiblingIteration(t *testing.T) {
	tr := New[int]()
	root := tr.NewBranch(0)
	a := tr.NewLeaf(1)
	b := tr.NewLeaf(2)
	c := tr.NewLeaf(3)
	tr.AppendChild(root, a)
	tr.AppendChild(root, b)
	tr.AppendChild(root, c)

	require.Equal(t, a, tr.SiblingBegin(root))
	require.Equal(t, b, tr.NextSibling(a))
	require.Equal(t, c, tr.NextSibling(b))
	require.Equal(t, None, tr.NextSibling(c))
	require.Equal(t, b, tr.PrevSibling(c))
	require.Equal(t, None, tr.PrevSibling(a))
}

func TestInsertChildAfter(t *testing.T) {
	tr := New[int]()
	root := tr.NewBranch(0)
	a := tr.NewLeaf(1)
	c := tr.NewLeaf(3)
	tr.AppendChild(root, a)
	tr.AppendChild(root, c)

	b := tr.NewLeaf(2)
	tr.InsertChildAfter(root, 0, b)

	require.Equal(t, []NodeID{a, b, c}, tr.Children(root))
}
