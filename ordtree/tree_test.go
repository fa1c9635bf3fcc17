package ordtree

import (
	"math/rand"
	"reflect"
	"testing"
)

func newTestTree[V any]() *Tree[int, V] {
	return WithDegree[int, V](2)
}

// TestShuffledAlphabet is the spec's end-to-end scenario 1.
func TestShuffledAlphabet(t *testing.T) {
	tr := WithDegree[rune, rune](2)
	shuffled := []rune("iqgkzyrjexbalpcwtsvfmuhdon")

	for _, c := range shuffled {
		if _, existed := tr.Insert(c, c); existed {
			t.Fatalf("insert %q: expected no prior value", c)
		}
		if !tr.Contains(c) {
			t.Fatalf("contains %q: expected true right after insert", c)
		}
		if !tr.Validate() {
			t.Fatalf("invariants violated after inserting %q", c)
		}
	}

	for i, c := range shuffled {
		v, ok := tr.Remove(c)
		if !ok || v != c {
			t.Fatalf("remove %q: got (%v, %v), want (%v, true)", c, v, ok, c)
		}
		if !tr.Validate() {
			t.Fatalf("invariants violated after removing %q", c)
		}
		for j, d := range shuffled {
			if j <= i {
				if tr.Contains(d) {
					t.Fatalf("after removing up to %q, %q should be absent", c, d)
				}
			} else {
				if !tr.Contains(d) {
					t.Fatalf("after removing up to %q, %q should still be present", c, d)
				}
			}
		}
	}

	if !tr.IsEmpty() {
		t.Fatalf("expected empty tree at the end")
	}
}

// TestReplaceAndRemove is the spec's end-to-end scenario 2.
func TestReplaceAndRemove(t *testing.T) {
	tr := newTestTree[int]()

	for i := 0; i < 10; i++ {
		if _, existed := tr.Insert(i, i); existed {
			t.Fatalf("insert(%d, %d): expected no prior value", i, i)
		}
		old, existed := tr.Insert(i, i+1)
		if !existed || old != i {
			t.Fatalf("insert(%d, %d): got (%d, %v), want (%d, true)", i, i+1, old, existed, i)
		}
		if tr.Len() != i+1 {
			t.Fatalf("len = %d, want %d", tr.Len(), i+1)
		}
	}

	for i := 0; i < 10; i++ {
		v, ok := tr.Remove(i)
		if !ok || v != i+1 {
			t.Fatalf("remove(%d): got (%d, %v), want (%d, true)", i, v, ok, i+1)
		}
		if tr.Len() != 9-i {
			t.Fatalf("len = %d, want %d", tr.Len(), 9-i)
		}
	}
}

// buildCLRSFixture constructs the exact 23-entry reference tree from CLRS
// Figure 18.8, extended — grounded verbatim on
// original_source/src/test.rs::clrs_example_18_8_extended.
func buildCLRSFixture() *Tree[rune, rune] {
	leaf := func(keys string) *node[rune, rune] {
		n := &node[rune, rune]{}
		for _, c := range keys {
			n.keys = append(n.keys, c)
			n.vals = append(n.vals, c)
		}
		return n
	}
	attach := func(parent *node[rune, rune], children ...*node[rune, rune]) *node[rune, rune] {
		parent.children = append(parent.children, children...)
		for _, c := range children {
			c.parent = parent
		}
		return parent
	}

	ab := leaf("ab")
	def := leaf("def")
	jkl := leaf("jkl")
	no := leaf("no")
	qrs := leaf("qrs")
	uv := leaf("uv")
	yz := leaf("yz")

	cgm := attach(leaf("cgm"), ab, def, jkl, no)
	tx := attach(leaf("tx"), qrs, uv, yz)
	root := attach(leaf("p"), cgm, tx)

	tr := WithDegree[rune, rune](3)
	tr.root = root
	tr.length = 23
	return tr
}

func runesOf(s string) []rune { return []rune(s) }

// TestCLRSFigure188Extended is the spec's end-to-end scenario 3.
func TestCLRSFigure188Extended(t *testing.T) {
	tr := buildCLRSFixture()

	order := []rune("fmgdbeljcyqtrsoxakunpvz")

	steps := []struct {
		removed  rune
		expected [][][]rune
	}{
		{'f', [][][]rune{{runesOf("p")}, {runesOf("cgm"), runesOf("tx")}, {runesOf("ab"), runesOf("de"), runesOf("jkl"), runesOf("no"), runesOf("qrs"), runesOf("uv"), runesOf("yz")}}},
		{'m', [][][]rune{{runesOf("p")}, {runesOf("cgl"), runesOf("tx")}, {runesOf("ab"), runesOf("de"), runesOf("jk"), runesOf("no"), runesOf("qrs"), runesOf("uv"), runesOf("yz")}}},
		{'g', [][][]rune{{runesOf("p")}, {runesOf("cl"), runesOf("tx")}, {runesOf("ab"), runesOf("dejk"), runesOf("no"), runesOf("qrs"), runesOf("uv"), runesOf("yz")}}},
		{'d', [][][]rune{{runesOf("clptx")}, {runesOf("ab"), runesOf("ejk"), runesOf("no"), runesOf("qrs"), runesOf("uv"), runesOf("yz")}}},
		{'b', [][][]rune{{runesOf("elptx")}, {runesOf("ac"), runesOf("jk"), runesOf("no"), runesOf("qrs"), runesOf("uv"), runesOf("yz")}}},
		{'e', [][][]rune{{runesOf("lptx")}, {runesOf("acjk"), runesOf("no"), runesOf("qrs"), runesOf("uv"), runesOf("yz")}}},
		{'l', [][][]rune{{runesOf("kptx")}, {runesOf("acj"), runesOf("no"), runesOf("qrs"), runesOf("uv"), runesOf("yz")}}},
		{'j', [][][]rune{{runesOf("kptx")}, {runesOf("ac"), runesOf("no"), runesOf("qrs"), runesOf("uv"), runesOf("yz")}}},
		{'c', [][][]rune{{runesOf("ptx")}, {runesOf("akno"), runesOf("qrs"), runesOf("uv"), runesOf("yz")}}},
		{'y', [][][]rune{{runesOf("pt")}, {runesOf("akno"), runesOf("qrs"), runesOf("uvxz")}}},
		{'q', [][][]rune{{runesOf("pt")}, {runesOf("akno"), runesOf("rs"), runesOf("uvxz")}}},
		{'t', [][][]rune{{runesOf("pu")}, {runesOf("akno"), runesOf("rs"), runesOf("vxz")}}},
		{'r', [][][]rune{{runesOf("ou")}, {runesOf("akn"), runesOf("ps"), runesOf("vxz")}}},
		{'s', [][][]rune{{runesOf("nu")}, {runesOf("ak"), runesOf("op"), runesOf("vxz")}}},
		{'o', [][][]rune{{runesOf("nv")}, {runesOf("ak"), runesOf("pu"), runesOf("xz")}}},
		{'x', [][][]rune{{runesOf("n")}, {runesOf("ak"), runesOf("puvz")}}},
		{'a', [][][]rune{{runesOf("p")}, {runesOf("kn"), runesOf("uvz")}}},
		{'k', [][][]rune{{runesOf("u")}, {runesOf("np"), runesOf("vz")}}},
		{'u', [][][]rune{{runesOf("npvz")}}},
		{'n', [][][]rune{{runesOf("pvz")}}},
		{'p', [][][]rune{{runesOf("vz")}}},
		{'v', [][][]rune{{runesOf("z")}}},
		{'z', nil},
	}

	if len(order) != len(steps) {
		t.Fatalf("fixture mismatch: %d removals, %d expectations", len(order), len(steps))
	}

	for i, step := range steps {
		if order[i] != step.removed {
			t.Fatalf("step %d: order says remove %q, table says %q", i, order[i], step.removed)
		}
		if _, _, ok := tr.RemoveEntry(step.removed); !ok {
			t.Fatalf("step %d: remove(%q) found nothing", i, step.removed)
		}
		got := tr.LevelOrder()
		if !reflect.DeepEqual(got, step.expected) {
			t.Fatalf("step %d (remove %q): tree shape =\n%v\nwant\n%v", i, step.removed, got, step.expected)
		}
		if !tr.Validate() {
			t.Fatalf("step %d (remove %q): invariants violated", i, step.removed)
		}
	}

	if !tr.IsEmpty() {
		t.Fatalf("expected empty tree at the end")
	}
}

// TestMonotoneGrowth is the spec's end-to-end scenario 4.
func TestMonotoneGrowth(t *testing.T) {
	tr := newTestTree[int]()
	for i := 1; i <= 1000; i++ {
		tr.Insert(i, i)
	}

	it := tr.Iter()
	for want := 1; want <= 1000; want++ {
		k, v, ok := it.Next()
		if !ok || k != want || v != want {
			t.Fatalf("iteration at %d: got (%d, %d, %v)", want, k, v, ok)
		}
	}
	if _, _, ok := it.Next(); ok {
		t.Fatalf("expected iterator exhausted after 1000 entries")
	}
}

// TestDegreeVariance is the spec's end-to-end scenario 5.
func TestDegreeVariance(t *testing.T) {
	for _, degree := range []int{2, 3, 8, 64} {
		tr := WithDegree[int, int](degree)
		for i := 1; i <= 1000; i++ {
			tr.Insert(i, i)
		}

		it := tr.Iter()
		for want := 1; want <= 1000; want++ {
			k, _, ok := it.Next()
			if !ok || k != want {
				t.Fatalf("degree %d: iteration at %d got (%d, %v)", degree, want, k, ok)
			}
		}
		if !tr.Validate() {
			t.Fatalf("degree %d: invariants violated", degree)
		}
	}
}

// TestFuzzAgainstReferenceMap is the spec's end-to-end scenario 6: a mixed
// insert/remove/lookup trace over a small key domain checked against
// Go's built-in map as the oracle.
func TestFuzzAgainstReferenceMap(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tr := WithDegree[int, int](3)
	ref := make(map[int]int)

	const domain = 200
	for i := 0; i < 10000; i++ {
		k := rng.Intn(domain)
		switch rng.Intn(3) {
		case 0:
			v := rng.Int()
			wantOld, wantExisted := ref[k]
			_, wasPresent := ref[k]
			ref[k] = v
			gotOld, gotExisted := tr.Insert(k, v)
			if gotExisted != wasPresent || (wasPresent && gotOld != wantOld) {
				t.Fatalf("op %d: insert(%d,%d) = (%d,%v), want (%d,%v)", i, k, v, gotOld, gotExisted, wantOld, wantExisted)
			}
		case 1:
			wantVal, wantOK := ref[k]
			delete(ref, k)
			gotVal, gotOK := tr.Remove(k)
			if gotOK != wantOK || (wantOK && gotVal != wantVal) {
				t.Fatalf("op %d: remove(%d) = (%d,%v), want (%d,%v)", i, k, gotVal, gotOK, wantVal, wantOK)
			}
		default:
			wantVal, wantOK := ref[k]
			gotVal, gotOK := tr.Get(k)
			if gotOK != wantOK || (wantOK && gotVal != wantVal) {
				t.Fatalf("op %d: get(%d) = (%d,%v), want (%d,%v)", i, k, gotVal, gotOK, wantVal, wantOK)
			}
		}
		if tr.Len() != len(ref) {
			t.Fatalf("op %d: len = %d, want %d", i, tr.Len(), len(ref))
		}
	}

	if !tr.Validate() {
		t.Fatalf("invariants violated after fuzz trace")
	}
}

// TestPermutationInvariance checks that inserting the same key set in
// different orders produces trees that compare equal under iteration.
func TestPermutationInvariance(t *testing.T) {
	keys := []int{5, 3, 8, 1, 4, 7, 9, 2, 6, 0, 15, 12, 20, 18, 11}

	perm1 := append([]int(nil), keys...)
	perm2 := make([]int, len(keys))
	copy(perm2, keys)
	rand.New(rand.NewSource(7)).Shuffle(len(perm2), func(i, j int) { perm2[i], perm2[j] = perm2[j], perm2[i] })

	t1 := WithDegree[int, int](2)
	for _, k := range perm1 {
		t1.Insert(k, k*10)
	}
	t2 := WithDegree[int, int](2)
	for _, k := range perm2 {
		t2.Insert(k, k*10)
	}

	it1, it2 := t1.Iter(), t2.Iter()
	for {
		k1, v1, ok1 := it1.Next()
		k2, v2, ok2 := it2.Next()
		if ok1 != ok2 {
			t.Fatalf("iterators disagree on exhaustion")
		}
		if !ok1 {
			break
		}
		if k1 != k2 || v1 != v2 {
			t.Fatalf("iterators disagree: (%d,%d) vs (%d,%d)", k1, v1, k2, v2)
		}
	}
}

func TestEmptyTree(t *testing.T) {
	tr := newTestTree[int]()
	if !tr.IsEmpty() {
		t.Fatalf("new tree should be empty")
	}
	if _, ok := tr.Get(1); ok {
		t.Fatalf("get on empty tree should miss")
	}
	if _, ok := tr.Remove(1); ok {
		t.Fatalf("remove on empty tree should miss")
	}
	if _, _, ok := tr.Iter().Next(); ok {
		t.Fatalf("iteration over empty tree should yield nothing")
	}
}

func TestRemoveAbsentKeyLeavesLenUnchanged(t *testing.T) {
	tr := newTestTree[int]()
	tr.Insert(1, 1)
	tr.Insert(2, 2)
	if _, ok := tr.Remove(99); ok {
		t.Fatalf("remove of absent key should miss")
	}
	if tr.Len() != 2 {
		t.Fatalf("len changed after removing an absent key")
	}
}

func TestInsertRemoveRestoresState(t *testing.T) {
	tr := newTestTree[int]()
	for _, k := range []int{10, 20, 30, 40, 50} {
		tr.Insert(k, k)
	}
	before := tr.String()
	lenBefore := tr.Len()

	tr.Insert(99, 99)
	tr.Remove(99)

	if tr.Len() != lenBefore {
		t.Fatalf("len not restored: got %d, want %d", tr.Len(), lenBefore)
	}
	if tr.String() != before {
		t.Fatalf("tree shape not restored after insert+remove round trip")
	}
}

func TestWithDegreeRejectsSmallDegree(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for degree < 2")
		}
	}()
	WithDegree[int, int](1)
}
