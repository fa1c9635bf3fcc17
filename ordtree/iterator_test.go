package ordtree

import "testing"

func TestIterKeysValues(t *testing.T) {
	tr := WithDegree[int, string](2)
	want := map[int]string{3: "c", 1: "a", 2: "b", 5: "e", 4: "d"}
	for k, v := range want {
		tr.Insert(k, v)
	}

	it := tr.Iter()
	prev := -1
	count := 0
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		if k <= prev {
			t.Fatalf("keys not ascending: %d after %d", k, prev)
		}
		if want[k] != v {
			t.Fatalf("value for %d: got %q, want %q", k, v, want[k])
		}
		prev = k
		count++
	}
	if count != len(want) {
		t.Fatalf("yielded %d entries, want %d", count, len(want))
	}

	keys := tr.Keys()
	count = 0
	for {
		_, ok := keys.Next()
		if !ok {
			break
		}
		count++
	}
	if count != len(want) {
		t.Fatalf("Keys yielded %d, want %d", count, len(want))
	}

	values := tr.Values()
	count = 0
	for {
		_, ok := values.Next()
		if !ok {
			break
		}
		count++
	}
	if count != len(want) {
		t.Fatalf("Values yielded %d, want %d", count, len(want))
	}
}

func TestIterIsRestartable(t *testing.T) {
	tr := WithDegree[int, int](2)
	for i := 0; i < 5; i++ {
		tr.Insert(i, i)
	}

	first := collect(tr.Iter())
	second := collect(tr.Iter())
	if len(first) != len(second) {
		t.Fatalf("restarted iteration length mismatch")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("restarted iteration mismatch at %d: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestIterPanicsAfterMutation(t *testing.T) {
	tr := WithDegree[int, int](2)
	tr.Insert(1, 1)
	tr.Insert(2, 2)

	it := tr.Iter()
	tr.Insert(3, 3)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when advancing an iterator past a concurrent mutation")
		}
	}()
	it.Next()
}

func collect(it *Iter[int, int]) []int {
	var out []int
	for {
		k, _, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, k)
	}
	return out
}
