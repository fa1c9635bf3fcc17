package ordstore

import "github.com/guap-codes/ordmap/pkg/comparator"

// splitChild splits the full child at parent.Children[i] around its
// median, promoting the median into parent. Every touched node — parent,
// the shrunk left half, and the freshly allocated right half — is loaded
// by identifier and persisted back before this returns, per spec §9's
// "descend by identifier, load fresh, mutate, persist back" discipline.
func splitChild[K any, V any](storage Storage, parent *pnode[K, V], i int, degree int) error {
	left, err := load[K, V](storage, parent.Children[i])
	if err != nil {
		return err
	}

	right, err := allocNode[K, V](storage)
	if err != nil {
		return err
	}

	right.Keys = append(right.Keys, left.Keys[degree:]...)
	right.Vals = append(right.Vals, left.Vals[degree:]...)

	medianKey := left.Keys[degree-1]
	medianVal := left.Vals[degree-1]

	if !left.isLeaf() {
		right.Children = append(right.Children, left.Children[degree:]...)
		left.Children = left.Children[:degree]
	}

	left.Keys = left.Keys[:degree-1]
	left.Vals = left.Vals[:degree-1]

	parent.Keys = insertAt(parent.Keys, i, medianKey)
	parent.Vals = insertAt(parent.Vals, i, medianVal)
	parent.Children = insertAt(parent.Children, i+1, right.ID)

	if err := persist(storage, left); err != nil {
		return err
	}
	if err := persist(storage, right); err != nil {
		return err
	}
	return persist(storage, parent)
}

// insertNonFull descends top-down by identifier, proactively splitting any
// full child before loading it, so the loaded node handed to the next
// iteration is always non-full.
func insertNonFull[K any, V any](storage Storage, cmp comparator.Func[K], root *pnode[K, V], k K, v V, degree int) (old V, existed bool, err error) {
	n := root
	for {
		idx := n.findIndex(cmp, k)

		if idx < n.len() && cmp(n.Keys[idx], k) == 0 {
			old = n.Vals[idx]
			n.Vals[idx] = v
			return old, true, persist(storage, n)
		}

		if n.isLeaf() {
			n.Keys = insertAt(n.Keys, idx, k)
			n.Vals = insertAt(n.Vals, idx, v)
			return old, false, persist(storage, n)
		}

		childID := n.Children[idx]
		child, lerr := load[K, V](storage, childID)
		if lerr != nil {
			return old, false, lerr
		}

		if child.isFull(degree) {
			if err := splitChild(storage, n, idx, degree); err != nil {
				return old, false, err
			}
			if c := cmp(n.Keys[idx], k); c == 0 {
				old = n.Vals[idx]
				n.Vals[idx] = v
				return old, true, persist(storage, n)
			} else if c < 0 {
				idx++
			}
			child, lerr = load[K, V](storage, n.Children[idx])
			if lerr != nil {
				return old, false, lerr
			}
		}
		n = child
	}
}

func minKey[K any, V any](storage Storage, n *pnode[K, V]) (K, error) {
	cur := n
	for !cur.isLeaf() {
		next, err := load[K, V](storage, cur.Children[0])
		if err != nil {
			var zero K
			return zero, err
		}
		cur = next
	}
	return cur.Keys[0], nil
}

func maxKey[K any, V any](storage Storage, n *pnode[K, V]) (K, error) {
	cur := n
	for !cur.isLeaf() {
		next, err := load[K, V](storage, cur.Children[len(cur.Children)-1])
		if err != nil {
			var zero K
			return zero, err
		}
		cur = next
	}
	return cur.Keys[len(cur.Keys)-1], nil
}

// remove deletes k from the subtree addressed by n's identifier, top-down,
// loading each child fresh by ID and persisting it (and n) back before
// recursing further — this is the reimplementation spec §9 calls for in
// place of recursing on locally-materialized copies.
func remove[K any, V any](storage Storage, cmp comparator.Func[K], n *pnode[K, V], k K, degree int) (rk K, rv V, ok bool, err error) {
	idx := n.findIndex(cmp, k)

	if idx < n.len() && cmp(n.Keys[idx], k) == 0 {
		if n.isLeaf() {
			rk, rv = n.Keys[idx], n.Vals[idx]
			n.Keys = removeAt(n.Keys, idx)
			n.Vals = removeAt(n.Vals, idx)
			return rk, rv, true, persist(storage, n)
		}
		return removeFromInternal(storage, cmp, n, idx, degree)
	}

	if n.isLeaf() {
		var zk K
		var zv V
		return zk, zv, false, nil
	}

	if err := fattenChildBeforeDescent(storage, n, idx, degree); err != nil {
		var zk K
		var zv V
		return zk, zv, false, err
	}
	idx = n.findIndex(cmp, k)

	child, lerr := load[K, V](storage, n.Children[idx])
	if lerr != nil {
		var zk K
		var zv V
		return zk, zv, false, lerr
	}
	return remove(storage, cmp, child, k, degree)
}

// removeFromInternal implements spec Case 2. The child that is recursively
// mutated is written back before the parent's separator slot is swapped
// and persisted, per spec §9's required write ordering.
func removeFromInternal[K any, V any](storage Storage, cmp comparator.Func[K], n *pnode[K, V], idx int, degree int) (rk K, rv V, ok bool, err error) {
	var zk K
	var zv V

	left, lerr := load[K, V](storage, n.Children[idx])
	if lerr != nil {
		return zk, zv, false, lerr
	}
	right, rerr := load[K, V](storage, n.Children[idx+1])
	if rerr != nil {
		return zk, zv, false, rerr
	}

	switch {
	case left.len() >= degree:
		predKey, kerr := maxKey(storage, left)
		if kerr != nil {
			return zk, zv, false, kerr
		}
		_, predVal, _, derr := remove(storage, cmp, left, predKey, degree)
		if derr != nil {
			return zk, zv, false, derr
		}
		rk, rv = n.Keys[idx], n.Vals[idx]
		n.Keys[idx], n.Vals[idx] = predKey, predVal
		return rk, rv, true, persist(storage, n)

	case right.len() >= degree:
		succKey, kerr := minKey(storage, right)
		if kerr != nil {
			return zk, zv, false, kerr
		}
		_, succVal, _, derr := remove(storage, cmp, right, succKey, degree)
		if derr != nil {
			return zk, zv, false, derr
		}
		rk, rv = n.Keys[idx], n.Vals[idx]
		n.Keys[idx], n.Vals[idx] = succKey, succVal
		return rk, rv, true, persist(storage, n)

	default:
		key, val := n.Keys[idx], n.Vals[idx]

		left.Keys = append(left.Keys, key)
		left.Vals = append(left.Vals, val)
		left.Keys = append(left.Keys, right.Keys...)
		left.Vals = append(left.Vals, right.Vals...)
		if !left.isLeaf() {
			left.Children = append(left.Children, right.Children...)
		}

		n.Keys = removeAt(n.Keys, idx)
		n.Vals = removeAt(n.Vals, idx)
		n.Children = removeAt(n.Children, idx+1)

		if err := persist(storage, n); err != nil {
			return zk, zv, false, err
		}
		return remove(storage, cmp, left, key, degree)
	}
}

// fattenChildBeforeDescent implements spec Case 3 over freshly loaded
// siblings: rotate left sibling first, then right; failing that, merge
// left first, then right.
func fattenChildBeforeDescent[K any, V any](storage Storage, n *pnode[K, V], i int, degree int) error {
	child, err := load[K, V](storage, n.Children[i])
	if err != nil {
		return err
	}
	if child.len() >= degree {
		return nil
	}

	if i > 0 {
		left, err := load[K, V](storage, n.Children[i-1])
		if err != nil {
			return err
		}
		if left.len() >= degree {
			return rotateRight(storage, n, i, child, left)
		}
	}
	if i+1 < len(n.Children) {
		right, err := load[K, V](storage, n.Children[i+1])
		if err != nil {
			return err
		}
		if right.len() >= degree {
			return rotateLeft(storage, n, i, child, right)
		}
	}
	if i > 0 {
		return mergeChildren(storage, n, i-1)
	}
	return mergeChildren(storage, n, i)
}

func rotateRight[K any, V any](storage Storage, n *pnode[K, V], i int, child, left *pnode[K, V]) error {
	child.Keys = insertAt(child.Keys, 0, n.Keys[i-1])
	child.Vals = insertAt(child.Vals, 0, n.Vals[i-1])

	lastIdx := left.len() - 1
	n.Keys[i-1] = left.Keys[lastIdx]
	n.Vals[i-1] = left.Vals[lastIdx]
	left.Keys = left.Keys[:lastIdx]
	left.Vals = left.Vals[:lastIdx]

	if !left.isLeaf() {
		borrowed := left.Children[len(left.Children)-1]
		left.Children = left.Children[:len(left.Children)-1]
		child.Children = insertAt(child.Children, 0, borrowed)
	}

	if err := persist(storage, child); err != nil {
		return err
	}
	if err := persist(storage, left); err != nil {
		return err
	}
	return persist(storage, n)
}

func rotateLeft[K any, V any](storage Storage, n *pnode[K, V], i int, child, right *pnode[K, V]) error {
	child.Keys = append(child.Keys, n.Keys[i])
	child.Vals = append(child.Vals, n.Vals[i])

	n.Keys[i] = right.Keys[0]
	n.Vals[i] = right.Vals[0]
	right.Keys = removeAt(right.Keys, 0)
	right.Vals = removeAt(right.Vals, 0)

	if !right.isLeaf() {
		borrowed := right.Children[0]
		right.Children = removeAt(right.Children, 0)
		child.Children = append(child.Children, borrowed)
	}

	if err := persist(storage, child); err != nil {
		return err
	}
	if err := persist(storage, right); err != nil {
		return err
	}
	return persist(storage, n)
}

func mergeChildren[K any, V any](storage Storage, n *pnode[K, V], i int) error {
	left, err := load[K, V](storage, n.Children[i])
	if err != nil {
		return err
	}
	right, err := load[K, V](storage, n.Children[i+1])
	if err != nil {
		return err
	}

	left.Keys = append(left.Keys, n.Keys[i])
	left.Vals = append(left.Vals, n.Vals[i])
	left.Keys = append(left.Keys, right.Keys...)
	left.Vals = append(left.Vals, right.Vals...)
	if !left.isLeaf() {
		left.Children = append(left.Children, right.Children...)
	}

	n.Keys = removeAt(n.Keys, i)
	n.Vals = removeAt(n.Vals, i)
	n.Children = removeAt(n.Children, i+1)

	if err := persist(storage, left); err != nil {
		return err
	}
	return persist(storage, n)
}
