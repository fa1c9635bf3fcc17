package ordtree

// Validate checks part of the B-tree invariants of spec §3: every non-root
// node holds between degree-1 and 2*degree-1 keys and the root at most
// 2*degree-1; keys ascend within each node; every internal node has one
// more child than keys; all leaves sit at the same depth; and each child's
// parent pointer names its parent. It does not check that a node holds as
// many values as keys, nor that a child's keys lie between the parent's
// separator keys. It is not part of
// the tree's operational contract — every public mutator already
// preserves these invariants by construction — but is exercised by tests
// and available for debugging.
func (t *Tree[K, V]) Validate() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.root.len() == 0 && t.root.isLeaf() {
		return true
	}

	depth := -1
	return t.validateNode(t.root, true, 0, &depth)
}

func (t *Tree[K, V]) validateNode(n *node[K, V], isRoot bool, depth int, leafDepth *int) bool {
	size := n.len()
	if !isRoot && (size < t.degree-1 || size > 2*t.degree-1) {
		t.logger.Errorf("ordtree: node at depth %d has %d keys, outside [%d, %d]", depth, size, t.degree-1, 2*t.degree-1)
		return false
	}
	if isRoot && size > 2*t.degree-1 {
		t.logger.Errorf("ordtree: root has %d keys, exceeds %d", size, 2*t.degree-1)
		return false
	}

	for i := 1; i < size; i++ {
		if t.cmp(n.keys[i-1], n.keys[i]) >= 0 {
			t.logger.Errorf("ordtree: keys out of order at depth %d, index %d", depth, i)
			return false
		}
	}

	if n.isLeaf() {
		if *leafDepth == -1 {
			*leafDepth = depth
		} else if *leafDepth != depth {
			t.logger.Errorf("ordtree: leaves at unequal depth: %d and %d", *leafDepth, depth)
			return false
		}
		return true
	}

	if len(n.children) != size+1 {
		t.logger.Errorf("ordtree: internal node at depth %d has %d keys but %d children", depth, size, len(n.children))
		return false
	}

	for _, c := range n.children {
		if c.parent != n {
			t.logger.Errorf("ordtree: parent pointer mismatch at depth %d", depth)
			return false
		}
		if !t.validateNode(c, false, depth+1, leafDepth) {
			return false
		}
	}
	return true
}
