package ordtree

import (
	"bytes"
	"fmt"
)

// String returns a human-readable level-order dump of the tree, for
// debugging only — not part of the tree's contract. Grounded on the
// teacher's ToString/printNodeToString.
func (t *Tree[K, V]) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Tree(degree=%d, size=%d):\n", t.degree, t.length)
	t.writeNode(&buf, t.root, 0)
	return buf.String()
}

func (t *Tree[K, V]) writeNode(buf *bytes.Buffer, n *node[K, V], level int) {
	if n == nil {
		return
	}
	fmt.Fprintf(buf, "Level %d: %v\n", level, n.keys)
	for _, c := range n.children {
		t.writeNode(buf, c, level+1)
	}
}

// LevelOrder returns each level of the tree as a slice of that level's
// nodes' key lists, left to right — useful for comparing tree shape
// against a reference fixture in tests.
func (t *Tree[K, V]) LevelOrder() [][][]K {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.root.len() == 0 && t.root.isLeaf() {
		return nil
	}

	var levels [][][]K
	queue := []*node[K, V]{t.root}
	for len(queue) > 0 {
		var next []*node[K, V]
		var level [][]K
		for _, n := range queue {
			keys := make([]K, len(n.keys))
			copy(keys, n.keys)
			level = append(level, keys)
			next = append(next, n.children...)
		}
		levels = append(levels, level)
		queue = next
	}
	return levels
}
