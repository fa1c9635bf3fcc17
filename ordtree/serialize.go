package ordtree

import (
	"encoding/json"
	"fmt"
)

// jsonNode is the exported, recursively nested mirror of node used only as
// the encoding/json wire shape — node itself carries unexported fields and
// a parent back-pointer that would otherwise make the encoding cyclic.
type jsonNode[K any, V any] struct {
	Keys     []K               `json:"keys"`
	Vals     []V               `json:"vals"`
	Children []*jsonNode[K, V] `json:"children,omitempty"`
}

// jsonTree is the whole-structure document SerializeTree/DeserializeTree
// round-trip: degree, size, and the root node tree.
type jsonTree[K any, V any] struct {
	Degree int            `json:"degree"`
	Length int            `json:"length"`
	Root   *jsonNode[K, V] `json:"root"`
}

func toJSONNode[K any, V any](n *node[K, V]) *jsonNode[K, V] {
	jn := &jsonNode[K, V]{
		Keys: append([]K(nil), n.keys...),
		Vals: append([]V(nil), n.vals...),
	}
	for _, c := range n.children {
		jn.Children = append(jn.Children, toJSONNode(c))
	}
	return jn
}

func fromJSONNode[K any, V any](jn *jsonNode[K, V], parent *node[K, V]) *node[K, V] {
	n := &node[K, V]{
		keys:   append([]K(nil), jn.Keys...),
		vals:   append([]V(nil), jn.Vals...),
		parent: parent,
	}
	for _, jc := range jn.Children {
		n.children = append(n.children, fromJSONNode(jc, n))
	}
	return n
}

// SerializeTree converts the tree to a JSON string for storage or
// transmission — a whole-structure, human-inspectable debug helper, not
// part of the tree's operational contract. Grounded on the teacher's
// internal/tree/utils.go SerializeTree, kept on encoding/json exactly as
// the teacher uses it there.
func (t *Tree[K, V]) SerializeTree() (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	doc := jsonTree[K, V]{Degree: t.degree, Length: t.length, Root: toJSONNode(t.root)}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("ordtree: failed to serialize tree: %w", err)
	}
	return string(data), nil
}

// DeserializeTree loads a tree from a JSON string produced by
// SerializeTree, replacing this tree's contents in place. Grounded on the
// teacher's internal/tree/utils.go DeserializeTree.
func (t *Tree[K, V]) DeserializeTree(data string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var doc jsonTree[K, V]
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return fmt.Errorf("ordtree: failed to deserialize tree: %w", err)
	}

	t.degree = doc.Degree
	t.length = doc.Length
	if doc.Root == nil {
		t.root = newLeaf[K, V]()
	} else {
		t.root = fromJSONNode[K, V](doc.Root, nil)
	}
	t.gen++
	return nil
}
