package ordstore

import (
	"sync"

	"github.com/guap-codes/ordmap/pkg/comparator"
	"golang.org/x/exp/constraints"
)

const defaultDegree = 2

// Tree is the persistent variant of ordtree.Tree: every node lives behind
// a Storage collaborator instead of in process memory, addressed by a
// stable uint64 identifier. Its operation set mirrors ordtree.Tree; every
// method that reads or writes storage additionally returns an error, per
// spec §7 (Len, IsEmpty and RootID read only in-process state and do not).
type Tree[K any, V any] struct {
	mu      sync.Mutex
	storage Storage
	degree  int
	length  int
	rootID  uint64
	cmp     comparator.Func[K]
}

// Open creates a fresh persistent tree of the default degree (2) over a
// naturally ordered key type, rooted at a new empty leaf in storage.
func Open[K constraints.Ordered, V any](storage Storage) (*Tree[K, V], error) {
	return OpenWithDegree[K, V](storage, defaultDegree)
}

// OpenWithDegree creates a fresh persistent tree of the given degree.
// Degrees below 2 are a programming error.
func OpenWithDegree[K constraints.Ordered, V any](storage Storage, degree int) (*Tree[K, V], error) {
	return OpenWithComparator[K, V](storage, degree, comparator.Ordered[K]())
}

// OpenWithComparator creates a fresh persistent tree using an explicit key
// comparator, for key types without a natural ordering.
func OpenWithComparator[K any, V any](storage Storage, degree int, cmp comparator.Func[K]) (*Tree[K, V], error) {
	if degree < 2 {
		panic("ordstore: degree must be at least 2")
	}
	root, err := allocNode[K, V](storage)
	if err != nil {
		return nil, err
	}
	return &Tree[K, V]{
		storage: storage,
		degree:  degree,
		rootID:  root.ID,
		cmp:     cmp,
	}, nil
}

// OpenAt resumes a persistent tree whose root is already the node with the
// given identifier (e.g. after a process restart that recorded the root ID
// out of band).
func OpenAt[K any, V any](storage Storage, degree int, cmp comparator.Func[K], rootID uint64, length int) *Tree[K, V] {
	return &Tree[K, V]{storage: storage, degree: degree, rootID: rootID, cmp: cmp, length: length}
}

// RootID returns the identifier of the tree's current root node, so a
// caller can record it out of band and resume with OpenAt.
func (t *Tree[K, V]) RootID() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rootID
}

func (t *Tree[K, V]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.length
}

func (t *Tree[K, V]) IsEmpty() bool {
	return t.Len() == 0
}

func (t *Tree[K, V]) Contains(k K) (bool, error) {
	_, ok, err := t.Get(k)
	return ok, err
}

func (t *Tree[K, V]) Get(k K) (V, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero V
	n, err := load[K, V](t.storage, t.rootID)
	if err != nil {
		return zero, false, err
	}
	for {
		idx := n.findIndex(t.cmp, k)
		if idx < n.len() && t.cmp(n.Keys[idx], k) == 0 {
			return n.Vals[idx], true, nil
		}
		if n.isLeaf() {
			return zero, false, nil
		}
		n, err = load[K, V](t.storage, n.Children[idx])
		if err != nil {
			return zero, false, err
		}
	}
}

func (t *Tree[K, V]) Insert(k K, v V) (V, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero V
	root, err := load[K, V](t.storage, t.rootID)
	if err != nil {
		return zero, false, err
	}

	if root.isFull(t.degree) {
		newRoot, err := allocNode[K, V](t.storage)
		if err != nil {
			return zero, false, err
		}
		newRoot.Children = append(newRoot.Children, root.ID)
		if err := persist(t.storage, newRoot); err != nil {
			return zero, false, err
		}
		if err := splitChild(t.storage, newRoot, 0, t.degree); err != nil {
			return zero, false, err
		}
		t.rootID = newRoot.ID
		root = newRoot
	}

	old, existed, err := insertNonFull(t.storage, t.cmp, root, k, v, t.degree)
	if err != nil {
		return zero, false, err
	}
	if !existed {
		t.length++
	}
	return old, existed, nil
}

func (t *Tree[K, V]) Remove(k K) (V, bool, error) {
	_, v, ok, err := t.RemoveEntry(k)
	return v, ok, err
}

func (t *Tree[K, V]) RemoveEntry(k K) (K, V, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zk K
	var zv V

	root, err := load[K, V](t.storage, t.rootID)
	if err != nil {
		return zk, zv, false, err
	}

	rk, rv, ok, err := remove(t.storage, t.cmp, root, k, t.degree)
	if err != nil {
		return zk, zv, false, err
	}
	if !ok {
		return zk, zv, false, nil
	}

	if !root.isLeaf() && root.len() == 0 {
		t.rootID = root.Children[0]
	}

	t.length--
	return rk, rv, true, nil
}

// Clear discards the tree's contents by allocating a fresh empty root.
// Previously allocated node identifiers remain in storage, unreachable —
// reclaiming them is the storage collaborator's concern, not the tree's.
func (t *Tree[K, V]) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	root, err := allocNode[K, V](t.storage)
	if err != nil {
		return err
	}
	t.rootID = root.ID
	t.length = 0
	return nil
}
