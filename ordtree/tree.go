// Package ordtree implements an ordered associative container — a mapping
// from keys to values keyed on a total order — as an in-memory B-tree of
// configurable minimum degree.
package ordtree

import (
	"sync"

	"github.com/guap-codes/ordmap/pkg/comparator"
	"github.com/guap-codes/ordmap/pkg/logger"
	"golang.org/x/exp/constraints"
)

const defaultDegree = 2

// Tree is a B-tree backed ordered map. The zero value is not usable; build
// one with New, WithDegree, or WithComparator. A Tree is safe for any
// number of concurrent readers, or one exclusive writer, like a
// sync.RWMutex: iterators hold a read lock for the duration of their
// construction only and must not be used concurrently with a mutation.
type Tree[K any, V any] struct {
	mu     sync.RWMutex
	degree int
	length int
	root   *node[K, V]
	cmp    comparator.Func[K]
	gen    uint64
	logger *logger.Logger
}

// New creates an empty tree of the default degree (2) over a naturally
// ordered key type.
func New[K constraints.Ordered, V any]() *Tree[K, V] {
	return WithDegree[K, V](defaultDegree)
}

// WithDegree creates an empty tree of the given degree over a naturally
// ordered key type. Degrees below 2 are a programming error.
func WithDegree[K constraints.Ordered, V any](degree int) *Tree[K, V] {
	return WithComparator[K, V](degree, comparator.Ordered[K]())
}

// WithComparator creates an empty tree of the given degree using an
// explicit key comparator, for key types without a natural ordering.
// Degrees below 2 are a programming error.
func WithComparator[K any, V any](degree int, cmp comparator.Func[K]) *Tree[K, V] {
	log := logger.New(logger.Error, discard{})
	if degree < 2 {
		log.Panicf("ordtree: degree must be at least 2, got %d", degree)
	}
	return &Tree[K, V]{
		degree: degree,
		root:   newLeaf[K, V](),
		cmp:    cmp,
		logger: log,
	}
}

// SetLogger replaces the tree's logger, e.g. to route structural events to
// an application's own sink instead of the default discarding one.
func (t *Tree[K, V]) SetLogger(l *logger.Logger) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger = l
}

// Degree returns the tree's minimum degree.
func (t *Tree[K, V]) Degree() int {
	return t.degree
}

// Len returns the number of entries in the tree.
func (t *Tree[K, V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.length
}

// IsEmpty reports whether the tree has no entries.
func (t *Tree[K, V]) IsEmpty() bool {
	return t.Len() == 0
}

// Contains reports whether k is present in the tree.
func (t *Tree[K, V]) Contains(k K) bool {
	_, ok := t.Get(k)
	return ok
}

// Get returns the value bound to k, if present.
func (t *Tree[K, V]) Get(k K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	idx, n := t.find(k)
	if n == nil {
		var zero V
		return zero, false
	}
	return n.vals[idx], true
}

// GetMut returns a pointer into the tree's internal storage for k's value,
// allowing in-place mutation without a Remove+Insert round trip.
func (t *Tree[K, V]) GetMut(k K) (*V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx, n := t.find(k)
	if n == nil {
		return nil, false
	}
	return &n.vals[idx], true
}

// GetKeyValue returns the stored key (not the queried one — relevant when
// equality doesn't imply identity) together with its value.
func (t *Tree[K, V]) GetKeyValue(k K) (K, V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	idx, n := t.find(k)
	if n == nil {
		var zk K
		var zv V
		return zk, zv, false
	}
	return n.keys[idx], n.vals[idx], true
}

// find descends from root looking for k, returning the index within the
// owning node, or (0, nil) on a miss.
func (t *Tree[K, V]) find(k K) (int, *node[K, V]) {
	n := t.root
	for {
		idx := n.findIndex(t.cmp, k)
		if idx < n.len() && t.cmp(n.keys[idx], k) == 0 {
			return idx, n
		}
		if n.isLeaf() {
			return 0, nil
		}
		n = n.children[idx]
	}
}

// Insert binds v to k, returning the prior value and true if k already
// existed, or the zero value and false otherwise.
func (t *Tree[K, V]) Insert(k K, v V) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.root.isFull(t.degree) {
		oldRoot := t.root
		newRoot := &node[K, V]{children: []*node[K, V]{oldRoot}}
		oldRoot.parent = newRoot
		newRoot.splitChild(t.logger, 0, t.degree)
		t.root = newRoot
		t.logger.Infof("ordtree: root split, new root has %d keys", newRoot.len())
	}

	old, existed := t.root.insertNonFull(t.logger, t.cmp, k, v, t.degree)
	if !existed {
		t.length++
	}
	t.gen++
	return old, existed
}

// Remove removes k, returning its value if it was present.
func (t *Tree[K, V]) Remove(k K) (V, bool) {
	_, v, ok := t.RemoveEntry(k)
	return v, ok
}

// RemoveEntry removes k, returning the removed key/value pair if k was
// present.
func (t *Tree[K, V]) RemoveEntry(k K) (K, V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rk, rv, ok := t.root.remove(t.logger, t.cmp, k, t.degree)
	if !ok {
		var zk K
		var zv V
		return zk, zv, false
	}

	if !t.root.isLeaf() && t.root.len() == 0 {
		newRoot := t.root.children[0]
		newRoot.parent = nil
		t.root = newRoot
		t.logger.Infof("ordtree: root shrunk")
	}

	t.length--
	t.gen++
	return rk, rv, true
}

// Clear resets the tree to the empty state.
func (t *Tree[K, V]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root = newLeaf[K, V]()
	t.length = 0
	t.gen++
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
