package ordstore

import (
	"io"

	"github.com/guap-codes/ordmap/pkg/comparator"
)

// pnode is the persisted node shape: self-describing (carries its own ID,
// also the storage key) and addressing children by identifier rather than
// pointer, per spec §6.2.
type pnode[K any, V any] struct {
	ID       uint64
	Keys     []K
	Vals     []V
	Children []uint64
}

func (n *pnode[K, V]) len() int     { return len(n.Keys) }
func (n *pnode[K, V]) isLeaf() bool { return len(n.Children) == 0 }
func (n *pnode[K, V]) isFull(degree int) bool {
	return len(n.Keys) == 2*degree-1
}

func (n *pnode[K, V]) findIndex(cmp comparator.Func[K], k K) int {
	left, right := 0, len(n.Keys)
	for left < right {
		mid := left + (right-left)/2
		switch {
		case cmp(n.Keys[mid], k) == 0:
			return mid
		case cmp(n.Keys[mid], k) < 0:
			left = mid + 1
		default:
			right = mid
		}
	}
	return left
}

// load reads and decodes the node stored under id.
func load[K any, V any](storage Storage, id uint64) (*pnode[K, V], error) {
	rc, err := storage.ReadHandle(id)
	if err != nil {
		if err == ErrNotFound {
			return nil, wrap(KindStorage, err)
		}
		return nil, wrap(KindIO, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, wrap(KindIO, err)
	}
	return decodeNode[K, V](data)
}

// persist encodes and writes n under its own ID, replacing any prior bytes.
func persist[K any, V any](storage Storage, n *pnode[K, V]) error {
	data, err := encodeNode(n)
	if err != nil {
		return err
	}
	wc, err := storage.WriteHandle(n.ID)
	if err != nil {
		return wrap(KindIO, err)
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return wrap(KindIO, err)
	}
	return wrap(KindIO, wc.Close())
}

// allocNode reserves a fresh identifier, builds an empty node under it, and
// persists it immediately so every live identifier has bytes behind it.
func allocNode[K any, V any](storage Storage) (*pnode[K, V], error) {
	id, err := storage.AllocID()
	if err != nil {
		return nil, wrap(KindAllocator, err)
	}
	n := &pnode[K, V]{ID: id}
	if err := persist(storage, n); err != nil {
		return nil, err
	}
	return n, nil
}

func insertAt[T any](s []T, i int, v T) []T {
	s = append(s, v)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func removeAt[T any](s []T, i int) []T {
	return append(s[:i], s[i+1:]...)
}
