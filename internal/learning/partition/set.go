// Package partition implements an ordered set whose elements are grouped into
// equivalence classes under a caller-supplied ordering.
//
// Elements that compare equal share a class and may be returned in any
// relative order. Classes are kept in ascending order and a class disappears
// together with its last member. Besides a one-pass sorted traversal the set
// offers a cyclic Loop iterator that reshuffles each class when it is entered
// and stays valid across interleaved Add/Remove/Partition calls.
//
// Contains is O(1) through a reverse index from element to class. Remove
// finds the class by binary search, O(log classes), and then deletes from
// the class slice, O(class size), since members keep their order for the
// Loop cursors. An element whose key was mutated in place is located by a
// linear scan instead; ResetEquivalenceClass is the only caller that needs it.
package partition

import (
	"errors"
	"iter"
	"math/rand/v2"
	"slices"
)

// ErrEmpty is the panic value raised when a Loop is advanced over an empty set.
var ErrEmpty = errors.New("partition: loop over empty set")

type class[T comparable] struct {
	items []T
}

// Set is an ordered partition set. It is not safe for concurrent use.
type Set[T comparable] struct {
	compare func(a, b T) int
	rng     *rand.Rand
	shuffle bool

	classes []*class[T]
	owner   map[T]*class[T]
	size    int
	loops   []*Loop[T]
}

// Option configures a Set.
type Option func(*options)

type options struct {
	noShuffle bool
}

// WithoutShuffle keeps class members in insertion order: the Loop iterator
// does not permute a class on entry and Partition takes a plain prefix.
func WithoutShuffle() Option {
	return func(o *options) { o.noShuffle = true }
}

// New creates an empty set ordered by compare. A nil rng falls back to a
// randomly seeded generator.
func New[T comparable](compare func(a, b T) int, rng *rand.Rand, opts ...Option) *Set[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Set[T]{
		compare: compare,
		rng:     rng,
		shuffle: !o.noShuffle,
		owner:   make(map[T]*class[T]),
	}
}

// derive returns an empty set with the same ordering, generator and options.
func (s *Set[T]) derive() *Set[T] {
	return &Set[T]{
		compare: s.compare,
		rng:     s.rng,
		shuffle: s.shuffle,
		owner:   make(map[T]*class[T]),
	}
}

// Len returns the number of elements.
func (s *Set[T]) Len() int { return s.size }

// Contains reports whether x is in the set.
func (s *Set[T]) Contains(x T) bool {
	_, ok := s.owner[x]
	return ok
}

// Add inserts x at the tail of its equivalence class, creating the class at
// its sorted position if needed. It returns false if x was already present.
func (s *Set[T]) Add(x T) bool {
	return s.insert(x, false)
}

// AddExpired inserts x at the head of its equivalence class. If that creates
// a new class which the running Loop would enter next, the Loop skips it for
// the current cycle so x is not shown again right away.
func (s *Set[T]) AddExpired(x T) bool {
	return s.insert(x, true)
}

func (s *Set[T]) insert(x T, expired bool) bool {
	if _, ok := s.owner[x]; ok {
		return false
	}

	i, found := s.search(x)
	if found {
		c := s.classes[i]
		if expired {
			c.items = slices.Insert(c.items, 0, x)
			for _, l := range s.loops {
				l.headInserted(i)
			}
		} else {
			c.items = append(c.items, x)
		}
		s.owner[x] = c
		s.size++
		return true
	}

	c := &class[T]{items: []T{x}}
	s.classes = slices.Insert(s.classes, i, c)
	s.owner[x] = c
	s.size++
	for _, l := range s.loops {
		l.classInserted(i, expired)
	}
	return true
}

// Remove deletes x. It returns false if x was not present.
func (s *Set[T]) Remove(x T) bool {
	c, ok := s.owner[x]
	if !ok {
		return false
	}

	ci := s.classIndex(c)
	j := slices.Index(c.items, x)
	c.items = slices.Delete(c.items, j, j+1)
	delete(s.owner, x)
	s.size--

	for _, l := range s.loops {
		l.itemRemoved(ci, j)
	}
	if len(c.items) == 0 {
		s.classes = slices.Delete(s.classes, ci, ci+1)
		for _, l := range s.loops {
			l.classRemoved(ci)
		}
	}
	return true
}

// ResetEquivalenceClass moves x to the class its current ordering key
// belongs to. Call it right after mutating the key of an element in place.
// x is re-added as expired so it waits for its turn in the new class.
func (s *Set[T]) ResetEquivalenceClass(x T) {
	if s.Remove(x) {
		s.AddExpired(x)
	}
}

// Partition removes up to n elements and returns them as a new set with the
// same ordering. Whole classes are taken in ascending order; if the next class
// does not fit entirely, a random subset of it (the first members when
// shuffling is disabled) fills the remainder.
func (s *Set[T]) Partition(n int) *Set[T] {
	out := s.derive()
	for n > 0 && s.size > 0 {
		picked := slices.Clone(s.classes[0].items)
		if len(picked) > n {
			if s.shuffle {
				s.rng.Shuffle(len(picked), func(i, j int) {
					picked[i], picked[j] = picked[j], picked[i]
				})
			}
			picked = picked[:n]
		}
		for _, x := range picked {
			s.Remove(x)
			out.Add(x)
		}
		n -= len(picked)
	}
	return out
}

// All returns a sorted one-pass traversal: classes in ascending order, all
// members of a class before the next one. The set must not be mutated while
// ranging; use Slice for a detached copy.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, c := range s.classes {
			for _, x := range c.items {
				if !yield(x) {
					return
				}
			}
		}
	}
}

// Slice returns the elements in sorted traversal order.
func (s *Set[T]) Slice() []T {
	out := make([]T, 0, s.size)
	for x := range s.All() {
		out = append(out, x)
	}
	return out
}

// Classes returns a copy of the equivalence classes in ascending order.
func (s *Set[T]) Classes() [][]T {
	out := make([][]T, len(s.classes))
	for i, c := range s.classes {
		out[i] = slices.Clone(c.items)
	}
	return out
}

// classIndex returns the position of c. The binary search keys on the
// class head, which is stale only if that element's key was mutated.
func (s *Set[T]) classIndex(c *class[T]) int {
	if i, found := s.search(c.items[0]); found && s.classes[i] == c {
		return i
	}
	return slices.Index(s.classes, c)
}

func (s *Set[T]) search(x T) (int, bool) {
	return slices.BinarySearchFunc(s.classes, x, func(c *class[T], target T) int {
		return s.compare(c.items[0], target)
	})
}
