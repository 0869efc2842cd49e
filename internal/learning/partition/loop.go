package partition

// Loop is a cyclic iterator over a Set. It visits classes in ascending order
// and wraps around after the last one. Each time a class is entered its
// members are shuffled, unless the set was built WithoutShuffle.
//
// The position is an index pair into the live set (class, member), adjusted
// by every structural change, so a Loop stays valid when elements are added
// or removed between calls to Next.
type Loop[T comparable] struct {
	set *Set[T]

	ci      int  // class being visited; len(classes) means "wrap next"
	ii      int  // next member of classes[ci] once entered
	entered bool // classes[ci] was entered (and shuffled) in this cycle
	started bool
}

// Loop returns a new cyclic iterator registered with the set.
func (s *Set[T]) Loop() *Loop[T] {
	l := &Loop[T]{set: s}
	s.loops = append(s.loops, l)
	return l
}

// Close detaches the iterator from its set.
func (l *Loop[T]) Close() {
	s := l.set
	for i, other := range s.loops {
		if other == l {
			s.loops = append(s.loops[:i], s.loops[i+1:]...)
			return
		}
	}
}

// Next returns the next element. It panics with ErrEmpty if the set is empty.
func (l *Loop[T]) Next() T {
	s := l.set
	if s.size == 0 {
		panic(ErrEmpty)
	}
	l.started = true

	for {
		if l.ci >= len(s.classes) {
			l.ci, l.ii, l.entered = 0, 0, false
		}
		c := s.classes[l.ci]
		if !l.entered {
			if s.shuffle {
				s.rng.Shuffle(len(c.items), func(i, j int) {
					c.items[i], c.items[j] = c.items[j], c.items[i]
				})
			}
			l.entered = true
			l.ii = 0
		}
		if l.ii < len(c.items) {
			x := c.items[l.ii]
			l.ii++
			return x
		}
		l.ci++
		l.ii = 0
		l.entered = false
	}
}

// nextClass returns the index of the class the next element will come from.
func (l *Loop[T]) nextClass() int {
	classes := l.set.classes
	ci := l.ci
	if l.entered && ci < len(classes) && l.ii >= len(classes[ci].items) {
		ci++
	}
	if ci >= len(classes) {
		ci = 0
	}
	return ci
}

func (l *Loop[T]) headInserted(ci int) {
	if l.ci == ci && l.entered {
		l.ii++
	}
}

func (l *Loop[T]) classInserted(i int, expired bool) {
	if i < l.ci || (i == l.ci && l.entered) {
		l.ci++
	}
	if !expired || !l.started {
		return
	}
	if l.nextClass() == i {
		l.ci = i + 1
		l.ii = 0
		l.entered = false
	}
}

func (l *Loop[T]) itemRemoved(ci, j int) {
	if l.ci == ci && l.entered && j < l.ii {
		l.ii--
	}
}

func (l *Loop[T]) classRemoved(ci int) {
	switch {
	case ci < l.ci:
		l.ci--
	case ci == l.ci:
		l.ii = 0
		l.entered = false
	}
}
