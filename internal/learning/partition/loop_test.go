package partition

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_CoversEveryElementOncePerCycle(t *testing.T) {
	t.Parallel()

	s := newTestSet(t)
	want := []int{10, 11, 12, 20, 30, 31, 32, 33, 40}
	for _, x := range want {
		s.Add(x)
	}

	l := s.Loop()
	got := make([]int, 0, len(want))
	for range want {
		got = append(got, l.Next())
	}

	assert.True(t, slices.IsSortedFunc(got, byTens), "classes must be visited in ascending order: %v", got)
	slices.Sort(got)
	assert.Equal(t, want, got)
}

func TestLoop_WrapsAround(t *testing.T) {
	t.Parallel()

	s := newTestSet(t, WithoutShuffle())
	s.Add(10)
	s.Add(20)

	l := s.Loop()
	got := []int{l.Next(), l.Next(), l.Next(), l.Next()}
	assert.Equal(t, []int{10, 20, 10, 20}, got)
}

func TestLoop_ReshufflesClassOnEntry(t *testing.T) {
	t.Parallel()

	s := newTestSet(t)
	for x := 10; x < 16; x++ {
		s.Add(x)
	}

	l := s.Loop()
	orders := make(map[string]bool)
	for range 10 {
		cycle := make([]int, 6)
		for i := range cycle {
			cycle[i] = l.Next()
		}
		sorted := slices.Clone(cycle)
		slices.Sort(sorted)
		require.Equal(t, []int{10, 11, 12, 13, 14, 15}, sorted)
		orders[fmtInts(cycle)] = true
	}
	assert.Greater(t, len(orders), 1, "shuffle should vary the order between cycles")
}

func TestLoop_EmptySetPanics(t *testing.T) {
	t.Parallel()

	s := newTestSet(t)
	l := s.Loop()
	assert.PanicsWithError(t, ErrEmpty.Error(), func() { l.Next() })

	s.Add(10)
	s.Remove(10)
	assert.PanicsWithError(t, ErrEmpty.Error(), func() { l.Next() })
}

func TestLoop_AddGoesToTailOfCurrentClass(t *testing.T) {
	t.Parallel()

	s := newTestSet(t, WithoutShuffle())
	s.Add(10)
	s.Add(20)

	l := s.Loop()
	require.Equal(t, 10, l.Next())
	s.Add(11)

	assert.Equal(t, 11, l.Next(), "element added to the current class is still due this cycle")
	assert.Equal(t, 20, l.Next())
}

func TestLoop_AddExpiredWaitsForNextCycle(t *testing.T) {
	t.Parallel()

	s := newTestSet(t, WithoutShuffle())
	s.Add(10)
	s.Add(20)

	l := s.Loop()
	require.Equal(t, 10, l.Next())
	s.AddExpired(15)

	assert.Equal(t, 20, l.Next())
	assert.Equal(t, 15, l.Next())
	assert.Equal(t, 10, l.Next())
}

func TestLoop_AddExpiredNewClassIsSkipped(t *testing.T) {
	t.Parallel()

	s := newTestSet(t, WithoutShuffle())
	s.Add(10)
	s.Add(30)

	l := s.Loop()
	require.Equal(t, 10, l.Next())
	s.AddExpired(20)

	assert.Equal(t, 30, l.Next(), "new class right after the cursor must be skipped")
	assert.Equal(t, 10, l.Next())
	assert.Equal(t, 20, l.Next())
}

func TestLoop_AddNewClassIsNotSkipped(t *testing.T) {
	t.Parallel()

	s := newTestSet(t, WithoutShuffle())
	s.Add(10)
	s.Add(30)

	l := s.Loop()
	require.Equal(t, 10, l.Next())
	s.Add(20)

	assert.Equal(t, 20, l.Next())
	assert.Equal(t, 30, l.Next())
}

func TestLoop_AddExpiredBeforeWrapSkipsFirstClass(t *testing.T) {
	t.Parallel()

	s := newTestSet(t, WithoutShuffle())
	s.Add(20)
	s.Add(30)

	l := s.Loop()
	require.Equal(t, 20, l.Next())
	require.Equal(t, 30, l.Next())
	s.AddExpired(10)

	assert.Equal(t, 20, l.Next(), "the wrap target is the new class, so it is skipped")
	assert.Equal(t, 30, l.Next())
	assert.Equal(t, 10, l.Next())
}

func TestLoop_AddExpiredBeforeFirstNextIsVisited(t *testing.T) {
	t.Parallel()

	s := newTestSet(t, WithoutShuffle())
	s.Add(20)
	l := s.Loop()
	s.AddExpired(10)

	assert.Equal(t, 10, l.Next())
}

func TestLoop_RemoveCurrentClass(t *testing.T) {
	t.Parallel()

	s := newTestSet(t)
	s.Add(10)
	s.Add(11)
	s.Add(20)

	l := s.Loop()
	first := l.Next()
	require.Contains(t, []int{10, 11}, first)

	s.Remove(10)
	s.Remove(11)

	assert.Equal(t, 20, l.Next())
	assert.Equal(t, 20, l.Next())
}

func TestLoop_RemoveVisitedMemberKeepsPosition(t *testing.T) {
	t.Parallel()

	s := newTestSet(t, WithoutShuffle())
	for _, x := range []int{10, 11, 12} {
		s.Add(x)
	}

	l := s.Loop()
	require.Equal(t, 10, l.Next())
	require.Equal(t, 11, l.Next())
	s.Remove(10)

	assert.Equal(t, 12, l.Next())
	assert.Equal(t, 11, l.Next())
}

func TestLoop_RemoveEarlierClass(t *testing.T) {
	t.Parallel()

	s := newTestSet(t, WithoutShuffle())
	for _, x := range []int{10, 20, 21, 30} {
		s.Add(x)
	}

	l := s.Loop()
	require.Equal(t, 10, l.Next())
	require.Equal(t, 20, l.Next())
	s.Remove(10)

	assert.Equal(t, 21, l.Next())
	assert.Equal(t, 30, l.Next())
	assert.Equal(t, 20, l.Next())
}

func TestLoop_SurvivesPartition(t *testing.T) {
	t.Parallel()

	s := newTestSet(t, WithoutShuffle())
	for _, x := range []int{10, 20, 30, 40} {
		s.Add(x)
	}

	l := s.Loop()
	require.Equal(t, 10, l.Next())
	require.Equal(t, 20, l.Next())
	out := s.Partition(2)

	assert.Equal(t, []int{10, 20}, out.Slice())
	assert.Equal(t, 30, l.Next())
	assert.Equal(t, 40, l.Next())
	assert.Equal(t, 30, l.Next())
}

func TestLoop_Close(t *testing.T) {
	t.Parallel()

	s := newTestSet(t)
	a := s.Loop()
	b := s.Loop()
	a.Close()

	require.Len(t, s.loops, 1)
	assert.Same(t, b, s.loops[0])
}

// TestLoop_RandomInterleavings drives the set with random mutations between
// Next calls and checks the invariants after every step.
func TestLoop_RandomInterleavings(t *testing.T) {
	t.Parallel()

	for seed := uint64(1); seed <= 25; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*31))
		s := New(byTens, rand.New(rand.NewPCG(seed, 7)))
		l := s.Loop()
		present := make(map[int]bool)

		for step := 0; step < 400; step++ {
			x := rng.IntN(60)
			switch op := rng.IntN(6); op {
			case 0:
				assert.Equal(t, !present[x], s.Add(x))
				present[x] = true
			case 1:
				assert.Equal(t, !present[x], s.AddExpired(x))
				present[x] = true
			case 2:
				assert.Equal(t, present[x], s.Remove(x))
				delete(present, x)
			case 3:
				if rng.IntN(8) == 0 {
					out := s.Partition(rng.IntN(5))
					for y := range out.All() {
						delete(present, y)
					}
				}
			default:
				if s.Len() == 0 {
					assert.Panics(t, func() { l.Next() })
					continue
				}
				got := l.Next()
				assert.True(t, present[got], "seed %d step %d: Next returned %d which is not in the set", seed, step, got)
			}

			checkInvariants(t, s)
			require.Equal(t, len(present), s.Len(), "seed %d step %d", seed, step)
			require.LessOrEqual(t, l.ci, len(s.classes), "seed %d step %d: cursor out of range", seed, step)
		}
	}
}

// TestLoop_CoverageAfterMutation checks that once mutation stops, a fresh
// cycle still visits every element exactly once.
func TestLoop_CoverageAfterMutation(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(11, 13))
	s := New(byTens, rand.New(rand.NewPCG(5, 6)))
	l := s.Loop()
	for range 200 {
		x := rng.IntN(50)
		if rng.IntN(3) == 0 {
			s.Remove(x)
		} else {
			s.Add(x)
		}
		if s.Len() > 0 && rng.IntN(2) == 0 {
			l.Next()
		}
	}
	require.NotZero(t, s.Len())

	fresh := s.Loop()
	got := make([]int, 0, s.Len())
	for range s.Len() {
		got = append(got, fresh.Next())
	}
	slices.Sort(got)
	want := s.Slice()
	slices.Sort(want)
	assert.Equal(t, want, got)
}

func fmtInts(xs []int) string {
	b := make([]byte, 0, len(xs)*3)
	for _, x := range xs {
		b = append(b, byte('0'+x/10), byte('0'+x%10), ',')
	}
	return string(b)
}
