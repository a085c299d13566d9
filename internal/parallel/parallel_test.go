package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCoversRangeDisjointly(t *testing.T) {
	for _, tc := range []struct {
		total uint64
		parts int
	}{
		{10, 3}, {3, 8}, {1, 1}, {1000, 7}, {16, 4},
	} {
		ranges := Split(tc.total, tc.parts)
		require.NotEmpty(t, ranges)
		assert.LessOrEqual(t, len(ranges), tc.parts)

		var next uint64
		for _, r := range ranges {
			assert.Equal(t, next, r[0], "ranges must be contiguous")
			assert.Greater(t, r[1], r[0], "ranges must be non-empty")
			next = r[1]
		}
		assert.Equal(t, tc.total, next)
	}
}

func TestSplitEmpty(t *testing.T) {
	assert.Nil(t, Split(0, 4))
}

func TestRangesVisitsEveryIndexOnce(t *testing.T) {
	const total = 10007
	hits := make([]int32, total)

	err := Ranges(context.Background(), 6, total, func(lo, hi uint64) error {
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
		return nil
	})
	require.NoError(t, err)

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}

func TestRangesReturnsError(t *testing.T) {
	boom := errors.New("boom")
	err := Ranges(context.Background(), 4, 100, func(lo, hi uint64) error {
		if lo == 0 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestRangesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	err := Ranges(ctx, 4, 100, func(lo, hi uint64) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestWorkersDefault(t *testing.T) {
	assert.Positive(t, Workers(0))
	assert.Equal(t, 3, Workers(3))
}
