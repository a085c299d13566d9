package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumKnownVector(t *testing.T) {
	assert.Equal(t, "187ef4436122d1cc2f40dc2b92f0eba0", SumString("ab").String())
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", Sum(nil).String())
}

func TestIndexGroupsSharedDigests(t *testing.T) {
	idx := NewIndex(map[string]Digest{
		"carol": SumString("hunter2"),
		"alice": SumString("hunter2"),
		"bob":   SumString("ab"),
	})

	require.Len(t, idx, 2)
	assert.Equal(t, []string{"alice", "carol"}, idx.Lookup(SumString("hunter2")))
	assert.Equal(t, []string{"bob"}, idx.Lookup(SumString("ab")))
	assert.Empty(t, idx.Lookup(SumString("nope")))
}
