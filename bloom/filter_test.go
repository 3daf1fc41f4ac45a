package bloom_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchlite/bloom"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	f.Add("economia")
	f.Add("mercado")

	assert.True(t, f.Test("economia"))
	assert.True(t, f.Test("mercado"))
}

func TestFilter_NoFalseNegatives(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)

	for i := 0; i < 5000; i++ {
		f.Add(fmt.Sprintf("term-%d", i))
	}

	for i := 0; i < 5000; i++ {
		require.True(t, f.Test(fmt.Sprintf("term-%d", i)))
	}
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)

	for i := 0; i < 100; i++ {
		f.Add(fmt.Sprintf("term-%d", i))
	}

	count := f.EstimatedCount()
	assert.InDelta(t, 100, count, 10)
}
