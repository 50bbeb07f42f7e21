package headers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCyclerWrapsEachListIndependently(t *testing.T) {
	specs := []Spec{
		{Name: "Authorization", Values: []string{"Bearer a", "Bearer b", "Bearer c"}},
		{Name: "X-Tenant", Values: []string{"one", "two"}},
	}

	combos := NewCycler(specs).Take(7)
	require.Len(t, combos, 7)

	for i, h := range combos {
		assert.Equal(t, specs[0].Values[i%3], h.Get("Authorization"), "combination %d", i)
		assert.Equal(t, specs[1].Values[i%2], h.Get("X-Tenant"), "combination %d", i)
	}
}

func TestCyclerMatchesLineModuloLength(t *testing.T) {
	for k := 1; k <= 5; k++ {
		values := make([]string, k)
		for i := range values {
			values[i] = fmt.Sprintf("v%d", i)
		}

		c := NewCycler([]Spec{{Name: "X-Value", Values: values}})
		for i := range 3 * k {
			h, ok := c.Next()
			require.True(t, ok)
			assert.Equal(t, values[i%k], h.Get("X-Value"))
		}
	}
}

func TestCyclerEmptyListEndsImmediately(t *testing.T) {
	c := NewCycler([]Spec{
		{Name: "X-Full", Values: []string{"a", "b"}},
		{Name: "X-Empty"},
	})

	_, ok := c.Next()
	assert.False(t, ok)
	assert.Empty(t, c.Take(10))
}

func TestCyclerWithoutSpecsNeverEnds(t *testing.T) {
	combos := NewCycler(nil).Take(50)

	require.Len(t, combos, 50)
	assert.Empty(t, combos[49])
}

func TestCyclerIsDeterministic(t *testing.T) {
	specs := []Spec{{Name: "X-Id", Values: []string{"1", "2", "3"}}}

	assert.Equal(t, NewCycler(specs).Take(10), NewCycler(specs).Take(10))
}
