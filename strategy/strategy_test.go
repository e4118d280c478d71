package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/seekbench/dataset"
)

func TestSearchScenario(t *testing.T) {
	// Fixed scenario: duplicates, even length.
	arr := dataset.NewSorted(2, 4, 4, 6, 8, 10)

	for _, s := range All() {
		t.Run(s.Name(), func(t *testing.T) {
			t.Run("First", func(t *testing.T) {
				res := s.Search(arr, 2)
				require.True(t, res.Found)
				assert.Equal(t, 0, res.Index)
			})

			t.Run("Last", func(t *testing.T) {
				res := s.Search(arr, 10)
				require.True(t, res.Found)
				assert.Equal(t, 5, res.Index)
			})

			t.Run("Duplicate", func(t *testing.T) {
				// Either index of the duplicated 4 is valid.
				res := s.Search(arr, 4)
				require.True(t, res.Found)
				assert.Contains(t, []int{1, 2}, res.Index)
			})

			t.Run("AbsentInRange", func(t *testing.T) {
				assert.False(t, s.Search(arr, 5).Found)
			})

			t.Run("AbsentBelow", func(t *testing.T) {
				assert.False(t, s.Search(arr, 1).Found)
			})

			t.Run("AbsentAbove", func(t *testing.T) {
				assert.False(t, s.Search(arr, 11).Found)
			})
		})
	}
}

func TestSearchBoundaries(t *testing.T) {
	for _, s := range All() {
		t.Run(s.Name(), func(t *testing.T) {
			t.Run("Empty", func(t *testing.T) {
				arr := dataset.NewSorted()
				assert.False(t, s.Search(arr, 5).Found)
			})

			t.Run("SingleElement", func(t *testing.T) {
				arr := dataset.NewSorted(7)

				res := s.Search(arr, 7)
				require.True(t, res.Found)
				assert.Equal(t, 0, res.Index)

				assert.False(t, s.Search(arr, 6).Found)
				assert.False(t, s.Search(arr, 8).Found)
			})

			t.Run("AllEqual", func(t *testing.T) {
				// Interpolation's equal-bounds guard, jump's single block.
				arr := dataset.NewSorted(3, 3, 3, 3, 3)

				res := s.Search(arr, 3)
				require.True(t, res.Found)
				assert.Equal(t, int32(3), arr.At(res.Index))

				assert.False(t, s.Search(arr, 2).Found)
				assert.False(t, s.Search(arr, 4).Found)
			})
		})
	}
}

func TestEveryPresentValueIsFound(t *testing.T) {
	g := dataset.NewGenerator(func(o *dataset.Options) { o.Seed = 42 })
	arr, err := g.Generate(500, 1000, 1100) // dense range forces duplicates
	require.NoError(t, err)

	for _, s := range All() {
		t.Run(s.Name(), func(t *testing.T) {
			for i := 0; i < arr.Len(); i++ {
				target := arr.At(i)
				res := s.Search(arr, target)
				require.True(t, res.Found, "target %d at index %d", target, i)
				require.Equal(t, target, arr.At(res.Index), "target %d at index %d", target, i)
			}
		})
	}
}

func TestCrossStrategyAgreement(t *testing.T) {
	g := dataset.NewGenerator(func(o *dataset.Options) { o.Seed = 7 })
	arr, err := g.Generate(1000, 1000, 10000)
	require.NoError(t, err)

	targets := []int32{
		arr.First(), arr.Last(), arr.Middle(),
		999, 10000, // guaranteed absent
		arr.At(123), arr.At(857),
	}

	for _, target := range targets {
		ref := Linear{}.Search(arr, target)
		for _, s := range All() {
			res := s.Search(arr, target)
			require.Equal(t, ref.Found, res.Found, "strategy %s disagrees on %d", s.Name(), target)
			if res.Found {
				// Indices may differ under duplicates; values must not.
				require.Equal(t, arr.At(ref.Index), arr.At(res.Index))
			}
		}
	}
}

func TestSearchIdempotent(t *testing.T) {
	arr := dataset.NewSorted(1, 3, 5, 7, 9)

	for _, s := range All() {
		first := s.Search(arr, 7)
		second := s.Search(arr, 7)
		assert.Equal(t, first, second, s.Name())
	}
}

func TestNames(t *testing.T) {
	var names []string
	for _, s := range All() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"linear", "binary", "jump", "interpolation"}, names)
}
