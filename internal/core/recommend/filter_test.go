package recommend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	c := newTestCatalog()

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []int
	}{
		{"pass through", nil, nil, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"include case insensitive", []string{"EGG"}, nil, []int{0, 1, 2, 3, 4, 5}},
		{"include all terms", []string{"egg", "milk"}, nil, []int{0, 3}},
		{"include substring", []string{"nut"}, nil, []int{4, 7, 9}},
		{"exclude any term", nil, []string{"nuts", "chicken"}, []int{0, 1, 3, 5, 8}},
		{"include and exclude", []string{"egg"}, []string{"walnut"}, []int{0, 1, 2, 3, 5}},
		{"blank terms ignored", []string{"  ", ""}, []string{""}, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"no match", []string{"tofu"}, nil, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(c, tt.include, tt.exclude))
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	c := newTestCatalog()
	include := []string{" Egg "}

	Filter(c, include, nil)

	assert.Equal(t, []string{" Egg "}, include)
	assert.Equal(t, 10, c.Len())
}

func TestFilterIncludeExcludeProperty(t *testing.T) {
	c := newTestCatalog()

	for _, p := range Filter(c, []string{"chicken"}, nil) {
		assert.True(t, strings.Contains(strings.ToLower(c.At(p).RawIngredients), "chicken"))
	}
	for _, p := range Filter(c, nil, []string{"nuts"}) {
		assert.False(t, strings.Contains(strings.ToLower(c.At(p).RawIngredients), "nuts"))
	}
}
