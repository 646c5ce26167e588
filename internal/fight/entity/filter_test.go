package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListFilter_Normalized(t *testing.T) {
	cases := []struct {
		name          string
		in            ListFilter
		limit, offset int
	}{
		{"defaults", ListFilter{}, 50, 0},
		{"in range", ListFilter{Limit: 20, Offset: 40}, 20, 40},
		{"limit above max", ListFilter{Limit: 500}, 100, 0},
		{"negative limit", ListFilter{Limit: -3}, 1, 0},
		{"negative offset", ListFilter{Offset: -10}, 50, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.in.Normalized()
			assert.Equal(t, c.limit, got.Limit)
			assert.Equal(t, c.offset, got.Offset)
		})
	}
}

func TestListFilter_NormalizedTrimsSearch(t *testing.T) {
	assert.Equal(t, "", ListFilter{Search: "   "}.Normalized().Search)
	assert.Equal(t, "doe", ListFilter{Search: " doe "}.Normalized().Search)
}

func TestFightPatch_IsEmpty(t *testing.T) {
	assert.True(t, FightPatch{}.IsEmpty())
	notes := ""
	assert.False(t, FightPatch{Notes: &notes}.IsEmpty())
}
