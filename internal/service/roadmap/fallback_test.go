package roadmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFallback_Deterministic(t *testing.T) {
	t.Parallel()

	wantTitles := []string{"Basics", "Tools Setup", "Core Concepts", "Hands-on Practice", "Project"}
	wantDescs := []string{
		"Start with fundamentals",
		"Install and configure tooling",
		"Learn key concepts",
		"Build small projects",
		"Build a portfolio project",
	}

	first := BuildFallback("X", "x")
	for range 3 {
		assert.Equal(t, first, BuildFallback("X", "x"))
	}

	assert.Equal(t, "x", first.Slug)
	assert.Equal(t, "X Roadmap", first.Title)
	require.Len(t, first.Levels, 5)
	for i, lv := range first.Levels {
		assert.Equal(t, i+1, lv.LevelNo)
		assert.Equal(t, wantTitles[i], lv.Title)
		assert.Equal(t, wantDescs[i], lv.ShortDescription)
	}
}

func TestBuildFallback_ReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	a := BuildFallback("Go", "go")
	a.Levels[0].Title = "mutated"

	b := BuildFallback("Go", "go")
	assert.Equal(t, "Basics", b.Levels[0].Title)
}
