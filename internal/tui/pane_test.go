package tui

import (
	"testing"

	"github.com/MikeBiancalana/splitpane/internal/config"
	"github.com/MikeBiancalana/splitpane/internal/splitpane"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func px(v float64) *float64 { return &v }

func twoPaneLayout() config.Layout {
	return config.Layout{Panels: []config.Panel{{Name: "left"}, {Name: "right"}}}
}

// nestedLayout is a row of "left" and "side", with side split into a column
// of "top" and "bottom".
func nestedLayout() config.Layout {
	return config.Layout{Panels: []config.Panel{
		{Name: "left"},
		{Name: "side", Split: &config.Layout{
			Axis:           "column",
			DefaultMinSize: px(1),
			Panels:         []config.Panel{{Name: "top"}, {Name: "bottom"}},
		}},
	}}
}

func buildTestTree(t *testing.T, l config.Layout, r rect) (*paneNode, *pointerRouter) {
	t.Helper()
	router := &pointerRouter{}
	b := treeBuilder{router: router, opts: []splitpane.Option{
		splitpane.WithLogger(quietLogger()),
		splitpane.WithScheduler(newTeaScheduler()),
	}}
	tree, err := b.build(l, "", r)
	require.NoError(t, err)
	t.Cleanup(tree.close)
	return tree, router
}

func TestBuildTwoPanes(t *testing.T) {
	tree, _ := buildTestTree(t, twoPaneLayout(), rect{W: 81, H: 10})

	require.NotNil(t, tree.split)
	assert.Equal(t, []float64{40, 40}, tree.split.engine.Sizes())
	assert.Equal(t, []rect{{X: 40, W: 1, H: 10}}, tree.split.dividers)

	leaves := tree.leaves()
	require.Len(t, leaves, 2)
	assert.Equal(t, "left", leaves[0].name)
	assert.Equal(t, rect{W: 40, H: 10}, leaves[0].rect)
	assert.Equal(t, rect{X: 41, W: 40, H: 10}, leaves[1].rect)
}

func TestBuildNested(t *testing.T) {
	tree, _ := buildTestTree(t, nestedLayout(), rect{W: 81, H: 20})

	side := tree.split.children[1]
	require.NotNil(t, side.split)
	assert.Equal(t, splitpane.Column, side.split.axis)
	assert.Equal(t, rect{X: 41, W: 40, H: 20}, side.rect)
	assert.Equal(t, []float64{9, 10}, side.split.engine.Sizes())
	assert.Equal(t, []rect{{X: 41, Y: 9, W: 40, H: 1}}, side.split.dividers)

	names := []string{}
	for _, leaf := range tree.leaves() {
		names = append(names, leaf.name)
	}
	assert.Equal(t, []string{"left", "top", "bottom"}, names)
	assert.Len(t, tree.dividerRefs(), 2)
}

func TestBuildNestedError(t *testing.T) {
	l := nestedLayout()
	l.Panels[1].Split.DividerThickness = px(-1)

	b := treeBuilder{router: &pointerRouter{}}
	_, err := b.build(l, "", rect{W: 81, H: 20})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `split "side"`)
}

func TestBuildRejectsNegativeThickness(t *testing.T) {
	l := twoPaneLayout()
	l.DividerThickness = px(-1)

	b := treeBuilder{router: &pointerRouter{}}
	_, err := b.build(l, "", rect{W: 81, H: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "divider_thickness")
}

func TestReconfigureRejectsNegativeThickness(t *testing.T) {
	tree, _ := buildTestTree(t, twoPaneLayout(), rect{W: 81, H: 10})

	l := twoPaneLayout()
	l.DividerThickness = px(-1)
	err := tree.reconfigure(l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "divider_thickness")
	assert.Equal(t, 1.0, tree.split.engine.Config().DividerThickness)
	assert.Equal(t, []float64{40, 40}, tree.split.engine.Sizes())
}

func TestDividerAt(t *testing.T) {
	tree, _ := buildTestTree(t, nestedLayout(), rect{W: 81, H: 20})

	ref, ok := tree.dividerAt(40, 5)
	require.True(t, ok)
	assert.Same(t, tree.split, ref.split)
	assert.Equal(t, 0, ref.index)

	ref, ok = tree.dividerAt(60, 9)
	require.True(t, ok)
	assert.Same(t, tree.split.children[1].split, ref.split)

	_, ok = tree.dividerAt(10, 5)
	assert.False(t, ok)
	_, ok = tree.dividerAt(200, 5)
	assert.False(t, ok)
}

func TestSetRectRescalesChildren(t *testing.T) {
	tree, _ := buildTestTree(t, nestedLayout(), rect{W: 81, H: 20})
	side := tree.split.children[1]

	tree.setRect(rect{W: 161, H: 30})

	assert.Equal(t, []float64{80, 80}, tree.split.engine.Sizes())
	assert.Equal(t, rect{X: 81, W: 80, H: 30}, side.rect)
	sizes := side.split.engine.Sizes()
	assert.InDelta(t, 29, sizes[0]+sizes[1], 1e-9)
}

func TestSameShape(t *testing.T) {
	tree, _ := buildTestTree(t, nestedLayout(), rect{W: 81, H: 20})

	assert.True(t, tree.sameShape(nestedLayout()))
	assert.False(t, tree.sameShape(twoPaneLayout()))

	deeper := nestedLayout()
	deeper.Panels[1].Split.Panels[0].Split = &config.Layout{Panels: []config.Panel{{}, {}}}
	assert.False(t, tree.sameShape(deeper))
}

func TestReconfigureKeepsEngines(t *testing.T) {
	tree, _ := buildTestTree(t, twoPaneLayout(), rect{W: 81, H: 10})
	engine := tree.split.engine

	l := twoPaneLayout()
	l.Panels[0].PreferredSize = px(0.25)
	l.Panels[0].Name = "narrow"
	require.NoError(t, tree.reconfigure(l))

	assert.Same(t, engine, tree.split.engine)
	assert.Equal(t, []float64{20, 60}, engine.Sizes())
	assert.Equal(t, "narrow", tree.split.children[0].name)
	assert.Equal(t, rect{X: 21, W: 60, H: 10}, tree.split.children[1].rect)
}

func TestReallocate(t *testing.T) {
	tree, _ := buildTestTree(t, twoPaneLayout(), rect{W: 81, H: 10})
	tree.split.engine.Nudge(0, 5)
	tree.relayout()
	require.Equal(t, []float64{45, 35}, tree.split.engine.Sizes())

	tree.reallocate()
	assert.Equal(t, []float64{40, 40}, tree.split.engine.Sizes())
	assert.Equal(t, rect{X: 41, W: 40, H: 10}, tree.split.children[1].rect)
}

func TestPointerRouterCapture(t *testing.T) {
	tree, router := buildTestTree(t, twoPaneLayout(), rect{W: 81, H: 10})

	tree.split.engine.PointerDown(0, splitpane.Point{X: 40})
	assert.Same(t, tree.split, router.captured)

	tree.split.engine.PointerUp()
	assert.Nil(t, router.captured)
}

func TestPointerRouterHover(t *testing.T) {
	tree, router := buildTestTree(t, twoPaneLayout(), rect{W: 81, H: 10})
	ref := dividerRef{split: tree.split, index: 0}

	router.hover(ref)
	assert.Equal(t, splitpane.HoverPending, ref.state())

	router.hover(ref)
	assert.Equal(t, splitpane.HoverPending, ref.state())

	router.hover(dividerRef{})
	assert.Equal(t, splitpane.Idle, ref.state())
	assert.False(t, router.hovered.valid())
}
