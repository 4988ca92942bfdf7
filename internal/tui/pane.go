package tui

import (
	"fmt"

	"github.com/MikeBiancalana/splitpane/internal/config"
	"github.com/MikeBiancalana/splitpane/internal/splitpane"
)

// paneNode is one rectangle of the layout: a leaf panel or a split that owns
// its own engine.
type paneNode struct {
	name  string
	rect  rect
	split *splitNode
}

// splitNode holds the engine for one row or column and the cell geometry it
// last produced.
type splitNode struct {
	engine   *splitpane.Engine
	axis     splitpane.Axis
	children []*paneNode
	dividers []rect
}

// dividerRef names one divider of one split.
type dividerRef struct {
	split *splitNode
	index int
}

func (d dividerRef) valid() bool {
	return d.split != nil
}

func (d dividerRef) state() splitpane.DividerState {
	if d.split == nil {
		return splitpane.Idle
	}
	return d.split.engine.DividerState(d.index)
}

// treeBuilder carries what every engine in a tree shares.
type treeBuilder struct {
	router *pointerRouter
	opts   []splitpane.Option
}

// build creates the pane tree for l inside r. On error every engine created
// so far is closed.
func (b treeBuilder) build(l config.Layout, name string, r rect) (*paneNode, error) {
	node := &paneNode{name: name, rect: r}
	split := &splitNode{}

	cfg, err := cellConfig(l)
	if err != nil {
		if name == "" {
			return nil, err
		}
		return nil, fmt.Errorf("split %q: %w", name, err)
	}
	split.axis = cfg.Axis

	opts := append([]splitpane.Option{}, b.opts...)
	opts = append(opts, splitpane.WithCapturer(b.router.capturerFor(split)))

	engine, err := splitpane.New(cfg, float64(extentAlong(r, cfg.Axis)), opts...)
	if err != nil {
		if name == "" {
			return nil, err
		}
		return nil, fmt.Errorf("split %q: %w", name, err)
	}
	split.engine = engine
	node.split = split

	childRects, dividerRects := split.layout(r)
	split.dividers = dividerRects
	for i, p := range l.Panels {
		if p.Split == nil {
			split.children = append(split.children, &paneNode{name: p.Name, rect: childRects[i]})
			continue
		}
		child, err := b.build(*p.Split, p.Name, childRects[i])
		if err != nil {
			node.close()
			return nil, err
		}
		split.children = append(split.children, child)
	}
	return node, nil
}

// setRect moves a node to r, rescaling its engine when the extent along its
// axis changed, and lays out its children again.
func (n *paneNode) setRect(r rect) {
	n.rect = r
	if n.split == nil {
		return
	}
	extent := float64(extentAlong(r, n.split.axis))
	if extent != n.split.engine.Extent() {
		n.split.engine.ContainerExtentChanged(extent)
	}
	n.relayout()
}

// relayout recomputes child rects from the engine's current sizes.
func (n *paneNode) relayout() {
	if n.split == nil {
		return
	}
	childRects, dividerRects := n.split.layout(n.rect)
	n.split.dividers = dividerRects
	for i, child := range n.split.children {
		child.setRect(childRects[i])
	}
}

// layout converts the engine sizes into absolute child and divider rects.
func (s *splitNode) layout(r rect) (children, dividers []rect) {
	cfg := s.engine.Config()
	panels, divs := cellSpans(s.engine.Sizes(), cfg.DividerThickness, extentAlong(r, s.axis))

	place := func(sp span) rect {
		if s.axis == splitpane.Column {
			return rect{X: r.X, Y: r.Y + sp.Start, W: r.W, H: sp.Len}
		}
		return rect{X: r.X + sp.Start, Y: r.Y, W: sp.Len, H: r.H}
	}

	children = make([]rect, len(panels))
	for i, sp := range panels {
		children[i] = place(sp)
	}
	dividers = make([]rect, len(divs))
	for i, sp := range divs {
		dividers[i] = place(sp)
	}
	return children, dividers
}

// dividerAt returns the divider drawn at cell (x, y), searching nested splits.
func (n *paneNode) dividerAt(x, y int) (dividerRef, bool) {
	if n.split == nil || !n.rect.contains(x, y) {
		return dividerRef{}, false
	}
	for i, d := range n.split.dividers {
		if d.contains(x, y) {
			return dividerRef{split: n.split, index: i}, true
		}
	}
	for _, child := range n.split.children {
		if ref, ok := child.dividerAt(x, y); ok {
			return ref, true
		}
	}
	return dividerRef{}, false
}

// dividerRefs lists every divider in the tree, depth first.
func (n *paneNode) dividerRefs() []dividerRef {
	if n == nil || n.split == nil {
		return nil
	}
	var refs []dividerRef
	for i := range n.split.dividers {
		refs = append(refs, dividerRef{split: n.split, index: i})
	}
	for _, child := range n.split.children {
		refs = append(refs, child.dividerRefs()...)
	}
	return refs
}

// leaves lists the leaf panels in tree order.
func (n *paneNode) leaves() []*paneNode {
	if n == nil {
		return nil
	}
	if n.split == nil {
		return []*paneNode{n}
	}
	var out []*paneNode
	for _, child := range n.split.children {
		out = append(out, child.leaves()...)
	}
	return out
}

// close releases every engine in the tree.
func (n *paneNode) close() {
	if n == nil || n.split == nil {
		return
	}
	n.split.engine.Close()
	for _, child := range n.split.children {
		child.close()
	}
}

// cellConfig validates the engine config of l as written, then rounds its
// divider thickness to whole cells.
func cellConfig(l config.Layout) (splitpane.Config, error) {
	cfg := l.EngineConfig()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid split config: %w", err)
	}
	cfg.DividerThickness = cellThickness(cfg.DividerThickness)
	return cfg, nil
}

func extentAlong(r rect, axis splitpane.Axis) int {
	if axis == splitpane.Column {
		return r.H
	}
	return r.W
}

// reallocate reruns allocation in every engine of the tree at the current
// rects, discarding resizes made by dragging.
func (n *paneNode) reallocate() {
	if n.split == nil {
		return
	}
	n.split.engine.Reallocate(float64(extentAlong(n.rect, n.split.axis)))
	childRects, dividerRects := n.split.layout(n.rect)
	n.split.dividers = dividerRects
	for i, child := range n.split.children {
		child.rect = childRects[i]
		child.reallocate()
	}
}

// sameShape reports whether l nests splits exactly like the tree under n, so
// a reload can reconfigure the existing engines instead of rebuilding.
func (n *paneNode) sameShape(l config.Layout) bool {
	if n.split == nil || len(n.split.children) != len(l.Panels) {
		return false
	}
	for i, p := range l.Panels {
		child := n.split.children[i]
		if (p.Split == nil) != (child.split == nil) {
			return false
		}
		if p.Split != nil && !child.sameShape(*p.Split) {
			return false
		}
	}
	return true
}

// reconfigure applies l to the existing engines. The caller checks sameShape
// first.
func (n *paneNode) reconfigure(l config.Layout) error {
	cfg, err := cellConfig(l)
	if err != nil {
		return err
	}
	if err := n.split.engine.Reconfigure(cfg, float64(extentAlong(n.rect, cfg.Axis))); err != nil {
		return err
	}
	n.split.axis = cfg.Axis

	childRects, dividerRects := n.split.layout(n.rect)
	n.split.dividers = dividerRects
	for i, p := range l.Panels {
		child := n.split.children[i]
		child.name = p.Name
		child.rect = childRects[i]
		if p.Split != nil {
			if err := child.reconfigure(*p.Split); err != nil {
				return fmt.Errorf("split %q: %w", p.Name, err)
			}
		}
	}
	return nil
}
