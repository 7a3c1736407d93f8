package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// minCellSize keeps cell sizes positive when every shape is degenerate.
const minCellSize = 1e-4

// Grid is an adaptive hierarchical grid rebuilt from scratch every step.
// Each shape lives in exactly one node: the deepest node it was routed to
// by its center, or a higher node when it is too big for that node's cells.
type Grid struct {
	cfg   GridConfig
	check func(a, b *Shape)

	nodes   []gridNode
	cellMin rl.Vector3

	ancestors [][]*Shape
	neighbors []int32
	movers    []*Shape
}

type gridNode struct {
	bounds       Bounds // cell bounds
	shapeBounds  Bounds // union of every shape in the subtree, may reach past bounds
	shapes       []*Shape
	children     []int32 // cx*cy*cz child indices, -1 until materialized; empty for leaves
	leafCellSize rl.Vector3
	stride       rl.Vector3
	cx, cy, cz   int
	reach        [3]int // how many sibling cells away a neighbor shape can still overlap
	smallCount   int
	depth        int
}

// NewGrid returns a grid that reports candidate pairs to check.
func NewGrid(cfg GridConfig, check func(a, b *Shape)) *Grid {
	cfg.NodeDivide = max(cfg.NodeDivide, 1)
	return &Grid{
		cfg:       cfg,
		check:     check,
		nodes:     make([]gridNode, 0, 64),
		ancestors: make([][]*Shape, 0, 4),
		neighbors: make([]int32, 0, 64),
	}
}

// NodeCount is the number of nodes built by the last Update.
func (g *Grid) NodeCount() int {
	return len(g.nodes)
}

// Update rebuilds the grid from the swept bounds of shapes.
func (g *Grid) Update(shapes []*Shape) {
	g.nodes = g.nodes[:0]
	if len(shapes) == 0 {
		return
	}

	root := EmptyBounds()
	inf := math32.Inf(1)
	shapeMin := rl.Vector3{X: inf, Y: inf, Z: inf}
	var shapeAve rl.Vector3
	for _, s := range shapes {
		root.EncapsulateBounds(s.moveBounds)
		size := s.moveBounds.Size()
		shapeMin = rl.Vector3Min(shapeMin, size)
		shapeAve = rl.Vector3Add(shapeAve, size)
	}
	shapeAve = rl.Vector3Scale(shapeAve, 1/float32(len(shapes)))

	// The smallest cell is the average shape size, but never so small that
	// the smallest shapes cannot pass each other inside one cell.
	g.cellMin = rl.Vector3Max(shapeAve, rl.Vector3Scale(shapeMin, 2))

	ri := g.addNode(root, 0)
	g.nodes[ri].shapeBounds = root
	if n := &g.nodes[ri]; n.cx*n.cy*n.cz > 1 && g.cfg.MaxDepth > 0 {
		g.subdivide(ri)
	}

	for _, s := range shapes {
		g.insert(ri, s)
	}
}

// GatherPairs walks the grid and reports every pair of shapes whose swept
// bounds may intersect. No pair is reported twice.
func (g *Grid) GatherPairs() {
	if len(g.nodes) == 0 {
		return
	}
	g.ancestors = g.ancestors[:0]
	g.neighbors = g.neighbors[:0]
	g.traverse(0)
}

func (g *Grid) addNode(b Bounds, depth int) int32 {
	if len(g.nodes) < cap(g.nodes) {
		g.nodes = g.nodes[:len(g.nodes)+1]
	} else {
		g.nodes = append(g.nodes, gridNode{})
	}
	i := int32(len(g.nodes) - 1)
	n := &g.nodes[i]
	n.bounds = b
	n.shapeBounds = EmptyBounds()
	n.shapes = n.shapes[:0]
	n.children = n.children[:0]
	n.smallCount = 0
	n.depth = depth
	n.setLeafCellSize(g.cfg.NodeDivide, g.cellMin)
	return i
}

func (n *gridNode) setLeafCellSize(divide int, cellMin rl.Vector3) {
	size := n.bounds.Size()
	leaf := rl.Vector3Max(rl.Vector3Scale(size, 1/float32(divide)), cellMin)
	leaf = rl.Vector3Max(leaf, rl.Vector3{X: minCellSize, Y: minCellSize, Z: minCellSize})
	n.leafCellSize = leaf

	n.cx, n.stride.X, n.reach[0] = cellsAlong(size.X, leaf.X)
	n.cy, n.stride.Y, n.reach[1] = cellsAlong(size.Y, leaf.Y)
	n.cz, n.stride.Z, n.reach[2] = cellsAlong(size.Z, leaf.Z)
}

// cellsAlong splits one axis of length size into cells no larger than leaf.
// reach is how many cells apart two shapes smaller than leaf can still
// overlap when their centers lie in those cells.
func cellsAlong(size, leaf float32) (count int, stride float32, reach int) {
	count = max(1, int(math32.Ceil(size/leaf)))
	stride = size / float32(count)
	if stride <= 0 {
		return count, 0, 0
	}
	reach = 1 + int(math32.Floor(leaf/stride*1.001))
	return count, stride, min(reach, count-1)
}

func (n *gridNode) isLeaf() bool {
	return len(n.children) == 0
}

func (n *gridNode) isTooBig(size rl.Vector3) bool {
	return size.X >= n.leafCellSize.X || size.Y >= n.leafCellSize.Y || size.Z >= n.leafCellSize.Z
}

func (n *gridNode) childIndex(x, y, z int) int {
	return x + n.cx*(y+n.cy*z)
}

// cellOf returns the child cell coordinates containing p, clamped to the node.
func (n *gridNode) cellOf(p rl.Vector3) (int, int, int) {
	offset := rl.Vector3Subtract(p, n.bounds.Min())
	return cellCoord(offset.X, n.stride.X, n.cx),
		cellCoord(offset.Y, n.stride.Y, n.cy),
		cellCoord(offset.Z, n.stride.Z, n.cz)
}

func cellCoord(offset, stride float32, count int) int {
	if stride <= 0 {
		return 0
	}
	return clampInt(int(math32.Floor(offset/stride)), 0, count-1)
}

// subdivide turns a leaf into an inner node and hands its small shapes down.
func (g *Grid) subdivide(ni int32) {
	n := &g.nodes[ni]
	count := n.cx * n.cy * n.cz
	for i := 0; i < count; i++ {
		n.children = append(n.children, -1)
	}

	movers := g.movers[:0]
	kept := n.shapes[:0]
	for _, s := range n.shapes {
		if n.isTooBig(s.moveBounds.Size()) {
			kept = append(kept, s)
		} else {
			movers = append(movers, s)
		}
	}
	n.shapes = kept
	n.smallCount = 0

	// insertToChild can subdivide again and reuse g.movers
	g.movers = nil
	for _, s := range movers {
		g.insertToChild(ni, s)
	}
	g.movers = movers[:0]
}

func (g *Grid) insert(ni int32, s *Shape) {
	n := &g.nodes[ni]
	if n.isTooBig(s.moveBounds.Size()) {
		n.shapes = append(n.shapes, s)
		return
	}

	if !n.isLeaf() {
		g.insertToChild(ni, s)
		return
	}

	n.shapes = append(n.shapes, s)
	n.smallCount++
	if n.smallCount > g.cfg.MaxPerCell && n.cx*n.cy*n.cz >= 8 && n.depth < g.cfg.MaxDepth {
		g.subdivide(ni)
	}
}

func (g *Grid) insertToChild(ni int32, s *Shape) {
	n := &g.nodes[ni]
	x, y, z := n.cellOf(s.moveBounds.Center)
	idx := n.childIndex(x, y, z)
	ci := n.children[idx]
	if ci < 0 {
		min := rl.Vector3Add(n.bounds.Min(), rl.Vector3Multiply(n.stride, rl.Vector3{X: float32(x), Y: float32(y), Z: float32(z)}))
		max := rl.Vector3Add(min, n.stride)
		depth := n.depth + 1
		// addNode may grow g.nodes, so n is not used past this point
		ci = g.addNode(NewBoundsMinMax(min, max), depth)
		g.nodes[ni].children[idx] = ci
	}
	g.nodes[ci].shapeBounds.EncapsulateBounds(s.moveBounds)
	g.insert(ci, s)
}

// checkBounds reports s against every shape in the subtree of node ni that
// might overlap it.
func (g *Grid) checkBounds(ni int32, s *Shape) {
	n := &g.nodes[ni]
	if !n.shapeBounds.Intersects(s.moveBounds) {
		return
	}
	for _, other := range n.shapes {
		g.check(s, other)
	}
	if n.isLeaf() {
		return
	}

	// shapes below this node are smaller than one leaf cell, so their
	// centers lie within half a leaf cell of anything they overlap
	half := rl.Vector3Scale(n.leafCellSize, 0.5)
	x0, y0, z0 := n.cellOf(rl.Vector3Subtract(s.moveBounds.Min(), half))
	x1, y1, z1 := n.cellOf(rl.Vector3Add(s.moveBounds.Max(), half))
	x0, y0, z0 = max(x0-1, 0), max(y0-1, 0), max(z0-1, 0)
	x1, y1, z1 = min(x1+1, n.cx-1), min(y1+1, n.cy-1), min(z1+1, n.cz-1)
	for z := z0; z <= z1; z++ {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if ci := n.children[n.childIndex(x, y, z)]; ci >= 0 {
					g.checkBounds(ci, s)
				}
			}
		}
	}
}

// traverse visits ni in pre-order. A pair whose shapes sit in different
// children of some node is found when visiting the later child, through
// the earlier sibling pushed onto the neighbor stack.
func (g *Grid) traverse(ni int32) {
	n := &g.nodes[ni]

	// shapes of ancestor nodes against this node
	for _, shapes := range g.ancestors {
		for _, a := range shapes {
			for _, s := range n.shapes {
				g.check(a, s)
			}
		}
	}

	// shapes within this node
	for i := 0; i < len(n.shapes); i++ {
		for j := i + 1; j < len(n.shapes); j++ {
			g.check(n.shapes[i], n.shapes[j])
		}
	}

	// this node against earlier siblings of itself and of its ancestors
	for _, nb := range g.neighbors {
		for _, s := range n.shapes {
			g.checkBounds(nb, s)
		}
	}

	if n.isLeaf() {
		return
	}

	g.ancestors = append(g.ancestors, n.shapes)
	for z := 0; z < n.cz; z++ {
		for y := 0; y < n.cy; y++ {
			for x := 0; x < n.cx; x++ {
				ci := n.children[n.childIndex(x, y, z)]
				if ci < 0 {
					continue
				}
				mark := len(g.neighbors)
				g.pushEarlierSiblings(n, x, y, z)
				g.traverse(ci)
				g.neighbors = g.neighbors[:mark]
			}
		}
	}
	g.ancestors = g.ancestors[:len(g.ancestors)-1]
}

// pushEarlierSiblings pushes the materialized children of n within reach of
// cell (x, y, z) that come before it in traversal order.
func (g *Grid) pushEarlierSiblings(n *gridNode, x, y, z int) {
	self := n.childIndex(x, y, z)
	rx, ry, rz := n.reach[0], n.reach[1], n.reach[2]
	for zz := max(z-rz, 0); zz <= z; zz++ {
		for yy := max(y-ry, 0); yy <= min(y+ry, n.cy-1); yy++ {
			for xx := max(x-rx, 0); xx <= min(x+rx, n.cx-1); xx++ {
				idx := n.childIndex(xx, yy, zz)
				if idx >= self {
					continue
				}
				if ci := n.children[idx]; ci >= 0 {
					g.neighbors = append(g.neighbors, ci)
				}
			}
		}
	}
}
