// ABOUTME: Persistent B-tree with cached monoidal summaries, seekable by dimension.
// ABOUTME: At most 2*minChildren entries per node; nodes are immutable and structurally shared.

// Package sumtree implements the persistent B-tree that FoldMap tiles its
// display view on top of. It is deliberately generic over the item type and
// its summary so the same tree shape can hold FoldMap's Transform items (and
// is exercised directly by tests with plain integer-run items too).
package sumtree

// Summer is the constraint every summary type must satisfy: summaries form
// a monoid under Add, with the zero value of S as identity.
type Summer[S any] interface {
	Add(S) S
}

// Item is anything a tree can store as a leaf value: it must be able to
// describe itself with a summary.
type Item[S any] interface {
	Summary() S
}

// maxChildren bounds the branching factor of internal nodes and the item
// count of leaves; minChildren is the size a full node splits into. The
// last node built at each level may hold fewer than minChildren entries,
// down to one. B=6 keeps nodes cache-friendly while still
// giving good amortized costs for the run lengths FoldMap deals with.
const (
	minChildren = 6
	maxChildren = 2 * minChildren
)

// node is either a leaf (holding items directly) or internal (holding child
// nodes). Nodes are never mutated after construction; operations that
// "change" a tree build new nodes along the affected path and reuse
// everything else, which is what makes Tree values O(1) to clone.
type node[T Item[S], S Summer[S]] struct {
	leaf     bool
	summary  S
	items    []T
	children []*node[T, S]
}

func (n *node[T, S]) childCount() int {
	if n.leaf {
		return len(n.items)
	}
	return len(n.children)
}

func (n *node[T, S]) height() int {
	if n.leaf {
		return 0
	}
	return 1 + n.children[0].height()
}

// Tree is a persistent, structurally-shared B-tree. The zero value is an
// empty tree. Cloning a Tree (plain assignment — it's a small value type
// wrapping a pointer) is O(1) and independent of later mutation on either
// copy, since mutating methods never write through the shared root.
type Tree[T Item[S], S Summer[S]] struct {
	root *node[T, S]
}

// IsEmpty reports whether the tree holds no items.
func (t Tree[T, S]) IsEmpty() bool {
	return t.root == nil || t.root.childCount() == 0
}

// Summary returns the cached summary of the whole tree (the identity value
// of S for an empty tree).
func (t Tree[T, S]) Summary() S {
	if t.root == nil {
		var zero S
		return zero
	}
	return t.root.summary
}

// Len returns the number of items stored in the tree.
func (t Tree[T, S]) Len() int {
	if t.root == nil {
		return 0
	}
	return countItems(t.root)
}

func countItems[T Item[S], S Summer[S]](n *node[T, S]) int {
	if n.leaf {
		return len(n.items)
	}
	total := 0
	for _, c := range n.children {
		total += countItems(c)
	}
	return total
}

// summarize folds Summary() over a slice of items.
func summarizeItems[T Item[S], S Summer[S]](items []T) S {
	var sum S
	for _, it := range items {
		sum = sum.Add(it.Summary())
	}
	return sum
}

func summarizeChildren[T Item[S], S Summer[S]](children []*node[T, S]) S {
	var sum S
	for _, c := range children {
		sum = sum.Add(c.summary)
	}
	return sum
}

func newLeaf[T Item[S], S Summer[S]](items []T) *node[T, S] {
	return &node[T, S]{leaf: true, items: items, summary: summarizeItems[T, S](items)}
}

func newInternal[T Item[S], S Summer[S]](children []*node[T, S]) *node[T, S] {
	return &node[T, S]{leaf: false, children: children, summary: summarizeChildren[T, S](children)}
}

// FromItems builds a balanced tree from items in linear time.
func FromItems[T Item[S], S Summer[S]](items []T) Tree[T, S] {
	if len(items) == 0 {
		return Tree[T, S]{}
	}
	leaves := make([]*node[T, S], 0, (len(items)+maxChildren-1)/maxChildren)
	for start := 0; start < len(items); start += maxChildren {
		end := min(start+maxChildren, len(items))
		leaves = append(leaves, newLeaf[T, S](items[start:end]))
	}
	return Tree[T, S]{root: buildLevels(leaves)}
}

// buildLevels repeatedly groups a level of nodes into parents until a single
// root remains.
func buildLevels[T Item[S], S Summer[S]](level []*node[T, S]) *node[T, S] {
	if len(level) == 1 {
		return level[0]
	}
	next := make([]*node[T, S], 0, (len(level)+maxChildren-1)/maxChildren)
	for start := 0; start < len(level); start += maxChildren {
		end := min(start+maxChildren, len(level))
		next = append(next, newInternal[T, S](level[start:end]))
	}
	return buildLevels(next)
}

// FromItem builds a single-item tree.
func FromItem[T Item[S], S Summer[S]](item T) Tree[T, S] {
	return FromItems[T, S]([]T{item})
}

// Items returns every item in the tree in order. Intended for small trees
// (tests, building flat snapshots) — not the O(log n) query path.
func (t Tree[T, S]) Items() []T {
	if t.root == nil {
		return nil
	}
	out := make([]T, 0, countItems(t.root))
	collectItems(t.root, &out)
	return out
}

func collectItems[T Item[S], S Summer[S]](n *node[T, S], out *[]T) {
	if n.leaf {
		*out = append(*out, n.items...)
		return
	}
	for _, c := range n.children {
		collectItems(c, out)
	}
}

// Push appends a single item to the tree, returning a new tree. The
// original tree is untouched.
func (t Tree[T, S]) Push(item T) Tree[T, S] {
	return t.PushTree(FromItem[T, S](item))
}

// PushTree appends another tree's items after this tree's, returning a new
// tree. Implemented by re-inserting the other tree's leaves into this
// tree's right spine; unaffected left siblings are shared with the
// original, so the cost is proportional to the size of `other` and the
// height of `t`, not the size of `t`.
func (t Tree[T, S]) PushTree(other Tree[T, S]) Tree[T, S] {
	if other.IsEmpty() {
		return t
	}
	if t.IsEmpty() {
		return other
	}
	result := t
	appendLeaves(other.root, &result)
	return result
}

func appendLeaves[T Item[S], S Summer[S]](n *node[T, S], acc *Tree[T, S]) {
	if n.leaf {
		acc.appendItems(n.items)
		return
	}
	for _, c := range n.children {
		appendLeaves(c, acc)
	}
}

// appendItems bulk-appends items (already grouped as one leaf's worth) onto
// the tree's right edge, splitting nodes as needed on overflow.
func (t *Tree[T, S]) appendItems(items []T) {
	if len(items) == 0 {
		return
	}
	if t.root == nil {
		t.root = newLeaf[T, S](items)
		return
	}
	newRoot, split := insertAtEnd[T, S](t.root, items)
	if split != nil {
		t.root = newInternal[T, S]([]*node[T, S]{newRoot, split})
	} else {
		t.root = newRoot
	}
}

// insertAtEnd appends items to the rightmost edge of n, returning the
// (possibly new) node and a sibling produced if n overflowed and had to
// split. n itself is never mutated; new nodes are allocated along the
// right spine only.
func insertAtEnd[T Item[S], S Summer[S]](n *node[T, S], items []T) (*node[T, S], *node[T, S]) {
	if n.leaf {
		combined := make([]T, 0, len(n.items)+len(items))
		combined = append(combined, n.items...)
		combined = append(combined, items...)
		return splitLeafIfNeeded[T, S](combined)
	}

	lastIdx := len(n.children) - 1
	newLast, split := insertAtEnd[T, S](n.children[lastIdx], items)

	children := make([]*node[T, S], len(n.children))
	copy(children, n.children)
	children[lastIdx] = newLast
	if split != nil {
		children = append(children, split)
	}
	return splitInternalIfNeeded[T, S](children)
}

func splitLeafIfNeeded[T Item[S], S Summer[S]](items []T) (*node[T, S], *node[T, S]) {
	if len(items) <= maxChildren {
		return newLeaf[T, S](items), nil
	}
	mid := len(items) / 2
	return newLeaf[T, S](items[:mid]), newLeaf[T, S](items[mid:])
}

func splitInternalIfNeeded[T Item[S], S Summer[S]](children []*node[T, S]) (*node[T, S], *node[T, S]) {
	if len(children) <= maxChildren {
		return newInternal[T, S](children), nil
	}
	mid := len(children) / 2
	return newInternal[T, S](children[:mid]), newInternal[T, S](children[mid:])
}
