// Package tree is a minimal element tree: an arena of rectangular elements addressed by
// non-owning IDs, hit testing, and a router that delivers canonical pointer events to
// handlers registered on elements.
//
// Gestures and the click detector only ever hold IDs. An ID outlives the element it named;
// once the element is removed, every query on the ID reports it as gone.
package tree

import (
	"fmt"
	"strings"

	"honnef.co/go/tap/debug"
	"honnef.co/go/tap/f32"
)

type ID uint32

// None is the invalid ID.
const None ID = 0

type node struct {
	name     string
	parent   ID
	children []ID
	// bounds are in the parent's local space. An element's local space has its origin at
	// bounds.Min.
	bounds f32.Rectangle
	active bool
	alive  bool
}

// Arena owns the elements of a tree. IDs are never reused.
type Arena struct {
	// nodes[0] is a sentinel for None.
	nodes []node
	names map[string]ID
}

func NewArena() *Arena {
	return &Arena{
		nodes: make([]node, 1),
		names: make(map[string]ID),
	}
}

// Add adds an element with the given bounds, expressed in parent's local space. A parent of
// None adds a root.
func (a *Arena) Add(parent ID, bounds f32.Rectangle, name string) ID {
	debug.Assertf(parent == None || a.Alive(parent), "parent %d is not alive", parent)
	id := ID(len(a.nodes))
	a.nodes = append(a.nodes, node{
		name:   name,
		parent: parent,
		bounds: bounds,
		alive:  true,
	})
	if parent != None {
		p := &a.nodes[parent]
		p.children = append(p.children, id)
	}
	if name != "" {
		a.names[name] = id
	}
	return id
}

// Remove removes id and all of its descendants.
func (a *Arena) Remove(id ID) {
	if !a.Alive(id) {
		return
	}
	n := &a.nodes[id]
	if n.parent != None {
		p := &a.nodes[n.parent]
		for i, c := range p.children {
			if c == id {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
	a.remove(id)
}

func (a *Arena) remove(id ID) {
	n := &a.nodes[id]
	for _, c := range n.children {
		a.remove(c)
	}
	if n.name != "" && a.names[n.name] == id {
		delete(a.names, n.name)
	}
	*n = node{}
}

func (a *Arena) Alive(id ID) bool {
	return id != None && int(id) < len(a.nodes) && a.nodes[id].alive
}

// Parent returns the parent of id, or None for roots and dead elements.
func (a *Arena) Parent(id ID) ID {
	if !a.Alive(id) {
		return None
	}
	return a.nodes[id].parent
}

func (a *Arena) Children(id ID) []ID {
	if !a.Alive(id) {
		return nil
	}
	return a.nodes[id].children
}

func (a *Arena) Name(id ID) string {
	if !a.Alive(id) {
		return ""
	}
	return a.nodes[id].name
}

// Lookup returns the live element with the given name.
func (a *Arena) Lookup(name string) (ID, bool) {
	id, ok := a.names[name]
	return id, ok
}

// SetBounds moves or resizes id. bounds are in the parent's local space.
func (a *Arena) SetBounds(id ID, bounds f32.Rectangle) {
	debug.Assert(a.Alive(id))
	a.nodes[id].bounds = bounds
}

// WorldBounds returns the bounds of id in world space. Dead elements have empty bounds.
func (a *Arena) WorldBounds(id ID) f32.Rectangle {
	if !a.Alive(id) {
		return f32.Rectangle{}
	}
	n := &a.nodes[id]
	return n.bounds.Add(a.origin(n.parent))
}

// origin returns the world position of the origin of id's local space.
func (a *Arena) origin(id ID) f32.Point {
	var off f32.Point
	for ; id != None; id = a.nodes[id].parent {
		off = off.Add(a.nodes[id].bounds.Min)
	}
	return off
}

// ToLocal transforms a world-space point into id's local space.
func (a *Arena) ToLocal(id ID, p f32.Point) f32.Point {
	if !a.Alive(id) {
		return p
	}
	return p.Sub(a.origin(id))
}

// Contains reports whether the local-space point p lies within id's bounds.
func (a *Arena) Contains(id ID, local f32.Point) bool {
	if !a.Alive(id) {
		return false
	}
	size := a.nodes[id].bounds.Size()
	return f32.Rectangle{Max: size}.Contains(local)
}

// SetActive sets the "active" pseudo-state of id.
func (a *Arena) SetActive(id ID, active bool) {
	if !a.Alive(id) {
		return
	}
	a.nodes[id].active = active
}

func (a *Arena) Active(id ID) bool {
	return a.Alive(id) && a.nodes[id].active
}

func (a *Arena) depth(id ID) int {
	d := 0
	for ; id != None; id = a.nodes[id].parent {
		d++
	}
	return d
}

// CommonAncestor returns the lowest common ancestor of x and y, which is x itself if y is a
// descendant of x, or None if they're in different trees or either is dead.
func (a *Arena) CommonAncestor(x, y ID) ID {
	if !a.Alive(x) || !a.Alive(y) {
		return None
	}
	dx, dy := a.depth(x), a.depth(y)
	for ; dx > dy; dx-- {
		x = a.nodes[x].parent
	}
	for ; dy > dx; dy-- {
		y = a.nodes[y].parent
	}
	for x != y {
		x = a.nodes[x].parent
		y = a.nodes[y].parent
	}
	return x
}

// HitTest returns the deepest element containing the world-space point p. Of overlapping
// siblings, the one added last is on top. Roots are tested in reverse order of addition too.
func (a *Arena) HitTest(p f32.Point) ID {
	for id := ID(len(a.nodes) - 1); id > None; id-- {
		n := &a.nodes[id]
		if !n.alive || n.parent != None {
			continue
		}
		if hit := a.hitTest(id, p); hit != None {
			return hit
		}
	}
	return None
}

// hitTest hit tests id and its children. p is in the local space of id's parent.
func (a *Arena) hitTest(id ID, p f32.Point) ID {
	n := &a.nodes[id]
	if !n.bounds.Contains(p) {
		return None
	}
	local := p.Sub(n.bounds.Min)
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := a.hitTest(n.children[i], local); hit != None {
			return hit
		}
	}
	return id
}

// Format returns an indented representation of the tree, for debugging.
func (a *Arena) Format() string {
	var sb strings.Builder
	var visit func(id ID, depth int)
	visit = func(id ID, depth int) {
		n := &a.nodes[id]
		fmt.Fprintf(&sb, "%s%s(%d) %v", strings.Repeat("\t", depth), n.name, id, n.bounds)
		if n.active {
			sb.WriteString(" active")
		}
		sb.WriteByte('\n')
		for _, c := range n.children {
			visit(c, depth+1)
		}
	}
	for id := range a.nodes {
		if n := &a.nodes[id]; n.alive && n.parent == None {
			visit(ID(id), 0)
		}
	}
	return sb.String()
}
