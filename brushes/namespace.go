package brushes

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is a namespace tree element: either a *Node or a *Leaf.
type Entry interface {
	entry()
}

// Node groups entries sharing a dotted prefix.
type Node struct {
	children map[string]Entry
	order    []string
}

// Leaf points at a catalog key.
type Leaf struct {
	Key string
}

func (*Node) entry() {}
func (*Leaf) entry() {}

func newNode() *Node {
	return &Node{children: map[string]Entry{}}
}

// Names returns the child segment names in sorted order.
func (n *Node) Names() []string {
	return append([]string(nil), n.order...)
}

// Child returns the entry stored under segment.
func (n *Node) Child(segment string) (Entry, bool) {
	e, ok := n.children[segment]
	return e, ok
}

func (n *Node) Len() int { return len(n.order) }

// insert places key under the dotted, lower-cased form of name. A trailing
// raster extension stays attached to the final segment, which becomes the
// leaf. Nothing is inserted when a segment on the path is already taken.
func (n *Node) insert(name, key string) error {
	segments := Segments(name)
	if len(segments) == 0 {
		return fmt.Errorf("%w: empty name", ErrNamespace)
	}
	parents, last := segments[:len(segments)-1], segments[len(segments)-1]

	cur := n
	for i, seg := range parents {
		e, ok := cur.children[seg]
		if !ok {
			break
		}
		child, isNode := e.(*Node)
		if !isNode {
			return fmt.Errorf("%w: %q is a brush", ErrNamespace, strings.Join(segments[:i+1], "."))
		}
		cur = child
		if i == len(parents)-1 {
			if _, taken := cur.children[last]; taken {
				return fmt.Errorf("%w: %q already exists", ErrNamespace, strings.Join(segments, "."))
			}
		}
	}
	if len(parents) == 0 {
		if _, taken := n.children[last]; taken {
			return fmt.Errorf("%w: %q already exists", ErrNamespace, last)
		}
	}

	cur = n
	for _, seg := range parents {
		child, ok := cur.children[seg].(*Node)
		if !ok {
			child = newNode()
			cur.add(seg, child)
		}
		cur = child
	}
	cur.add(last, &Leaf{Key: key})
	return nil
}

func (n *Node) add(seg string, e Entry) {
	n.children[seg] = e
	i := sort.SearchStrings(n.order, seg)
	n.order = append(n.order, "")
	copy(n.order[i+1:], n.order[i:])
	n.order[i] = seg
}

// Segments splits a brush name into its namespace path.
func Segments(name string) []string {
	name = strings.ToLower(name)
	if name == "" {
		return nil
	}
	parts := strings.Split(name, ".")
	if len(parts) > 1 && rasterExts[parts[len(parts)-1]] {
		ext := parts[len(parts)-1]
		parts = parts[:len(parts)-1]
		parts[len(parts)-1] += "." + ext
	}
	return parts
}

// Walk visits every entry depth first, children in sorted order. path is the
// dotted segment path and depth starts at 0 for the root's children.
// Returning false from fn skips a node's children.
func (n *Node) Walk(fn func(path string, depth int, e Entry) bool) {
	n.walk("", 0, fn)
}

func (n *Node) walk(prefix string, depth int, fn func(string, int, Entry) bool) {
	for _, seg := range n.order {
		p := seg
		if prefix != "" {
			p = prefix + "." + seg
		}
		e := n.children[seg]
		if !fn(p, depth, e) {
			continue
		}
		if child, ok := e.(*Node); ok {
			child.walk(p, depth+1, fn)
		}
	}
}

// Leaves returns every catalog key in display order.
func (n *Node) Leaves() []string {
	var keys []string
	n.Walk(func(_ string, _ int, e Entry) bool {
		if leaf, ok := e.(*Leaf); ok {
			keys = append(keys, leaf.Key)
		}
		return true
	})
	return keys
}
