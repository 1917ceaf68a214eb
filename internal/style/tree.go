package style

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// Node is one level of a Style Tree: either a *Parent with a default style
// and named children, or a Leaf carrying a single style.
type Node interface {
	// Lookup resolves a class path to a Style. It never fails.
	Lookup(path []string) Style

	insert(path []string, s Style) Node
	dump(w io.Writer, indent int)
}

// Parent is an inner Style Tree node.
type Parent struct {
	Default  Style
	Children map[string]Node
}

// Leaf is a terminal Style Tree node. Remaining path segments are ignored.
type Leaf struct {
	Style Style
}

// Compile-time interface checks.
var (
	_ Node = (*Parent)(nil)
	_ Node = Leaf{}
)

// NewTree returns an empty tree whose root default is def.
func NewTree(def Style) *Parent {
	return &Parent{Default: def, Children: make(map[string]Node)}
}

// Lookup walks the path left to right. An unmatched class or an exhausted
// path yields the default of the node reached so far. Styles are merged down
// the path, so a descendant only overrides the fields it sets.
func (p *Parent) Lookup(path []string) Style {
	if len(path) == 0 {
		return p.Default
	}
	child, ok := p.Children[path[0]]
	if !ok {
		return p.Default
	}
	return p.Default.Merge(child.Lookup(path[1:]))
}

// Lookup returns the leaf style.
func (l Leaf) Lookup([]string) Style {
	return l.Style
}

// Match resolves the class list of a single markup element. The rightmost
// class that names a root child wins; lookup continues with the classes that
// follow it, so "title function" reaches title.function.
func (p *Parent) Match(classes []string) Style {
	for i := len(classes) - 1; i >= 0; i-- {
		if _, ok := p.Children[classes[i]]; ok {
			return p.Lookup(classes[i:])
		}
	}
	return p.Default
}

// Insert stores s at path, creating intermediate nodes as needed.
// An empty path replaces the root default.
func (p *Parent) Insert(path []string, s Style) {
	if len(path) == 0 {
		p.Default = s
		return
	}
	p.insert(path, s)
}

func (p *Parent) insert(path []string, s Style) Node {
	if len(path) == 0 {
		p.Default = s
		return p
	}
	if p.Children == nil {
		p.Children = make(map[string]Node)
	}
	name := path[0]
	child, ok := p.Children[name]
	switch {
	case ok:
		p.Children[name] = child.insert(path[1:], s)
	case len(path) == 1:
		p.Children[name] = Leaf{Style: s}
	default:
		// Intermediate nodes inherit the enclosing default so that
		// lookups stopping there behave as before the insert.
		mid := &Parent{Default: p.Default, Children: make(map[string]Node)}
		p.Children[name] = mid.insert(path[1:], s)
	}
	return p
}

func (l Leaf) insert(path []string, s Style) Node {
	if len(path) == 0 {
		return Leaf{Style: s}
	}
	// Inserting below a leaf downgrades it to a parent whose default is the
	// old leaf style, so every previously reachable path resolves the same.
	p := &Parent{Default: l.Style, Children: make(map[string]Node)}
	return p.insert(path, s)
}

// Dump writes an indented view of the tree.
func (p *Parent) Dump(w io.Writer) {
	p.dump(w, 0)
}

func (p *Parent) dump(w io.Writer, indent int) {
	fmt.Fprintf(w, "%s\n", p.Default)
	for _, name := range slices.Sorted(maps.Keys(p.Children)) {
		fmt.Fprintf(w, "%s%s: ", strings.Repeat("  ", indent+1), name)
		p.Children[name].dump(w, indent+1)
	}
}

func (l Leaf) dump(w io.Writer, _ int) {
	fmt.Fprintf(w, "%s\n", l.Style)
}
