package analyzer

import (
	"fmt"

	"github.com/ivlev/svgmotion/internal/svg"
)

// Unit is an independently animatable piece of a document: either a
// top-level group or an ungrouped visible shape. Each unit becomes one
// layer (Lottie) or one animated element (SMIL) in the output.
type Unit struct {
	Node  *svg.Node
	Index int    // position in document order
	Name  string // stable name for the output layer
}

// Summary describes the overall structure of a document.
type Summary struct {
	Groups int // top-level groups
	Paths  int // path elements, at any depth
	Shapes int // basic shapes (rect, circle, ellipse, line, poly*)
	Flat   bool
}

// Units walks the document and returns its animation units in document
// order. Groups are taken whole; invisible nodes and nodes without
// renderable geometry are skipped.
func Units(doc *svg.Document) []Unit {
	var units []Unit
	for _, node := range doc.Nodes {
		if !animatable(node) {
			continue
		}
		units = append(units, Unit{
			Node:  node,
			Index: len(units),
			Name:  unitName(node, len(units)),
		})
	}
	return units
}

// Analyze returns the structural summary of a document. A document is
// considered flat when it has many paths but almost no grouping, which
// usually means exporter output rather than hand-authored structure.
func Analyze(doc *svg.Document) Summary {
	var s Summary
	for _, node := range doc.Nodes {
		if node.Kind == svg.KindGroup {
			s.Groups++
		}
	}
	doc.Walk(func(node *svg.Node) {
		switch node.Kind {
		case svg.KindPath:
			s.Paths++
		case svg.KindShape:
			s.Shapes++
		}
	})
	s.Flat = s.Groups < 3 && s.Paths > 20
	return s
}

// animatable reports whether a node should become a unit. Groups
// qualify when any descendant has geometry; leaves need geometry of
// their own. Fully transparent nodes are left static.
func animatable(node *svg.Node) bool {
	if !node.Visible() {
		return false
	}
	switch node.Kind {
	case svg.KindGroup:
		found := false
		node.WalkChildren(func(n *svg.Node) {
			if n.Visible() && n.HasGeometry() {
				found = true
			}
		})
		return found
	case svg.KindPath, svg.KindShape:
		return node.HasGeometry()
	default:
		return false
	}
}

func unitName(node *svg.Node, index int) string {
	if node.ID != "" {
		return node.ID
	}
	return fmt.Sprintf("%s-%d", node.Tag, index+1)
}
