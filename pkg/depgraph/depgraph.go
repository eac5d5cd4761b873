// Package depgraph models a resolved dependency graph for inspection and
// export.
//
// The graph is a read-only snapshot: nodes are selected
// coordinate/version pairs, edges follow the "depends on" direction, and
// nodes implicated in a version conflict carry the full candidate list.
// [Graph.DOT] serializes to Graphviz DOT and [Graph.RenderSVG] renders it
// in-process.
package depgraph

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// Node is one resolved coordinate.
type Node struct {
	Coordinate string   // "groupId:artifactId"
	Version    string   // selected version
	Direct     bool     // declared by the caller rather than discovered
	Candidates []string // all versions observed; len > 1 means conflict
}

// Conflicted reports whether more than one version was observed for the
// node's coordinate.
func (n Node) Conflicted() bool { return len(n.Candidates) > 1 }

// Edge records that From depends on To (coordinates).
type Edge struct {
	From string
	To   string
}

// Graph is an ordered snapshot of a resolution walk. Nodes appear in
// resolution order.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Node returns the node for a coordinate, if present.
func (g *Graph) Node(coordinate string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.Coordinate == coordinate {
			return n, true
		}
	}
	return Node{}, false
}

// DOT returns a Graphviz DOT representation of the graph. Direct
// dependencies render as boxes, transitive ones as ellipses, and
// conflicted nodes are filled red with every candidate version listed.
func (g *Graph) DOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph classpath {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled, fillcolor=white];\n\n")

	ids := make(map[string]string, len(g.Nodes))
	for i, n := range g.Nodes {
		id := fmt.Sprintf("n%d", i)
		ids[n.Coordinate] = id

		label := n.Coordinate + "\\n" + n.Version
		shape := "ellipse"
		if n.Direct {
			shape = "box"
		}
		if n.Conflicted() {
			fmt.Fprintf(&buf, "  %s [label=\"%s\", shape=%s, fillcolor=\"#f4cccc\", tooltip=\"candidates: %s\"];\n",
				id, label, shape, joinVersions(n.Candidates))
		} else {
			fmt.Fprintf(&buf, "  %s [label=\"%s\", shape=%s];\n", id, label, shape)
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		from, okFrom := ids[e.From]
		to, okTo := ids[e.To]
		if okFrom && okTo {
			fmt.Fprintf(&buf, "  %s -> %s;\n", from, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the graph to a complete SVG document via Graphviz.
func (g *Graph) RenderSVG(ctx context.Context) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(g.DOT()))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

func joinVersions(versions []string) string {
	var buf bytes.Buffer
	for i, v := range versions {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(v)
	}
	return buf.String()
}
