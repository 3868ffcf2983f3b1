// This file is part of Chronostim.
//
// Chronostim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chronostim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Chronostim.  If not, see <https://www.gnu.org/licenses/>.

package input

import (
	"io"

	"github.com/bradleyjkemp/memviz"
)

// GraphNode is a simplified view of a node in the input graph, suitable for
// visualisation.
type GraphNode struct {
	Name    string
	Kind    string
	Parents []*GraphNode
}

// Graph builds the simplified view of the node and every node it depends on.
// Nodes reachable by more than one path appear once.
func Graph(n Node) *GraphNode {
	seen := make(map[Node]*GraphNode)

	var build func(n Node) *GraphNode
	build = func(n Node) *GraphNode {
		if g, ok := seen[n]; ok {
			return g
		}

		g := &GraphNode{Name: n.Name()}
		switch n.(type) {
		case *Button:
			g.Kind = "Button"
		case *Axis:
			g.Kind = "Axis"
		case *Roller:
			g.Kind = "Roller"
		}
		seen[n] = g

		for _, p := range n.Parents() {
			g.Parents = append(g.Parents, build(p))
		}
		return g
	}

	return build(n)
}

// Dump writes a graphviz description of the input graph leading to the
// nodes.
func Dump(output io.Writer, nodes ...Node) {
	g := make([]any, 0, len(nodes))
	for _, n := range nodes {
		g = append(g, Graph(n))
	}
	memviz.Map(output, g...)
}
