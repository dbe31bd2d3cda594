package visual

// DefaultDirection is the layout direction used when none is requested.
const DefaultDirection = "LR"

// DefaultFont is the node and edge font used when none is requested.
const DefaultFont = "Helvetica"

// Node is one drawable statement: an entity, activity, or agent.
type Node struct {
	ID        string
	Label     string
	Shape     string
	FillColor string
}

// Edge is one drawable relation. Source and Target hold raw statement
// identifiers; they are sanitized at DOT emission time.
type Edge struct {
	Source    string
	Target    string
	Label     string
	Style     string
	Dir       string
	Color     string
	Arrowhead string
}

// Graph is the visual graph: nodes and edges in insertion order plus
// the layout direction and font.
type Graph struct {
	direction string
	font      string
	nodes     []*Node
	edges     []*Edge
	byID      map[string]int
}

// NewGraph creates an empty graph. An empty direction or font falls
// back to [DefaultDirection] and [DefaultFont].
func NewGraph(direction, font string) *Graph {
	if direction == "" {
		direction = DefaultDirection
	}
	if font == "" {
		font = DefaultFont
	}
	return &Graph{direction: direction, font: font, byID: make(map[string]int)}
}

// Direction returns the layout direction.
func (g *Graph) Direction() string { return g.direction }

// Font returns the node and edge font name.
func (g *Graph) Font() string { return g.font }

// SetNode adds a node. Re-declaring an identifier replaces the earlier
// node but keeps its position, so the last declaration wins without
// reordering the drawing.
func (g *Graph) SetNode(n *Node) {
	if i, ok := g.byID[n.ID]; ok {
		g.nodes[i] = n
		return
	}
	g.byID[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
}

// AddEdge appends an edge. Edges are never deduplicated; parallel
// relations draw parallel arrows.
func (g *Graph) AddEdge(e *Edge) {
	g.edges = append(g.edges, e)
}

// Nodes returns the nodes in insertion order. The slice is shared with
// the graph and must not be modified.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Edges returns the edges in insertion order. The slice is shared with
// the graph and must not be modified.
func (g *Graph) Edges() []*Edge { return g.edges }

// NodeCount returns the number of distinct node identifiers.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }
