package graph

import "github.com/tboutron/prisma-uml/pkg/internal/schema"

// Multiplicity tokens understood by PlantUML.
const (
	One        = "1"
	ZeroOrOne  = "0..1"
	ZeroOrMany = "*"
)

// Cardinality is the pair of multiplicities at both ends of an edge.
type Cardinality struct {
	Start string
	End   string
}

// Entity is the value held by a vertex: exactly one of Model or Enum is set.
type Entity struct {
	Model *schema.Model
	Enum  *schema.Enum
}

// Name returns the model or enum name.
func (e Entity) Name() string {
	if e.Model != nil {
		return e.Model.Name
	}
	if e.Enum != nil {
		return e.Enum.Name
	}
	return ""
}

// IsModel reports whether the entity wraps a model.
func (e Entity) IsModel() bool { return e.Model != nil }

// IsEnum reports whether the entity wraps an enum.
func (e Entity) IsEnum() bool { return e.Enum != nil }

// Vertex is a node of the graph identified by its entity name.
type Vertex struct {
	Value Entity
	edges []*Edge
}

// Name returns the vertex identity.
func (v *Vertex) Name() string { return v.Value.Name() }

// Edges returns the edges this vertex owns, in insertion order.
func (v *Vertex) Edges() []*Edge { return v.edges }

// Edge is a directed relation between two vertices.
type Edge struct {
	Start        *Vertex
	End          *Vertex
	Cardinality  Cardinality
	RelationName string
	Field        string // relation field on the start model
}

// Graph is an adjacency-list graph of entities keyed by name.
type Graph struct {
	vertices map[string]*Vertex
	order    []*Vertex
	edges    []*Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{vertices: make(map[string]*Vertex)}
}

// AddVertex adds a vertex for the entity. Entity names must be unique
// within a graph.
func (g *Graph) AddVertex(value Entity) *Vertex {
	v := &Vertex{Value: value}
	g.vertices[value.Name()] = v
	g.order = append(g.order, v)
	return v
}

// Vertex returns a vertex by name.
func (g *Graph) Vertex(name string) (*Vertex, bool) {
	v, ok := g.vertices[name]
	return v, ok
}

// Vertices returns all vertices in insertion order.
func (g *Graph) Vertices() []*Vertex { return g.order }

// Edges returns every edge in insertion order, including reverse edges of
// bidirectional relations.
func (g *Graph) Edges() []*Edge { return g.edges }

// AddEdge records an edge and attaches it to its start vertex, unless the
// reverse edge of the same relation is already owned by the end vertex.
// Both vertices must already be part of the graph.
func (g *Graph) AddEdge(e *Edge) {
	g.edges = append(g.edges, e)
	if g.ownsReverse(e) {
		return
	}
	e.Start.edges = append(e.Start.edges, e)
}

func (g *Graph) ownsReverse(e *Edge) bool {
	for _, other := range e.End.edges {
		if other.End != e.Start || other.RelationName != e.RelationName {
			continue
		}
		// a field is identified by its owner and name
		if other.Start == e.Start && other.Field == e.Field {
			continue
		}
		return true
	}
	return false
}
