package plantuml

import (
	"fmt"
	"strings"

	"github.com/tboutron/prisma-uml/pkg/internal/graph"
)

// Notation selects how cardinalities are drawn on relation lines.
type Notation string

const (
	// NotationMultiplicity writes the tokens as-is: "User 1..* Post".
	NotationMultiplicity Notation = "multiplicity"
	// NotationCrowsFoot writes information-engineering glyphs: "User ||..o{ Post".
	NotationCrowsFoot Notation = "crowsfoot"
)

// ParseNotation validates a notation name. The empty string selects NotationMultiplicity.
func ParseNotation(s string) (Notation, error) {
	switch Notation(strings.ToLower(strings.TrimSpace(s))) {
	case "", NotationMultiplicity:
		return NotationMultiplicity, nil
	case NotationCrowsFoot:
		return NotationCrowsFoot, nil
	}
	return "", fmt.Errorf("unknown notation %q (want %q or %q)", s, NotationMultiplicity, NotationCrowsFoot)
}

var (
	crowsFootStart = map[string]string{graph.One: "||", graph.ZeroOrOne: "|o", graph.ZeroOrMany: "}o"}
	crowsFootEnd   = map[string]string{graph.One: "||", graph.ZeroOrOne: "o|", graph.ZeroOrMany: "o{"}
)

// Relation is the printable projection of a graph edge.
type Relation struct {
	Start       graph.Entity
	Cardinality graph.Cardinality
	End         graph.Entity
}

func edgeToRelation(e *graph.Edge) Relation {
	return Relation{
		Start:       e.Start.Value,
		Cardinality: e.Cardinality,
		End:         e.End.Value,
	}
}

// RenderRelation formats one relation as "<start> <startCard>..<endCard> <end>".
func RenderRelation(r Relation, n Notation) string {
	start, end := r.Cardinality.Start, r.Cardinality.End
	if n == NotationCrowsFoot {
		start, end = crowsFootStart[start], crowsFootEnd[end]
	}

	var b strings.Builder
	b.WriteString(r.Start.Name())
	b.WriteString(" ")
	b.WriteString(start)
	b.WriteString("..")
	b.WriteString(end)
	b.WriteString(" ")
	b.WriteString(r.End.Name())
	return b.String()
}

// Relations lists the relations to draw. With full set, every edge of the
// graph is returned; otherwise only the edges each vertex owns.
func Relations(g *graph.Graph, full bool) []Relation {
	var relations []Relation
	if full {
		for _, e := range g.Edges() {
			relations = append(relations, edgeToRelation(e))
		}
		return relations
	}
	for _, v := range g.Vertices() {
		for _, e := range v.Edges() {
			relations = append(relations, edgeToRelation(e))
		}
	}
	return relations
}
