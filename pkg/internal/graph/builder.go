package graph

import (
	"github.com/sirupsen/logrus"
	"github.com/tboutron/prisma-uml/pkg/internal/schema"
)

// Builder constructs the entity graph of a parsed schema
type Builder struct {
	logger *logrus.Logger
}

// NewBuilder creates a new graph builder
func NewBuilder(logger *logrus.Logger) *Builder {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &Builder{logger: logger}
}

// Build turns every enum and model into a vertex and every relation field
// into an edge from its model to the related model.
func (b *Builder) Build(doc *schema.Document) *Graph {
	g := New()

	for i := range doc.Enums {
		e := &doc.Enums[i]
		g.AddVertex(Entity{Enum: e})
		b.logger.Debugf("Added enum vertex %s (%d values)", e.Name, len(e.Values))
	}
	for i := range doc.Models {
		m := &doc.Models[i]
		g.AddVertex(Entity{Model: m})
		b.logger.Debugf("Added model vertex %s (%d fields)", m.Name, len(m.Fields))
	}

	for i := range doc.Models {
		m := &doc.Models[i]
		start, _ := g.Vertex(m.Name)
		for _, f := range m.Fields {
			if !f.IsRelation() {
				continue
			}
			end, ok := g.Vertex(f.Type)
			if !ok {
				b.logger.Warnf("Relation %s.%s targets unknown model %s, skipping", m.Name, f.Name, f.Type)
				continue
			}
			e := &Edge{
				Start:        start,
				End:          end,
				RelationName: f.RelationName,
				Field:        f.Name,
				Cardinality: Cardinality{
					Start: b.oppositeMultiplicity(doc, m.Name, f),
					End:   FieldMultiplicity(f),
				},
			}
			g.AddEdge(e)
			b.logger.WithFields(logrus.Fields{
				"relation": f.RelationName,
				"field":    f.Name,
			}).Debugf("Added edge %s %s..%s %s", m.Name, e.Cardinality.Start, e.Cardinality.End, f.Type)
		}
	}

	return g
}

// oppositeMultiplicity derives the start multiplicity from the back-relation
// field on the target model.
func (b *Builder) oppositeMultiplicity(doc *schema.Document, owner string, f schema.Field) string {
	target, ok := doc.Model(f.Type)
	if !ok {
		return ZeroOrMany
	}
	for _, other := range target.Fields {
		if !other.IsRelation() || other.Type != owner || other.RelationName != f.RelationName {
			continue
		}
		if target.Name == owner && other.Name == f.Name {
			continue
		}
		return FieldMultiplicity(other)
	}
	b.logger.Debugf("No back-relation for %s.%s, assuming %q", owner, f.Name, ZeroOrMany)
	return ZeroOrMany
}

// FieldMultiplicity maps a relation field to its multiplicity token.
func FieldMultiplicity(f schema.Field) string {
	switch {
	case f.IsList:
		return ZeroOrMany
	case !f.IsRequired:
		return ZeroOrOne
	default:
		return One
	}
}
