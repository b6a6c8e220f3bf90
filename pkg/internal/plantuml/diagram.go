// Package plantuml renders a parsed Prisma data model as a PlantUML class diagram.
package plantuml

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/sirupsen/logrus"
	"github.com/tboutron/prisma-uml/pkg/internal/graph"
	"github.com/tboutron/prisma-uml/pkg/internal/schema"
)

// Options controls diagram rendering.
type Options struct {
	// FullRelationLinks draws both directions of every bidirectional relation.
	FullRelationLinks bool
	Notation          Notation
	Logger            *logrus.Logger
}

// Render builds the entity graph of doc and writes the whole diagram.
func Render(doc *schema.Document, opts Options) string {
	g := graph.NewBuilder(opts.Logger).Build(doc)
	return RenderGraph(g, opts)
}

// RenderGraph writes the diagram of an already built graph: enums, then
// entities, then relation lines.
func RenderGraph(g *graph.Graph, opts Options) string {
	var blocks []string
	for _, v := range g.Vertices() {
		if v.Value.IsEnum() {
			blocks = append(blocks, RenderEnum(v.Value.Enum))
		}
	}
	for _, v := range g.Vertices() {
		if v.Value.IsModel() {
			blocks = append(blocks, RenderEntity(v.Value.Model))
		}
	}

	relations := Relations(g, opts.FullRelationLinks)
	lines := make([]string, 0, len(relations))
	for _, r := range relations {
		lines = append(lines, RenderRelation(r, opts.Notation))
	}

	var b strings.Builder
	b.WriteString("@startuml\n\n")
	b.WriteString("skinparam linetype ortho\n\n")
	b.WriteString(strings.Join(blocks, "\n\n"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
	b.WriteString("@enduml\n")
	return b.String()
}

// execute runs a package template; it only fails on a broken template.
func execute(t *template.Template, data any) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		panic(fmt.Sprintf("plantuml: %s template: %v", t.Name(), err))
	}
	return b.String()
}
