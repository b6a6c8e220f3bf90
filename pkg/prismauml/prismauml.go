// Package prismauml converts Prisma schemas into PlantUML class diagrams.
package prismauml

import (
	"github.com/sirupsen/logrus"
	"github.com/tboutron/prisma-uml/pkg/internal/plantuml"
	"github.com/tboutron/prisma-uml/pkg/internal/schema"
)

// Re-exported so callers outside this module can name them.
type (
	Document = schema.Document
	Notation = plantuml.Notation
)

const (
	NotationMultiplicity = plantuml.NotationMultiplicity
	NotationCrowsFoot    = plantuml.NotationCrowsFoot
)

// ErrInvalidSchema matches every schema syntax error returned by LoadSchema.
var ErrInvalidSchema = schema.ErrInvalidSchema

// Options controls how the diagram is drawn.
type Options struct {
	FullRelationLinks bool
	Notation          Notation
	Logger            *logrus.Logger
}

// LoadSchema reads and parses the Prisma schema at path.
func LoadSchema(path string) (*Document, error) {
	return schema.Load(path)
}

// ParseNotation validates a notation name.
func ParseNotation(s string) (Notation, error) {
	return plantuml.ParseNotation(s)
}

// ToPlantUML renders a parsed schema as PlantUML text.
func ToPlantUML(doc *Document, opts Options) string {
	return plantuml.Render(doc, plantuml.Options{
		FullRelationLinks: opts.FullRelationLinks,
		Notation:          opts.Notation,
		Logger:            opts.Logger,
	})
}

// Generate loads the schema at path and renders it. Loading errors are
// returned unchanged and no output is produced.
func Generate(path string, opts Options) (string, error) {
	doc, err := LoadSchema(path)
	if err != nil {
		return "", err
	}
	return ToPlantUML(doc, opts), nil
}
