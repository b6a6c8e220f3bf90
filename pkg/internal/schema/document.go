package schema

import "strings"

// FieldKind classifies what a field's type refers to.
type FieldKind string

const (
	KindScalar      FieldKind = "scalar"
	KindEnum        FieldKind = "enum"
	KindObject      FieldKind = "object"
	KindUnsupported FieldKind = "unsupported"
)

// Field describes a single model field as declared in the schema.
type Field struct {
	Name               string
	Type               string // Prisma type name (e.g. "Int", "Role", "Post")
	Kind               FieldKind
	IsList             bool
	IsRequired         bool
	IsID               bool
	IsUnique           bool
	RelationName       string
	RelationFromFields []string
}

// IsRelation reports whether the field is a relation-only virtual field.
func (f Field) IsRelation() bool { return f.Kind == KindObject }

// Model describes a model (or view) block.
type Model struct {
	Name       string
	Fields     []Field
	PrimaryKey []string // fields named by @@id
}

// Field returns the field with the given name.
func (m *Model) Field(name string) (*Field, bool) {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i], true
		}
	}
	return nil, false
}

// ForeignKeys returns the set of scalar fields named in the model's @relation(fields: ...).
func (m *Model) ForeignKeys() map[string]bool {
	fks := make(map[string]bool)
	for _, f := range m.Fields {
		for _, name := range f.RelationFromFields {
			fks[name] = true
		}
	}
	return fks
}

// EnumValue is one member of an enum.
type EnumValue struct {
	Name string
}

// Enum describes an enum block.
type Enum struct {
	Name   string
	Values []EnumValue
}

// Document is the parsed data model: models and enums in declared order.
type Document struct {
	Models []Model
	Enums  []Enum
}

// Model returns the model with the given name.
func (d *Document) Model(name string) (*Model, bool) {
	for i := range d.Models {
		if d.Models[i].Name == name {
			return &d.Models[i], true
		}
	}
	return nil, false
}

// implicitRelationName mirrors Prisma's naming of unnamed relations:
// both model names in lexical order joined by "To".
func implicitRelationName(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "To" + b
}
