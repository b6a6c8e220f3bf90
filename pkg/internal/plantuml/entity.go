package plantuml

import (
	"strings"
	"text/template"

	"github.com/tboutron/prisma-uml/pkg/internal/schema"
)

var entityTmpl = template.Must(template.New("entity").Parse(entityTemplate))

type entityTemplateData struct {
	Name   string
	Keys   []string
	Fields []string
}

// RenderEntity formats a model as a PlantUML entity block. Relation fields
// are left out; key fields come first, above a separator.
func RenderEntity(m *schema.Model) string {
	fks := m.ForeignKeys()
	data := entityTemplateData{Name: m.Name}
	for _, f := range m.Fields {
		if f.IsRelation() {
			continue
		}
		line := fieldLine(f, fks[f.Name])
		if f.IsID {
			data.Keys = append(data.Keys, line)
		} else {
			data.Fields = append(data.Fields, line)
		}
	}
	return execute(entityTmpl, data)
}

// fieldLine renders "* name : Type[] <<FK>> <<unique>>".
func fieldLine(f schema.Field, fk bool) string {
	var b strings.Builder
	if f.IsRequired {
		b.WriteString("* ")
	}
	b.WriteString(f.Name)
	b.WriteString(" : ")
	b.WriteString(f.Type)
	if f.IsList {
		b.WriteString("[]")
	}
	if fk {
		b.WriteString(" <<FK>>")
	}
	if f.IsUnique {
		b.WriteString(" <<unique>>")
	}
	return b.String()
}

const entityTemplate = `entity {{ .Name }} {
{{- range .Keys }}
  {{ . }}
{{- end }}
{{- if and .Keys .Fields }}
  --
{{- end }}
{{- range .Fields }}
  {{ . }}
{{- end }}
}`
