package plantuml

import (
	"text/template"

	"github.com/tboutron/prisma-uml/pkg/internal/schema"
)

var enumTmpl = template.Must(template.New("enum").Parse(enumTemplate))

// RenderEnum formats an enum as a PlantUML enum block, values in declared order.
func RenderEnum(e *schema.Enum) string {
	return execute(enumTmpl, e)
}

const enumTemplate = `enum {{ .Name }} {
{{- range .Values }}
  {{ .Name }}
{{- end }}
}`
