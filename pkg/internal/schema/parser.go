package schema

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	blockRe = regexp.MustCompile(`^(\w+)\s+(\w+)\s*\{\s*(\})?$`)
	fieldRe = regexp.MustCompile(`^(\w+)\s+(Unsupported\("[^"]*"\)|\w+(?:\.\w+)?)(\[\])?(\?)?(?:\s+(.*))?$`)
	valueRe = regexp.MustCompile(`^(\w+)(?:\s+(.*))?$`)
)

// block kinds that carry declarations we keep
const (
	blockModel      = "model"
	blockView       = "view"
	blockEnum       = "enum"
	blockType       = "type"
	blockDatasource = "datasource"
	blockGenerator  = "generator"
)

// attribute is one "@name(args)" occurrence on a field or enum value.
type attribute struct {
	Name string
	Args string
}

// Load reads a Prisma schema file and parses it.
// I/O errors are returned unchanged.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a Prisma schema into a Document.
func Parse(input []byte) (*Document, error) {
	input = bytes.TrimPrefix(input, []byte("\ufeff"))
	p := &parser{
		doc:      &Document{},
		declared: map[string]int{},
	}
	if err := p.run(input); err != nil {
		return nil, err
	}
	p.resolve()
	return p.doc, nil
}

type parser struct {
	doc      *Document
	declared map[string]int // declaration name -> line

	kind  string // kind of the open block, "" at top level
	start int
	model *Model
	enum  *Enum
}

func (p *parser) run(input []byte) error {
	sc := bufio.NewScanner(bytes.NewReader(input))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(stripComment(sc.Text()))
		if text == "" {
			continue
		}
		var err error
		if p.kind == "" {
			err = p.openBlock(line, text)
		} else {
			err = p.blockLine(line, text)
		}
		if err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if p.kind != "" {
		return errorf(p.start, fmt.Sprintf("unterminated %s block", p.kind))
	}
	return nil
}

func (p *parser) openBlock(line int, text string) error {
	m := blockRe.FindStringSubmatch(text)
	if m == nil {
		return errorf(line, fmt.Sprintf("unexpected %q", text))
	}
	kind, name := m[1], m[2]

	switch kind {
	case blockModel, blockView, blockEnum:
		if prev, ok := p.declared[name]; ok {
			return errorf(line, fmt.Sprintf("%q is already declared at line %d", name, prev))
		}
		p.declared[name] = line
	case blockType, blockDatasource, blockGenerator:
	default:
		return errorf(line, fmt.Sprintf("unknown block type %q", kind))
	}

	switch kind {
	case blockModel, blockView:
		p.doc.Models = append(p.doc.Models, Model{Name: name})
		p.model = &p.doc.Models[len(p.doc.Models)-1]
	case blockEnum:
		p.doc.Enums = append(p.doc.Enums, Enum{Name: name})
		p.enum = &p.doc.Enums[len(p.doc.Enums)-1]
	}
	p.kind, p.start = kind, line
	if m[3] != "" {
		p.closeBlock()
	}
	return nil
}

func (p *parser) closeBlock() {
	p.kind, p.start = "", 0
	p.model, p.enum = nil, nil
}

func (p *parser) blockLine(line int, text string) error {
	if text == "}" {
		p.closeBlock()
		return nil
	}
	switch p.kind {
	case blockModel, blockView:
		return p.modelLine(line, text)
	case blockEnum:
		return p.enumLine(line, text)
	}
	// composite types, datasource and generator blocks are not part of the diagram
	return nil
}

func (p *parser) modelLine(line int, text string) error {
	if strings.HasPrefix(text, "@@") {
		for _, attr := range splitAttributes(text[1:]) {
			if attr.Name == "id" {
				positional, named := splitArgs(attr.Args)
				list := named["fields"]
				if list == "" && len(positional) > 0 {
					list = positional[0]
				}
				p.model.PrimaryKey = parseList(list)
			}
		}
		return nil
	}

	m := fieldRe.FindStringSubmatch(text)
	if m == nil {
		return errorf(line, fmt.Sprintf("malformed field %q in %s", text, p.model.Name))
	}
	if _, ok := p.model.Field(m[1]); ok {
		return errorf(line, fmt.Sprintf("field %q is already declared in %s", m[1], p.model.Name))
	}
	f := Field{
		Name:       m[1],
		Type:       m[2],
		IsList:     m[3] != "",
		IsRequired: m[4] == "",
	}
	if f.IsList {
		// lists are never null in Prisma
		f.IsRequired = true
	}
	for _, attr := range splitAttributes(m[5]) {
		switch attr.Name {
		case "id":
			f.IsID = true
		case "unique":
			f.IsUnique = true
		case "relation":
			positional, named := splitArgs(attr.Args)
			if n, ok := named["name"]; ok {
				f.RelationName = unquote(n)
			} else if len(positional) > 0 {
				f.RelationName = unquote(positional[0])
			}
			f.RelationFromFields = parseList(named["fields"])
		}
	}
	p.model.Fields = append(p.model.Fields, f)
	return nil
}

func (p *parser) enumLine(line int, text string) error {
	if strings.HasPrefix(text, "@@") {
		return nil
	}
	m := valueRe.FindStringSubmatch(text)
	if m == nil {
		return errorf(line, fmt.Sprintf("malformed value %q in enum %s", text, p.enum.Name))
	}
	p.enum.Values = append(p.enum.Values, EnumValue{Name: m[1]})
	return nil
}

// resolve classifies every field once all declarations are known.
func (p *parser) resolve() {
	models := map[string]bool{}
	enums := map[string]bool{}
	for _, m := range p.doc.Models {
		models[m.Name] = true
	}
	for _, e := range p.doc.Enums {
		enums[e.Name] = true
	}

	for i := range p.doc.Models {
		m := &p.doc.Models[i]
		pk := map[string]bool{}
		for _, name := range m.PrimaryKey {
			pk[name] = true
		}
		for j := range m.Fields {
			f := &m.Fields[j]
			if pk[f.Name] {
				f.IsID = true
			}
			switch {
			case strings.HasPrefix(f.Type, "Unsupported("):
				f.Kind = KindUnsupported
			case models[f.Type]:
				f.Kind = KindObject
				if f.RelationName == "" {
					f.RelationName = implicitRelationName(m.Name, f.Type)
				}
			case enums[f.Type]:
				f.Kind = KindEnum
			default:
				f.Kind = KindScalar
			}
		}
	}
}

// stripComment removes a trailing "//" comment that is not inside a string literal.
func stripComment(s string) string {
	inString := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if inString {
				i++
			}
		case '"':
			inString = !inString
		case '/':
			if !inString && i+1 < len(s) && s[i+1] == '/' {
				return s[:i]
			}
		}
	}
	return s
}

// splitAttributes splits `@id @default(now()) @db.VarChar(20)` into attributes.
func splitAttributes(s string) []attribute {
	var attrs []attribute
	for i := 0; i < len(s); i++ {
		if s[i] != '@' {
			continue
		}
		j := i + 1
		for j < len(s) && (isIdent(s[j]) || s[j] == '.') {
			j++
		}
		attr := attribute{Name: s[i+1 : j]}
		if j < len(s) && s[j] == '(' {
			end := matchParen(s, j)
			attr.Args = strings.TrimSpace(s[j+1 : end])
			j = end + 1
		}
		attrs = append(attrs, attr)
		i = j - 1
	}
	return attrs
}

// matchParen returns the index of the parenthesis closing the one at open,
// or len(s) when it is never closed.
func matchParen(s string, open int) int {
	depth := 0
	inString := false
	for i := open; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && inString:
			i++
		case c == '"':
			inString = !inString
		case inString:
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s)
}

// splitArgs splits attribute arguments on top-level commas into positional
// and named ("key: value") arguments.
func splitArgs(s string) ([]string, map[string]string) {
	var positional []string
	named := map[string]string{}
	depth := 0
	inString := false
	last := 0
	emit := func(part string) {
		part = strings.TrimSpace(part)
		if part == "" {
			return
		}
		if k, v, ok := strings.Cut(part, ":"); ok && isIdentString(strings.TrimSpace(k)) {
			named[strings.TrimSpace(k)] = strings.TrimSpace(v)
			return
		}
		positional = append(positional, part)
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && inString:
			i++
		case c == '"':
			inString = !inString
		case inString:
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == ',' && depth == 0:
			emit(s[last:i])
			last = i + 1
		}
	}
	emit(s[last:])
	return positional, named
}

// parseList turns "[a, b(sort: Desc)]" into ["a", "b"].
func parseList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if idx := strings.IndexByte(item, '('); idx >= 0 {
			item = item[:idx]
		}
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func isIdent(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isIdentString(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdent(s[i]) {
			return false
		}
	}
	return true
}
