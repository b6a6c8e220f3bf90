package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ModelsAndEnums(t *testing.T) {
	raw := []byte(`
		// Comment line should be ignored
		datasource db {
			provider = "postgresql"
			url      = env("DATABASE_URL") // trailing comment
		}

		generator client {
			provider = "prisma-client-js"
		}

		enum Color {
			RED
			GREEN   @map("green")
			BLUE
			@@map("colors")
		}

		/// Somebody who writes posts.
		model User {
			id        String   @id @default(uuid()) @db.Uuid
			/// Shown on the profile page.
			name      String?
			favorite  Color    @default(RED)
			createdAt DateTime @default(now())
			updatedAt DateTime @updatedAt
			email     String   @unique
			posts     Post[]
		}

		model Post {
			id       Int    @id @default(autoincrement())
			title    String @default("// not a comment")
			author   User   @relation(fields: [authorId], references: [id], onDelete: Cascade)
			authorId String @db.Uuid
			raw      Unsupported("circle")?
		}
	`)

	doc, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, doc.Enums, 1)
	require.Len(t, doc.Models, 2)

	color := doc.Enums[0]
	assert.Equal(t, "Color", color.Name)
	require.Len(t, color.Values, 3)
	assert.Equal(t, "RED", color.Values[0].Name)
	assert.Equal(t, "GREEN", color.Values[1].Name)
	assert.Equal(t, "BLUE", color.Values[2].Name)

	user, ok := doc.Model("User")
	require.True(t, ok)
	require.Len(t, user.Fields, 7)

	id := user.Fields[0]
	assert.True(t, id.IsID)
	assert.True(t, id.IsRequired)
	assert.Equal(t, KindScalar, id.Kind)

	name := user.Fields[1]
	assert.False(t, name.IsRequired)

	assert.Equal(t, KindEnum, user.Fields[2].Kind)
	assert.True(t, user.Fields[5].IsUnique)

	posts := user.Fields[6]
	assert.Equal(t, KindObject, posts.Kind)
	assert.True(t, posts.IsList)
	assert.True(t, posts.IsRequired)
	assert.Equal(t, "PostToUser", posts.RelationName)

	post, ok := doc.Model("Post")
	require.True(t, ok)
	title, ok := post.Field("title")
	require.True(t, ok)
	assert.Equal(t, "String", title.Type)
	assert.True(t, title.IsRequired)

	author, _ := post.Field("author")
	assert.Equal(t, KindObject, author.Kind)
	assert.Equal(t, "PostToUser", author.RelationName)
	assert.Equal(t, []string{"authorId"}, author.RelationFromFields)
	assert.Equal(t, map[string]bool{"authorId": true}, post.ForeignKeys())

	raw2, _ := post.Field("raw")
	assert.Equal(t, KindUnsupported, raw2.Kind)
	assert.Equal(t, `Unsupported("circle")`, raw2.Type)
	assert.False(t, raw2.IsRequired)
}

func TestParse_NamedRelationsAndCompositeKeys(t *testing.T) {
	raw := []byte(`
model Person {
  id        Int      @id
  followers Person[] @relation("Follows")
  following Person[] @relation(name: "Follows")
}

model Membership {
  personId Int
  groupId  Int
  role     String

  @@id([personId, groupId])
  @@index([role])
}

view Active {
  id Int @unique
}

type Address {
  street String
}

enum Empty {}
`)

	doc, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, doc.Models, 3)

	person := doc.Models[0]
	assert.Equal(t, "Follows", person.Fields[1].RelationName)
	assert.Equal(t, "Follows", person.Fields[2].RelationName)

	m := doc.Models[1]
	assert.Equal(t, []string{"personId", "groupId"}, m.PrimaryKey)
	assert.True(t, m.Fields[0].IsID)
	assert.True(t, m.Fields[1].IsID)
	assert.False(t, m.Fields[2].IsID)

	assert.Equal(t, "Active", doc.Models[2].Name)

	require.Len(t, doc.Enums, 1)
	assert.Empty(t, doc.Enums[0].Values)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		line int
	}{
		{
			name: "unterminated block",
			raw:  "model User {\n  id Int @id\n",
			line: 1,
		},
		{
			name: "unknown block",
			raw:  "\nschema Foo {\n}\n",
			line: 2,
		},
		{
			name: "stray text",
			raw:  "model A {\n}\nnonsense\n",
			line: 3,
		},
		{
			name: "malformed field",
			raw:  "model A {\n  id\n}\n",
			line: 2,
		},
		{
			name: "duplicate declaration",
			raw:  "model A {\n}\nenum A {\n  X\n}\n",
			line: 3,
		},
		{
			name: "duplicate field",
			raw:  "model A {\n  id Int\n  id String\n}\n",
			line: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSchema))

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestParse_ByteOrderMark(t *testing.T) {
	doc, err := Parse([]byte("\ufeffmodel A {\n  id Int @id\n}\n"))
	require.NoError(t, err)
	require.Len(t, doc.Models, 1)
	assert.Equal(t, "A", doc.Models[0].Name)
}

func TestLoad_MissingFileIsNotWrapped(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.prisma"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
	assert.False(t, errors.Is(err, ErrInvalidSchema))
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.prisma")
	require.NoError(t, os.WriteFile(path, []byte("model Book {\n  id Int @id\n  title String\n}\n"), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	require.Len(t, doc.Models, 1)
	assert.Equal(t, "Book", doc.Models[0].Name)
}

func TestStripComment(t *testing.T) {
	assert.Equal(t, "name String ", stripComment("name String // trailing"))
	assert.Equal(t, `title String @default("// not a comment")`, stripComment(`title String @default("// not a comment")`))
	assert.Equal(t, "", stripComment("/// doc comment"))
}

func TestImplicitRelationName(t *testing.T) {
	assert.Equal(t, "PostToUser", implicitRelationName("User", "Post"))
	assert.Equal(t, "PostToUser", implicitRelationName("Post", "User"))
	assert.Equal(t, "NodeToNode", implicitRelationName("Node", "Node"))
}
