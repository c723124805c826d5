package recipe

import (
	"hearthside/cookbook/pkg/cookbook/errors"
)

// BookDocument is the decoded YAML shape of the book manifest
// (book.yaml). Groups may declare a display title; NewBook defaults it
// to the label when omitted.
type BookDocument struct {
	Title        string      `yaml:"title"`
	Descriptions []string    `yaml:"descriptions"`
	Authors      []string    `yaml:"authors"`
	Revision     string      `yaml:"revision"`
	Renderer     string      `yaml:"renderer"`
	Groups       []GroupDecl `yaml:"groups"`
}

// GroupDecl is one group declaration from the manifest.
type GroupDecl struct {
	// Label is the identifier recipes reference in their groups list
	Label string `yaml:"label"`

	// Title is the display title for the group's rendered page; defaults
	// to the label
	Title string `yaml:"title"`
}

// Book is the validated book manifest. It names the whole collection,
// selects the default renderer, and declares the set of groups recipes
// may join.
type Book struct {
	Title        string
	Descriptions []string
	Authors      []string
	Revision     string
	Renderer     string
	Groups       []GroupDecl
}

// NewBook validates doc and builds a Book from it. Every scalar field is
// required, the descriptions and authors lists must be non-empty, and
// every declared group needs a label. Validation is fail-fast: the first
// missing field wins.
func NewBook(doc BookDocument) (*Book, error) {
	if doc.Title == "" {
		return nil, &errors.BookError{Message: "a book must have a title"}
	}
	if len(doc.Descriptions) == 0 {
		return nil, &errors.BookError{Message: "a book must have one or more descriptions"}
	}
	if len(doc.Authors) == 0 {
		return nil, &errors.BookError{Message: "a book must have one or more authors"}
	}
	if doc.Revision == "" {
		return nil, &errors.BookError{Message: "a book must have a revision"}
	}
	if doc.Renderer == "" {
		return nil, &errors.BookError{Message: "a book must have a renderer"}
	}

	book := &Book{
		Title:        doc.Title,
		Descriptions: doc.Descriptions,
		Authors:      doc.Authors,
		Revision:     doc.Revision,
		Renderer:     doc.Renderer,
	}
	for _, decl := range doc.Groups {
		if decl.Label == "" {
			return nil, &errors.BookError{Message: "a group must have a label"}
		}
		if decl.Title == "" {
			decl.Title = decl.Label
		}
		book.Groups = append(book.Groups, decl)
	}

	return book, nil
}
