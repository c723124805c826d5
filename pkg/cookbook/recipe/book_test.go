package recipe

import (
	stderrors "errors"
	"testing"

	"hearthside/cookbook/pkg/cookbook/errors"
)

func validBookDocument() BookDocument {
	return BookDocument{
		Title:        "Family Recipes",
		Descriptions: []string{"The dishes we actually cook."},
		Authors:      []string{"R. Hale", "M. Hale"},
		Revision:     "2",
		Renderer:     "markdown",
		Groups: []GroupDecl{
			{Label: "basics", Title: "The Basics"},
			{Label: "desserts"},
		},
	}
}

func TestNewBook(t *testing.T) {
	book, err := NewBook(validBookDocument())
	if err != nil {
		t.Fatalf("NewBook returned error: %v", err)
	}

	if book.Title != "Family Recipes" {
		t.Errorf("title = %q, want %q", book.Title, "Family Recipes")
	}
	if book.Renderer != "markdown" {
		t.Errorf("renderer = %q, want %q", book.Renderer, "markdown")
	}
	if len(book.Groups) != 2 {
		t.Fatalf("group count = %d, want 2", len(book.Groups))
	}
	if book.Groups[0].Title != "The Basics" {
		t.Errorf("group title = %q, want declared title", book.Groups[0].Title)
	}
	if book.Groups[1].Title != "desserts" {
		t.Errorf("group title = %q, want label fallback", book.Groups[1].Title)
	}
}

func TestNewBookValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BookDocument)
		wantMsg string
	}{
		{
			name:    "missing title",
			mutate:  func(d *BookDocument) { d.Title = "" },
			wantMsg: "a book must have a title",
		},
		{
			name:    "no descriptions",
			mutate:  func(d *BookDocument) { d.Descriptions = nil },
			wantMsg: "a book must have one or more descriptions",
		},
		{
			name:    "no authors",
			mutate:  func(d *BookDocument) { d.Authors = nil },
			wantMsg: "a book must have one or more authors",
		},
		{
			name:    "missing revision",
			mutate:  func(d *BookDocument) { d.Revision = "" },
			wantMsg: "a book must have a revision",
		},
		{
			name:    "missing renderer",
			mutate:  func(d *BookDocument) { d.Renderer = "" },
			wantMsg: "a book must have a renderer",
		},
		{
			name:    "group without label",
			mutate:  func(d *BookDocument) { d.Groups = []GroupDecl{{Title: "Orphan"}} },
			wantMsg: "a group must have a label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validBookDocument()
			tt.mutate(&doc)
			_, err := NewBook(doc)
			if err == nil {
				t.Fatal("NewBook succeeded, want error")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
			var bookErr *errors.BookError
			if !stderrors.As(err, &bookErr) {
				t.Errorf("error type = %T, want *errors.BookError", err)
			}
		})
	}
}
