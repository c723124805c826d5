package cookbook

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hearthside/cookbook/pkg/cookbook/errors"
	"hearthside/cookbook/pkg/renderer"

	_ "hearthside/cookbook/pkg/renderer/markdown"
)

const bookYAML = `title: Family Recipes
descriptions:
  - The dishes we actually cook.
authors:
  - R. Hale
revision: "3"
renderer: markdown
groups:
  - label: basics
    title: The Basics
`

const teaYAML = `title: Tea
ingredients:
  - A. (1 cup) water
steps:
  - 1. (A) boil
groups:
  - basics
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func bookDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "book.yaml", bookYAML)
	writeFile(t, dir, "tea.yaml", teaYAML)
	return dir
}

func TestLoad(t *testing.T) {
	c, err := Load(context.Background(), bookDir(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.Book == nil || c.Book.Title != "Family Recipes" {
		t.Errorf("Book = %+v, want title %q", c.Book, "Family Recipes")
	}
	if len(c.Recipes) != 1 {
		t.Errorf("loaded %d recipes, want 1", len(c.Recipes))
	}
}

func TestLoadFailFast(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "title: Broken\n")

	_, err := Load(context.Background(), dir)
	if err == nil {
		t.Fatal("Load() with an invalid recipe should return an error")
	}

	var srcErr *errors.SourceError
	if !stderrors.As(err, &srcErr) {
		t.Errorf("error %v does not carry the source path", err)
	}
}

func TestLoadBook(t *testing.T) {
	book, err := LoadBook(bookDir(t))
	if err != nil {
		t.Fatalf("LoadBook() error = %v", err)
	}
	if book.Renderer != "markdown" {
		t.Errorf("book.Renderer = %q, want %q", book.Renderer, "markdown")
	}
}

func TestLoadRecipes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tea.yaml", teaYAML)

	recipes, err := LoadRecipes(context.Background(), dir)
	if err != nil {
		t.Fatalf("LoadRecipes() error = %v", err)
	}
	if len(recipes) != 1 || recipes[0].Title != "Tea" {
		t.Errorf("recipes = %+v, want one recipe titled Tea", recipes)
	}
}

func TestLoadAndRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), "site")

	c, err := LoadAndRender(context.Background(), "", out, bookDir(t))
	if err != nil {
		t.Fatalf("LoadAndRender() error = %v", err)
	}
	if len(c.Recipes) != 1 {
		t.Errorf("loaded %d recipes, want 1", len(c.Recipes))
	}

	data, err := os.ReadFile(filepath.Join(out, "index.md"))
	if err != nil {
		t.Fatalf("expected rendered index page: %v", err)
	}
	if !strings.Contains(string(data), "Family Recipes") {
		t.Errorf("index page does not name the book:\n%s", data)
	}
}

func TestLoadAndRenderRequiresBook(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tea.yaml", teaYAML)

	_, err := LoadAndRender(context.Background(), "markdown", t.TempDir(), dir)
	if err == nil || !strings.Contains(err.Error(), "book manifest") {
		t.Errorf("LoadAndRender() without a manifest = %v, want a manifest error", err)
	}
}

func TestLoadAndRenderUnknownBackend(t *testing.T) {
	_, err := LoadAndRender(context.Background(), "pdf", t.TempDir(), bookDir(t))

	var unknown *renderer.UnknownRendererError
	if !stderrors.As(err, &unknown) {
		t.Fatalf("LoadAndRender() error = %v, want UnknownRendererError", err)
	}
	if unknown.Name != "pdf" {
		t.Errorf("unknown.Name = %q, want %q", unknown.Name, "pdf")
	}
}
