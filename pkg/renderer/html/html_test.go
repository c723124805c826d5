package html

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"hearthside/cookbook/pkg/cookbook/recipe"
	"hearthside/cookbook/pkg/renderer"
)

func testCollection(t *testing.T) *recipe.Collection {
	t.Helper()

	book, err := recipe.NewBook(recipe.BookDocument{
		Title:        "Family Recipes",
		Descriptions: []string{"The dishes we **actually** cook."},
		Authors:      []string{"R. Hale"},
		Revision:     "3",
		Renderer:     Name,
		Groups:       []recipe.GroupDecl{{Label: "basics", Title: "The Basics"}},
	})
	if err != nil {
		t.Fatalf("NewBook returned error: %v", err)
	}

	c := recipe.NewCollection(book)

	mac, err := recipe.New(recipe.Document{
		ID:          "11111111111111111111111111111111",
		Title:       "Mac & Cheese",
		Ingredients: []string{"A. (250 g) macaroni", "B. (150 g) cheddar; grated"},
		Steps:       []string{"1. (A) boil until tender", "2. (B) fold in; off the heat"},
		Tags:        []string{"dinner"},
		Groups:      []string{"basics"},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	c.Add(mac)

	return c
}

func readPage(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestRender(t *testing.T) {
	out := t.TempDir()
	c := testCollection(t)

	if err := New().Render(context.Background(), c, renderer.Options{OutputDir: out}); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	index := readPage(t, filepath.Join(out, "index.html"))
	for _, want := range []string{
		"<h1>Family Recipes</h1>",
		"<p>The dishes we <strong>actually</strong> cook.</p>",
		"By R. Hale. Revision 3.",
		`<a href="recipes/11111111111111111111111111111111.html">Mac &amp; Cheese</a>`,
		`<a href="groups/basics.html">The Basics</a>`,
		`<link rel="stylesheet" href="style.css">`,
	} {
		if !strings.Contains(index, want) {
			t.Errorf("index.html missing %q:\n%s", want, index)
		}
	}

	page := readPage(t, filepath.Join(out, "recipes", "11111111111111111111111111111111.html"))
	for _, want := range []string{
		"<h1>Mac &amp; Cheese</h1>",
		"<li>A. (250 g) macaroni</li>",
		"<li>B. (150 g) cheddar; grated</li>",
		"<li>boil until tender (A)</li>",
		"<li>fold in (B); off the heat</li>",
		"Tags: dinner",
		`<link rel="stylesheet" href="../style.css">`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("recipe page missing %q:\n%s", want, page)
		}
	}

	group := readPage(t, filepath.Join(out, "groups", "basics.html"))
	if !strings.Contains(group, "<h1>The Basics</h1>") {
		t.Errorf("group page missing title:\n%s", group)
	}
	if !strings.Contains(group, `<a href="../recipes/11111111111111111111111111111111.html">Mac &amp; Cheese</a>`) {
		t.Errorf("group page missing member link:\n%s", group)
	}

	style := readPage(t, filepath.Join(out, "style.css"))
	if !strings.Contains(style, "font-family") {
		t.Errorf("skeleton stylesheet not copied:\n%s", style)
	}
}

func TestRenderCopiesImages(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	if err := os.WriteFile(filepath.Join(src, "mac.png"), []byte("png bytes"), 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}

	c := testCollection(t)
	c.Recipes[0].Path = filepath.Join(src, "mac.yaml")
	c.Recipes[0].Img = "mac.png"

	if err := New().Render(context.Background(), c, renderer.Options{OutputDir: out}); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "recipes", "mac.png")); err != nil {
		t.Errorf("copied image missing: %v", err)
	}

	page := readPage(t, filepath.Join(out, "recipes", "11111111111111111111111111111111.html"))
	if !strings.Contains(page, `<img src="mac.png"`) {
		t.Errorf("recipe page missing image tag:\n%s", page)
	}
}

func TestRenderResourceOverride(t *testing.T) {
	out := t.TempDir()
	c := testCollection(t)

	override := fstest.MapFS{
		"templates/index.html.tmpl":  {Data: []byte("custom index for {{ .Book.Title }}\n")},
		"templates/recipe.html.tmpl": {Data: []byte("custom {{ .Recipe.Title }}\n")},
		"templates/group.html.tmpl":  {Data: []byte("custom {{ .Group.Title }}\n")},
	}

	err := New().Render(context.Background(), c, renderer.Options{OutputDir: out, Resources: override})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	index := readPage(t, filepath.Join(out, "index.html"))
	if index != "custom index for Family Recipes\n" {
		t.Errorf("override template not used, got:\n%s", index)
	}
	if _, err := os.Stat(filepath.Join(out, "style.css")); !os.IsNotExist(err) {
		t.Error("skeleton copied from a bundle that has none")
	}
}

func TestRegistered(t *testing.T) {
	r, err := renderer.New(Name)
	if err != nil {
		t.Fatalf("renderer.New(%q) returned error: %v", Name, err)
	}
	if r.Name() != Name {
		t.Errorf("Name() = %q, want %q", r.Name(), Name)
	}
}
