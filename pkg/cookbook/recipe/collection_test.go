package recipe

import (
	"testing"
)

func testRecipe(t *testing.T, title string, groups ...string) *Recipe {
	t.Helper()
	r, err := New(Document{
		Title:       title,
		Ingredients: []string{"A. (1) something"},
		Steps:       []string{"1. (A) do it"},
		Groups:      groups,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return r
}

func TestNewCollection(t *testing.T) {
	book, err := NewBook(validBookDocument())
	if err != nil {
		t.Fatalf("NewBook returned error: %v", err)
	}

	c := NewCollection(book)
	if len(c.Groups) != 2 {
		t.Fatalf("group count = %d, want 2", len(c.Groups))
	}
	if c.Groups[0].Label != "basics" || c.Groups[1].Label != "desserts" {
		t.Errorf("groups out of declaration order: %v, %v", c.Groups[0].Label, c.Groups[1].Label)
	}
	if _, ok := c.Group("basics"); !ok {
		t.Error("Group(basics) not found")
	}
	if _, ok := c.Group("missing"); ok {
		t.Error("Group(missing) unexpectedly found")
	}
}

func TestCollectionAdd(t *testing.T) {
	book, err := NewBook(validBookDocument())
	if err != nil {
		t.Fatalf("NewBook returned error: %v", err)
	}
	c := NewCollection(book)

	first := testRecipe(t, "Porridge", "basics")
	if unknown := c.Add(first); unknown != nil {
		t.Errorf("unknown labels = %v, want none", unknown)
	}

	second := testRecipe(t, "Mystery Pie", "desserts", "untracked")
	unknown := c.Add(second)
	if len(unknown) != 1 || unknown[0] != "untracked" {
		t.Errorf("unknown labels = %v, want [untracked]", unknown)
	}

	if len(c.Recipes) != 2 {
		t.Fatalf("recipe count = %d, want 2", len(c.Recipes))
	}

	basics, _ := c.Group("basics")
	if len(basics.Recipes) != 1 || basics.Recipes[0] != first {
		t.Errorf("basics membership = %v, want [Porridge]", basics.Recipes)
	}
	desserts, _ := c.Group("desserts")
	if len(desserts.Recipes) != 1 || desserts.Recipes[0] != second {
		t.Errorf("desserts membership = %v, want [Mystery Pie]", desserts.Recipes)
	}
}

func TestCollectionWithoutBook(t *testing.T) {
	c := NewCollection(nil)
	if c.Book != nil {
		t.Error("book should be nil")
	}
	if len(c.Groups) != 0 {
		t.Errorf("group count = %d, want 0", len(c.Groups))
	}

	unknown := c.Add(testRecipe(t, "Loose Recipe", "basics"))
	if len(unknown) != 1 || unknown[0] != "basics" {
		t.Errorf("unknown labels = %v, want [basics]", unknown)
	}
	if len(c.Recipes) != 1 {
		t.Errorf("recipe count = %d, want 1", len(c.Recipes))
	}
}
