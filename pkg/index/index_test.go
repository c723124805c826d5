package index

import (
	"testing"

	"hearthside/cookbook/pkg/cookbook/recipe"
)

func sampleEntries() []*Entry {
	return []*Entry{
		{
			ID:          "a1",
			Title:       "Pumpkin Soup",
			Path:        "recipes/soup.yaml",
			Tags:        []string{"dinner", "autumn"},
			Groups:      []string{"basics"},
			Ingredients: 3,
			Steps:       2,
		},
		{
			ID:          "b2",
			Title:       "Apple Cake",
			Path:        "recipes/cake.yaml",
			Tags:        []string{"dessert"},
			Groups:      []string{"desserts"},
			Ingredients: 5,
			Steps:       4,
		},
		{
			ID:          "c3",
			Title:       "Morning Tea",
			Path:        "recipes/tea.yaml",
			Image:       "tea.png",
			Tags:        []string{"breakfast", "quick"},
			Ingredients: 1,
			Steps:       1,
		},
	}
}

func titles(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

func TestFromCollection(t *testing.T) {
	c := recipe.NewCollection(nil)
	r, err := recipe.New(recipe.Document{
		ID:          "11111111111111111111111111111111",
		Title:       "Soup",
		Ingredients: []string{"A. (1 l) stock", "B. (2) carrots"},
		Steps:       []string{"1. (A, B) simmer"},
		Tags:        []string{"dinner"},
		Groups:      []string{"basics"},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	r.Path = "recipes/soup.yaml"
	r.Img = "soup.png"
	c.Add(r)

	entries := FromCollection(c)
	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(entries))
	}

	e := entries[0]
	if e.ID != r.ID || e.Title != "Soup" || e.Path != "recipes/soup.yaml" || e.Image != "soup.png" {
		t.Errorf("entry = %+v", e)
	}
	if e.Ingredients != 2 || e.Steps != 1 {
		t.Errorf("counts = %d ingredients, %d steps, want 2 and 1", e.Ingredients, e.Steps)
	}
}

func TestStorageErrorFormat(t *testing.T) {
	cause := NewStorageError("sqlite", "open", errFake)
	want := "index sqlite: open failed: fake failure"
	if cause.Error() != want {
		t.Errorf("error = %q, want %q", cause.Error(), want)
	}
	if cause.Unwrap() != errFake {
		t.Error("Unwrap did not return the cause")
	}
}

type fakeError string

func (e fakeError) Error() string { return string(e) }

var errFake = fakeError("fake failure")
