package cookbook

import (
	"context"
	"fmt"

	"hearthside/cookbook/pkg/cookbook/loader"
	"hearthside/cookbook/pkg/cookbook/recipe"
	"hearthside/cookbook/pkg/renderer"
)

// Load is a convenience function that runs one full load pass over the
// inputs with the default configuration: locate the book manifest, load
// and validate every recipe, and resolve group membership.
func Load(ctx context.Context, inputs ...string) (*recipe.Collection, error) {
	l := loader.New(loader.DefaultConfig(), nil)
	return l.Load(ctx, inputs)
}

// LoadBook locates and validates the book manifest among the inputs
// without loading any recipes.
func LoadBook(inputs ...string) (*recipe.Book, error) {
	l := loader.New(loader.DefaultConfig(), nil)
	return l.LoadBook(inputs)
}

// LoadRecipes loads every recipe under the inputs without resolving a
// book. Use this to validate recipe files that are not part of a book;
// group membership claims are left unresolved.
func LoadRecipes(ctx context.Context, inputs ...string) ([]*recipe.Recipe, error) {
	l := loader.New(loader.DefaultConfig(), nil)
	return l.LoadRecipes(ctx, inputs)
}

// LoadAndRender runs one load pass and renders the collection into
// outputDir through the named backend. An empty name selects the renderer
// declared by the book manifest. The backend must have been registered,
// typically by a blank import of its package.
func LoadAndRender(ctx context.Context, name, outputDir string, inputs ...string) (*recipe.Collection, error) {
	c, err := Load(ctx, inputs...)
	if err != nil {
		return nil, err
	}

	if c.Book == nil {
		return nil, fmt.Errorf("rendering requires a book manifest")
	}
	if name == "" {
		name = c.Book.Renderer
	}

	r, err := renderer.New(name)
	if err != nil {
		return nil, err
	}
	if err := r.Render(ctx, c, renderer.Options{OutputDir: outputDir}); err != nil {
		return nil, err
	}
	return c, nil
}
