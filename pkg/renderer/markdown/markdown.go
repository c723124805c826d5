// Package markdown renders a cookbook as a tree of GitHub-flavored
// markdown pages: a book index, one page per recipe, and one page per
// non-empty group. Companion images are copied next to the recipe pages
// so relative references keep working.
package markdown

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"hearthside/cookbook/pkg/cookbook/recipe"
	"hearthside/cookbook/pkg/renderer"
)

// Name is the registry name of the markdown backend.
const Name = "markdown"

// Resource bundle layout: templates/*.md.tmpl for the pages.
//
//go:embed templates
var defaultResources embed.FS

func init() {
	renderer.MustRegister(Name, func() (renderer.Renderer, error) {
		return New(), nil
	})
}

// Renderer is the markdown backend.
type Renderer struct{}

// New creates a markdown renderer.
func New() *Renderer {
	return &Renderer{}
}

// Name implements renderer.Renderer.
func (r *Renderer) Name() string {
	return Name
}

// indexData feeds the book index template.
type indexData struct {
	Book    *recipe.Book
	Recipes []*recipe.Recipe
	Groups  []*recipe.Group
}

// recipeData feeds one recipe page template.
type recipeData struct {
	Book   *recipe.Book
	Recipe *recipe.Recipe
}

// groupData feeds one group page template.
type groupData struct {
	Book  *recipe.Book
	Group *recipe.Group
}

// Render implements renderer.Renderer. The output tree is index.md at
// the root, recipes/<id>.md per recipe with copied images alongside,
// and groups/<label>.md per non-empty group.
func (r *Renderer) Render(ctx context.Context, c *recipe.Collection, opts renderer.Options) error {
	tmpl, err := parseTemplates(opts.Resources)
	if err != nil {
		return err
	}

	recipesDir := filepath.Join(opts.OutputDir, "recipes")
	if err := os.MkdirAll(recipesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output tree: %w", err)
	}

	groups := renderer.NonEmptyGroups(c)
	index := filepath.Join(opts.OutputDir, "index.md")
	if err := writePage(tmpl, "index.md.tmpl", index, indexData{Book: c.Book, Recipes: c.Recipes, Groups: groups}); err != nil {
		return err
	}

	for _, rec := range c.Recipes {
		if err := ctx.Err(); err != nil {
			return err
		}
		page := filepath.Join(recipesDir, rec.ID+".md")
		if err := writePage(tmpl, "recipe.md.tmpl", page, recipeData{Book: c.Book, Recipe: rec}); err != nil {
			return err
		}
		if err := renderer.CopyImage(rec, recipesDir); err != nil {
			return err
		}
	}

	if len(groups) == 0 {
		return nil
	}
	groupsDir := filepath.Join(opts.OutputDir, "groups")
	if err := os.MkdirAll(groupsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output tree: %w", err)
	}
	for _, g := range groups {
		page := filepath.Join(groupsDir, g.Label+".md")
		if err := writePage(tmpl, "group.md.tmpl", page, groupData{Book: c.Book, Group: g}); err != nil {
			return err
		}
	}
	return nil
}

// parseTemplates loads the page templates from the override bundle, or
// from the embedded defaults when none is given.
func parseTemplates(resources fs.FS) (*template.Template, error) {
	if resources == nil {
		resources = defaultResources
	}
	tmpl, err := template.New(Name).Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(resources, "templates/*.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

func writePage(tmpl *template.Template, name, path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := tmpl.ExecuteTemplate(f, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}
