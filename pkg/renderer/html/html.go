// Package html renders a cookbook as a static HTML site: a book index,
// one page per recipe, one page per non-empty group, and a copied page
// skeleton (stylesheet). Book descriptions are treated as markdown and
// converted with goldmark; everything else is escaped text.
package html

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"hearthside/cookbook/pkg/cookbook/recipe"
	"hearthside/cookbook/pkg/renderer"
)

// Name is the registry name of the HTML backend.
const Name = "html"

// Resource bundle layout: templates/*.html.tmpl for the pages, and a
// skeleton/ tree copied verbatim into the output root.
//
//go:embed templates skeleton
var defaultResources embed.FS

func init() {
	renderer.MustRegister(Name, func() (renderer.Renderer, error) {
		return New(), nil
	})
}

// Renderer is the HTML backend.
type Renderer struct {
	engine goldmark.Markdown
}

// New creates an HTML renderer.
func New() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(ghtml.WithUnsafe()),
		),
	}
}

// Name implements renderer.Renderer.
func (r *Renderer) Name() string {
	return Name
}

// page carries the fields every template shares. Root is the relative
// prefix back to the output root, so pages in subdirectories can reach
// the stylesheet and the index.
type page struct {
	PageTitle string
	Root      string
	Book      *recipe.Book
}

type indexPage struct {
	page
	Recipes []*recipe.Recipe
	Groups  []*recipe.Group
}

type recipePage struct {
	page
	Recipe *recipe.Recipe
}

type groupPage struct {
	page
	Group *recipe.Group
}

// Render implements renderer.Renderer. The output tree is index.html and
// the skeleton at the root, recipes/<id>.html per recipe with copied
// images alongside, and groups/<label>.html per non-empty group.
func (r *Renderer) Render(ctx context.Context, c *recipe.Collection, opts renderer.Options) error {
	resources := opts.Resources
	if resources == nil {
		resources = defaultResources
	}

	tmpl, err := r.parseTemplates(resources)
	if err != nil {
		return err
	}

	recipesDir := filepath.Join(opts.OutputDir, "recipes")
	if err := os.MkdirAll(recipesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output tree: %w", err)
	}
	if err := copySkeleton(resources, opts.OutputDir); err != nil {
		return err
	}

	groups := renderer.NonEmptyGroups(c)
	index := filepath.Join(opts.OutputDir, "index.html")
	if err := writePage(tmpl, "index.html.tmpl", index, indexPage{
		page:    page{PageTitle: c.Book.Title, Book: c.Book},
		Recipes: c.Recipes,
		Groups:  groups,
	}); err != nil {
		return err
	}

	for _, rec := range c.Recipes {
		if err := ctx.Err(); err != nil {
			return err
		}
		dest := filepath.Join(recipesDir, rec.ID+".html")
		if err := writePage(tmpl, "recipe.html.tmpl", dest, recipePage{
			page:   page{PageTitle: rec.Title, Root: "../", Book: c.Book},
			Recipe: rec,
		}); err != nil {
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
		dest := filepath.Join(groupsDir, g.Label+".html")
		if err := writePage(tmpl, "group.html.tmpl", dest, groupPage{
			page:  page{PageTitle: g.Title, Root: "../", Book: c.Book},
			Group: g,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) parseTemplates(resources fs.FS) (*template.Template, error) {
	tmpl, err := template.New(Name).Funcs(template.FuncMap{
		"join":     strings.Join,
		"markdown": r.markdown,
	}).ParseFS(resources, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// markdown converts markdown text to HTML for template use. The result
// is trusted output, so authors can use markup in book descriptions.
func (r *Renderer) markdown(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
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

// copySkeleton copies the bundle's skeleton tree into the output root.
// A bundle without a skeleton directory copies nothing.
func copySkeleton(resources fs.FS, outputDir string) error {
	if _, err := fs.Stat(resources, "skeleton"); err != nil {
		return nil
	}
	return fs.WalkDir(resources, "skeleton", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk skeleton: %w", err)
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(resources, path)
		if err != nil {
			return fmt.Errorf("failed to read skeleton file %s: %w", path, err)
		}
		rel := strings.TrimPrefix(path, "skeleton/")
		dest := filepath.Join(outputDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("failed to create skeleton dir for %s: %w", rel, err)
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return fmt.Errorf("failed to write skeleton file %s: %w", rel, err)
		}
		return nil
	})
}
