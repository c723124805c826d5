// Package renderer defines the rendering contract and the name-based
// backend registry. Backends live in subpackages and register themselves
// at init time; importing a backend package is what makes its name
// selectable. The book manifest picks the backend for a run, and the
// command line can override it.
package renderer

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"hearthside/cookbook/pkg/cookbook/recipe"
)

// Renderer writes the rendered artifact tree for one loaded collection.
// Implementations own their output layout; failures propagate to the
// caller as the backend's own errors.
type Renderer interface {
	// Name returns the name the backend registers under.
	Name() string

	// Render writes the artifact tree for the collection under the
	// options' output directory. The collection must carry a book.
	Render(ctx context.Context, c *recipe.Collection, opts Options) error
}

// Options carries the per-render parameters shared by every backend.
type Options struct {
	// OutputDir is the root of the artifact tree. Backends create it,
	// and any subdirectories they need, on demand.
	OutputDir string

	// Resources overrides the backend's embedded resource bundle
	// (templates, stylesheets, page skeleton). Leave nil to use the
	// backend's defaults.
	Resources fs.FS
}

// Factory constructs one renderer instance. Factories run per render
// request; a backend that is expensive to build should do its setup
// lazily.
type Factory func() (Renderer, error)

// NonEmptyGroups returns the collection's groups that have at least one
// member, in declaration order. Backends emit group pages only for
// these; a declared group no recipe joined leaves no artifact behind.
func NonEmptyGroups(c *recipe.Collection) []*recipe.Group {
	var groups []*recipe.Group
	for _, g := range c.Groups {
		if len(g.Recipes) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

// CopyImage copies the recipe's companion image into dir so the rendered
// page's relative reference keeps working. Recipes without an image, or
// built without a source path, are left alone.
func CopyImage(r *recipe.Recipe, dir string) error {
	if r.Img == "" || r.Path == "" {
		return nil
	}

	src := filepath.Join(filepath.Dir(r.Path), r.Img)
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open image %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(filepath.Join(dir, r.Img))
	if err != nil {
		return fmt.Errorf("failed to copy image %s: %w", r.Img, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy image %s: %w", r.Img, err)
	}
	return nil
}
