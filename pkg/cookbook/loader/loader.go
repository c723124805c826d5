// Package loader discovers and decodes cookbook sources: YAML recipe
// files found under a set of input files and directories, plus the
// optional book manifest that names the collection.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"hearthside/cookbook/pkg/cookbook/errors"
	"hearthside/cookbook/pkg/cookbook/recipe"
)

const (
	// ManifestName is the reserved file name of the book manifest.
	ManifestName = "book.yaml"

	// Ext is the file extension recognized when walking directories.
	// Files named explicitly on the command line are processed regardless
	// of extension.
	Ext = ".yaml"
)

// ImageExtensions is the probe order for companion images: the first
// sibling of the recipe file sharing its base name and carrying one of
// these extensions wins.
var ImageExtensions = []string{".png", ".jpeg"}

// Config holds the loader's validation policy.
type Config struct {
	// StrictGroups turns a recipe's reference to an undeclared group into
	// a validation failure instead of silently ignoring it.
	StrictGroups bool
}

// DefaultConfig returns a loader configuration with the default
// tolerant group policy.
func DefaultConfig() Config {
	return Config{}
}

// Loader discovers recipe files under a set of inputs, decodes them, and
// builds the validated collection. Every failure below the loader is
// translated into a SourceError naming the offending file; no raw decode
// or validation error crosses the boundary.
type Loader struct {
	config Config
	logger *slog.Logger
}

// New creates a loader. A nil logger falls back to slog.Default.
func New(config Config, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		config: config,
		logger: logger.With("component", "loader"),
	}
}

// Load runs one full load pass over the inputs: it locates the book
// manifest, walks every input for recipe files, and returns the
// resulting collection. Loading is fail-fast; the first error aborts the
// whole batch. The context is checked between files, so a canceled load
// stops without finishing the walk.
func (l *Loader) Load(ctx context.Context, inputs []string) (*recipe.Collection, error) {
	book, err := l.LoadBook(inputs)
	if err != nil {
		return nil, err
	}
	c := recipe.NewCollection(book)
	if err := l.loadInto(ctx, inputs, c, l.config.StrictGroups); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadBook searches the inputs for the book manifest: a directory input
// is probed for a direct child named book.yaml, a file input matches when
// it carries that name itself. The first match wins and no further
// inputs are considered. Inputs without a manifest yield a nil Book,
// which is not an error.
func (l *Loader) LoadBook(inputs []string) (*recipe.Book, error) {
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, errors.NewSourceError(input, err)
		}

		var manifest string
		if info.IsDir() {
			candidate := filepath.Join(input, ManifestName)
			if _, err := os.Stat(candidate); err == nil {
				manifest = candidate
			}
		} else if filepath.Base(input) == ManifestName {
			manifest = input
		}
		if manifest == "" {
			continue
		}
		return l.readBook(manifest)
	}
	return nil, nil
}

// LoadRecipes loads every recipe under the inputs without resolving a
// book. Group membership claims are ignored since there are no declared
// groups to match them against.
func (l *Loader) LoadRecipes(ctx context.Context, inputs []string) ([]*recipe.Recipe, error) {
	c := recipe.NewCollection(nil)
	if err := l.loadInto(ctx, inputs, c, false); err != nil {
		return nil, err
	}
	return c.Recipes, nil
}

func (l *Loader) loadInto(ctx context.Context, inputs []string, c *recipe.Collection, strict bool) error {
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		info, err := os.Stat(input)
		if err != nil {
			return errors.NewSourceError(input, err)
		}
		if info.IsDir() {
			if err := l.walkDir(ctx, input, c, strict); err != nil {
				return err
			}
			continue
		}
		if filepath.Base(input) == ManifestName {
			continue
		}
		if err := l.processFile(input, c, strict); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) walkDir(ctx context.Context, dir string, c *recipe.Collection, strict bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.NewSourceError(path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Name() == ManifestName || !strings.HasSuffix(d.Name(), Ext) {
			return nil
		}
		return l.processFile(path, c, strict)
	})
}

// processFile decodes one recipe file and adds the result to the
// collection. A document that decodes to nothing is skipped with a
// warning and contributes no recipe.
func (l *Loader) processFile(path string, c *recipe.Collection, strict bool) error {
	l.logger.Info("processing file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewSourceError(path, err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return errors.NewSourceError(path, err)
	}
	if emptyDocument(&node) {
		l.logger.Warn("empty file found", "path", path)
		return nil
	}

	var doc recipe.Document
	if err := node.Decode(&doc); err != nil {
		return errors.NewSourceError(path, err)
	}

	r, err := recipe.New(doc)
	if err != nil {
		return errors.NewSourceError(path, err)
	}
	r.Path = path
	r.Img = probeImage(path)

	unknown := c.Add(r)
	if strict && len(unknown) > 0 {
		cause := &errors.RecipeError{
			Message: fmt.Sprintf("a recipe references an undeclared group: %s", unknown[0]),
		}
		return errors.NewSourceError(path, cause)
	}
	for _, label := range unknown {
		l.logger.Debug("ignoring undeclared group", "path", path, "label", label)
	}
	return nil
}

// readBook decodes and validates the manifest at path. An empty manifest
// fails validation the same way a manifest without a title does.
func (l *Loader) readBook(path string) (*recipe.Book, error) {
	l.logger.Info("processing book manifest", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewSourceError(path, err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.NewSourceError(path, err)
	}

	var doc recipe.BookDocument
	if !emptyDocument(&node) {
		if err := node.Decode(&doc); err != nil {
			return nil, errors.NewSourceError(path, err)
		}
	}

	book, err := recipe.NewBook(doc)
	if err != nil {
		return nil, errors.NewSourceError(path, err)
	}
	return book, nil
}

// emptyDocument reports whether the parsed YAML carries no content at
// all: an empty file, a bare document marker, an explicit null, or an
// empty mapping or sequence.
func emptyDocument(node *yaml.Node) bool {
	if node.Kind == 0 {
		return true
	}
	if node.Kind != yaml.DocumentNode {
		return false
	}
	if len(node.Content) == 0 {
		return true
	}
	root := node.Content[0]
	switch root.Kind {
	case yaml.ScalarNode:
		return root.Tag == "!!null"
	case yaml.MappingNode, yaml.SequenceNode:
		return len(root.Content) == 0
	}
	return false
}

// probeImage looks for a companion image next to the recipe file: the
// same base name with each known image extension, first existing match
// wins. The returned value is the image's file name, not its path.
func probeImage(path string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, ext := range ImageExtensions {
		candidate := base + ext
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Base(candidate)
		}
	}
	return ""
}
