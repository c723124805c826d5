package recipe

import (
	"encoding/hex"

	"github.com/google/uuid"

	"hearthside/cookbook/pkg/cookbook/errors"
)

// Document is the decoded YAML shape of one recipe file. Ingredient and
// step lines arrive as raw strings; New parses and validates them into a
// Recipe.
type Document struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Ingredients []string `yaml:"ingredients"`
	Steps       []string `yaml:"steps"`
	Sources     []string `yaml:"sources"`
	Tags        []string `yaml:"tags"`
	Groups      []string `yaml:"groups"`
}

// Recipe is one fully validated recipe. Instances are built through New;
// a Recipe therefore always has a title, at least one ingredient, and at
// least one step.
type Recipe struct {
	// ID is a 32 character lowercase hex identifier, stable across loads
	// when declared in the document and synthesized otherwise
	ID string

	// Title is the recipe's display title
	Title string

	// Ingredients are the parsed ingredient lines, in document order
	Ingredients []*Ingredient

	// Steps are the parsed step lines, in document order
	Steps []*Step

	// Sources are free-form attribution strings (URLs, book references)
	Sources []string

	// Tags are free-form classification labels used by search
	Tags []string

	// Groups are the labels of the book groups this recipe claims
	// membership in; resolution against the declared groups happens at
	// collection time
	Groups []string

	// Img is the file name of a companion image discovered next to the
	// source document, empty when there is none
	Img string

	// Path is the source file the recipe was loaded from, set by the
	// loader; empty for recipes built directly from a Document
	Path string
}

// New validates doc and builds a Recipe from it. A document without a
// title, without ingredients, or without steps is rejected with a
// RecipeError; a malformed ingredient or step line surfaces as the
// field error produced while parsing it. Parsing is fail-fast: the first
// bad line wins and no Recipe is produced.
func New(doc Document) (*Recipe, error) {
	if doc.Title == "" {
		return nil, &errors.RecipeError{Message: "a recipe must have a title"}
	}

	r := &Recipe{
		ID:      doc.ID,
		Title:   doc.Title,
		Sources: doc.Sources,
		Tags:    doc.Tags,
		Groups:  doc.Groups,
	}
	if r.ID == "" {
		r.ID = newID()
	}

	for _, line := range doc.Ingredients {
		ingredient, err := ParseIngredient(line)
		if err != nil {
			return nil, err
		}
		r.Ingredients = append(r.Ingredients, ingredient)
	}
	if len(r.Ingredients) == 0 {
		return nil, &errors.RecipeError{Message: "a recipe must have one or more ingredients"}
	}

	for _, line := range doc.Steps {
		step, err := ParseStep(line)
		if err != nil {
			return nil, err
		}
		r.Steps = append(r.Steps, step)
	}
	if len(r.Steps) == 0 {
		return nil, &errors.RecipeError{Message: "a recipe must have one or more steps"}
	}

	return r, nil
}

// newID synthesizes a document identifier: a random UUID rendered as 32
// lowercase hex characters, matching the format of ids declared in
// source documents.
func newID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
