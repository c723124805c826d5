// Package cookbook turns YAML recipe sources into a validated document
// model and renders it through pluggable backends.
//
// A cookbook is a directory of recipe files, one YAML mapping per
// recipe, optionally accompanied by a book.yaml manifest that names the
// collection and by companion images sitting next to their recipes.
//
// # Architecture
//
// The package is organized into subpackages:
//
// - recipe: the validated document model (Ingredient, Step, Recipe, Book, Collection)
// - loader: source discovery and decoding with the source-located error boundary
// - errors: the cookbook error taxonomy (field, document, and source errors)
//
// Rendering, indexing, and serving live outside this package tree, in
// pkg/renderer, pkg/index, pkg/build, and pkg/server.
//
// # Basic Usage
//
// Load a cookbook directory:
//
//	c, err := cookbook.Load(ctx, "recipes/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Book:", c.Book.Title)
//	fmt.Println("Recipes:", len(c.Recipes))
//
// # Recipe Format
//
// One YAML mapping per file. Ingredient and step lines use a small line
// grammar documented in the recipe package:
//
//	title: Porridge
//	ingredients:
//	  - A. (1 cup) rolled oats
//	  - B. (2 cups) water; or milk
//	steps:
//	  - 1. (A, B) combine in a pot
//	  - 2. simmer; stir occasionally
//	tags:
//	  - breakfast
//	groups:
//	  - basics
//
// # The Book Manifest
//
// A file named book.yaml among the inputs declares the book:
//
//	title: Family Recipes
//	descriptions:
//	  - The dishes we actually cook.
//	authors:
//	  - R. Hale
//	revision: "3"
//	renderer: markdown
//	groups:
//	  - label: basics
//	    title: The Basics
//
// # Error Handling
//
// Every load failure surfaces as a single source-located error naming
// the file that caused it:
//
//	recipes/soup.yaml: missing ingredient quantity: A. stock
//
// Validation failures keep their typed cause in the chain, so callers
// can pick the taxonomy apart with errors.As. Failures outside the
// taxonomy (I/O, malformed YAML) carry a distinct "unexpected" tag.
// Loading is fail-fast: the first bad file aborts the batch.
package cookbook
