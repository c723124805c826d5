// Cookbook builds static recipe sites from YAML recipe collections.
//
// It validates recipe documents against a strict field grammar and renders
// the collection through a pluggable backend, providing:
//   - Ingredient and step parsing with exact round-tripping
//   - Group pages populated by label references
//   - Markdown and HTML renderer backends
//   - A SQLite recipe index with search
//   - A live preview server with watch and rebuild
//
// Usage:
//
//	# Validate a recipe tree without writing anything
//	cookbook recipes/
//
//	# Render the site declared by the book manifest
//	cookbook --output site/ recipes/
//
//	# Preview with rebuild on change
//	cookbook serve recipes/
//
//	# Query a previously written index
//	cookbook search --index recipes.db soup
//
//	# Show version information
//	cookbook version
//
// For complete documentation, see: https://github.com/hearthside/cookbook
package main

import (
	// Renderer backends register themselves on import.
	_ "hearthside/cookbook/pkg/renderer/html"
	_ "hearthside/cookbook/pkg/renderer/markdown"
)

func main() {
	Execute()
}
