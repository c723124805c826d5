// Package recipe defines the validated document model for cookbook
// sources: ingredients and steps parsed from their line micro-grammar,
// the Recipe and Book documents built on top of them, and the Collection
// aggregate a load pass produces.
//
// # Line grammar
//
// Ingredient and step lines share one shape with different labels:
//
//	A. (1 cup) rolled oats; toasted
//	1. (A, B) combine in a bowl; do not overmix
//
// An ingredient label is one or more uppercase letters, a step label one
// or more digits. The parenthesized segment is an ingredient's quantity
// or a step's ingredient references, the text before the first semicolon
// is the name or action, and everything after it is optional free-text
// detail. Parsed values round-trip: String on an Ingredient or Step
// reproduces a canonical source line.
//
// # Validation
//
// Constructors are the only way to obtain model values, so every Recipe
// has a title, ingredients, and steps, and every Book carries its full
// manifest. Failures use the taxonomy in the errors package: field
// errors for a single bad line, document errors for a structurally
// invalid recipe or book. All validation is fail-fast.
//
// # Collections
//
// A Collection ties one optional Book to its recipes and resolves group
// membership: recipes claim labels, the book declares them, and Add
// reports the labels that match no declaration. Collections are plain
// values owned by the caller; concurrent loads never share state.
package recipe
