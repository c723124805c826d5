// Package errors defines the error taxonomy for cookbook parsing and
// validation. All loading failures belong to one family rooted in the
// Error interface: field errors (IngredientError, StepError) for a single
// malformed micro-grammar line, document errors (RecipeError, BookError)
// for a structurally invalid recipe or manifest, and SourceError, which
// wraps any of the above together with the file path that produced it.
// SourceError is the only error type that crosses the loader boundary;
// causes outside the family are wrapped with the UnexpectedMessage tag.
package errors

import (
	stderrors "errors"
	"fmt"
)

// UnexpectedMessage tags a SourceError whose cause is not part of the
// cookbook error family (I/O failures, malformed YAML, and the like).
const UnexpectedMessage = "unexpected error while processing file"

// Error is the marker interface implemented by every error in the cookbook
// family. Callers distinguish expected validation failures from unexpected
// ones with errors.As against this interface.
type Error interface {
	error

	// cookbookError restricts implementations to this package.
	cookbookError()
}

// IngredientError reports a single ingredient line that is malformed or
// missing a required field. The offending line is echoed verbatim so the
// author can locate it in the source document.
type IngredientError struct {
	// Message names the failure ("invalid ingredient definition",
	// "missing ingredient quantity", ...)
	Message string

	// Line is the source line exactly as it appeared in the document
	Line string
}

// Error implements the error interface.
func (e *IngredientError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Line)
}

func (e *IngredientError) cookbookError() {}

// StepError reports a single step line that is malformed or missing a
// required field, echoing the offending line verbatim.
type StepError struct {
	// Message names the failure ("invalid step definition",
	// "missing step action", ...)
	Message string

	// Line is the source line exactly as it appeared in the document
	Line string
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Line)
}

func (e *StepError) cookbookError() {}

// RecipeError reports a recipe document that violates a structural rule:
// a missing title, an empty ingredient list, an empty step list, or a
// reference to an undeclared group under strict validation.
type RecipeError struct {
	// Message describes the violated rule
	Message string
}

// Error implements the error interface.
func (e *RecipeError) Error() string {
	return e.Message
}

func (e *RecipeError) cookbookError() {}

// BookError reports a manifest that is missing one of its required fields.
type BookError struct {
	// Message describes the missing field
	Message string
}

// Error implements the error interface.
func (e *BookError) Error() string {
	return e.Message
}

func (e *BookError) cookbookError() {}

// SourceError wraps a failure with the path of the file being processed
// when it occurred. Expected causes (the cookbook family) are wrapped
// bare; anything else carries the UnexpectedMessage tag so diagnostics
// distinguish validation failures from genuine surprises.
type SourceError struct {
	// Path is the file whose processing failed
	Path string

	// Message is an optional tag describing the failure class; empty for
	// expected validation causes
	Message string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

func (e *SourceError) cookbookError() {}

// NewSourceError wraps err with the path of the file that produced it.
// Causes already in the cookbook family are wrapped bare; any other cause
// is tagged with UnexpectedMessage.
func NewSourceError(path string, err error) *SourceError {
	if isCookbookError(err) {
		return &SourceError{Path: path, Cause: err}
	}
	return &SourceError{Path: path, Message: UnexpectedMessage, Cause: err}
}

func isCookbookError(err error) bool {
	var ce Error
	return stderrors.As(err, &ce)
}

// Chain returns the error and every cause beneath it, outermost first.
// The verbose display walks this to print the full diagnostic trace.
func Chain(err error) []error {
	var chain []error
	for err != nil {
		chain = append(chain, err)
		err = stderrors.Unwrap(err)
	}
	return chain
}
