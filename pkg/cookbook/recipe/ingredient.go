package recipe

import (
	"fmt"
	"regexp"
	"strings"

	"hearthside/cookbook/pkg/cookbook/errors"
)

// Ingredient line format: `ID. (quantity) name; details`
// Capture groups: id, quantity, name, details.
var ingredientPattern = regexp.MustCompile(`^([A-Z]+)\. *(?:\(([^)]+)\))? *([^;]+)? *(?:; *(.*))?`)

// Ingredient is one parsed ingredient line.
// The id, quantity, and name are required; a line that does not resolve
// all three fails to parse and produces no Ingredient at all.
type Ingredient struct {
	// ID is the uppercase letter label, without the trailing period ("A", "AB")
	ID string

	// Quantity is the parenthesized free-text amount ("1 cup")
	Quantity string

	// Name is the ingredient name, verbatim up to the first semicolon
	Name string

	// Details is the free text after the first semicolon; empty when absent
	Details string
}

// ParseIngredient parses one ingredient line of the form
// `ID. (quantity) name; details`. The quantity looks optional in the
// grammar but is semantically required; its absence is a validation
// failure, not an omitted field. Details are genuinely optional.
func ParseIngredient(line string) (*Ingredient, error) {
	m := ingredientPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, &errors.IngredientError{Message: "invalid ingredient definition", Line: line}
	}

	ing := &Ingredient{
		ID:       m[1],
		Quantity: m[2],
		Name:     m[3],
		Details:  m[4],
	}

	if ing.ID == "" {
		return nil, &errors.IngredientError{Message: "missing ingredient id", Line: line}
	}
	if ing.Quantity == "" {
		return nil, &errors.IngredientError{Message: "missing ingredient quantity", Line: line}
	}
	if strings.TrimSpace(ing.Name) == "" {
		return nil, &errors.IngredientError{Message: "missing ingredient name", Line: line}
	}

	return ing, nil
}

// String serializes the ingredient back to its source line format.
// Parsing a canonical line and serializing the result reproduces the
// original line exactly; the `; details` tail is omitted when empty.
func (i *Ingredient) String() string {
	details := ""
	if i.Details != "" {
		details = fmt.Sprintf("; %s", i.Details)
	}
	return fmt.Sprintf("%s. (%s) %s%s", i.ID, i.Quantity, i.Name, details)
}
