package recipe

// Group is one book group with its resolved membership. Membership is
// back-populated as recipes are added to a Collection; a group whose
// declaration no recipe references stays empty.
type Group struct {
	// Label is the identifier from the manifest declaration
	Label string

	// Title is the display title, defaulted to the label at parse time
	Title string

	// Recipes are the members, in the order they were added
	Recipes []*Recipe
}

// Collection is the aggregate produced by one load pass: the book
// manifest (nil when the inputs carried none), every loaded recipe, and
// the declared groups with their resolved membership. Each load builds a
// fresh Collection owned by the caller; nothing is shared between runs.
type Collection struct {
	// Book is the validated manifest, nil when no book.yaml was found
	Book *Book

	// Recipes are all loaded recipes, in load order
	Recipes []*Recipe

	// Groups are the declared groups, in declaration order
	Groups []*Group

	byLabel map[string]*Group
}

// NewCollection builds an empty collection seeded with the groups the
// book declares. A nil book yields a collection with no groups, which
// treats every membership claim as unknown.
func NewCollection(book *Book) *Collection {
	c := &Collection{
		Book:    book,
		byLabel: make(map[string]*Group),
	}
	if book == nil {
		return c
	}
	for _, decl := range book.Groups {
		group := &Group{Label: decl.Label, Title: decl.Title}
		c.Groups = append(c.Groups, group)
		c.byLabel[decl.Label] = group
	}
	return c
}

// Add appends the recipe to the collection and back-populates the
// membership of every declared group the recipe references. Labels with
// no matching declaration are returned so the caller can decide whether
// they are a validation failure or merely ignorable.
func (c *Collection) Add(r *Recipe) (unknown []string) {
	c.Recipes = append(c.Recipes, r)
	for _, label := range r.Groups {
		group, ok := c.byLabel[label]
		if !ok {
			unknown = append(unknown, label)
			continue
		}
		group.Recipes = append(group.Recipes, r)
	}
	return unknown
}

// Group looks up a declared group by label.
func (c *Collection) Group(label string) (*Group, bool) {
	group, ok := c.byLabel[label]
	return group, ok
}
