package domain

import "github.com/pkg/errors"

// Category is a node in the task category hierarchy. Categories form a tree
// by convention; nothing enforces acyclicity.
type Category struct {
	Name     string
	Parent   *Category
	Children []*Category
}

// AddChild appends a new child category and returns it.
func (c *Category) AddChild(name string) *Category {
	child := &Category{Name: name, Parent: c}
	c.Children = append(c.Children, child)
	return child
}

// Flatten walks the hierarchy depth-first and collects category names in
// order. maxDepth bounds the walk; real stack exhaustion in Go is not
// recoverable, so the budget plays the role of an interpreter recursion
// limit.
func (c *Category) Flatten(maxDepth int) ([]string, error) {
	if maxDepth <= 0 {
		return nil, errors.WithStack(ErrTraversalDepth)
	}
	names := []string{c.Name}
	for _, child := range c.Children {
		sub, err := child.Flatten(maxDepth - 1)
		if err != nil {
			return nil, err
		}
		names = append(names, sub...)
	}
	return names, nil
}
