package domain

import "errors"

// ErrTraversalDepth is returned when a category tree walk exceeds its
// configured depth budget.
var ErrTraversalDepth = errors.New("category tree exceeds maximum traversal depth")

// ErrCapacityExceeded is returned when an import grows past its byte budget.
var ErrCapacityExceeded = errors.New("import exceeds configured memory budget")
