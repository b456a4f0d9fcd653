package registry

import (
	"errors"
	"fmt"

	"faultline/internal/capture"
)

// ErrNotFound is returned by Get for unknown fault ids.
var ErrNotFound = errors.New("fault definition not found")

// Definition describes one triggerable fault. Definitions are immutable
// after the catalog is built.
type Definition struct {
	ID          string
	Name        string
	Route       string
	Method      string
	Kind        capture.Kind
	Description string
}

// Catalog is the process-wide fault registry. It is built once before the
// server starts and never mutated, so concurrent reads need no locking.
type Catalog struct {
	defs []Definition
	byID map[string]int
}

// New builds a catalog preserving the given order.
func New(defs []Definition) *Catalog {
	byID := make(map[string]int, len(defs))
	for i, def := range defs {
		byID[def.ID] = i
	}
	return &Catalog{defs: defs, byID: byID}
}

// List returns every definition in catalog order.
func (c *Catalog) List() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Get returns the definition for the given id.
func (c *Catalog) Get(id string) (Definition, error) {
	i, ok := c.byID[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.defs[i], nil
}

// Default returns the built-in fault catalog.
func Default() *Catalog {
	return New([]Definition{
		{
			ID:          "type-error",
			Name:        "Type Mismatch",
			Route:       "/trigger/type-error",
			Method:      "GET",
			Kind:        capture.KindTypeMismatch,
			Description: "Format a user's full display name, which fails because the profile's last_name entry is absent and cannot be concatenated.",
		},
		{
			ID:          "key-error",
			Name:        "Missing Key",
			Route:       "/trigger/key-error",
			Method:      "GET",
			Kind:        capture.KindMissingKey,
			Description: "Load notification settings for a user whose preferences are missing the notifications group.",
		},
		{
			ID:          "attribute-error",
			Name:        "Nil Reference",
			Route:       "/trigger/attribute-error",
			Method:      "GET",
			Kind:        capture.KindNilReference,
			Description: "Look up the assignee's email for an unassigned task whose assignee reference is nil.",
		},
		{
			ID:          "zero-division",
			Name:        "Division By Zero",
			Route:       "/trigger/zero-division",
			Method:      "GET",
			Kind:        capture.KindDivisionByZero,
			Description: "Generate a velocity report where the sprint length was never configured and defaults to 0 days.",
		},
		{
			ID:          "index-error",
			Name:        "Index Out Of Range",
			Route:       "/trigger/index-error",
			Method:      "GET",
			Kind:        capture.KindIndexOutOfRange,
			Description: "Retrieve the latest comment on a task that has no comments.",
		},
		{
			ID:          "file-not-found",
			Name:        "File Not Found",
			Route:       "/trigger/file-not-found",
			Method:      "GET",
			Kind:        capture.KindFileNotFound,
			Description: "Load a project config file from disk that was never deployed.",
		},
		{
			ID:          "json-decode-error",
			Name:        "JSON Parse Failure",
			Route:       "/trigger/json-decode-error",
			Method:      "GET",
			Kind:        capture.KindJSONParse,
			Description: "Parse a webhook response from a third-party service that returns JSON with an unquoted key.",
		},
		{
			ID:          "unicode-decode-error",
			Name:        "UTF-8 Decode Failure",
			Route:       "/trigger/unicode-decode-error",
			Method:      "POST",
			Kind:        capture.KindUTF8Decode,
			Description: "Process an incoming webhook payload containing an invalid UTF-8 byte sequence.",
		},
		{
			ID:          "recursion-error",
			Name:        "Recursion Limit",
			Route:       "/trigger/recursion-error",
			Method:      "GET",
			Kind:        capture.KindRecursionLimit,
			Description: "Flatten a category tree with an accidental circular parent→child reference.",
		},
		{
			ID:          "connection-error",
			Name:        "Connection Failure",
			Route:       "/trigger/connection-error",
			Method:      "GET",
			Kind:        capture.KindConnectionFailure,
			Description: "Attempt to connect to an internal database host that is unreachable.",
		},
		{
			ID:          "value-error",
			Name:        "Value Coercion Failure",
			Route:       "/trigger/value-error",
			Method:      "POST",
			Kind:        capture.KindValueCoercion,
			Description: "Import tasks from CSV where the priority column contains a non-numeric string.",
		},
		{
			ID:          "permission-error",
			Name:        "Permission Denied",
			Route:       "/trigger/permission-error",
			Method:      "GET",
			Kind:        capture.KindPermissionDenied,
			Description: "Export project data to a file that a previous backup job locked read-only.",
		},
		{
			ID:          "timeout-error",
			Name:        "Deadline Exceeded",
			Route:       "/trigger/timeout-error",
			Method:      "GET",
			Kind:        capture.KindDeadlineExceeded,
			Description: "Run a slow aggregation query that exceeds the configured deadline.",
		},
		{
			ID:          "thread-error",
			Name:        "Background Failure",
			Route:       "/trigger/thread-error",
			Method:      "GET",
			Kind:        capture.KindBackgroundFailure,
			Description: "Fire a background notification job whose handler fails; the failure surfaces through the bridge hook, not the response.",
		},
		{
			ID:          "memory-error",
			Name:        "Memory Exhaustion",
			Route:       "/trigger/memory-error",
			Method:      "POST",
			Kind:        capture.KindMemoryExhaustion,
			Description: "Bulk-import builds an O(n²) cross-reference index that outgrows the configured memory budget.",
		},
	})
}
