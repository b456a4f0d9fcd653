package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faultline/internal/capture"
)

func TestDefaultCatalogOrder(t *testing.T) {
	catalog := Default()
	defs := catalog.List()

	wantIDs := []string{
		"type-error",
		"key-error",
		"attribute-error",
		"zero-division",
		"index-error",
		"file-not-found",
		"json-decode-error",
		"unicode-decode-error",
		"recursion-error",
		"connection-error",
		"value-error",
		"permission-error",
		"timeout-error",
		"thread-error",
		"memory-error",
	}
	require.Len(t, defs, len(wantIDs))

	seen := make(map[string]bool, len(defs))
	for i, def := range defs {
		assert.Equal(t, wantIDs[i], def.ID)
		assert.False(t, seen[def.ID], "duplicate id %s", def.ID)
		seen[def.ID] = true

		assert.Equal(t, "/trigger/"+def.ID, def.Route)
		assert.NotEmpty(t, def.Method)
		assert.NotEmpty(t, def.Kind)
		assert.NotEmpty(t, def.Description)
	}
}

func TestDefaultCatalogMethods(t *testing.T) {
	catalog := Default()
	for _, def := range catalog.List() {
		switch def.ID {
		case "unicode-decode-error", "value-error", "memory-error":
			assert.Equal(t, "POST", def.Method, def.ID)
		default:
			assert.Equal(t, "GET", def.Method, def.ID)
		}
	}
}

func TestCatalogGet(t *testing.T) {
	catalog := Default()

	def, err := catalog.Get("zero-division")
	require.NoError(t, err)
	assert.Equal(t, capture.KindDivisionByZero, def.Kind)

	_, err = catalog.Get("not-a-fault")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListReturnsCopy(t *testing.T) {
	catalog := Default()

	defs := catalog.List()
	defs[0].ID = "mutated"

	assert.Equal(t, "type-error", catalog.List()[0].ID)
}
