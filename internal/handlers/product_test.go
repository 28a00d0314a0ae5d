package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shynora-backend/internal/models"
)

func decodeProductRequest(t *testing.T, body string) productRequest {
	t.Helper()
	var req productRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestApplyProductUpdateLeavesOmittedFields(t *testing.T) {
	existing := models.Product{
		Name:     "Teak Bench",
		Price:    120,
		Stock:    7,
		InStock:  true,
		Featured: true,
		Tags:     []string{"teak"},
	}

	applyProductUpdate(&existing, decodeProductRequest(t, `{"price": 5}`))

	assert.InDelta(t, 5.0, existing.Price, 1e-9)
	assert.Equal(t, "Teak Bench", existing.Name)
	assert.Equal(t, 7, existing.Stock)
	assert.True(t, existing.InStock)
	// A body without "featured" must not clear the flag.
	assert.True(t, existing.Featured)
	assert.Equal(t, []string{"teak"}, existing.Tags)
}

func TestApplyProductUpdateAcceptsExplicitZeroes(t *testing.T) {
	existing := models.Product{Stock: 7, InStock: true, Featured: true}

	applyProductUpdate(&existing, decodeProductRequest(t, `{"stock": 0, "featured": false, "inStock": false}`))

	assert.Zero(t, existing.Stock)
	assert.False(t, existing.InStock)
	assert.False(t, existing.Featured)
}
