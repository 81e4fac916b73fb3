package main

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The swagger middleware registered in main panics at startup when the file
// it serves is missing, so the spec must stay checked in, valid and covering
// the routed endpoints.
func TestSwaggerSpecCheckedInAndServable(t *testing.T) {
	raw, err := os.ReadFile("../../docs/swagger.json")
	require.NoError(t, err, "main registers the swagger middleware with this path")

	var spec struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &spec))
	assert.Equal(t, "2.0", spec.Swagger)

	for _, route := range []string{
		"/health",
		"/api/login",
		"/api/users",
		"/api/bases",
		"/api/equipment-types",
		"/api/assets",
		"/api/dashboard",
		"/api/dashboard/movement-details",
		"/api/dashboard/movement-details/export",
		"/api/purchases",
		"/api/transfers",
		"/api/transfers/{id}/status",
		"/api/assignments",
		"/api/assignments/{id}/return",
		"/api/expenditures",
	} {
		assert.Contains(t, spec.Paths, route)
	}
}
