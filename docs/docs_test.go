package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocumentsRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		BasePath    string                                `json:"basePath"`
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "/api", doc.BasePath)
	assert.NotEmpty(t, doc.Definitions)

	routes := map[string]string{
		"/financial-entries":              "post",
		"/financial-entries/installments": "post",
		"/financial-entries/{id}/pay":     "post",
		"/financial-entries/{id}/revert":  "post",
		"/financial-entries/export":       "get",
		"/sales":                          "post",
		"/coupons/validate":               "post",
		"/products/{id}/stock":            "post",
		"/auth/login":                     "post",
		"/companies":                      "post",
	}
	for path, method := range routes {
		ops, ok := doc.Paths[path]
		if assert.True(t, ok, path) {
			assert.Contains(t, ops, method, path)
		}
	}
	assert.Contains(t, doc.Definitions, "finance.Entry")
	assert.Contains(t, doc.Definitions, "dto.ErrorResponse")
}
