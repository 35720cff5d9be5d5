package docs

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type openAPIDoc struct {
	Paths map[string]map[string]struct {
		Responses map[string]struct {
			Schema map[string]any `json:"schema"`
		} `json:"responses"`
	} `json:"paths"`
	Definitions map[string]json.RawMessage `json:"definitions"`
}

func readDoc(t *testing.T) (openAPIDoc, string) {
	t.Helper()
	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc openAPIDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc, raw
}

func TestDocResponsesCarrySchemas(t *testing.T) {
	doc, _ := readDoc(t)

	stats := doc.Paths["/stages/stats"]["get"].Responses["200"].Schema
	assert.Equal(t, "#/definitions/animals.stageStatsResponse", stats["$ref"])

	urgent := doc.Paths["/vaccines/applications/urgent"]["get"].Responses["200"].Schema
	assert.Equal(t, "array", urgent["type"])
}

func TestDocRefsResolve(t *testing.T) {
	doc, raw := readDoc(t)
	require.NotEmpty(t, doc.Definitions)

	refs := regexp.MustCompile(`#/definitions/([\w.]+)`).FindAllStringSubmatch(raw, -1)
	require.NotEmpty(t, refs)
	for _, m := range refs {
		assert.Contains(t, doc.Definitions, m[1])
	}
}
