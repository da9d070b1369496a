package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzvngherman/OneDrive-REST-API/internal/graph"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Kind
	}{
		{"canned success", graph.MockSuccessBody, KindSuccess},
		{"context with null value", `{"@odata.context":null}`, KindSuccess},
		{"canned error", graph.MockErrorBody, KindFailure},
		{"empty object", `{}`, KindFailure},
		{"nested context does not count", `{"x":{"@odata.context":"a"}}`, KindFailure},
		{"html", `<html>502 Bad Gateway</html>`, KindParseFailure},
		{"empty body", ``, KindParseFailure},
		{"json null", `null`, KindParseFailure},
		{"json array", `[1,2]`, KindParseFailure},
		{"json string", `"x"`, KindParseFailure},
		{"truncated object", `{"@odata.context":"a"`, KindParseFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify([]byte(tt.body))
			assert.Equal(t, tt.want, c.Kind)

			if tt.want == KindParseFailure {
				assert.Error(t, c.Err)
			} else {
				assert.NoError(t, c.Err)
			}
		})
	}
}

func TestDocumentField(t *testing.T) {
	c := Classify([]byte(`{
		"name": "a.rar",
		"escaped": "a\"b",
		"size": 42,
		"deleted": false,
		"nothing": null,
		"folder": {"childCount": 1},
		"tags": ["x"]
	}`))
	require.Equal(t, KindFailure, c.Kind)

	tests := []struct {
		field  string
		want   string
		wantOK bool
	}{
		{"name", "a.rar", true},
		{"escaped", `a"b`, true},
		{"size", "42", true},
		{"deleted", "false", true},
		{"nothing", "", false},
		{"folder", "", false},
		{"tags", "", false},
		{"missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, ok := c.Doc.Field(tt.field)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocumentField_ZeroDocument(t *testing.T) {
	var d Document

	got, ok := d.Field("name")
	assert.False(t, ok)
	assert.Empty(t, got)
	assert.False(t, d.Has("name"))
}
